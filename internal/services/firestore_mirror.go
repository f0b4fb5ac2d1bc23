package services

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"orderplan-go-api/internal/models"
)

const scenarioCollection = "scenarios"

// FirestoreMirror publishes custom scenarios to a Firestore collection so they
// can be shared outside the process. Nothing is ever read back.
type FirestoreMirror struct {
	client  *firestore.Client
	timeout time.Duration
}

func NewFirestoreMirror(ctx context.Context, projectID string) (*FirestoreMirror, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &FirestoreMirror{client: client, timeout: 5 * time.Second}, nil
}

// Publish creates the scenario document. Scenarios are immutable, so an
// existing document is left as is.
func (m *FirestoreMirror) Publish(ctx context.Context, s models.Scenario) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	_, err := m.client.Collection(scenarioCollection).Doc(s.ID).Create(ctx, s)
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	return err
}

// Remove deletes the scenario document.
func (m *FirestoreMirror) Remove(ctx context.Context, s models.Scenario) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	_, err := m.client.Collection(scenarioCollection).Doc(s.ID).Delete(ctx)
	if status.Code(err) == codes.NotFound {
		return nil
	}
	return err
}

// Close closes the Firestore client
func (m *FirestoreMirror) Close() error {
	return m.client.Close()
}
