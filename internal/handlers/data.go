package handlers

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"orderplan-go-api/internal/models"
	"orderplan-go-api/internal/services"

	"github.com/gofiber/fiber/v2"
)

const exportFilename = "simulation_data.csv"

type DataHandler struct {
	orchestrator *services.PlanningOrchestrator
}

func NewDataHandler(orchestrator *services.PlanningOrchestrator) *DataHandler {
	return &DataHandler{orchestrator: orchestrator}
}

// Import handles POST /v1/data/import
//
// Accepts a multipart upload in the "file" field or a raw CSV body.
func (h *DataHandler) Import(c *fiber.Ctx) error {
	var src io.Reader
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return badRequest(c, "File is required", err)
		}
		f, err := fh.Open()
		if err != nil {
			return badRequest(c, "Unreadable upload", err)
		}
		defer f.Close()
		src = f
	} else {
		src = bytes.NewReader(c.Body())
	}

	res, err := h.orchestrator.ImportCSV(src)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(models.ImportResponse{
		Loaded:  len(res.Records),
		Skipped: res.Skipped,
		Message: fmt.Sprintf("Successfully loaded %d actual data rows.", len(res.Records)),
	})
}

// Export handles GET /v1/data/export
func (h *DataHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.orchestrator.ExportCSV(&buf); err != nil {
		return writeError(c, err)
	}
	c.Attachment(exportFilename)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}

// History handles GET /v1/data/history
func (h *DataHandler) History(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"history": h.orchestrator.History(),
	})
}

// Table handles GET /v1/data/table
func (h *DataHandler) Table(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"rows": h.orchestrator.Table(),
	})
}
