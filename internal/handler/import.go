package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/aircraft-hangar/internal/importer"
	"github.com/iliyamo/aircraft-hangar/internal/queue"
	queue_publisher "github.com/iliyamo/aircraft-hangar/internal/service"
)

// ImportHandler exposes the CSV bulk import endpoint.  Parsing and
// reconciliation live in the importer package; this handler only adapts
// HTTP to it and publishes the completion event.
type ImportHandler struct {
	Importer *importer.Importer
}

func NewImportHandler(imp *importer.Importer) *ImportHandler {
	if imp == nil {
		panic("nil importer passed to NewImportHandler")
	}
	return &ImportHandler{Importer: imp}
}

// ImportCSV handles POST /v1/import.  The CSV can arrive as a multipart
// upload under the "file" field or as the raw request body.  The import
// runs synchronously; one file is one batch and the response is the full
// reconciliation report.  Parse failures abort the batch before any row
// is attempted, matching the report shape with a single error.
func (h *ImportHandler) ImportCSV(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var reader io.Reader
	if fh, err := c.FormFile("file"); err == nil {
		src, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not open uploaded file"})
		}
		defer src.Close()
		reader = src
	} else {
		reader = c.Request().Body
	}

	rows, err := importer.ParseCSV(reader)
	if err != nil {
		return c.JSON(http.StatusBadRequest, importer.Report{
			Errors: []string{err.Error()},
		})
	}

	rep := h.Importer.Run(c.Request().Context(), userID, rows)

	// Fire-and-forget: a publish failure is logged by the publisher and
	// never affects the import response.
	event := queue.ImportCompletedEvent{
		UserID:       userID,
		Created:      rep.Created,
		Updated:      rep.Updated,
		MarkedCaught: rep.MarkedCaught,
		ErrorCount:   len(rep.Errors),
		RowCount:     len(rows),
		CompletedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishImportCompleted(ctx, event)
	}()

	return c.JSON(http.StatusOK, rep)
}
