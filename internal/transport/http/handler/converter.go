package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/easydev/internal/domain"
	"github.com/ErlanBelekov/easydev/internal/metrics"
	"github.com/gin-gonic/gin"
)

type documentConverter interface {
	Convert(ctx context.Context, r io.Reader) ([]byte, error)
}

type ConverterHandler struct {
	converter documentConverter
	maxBytes  int64
	logger    *slog.Logger
}

func NewConverterHandler(converter documentConverter, maxBytes int64, logger *slog.Logger) *ConverterHandler {
	return &ConverterHandler{
		converter: converter,
		maxBytes:  maxBytes,
		logger:    logger.With("component", "converter_handler"),
	}
}

// POST /api/converter/excel-to-pdf
// Public. Expects multipart field "file"; answers with the PDF as an attachment.
func (h *ConverterHandler) ExcelToPDF(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			metrics.ConversionsTotal.WithLabelValues("rejected").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"message": errFileTooLarge})
			return
		}
		metrics.ConversionsTotal.WithLabelValues("rejected").Inc()
		respondError(c, h.logger, "read upload", domain.ErrNoFile)
		return
	}

	f, err := fh.Open()
	if err != nil {
		metrics.ConversionsTotal.WithLabelValues("failed").Inc()
		respondError(c, h.logger, "open upload", errors.Join(domain.ErrConversion, err))
		return
	}
	defer func() { _ = f.Close() }()

	pdf, err := h.converter.Convert(c.Request.Context(), f)
	if err != nil {
		metrics.ConversionsTotal.WithLabelValues("failed").Inc()
		respondError(c, h.logger, "convert", err)
		return
	}

	metrics.ConversionsTotal.WithLabelValues("ok").Inc()
	c.Header("Content-Disposition", `attachment; filename="converted.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
