// Package converter renders the first sheet of a spreadsheet as a plain PDF listing.
package converter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ErlanBelekov/easydev/internal/domain"
	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

const Title = "Excel to PDF Conversion"

type Converter struct {
	compress bool
}

type Option func(*Converter)

// WithCompression toggles stream compression in the generated PDF. On by default.
func WithCompression(on bool) Option {
	return func(c *Converter) { c.compress = on }
}

func New(opts ...Option) *Converter {
	c := &Converter{compress: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert reads a workbook from r and returns the PDF bytes. Everything happens in
// memory. Any read or render fault matches domain.ErrConversion.
func (c *Converter) Convert(ctx context.Context, r io.Reader) ([]byte, error) {
	rows, err := firstSheetRows(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConversion, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := c.render(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConversion, err)
	}
	return out, nil
}

func firstSheetRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func (c *Converter) render(rows [][]string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(c.compress)
	pdf.SetTitle(Title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 18)
	pdf.CellFormat(0, 10, Title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for i, row := range rows {
		if i == 0 {
			pdf.SetFont("Helvetica", "B", 12)
		} else {
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.MultiCell(0, 6, tr(strings.Join(row, " | ")), "", "L", false)
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
