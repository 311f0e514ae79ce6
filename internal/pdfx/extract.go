// Package pdfx wraps raw PDF-to-text extraction. It is the only place the
// PDF library is touched; everything downstream works on the linearized
// text string it returns.
package pdfx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	pdf "github.com/ledongthuc/pdf"
)

// ErrTooShort is returned when a file has fewer pages than the caller's
// minimum. Used to pre-filter table-of-contents and divider PDFs that sit
// next to the papers in a proceedings folder.
var ErrTooShort = errors.New("pdfx: fewer pages than minimum")

// Document is the raw linearized text of one PDF plus its page count.
type Document struct {
	Path  string
	Pages int
	Text  string
}

// GetRawText extracts the concatenated plain text of all pages. When
// minPages is greater than zero, files with fewer pages return
// ErrTooShort without text extraction.
func GetRawText(ctx context.Context, path string, minPages int) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pdfx: open %s: %w", path, err)
	}
	defer f.Close()

	pages := r.NumPage()
	if minPages > 0 && pages < minPages {
		return nil, fmt.Errorf("%w: %s has %d page(s), need %d", ErrTooShort, path, pages, minPages)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	b, err := r.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("pdfx: plain text of %s: %w", path, err)
	}
	if _, err := io.Copy(&buf, b); err != nil {
		return nil, fmt.Errorf("pdfx: read %s: %w", path, err)
	}

	return &Document{Path: path, Pages: pages, Text: buf.String()}, nil
}
