package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	ledongthuc "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Scanned books average well over this many text characters per page;
// below it the PDF is treated as image-only.
const minCharsPerPage = 10

// PDFFormat extracts the text layer from PDF files. Row-based extraction
// preserves line structure, which downstream TOC detection depends on;
// intra-row spacing is not always recoverable and titles may come out
// concatenated ("OnceUponaTime"), which the splitter normalizes.
type PDFFormat struct{}

func init() {
	Register(&PDFFormat{})
}

func (f *PDFFormat) Name() string         { return "pdf" }
func (f *PDFFormat) Extensions() []string { return []string{".pdf"} }

func (f *PDFFormat) Extract(ctx context.Context, path string) (*Document, error) {
	pageCount, err := pdfPageCount(path)
	if err != nil {
		return nil, err
	}

	file, reader, err := ledongthuc.Open(path)
	if err != nil {
		if isEncryptedErr(err) {
			return nil, fmt.Errorf("%w: %s", ErrEncrypted, path)
		}
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()

	var out strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			// Individual malformed pages are skipped, not fatal.
			continue
		}
		for _, row := range rows {
			for _, word := range row.Content {
				out.WriteString(word.S)
			}
			out.WriteString("\n")
		}
		out.WriteString("\n")
	}

	text := out.String()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: %s", ErrImageOnly, path)
	}
	if pageCount > 0 && len(text)/pageCount < minCharsPerPage {
		return nil, fmt.Errorf("%w: %s", ErrImageOnly, path)
	}

	return &Document{Text: text, Format: f.Name(), PageCount: pageCount}, nil
}

// pdfPageCount validates the file and returns its page count.
func pdfPageCount(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()

	count, err := api.PageCount(file, nil)
	if err != nil {
		if isEncryptedErr(err) {
			return 0, fmt.Errorf("%w: %s", ErrEncrypted, path)
		}
		return 0, fmt.Errorf("failed to read pdf structure: %w", err)
	}
	return count, nil
}

func isEncryptedErr(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "encrypt") || strings.Contains(msg, "password")
}
