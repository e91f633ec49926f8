package pdf

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// parsePDF extracts plain text from every page of a PDF. Pages that fail to
// decode are skipped rather than failing the whole file.
func parsePDF(input []byte) ([]byte, error) {
	reader, err := pdf.NewReader(bytes.NewReader(input), int64(len(input)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(text)
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return nil, fmt.Errorf("no extractable text in pdf")
	}

	text = excessNewlines.ReplaceAllString(text, "\n\n")
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	return []byte(text), nil
}
