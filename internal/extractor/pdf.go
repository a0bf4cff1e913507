package extractor

import (
	"bytes"
	"encoding/base64"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"quizflow/internal/domain"
	"quizflow/internal/logger"
)

// PDFExtractor implements domain.TextExtractor for PDF payloads encoded as
// base64, with or without a data-URI prefix.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// DecodePayload strips an optional data-URI prefix and base64-decodes the
// remainder.
func DecodePayload(payload string) ([]byte, error) {
	if i := strings.IndexByte(payload, ','); i >= 0 {
		payload = payload[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, domain.NewExtractionFailedError("document payload is not valid base64", err)
	}
	return data, nil
}

// Extract decodes the payload, opens it as a PDF and collects per-page text
// in page order. Fragments within a page are joined with single spaces.
func (e *PDFExtractor) Extract(payload string) (extracted *domain.ExtractedText, err error) {
	// The pdf library panics on some malformed files instead of returning an
	// error; treat a panic the same as a parse failure.
	defer func() {
		if r := recover(); r != nil {
			logger.Get().Warn("PDF parser panicked", zap.Any("panic", r))
			extracted = nil
			err = domain.NewExtractionFailedError("document is not a parseable PDF", nil)
		}
	}()

	data, err := DecodePayload(payload)
	if err != nil {
		return nil, err
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, domain.NewExtractionFailedError("document is not a parseable PDF", err)
	}

	total := reader.NumPage()
	if total < 1 {
		return nil, domain.NewExtractionFailedError("document declares no pages", nil)
	}

	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		if text := pageText(page); text != "" {
			pages = append(pages, text)
		}
	}

	logger.Get().Debug("extracted document text",
		zap.Int("pages", total),
		zap.Int("pages_with_text", len(pages)),
	)
	return &domain.ExtractedText{Pages: pages}, nil
}

func pageText(page pdf.Page) string {
	var fragments []string
	for _, item := range page.Content().Text {
		if s := strings.TrimSpace(item.S); s != "" {
			fragments = append(fragments, s)
		}
	}
	return strings.Join(fragments, " ")
}

var _ domain.TextExtractor = (*PDFExtractor)(nil)
