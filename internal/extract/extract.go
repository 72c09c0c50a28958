package extract

import (
	"bytes"
	"context"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

const mimePDF = "application/pdf"

// Info summarises an uploaded resume.
type Info struct {
	Pages int
	Bytes int
}

// InspectPDF opens data as a PDF and reports its page count.
// Library used: github.com/ledongthuc/pdf.
func InspectPDF(ctx context.Context, data []byte) (info Info, err error) {
	if err := ctx.Err(); err != nil {
		return Info{}, err
	}
	if mt := mimetype.Detect(data); !mt.Is(mimePDF) {
		return Info{}, fmt.Errorf("unsupported mime type: %s", mt.String())
	}
	// the pdf reader panics on some malformed inputs
	defer func() {
		if rec := recover(); rec != nil {
			info, err = Info{}, fmt.Errorf("inspect pdf: %v", rec)
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Info{}, fmt.Errorf("inspect pdf: %w", err)
	}
	return Info{Pages: reader.NumPage(), Bytes: len(data)}, nil
}
