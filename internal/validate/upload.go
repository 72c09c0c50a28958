package validate

import (
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxPDFBytes is the largest resume accepted for analysis.
const MaxPDFBytes = 5 << 20

const mimePDF = "application/pdf"

// Upload messages.
const (
	MsgUploadNothing  = "Please upload a PDF and select a job"
	MsgUploadNoFile   = "Please upload PDF"
	MsgUploadNoJob    = "Please select a job"
	MsgUploadNotPDF   = "Only PDF files are allowed"
	MsgUploadTooLarge = "PDF size must be less than 5MB"
)

// Upload is a file received from the browser. Size is the size the browser
// reported; Data may be truncated past MaxPDFBytes.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Data        []byte
}

// PDFUpload checks a resume upload and the selected job before analysis.
// Presence is checked first, then type, then size.
func PDFUpload(file *Upload, jobID string) error {
	noFile := file == nil || (file.FileName == "" && file.Size == 0)
	noJob := strings.TrimSpace(jobID) == ""
	switch {
	case noFile && noJob:
		return fail("", MsgUploadNothing)
	case noFile:
		return fail("resume", MsgUploadNoFile)
	case noJob:
		return fail("jobId", MsgUploadNoJob)
	}
	if !isPDF(file) {
		return fail("resume", MsgUploadNotPDF)
	}
	if file.Size > MaxPDFBytes {
		return fail("resume", MsgUploadTooLarge)
	}
	return nil
}

func isPDF(file *Upload) bool {
	declared, _, err := mime.ParseMediaType(file.ContentType)
	if err != nil || !strings.EqualFold(declared, mimePDF) {
		return false
	}
	if !strings.HasSuffix(strings.ToLower(file.FileName), ".pdf") {
		return false
	}
	return mimetype.Detect(file.Data).Is(mimePDF)
}
