package material

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"

	"github.com/zambezi-learn/zambezi/internal/syllabus"
)

// MaxUploadBytes is the largest PDF accepted for import.
const MaxUploadBytes = 2 << 20

const pdfMIME = "application/pdf"

// Classification places an imported file in the syllabus.
type Classification struct {
	SubjectID   string
	SubjectName string
	Topic       string
	Grade       syllabus.Grade
}

// ImportPDF reads a single PDF from r, checks its type and size, and
// saves it base64-encoded under the file's base name.
func ImportPDF(ctx context.Context, s Store, name string, r io.Reader, c Classification) (SavedMaterial, error) {
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		return SavedMaterial{}, &ValidationError{Field: "file", Message: "Please upload a PDF file."}
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return SavedMaterial{}, fmt.Errorf("read %s: %w", name, err)
	}
	if len(data) > MaxUploadBytes {
		return SavedMaterial{}, &ValidationError{
			Field:   "file",
			Message: fmt.Sprintf("File is too large. Maximum size is %s.", humanize.IBytes(MaxUploadBytes)),
		}
	}
	if len(data) == 0 {
		return SavedMaterial{}, &ValidationError{Field: "file", Message: "The file is empty."}
	}
	if mt := mimetype.Detect(data); !mt.Is(pdfMIME) {
		return SavedMaterial{}, &ValidationError{
			Field:   "file",
			Message: fmt.Sprintf("Please upload a PDF file (got %s).", mt.String()),
		}
	}

	m := SavedMaterial{
		ID:          NewID(),
		Kind:        KindPDF,
		SubjectID:   c.SubjectID,
		SubjectName: c.SubjectName,
		Topic:       c.Topic,
		Grade:       c.Grade,
		Title:       filepath.Base(name),
		Content:     PDFContent(base64.StdEncoding.EncodeToString(data)),
	}
	if err := s.Save(ctx, m); err != nil {
		return SavedMaterial{}, err
	}
	return m, nil
}

// DecodePDF returns the raw bytes of a saved PDF.
func DecodePDF(m SavedMaterial) ([]byte, error) {
	if m.Kind != KindPDF {
		return nil, fmt.Errorf("material %s is a %s, not a pdf", m.ID, m.Kind)
	}
	return base64.StdEncoding.DecodeString(m.Content.Text)
}
