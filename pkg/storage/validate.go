package storage

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var ErrInvalidFile = errors.New("invalid file")

const (
	mimePDF  = "application/pdf"
	mimeDOC  = "application/msword"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// resumeTypes maps the accepted extensions to their canonical content type
var resumeTypes = map[string]string{
	".pdf":  mimePDF,
	".doc":  mimeDOC,
	".docx": mimeDOCX,
}

// Magic byte signatures for accepted resume formats
var magicBytes = map[string][]byte{
	".pdf":  {0x25, 0x50, 0x44, 0x46},                         // %PDF
	".doc":  {0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, // OLE Compound Document
	".docx": {0x50, 0x4B, 0x03, 0x04},                         // ZIP (PK..)
}

// sniffed types accepted per extension; DOCX often sniffs as plain zip
var acceptedMIME = map[string][]string{
	".pdf":  {mimePDF},
	".doc":  {mimeDOC, "application/x-ole-storage"},
	".docx": {mimeDOCX, "application/zip"},
}

// ValidateResume checks extension, size, magic bytes and sniffed MIME type
// and returns the content type to store the file with.
func ValidateResume(filename string, data []byte, maxBytes int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := resumeTypes[ext]
	if !ok {
		return "", fmt.Errorf("%w: resume must be a pdf, doc or docx file", ErrInvalidFile)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: resume file is empty", ErrInvalidFile)
	}
	if int64(len(data)) > maxBytes {
		return "", fmt.Errorf("%w: resume must not be larger than %d KB", ErrInvalidFile, maxBytes/1024)
	}
	if !bytes.HasPrefix(data, magicBytes[ext]) {
		return "", fmt.Errorf("%w: file content does not match extension", ErrInvalidFile)
	}

	detected := mimetype.Detect(data)
	for _, m := range acceptedMIME[ext] {
		if detected.Is(m) {
			return contentType, nil
		}
	}
	return "", fmt.Errorf("%w: unexpected content type %s", ErrInvalidFile, detected.String())
}

// ResumeKey builds a collision-free object key for an applicant's upload
func ResumeKey(userID int64, filename string) string {
	return fmt.Sprintf("resumes/%d/%s%s", userID, uuid.NewString(), strings.ToLower(filepath.Ext(filename)))
}
