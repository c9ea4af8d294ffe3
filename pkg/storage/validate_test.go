package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

func TestValidateResume(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		max      int64
		wantType string
		wantErr  string
	}{
		{name: "pdf accepted", filename: "cv.PDF", data: samplePDF, max: 1 << 20, wantType: mimePDF},
		{name: "wrong extension", filename: "cv.exe", data: samplePDF, max: 1 << 20, wantErr: "pdf, doc or docx"},
		{name: "empty", filename: "cv.pdf", data: nil, max: 1 << 20, wantErr: "empty"},
		{name: "too large", filename: "cv.pdf", data: samplePDF, max: 10, wantErr: "larger than"},
		{name: "spoofed", filename: "cv.docx", data: samplePDF, max: 1 << 20, wantErr: "does not match"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, err := ValidateResume(tt.filename, tt.data, tt.max)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidFile)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, ct)
		})
	}
}

func TestResumeKey(t *testing.T) {
	a := ResumeKey(12, "My CV.PDF")
	b := ResumeKey(12, "My CV.PDF")
	assert.True(t, strings.HasPrefix(a, "resumes/12/"))
	assert.True(t, strings.HasSuffix(a, ".pdf"))
	assert.NotEqual(t, a, b)
}

func TestConfigEndpoint(t *testing.T) {
	assert.Equal(t, "", Config{Provider: ProviderAWS}.endpoint())
	assert.Equal(t, "https://s3.eu-west-1.wasabisys.com", Config{Provider: ProviderWasabi, Region: "eu-west-1"}.endpoint())
	assert.Equal(t, "http://minio:9000", Config{Provider: ProviderMinIO, Endpoint: "http://minio:9000"}.endpoint())
	assert.False(t, Config{Bucket: "b"}.IsConfigured())
}
