//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadDocumentRequest_Validation(t *testing.T) {
	content := base64.StdEncoding.EncodeToString([]byte("Jane Doe"))

	tests := []struct {
		name    string
		request UploadDocumentRequest
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid request",
			request: UploadDocumentRequest{Name: "resume.txt", Category: CategoryResume, Content: content},
		},
		{
			name:    "valid without category",
			request: UploadDocumentRequest{Name: "resume.pdf", Type: "pdf", Content: content},
		},
		{
			name:    "missing name",
			request: UploadDocumentRequest{Content: content},
			wantErr: true,
			errMsg:  "required",
		},
		{
			name:    "missing content",
			request: UploadDocumentRequest{Name: "resume.txt"},
			wantErr: true,
			errMsg:  "required",
		},
		{
			name:    "content not base64",
			request: UploadDocumentRequest{Name: "resume.txt", Content: "not base64!"},
			wantErr: true,
			errMsg:  "base64",
		},
		{
			name:    "unknown category",
			request: UploadDocumentRequest{Name: "resume.txt", Category: "diary", Content: content},
			wantErr: true,
			errMsg:  "oneof",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUploadDocumentRequest_Document(t *testing.T) {
	content := base64.StdEncoding.EncodeToString([]byte("Jane Doe"))

	doc, err := (&UploadDocumentRequest{Name: "cv.docx", Content: content}).Document()
	require.NoError(t, err)
	assert.Equal(t, DocumentTypeDOCX, doc.Type)
	assert.Equal(t, []byte("Jane Doe"), doc.Content)

	doc, err = (&UploadDocumentRequest{Name: "cv.bin", Type: ".txt", Content: content}).Document()
	require.NoError(t, err)
	assert.Equal(t, DocumentTypeTXT, doc.Type)

	doc, err = (&UploadDocumentRequest{Name: "cv.bin", Content: content}).Document()
	require.NoError(t, err)
	assert.Equal(t, DocumentType(""), doc.Type)
}

func TestUpdateContactRequest_Validation(t *testing.T) {
	valid := UpdateContactRequest{FullName: "Jane Doe", Email: []string{"jane@example.com"}, Phones: []string{"555-123-4567"}}
	assert.NoError(t, valid.Validate())

	empty := UpdateContactRequest{}
	assert.NoError(t, empty.Validate())

	badEmail := UpdateContactRequest{Email: []string{"jane@example.com", "not-an-email"}}
	err := badEmail.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}
