// ABOUTME: Multipart form bodies for product and category uploads
// ABOUTME: Built in memory and passed through the client without JSON encoding

package client

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"sort"
)

// RawBody is a request body sent as-is with its own content type
type RawBody interface {
	io.Reader
	ContentType() string
}

// Upload is one file part of a multipart form
type Upload struct {
	Field    string
	FileName string
	Content  io.Reader
}

// OpenUpload reads the file at path into an Upload for field
func OpenUpload(field, path string) (Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Upload{}, fmt.Errorf("cannot read upload %s: %w", path, err)
	}
	return Upload{
		Field:    field,
		FileName: filepath.Base(path),
		Content:  bytes.NewReader(data),
	}, nil
}

// Multipart is an encoded multipart/form-data body
type Multipart struct {
	buf         bytes.Buffer
	contentType string
}

// NewMultipart encodes fields (in key order) followed by uploads
func NewMultipart(fields map[string]string, uploads ...Upload) (*Multipart, error) {
	m := &Multipart{}
	w := multipart.NewWriter(&m.buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, fields[k]); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", k, err)
		}
	}

	for _, u := range uploads {
		part, err := w.CreateFormFile(u.Field, u.FileName)
		if err != nil {
			return nil, fmt.Errorf("failed to add file %s: %w", u.FileName, err)
		}
		if _, err := io.Copy(part, u.Content); err != nil {
			return nil, fmt.Errorf("failed to copy file %s: %w", u.FileName, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish form: %w", err)
	}
	m.contentType = w.FormDataContentType()
	return m, nil
}

func (m *Multipart) Read(p []byte) (int, error) {
	return m.buf.Read(p)
}

// ContentType includes the multipart boundary
func (m *Multipart) ContentType() string {
	return m.contentType
}
