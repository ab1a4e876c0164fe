// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// Form is a multipart/form-data body built field by field. Parts are
// written in the order they were added.
type Form struct {
	parts []formPart
}

type formPart struct {
	name        string
	value       string
	filename    string
	contentType string
	data        []byte
	isFile      bool
}

// NewForm returns an empty form.
func NewForm() *Form { return &Form{} }

// Field appends a text field.
func (f *Form) Field(name, value string) *Form {
	f.parts = append(f.parts, formPart{name: name, value: value})
	return f
}

// File appends a file part. An empty contentType sends
// application/octet-stream.
func (f *Form) File(name, filename, contentType string, data []byte) *Form {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	f.parts = append(f.parts, formPart{
		name:        name,
		filename:    filename,
		contentType: contentType,
		data:        data,
		isFile:      true,
	})
	return f
}

// Len returns the number of parts.
func (f *Form) Len() int { return len(f.parts) }

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func (f *Form) encode() ([]byte, string, error) {
	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	for _, part := range f.parts {
		if !part.isFile {
			if err := writer.WriteField(part.name, part.value); err != nil {
				return nil, "", fmt.Errorf("writing field %q: %w", part.name, err)
			}
			continue
		}
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(part.name), quoteEscaper.Replace(part.filename)))
		header.Set("Content-Type", part.contentType)
		partWriter, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("creating file part %q: %w", part.name, err)
		}
		if _, err := partWriter.Write(part.data); err != nil {
			return nil, "", fmt.Errorf("writing file part %q: %w", part.name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}
	return buffer.Bytes(), writer.FormDataContentType(), nil
}
