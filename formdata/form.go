// Package formdata renders multipart/form-data bodies for a caller-chosen
// boundary.
package formdata

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// NewBoundary returns a random boundary token. Every call yields a new one.
func NewBoundary() string {
	return uuid.NewString()
}

type part struct {
	name        string
	filename    string
	contentType string
	data        []byte
	path        string
	isFile      bool
}

// Form is an ordered list of multipart parts. The zero value is an empty form.
type Form struct {
	parts []part
}

func (f *Form) AddField(name, value string) {
	f.parts = append(f.parts, part{name: name, data: []byte(value)})
}

// AddFile adds an in-memory file part. An empty contentType is detected from
// the data when the form is encoded.
func (f *Form) AddFile(name, filename, contentType string, data []byte) {
	f.parts = append(f.parts, part{
		name:        name,
		filename:    filename,
		contentType: contentType,
		data:        data,
		isFile:      true,
	})
}

// AddFilePath adds a file part read from path when the form is encoded.
func (f *Form) AddFilePath(name, path string) {
	f.parts = append(f.parts, part{
		name:     name,
		filename: filepath.Base(path),
		path:     path,
		isFile:   true,
	})
}

// Encode renders the form delimited by boundary.
func (f *Form) Encode(boundary string) ([]byte, error) {
	if f == nil {
		return nil, errors.New("form is nil")
	}
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.SetBoundary(boundary); err != nil {
		return nil, errors.Wrapf(err, "setting multipart boundary %q", boundary)
	}

	for _, p := range f.parts {
		if !p.isFile {
			if err := w.WriteField(p.name, string(p.data)); err != nil {
				return nil, errors.Wrapf(err, "writing form field '%s'", p.name)
			}
			continue
		}
		if err := writeFile(w, p); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "closing multipart writer")
	}
	return buf.Bytes(), nil
}

func writeFile(w *multipart.Writer, p part) error {
	data := p.data
	if p.path != "" {
		b, err := os.ReadFile(p.path)
		if err != nil {
			return errors.Wrapf(err, "reading file of '%s'", p.name)
		}
		data = b
	}

	contentType := p.contentType
	if contentType == "" {
		contentType = mimetype.Detect(data).String()
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(p.name), escapeQuotes(p.filename)))
	h.Set("Content-Type", contentType)

	pw, err := w.CreatePart(h)
	if err != nil {
		return errors.Wrapf(err, "creating file part '%s'", p.name)
	}
	if _, err := pw.Write(data); err != nil {
		return errors.Wrapf(err, "writing file part '%s'", p.name)
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
