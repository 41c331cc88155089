package core

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"
)

// Part is one field of a multipart form: Filename and ContentType are empty
// for a plain form field.
type Part struct {
	Name        string
	Filename    string
	ContentType string
	Data        []byte
}

// NewBoundary generates a boundary in the wire format this package writes
// and expects: 64 hex digits split into four dash-separated 16-hex groups,
// rather than Go's own mime/multipart default boundary shape.
func NewBoundary() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", NewIoError("multipart.boundary", "", err)
	}
	hexStr := hex.EncodeToString(buf)
	groups := make([]string, 4)
	for i := 0; i < 4; i++ {
		groups[i] = hexStr[i*16 : (i+1)*16]
	}
	return strings.Join(groups, "-"), nil
}

// EncodeMultipart writes parts in order using boundary, returning the full
// body bytes and the Content-Type header value to pair with them.
func EncodeMultipart(parts []Part, boundary string) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.SetBoundary(boundary); err != nil {
		return nil, "", NewIoError("multipart.encode", "", err)
	}
	for _, p := range parts {
		var fw io.Writer
		var err error
		switch {
		case p.Filename != "":
			h := make(map[string][]string)
			h["Content-Disposition"] = []string{
				fmt.Sprintf(`form-data; name=%q; filename=%q`, p.Name, p.Filename),
			}
			if p.ContentType != "" {
				h["Content-Type"] = []string{p.ContentType}
			}
			fw, err = w.CreatePart(h)
		default:
			fw, err = w.CreateFormField(p.Name)
		}
		if err != nil {
			return nil, "", NewIoError("multipart.encode", "", err)
		}
		if _, err := fw.Write(p.Data); err != nil {
			return nil, "", NewIoError("multipart.encode", "", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", NewIoError("multipart.encode", "", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// DecodeMultipart is the inverse of EncodeMultipart, used for any response
// whose Content-Type carries a boundary= parameter.
func DecodeMultipart(data []byte, contentType string) ([]Part, error) {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, NewDecodeError("multipart.decode", "", err)
	}
	boundary, ok := params["boundary"]
	if !ok {
		return nil, NewDecodeError("multipart.decode", "", fmt.Errorf("missing boundary parameter"))
	}
	r := multipart.NewReader(bytes.NewReader(data), boundary)
	var parts []Part
	for {
		part, err := r.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, NewDecodeError("multipart.decode", "", err)
		}
		body, err := io.ReadAll(part)
		if err != nil {
			return nil, NewIoError("multipart.decode", "", err)
		}
		parts = append(parts, Part{
			Name:        part.FormName(),
			Filename:    part.FileName(),
			ContentType: part.Header.Get("Content-Type"),
			Data:        body,
		})
	}
	return parts, nil
}
