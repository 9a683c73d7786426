package api

import (
	"bytes"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/snipstash/snipstash/internal/apperrors"
)

// encodeMultipart renders in as a multipart/form-data body: one text part
// per metadata field, one "categories" part per category, then one
// "files" part per file in the exact order supplied by the caller.
func encodeMultipart(in SnippetInput) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := []struct{ name, value string }{
		{"title", in.Title},
		{"description", in.Description},
		{"visibility", string(in.Visibility)},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", apperrors.Wrap(apperrors.KindValidation, "could not encode field "+f.name, err)
		}
	}
	for _, c := range in.Categories {
		if err := w.WriteField("categories", c); err != nil {
			return nil, "", apperrors.Wrap(apperrors.KindValidation, "could not encode category", err)
		}
	}

	for _, f := range in.Files {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="%s"`,
			escapeQuotes(f.Filename)))
		h.Set("Content-Type", contentTypeFor(f))
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", apperrors.Wrap(apperrors.KindValidation, "could not encode file "+f.Filename, err)
		}
		if _, err := part.Write([]byte(f.Content)); err != nil {
			return nil, "", apperrors.Wrap(apperrors.KindValidation, "could not encode file "+f.Filename, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", apperrors.Wrap(apperrors.KindValidation, "could not finish multipart body", err)
	}
	return buf, w.FormDataContentType(), nil
}

// contentTypeFor resolves a part's content type from the file extension,
// falling back to a generic binary type.
func contentTypeFor(f SnippetFile) string {
	if ct := mime.TypeByExtension(filepath.Ext(f.Filename)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
