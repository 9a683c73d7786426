package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/snipstash/snipstash/internal/api"
	"github.com/snipstash/snipstash/internal/apperrors"
)

// readFiles loads the given paths into snippet files, preserving argument
// order. The language is derived from the file extension.
func readFiles(paths []string) ([]api.SnippetFile, error) {
	files := make([]api.SnippetFile, 0, len(paths))
	for _, p := range paths {
		raw, err := os.ReadFile(p)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.KindValidation, "could not read file "+p, err)
		}
		files = append(files, api.SnippetFile{
			Filename: filepath.Base(p),
			Content:  string(raw),
			Language: strings.TrimPrefix(filepath.Ext(p), "."),
		})
	}
	return files, nil
}

// writeFiles materializes a fetched snippet's files under dir. Only the
// base name of each filename is used, so a snippet cannot write outside
// the output directory.
func writeFiles(dir string, files []api.SnippetFile) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, "could not create output directory "+dir, err)
	}
	var written []string
	for _, f := range files {
		path := filepath.Join(dir, filepath.Base(f.Filename))
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			return nil, apperrors.Wrap(apperrors.KindValidation, "could not write "+path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
