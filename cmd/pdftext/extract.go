package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"codeberg.org/scholargo/server/internal/logger"
	"github.com/ledongthuc/pdf"
)

// lists .pdf files directly inside each directory; missing directories are skipped with a warning
func collectPDFs(dirs []string) []string {
	var files []string

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			logger.Warn("directory not found", "dir", dir, "error", err)
			continue
		}

		var found []string
		for _, e := range entries {
			if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
				found = append(found, filepath.Join(dir, e.Name()))
			}
		}

		sort.Strings(found)
		files = append(files, found...)
	}

	return files
}

// writes one document's text, page by page, between START/END markers.
// the END marker is written even when extraction fails midway.
func printDocument(w io.Writer, path string, separator bool) error {
	name := filepath.Base(path)

	if separator {
		fmt.Fprintf(w, "--- START OF ESSAY: %s ---\n", name)
		defer fmt.Fprintf(w, "--- END OF ESSAY: %s ---\n", name)
	}

	text, err := extractText(path)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, text)
	return err
}

func extractText(path string) (text string, err error) {
	// the parser panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	var sb strings.Builder
	fonts := make(map[string]*pdf.Font)

	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := page.Font(name)
				fonts[name] = &font
			}
		}

		pageText, err := page.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", i, err)
		}

		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
