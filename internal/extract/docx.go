package extract

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"regexp"
	"strings"
)

const docxBody = "word/document.xml"

// DOCX extracts paragraphs from the main document part of a Word file.
type DOCX struct {
	tags *regexp.Regexp
}

func NewDOCX() *DOCX {
	return &DOCX{tags: regexp.MustCompile(`<[^>]+>`)}
}

func (d *DOCX) Extract(_ context.Context, path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != docxBody {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()

		body, err := io.ReadAll(rc)
		if err != nil {
			return "", err
		}
		return d.text(string(body)), nil
	}

	return "", errors.New("no " + docxBody + " found in docx")
}

func (d *DOCX) text(xml string) string {
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	xml = strings.ReplaceAll(xml, "<w:br/>", "\n")
	return strings.TrimSpace(html.UnescapeString(d.tags.ReplaceAllString(xml, "")))
}

// Text reads plain text files as is.
type Text struct{}

func (Text) Extract(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
