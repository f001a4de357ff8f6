package extract

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
	`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Email:</w:t></w:r><w:r><w:tab/><w:t>jane@example.com</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Skills: Python &amp; SQL</w:t></w:r></w:p>` +
	`</w:body></w:document>`

func writeDOCX(t *testing.T, dir, name string, parts map[string]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for partName, body := range parts {
		w, err := zw.Create(partName)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return path
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDOCXExtract(t *testing.T) {
	dir := t.TempDir()
	path := writeDOCX(t, dir, "jane.docx", map[string]string{
		"[Content_Types].xml": "<Types/>",
		docxBody:              documentXML,
	})

	text, err := NewDOCX().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nEmail:\tjane@example.com\nSkills: Python & SQL", text)
}

func TestDOCXWithoutBody(t *testing.T) {
	dir := t.TempDir()
	path := writeDOCX(t, dir, "empty.docx", map[string]string{"[Content_Types].xml": "<Types/>"})

	_, err := NewDOCX().Extract(context.Background(), path)
	assert.ErrorContains(t, err, docxBody)
}

func TestPDFRejectsNonPDF(t *testing.T) {
	path := writeFile(t, t.TempDir(), "fake.pdf", "definitely not a pdf")

	_, err := NewPDF(nil).Extract(context.Background(), path)
	assert.Error(t, err)
}

func TestRegistryLowercasesAndDispatches(t *testing.T) {
	dir := t.TempDir()
	txt := writeFile(t, dir, "john.TXT", "B.Tech, CGPA: 8.7/10")
	docx := writeDOCX(t, dir, "jane.docx", map[string]string{docxBody: documentXML})

	r := NewRegistry(zap.NewNop())

	text, err := r.Extract(context.Background(), txt)
	require.NoError(t, err)
	assert.Equal(t, "b.tech, cgpa: 8.7/10", text)

	text, err = r.Extract(context.Background(), docx)
	require.NoError(t, err)
	assert.Contains(t, text, "skills: python & sql")
}

func TestRegistryUnsupportedFormat(t *testing.T) {
	path := writeFile(t, t.TempDir(), "photo.jpg", "")

	_, err := NewRegistry(nil).Extract(context.Background(), path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

type failing struct{ err error }

func (f failing) Extract(context.Context, string) (string, error) { return "", f.err }

func TestRegistryWrapsExtractorErrors(t *testing.T) {
	boom := errors.New("boom")
	r := NewRegistry(nil)
	r.Register("rtf", failing{err: boom})

	assert.True(t, r.Supports(".RTF"))

	_, err := r.Extract(context.Background(), "cv.rtf")
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "cv.rtf")
}

func TestRegistryHonoursCancelledContext(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "text")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRegistry(nil).Extract(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.pdf", "")
	writeFile(t, dir, "a.PDF", "")
	writeFile(t, dir, "c.docx", "")
	writeFile(t, dir, "notes.txt", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.pdf"), 0o755))

	paths, err := Discover(dir, []string{".pdf"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.PDF"), filepath.Join(dir, "b.pdf")}, paths)

	paths, err = Discover(dir, []string{"pdf", "docx"})
	require.NoError(t, err)
	assert.Len(t, paths, 3)

	_, err = Discover(filepath.Join(dir, "missing"), []string{".pdf"})
	assert.Error(t, err)
}
