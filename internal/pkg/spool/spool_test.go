package spool

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartFixture(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestSaveReadRemove(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	content := []byte("%PDF-1.4 spooled")
	f, err := store.Save(multipartFixture(t, "notes.pdf", content))
	require.NoError(t, err)

	assert.Equal(t, "notes.pdf", f.Filename)
	assert.EqualValues(t, len(content), f.Size)

	got, err := f.Read()
	require.NoError(t, err)
	assert.Equal(t, content, got)

	f.Remove()
	_, err = os.Stat(f.Path)
	assert.True(t, os.IsNotExist(err))

	// Second removal is a no-op.
	f.Remove()
}
