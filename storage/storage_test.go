package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestFileName(t *testing.T) {
	name := FileName(".PNG", "SKU 1/2", "Navy Blue")

	assert.True(t, strings.HasPrefix(name, "SKU-1-2_Navy-Blue_"), name)
	assert.True(t, strings.HasSuffix(name, ".png"), name)
	assert.NotEqual(t, name, FileName(".PNG", "SKU 1/2", "Navy Blue"))
}

func TestFileName_DropsEmptyParts(t *testing.T) {
	name := FileName(".jpg", "", "../..")
	assert.NotContains(t, name, "/")
	assert.False(t, strings.HasPrefix(name, "_"), name)
}

func TestLocalSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocal(dir, "/static/uploads/")
	require.NoError(t, err)

	url, err := store.Save(fileHeader(t, "photo.jpg", []byte("jpeg-bytes")), "TEE-1", "red")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/static/uploads/TEE-1_red_"), url)
	assert.True(t, strings.HasSuffix(url, ".jpg"), url)

	written, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), written)
}
