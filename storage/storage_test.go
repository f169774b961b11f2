package storage

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	store, err := New(t.TempDir(), "http://localhost:5001", log)
	require.NoError(t, err)
	return store
}

func fileHeader(t *testing.T, name, contentType, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="media"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File["media"][0]
}

func TestSave(t *testing.T) {
	store := newTestStore(t)
	fh := fileHeader(t, "photo.png", "image/png", "fake png bytes")

	upload, err := store.Save(fh)
	require.NoError(t, err)

	assert.Equal(t, "image/png", upload.MimeType)
	assert.True(t, strings.HasPrefix(upload.URL, "http://localhost:5001/uploads/"))
	assert.True(t, strings.HasSuffix(upload.URL, ".png"))

	name := filepath.Base(upload.URL)
	data, err := os.ReadFile(filepath.Join(store.Dir(), name))
	require.NoError(t, err)
	assert.Equal(t, "fake png bytes", string(data))
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)
	fh := fileHeader(t, "photo.png", "image/png", "bytes")

	upload, err := store.Save(fh)
	require.NoError(t, err)

	name := filepath.Base(upload.URL)
	store.Remove(upload.URL)
	_, err = os.Stat(filepath.Join(store.Dir(), name))
	assert.True(t, os.IsNotExist(err))

	// Removing again, or removing a foreign URL, must be harmless.
	store.Remove(upload.URL)
	store.Remove("http://elsewhere/uploads/other.png")
}
