package publish

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string]string
	types   map[string]string
	err     error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.objects[key] = string(body)
	f.types[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	return dir
}

func TestUploadDir(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"report.html":            "<html></html>",
		"charts/bench.png":       "png",
		"data/aggregates.json":   "[]",
		"awards.pdf":             "%PDF",
		"nested/deeper/notes.md": "# notes",
	})
	fake := &fakeS3{objects: map[string]string{}, types: map[string]string{}}
	u := &Uploader{Client: fake, Bucket: "fpl", Prefix: "/seasons/2024-2025/"}

	keys, err := u.UploadDir(context.Background(), dir)
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{
		"seasons/2024-2025/awards.pdf",
		"seasons/2024-2025/charts/bench.png",
		"seasons/2024-2025/data/aggregates.json",
		"seasons/2024-2025/nested/deeper/notes.md",
		"seasons/2024-2025/report.html",
	}, keys)

	assert.Equal(t, "<html></html>", fake.objects["fpl/seasons/2024-2025/report.html"])
	assert.Equal(t, "text/html; charset=utf-8", fake.types["fpl/seasons/2024-2025/report.html"])
	assert.Equal(t, "image/png", fake.types["fpl/seasons/2024-2025/charts/bench.png"])
	assert.Equal(t, "application/pdf", fake.types["fpl/seasons/2024-2025/awards.pdf"])
}

func TestUploadDirError(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.html": "x"})
	boom := errors.New("denied")
	u := &Uploader{Client: &fakeS3{err: boom}, Bucket: "fpl"}

	_, err := u.UploadDir(context.Background(), dir)
	assert.ErrorIs(t, err, boom)
}

func TestKeyWithoutPrefix(t *testing.T) {
	u := &Uploader{}
	assert.Equal(t, "charts/x.png", u.Key(filepath.Join("charts", "x.png")))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", ContentType("a.JSON"))
	assert.Equal(t, "application/octet-stream", ContentType("noext"))
}
