package service

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader 最小 PNG 文件头，足够让 DetectContentType 识别为 image/png
var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func newLocalStorageService(t *testing.T) (*StorageService, string) {
	t.Helper()
	dir := t.TempDir()
	svc, err := NewStorageService(&StorageConfig{
		Provider: "local",
		LocalDir: dir,
		LocalURL: "http://localhost:8080/uploads",
	})
	require.NoError(t, err)
	return svc, dir
}

func TestStorageService_UploadAndDelete(t *testing.T) {
	svc, dir := newLocalStorageService(t)
	ctx := context.Background()

	url, err := svc.Upload(ctx, []byte("hello"), "note.txt", "text/plain")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".txt"))

	// 落盘的文件名与返回 URL 一致
	name := url[strings.LastIndex(url, "/")+1:]
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, svc.Delete(ctx, url))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))

	// 删除不存在的文件不算错误
	assert.NoError(t, svc.Delete(ctx, url))
}

func TestStorageService_UploadProductImage_RejectsNonImage(t *testing.T) {
	svc, _ := newLocalStorageService(t)
	ctx := context.Background()

	_, err := svc.UploadProductImage(ctx, []byte("not an image"), "fake.png")
	assert.Error(t, err, "非图片内容应被拒绝")

	url, err := svc.UploadProductImage(ctx, pngHeader, "cup.png")
	require.NoError(t, err)
	assert.Contains(t, url, "/uploads/")
}

func TestStorageService_UploadVerificationDoc(t *testing.T) {
	svc, dir := newLocalStorageService(t)
	ctx := context.Background()

	content := []byte("%PDF-1.4 fake doc")
	dataURL := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(content)

	url, err := svc.UploadVerificationDoc(ctx, dataURL)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".pdf"))

	name := url[strings.LastIndex(url, "/")+1:]
	got, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestStorageService_UploadVerificationDoc_BadBase64(t *testing.T) {
	svc, _ := newLocalStorageService(t)

	_, err := svc.UploadVerificationDoc(context.Background(), "data:application/pdf;base64,@@not-base64@@")
	assert.Error(t, err)
}

func TestNewStorageProvider_UnknownProvider(t *testing.T) {
	_, err := NewStorageProvider(&StorageConfig{Provider: "cos"})
	assert.Error(t, err)
}

func TestLocalStorage_SignedURLIsPassthrough(t *testing.T) {
	svc, _ := newLocalStorageService(t)

	url := "http://localhost:8080/uploads/x.png"
	signed, err := svc.GetSignedURL(context.Background(), url, 0)
	require.NoError(t, err)
	assert.Equal(t, url, signed)
}
