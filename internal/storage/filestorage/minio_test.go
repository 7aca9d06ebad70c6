package filestorage_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"architylez/internal/config"
	"architylez/internal/storage/filestorage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 понимает ровно те запросы, которые делает MinioFileStorage.
type fakeS3 struct {
	mu      sync.Mutex
	buckets map[string]bool
	objects map[string][]byte
	types   map[string]string
	policy  string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{
		buckets: map[string]bool{},
		objects: map[string][]byte{},
		types:   map[string]string{},
	}
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 2)
	bucket := parts[0]
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}

	switch {
	case key == "" && r.Method == http.MethodHead:
		if !f.buckets[bucket] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case key == "" && r.Method == http.MethodPut && r.URL.Query().Has("policy"):
		b, _ := io.ReadAll(r.Body)
		f.policy = string(b)
		w.WriteHeader(http.StatusNoContent)
	case key == "" && r.Method == http.MethodPut:
		f.buckets[bucket] = true
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut:
		b, _ := io.ReadAll(r.Body)
		f.objects[key] = b
		f.types[key] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodDelete:
		delete(f.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func (f *fakeS3) object(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return f.types[key], ok
}

func (f *fakeS3) state() (map[string]bool, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buckets, f.policy
}

func setupMinio(t *testing.T, tpl string) (*filestorage.MinioFileStorage, *fakeS3) {
	t.Helper()

	fake := newFakeS3()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	fs, err := filestorage.NewMinioFileStorage(context.Background(), config.MinioConfig{
		Endpoint:           u.Host,
		AccessKey:          "minio",
		SecretKey:          "minio-secret",
		Bucket:             "assets",
		PublicURL:          "https://cdn.example.com",
		PreviewURLTemplate: tpl,
	})
	require.NoError(t, err)

	return fs, fake
}

func TestMinioFileStorage_EnsureBucket(t *testing.T) {
	_, fake := setupMinio(t, "")

	buckets, policy := fake.state()
	assert.True(t, buckets["assets"])
	assert.Contains(t, policy, "arn:aws:s3:::assets/*")
	assert.Contains(t, policy, "s3:GetObject")
}

func TestMinioFileStorage_StoreDelete(t *testing.T) {
	fs, fake := setupMinio(t, "")
	ctx := context.Background()

	ref, err := fs.Store(ctx, filestorage.File{
		Field:       "images",
		Filename:    "Room.PNG",
		ContentType: "image/png",
		Data:        pngHeader,
	}, "projects/images")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref.Identifier, "projects/images/"))
	assert.True(t, strings.HasSuffix(ref.Identifier, ".png"))
	assert.Equal(t, "https://cdn.example.com/assets/"+ref.Identifier, ref.URL)
	assert.False(t, ref.IsRelative())
	contentType, ok := fake.object(ref.Identifier)
	assert.True(t, ok)
	assert.Equal(t, "image/png", contentType)

	require.NoError(t, fs.Delete(ctx, ref.Identifier))
	_, ok = fake.object(ref.Identifier)
	assert.False(t, ok)

	// удаление отсутствующего объекта не ошибка
	assert.NoError(t, fs.Delete(ctx, ref.Identifier))
	assert.NoError(t, fs.Delete(ctx, ""))
}

func TestMinioFileStorage_DerivePreview(t *testing.T) {
	tests := []struct {
		name string
		tpl  string
		want string
	}{
		{
			name: "default template",
			want: "https://cdn.example.com/assets/catalogues/pdf/abc.jpg?page=1",
		},
		{
			name: "custom template",
			tpl:  "https://img.example.com/render?src={bucket}/{key}&page=1&format=jpg",
			want: "https://img.example.com/render?src=assets/catalogues%2Fpdf%2Fabc.pdf&page=1&format=jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, _ := setupMinio(t, tt.tpl)

			got, err := fs.DerivePreview(context.Background(), "catalogues/pdf/abc.pdf")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("empty identifier", func(t *testing.T) {
		fs, _ := setupMinio(t, "")
		_, err := fs.DerivePreview(context.Background(), "")
		assert.Error(t, err)
	})
}

func TestNewMinioFileStorage_Misconfigured(t *testing.T) {
	_, err := filestorage.NewMinioFileStorage(context.Background(), config.MinioConfig{Bucket: "assets"})
	assert.Error(t, err)

	_, err = filestorage.NewMinioFileStorage(context.Background(), config.MinioConfig{Endpoint: "localhost:9000"})
	assert.Error(t, err)
}
