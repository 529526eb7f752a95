package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("news", "Фото Объекта.JPG")
	assert.True(t, strings.HasPrefix(key, "news/"), key)
	assert.True(t, strings.HasSuffix(key, ".jpg"), key)

	assert.True(t, strings.HasPrefix(ObjectKey("", "a.png"), "uploads/"))
	assert.True(t, strings.HasPrefix(ObjectKey("../../etc", "a.png"), "etc/"))
	assert.NotContains(t, ObjectKey("news", "../../passwd"), "..")
}

func TestS3UploadAgainstCompatibleEndpoint(t *testing.T) {
	var gotMethod, gotPath, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("ETag", `"abc"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s, err := NewS3ObjectStorage(context.Background(), S3Config{
		Endpoint:  srv.URL,
		Region:    "us-east-1",
		Bucket:    "towerup",
		AccessKey: "key",
		SecretKey: "secret",
	})
	require.NoError(t, err)

	url, err := s.Upload(context.Background(), "uploads/plan.png", "image/png", []byte("png-bytes"))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/towerup/uploads/plan.png", gotPath)
	assert.Equal(t, "image/png", gotType)
	assert.Equal(t, srv.URL+"/towerup/uploads/plan.png", url)
}

func TestS3DeletePrefixListsThenDeletes(t *testing.T) {
	var listedPrefix, deleteBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		switch {
		case r.Method == http.MethodGet && r.URL.Query().Get("list-type") == "2":
			listedPrefix = r.URL.Query().Get("prefix")
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
<Name>towerup</Name><Prefix>applications/offer/1/</Prefix><KeyCount>2</KeyCount><MaxKeys>1000</MaxKeys><IsTruncated>false</IsTruncated>
<Contents><Key>applications/offer/1/1-a.pdf</Key><Size>3</Size></Contents>
<Contents><Key>applications/offer/1/2-b.pdf</Key><Size>3</Size></Contents>
</ListBucketResult>`)
		case r.Method == http.MethodPost && r.URL.Query().Has("delete"):
			body, _ := io.ReadAll(r.Body)
			deleteBody = string(body)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>
<DeleteResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/"></DeleteResult>`)
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	s, err := NewS3ObjectStorage(context.Background(), S3Config{
		Endpoint:  srv.URL,
		Region:    "us-east-1",
		Bucket:    "towerup",
		AccessKey: "key",
		SecretKey: "secret",
	})
	require.NoError(t, err)

	require.NoError(t, s.DeletePrefix(context.Background(), "applications/offer/1/"))
	assert.Equal(t, "applications/offer/1/", listedPrefix)
	assert.Contains(t, deleteBody, "applications/offer/1/1-a.pdf")
	assert.Contains(t, deleteBody, "applications/offer/1/2-b.pdf")

	assert.Error(t, s.DeletePrefix(context.Background(), "/"))
}

func TestS3PublicURLOverride(t *testing.T) {
	s, err := NewS3ObjectStorage(context.Background(), S3Config{
		Region:    "eu-central-1",
		Bucket:    "towerup",
		AccessKey: "key",
		SecretKey: "secret",
		PublicURL: "https://cdn.towerup.kz/",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.towerup.kz/news/a.jpg", s.PublicURL("news/a.jpg"))
}
