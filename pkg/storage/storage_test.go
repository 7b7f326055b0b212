package storage

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Upload(t *testing.T) {
	var gotMethod, gotPath, gotAuth, gotContentType string
	var gotBody []byte

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "secret")
	err := c.Upload(context.Background(), "blogs", "7/abc.png", []byte{1, 2, 3}, "image/png")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/object/blogs/7/abc.png", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "image/png", gotContentType)
	assert.Equal(t, []byte{1, 2, 3}, gotBody)
}

func TestClient_Upload_ErrorMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"statusCode":"400","error":"InvalidRequest","message":"bucket not found"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "secret")
	err := c.Upload(context.Background(), "nope", "7/abc.png", []byte{1}, "image/png")
	require.Error(t, err)
	// 远端错误信息原样返回给调用方
	assert.Equal(t, "bucket not found", err.Error())
}

func TestClient_PublicURL(t *testing.T) {
	c := NewClient("https://storage.example.com/", "secret")
	url := c.PublicURL("profile", "9/x.jpg")
	assert.Equal(t, "https://storage.example.com/object/public/profile/9/x.jpg", url)
}

func TestClient_Remove(t *testing.T) {
	var gotMethod, gotPath string
	var gotPrefixes map[string][]string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotPrefixes)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "secret")
	err := c.Remove(context.Background(), "blogs", []string{"7/old.png"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/object/blogs", gotPath)
	assert.Equal(t, []string{"7/old.png"}, gotPrefixes["prefixes"])
}

func TestClient_Remove_StatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "secret")
	err := c.Remove(context.Background(), "blogs", []string{"7/old.png"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
