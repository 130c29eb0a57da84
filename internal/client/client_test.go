package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arstudio/internal/editor"
	"arstudio/internal/models"
)

func TestCreateObjectRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/projects/p1/objects", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var obj models.SceneObject
		require.NoError(t, json.NewDecoder(r.Body).Decode(&obj))
		assert.Equal(t, models.KindText, obj.Kind)

		obj.ID = "srv-1"
		obj.ProjectID = "p1"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(obj)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	created, err := c.CreateObject(context.Background(), "p1",
		models.NewSceneObject("local-1", "Text", models.KindText))
	require.NoError(t, err)
	assert.Equal(t, "srv-1", created.ID)
	assert.Equal(t, "p1", created.ProjectID)
}

func TestErrorBodySurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"error": true, "message": "project not found"})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	_, _, err := c.FetchProject(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project not found")
	assert.Contains(t, err.Error(), "404")
}

func TestUploadAssetMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/assets", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "photo.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x89, 0x50}, data)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Asset{ID: "a1", Kind: models.AssetImage, Name: header.Filename})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	asset, err := c.UploadAsset(context.Background(), editor.RawFile{
		Name:        "photo.png",
		ContentType: "image/png",
		Data:        []byte{0x89, 0x50},
	})
	require.NoError(t, err)
	assert.Equal(t, "a1", asset.ID)
	assert.Equal(t, models.AssetImage, asset.Kind)
}

func TestDeleteObjectNoBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/objects/o1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	assert.NoError(t, c.DeleteObject(context.Background(), "o1"))
}
