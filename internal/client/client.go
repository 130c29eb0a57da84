// Package client is the REST client the editor uses as its store of
// record. It implements editor.RemoteStore against the studio API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/pkg/errors"

	"arstudio/internal/editor"
	"arstudio/internal/models"
)

const defaultTimeout = 30 * time.Second

// Client talks to the studio REST API with a bearer token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client for the API at baseURL authenticating with token.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

var _ editor.RemoteStore = (*Client)(nil)

// apiError is the error body every endpoint returns on failure.
type apiError struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s failed", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, apiErr.Message, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return errors.Wrap(json.NewDecoder(resp.Body).Decode(out), "failed to decode response")
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "failed to encode request")
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, body, "application/json", out)
}

// FetchProject loads a project with its scene objects in creation order.
func (c *Client) FetchProject(ctx context.Context, id string) (models.Project, []models.SceneObject, error) {
	var project models.Project
	if err := c.doJSON(ctx, http.MethodGet, "/api/projects/"+id, nil, &project); err != nil {
		return models.Project{}, nil, err
	}
	return project, project.SceneObjects, nil
}

func (c *Client) UpdateProject(ctx context.Context, id string, patch models.ProjectPatch) (models.Project, error) {
	var project models.Project
	err := c.doJSON(ctx, http.MethodPut, "/api/projects/"+id, patch, &project)
	return project, err
}

// CreateObject persists a new scene object. The server assigns the
// canonical id; the confirmed record comes back.
func (c *Client) CreateObject(ctx context.Context, projectID string, obj models.SceneObject) (models.SceneObject, error) {
	var created models.SceneObject
	err := c.doJSON(ctx, http.MethodPost, "/api/projects/"+projectID+"/objects", obj, &created)
	return created, err
}

func (c *Client) UpdateObject(ctx context.Context, id string, patch models.SceneObjectPatch) error {
	return c.doJSON(ctx, http.MethodPut, "/api/objects/"+id, patch, nil)
}

func (c *Client) DeleteObject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/objects/"+id, nil, "", nil)
}

// UploadAsset sends the file as a multipart form upload.
func (c *Client) UploadAsset(ctx context.Context, file editor.RawFile) (models.Asset, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	if file.ContentType != "" {
		header.Set("Content-Type", file.ContentType)
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		return models.Asset{}, errors.Wrap(err, "failed to build multipart body")
	}
	if _, err := part.Write(file.Data); err != nil {
		return models.Asset{}, errors.Wrap(err, "failed to write multipart body")
	}
	if err := writer.Close(); err != nil {
		return models.Asset{}, errors.Wrap(err, "failed to finalize multipart body")
	}

	var asset models.Asset
	err = c.do(ctx, http.MethodPost, "/api/assets", &buf, writer.FormDataContentType(), &asset)
	return asset, err
}

func (c *Client) ListAssets(ctx context.Context) ([]models.Asset, error) {
	var assets []models.Asset
	err := c.doJSON(ctx, http.MethodGet, "/api/assets", nil, &assets)
	return assets, err
}
