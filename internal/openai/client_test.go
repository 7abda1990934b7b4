package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(Options{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	})
}

func TestGenerateSendsExpectedRequest(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody generateRequest

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"url": "https://img.example/out.png"}},
		})
	})

	res, err := c.Generate(context.Background(), "a car", Size1024, QualityMedium)
	require.NoError(t, err)

	assert.Equal(t, "/v1/images/generations", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-image-1", gotBody.Model)
	assert.Equal(t, "a car", gotBody.Prompt)
	assert.Equal(t, "1024x1024", gotBody.Size)
	assert.Equal(t, "medium", gotBody.Quality)
	assert.Equal(t, 1, gotBody.N)
	assert.Equal(t, "https://img.example/out.png", res.URL)
	assert.Empty(t, res.Data)
}

func TestGenerateDecodesInlinePayload(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47}

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"b64_json": base64.StdEncoding.EncodeToString(raw)}},
		})
	})

	res, err := c.Generate(context.Background(), "a car", Size1024, QualityHigh)
	require.NoError(t, err)
	assert.Equal(t, raw, res.Data)
	assert.Equal(t, "image/png", res.MimeType)
	assert.Empty(t, res.URL)
}

func TestEditSendsMultipart(t *testing.T) {
	image := []byte("fake png bytes")

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/images/edits", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "gpt-image-1", r.FormValue("model"))
		assert.Equal(t, "add wheels", r.FormValue("prompt"))
		assert.Equal(t, "1024x1024", r.FormValue("size"))
		assert.Equal(t, "high", r.FormValue("quality"))
		assert.Equal(t, "1", r.FormValue("n"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "input.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"url": "https://img.example/edit.png"}},
		})
	})

	res, err := c.Edit(context.Background(), "add wheels", image, Size1024, QualityHigh)
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/edit.png", res.URL)
}

func TestErrorResponseCarriesUpstreamMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"unsupported image"}}`))
	})

	_, err := c.Generate(context.Background(), "a car", Size1024, QualityMedium)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "unsupported image", apiErr.Message)
}

func TestErrorResponseFallsBackToRawBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("gateway exploded"))
	})

	_, err := c.Generate(context.Background(), "a car", Size1024, QualityMedium)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "gateway exploded", apiErr.Message)
}

func TestEmptyResponseIsNoImage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{}]}`))
	})

	_, err := c.Generate(context.Background(), "a car", Size1024, QualityMedium)
	require.ErrorIs(t, err, ErrNoImage)
}

func TestMissingAPIKey(t *testing.T) {
	c := New(Options{HTTPClient: http.DefaultClient})

	_, err := c.Generate(context.Background(), "a car", Size1024, QualityMedium)
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = c.Edit(context.Background(), "a car", []byte{1}, Size1024, QualityMedium)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestEmptyPromptRejectedLocally(t *testing.T) {
	c := New(Options{APIKey: "k", HTTPClient: http.DefaultClient})

	_, err := c.Generate(context.Background(), "   ", Size1024, QualityMedium)
	assert.Error(t, err)

	_, err = c.Edit(context.Background(), "", []byte{1}, Size1024, QualityMedium)
	assert.Error(t, err)
}
