package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

const defaultModel = "gpt-image-1"

// ErrMissingAPIKey is returned before any network call when the client
// was built without a credential.
var ErrMissingAPIKey = errors.New("openai: api key is not configured")

// ErrNoImage is returned when the service reports success but the
// response carries neither a URL nor an inline payload.
var ErrNoImage = errors.New("openai: response contains no image")

type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

func New(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		apiKey:     opts.APIKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: opts.HTTPClient,
		logger:     logger,
	}
}

// Generate calls the text-to-image endpoint and returns the extracted
// image reference.
func (c *Client) Generate(ctx context.Context, prompt string, size Size, quality Quality) (Result, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Result{}, errors.New("prompt is empty")
	}
	if c.apiKey == "" {
		return Result{}, ErrMissingAPIKey
	}

	payload := generateRequest{
		Model:   c.model,
		Prompt:  prompt,
		Size:    string(size),
		Quality: string(quality),
		N:       1,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/images/generations", bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("content-type", "application/json")
	req.Header.Set("authorization", "Bearer "+c.apiKey)

	return c.do(req)
}

// Edit calls the image edit endpoint with the base image attached as a
// multipart part, returning the extracted image reference.
func (c *Client) Edit(ctx context.Context, prompt string, image []byte, size Size, quality Quality) (Result, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Result{}, errors.New("prompt is empty")
	}
	if len(image) == 0 {
		return Result{}, errors.New("image is empty")
	}
	if c.apiKey == "" {
		return Result{}, ErrMissingAPIKey
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"model":   c.model,
		"prompt":  prompt,
		"size":    string(size),
		"quality": string(quality),
		"n":       "1",
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return Result{}, fmt.Errorf("write field %s: %w", name, err)
		}
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="input.png"`)
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	if err != nil {
		return Result{}, fmt.Errorf("create image part: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return Result{}, fmt.Errorf("write image part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return Result{}, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/images/edits", &buf)
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("content-type", mw.FormDataContentType())
	req.Header.Set("authorization", "Bearer "+c.apiKey)

	return c.do(req)
}

func (c *Client) do(req *http.Request) (Result, error) {
	if c.httpClient == nil {
		return Result{}, errors.New("http client is nil")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("image api response", "path", req.URL.Path, "status", resp.StatusCode, "bytes", len(rawBody))

	if resp.StatusCode >= 400 {
		return Result{}, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(rawBody),
		}
	}

	var decoded imageResponse
	if err := json.Unmarshal(rawBody, &decoded); err != nil {
		return Result{}, fmt.Errorf("decode response: %w", err)
	}

	return extractResult(decoded, rawBody)
}

// extractResult pulls the image reference out of the heterogeneous
// response shape: a hosted URL when present, otherwise the inline
// base64 payload. Neither is a hard failure carrying the raw body for
// diagnosis.
func extractResult(decoded imageResponse, rawBody []byte) (Result, error) {
	if len(decoded.Data) > 0 {
		item := decoded.Data[0]
		if item.URL != "" {
			return Result{URL: item.URL}, nil
		}
		if item.B64JSON != "" {
			data, err := base64.StdEncoding.DecodeString(item.B64JSON)
			if err != nil {
				return Result{}, fmt.Errorf("decode image payload: %w", err)
			}
			return Result{Data: data, MimeType: "image/png"}, nil
		}
	}
	return Result{}, fmt.Errorf("%w: %s", ErrNoImage, strings.TrimSpace(string(rawBody)))
}

func errorMessage(rawBody []byte) string {
	var decoded errorResponse
	if err := json.Unmarshal(rawBody, &decoded); err == nil && decoded.Error.Message != "" {
		return decoded.Error.Message
	}
	return strings.TrimSpace(string(rawBody))
}
