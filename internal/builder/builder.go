package builder

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"carcrafter/internal/catalog"
	"carcrafter/internal/imaging"
	"carcrafter/internal/openai"
	"carcrafter/internal/prompt"
)

// MaxEncodedBaseChars caps the base64 length of a base image sent
// upstream. Anything above this would be rejected by the service
// anyway, so the call is refused locally.
const MaxEncodedBaseChars = 4_000_000

// Phase tracks which base image, if any, the next edit call will use.
type Phase int

const (
	PhaseNoBase Phase = iota
	PhaseStockReady
	PhaseUploadReady
)

func (p Phase) String() string {
	switch p {
	case PhaseStockReady:
		return "stock_ready"
	case PhaseUploadReady:
		return "upload_ready"
	default:
		return "no_base"
	}
}

// ImageService is the upstream image API surface the orchestrator
// drives. Implemented by openai.Client.
type ImageService interface {
	Generate(ctx context.Context, prompt string, size openai.Size, quality openai.Quality) (openai.Result, error)
	Edit(ctx context.Context, prompt string, image []byte, size openai.Size, quality openai.Quality) (openai.Result, error)
}

// Fetcher downloads a hosted result image so it can serve as the base
// for a follow-up edit.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher is the default Fetcher over a plain HTTP client.
type HTTPFetcher struct {
	Client *http.Client
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Request carries one user action worth of generation input.
type Request struct {
	FreeText string
	Mods     catalog.Selections
	Vehicle  prompt.Vehicle
	Quality  prompt.Quality
}

// Result is a successful generation outcome: the instruction that was
// sent, the camera view it asked for, and the image reference.
type Result struct {
	Prompt string
	View   prompt.CameraView
	Image  openai.Result
}

type Options struct {
	Service  ImageService
	Fetcher  Fetcher
	Compiler *prompt.Compiler
	Logger   *slog.Logger
}

// Builder sequences stock synthesis, mod application, and uploaded
// photo edits against the image service. One Builder serves one user
// session; callers must not issue overlapping calls.
type Builder struct {
	service  ImageService
	fetcher  Fetcher
	compiler *prompt.Compiler
	logger   *slog.Logger

	mu          sync.Mutex
	phase       Phase
	currentBase []byte
}

func New(opts Options) *Builder {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	compiler := opts.Compiler
	if compiler == nil {
		compiler = prompt.New(prompt.DefaultTables())
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = &HTTPFetcher{Client: http.DefaultClient}
	}

	return &Builder{
		service:  opts.Service,
		fetcher:  fetcher,
		compiler: compiler,
		logger:   logger,
	}
}

func (b *Builder) Phase() Phase {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase
}

// Reset drops the current base image and returns the builder to the
// no-base phase.
func (b *Builder) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.phase = PhaseNoBase
	b.currentBase = nil
}

// SetUploadedPhoto normalizes a user-supplied photo and installs it as
// the new base, invalidating any previous stock render.
func (b *Builder) SetUploadedPhoto(data []byte) error {
	if len(data) == 0 {
		return newError(KindInvalidInput, "uploaded image is empty", nil)
	}

	normalized, err := imaging.Normalize(data)
	if err != nil {
		return newError(KindInvalidInput, "could not read the uploaded image", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.currentBase = normalized
	b.phase = PhaseUploadReady
	return nil
}

// CompilePrompt exposes the compiler for callers that want the
// instruction without issuing a generation call.
func (b *Builder) CompilePrompt(in prompt.Input, mode prompt.Mode) string {
	return b.compiler.Compile(in, mode)
}

func (b *Builder) SelectCameraView(freeText string, mods catalog.Selections) prompt.CameraView {
	return b.compiler.SelectCameraView(freeText, mods)
}

// GenerateStock runs phase 1 of the no-upload flow: one generate call
// for a baseline render of the vehicle with no modifications. Free
// text and mods still steer the camera view and the color policy (a
// blackout request blacks out the stock render too); the mod phrases
// themselves wait for ApplyMods. On success the result becomes the
// base for ApplyMods.
func (b *Builder) GenerateStock(ctx context.Context, req Request) (Result, error) {
	view := b.compiler.SelectCameraView(req.FreeText, req.Mods)
	instruction := b.compiler.Compile(prompt.Input{
		FreeText: req.FreeText,
		Mods:     req.Mods,
		Vehicle:  req.Vehicle,
		Quality:  req.Quality,
		View:     view,
	}, prompt.ModeStock)

	b.logger.Info("generating stock image",
		"vehicle", req.Vehicle.Description(),
		"quality", string(req.Quality),
	)

	image, err := b.generate(ctx, instruction, req.Quality)
	if err != nil {
		return Result{}, err
	}

	base := image.Data
	if base == nil {
		base, err = b.fetcher.Fetch(ctx, image.URL)
		if err != nil {
			return Result{}, newError(KindUpstreamError, "could not download the generated image", err)
		}
	}

	b.mu.Lock()
	b.currentBase = base
	b.phase = PhaseStockReady
	b.mu.Unlock()

	return Result{Prompt: instruction, View: view, Image: image}, nil
}

// ApplyMods runs phase 2 of the no-upload flow: an edit of the stored
// stock render with the requested modifications.
func (b *Builder) ApplyMods(ctx context.Context, req Request) (Result, error) {
	b.mu.Lock()
	phase := b.phase
	base := b.currentBase
	b.mu.Unlock()

	if phase != PhaseStockReady || len(base) == 0 {
		return Result{}, newError(KindInvalidInput, "generate a stock image first", nil)
	}
	if err := validateRequest(req); err != nil {
		return Result{}, err
	}

	return b.edit(ctx, req, base, prompt.ModeApplyMods)
}

// EditUploadedPhoto applies the requested modifications directly to
// the uploaded photo in a single edit call.
func (b *Builder) EditUploadedPhoto(ctx context.Context, req Request) (Result, error) {
	b.mu.Lock()
	phase := b.phase
	base := b.currentBase
	b.mu.Unlock()

	if phase != PhaseUploadReady || len(base) == 0 {
		return Result{}, newError(KindInvalidInput, "upload a photo first", nil)
	}
	if err := validateRequest(req); err != nil {
		return Result{}, err
	}

	return b.edit(ctx, req, base, prompt.ModeEditUpload)
}

func (b *Builder) edit(ctx context.Context, req Request, base []byte, mode prompt.Mode) (Result, error) {
	if base64.StdEncoding.EncodedLen(len(base)) > MaxEncodedBaseChars {
		return Result{}, newError(KindPayloadTooLarge, "image is too large to send, use a smaller photo", nil)
	}

	view := b.compiler.SelectCameraView(req.FreeText, req.Mods)
	instruction := b.compiler.Compile(prompt.Input{
		FreeText: req.FreeText,
		Mods:     req.Mods,
		Vehicle:  req.Vehicle,
		Quality:  req.Quality,
		View:     view,
	}, mode)

	b.logger.Info("editing image",
		"phase", b.Phase().String(),
		"view", string(view),
		"prompt_len", len(instruction),
	)

	image, err := b.service.Edit(ctx, instruction, base, openai.Size1024, wireQuality(req.Quality))
	if err == nil {
		return Result{Prompt: instruction, View: view, Image: image}, nil
	}

	// One fallback, and only when the service itself rejected the
	// edit. Transport failures and shape errors surface directly.
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		return Result{}, classify(err, "image edit failed")
	}

	b.logger.Warn("edit rejected, falling back to generate",
		"status", apiErr.StatusCode,
		"message", apiErr.Message,
	)

	image, err = b.generate(ctx, instruction, req.Quality)
	if err != nil {
		return Result{}, err
	}
	return Result{Prompt: instruction, View: view, Image: image}, nil
}

func (b *Builder) generate(ctx context.Context, instruction string, quality prompt.Quality) (openai.Result, error) {
	image, err := b.service.Generate(ctx, instruction, openai.Size1024, wireQuality(quality))
	if err != nil {
		return openai.Result{}, classify(err, "image generation failed")
	}
	return image, nil
}

func validateRequest(req Request) error {
	if strings.TrimSpace(req.FreeText) == "" && !req.Mods.AnyEnabled() {
		return newError(KindInvalidInput, "describe a change or pick at least one modification", nil)
	}
	return nil
}

func wireQuality(q prompt.Quality) openai.Quality {
	if q == prompt.QualityUltra {
		return openai.QualityHigh
	}
	return openai.QualityMedium
}

func classify(err error, message string) *Error {
	switch {
	case errors.Is(err, openai.ErrMissingAPIKey):
		return newError(KindMissingConfiguration, "image service credential is not configured", err)
	case errors.Is(err, openai.ErrNoImage):
		return newError(KindUnexpectedResponse, "image service returned no image", err)
	default:
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return newError(KindUpstreamError, apiErr.Message, err)
		}
		return newError(KindUpstreamError, message, err)
	}
}
