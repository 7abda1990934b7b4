package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"carcrafter/internal/builder"
	"carcrafter/internal/catalog"
	"carcrafter/internal/config"
	"carcrafter/internal/httpclient"
	"carcrafter/internal/library"
	"carcrafter/internal/openai"
	"carcrafter/internal/prompt"
	"carcrafter/internal/session"
)

type server struct {
	cfg      config.Config
	sessions *session.Store
	lib      *library.Store
	logger   *slog.Logger
}

type apiError struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg)

	httpClient := httpclient.New(httpclient.Options{
		PreferIPv4: cfg.PreferIPv4,
		Timeout:    cfg.HTTPTimeout,
	})

	svc := openai.New(openai.Options{
		APIKey:     cfg.OpenAIAPIKey,
		BaseURL:    cfg.OpenAIBaseURL,
		Model:      cfg.ImageModel,
		HTTPClient: httpClient,
		Logger:     logger,
	})

	fetcher := &builder.HTTPFetcher{Client: httpClient}
	compiler := prompt.New(prompt.DefaultTables())

	sessions := session.NewStore(session.Options{
		NewBuilder: func() *builder.Builder {
			return builder.New(builder.Options{
				Service:  svc,
				Fetcher:  fetcher,
				Compiler: compiler,
				Logger:   logger,
			})
		},
	})

	lib := library.NewStore(library.Options{
		Path:     cfg.LibraryPath,
		Capacity: cfg.LibraryCapacity,
		Logger:   logger,
	})

	s := &server{cfg: cfg, sessions: sessions, lib: lib, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/upload", s.handleUpload)
	mux.HandleFunc("POST /api/reset", s.handleReset)
	mux.HandleFunc("GET /api/catalog", s.handleCatalog)
	mux.HandleFunc("GET /api/library", s.handleLibraryList)
	mux.HandleFunc("POST /api/library", s.handleLibrarySave)
	mux.HandleFunc("DELETE /api/library/{id}", s.handleLibraryDelete)
	mux.HandleFunc("DELETE /api/library", s.handleLibraryClear)

	srv := &http.Server{
		Addr:              cfg.WebAddr,
		Handler:           withLogging(mux, logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       90 * time.Second,
	}

	logger.Info("web started", "addr", cfg.WebAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "err", err)
	}
}

type modSelection struct {
	Enabled  bool   `json:"enabled"`
	OptionID string `json:"optionId"`
}

type vehiclePayload struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  string `json:"year"`
	Color string `json:"color"`
}

type generateRequest struct {
	Action   string                  `json:"action"`
	FreeText string                  `json:"freeText"`
	Pack     string                  `json:"pack,omitempty"`
	Quality  string                  `json:"quality"`
	Mods     map[string]modSelection `json:"mods"`
	Vehicle  vehiclePayload          `json:"vehicle"`
}

type generateResponse struct {
	Prompt string `json:"prompt"`
	View   string `json:"view"`
	Phase  string `json:"phase"`
	URL    string `json:"url,omitempty"`
	B64    string `json:"b64,omitempty"`
}

func (s *server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid request body"})
		return
	}

	mods, err := toSelections(req.Mods)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error(), Kind: string(builder.KindInvalidInput)})
		return
	}

	freeText := req.FreeText
	if req.Pack != "" {
		pack, ok := catalog.LookupPack(catalog.PackID(req.Pack))
		if !ok {
			writeJSON(w, http.StatusBadRequest, apiError{Error: "unknown pack", Kind: string(builder.KindInvalidInput)})
			return
		}
		mods = pack.Apply(mods)
		if strings.TrimSpace(freeText) == "" {
			freeText = pack.SeedText
		}
	}

	quality := prompt.QualityStandard
	if prompt.Quality(req.Quality) == prompt.QualityUltra {
		quality = prompt.QualityUltra
	}

	breq := builder.Request{
		FreeText: freeText,
		Mods:     mods,
		Vehicle: prompt.Vehicle{
			Make:  strings.TrimSpace(req.Vehicle.Make),
			Model: strings.TrimSpace(req.Vehicle.Model),
			Year:  strings.TrimSpace(req.Vehicle.Year),
			Color: strings.TrimSpace(req.Vehicle.Color),
		},
		Quality: quality,
	}

	if !sess.InFlight.TryAcquire(1) {
		writeJSON(w, http.StatusConflict, apiError{Error: "a generation is already in progress"})
		return
	}
	defer sess.InFlight.Release(1)

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()

	var result builder.Result
	switch req.Action {
	case "stock":
		result, err = sess.Builder.GenerateStock(ctx, breq)
	default:
		if sess.Builder.Phase() == builder.PhaseUploadReady {
			result, err = sess.Builder.EditUploadedPhoto(ctx, breq)
		} else {
			result, err = sess.Builder.ApplyMods(ctx, breq)
		}
	}
	if err != nil {
		s.writeBuilderError(w, err)
		return
	}

	resp := generateResponse{
		Prompt: result.Prompt,
		View:   string(result.View),
		Phase:  sess.Builder.Phase().String(),
		URL:    result.Image.URL,
	}
	if len(result.Image.Data) > 0 {
		resp.B64 = base64.StdEncoding.EncodeToString(result.Image.Data)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleUpload(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	const maxUploadBytes = 25 << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid multipart form"})
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "missing image"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "failed to read image"})
		return
	}

	if err := sess.Builder.SetUploadedPhoto(data); err != nil {
		s.writeBuilderError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"phase": sess.Builder.Phase().String()})
}

func (s *server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.sessions.Reset(sess.ID)
	writeJSON(w, http.StatusOK, map[string]string{"phase": sess.Builder.Phase().String()})
}

type catalogOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type catalogCategory struct {
	ID          string          `json:"id"`
	Label       string          `json:"label"`
	Description string          `json:"description"`
	Options     []catalogOption `json:"options"`
}

type catalogPack struct {
	ID       string            `json:"id"`
	Label    string            `json:"label"`
	Preset   map[string]string `json:"preset"`
	SeedText string            `json:"seedText"`
}

type catalogCar struct {
	Make   string   `json:"make"`
	Models []string `json:"models"`
}

type catalogResponse struct {
	Categories []catalogCategory `json:"categories"`
	Packs      []catalogPack     `json:"packs"`
	Cars       []catalogCar      `json:"cars"`
	Years      []int             `json:"years"`
}

func (s *server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	resp := catalogResponse{Years: catalog.Years()}

	for _, cat := range catalog.Categories() {
		out := catalogCategory{
			ID:          string(cat.ID),
			Label:       cat.Label,
			Description: cat.Description,
		}
		for _, opt := range cat.Options {
			out.Options = append(out.Options, catalogOption{ID: opt.ID, Label: opt.Label})
		}
		resp.Categories = append(resp.Categories, out)
	}

	for _, pack := range catalog.Packs() {
		out := catalogPack{
			ID:       string(pack.ID),
			Label:    pack.Label,
			Preset:   make(map[string]string, len(pack.Preset)),
			SeedText: pack.SeedText,
		}
		for id, optionID := range pack.Preset {
			out.Preset[string(id)] = optionID
		}
		resp.Packs = append(resp.Packs, out)
	}

	for _, car := range catalog.CarOptions() {
		resp.Cars = append(resp.Cars, catalogCar{Make: car.Make, Models: car.Models})
	}

	writeJSON(w, http.StatusOK, resp)
}

type librarySaveRequest struct {
	Prompt        string `json:"prompt"`
	OriginalImage string `json:"originalImage,omitempty"`
	ResultImage   string `json:"resultImage"`
}

func (s *server) handleLibraryList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"entries": s.lib.List()})
}

func (s *server) handleLibrarySave(w http.ResponseWriter, r *http.Request) {
	var req librarySaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.ResultImage) == "" {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "resultImage is required"})
		return
	}

	entry, err := s.lib.Save(req.Prompt, req.OriginalImage, req.ResultImage)
	if err != nil {
		// The store already recovered as far as it could; the save
		// itself still reflects the entry that was kept in memory.
		s.logger.Warn("library save degraded", "err", err)
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *server) handleLibraryDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.lib.Delete(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to update library"})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, apiError{Error: "entry not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *server) handleLibraryClear(w http.ResponseWriter, _ *http.Request) {
	if err := s.lib.Clear(); err != nil {
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to clear library"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"cleared": true})
}

func (s *server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := strings.TrimSpace(r.Header.Get("X-Session-ID"))
	if id == "" {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "missing X-Session-ID header"})
		return nil, false
	}
	return s.sessions.Get(id), true
}

func (s *server) writeBuilderError(w http.ResponseWriter, err error) {
	kind := builder.KindOf(err)

	status := http.StatusBadGateway
	switch kind {
	case builder.KindInvalidInput:
		status = http.StatusBadRequest
	case builder.KindPayloadTooLarge:
		status = http.StatusRequestEntityTooLarge
	case builder.KindMissingConfiguration:
		status = http.StatusInternalServerError
	}

	message := err.Error()
	var berr *builder.Error
	if errors.As(err, &berr) {
		message = berr.Message
	}

	s.logger.Error("generation failed", "kind", string(kind), "err", err)
	writeJSON(w, status, apiError{Error: message, Kind: string(kind)})
}

func toSelections(raw map[string]modSelection) (catalog.Selections, error) {
	mods := catalog.EmptySelections()
	for id, sel := range raw {
		categoryID := catalog.CategoryID(id)
		if _, ok := catalog.Lookup(categoryID); !ok {
			return nil, errors.New("unknown modification category: " + id)
		}
		if sel.Enabled && !catalog.ValidOption(categoryID, sel.OptionID) {
			return nil, errors.New("unknown option for " + id + ": " + sel.OptionID)
		}
		mods[categoryID] = catalog.Selection{Enabled: sel.Enabled, OptionID: sel.OptionID}
	}
	return mods, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if cfg.Debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}

func withLogging(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("http", "method", r.Method, "path", r.URL.Path, "dur_ms", time.Since(start).Milliseconds())
	})
}
