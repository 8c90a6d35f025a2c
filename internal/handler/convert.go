package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"mdsidecar/internal/admission"
	"mdsidecar/internal/config"
	"mdsidecar/internal/convert"
	"mdsidecar/internal/domain"
	"mdsidecar/internal/httputil"
	"mdsidecar/internal/staging"
)

// multipartMemoryLimit is how much of the parsed form may stay in memory
// before net/http spills parts to temp files.
const multipartMemoryLimit = 32 << 20

// multipartOverhead is slack on top of the upload ceiling for part headers
// and boundaries when capping the whole request body.
const multipartOverhead = 1 << 20

// DocumentConverter runs one conversion of a staged file.
type DocumentConverter interface {
	Convert(ctx context.Context, path, ext string) (string, error)
}

// ToolProber reports whether an external tool is live on the host.
type ToolProber interface {
	Available(name string) bool
}

// ConvertHandler serves the conversion and health endpoints.
type ConvertHandler struct {
	converter DocumentConverter
	admission *admission.Controller
	tools     ToolProber
	cfg       *config.Config
	logger    *slog.Logger
}

func NewConvertHandler(converter DocumentConverter, ctrl *admission.Controller, tools ToolProber, cfg *config.Config, logger *slog.Logger) *ConvertHandler {
	return &ConvertHandler{
		converter: converter,
		admission: ctrl,
		tools:     tools,
		cfg:       cfg,
		logger:    logger,
	}
}

// HealthResponse reports liveness of the two external tool families.
type HealthResponse struct {
	Status              string `json:"status"`
	PandocAvailable     bool   `json:"pandocAvailable"`
	MarkitdownAvailable bool   `json:"markitdownAvailable"`
}

// Health handles GET /health. Probes are fresh on every call; no side
// effects.
func (h *ConvertHandler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:              "ok",
		PandocAvailable:     h.tools.Available("pandoc"),
		MarkitdownAvailable: h.tools.Available("markitdown"),
	})
}

// Convert handles POST /convert: multipart upload in, Markdown text out.
//
// Flow: admit (queue permit) → parse/validate → stage → encrypted pre-check
// and strategy dispatch (inside the converter) → worker permit → cancellable
// conversion → respond. Staging and permits are released on every exit path.
func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	// Arrival-time gate: a full queue rejects before the body is read, so a
	// rejected request performs no staging and no disk I/O.
	ticket, err := h.admission.TryEnqueue()
	if err != nil {
		handleError(h.logger, w, err)
		return
	}
	defer ticket.Done()

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadSize+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			handleError(h.logger, w, &domain.PayloadTooLargeError{Limit: h.cfg.MaxUploadSize})
			return
		}
		handleError(h.logger, w, &domain.InvalidInputError{Message: "invalid multipart form"})
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		handleError(h.logger, w, &domain.InvalidInputError{Message: "missing file part"})
		return
	}
	defer file.Close()

	// The explicit form field takes precedence over the part's filename.
	filename := r.FormValue("filename")
	if filename == "" {
		filename = fileHeader.Filename
	}

	safeName, err := sanitizeFilename(filename)
	if err != nil {
		handleError(h.logger, w, err)
		return
	}

	ext := strings.ToLower(filepath.Ext(safeName))
	if convert.Route(ext) == convert.StrategyUnsupported {
		handleError(h.logger, w, &domain.UnsupportedFormatError{Extension: ext})
		return
	}

	dir, err := staging.NewDir(h.cfg.StagingDir)
	if err != nil {
		h.logger.Error("failed to create staging dir", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	defer dir.Remove()

	path, size, err := dir.Stage(safeName, file, h.cfg.MaxUploadSize)
	if err != nil {
		handleError(h.logger, w, err)
		return
	}

	h.logger.Info("converting", "file", safeName, "ext", ext, "bytes", size)

	// Wait for an execution slot. The request context aborts the wait when
	// the client goes away, so abandoned requests never burn a worker slot.
	if err := ticket.AcquireWorker(r.Context()); err != nil {
		h.logger.Info("client disconnected while queued", "file", safeName)
		handleError(h.logger, w, err)
		return
	}

	// The conversion timeout is detached from the request context: the hard
	// wall-clock limit, not the client connection, bounds the child process.
	convCtx, cancel := context.WithTimeout(context.Background(), h.cfg.ConversionTimeout)
	defer cancel()

	type result struct {
		markdown string
		err      error
	}
	done := make(chan result, 1)
	go func() {
		md, err := h.converter.Convert(convCtx, path, ext)
		done <- result{markdown: md, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			h.logger.Error("conversion failed", "file", safeName, "error", res.err)
			handleError(h.logger, w, res.err)
			return
		}
		// Free disk before the response flush.
		dir.Remove()
		h.logger.Info("conversion complete", "file", safeName, "bytes_out", len(res.markdown))
		httputil.RespondMarkdown(w, res.markdown)
	case <-r.Context().Done():
		// The deferred cancel kills the child; permits and staging are
		// released by the deferred ticket.Done and dir.Remove.
		h.logger.Info("client disconnected during conversion", "file", safeName)
		handleError(h.logger, w, &domain.ClientDisconnectedError{})
	}
}
