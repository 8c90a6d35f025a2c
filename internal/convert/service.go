// Package convert routes a staged upload to a converter strategy and runs
// it. Every strategy executes in a separate OS process (external CLI or a
// re-exec of this binary) with a hard timeout and a memory ceiling, so a
// hostile document cannot grow or pin memory in the serving process.
package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"mdsidecar/internal/config"
	"mdsidecar/internal/domain"
	"mdsidecar/internal/tools"
)

// Converters bundles the strategy implementations. Tests substitute fakes.
type Converters struct {
	Pandoc     Converter // generic document CLI (.docx/.rtf/.odt/.txt)
	Markitdown Converter // library-based fallback family (.pptx/.pdf)
	Antiword   Converter // purpose-built legacy .doc extractor
	XLSX       Converter // direct .xlsx read in an isolated worker
	XLS        Converter // tolerant .xls read in an isolated worker
}

// Service picks and runs the converter strategy for one staged file.
type Service struct {
	conv              Converters
	antiwordAvailable func() bool
	logger            *slog.Logger
}

// NewService wires the production converters from the tool registry and
// configured memory ceilings.
func NewService(cfg *config.Config, reg *tools.Registry, logger *slog.Logger) (*Service, error) {
	pandoc, err := newToolConverter(reg, "pandoc", cfg.PandocMemoryLimitMB)
	if err != nil {
		return nil, err
	}
	markitdown, err := newToolConverter(reg, "markitdown", cfg.ToolMemoryLimitMB)
	if err != nil {
		return nil, err
	}
	antiword, err := newToolConverter(reg, "antiword", cfg.ToolMemoryLimitMB)
	if err != nil {
		return nil, err
	}

	return NewServiceWithConverters(
		Converters{
			Pandoc:     pandoc,
			Markitdown: markitdown,
			Antiword:   antiword,
			XLSX:       newWorkerConverter("xlsx", cfg.WorkerMemoryLimitMB),
			XLS:        newWorkerConverter("xls", cfg.WorkerMemoryLimitMB),
		},
		func() bool { return reg.Available("antiword") },
		logger,
	), nil
}

// NewServiceWithConverters builds a service from explicit converters.
// antiwordAvailable is the host-liveness probe for the legacy extractor;
// the extractor only joins the .doc fallback chain when it reports true.
func NewServiceWithConverters(conv Converters, antiwordAvailable func() bool, logger *slog.Logger) *Service {
	if antiwordAvailable == nil {
		antiwordAvailable = func() bool { return false }
	}
	return &Service{conv: conv, antiwordAvailable: antiwordAvailable, logger: logger}
}

// Convert resolves the strategy for ext, applies the encrypted-document
// pre-check, and runs the conversion. ctx carries the hard wall-clock
// timeout for the external invocation.
func (s *Service) Convert(ctx context.Context, path, ext string) (string, error) {
	ext = strings.ToLower(ext)

	strategy := Route(ext)
	if strategy == StrategyUnsupported {
		return "", &domain.UnsupportedFormatError{Extension: ext}
	}

	header, err := sniffHeader(path)
	if err != nil {
		return "", fmt.Errorf("sniff header: %w", err)
	}

	// An OLE2 container where a ZIP is expected means an encrypted Office
	// document; fail fast instead of surfacing the parser's confusion.
	if isEncryptedOffice(ext, header) {
		return "", &domain.PasswordProtectedError{Filename: filepath.Base(path)}
	}

	switch strategy {
	case StrategyGenericDocument:
		return s.run(ctx, s.conv.Pandoc, path)
	case StrategyModernSpreadsheet:
		return s.run(ctx, s.conv.XLSX, path)
	case StrategyLegacySpreadsheet:
		return s.run(ctx, s.conv.XLS, path)
	case StrategyGenericLibrary:
		return s.run(ctx, s.conv.Markitdown, path)
	case StrategyLegacyDocChain:
		return s.convertLegacyDoc(ctx, path, header)
	default:
		return "", &domain.UnsupportedFormatError{Extension: ext}
	}
}

// convertLegacyDoc handles the ambiguous .doc extension. Files that are
// really rich text go straight to pandoc and never fall back; true OLE2 (or
// unrecognized) binaries walk the fallback chain until one converter
// succeeds or all are exhausted.
func (s *Service) convertLegacyDoc(ctx context.Context, path string, header []byte) (string, error) {
	if isRTF(header) {
		s.logger.Debug("legacy .doc is rich text, using generic converter", "file", filepath.Base(path))
		return s.run(ctx, s.conv.Pandoc, path)
	}

	var chain []Converter
	if s.conv.Antiword != nil && s.antiwordAvailable() {
		chain = append(chain, s.conv.Antiword)
	}
	chain = append(chain, s.conv.Markitdown, s.conv.Pandoc)

	var lastErr error
	for _, c := range chain {
		out, err := s.run(ctx, c, path)
		if err == nil {
			return out, nil
		}
		// Timeouts and client cancellation are terminal: never retried.
		var timeoutErr *domain.ConversionTimeoutError
		if errors.As(err, &timeoutErr) || ctx.Err() != nil {
			return "", err
		}
		s.logger.Warn("legacy .doc fallback failed",
			"tool", c.Name(),
			"file", filepath.Base(path),
			"error", err,
		)
		lastErr = err
	}

	s.logger.Error("legacy .doc conversion exhausted all fallbacks",
		"file", filepath.Base(path),
		"error", lastErr,
	)
	return "", &domain.ConversionFailedError{
		Message: "unable to convert legacy .doc file; please re-save it as .docx and try again",
	}
}

func (s *Service) run(ctx context.Context, c Converter, path string) (string, error) {
	start := time.Now()
	out, err := c.Convert(ctx, path)
	s.logger.Debug("converter finished",
		"tool", c.Name(),
		"file", filepath.Base(path),
		"duration_ms", time.Since(start).Milliseconds(),
		"ok", err == nil,
	)
	return out, err
}
