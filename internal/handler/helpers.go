package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"mdsidecar/internal/domain"
	"mdsidecar/internal/httputil"
)

// handleError maps pipeline errors to HTTP responses. Errors outside the
// taxonomy surface as a generic 422: full detail is logged server-side but
// never leaks to the client.
func handleError(logger *slog.Logger, w http.ResponseWriter, err error) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
		return
	}

	logger.Error("unexpected conversion error", "error", err)
	httputil.RespondError(w, http.StatusUnprocessableEntity, "conversion failed")
}
