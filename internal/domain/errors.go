package domain

import (
	"fmt"
	"net/http"
)

// StatusClientClosedRequest is the non-standard nginx status code used when
// the client goes away before a response can be written.
const StatusClientClosedRequest = 499

// HTTPError defines errors that carry their own HTTP status code.
// Implementing this interface lets the handler map pipeline errors
// without a central switch over every concrete type.
type HTTPError interface {
	error
	StatusCode() int
}

type (
	// InvalidInputError indicates a bad or missing filename / file part.
	InvalidInputError struct {
		Message string
	}

	// UnsupportedFormatError indicates an extension outside the routing table.
	UnsupportedFormatError struct {
		Extension string
	}

	// PasswordProtectedError indicates an encrypted Office document detected
	// by the OLE2-header pre-check on a ZIP-family extension.
	PasswordProtectedError struct {
		Filename string
	}

	// PayloadTooLargeError indicates the upload exceeded the configured ceiling.
	PayloadTooLargeError struct {
		Limit int64
	}

	// QueueFullError indicates the queue-permit pool was depleted on arrival.
	QueueFullError struct{}

	// ClientDisconnectedError indicates the client went away while the request
	// was queued or executing.
	ClientDisconnectedError struct{}

	// ConversionTimeoutError indicates the external tool exceeded the
	// configured wall-clock timeout and was killed.
	ConversionTimeoutError struct {
		Tool string
	}

	// ConversionFailedError carries the single human-readable message extracted
	// from an external tool's diagnostic output. Never a raw stack trace.
	ConversionFailedError struct {
		Tool    string
		Message string
	}
)

func (e *InvalidInputError) Error() string { return e.Message }

func (e *UnsupportedFormatError) Error() string {
	ext := e.Extension
	if ext == "" {
		ext = "(none)"
	}
	return fmt.Sprintf("unsupported file extension: %s", ext)
}

func (e *PasswordProtectedError) Error() string {
	return "file appears to be password-protected; remove the password and try again"
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("file too large (limit %d bytes)", e.Limit)
}

func (e *QueueFullError) Error() string { return "too many conversion requests queued" }

func (e *ClientDisconnectedError) Error() string { return "client disconnected" }

func (e *ConversionTimeoutError) Error() string { return "conversion timed out" }

func (e *ConversionFailedError) Error() string {
	if e.Message == "" {
		return "conversion failed"
	}
	return fmt.Sprintf("conversion failed: %s", e.Message)
}

func (e *InvalidInputError) StatusCode() int       { return http.StatusBadRequest }
func (e *UnsupportedFormatError) StatusCode() int  { return http.StatusUnsupportedMediaType }
func (e *PasswordProtectedError) StatusCode() int  { return http.StatusUnsupportedMediaType }
func (e *PayloadTooLargeError) StatusCode() int    { return http.StatusRequestEntityTooLarge }
func (e *QueueFullError) StatusCode() int          { return http.StatusTooManyRequests }
func (e *ClientDisconnectedError) StatusCode() int { return StatusClientClosedRequest }
func (e *ConversionTimeoutError) StatusCode() int  { return http.StatusGatewayTimeout }
func (e *ConversionFailedError) StatusCode() int   { return http.StatusUnprocessableEntity }
