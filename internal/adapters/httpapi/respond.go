package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"zoocore/internal/blob"
	"zoocore/internal/core"
	"zoocore/pkg/domain"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error      string           `json:"error"`
	Violations []core.Violation `json:"violations,omitempty"`
}

// mutationBody wraps a written record with the rule warnings it raised.
type mutationBody struct {
	Data       any              `json:"data"`
	Violations []core.Violation `json:"violations"`
}

func newMutationBody(data any, res core.Result) mutationBody {
	violations := res.Violations
	if violations == nil {
		violations = []core.Violation{}
	}
	return mutationBody{Data: data, Violations: violations}
}

// badRequestError marks input the client must fix.
type badRequestError struct {
	err error
}

func (e badRequestError) Error() string { return e.err.Error() }
func (e badRequestError) Unwrap() error { return e.err }

func badRequest(format string, args ...any) error {
	return badRequestError{err: fmt.Errorf(format, args...)}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusFor(err error) int {
	var notFound core.ErrNotFound
	var violation core.RuleViolationError
	var bad badRequestError
	switch {
	case errors.As(err, &notFound), errors.Is(err, blob.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &violation):
		return http.StatusUnprocessableEntity
	case errors.As(err, &bad),
		errors.Is(err, domain.ErrInvalidReference),
		errors.Is(err, core.ErrInvalidTransition),
		errors.Is(err, blob.ErrInvalidKey):
		return http.StatusBadRequest
	case errors.Is(err, blob.ErrExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	body := errorBody{Error: err.Error()}
	var violation core.RuleViolationError
	if errors.As(err, &violation) {
		body.Violations = violation.Result.Violations
	}
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		body.Error = "internal error"
	}
	writeJSON(w, status, body)
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return badRequest("invalid request body: %v", err)
	}
	return nil
}
