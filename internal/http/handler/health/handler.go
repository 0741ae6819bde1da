package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

// Check reports an error if the checked dependency is unavailable
type Check func(ctx context.Context) error

type Handler struct {
	checks  map[string]Check
	timeout time.Duration
}

type response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	res := response{
		Status: "ok",
		Checks: map[string]string{},
	}

	status := http.StatusOK

	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			slog.ErrorContext(ctx, "health check failed", slog.String("check", name), slogx.Error(errors.WithStack(err)))
			res.Checks[name] = "failing"
			res.Status = "failing"
			status = http.StatusServiceUnavailable
			continue
		}

		res.Checks[name] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(res); err != nil {
		slog.ErrorContext(ctx, "could not encode health response", slogx.Error(errors.WithStack(err)))
	}
}

func NewHandler(checks map[string]Check) *Handler {
	return &Handler{
		checks:  checks,
		timeout: 5 * time.Second,
	}
}
