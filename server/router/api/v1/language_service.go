package v1

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/idiombridge/idiombridge/server/internal/observability"
	"github.com/idiombridge/idiombridge/store"
)

// DetectLanguageRequest is the body of POST /api/v1/language/detect.
type DetectLanguageRequest struct {
	Text string `json:"text"`
}

// DetectLanguage identifies the language of the posted text.
// POST /api/v1/language/detect
func (s *APIV1Service) DetectLanguage(c echo.Context) error {
	log := observability.NewRequestContext(slog.Default(), "language/detect")

	var req DetectLanguageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	start := time.Now()
	resolution := s.Resolver.Resolve(c.Request().Context(), req.Text)
	detectorLatency.WithLabelValues(s.Profile.DetectorProvider).Observe(time.Since(start).Seconds())
	resolutionsTotal.WithLabelValues(string(resolution.Method), resolution.Language.String()).Inc()

	log.Info("language resolved",
		slog.String(observability.LogFieldLanguage, resolution.Language.String()),
		slog.String(observability.LogFieldMethod, string(resolution.Method)),
		slog.Int(observability.LogFieldTextLen, len(req.Text)),
		slog.Int64(observability.LogFieldDuration, log.DurationMs()),
	)

	// History is best effort. A write failure must not fail the lookup.
	if s.Store != nil {
		if _, err := s.Store.CreateLookup(c.Request().Context(), &store.Lookup{
			Text:       req.Text,
			Language:   resolution.Language.String(),
			Method:     string(resolution.Method),
			Confidence: resolution.Confidence,
		}); err != nil {
			log.Warn("failed to record lookup", slog.String("error", err.Error()))
		}
	}

	return c.JSON(http.StatusOK, resolution)
}

// ListLookups returns the most recent lookup history.
// GET /api/v1/lookups?limit=
func (s *APIV1Service) ListLookups(c echo.Context) error {
	if s.Store == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "lookup history is not available"})
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil || limit < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid limit"})
		}
	}

	lookups, err := s.Store.ListLookups(c.Request().Context(), limit)
	if err != nil {
		slog.Error("failed to list lookups", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list lookups"})
	}
	if lookups == nil {
		lookups = []*store.Lookup{}
	}
	return c.JSON(http.StatusOK, lookups)
}
