// Package v1 exposes the IdiomBridge HTTP API.
package v1

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/idiombridge/idiombridge/internal/profile"
	"github.com/idiombridge/idiombridge/plugin/ai"
	"github.com/idiombridge/idiombridge/plugin/detect"
	"github.com/idiombridge/idiombridge/plugin/langid"
	"github.com/idiombridge/idiombridge/plugin/tts"
	"github.com/idiombridge/idiombridge/store"
)

type APIV1Service struct {
	Profile  *profile.Profile
	Store    *store.Store
	Resolver *langid.Resolver

	// Equivalents is nil when the AI layer is disabled or misconfigured.
	Equivalents ai.EquivalentFinder
	TTS         *tts.Client
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store) *APIV1Service {
	service := &APIV1Service{
		Profile: profile,
		Store:   store,
	}

	detector, err := detect.New(&detect.Config{
		Provider: profile.DetectorProvider,
		BaseURL:  profile.DetectorBaseURL,
		Timeout:  profile.DetectorTimeout,
	})
	if err != nil {
		slog.Warn("external detector unavailable, resolving heuristically only", "provider", profile.DetectorProvider, "error", err)
		detector = nil
	}
	service.Resolver = langid.NewResolver(detector, profile.DetectorTimeout)

	if profile.IsAIEnabled() {
		aiConfig := ai.NewConfigFromProfile(profile)
		if err := aiConfig.Validate(); err == nil {
			if finder, err := ai.NewEquivalentService(&aiConfig.LLM); err == nil {
				service.Equivalents = finder
			} else {
				slog.Warn("equivalent finder unavailable", "provider", aiConfig.LLM.Provider, "error", err)
			}
		}
	}

	if profile.TTSEnabled {
		service.TTS = tts.NewClient(&tts.Config{BaseURL: profile.TTSBaseURL})
	}

	return service
}

// Register attaches all v1 routes to the given Echo instance.
func (s *APIV1Service) Register(e *echo.Echo) {
	g := e.Group("/api/v1", s.instrument)
	g.POST("/language/detect", s.DetectLanguage)
	g.POST("/idiom/equivalents", s.FindEquivalents)
	g.GET("/tts", s.Speak)
	g.GET("/lookups", s.ListLookups)
}

// instrument records request count and latency for every v1 endpoint.
func (s *APIV1Service) instrument(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		endpoint := c.Path()
		httpRequestDuration.WithLabelValues(c.Request().Method, endpoint).Observe(time.Since(start).Seconds())

		status := c.Response().Status
		if err != nil {
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
		}
		httpRequestsTotal.WithLabelValues(c.Request().Method, endpoint, strconv.Itoa(status)).Inc()
		return err
	}
}
