package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/idiombridge/idiombridge/plugin/langid"
	"github.com/idiombridge/idiombridge/server/internal/observability"
)

// FindEquivalentsRequest is the body of POST /api/v1/idiom/equivalents.
// SourceLanguage is a BCP-47 code; when empty the source is resolved from the
// idiom text itself.
type FindEquivalentsRequest struct {
	Idiom          string   `json:"idiom"`
	SourceLanguage string   `json:"sourceLanguage"`
	Targets        []string `json:"targets"`
}

// FindEquivalentsResponse carries the resolved source and the equivalents the
// model produced.
type FindEquivalentsResponse struct {
	Source      langid.Language `json:"source"`
	Equivalents []EquivalentView `json:"equivalents"`
}

// EquivalentView is one equivalent in API form.
type EquivalentView struct {
	Language langid.Language `json:"language"`
	Code     string          `json:"code"`
	Idiom    string          `json:"idiom"`
	Literal  string          `json:"literal"`
	Meaning  string          `json:"meaning"`
}

// FindEquivalents asks the LLM for idiom equivalents in the requested
// target languages.
// POST /api/v1/idiom/equivalents
func (s *APIV1Service) FindEquivalents(c echo.Context) error {
	log := observability.NewRequestContext(slog.Default(), "idiom/equivalents")

	if s.Equivalents == nil {
		equivalentsTotal.WithLabelValues("disabled").Inc()
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "idiom equivalents require the AI layer to be enabled"})
	}

	var req FindEquivalentsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Idiom == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "idiom is required"})
	}
	if len(req.Targets) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "at least one target language is required"})
	}

	targets := make([]langid.Language, 0, len(req.Targets))
	for _, code := range req.Targets {
		lang := langid.FromCode(code)
		if lang == langid.None {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "unsupported target language: " + code})
		}
		targets = append(targets, lang)
	}

	source := langid.FromCode(req.SourceLanguage)
	if source == langid.None {
		if req.SourceLanguage != "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "unsupported source language: " + req.SourceLanguage})
		}
		resolution := s.Resolver.Resolve(c.Request().Context(), req.Idiom)
		if resolution.Language == langid.None {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "could not determine the idiom's language; pass sourceLanguage explicitly"})
		}
		source = resolution.Language
	}

	equivalents, err := s.Equivalents.Find(c.Request().Context(), req.Idiom, source, targets)
	if err != nil {
		equivalentsTotal.WithLabelValues("error").Inc()
		log.Error("equivalent lookup failed", err, slog.String(observability.LogFieldLanguage, source.String()))
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "the language model could not produce equivalents"})
	}
	equivalentsTotal.WithLabelValues("ok").Inc()

	views := make([]EquivalentView, 0, len(equivalents))
	for _, eq := range equivalents {
		views = append(views, EquivalentView{
			Language: eq.Language,
			Code:     eq.Language.Code(),
			Idiom:    eq.Idiom,
			Literal:  eq.Literal,
			Meaning:  eq.Meaning,
		})
	}

	log.Info("equivalents produced",
		slog.String(observability.LogFieldLanguage, source.String()),
		slog.Int("count", len(views)),
		slog.Int64(observability.LogFieldDuration, log.DurationMs()),
	)
	return c.JSON(http.StatusOK, FindEquivalentsResponse{Source: source, Equivalents: views})
}
