package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/idiombridge/idiombridge/plugin/langid"
)

// Speak streams pronunciation audio for a short text.
// GET /api/v1/tts?text=&lang=
func (s *APIV1Service) Speak(c echo.Context) error {
	if s.TTS == nil {
		ttsFetchesTotal.WithLabelValues("disabled").Inc()
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "text-to-speech is disabled"})
	}

	text := c.QueryParam("text")
	if text == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "text is required"})
	}
	lang := langid.FromCode(c.QueryParam("lang"))
	if lang == langid.None {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "a supported lang code is required"})
	}

	audio, err := s.TTS.Fetch(c.Request().Context(), text, lang)
	if err != nil {
		ttsFetchesTotal.WithLabelValues("error").Inc()
		slog.Error("tts fetch failed", "lang", lang.Code(), "error", err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "could not fetch pronunciation audio"})
	}
	ttsFetchesTotal.WithLabelValues("ok").Inc()

	c.Response().Header().Set("Cache-Control", "public, max-age=3600")
	return c.Blob(http.StatusOK, "audio/mpeg", audio)
}
