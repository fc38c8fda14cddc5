package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/idiombridge/idiombridge/plugin/tts"
)

func TestSpeak(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "vi", r.URL.Query().Get("tl"))
		w.Write([]byte("mp3-bytes"))
	}))
	defer upstream.Close()

	svc := newTestService(t)
	svc.TTS = tts.NewClient(&tts.Config{BaseURL: upstream.URL})

	rec := doJSON(t, svc, http.MethodGet, "/api/v1/tts?text=c%C3%B3+c%C3%B4ng+m%C3%A0i+s%E1%BA%AFt&lang=vi", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "audio/mpeg", rec.Header().Get(echo.HeaderContentType))
	require.Equal(t, "mp3-bytes", rec.Body.String())
}

func TestSpeakValidation(t *testing.T) {
	svc := newTestService(t)
	svc.TTS = tts.NewClient(nil)

	rec := doJSON(t, svc, http.MethodGet, "/api/v1/tts?lang=vi", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, svc, http.MethodGet, "/api/v1/tts?text=hello&lang=ko", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSpeakDisabled(t *testing.T) {
	svc := newTestService(t)

	rec := doJSON(t, svc, http.MethodGet, "/api/v1/tts?text=hello&lang=en", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSpeakUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	svc := newTestService(t)
	svc.TTS = tts.NewClient(&tts.Config{BaseURL: upstream.URL})

	rec := doJSON(t, svc, http.MethodGet, "/api/v1/tts?text=hello&lang=en", "")
	require.Equal(t, http.StatusBadGateway, rec.Code)
}

