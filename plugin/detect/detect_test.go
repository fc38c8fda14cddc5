package detect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idiombridge/idiombridge/plugin/langid"
)

func TestNewProviderSelection(t *testing.T) {
	got, err := New(&Config{Provider: "google"})
	require.NoError(t, err)
	assert.IsType(t, &GoogleDetector{}, got)

	got, err = New(&Config{Provider: "lingua"})
	require.NoError(t, err)
	assert.IsType(t, &LinguaDetector{}, got)

	_, err = New(&Config{Provider: "azure"})
	assert.Error(t, err)
}

func TestGoogleDetectorParsesLanguageCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translate_a/single", r.URL.Path)
		assert.Equal(t, "auto", r.URL.Query().Get("sl"))
		assert.Equal(t, "more vale tarde que nunca", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[[["better late than never","more vale tarde que nunca",null,null,1]],null,"es"]`))
	}))
	defer srv.Close()

	d := NewGoogleDetector(&Config{BaseURL: srv.URL})
	lang, err := d.Detect(context.Background(), "more vale tarde que nunca")
	require.NoError(t, err)
	assert.Equal(t, langid.Spanish, lang)
}

func TestGoogleDetectorMapsRegionalVariants(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[[],null,"pt-BR"]`))
	}))
	defer srv.Close()

	d := NewGoogleDetector(&Config{BaseURL: srv.URL})
	lang, err := d.Detect(context.Background(), "quem não arrisca não petisca")
	require.NoError(t, err)
	assert.Equal(t, langid.Portuguese, lang)
}

func TestGoogleDetectorUnavailableOutcomes(t *testing.T) {
	testCases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server_error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "malformed_body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"not":"an array"}`))
			},
		},
		{
			name: "missing_language_field",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`[[]]`))
			},
		},
		{
			name: "language_field_not_string",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`[[],null,42]`))
			},
		},
		{
			name: "unsupported_code",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`[[],null,"ko"]`))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			d := NewGoogleDetector(&Config{BaseURL: srv.URL})
			lang, err := d.Detect(context.Background(), "some text")
			assert.Equal(t, langid.None, lang)
			require.Error(t, err)
			assert.ErrorIs(t, err, langid.ErrUnavailable)
		})
	}
}

func TestGoogleDetectorHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	d := NewGoogleDetector(&Config{BaseURL: srv.URL})
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := d.Detect(ctx, "some text")
	assert.ErrorIs(t, err, langid.ErrUnavailable)
}

func TestLinguaDetector(t *testing.T) {
	d := NewLinguaDetector()

	lang, err := d.Detect(context.Background(), "猿も木から落ちる")
	require.NoError(t, err)
	assert.Equal(t, langid.Japanese, lang)

	lang, err = d.Detect(context.Background(), "Wer rastet, der rostet, sagt man im Deutschen")
	require.NoError(t, err)
	assert.Equal(t, langid.German, lang)
}

func TestLinguaDetectorCancelledContext(t *testing.T) {
	d := NewLinguaDetector()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Detect(ctx, "some text")
	assert.ErrorIs(t, err, langid.ErrUnavailable)
}
