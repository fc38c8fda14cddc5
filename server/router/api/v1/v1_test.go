package v1

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idiombridge/idiombridge/internal/profile"
	"github.com/idiombridge/idiombridge/plugin/langid"
)

func TestNewAPIV1Service(t *testing.T) {
	p := &profile.Profile{
		Mode:             "demo",
		DetectorProvider: "lingua",
		TTSEnabled:       true,
	}

	svc := NewAPIV1Service(p, nil)
	require.NotNil(t, svc.Resolver)
	assert.NotNil(t, svc.TTS)
	assert.Nil(t, svc.Equivalents, "AI stays off without credentials")

	// The in-process detector is wired end to end.
	got := svc.Resolver.Resolve(context.Background(), "猿も木から落ちる")
	assert.Equal(t, langid.Japanese, got.Language)
}

func TestNewAPIV1ServiceUnknownProviderFallsBack(t *testing.T) {
	p := &profile.Profile{Mode: "demo", DetectorProvider: "azure"}

	svc := NewAPIV1Service(p, nil)
	require.NotNil(t, svc.Resolver)

	// No detector means heuristic-only resolutions, never a crash.
	got := svc.Resolver.Resolve(context.Background(), "quem não arrisca não petisca")
	assert.Equal(t, langid.MethodHeuristicOnly, got.Method)
	assert.Equal(t, langid.Portuguese, got.Language)
}

func TestListLookupsWithoutStore(t *testing.T) {
	svc := newTestService(t)
	svc.Store = nil

	rec := doJSON(t, svc, http.MethodGet, "/api/v1/lookups", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
