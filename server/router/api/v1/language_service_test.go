package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/idiombridge/idiombridge/plugin/langid"
	"github.com/idiombridge/idiombridge/store"
)

func TestDetectLanguage(t *testing.T) {
	svc := newTestService(t)

	rec := doJSON(t, svc, http.MethodPost, "/api/v1/language/detect",
		`{"text": "más vale pájaro en mano que ciento volando"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resolution langid.Resolution
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resolution))
	require.Equal(t, langid.Spanish, resolution.Language)
	require.Equal(t, langid.MethodHeuristicOnly, resolution.Method)
	require.Greater(t, resolution.Confidence, 0.0)
}

func TestDetectLanguageRecordsLookup(t *testing.T) {
	svc := newTestService(t)

	rec := doJSON(t, svc, http.MethodPost, "/api/v1/language/detect",
		`{"text": "quem não arrisca não petisca"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	lookups, err := svc.Store.ListLookups(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, lookups, 1)
	require.Equal(t, "quem não arrisca não petisca", lookups[0].Text)
	require.Equal(t, "portuguese", lookups[0].Language)
}

func TestDetectLanguageDegenerateText(t *testing.T) {
	svc := newTestService(t)

	rec := doJSON(t, svc, http.MethodPost, "/api/v1/language/detect", `{"text": " "}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resolution langid.Resolution
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resolution))
	require.Equal(t, langid.None, resolution.Language)
	require.Equal(t, langid.MethodTextTooShort, resolution.Method)
}

func TestDetectLanguageBadBody(t *testing.T) {
	svc := newTestService(t)

	rec := doJSON(t, svc, http.MethodPost, "/api/v1/language/detect", `{"text": `)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListLookups(t *testing.T) {
	svc := newTestService(t)

	for _, text := range []string{"one", "two", "three"} {
		_, err := svc.Store.CreateLookup(context.Background(), &store.Lookup{
			Text: text, Language: "English", Method: "heuristic-only", Confidence: 0.5,
		})
		require.NoError(t, err)
	}

	rec := doJSON(t, svc, http.MethodGet, "/api/v1/lookups?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var lookups []*store.Lookup
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lookups))
	require.Len(t, lookups, 2)
}

func TestListLookupsInvalidLimit(t *testing.T) {
	svc := newTestService(t)

	rec := doJSON(t, svc, http.MethodGet, "/api/v1/lookups?limit=nope", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListLookupsEmptyHistory(t *testing.T) {
	svc := newTestService(t)

	rec := doJSON(t, svc, http.MethodGet, "/api/v1/lookups", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}
