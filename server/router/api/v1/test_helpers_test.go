package v1

import (
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/idiombridge/idiombridge/internal/profile"
	"github.com/idiombridge/idiombridge/plugin/langid"
	"github.com/idiombridge/idiombridge/store"
)

// newTestService builds an API service with a heuristic-only resolver and a
// throwaway SQLite store. AI and TTS stay nil unless a test sets them.
func newTestService(t *testing.T) *APIV1Service {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return &APIV1Service{
		Profile:  &profile.Profile{Mode: "demo", DetectorProvider: "google"},
		Store:    st,
		Resolver: langid.NewResolver(nil, 0),
	}
}

func doJSON(t *testing.T, svc *APIV1Service, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	svc.Register(e)

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
