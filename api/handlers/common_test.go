// Common test helpers
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ananyarao/notescout/db/historydb"
	"github.com/ananyarao/notescout/logger"
	"github.com/ananyarao/notescout/services/history"
	"github.com/ananyarao/notescout/services/search"
	"github.com/ananyarao/notescout/validation"
)

var testFiles = map[string]string{
	"fruit.md":            "apple apple apple",
	"veg.txt":             "carrot\napple pie recipe\ncarrot again",
	"snippets.go":         "package main // apple apple apple apple",
	"archive/old.md":      "apple",
	"archive/skipped.log": "apple",
}

type testCase struct {
	name           string
	queryParams    map[string]string
	expectedStatus int
	verify         func(t *testing.T, assert *require.Assertions, body map[string]any)
}

func newTestLogger() logger.Logger {

	opts := &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}
	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}

func setupTestServer(t *testing.T, assert *require.Assertions) (*gin.Engine, string) {
	t.Helper()

	notesDir := t.TempDir()
	for relPath, content := range testFiles {
		fullPath := filepath.Join(notesDir, relPath)
		err := os.MkdirAll(filepath.Dir(fullPath), 0755)
		assert.NoError(err, "could not create test sub-directory")
		err = os.WriteFile(fullPath, []byte(content), 0644)
		assert.NoError(err, "could not write test file")
	}

	testLogger := newTestLogger()

	historyStore, err := historydb.New(testLogger, filepath.Join(t.TempDir(), "history.db"), 100)
	assert.NoError(err, "could not create history store")
	t.Cleanup(func() {
		assert.NoError(historyStore.Close(), "could not close history store")
	})

	validator, err := validation.New(testLogger)
	assert.NoError(err, "could not create validator")

	engine := search.New(testLogger, 4)
	historyService := history.New(testLogger, historyStore)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	SetupSearch(router, testLogger, engine, historyService, validator)
	SetupHistory(router, testLogger, historyService, validator)

	return router, notesDir
}

func makeTestHTTPRequest(router *gin.Engine, assert *require.Assertions, method string, endpoint string, queryParams map[string]string) *httptest.ResponseRecorder {

	w := httptest.NewRecorder()

	req, err := http.NewRequest(method, endpoint, nil)
	assert.NoError(err)

	query := req.URL.Query()
	for key, value := range queryParams {
		query.Add(key, value)
	}
	req.URL.RawQuery = query.Encode()

	router.ServeHTTP(w, req)
	return w
}

func decodeResponseBody(assert *require.Assertions, w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func resultsFromBody(assert *require.Assertions, body map[string]any) []any {
	data, ok := body["data"].(map[string]any)
	assert.True(ok, "response should have a data object")
	results, ok := data["results"].([]any)
	assert.True(ok, "data should have a results array")
	return results
}
