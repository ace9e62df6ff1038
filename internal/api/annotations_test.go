package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightAnnotationRoundTripAndClear(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token := registerTestUser(t, app, "someone@example.com")
	path := "/api/annotations/weight/2024-01-15"

	missing := doRequest(t, app, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, missing.Status)

	saved := doRequest(t, app, http.MethodPut, path, token, map[string]string{"weight": " 55.5 "})
	require.Equal(t, http.StatusOK, saved.Status, string(saved.Body))
	assert.JSONEq(t, `{"category":"weight_input","date":"2024-01-15","value":{"weight":"55.5"}}`, string(saved.Body))

	loaded := doRequest(t, app, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, loaded.Status)
	assert.JSONEq(t, string(saved.Body), string(loaded.Body))

	day := doRequest(t, app, http.MethodGet, "/api/days/2024-01-15", token, nil)
	require.Equal(t, http.StatusOK, day.Status)
	merged := dayResponse{}
	day.decode(t, &merged)
	assert.Equal(t, "55.5", merged.Annotation.WeightKg)

	cleared := doRequest(t, app, http.MethodPut, path, token, map[string]string{"weight": ""})
	assert.Equal(t, http.StatusNoContent, cleared.Status)

	gone := doRequest(t, app, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, gone.Status)

	day = doRequest(t, app, http.MethodGet, "/api/days/2024-01-15", token, nil)
	merged = dayResponse{}
	day.decode(t, &merged)
	assert.Empty(t, merged.Annotation.WeightKg)
}

func TestAnnotationsAreScopedToUser(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token := registerTestUser(t, app, "someone@example.com")
	other := registerTestUser(t, app, "other@example.com")

	saved := doRequest(t, app, http.MethodPut, "/api/annotations/note/2024-01-15", token, map[string]string{"note": "private"})
	require.Equal(t, http.StatusOK, saved.Status)

	hidden := doRequest(t, app, http.MethodGet, "/api/annotations/note/2024-01-15", other, nil)
	assert.Equal(t, http.StatusNotFound, hidden.Status)
}

func TestAnnotationValidation(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token := registerTestUser(t, app, "someone@example.com")

	cases := []struct {
		name   string
		path   string
		body   any
		status int
	}{
		{name: "unknown category", path: "/api/annotations/mood-ring/2024-01-15", body: map[string]string{"x": "y"}, status: http.StatusNotFound},
		{name: "bad date", path: "/api/annotations/weight/15-01-2024", body: map[string]string{"weight": "55"}, status: http.StatusBadRequest},
		{name: "negative weight", path: "/api/annotations/weight/2024-01-15", body: map[string]string{"weight": "-1"}, status: http.StatusBadRequest},
		{name: "flow out of range", path: "/api/annotations/period/2024-01-15", body: map[string]any{"periods": true, "flowLevel": 8}, status: http.StatusBadRequest},
		{name: "malformed body", path: "/api/annotations/temperature/2024-01-15", body: `{"temperature":`, status: http.StatusBadRequest},
		{name: "bad clock time", path: "/api/annotations/sex-activity/2024-01-15", body: map[string]string{"time": "7pm"}, status: http.StatusBadRequest},
		{name: "read-only category", path: "/api/annotations/symptom-selection/2024-01-15", body: map[string]any{"symptoms": []string{"acne"}}, status: http.StatusMethodNotAllowed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			response := doRequest(t, app, http.MethodPut, tc.path, token, tc.body)
			assert.Equal(t, tc.status, response.Status, string(response.Body))
		})
	}
}

func TestClearAllData(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token := registerTestUser(t, app, "someone@example.com")
	createTestCycle(t, app, token, "2024-01-01", 5)
	saved := doRequest(t, app, http.MethodPut, "/api/annotations/note/2024-01-15", token, map[string]string{"note": "hello"})
	require.Equal(t, http.StatusOK, saved.Status)

	response := doRequest(t, app, http.MethodDelete, "/api/data", token, nil)
	require.Equal(t, http.StatusOK, response.Status)
	assert.JSONEq(t, `{"ok":true,"deletedCycles":1}`, string(response.Body))

	assert.Empty(t, listTestCycles(t, app, token))
	gone := doRequest(t, app, http.MethodGet, "/api/annotations/note/2024-01-15", token, nil)
	assert.Equal(t, http.StatusNotFound, gone.Status)
}

func TestExportEndpoints(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token := registerTestUser(t, app, "someone@example.com")
	createTestCycle(t, app, token, "2024-01-01", 2)
	saved := doRequest(t, app, http.MethodPut, "/api/annotations/weight/2024-01-20", token, map[string]string{"weight": "61"})
	require.Equal(t, http.StatusOK, saved.Status)

	summary := doRequest(t, app, http.MethodGet, "/api/export/summary?from=2024-01-01&to=2024-01-31", token, nil)
	require.Equal(t, http.StatusOK, summary.Status)
	assert.JSONEq(t, `{"totalEntries":4,"hasData":true,"dateFrom":"2024-01-01","dateTo":"2024-01-20"}`, string(summary.Body))

	csvResponse := doRequest(t, app, http.MethodGet, "/api/export/csv?from=2024-01-01&to=2024-01-31", token, nil)
	require.Equal(t, http.StatusOK, csvResponse.Status)
	assert.Contains(t, csvResponse.Header.Get("Content-Disposition"), "cyclecal-export-2024-02-14.csv")
	lines := strings.Split(strings.TrimSpace(string(csvResponse.Body)), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "Date,Day type,Period"))
	assert.True(t, strings.HasPrefix(lines[4], "2024-01-20,none,No"))

	jsonResponse := doRequest(t, app, http.MethodGet, "/api/export/json?from=2024-01-01&to=2024-01-31", token, nil)
	require.Equal(t, http.StatusOK, jsonResponse.Status)
	entries := []map[string]any{}
	jsonResponse.decode(t, &entries)
	require.Len(t, entries, 4)
	assert.Equal(t, "ovulation", entries[2]["dayType"])

	invalid := doRequest(t, app, http.MethodGet, "/api/export/json?from=2024-02-01&to=2024-01-01", token, nil)
	assert.Equal(t, http.StatusBadRequest, invalid.Status)
	assert.Equal(t, "invalid range", readAPIError(t, invalid))
}
