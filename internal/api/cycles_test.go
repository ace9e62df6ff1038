package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCycle(t *testing.T, app *fiber.App, token string, startDate string, periodDuration int) cycleResponse {
	t.Helper()

	response := doRequest(t, app, http.MethodPost, "/api/cycles", token, cycleInput{
		StartDate:      startDate,
		CycleLength:    28,
		PeriodDuration: periodDuration,
	})
	require.Equal(t, http.StatusCreated, response.Status, string(response.Body))

	created := cycleResponse{}
	response.decode(t, &created)
	return created
}

func listTestCycles(t *testing.T, app *fiber.App, token string) []cycleResponse {
	t.Helper()

	response := doRequest(t, app, http.MethodGet, "/api/cycles", token, nil)
	require.Equal(t, http.StatusOK, response.Status)

	cycles := []cycleResponse{}
	response.decode(t, &cycles)
	return cycles
}

func TestCreateAndListCycles(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token := registerTestUser(t, app, "someone@example.com")

	assert.Empty(t, listTestCycles(t, app, token))

	createTestCycle(t, app, token, "2024-03-04", 5)
	first := createTestCycle(t, app, token, "2024-01-02", 4)
	assert.Equal(t, "2024-01-02", first.CycleStartDate)
	assert.Equal(t, 4, first.PeriodDuration)
	assert.Equal(t, 28, first.CycleLength)

	cycles := listTestCycles(t, app, token)
	require.Len(t, cycles, 2)
	assert.Equal(t, "2024-01-02", cycles[0].CycleStartDate)
	assert.Equal(t, "2024-03-04", cycles[1].CycleStartDate)

	other := registerTestUser(t, app, "other@example.com")
	assert.Empty(t, listTestCycles(t, app, other))
}

func TestCreateCycleRejectsOutOfRangeLength(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token := registerTestUser(t, app, "someone@example.com")

	response := doRequest(t, app, http.MethodPost, "/api/cycles", token, cycleInput{
		StartDate:      "2024-01-01",
		CycleLength:    45,
		PeriodDuration: 5,
	})
	require.Equal(t, http.StatusBadRequest, response.Status)

	payload := map[string]string{}
	response.decode(t, &payload)
	assert.Equal(t, "cycleLength", payload["field"])
	assert.Empty(t, listTestCycles(t, app, token))

	badDate := doRequest(t, app, http.MethodPost, "/api/cycles", token, cycleInput{StartDate: "01/01/2024", CycleLength: 28, PeriodDuration: 5})
	assert.Equal(t, http.StatusBadRequest, badDate.Status)
}

func TestDeleteCyclesForMonth(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token := registerTestUser(t, app, "someone@example.com")
	createTestCycle(t, app, token, "2024-01-31", 5)
	createTestCycle(t, app, token, "2024-02-01", 5)
	createTestCycle(t, app, token, "2024-02-29", 5)
	createTestCycle(t, app, token, "2024-03-01", 5)

	response := doRequest(t, app, http.MethodDelete, "/api/cycles?year=2024&month=2", token, nil)
	require.Equal(t, http.StatusOK, response.Status, string(response.Body))
	assert.JSONEq(t, `{"deleted":2}`, string(response.Body))

	cycles := listTestCycles(t, app, token)
	require.Len(t, cycles, 2)
	assert.Equal(t, "2024-01-31", cycles[0].CycleStartDate)
	assert.Equal(t, "2024-03-01", cycles[1].CycleStartDate)

	invalid := doRequest(t, app, http.MethodDelete, "/api/cycles?year=2024&month=13", token, nil)
	assert.Equal(t, http.StatusBadRequest, invalid.Status)
}

func TestDeleteCycleByIDAndAll(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token := registerTestUser(t, app, "someone@example.com")
	other := registerTestUser(t, app, "other@example.com")

	mine := createTestCycle(t, app, token, "2024-01-01", 5)
	createTestCycle(t, app, token, "2024-02-01", 5)
	theirs := createTestCycle(t, app, other, "2024-01-01", 5)

	forbidden := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/cycles/%d", theirs.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, forbidden.Status)

	deleted := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/cycles/%d", mine.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, deleted.Status)
	assert.Len(t, listTestCycles(t, app, token), 1)

	all := doRequest(t, app, http.MethodDelete, "/api/cycles/all", token, nil)
	require.Equal(t, http.StatusOK, all.Status)
	assert.JSONEq(t, `{"deleted":1}`, string(all.Body))
	assert.Empty(t, listTestCycles(t, app, token))
	assert.Len(t, listTestCycles(t, app, other), 1)
}

func TestPredictionsFollowLatestCycle(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token := registerTestUser(t, app, "someone@example.com")

	empty := doRequest(t, app, http.MethodGet, "/api/cycles/predictions", token, nil)
	require.Equal(t, http.StatusOK, empty.Status)
	assert.JSONEq(t, `[]`, string(empty.Body))

	createTestCycle(t, app, token, "2023-12-01", 4)
	createTestCycle(t, app, token, "2024-01-01", 5)

	response := doRequest(t, app, http.MethodGet, "/api/cycles/predictions", token, nil)
	require.Equal(t, http.StatusOK, response.Status)

	windows := []predictionResponse{}
	response.decode(t, &windows)
	require.Len(t, windows, 3)
	assert.Equal(t, predictionResponse{
		CycleIndex:   0,
		CycleStart:   "2024-01-01",
		PeriodStart:  "2024-01-01",
		PeriodEnd:    "2024-01-05",
		FertileStart: "2024-01-11",
		FertileEnd:   "2024-01-16",
		OvulationDay: "2024-01-14",
	}, windows[0])
	assert.Equal(t, "2024-02-01", windows[1].CycleStart)
	assert.Equal(t, "2024-03-01", windows[2].CycleStart)

	longer := doRequest(t, app, http.MethodGet, "/api/cycles/predictions?horizon=6", token, nil)
	require.Equal(t, http.StatusOK, longer.Status)
	longerWindows := []predictionResponse{}
	longer.decode(t, &longerWindows)
	assert.Len(t, longerWindows, 6)

	invalid := doRequest(t, app, http.MethodGet, "/api/cycles/predictions?horizon=0", token, nil)
	assert.Equal(t, http.StatusBadRequest, invalid.Status)
}
