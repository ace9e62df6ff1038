package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/cyclecal/internal/db"
	"go.uber.org/zap"
)

var testNow = time.Date(2024, time.February, 14, 9, 30, 0, 0, time.UTC)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "cyclecal-test.db"), zap.NewNop())
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	handler, err := NewHandler(db.NewRepositories(database), HandlerConfig{
		SecretKey: []byte("test-secret-key"),
		Now:       func() time.Time { return testNow },
	})
	require.NoError(t, err)
	return NewApp(handler)
}

type testResponse struct {
	Status  int
	Body    []byte
	Cookies []*http.Cookie
	Header  http.Header
}

func (response testResponse) decode(t *testing.T, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(response.Body, target), "body: %s", string(response.Body))
}

func doRequest(t *testing.T, app *fiber.App, method string, path string, token string, body any) testResponse {
	t.Helper()

	var reader io.Reader
	switch payload := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(payload)
	default:
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if reader != nil {
		request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	require.NoError(t, err, "%s %s", method, path)
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	return testResponse{
		Status:  response.StatusCode,
		Body:    payload,
		Cookies: response.Cookies(),
		Header:  response.Header,
	}
}

func registerTestUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	response := doRequest(t, app, http.MethodPost, "/api/auth/register", "", credentialsInput{Email: email, Password: "StrongPass1"})
	require.Equal(t, http.StatusCreated, response.Status, string(response.Body))

	session := authResponse{}
	response.decode(t, &session)
	require.NotEmpty(t, session.Token)
	return session.Token
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func readAPIError(t *testing.T, response testResponse) string {
	t.Helper()

	payload := map[string]any{}
	response.decode(t, &payload)
	message, _ := payload["error"].(string)
	return message
}
