package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/eventhub-app/backend/internal/config"
	"github.com/eventhub-app/backend/internal/dto"
	"github.com/eventhub-app/backend/internal/handlers"
	"github.com/eventhub-app/backend/internal/routes"
	"github.com/eventhub-app/backend/internal/store/memory"
)

// testEnv wires the full route table over the in-memory store so tests hit
// the same mux the server uses, path parameters and middleware included.
type testEnv struct {
	t   *testing.T
	mux *http.ServeMux
	st  *memory.Store
	cfg *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:         "test-secret",
			AccessTokenTTL: time.Hour,
		},
	}
	st := memory.New()

	mux := routes.New(st, cfg,
		handlers.NewAuthHandler(st, cfg),
		handlers.NewUsersHandler(st),
		handlers.NewEventsHandler(st),
		handlers.NewHealthHandler(st),
		handlers.NewGoogleAuthHandler(st, cfg),
	)

	return &testEnv{t: t, mux: mux, st: st, cfg: cfg}
}

// do performs a request against the mux. A non-nil body is JSON-encoded and
// a non-empty token is sent as a bearer Authorization header.
func (e *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.mux.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) decode(rr *httptest.ResponseRecorder, dst interface{}) {
	e.t.Helper()
	require.NoError(e.t, json.NewDecoder(rr.Body).Decode(dst))
}

func (e *testEnv) errorMessage(rr *httptest.ResponseRecorder) string {
	e.t.Helper()
	var resp dto.ErrorResponse
	e.decode(rr, &resp)
	return resp.Message
}

// register creates an account through POST /register.
func (e *testEnv) register(username, email, password string) {
	e.t.Helper()
	rr := e.do(http.MethodPost, "/register", "", dto.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.Equal(e.t, http.StatusCreated, rr.Code)
}

// login returns the bearer token for an existing account.
func (e *testEnv) login(email, password string) string {
	e.t.Helper()
	rr := e.do(http.MethodPost, "/login", "", dto.LoginRequest{
		Email:    email,
		Password: password,
	})
	require.Equal(e.t, http.StatusOK, rr.Code)

	var resp dto.LoginResponse
	e.decode(rr, &resp)
	require.NotEmpty(e.t, resp.AccessToken)
	return resp.AccessToken
}

// createUser goes through POST /user and returns the new user's id.
func (e *testEnv) createUser(username, email, password string) string {
	e.t.Helper()
	rr := e.do(http.MethodPost, "/user", "", dto.CreateUserRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.Equal(e.t, http.StatusCreated, rr.Code)

	var resp dto.UserEnvelope
	e.decode(rr, &resp)
	require.NotEmpty(e.t, resp.User.ID)
	return resp.User.ID
}

// createEvent goes through POST /event and returns the new event's id.
func (e *testEnv) createEvent(title, description, eventDate, userID string) string {
	e.t.Helper()
	rr := e.do(http.MethodPost, "/event", "", dto.CreateEventRequest{
		Title:       title,
		Description: description,
		EventDate:   eventDate,
		UserID:      userID,
	})
	require.Equal(e.t, http.StatusCreated, rr.Code)

	var resp dto.EventEnvelope
	e.decode(rr, &resp)
	require.NotEmpty(e.t, resp.Event.ID)
	return resp.Event.ID
}
