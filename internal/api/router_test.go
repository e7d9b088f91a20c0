package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apython1998/ultistats/internal/database"
	"github.com/apython1998/ultistats/internal/services"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })

	return NewRouter(
		services.NewUserService(db),
		services.NewTeamService(db),
		services.NewPlayerService(db),
		services.NewTournamentService(db),
		services.NewGameService(db),
		services.NewStatService(db),
	)
}

// doRequest performs a JSON request against the router. decorate, when set,
// attaches credentials before dispatch.
func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}, decorate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if decorate != nil {
		decorate(req)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func basicAuth(username, password string) func(*http.Request) {
	return func(r *http.Request) { r.SetBasicAuth(username, password) }
}

func bearerAuth(token string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func registerUser(t *testing.T, router http.Handler, username, email, password string) int64 {
	t.Helper()
	rec := doRequest(t, router, http.MethodPost, "/v1/register",
		map[string]string{"username": username, "email": email, "password": password}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return int64(decodeBody(t, rec)["id"].(float64))
}

func loginUser(t *testing.T, router http.Handler, username, password string) string {
	t.Helper()
	rec := doRequest(t, router, http.MethodPost, "/v1/login", nil, basicAuth(username, password))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeBody(t, rec)["token"].(string)
}

func TestRegister(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/register",
		map[string]string{"username": "t1", "email": "t1@x.com", "password": "p@ss1234"}, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "t1")

	body := decodeBody(t, rec)
	assert.Equal(t, "t1@x.com", body["email"], "creation response includes the email")
	assert.NotContains(t, body, "passwordHash")

	id := int64(body["id"].(float64))
	assert.Equal(t, fmt.Sprintf("/v1/users/%d", id), rec.Header().Get("Location"))
}

func TestRegister_Validation(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/register",
		map[string]string{"username": "t1", "email": "t1@x.com"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "must include")

	registerUser(t, router, "t1", "t1@x.com", "p@ss1234")

	rec = doRequest(t, router, http.MethodPost, "/v1/register",
		map[string]string{"username": "t1", "email": "other@x.com", "password": "p@ss1234"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "please use a different username", decodeBody(t, rec)["error"])

	rec = doRequest(t, router, http.MethodPost, "/v1/register",
		map[string]string{"username": "other", "email": "t1@x.com", "password": "p@ss1234"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "please use a different email address", decodeBody(t, rec)["error"])
}

func TestLogin(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "t1", "t1@x.com", "p@ss1234")

	rec := doRequest(t, router, http.MethodPost, "/v1/login", nil, basicAuth("t1", "p@ss1234"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["token"], 43)

	// Wrong password and unknown user both collapse to the same response.
	rec = doRequest(t, router, http.MethodPost, "/v1/login", nil, basicAuth("t1", "wrong"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decodeBody(t, rec)["error"])

	rec = doRequest(t, router, http.MethodPost, "/v1/login", nil, basicAuth("nobody", "p@ss1234"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decodeBody(t, rec)["error"])

	rec = doRequest(t, router, http.MethodPost, "/v1/login", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Basic")
}

func TestLogin_ReusesToken(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "t1", "t1@x.com", "p@ss1234")

	first := loginUser(t, router, "t1", "p@ss1234")
	second := loginUser(t, router, "t1", "p@ss1234")
	assert.Equal(t, first, second)
}

func TestGetUser(t *testing.T) {
	router := newTestRouter(t)
	id := registerUser(t, router, "t1", "t1@x.com", "p@ss1234")
	token := loginUser(t, router, "t1", "p@ss1234")

	rec := doRequest(t, router, http.MethodGet, fmt.Sprintf("/v1/users/%d", id), nil, bearerAuth(token))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "t1", body["username"])
	assert.NotContains(t, body, "email", "public representation excludes the email")

	rec = doRequest(t, router, http.MethodGet, "/v1/users/9999", nil, bearerAuth(token))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// No token, no access.
	rec = doRequest(t, router, http.MethodGet, fmt.Sprintf("/v1/users/%d", id), nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, router, http.MethodGet, fmt.Sprintf("/v1/users/%d", id), nil, bearerAuth("bogus"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateUser(t *testing.T) {
	router := newTestRouter(t)
	id := registerUser(t, router, "t1", "t1@x.com", "p@ss1234")
	token := loginUser(t, router, "t1", "p@ss1234")

	rec := doRequest(t, router, http.MethodPut, fmt.Sprintf("/v1/users/%d", id),
		map[string]string{"username": "t2", "email": "t2@x.com"}, bearerAuth(token))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	assert.Equal(t, "t2", body["username"])
	assert.Equal(t, "t2@x.com", body["email"])
	assert.Equal(t, float64(id), body["id"])

	// The change sticks.
	rec = doRequest(t, router, http.MethodGet, fmt.Sprintf("/v1/users/%d", id), nil, bearerAuth(token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "t2", decodeBody(t, rec)["username"])
}

func TestUpdateUser_DuplicateUsername(t *testing.T) {
	router := newTestRouter(t)
	id := registerUser(t, router, "t1", "t1@x.com", "p@ss1234")
	registerUser(t, router, "t2", "t2@x.com", "p@ss1234")
	token := loginUser(t, router, "t1", "p@ss1234")

	rec := doRequest(t, router, http.MethodPut, fmt.Sprintf("/v1/users/%d", id),
		map[string]string{"username": "t2"}, bearerAuth(token))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "please use a different username", decodeBody(t, rec)["error"])
}

func TestDeleteUser(t *testing.T) {
	router := newTestRouter(t)
	idA := registerUser(t, router, "ta", "ta@x.com", "p@ss1234")
	registerUser(t, router, "tb", "tb@x.com", "p@ss1234")
	tokenA := loginUser(t, router, "ta", "p@ss1234")
	tokenB := loginUser(t, router, "tb", "p@ss1234")

	// Another user's token cannot delete the account.
	rec := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/v1/users/%d", idA), nil, bearerAuth(tokenB))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "cannot delete other users", decodeBody(t, rec)["error"])

	rec = doRequest(t, router, http.MethodGet, fmt.Sprintf("/v1/users/%d", idA), nil, bearerAuth(tokenB))
	require.Equal(t, http.StatusOK, rec.Code, "the record survived the rejected delete")

	// The owner can.
	rec = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/v1/users/%d", idA), nil, bearerAuth(tokenA))
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = doRequest(t, router, http.MethodGet, fmt.Sprintf("/v1/users/%d", idA), nil, bearerAuth(tokenB))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogout(t *testing.T) {
	router := newTestRouter(t)
	id := registerUser(t, router, "t1", "t1@x.com", "p@ss1234")
	token := loginUser(t, router, "t1", "p@ss1234")

	rec := doRequest(t, router, http.MethodDelete, "/v1/logout", nil, bearerAuth(token))
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	// The revoked token no longer authenticates anything.
	rec = doRequest(t, router, http.MethodGet, fmt.Sprintf("/v1/users/%d", id), nil, bearerAuth(token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/v1/logout", nil, bearerAuth(token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTeamsEndToEnd(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "coach", "coach@x.com", "p@ss1234")
	token := loginUser(t, router, "coach", "p@ss1234")

	// Teams require a token like every other resource.
	rec := doRequest(t, router, http.MethodGet, "/v1/teams", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/v1/teams", map[string]string{"name": "Hucks"}, bearerAuth(token))
	require.Equal(t, http.StatusCreated, rec.Code)
	teamID := int64(decodeBody(t, rec)["id"].(float64))

	rec = doRequest(t, router, http.MethodPost, "/v1/players",
		map[string]interface{}{"name": "Ann", "number": 7, "position": "handler", "teamId": teamID},
		bearerAuth(token))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodGet, fmt.Sprintf("/v1/teams/%d/players", teamID), nil, bearerAuth(token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ann")

	rec = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/v1/teams/%d", teamID), nil, bearerAuth(token))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, router, http.MethodGet, fmt.Sprintf("/v1/teams/%d", teamID), nil, bearerAuth(token))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGameAndStatsEndToEnd(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "coach", "coach@x.com", "p@ss1234")
	token := loginUser(t, router, "coach", "p@ss1234")

	rec := doRequest(t, router, http.MethodPost, "/v1/players", map[string]string{"name": "Ann"}, bearerAuth(token))
	require.Equal(t, http.StatusCreated, rec.Code)
	playerID := int64(decodeBody(t, rec)["id"].(float64))

	rec = doRequest(t, router, http.MethodPost, "/v1/games",
		map[string]string{"opponentTeamName": "Rival"}, bearerAuth(token))
	require.Equal(t, http.StatusCreated, rec.Code)
	gameID := int64(decodeBody(t, rec)["id"].(float64))

	rec = doRequest(t, router, http.MethodPost, fmt.Sprintf("/v1/games/%d/points", gameID),
		map[string]interface{}{"won": true, "playerIds": []int64{playerID}}, bearerAuth(token))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	pointID := int64(decodeBody(t, rec)["id"].(float64))

	for _, code := range []string{"D", "A", "D"} {
		rec = doRequest(t, router, http.MethodPost, "/v1/statistics",
			map[string]interface{}{"playerId": playerID, "pointId": pointID, "stat": code}, bearerAuth(token))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet,
		fmt.Sprintf("/v1/players/%d/statistics/totals", playerID), nil, bearerAuth(token))
	require.Equal(t, http.StatusOK, rec.Code)

	totals := decodeBody(t, rec)
	assert.Equal(t, float64(2), totals["D"])
	assert.Equal(t, float64(1), totals["A"])
}
