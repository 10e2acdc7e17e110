package profile

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"apibasics/internal/database"
	"apibasics/internal/domain"
	"apibasics/internal/middleware"
	"apibasics/internal/pkg/token"
	"apibasics/internal/repository"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB, *token.Codec) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	codec := token.NewCodec("test-secret", time.Hour)

	handler := NewHandler(NewService(repository.NewUserRepository(db)))

	router := gin.New()
	protected := router.Group("/")
	protected.Use(middleware.Auth(codec))
	handler.RegisterRoutes(protected)

	return router, db, codec
}

func performRequest(router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func seedUser(t *testing.T, db *gorm.DB, codec *token.Codec) (*domain.User, string) {
	t.Helper()
	u := &domain.User{
		ID:           uuid.NewString(),
		Email:        "a@b.com",
		PasswordHash: "x",
		Name:         "A",
		Bio:          "hello",
		Preferences:  `{"theme":"dark"}`,
	}
	require.NoError(t, db.Create(u).Error)

	access, err := codec.Issue(u.ID, u.Email)
	require.NoError(t, err)
	return u, access
}

func TestGetProfile(t *testing.T) {
	router, db, codec := setupRouter(t)
	user, access := seedUser(t, db, codec)

	resp := performRequest(router, http.MethodGet, "/profile", nil, map[string]string{
		"Authorization": "Bearer " + access,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var profile Response
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &profile))
	assert.Equal(t, user.ID, profile.UserID)
	assert.Equal(t, "a@b.com", profile.Email)
	assert.Equal(t, "hello", profile.Bio)
	assert.Equal(t, map[string]any{"theme": "dark"}, profile.Preferences)
}

func TestUpdateProfile(t *testing.T) {
	router, db, codec := setupRouter(t)
	_, access := seedUser(t, db, codec)

	name := "Renamed"
	resp := performRequest(router, http.MethodPut, "/profile", UpdateRequest{
		Name:        &name,
		Preferences: map[string]any{"theme": "light", "lang": "en"},
	}, map[string]string{"Authorization": "Bearer " + access})
	require.Equal(t, http.StatusOK, resp.Code)

	var profile Response
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &profile))
	assert.Equal(t, "Renamed", profile.Name)
	assert.Equal(t, "hello", profile.Bio, "omitted fields stay untouched")
	assert.Equal(t, "light", profile.Preferences["theme"])
}

func TestUpdateProfileRejectsNonObjectPreferences(t *testing.T) {
	router, db, codec := setupRouter(t)
	_, access := seedUser(t, db, codec)

	for _, prefs := range []any{[]int{1, 2, 3}, "dark", 42} {
		resp := performRequest(router, http.MethodPut, "/profile", map[string]any{
			"preferences": prefs,
		}, map[string]string{"Authorization": "Bearer " + access})
		assert.Equal(t, http.StatusBadRequest, resp.Code, "preferences %v", prefs)
	}
}

func TestProfileAuthorizationHeaderContract(t *testing.T) {
	router, db, codec := setupRouter(t)
	_, access := seedUser(t, db, codec)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no scheme", access},
		{"lowercase scheme", "bearer " + access},
		{"three parts", "Bearer " + access + " extra"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer garbage"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			headers := map[string]string{}
			if tc.header != "" {
				headers["Authorization"] = tc.header
			}
			resp := performRequest(router, http.MethodGet, "/profile", nil, headers)
			assert.Equal(t, http.StatusUnauthorized, resp.Code)
		})
	}
}

func TestGetProfilePlaintextAndHTML(t *testing.T) {
	router, db, codec := setupRouter(t)
	user, access := seedUser(t, db, codec)

	user.Bio = "<script>alert(1)</script>"
	require.NoError(t, db.Save(user).Error)

	resp := performRequest(router, http.MethodGet, "/profile", nil, map[string]string{
		"Authorization": "Bearer " + access,
		"Accept":        "text/plain",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "email: a@b.com")

	resp = performRequest(router, http.MethodGet, "/profile", nil, map[string]string{
		"Authorization": "Bearer " + access,
		"Accept":        "text/html",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Header().Get("Content-Type"), "text/html")
	assert.NotContains(t, resp.Body.String(), "<script>")
	assert.Contains(t, resp.Body.String(), "&lt;script&gt;")
}
