package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/roborush/portal/config"
	"github.com/roborush/portal/internal/auth"
	"github.com/roborush/portal/internal/user"
	"github.com/roborush/portal/pkg/token"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&user.User{}))
	return db
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpiryDays = 1
	return cfg
}

func newRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller := auth.NewAuthController(auth.NewAuthRepository(db), cfg)
	r.POST("/api/auth/signup", controller.Register)
	r.POST("/api/auth/login", controller.Login)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type authEnvelope struct {
	Data auth.AuthResponse `json:"data"`
}

func TestRegisterIssuesTokenAndHidesPassword(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	r := newRouter(db, cfg)

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "hunter22",
		"branch":   "ECE",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp authEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	assert.Equal(t, "alice@example.com", resp.Data.User.Email)
	assert.Equal(t, user.RoleParticipant, resp.Data.User.Role)
	assert.NotContains(t, w.Body.String(), "hunter22")
	assert.NotContains(t, w.Body.String(), "password_hash")

	claims, err := token.ValidateJWT(resp.Data.Token, cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, resp.Data.User.ID, claims.UserID)
	assert.Equal(t, user.RoleParticipant, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, testConfig())

	body := gin.H{"name": "Alice", "email": "alice@example.com", "password": "hunter22"}
	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/signup", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterAgainAfterAccountDeletion(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, testConfig())

	body := gin.H{"name": "Alice", "email": "alice@example.com", "password": "hunter22"}
	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp authEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NoError(t, db.Delete(&user.User{}, resp.Data.User.ID).Error)

	// The account is gone for real, so the email is free again.
	w = doJSON(t, r, http.MethodPost, "/api/auth/signup", body)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, testConfig())

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", gin.H{
		"name": "Alice", "email": "alice@example.com", "password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email": "alice@example.com", "password": "hunter22",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp authEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Token)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email": "alice@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email": "ghost@example.com", "password": "hunter22",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code, "unknown user looks like a bad password")
}
