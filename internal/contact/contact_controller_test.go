package contact_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/roborush/portal/internal/contact"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&contact.Contact{}))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller := contact.NewContactController(contact.NewContactRepository(db))
	r.GET("/api/contacts", controller.GetContacts)
	r.POST("/api/contacts", controller.AddContact)
	r.DELETE("/api/contacts/:id", controller.DeleteContact)
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

func TestContactLifecycle(t *testing.T) {
	r := newRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/contacts", gin.H{"name": "Event Desk", "phone": "+91 98765 43210"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data contact.Contact `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodPost, "/api/contacts", gin.H{"name": "Desk only"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "phone is required")

	w = doJSON(t, r, http.MethodGet, "/api/contacts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data []contact.Contact `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Event Desk", list.Data[0].Name)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/contacts/%d", created.Data.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/contacts/%d", created.Data.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
