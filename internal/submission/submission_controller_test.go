package submission_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/roborush/portal/internal/common"
	"github.com/roborush/portal/internal/problem"
	"github.com/roborush/portal/internal/round"
	"github.com/roborush/portal/internal/submission"
	"github.com/roborush/portal/internal/team"
	"github.com/roborush/portal/internal/user"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&user.User{}, &round.Round{}, &problem.Problem{},
		&team.Team{}, &team.TeamMember{}, &team.TeamTagCounter{},
		&submission.Submission{},
	))
	return db
}

func newRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller := submission.NewSubmissionController(
		submission.NewSubmissionRepository(db),
		team.NewTeamRepository(db),
		round.NewRoundRepository(db),
	)

	api := r.Group("/api", func(c *gin.Context) {
		if raw := c.GetHeader("X-User-ID"); raw != "" {
			id, _ := strconv.Atoi(raw)
			var u user.User
			if err := db.First(&u, id).Error; err == nil {
				c.Set(common.ContextUserIDKey, u.ID)
				c.Set(common.ContextRoleKey, u.Role)
			}
		}
	})
	api.POST("/submissions", controller.Submit)
	api.GET("/submissions", controller.GetSubmissions)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, userID uint, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-User-ID", strconv.Itoa(int(userID)))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedUser(t *testing.T, db *gorm.DB, name, role string) *user.User {
	t.Helper()
	u := &user.User{Name: name, Email: name + "@example.com", PasswordHash: "x", Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

// seedTeam creates a team led by the first user, with every user a member,
// optionally with a problem already selected.
func seedTeam(t *testing.T, db *gorm.DB, name string, withProblem bool, members ...*user.User) *team.Team {
	t.Helper()
	require.NotEmpty(t, members)

	var problemID *uint
	if withProblem {
		p := problem.Problem{Title: name + " problem", Category: "Both", Description: "task"}
		require.NoError(t, db.Create(&p).Error)
		problemID = &p.ID
	}

	tm := &team.Team{
		Name:       name,
		TeamCode:   fmt.Sprintf("RB%02d", len(name)), // distinct enough per test
		LeaderID:   members[0].ID,
		InviteCode: fmt.Sprintf("IV%04d", members[0].ID),
		ProblemID:  problemID,
		MaxMembers: 4,
	}
	require.NoError(t, db.Create(tm).Error)
	for _, m := range members {
		require.NoError(t, db.Create(&team.TeamMember{
			TeamID: tm.ID, UserID: m.ID, Name: m.Name, Email: m.Email,
		}).Error)
	}
	return tm
}

func seedRound(t *testing.T, db *gorm.DB, roundID string, startAt, endAt *time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&round.Round{
		RoundID: roundID, Name: roundID, StartAt: startAt, EndAt: endAt,
	}).Error)
}

func timePtr(tm time.Time) *time.Time { return &tm }

func TestSubmitGating(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db)
	alice := seedUser(t, db, "alice", user.RoleParticipant)
	bob := seedUser(t, db, "bob", user.RoleParticipant)
	dave := seedUser(t, db, "dave", user.RoleParticipant)
	seedTeam(t, db, "Circuit Breakers", true, alice, bob)

	now := time.Now()
	seedRound(t, db, "round2", timePtr(now.Add(-time.Hour)), timePtr(now.Add(time.Hour)))
	seedRound(t, db, "round3", timePtr(now.Add(24*time.Hour)), nil)
	seedRound(t, db, "round4", timePtr(now.Add(-48*time.Hour)), timePtr(now.Add(-24*time.Hour)))

	payload := func(roundID string) gin.H {
		return gin.H{"roundId": roundID, "githubLink": "https://github.com/x/y"}
	}

	w := doJSON(t, r, http.MethodPost, "/api/submissions", dave.ID, payload("round2"))
	assert.Equal(t, http.StatusNotFound, w.Code, "no team")

	w = doJSON(t, r, http.MethodPost, "/api/submissions", bob.ID, payload("round2"))
	assert.Equal(t, http.StatusForbidden, w.Code, "not the leader")

	w = doJSON(t, r, http.MethodPost, "/api/submissions", alice.ID, payload("roundX"))
	assert.Equal(t, http.StatusNotFound, w.Code, "unknown round")

	w = doJSON(t, r, http.MethodPost, "/api/submissions", alice.ID, payload("round3"))
	assert.Equal(t, http.StatusBadRequest, w.Code, "round not started")

	w = doJSON(t, r, http.MethodPost, "/api/submissions", alice.ID, payload("round4"))
	assert.Equal(t, http.StatusBadRequest, w.Code, "round over")

	w = doJSON(t, r, http.MethodPost, "/api/submissions", alice.ID, payload("round2"))
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestSubmitOncePerRound(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db)
	alice := seedUser(t, db, "alice", user.RoleParticipant)
	bob := seedUser(t, db, "bob", user.RoleParticipant)
	seedTeam(t, db, "Circuit Breakers", true, alice, bob)

	now := time.Now()
	seedRound(t, db, "round2", timePtr(now.Add(-time.Hour)), timePtr(now.Add(time.Hour)))

	body := gin.H{
		"roundId":     "round2",
		"description": "our prototype",
		"files":       []gin.H{{"url": "https://drive.example.com/f1", "filename": "demo.mp4"}},
	}
	w := doJSON(t, r, http.MethodPost, "/api/submissions", alice.ID, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data submission.Submission `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, submission.StatusSubmitted, resp.Data.Status)
	require.Len(t, resp.Data.Files, 1)
	assert.Equal(t, "demo.mp4", resp.Data.Files[0].Filename)

	w = doJSON(t, r, http.MethodPost, "/api/submissions", alice.ID, body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSubmitRetroactiveDisqualification(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db)

	now := time.Now()
	// round1 is over; round2 is open.
	seedRound(t, db, round.Phase1ID, timePtr(now.Add(-72*time.Hour)), timePtr(now.Add(-24*time.Hour)))
	seedRound(t, db, "round2", timePtr(now.Add(-time.Hour)), timePtr(now.Add(time.Hour)))

	payload := gin.H{"roundId": "round2"}

	// No problem selected before round1 closed.
	a1 := seedUser(t, db, "lead1", user.RoleParticipant)
	a2 := seedUser(t, db, "mate1", user.RoleParticipant)
	seedTeam(t, db, "No Problem", false, a1, a2)
	w := doJSON(t, r, http.MethodPost, "/api/submissions", a1.ID, payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Under two members when round1 closed.
	b1 := seedUser(t, db, "lead2", user.RoleParticipant)
	seedTeam(t, db, "Lone Wolf", true, b1)
	w = doJSON(t, r, http.MethodPost, "/api/submissions", b1.ID, payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Eligible team sails through.
	c1 := seedUser(t, db, "lead3", user.RoleParticipant)
	c2 := seedUser(t, db, "mate3", user.RoleParticipant)
	seedTeam(t, db, "Eligible", true, c1, c2)
	w = doJSON(t, r, http.MethodPost, "/api/submissions", c1.ID, payload)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestGetSubmissionsScoping(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db)
	admin := seedUser(t, db, "admin", user.RoleAdmin)
	alice := seedUser(t, db, "alice", user.RoleParticipant)
	bob := seedUser(t, db, "bob", user.RoleParticipant)
	carol := seedUser(t, db, "carol", user.RoleParticipant)
	dave := seedUser(t, db, "dave", user.RoleParticipant)
	outsider := seedUser(t, db, "outsider", user.RoleParticipant)

	t1 := seedTeam(t, db, "Circuit Breakers", true, alice, bob)
	t2 := seedTeam(t, db, "Servo Society", true, carol, dave)
	require.NoError(t, db.Create(&submission.Submission{TeamID: t1.ID, RoundID: "round2", Status: submission.StatusSubmitted}).Error)
	require.NoError(t, db.Create(&submission.Submission{TeamID: t2.ID, RoundID: "round2", Status: submission.StatusSubmitted}).Error)

	var resp struct {
		Data []submission.Submission `json:"data"`
	}

	w := doJSON(t, r, http.MethodGet, "/api/submissions", admin.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2, "admins see everything")

	w = doJSON(t, r, http.MethodGet, "/api/submissions", bob.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1, "participants see their own team only")
	assert.Equal(t, t1.ID, resp.Data[0].TeamID)

	w = doJSON(t, r, http.MethodGet, "/api/submissions", outsider.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data)
}
