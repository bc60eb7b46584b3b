package admin_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/roborush/portal/internal/admin"
	"github.com/roborush/portal/internal/mailer"
	"github.com/roborush/portal/internal/problem"
	"github.com/roborush/portal/internal/submission"
	"github.com/roborush/portal/internal/team"
	"github.com/roborush/portal/internal/user"
)

// fakeMail records enqueued messages instead of touching redis.
type fakeMail struct {
	sent []mailer.Message
}

func (f *fakeMail) Enqueue(_ context.Context, msg mailer.Message) error {
	f.sent = append(f.sent, msg)
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&user.User{}, &problem.Problem{},
		&team.Team{}, &team.TeamMember{}, &team.TeamTagCounter{},
		&submission.Submission{},
	))
	return db
}

func newRouter(db *gorm.DB, mail *fakeMail) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller := admin.NewAdminController(
		team.NewTeamRepository(db),
		submission.NewSubmissionRepository(db),
		db, mail, zap.NewNop().Sugar(),
	)

	api := r.Group("/api")
	api.GET("/admin/winners", controller.GetWinners)
	api.GET("/admin/teams", controller.GetAllTeams)
	api.DELETE("/admin/teams/:id", controller.DeleteTeam)
	api.POST("/admin/teams/:id/members", controller.AddMemberToTeam)
	api.DELETE("/admin/teams/:id/members/:userId", controller.RemoveMemberFromTeam)
	api.PUT("/admin/submissions/:id/status", controller.UpdateSubmissionStatus)
	api.POST("/admin/winners", controller.SetWinner)
	api.GET("/admin/users", controller.GetAllUsers)
	api.DELETE("/admin/users/:id", controller.DeleteUser)
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

func seedUser(t *testing.T, db *gorm.DB, name string) *user.User {
	t.Helper()
	u := &user.User{Name: name, Email: name + "@example.com", PasswordHash: "x", Role: user.RoleParticipant}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedTeam(t *testing.T, db *gorm.DB, name string, members ...*user.User) *team.Team {
	t.Helper()
	require.NotEmpty(t, members)
	tm := &team.Team{
		Name:       name,
		TeamCode:   fmt.Sprintf("RB%02d", len(name)),
		LeaderID:   members[0].ID,
		InviteCode: fmt.Sprintf("IV%04d", members[0].ID),
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

func TestSetWinnerAndOrdering(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, &fakeMail{})

	t1 := seedTeam(t, db, "Alpha", seedUser(t, db, "a"))
	t2 := seedTeam(t, db, "Bravo1", seedUser(t, db, "b"))
	t3 := seedTeam(t, db, "Charlie2", seedUser(t, db, "c"))

	for _, tc := range []struct {
		teamID uint
		rank   int
	}{
		{t1.ID, 2}, {t2.ID, 1}, {t3.ID, 3},
	} {
		w := doJSON(t, r, http.MethodPost, "/api/admin/winners", gin.H{"team_id": tc.teamID, "rank": tc.rank})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	var resp struct {
		Data []team.Team `json:"data"`
	}
	w := doJSON(t, r, http.MethodGet, "/api/admin/winners", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 3)
	assert.Equal(t, []uint{t2.ID, t1.ID, t3.ID},
		[]uint{resp.Data[0].ID, resp.Data[1].ID, resp.Data[2].ID},
		"best rank first")

	// Rank 0 clears the placement.
	w = doJSON(t, r, http.MethodPost, "/api/admin/winners", gin.H{"team_id": t3.ID, "rank": 0})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/admin/winners", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)

	w = doJSON(t, r, http.MethodPost, "/api/admin/winners", gin.H{"team_id": t1.ID, "rank": 7})
	assert.Equal(t, http.StatusBadRequest, w.Code, "rank is capped at 3")

	w = doJSON(t, r, http.MethodPost, "/api/admin/winners", gin.H{"team_id": 9999, "rank": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateSubmissionStatusNotifiesLeader(t *testing.T) {
	db := newTestDB(t)
	mail := &fakeMail{}
	r := newRouter(db, mail)

	leader := seedUser(t, db, "leader")
	tm := seedTeam(t, db, "Circuit Breakers", leader)
	sub := submission.Submission{TeamID: tm.ID, RoundID: "round2", Status: submission.StatusSubmitted}
	require.NoError(t, db.Create(&sub).Error)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/admin/submissions/%d/status", sub.ID),
		gin.H{"status": "shortlisted"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored submission.Submission
	require.NoError(t, db.First(&stored, sub.ID).Error)
	assert.Equal(t, submission.StatusShortlisted, stored.Status)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, leader.Email, mail.sent[0].To)
	assert.Contains(t, mail.sent[0].HTML, "shortlisted")

	// Any transition goes, including re-opening a rejected submission.
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/admin/submissions/%d/status", sub.ID),
		gin.H{"status": "rejected"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/admin/submissions/%d/status", sub.ID),
		gin.H{"status": "submitted"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/admin/submissions/%d/status", sub.ID),
		gin.H{"status": "winner"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown status")

	w = doJSON(t, r, http.MethodPut, "/api/admin/submissions/9999/status", gin.H{"status": "rejected"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTeamCascadesAndMailsLeader(t *testing.T) {
	db := newTestDB(t)
	mail := &fakeMail{}
	r := newRouter(db, mail)

	leader := seedUser(t, db, "leader")
	mate := seedUser(t, db, "mate")
	tm := seedTeam(t, db, "Circuit Breakers", leader, mate)
	require.NoError(t, db.Create(&submission.Submission{TeamID: tm.ID, RoundID: "round2", Status: submission.StatusSubmitted}).Error)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/admin/teams/%d", tm.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var teams, members, subs int64
	require.NoError(t, db.Model(&team.Team{}).Count(&teams).Error)
	require.NoError(t, db.Model(&team.TeamMember{}).Count(&members).Error)
	require.NoError(t, db.Model(&submission.Submission{}).Count(&subs).Error)
	assert.Zero(t, teams)
	assert.Zero(t, members)
	assert.Zero(t, subs)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, leader.Email, mail.sent[0].To)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/admin/teams/%d", tm.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddMemberToTeam(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, &fakeMail{})

	leader := seedUser(t, db, "leader")
	joiner := seedUser(t, db, "joiner")
	other := seedUser(t, db, "other")
	tm := seedTeam(t, db, "Circuit Breakers", leader)
	seedTeam(t, db, "Servo Society", other)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/admin/teams/%d/members", tm.ID),
		gin.H{"email": joiner.Email})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data team.Team `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Members, 2)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/admin/teams/%d/members", tm.ID),
		gin.H{"email": "nobody@example.com"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/admin/teams/%d/members", tm.ID),
		gin.H{"email": other.Email})
	assert.Equal(t, http.StatusConflict, w.Code, "already in another team")
}

func TestRemoveMemberFromTeam(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, &fakeMail{})

	leader := seedUser(t, db, "leader")
	mate := seedUser(t, db, "mate")
	tm := seedTeam(t, db, "Circuit Breakers", leader, mate)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/admin/teams/%d/members/%d", tm.ID, 9999), nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "not a member")

	// Removing the leader reassigns leadership before the removal.
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/admin/teams/%d/members/%d", tm.ID, leader.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored team.Team
	require.NoError(t, db.First(&stored, tm.ID).Error)
	assert.Equal(t, mate.ID, stored.LeaderID)

	// Removing the last member dissolves the team.
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/admin/teams/%d/members/%d", tm.ID, mate.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var teams int64
	require.NoError(t, db.Model(&team.Team{}).Count(&teams).Error)
	assert.Zero(t, teams)
}

func TestDeleteUser(t *testing.T) {
	db := newTestDB(t)
	mail := &fakeMail{}
	r := newRouter(db, mail)

	u := seedUser(t, db, "goner")

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", u.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, u.Email, mail.sent[0].To)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", u.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var users int64
	require.NoError(t, db.Model(&user.User{}).Count(&users).Error)
	assert.Zero(t, users, "the row is gone, not flagged")
}

func TestDeleteUserDetachesFromTeam(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, &fakeMail{})

	leader := seedUser(t, db, "leader")
	mate := seedUser(t, db, "mate")
	tm := seedTeam(t, db, "Circuit Breakers", leader, mate)

	// Deleting the leader hands leadership over and clears their roster row.
	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", leader.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored team.Team
	require.NoError(t, db.First(&stored, tm.ID).Error)
	assert.Equal(t, mate.ID, stored.LeaderID)

	var ghosts int64
	require.NoError(t, db.Model(&team.TeamMember{}).Where("user_id = ?", leader.ID).Count(&ghosts).Error)
	assert.Zero(t, ghosts)

	// Deleting the last member dissolves the team entirely.
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", mate.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var teams, members int64
	require.NoError(t, db.Model(&team.Team{}).Count(&teams).Error)
	require.NoError(t, db.Model(&team.TeamMember{}).Count(&members).Error)
	assert.Zero(t, teams)
	assert.Zero(t, members)
}
