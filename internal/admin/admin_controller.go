package admin

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/roborush/portal/internal/mailer"
	"github.com/roborush/portal/internal/submission"
	"github.com/roborush/portal/internal/team"
	"github.com/roborush/portal/internal/user"
	"github.com/roborush/portal/pkg/responses"
)

// AdminController handles the review/outcome surface: team and user
// administration, submission status transitions and winner placement.
// Emails are enqueued best-effort; a queue failure is logged and never
// fails the triggering mutation.
type AdminController struct {
	teamRepo team.TeamRepository
	subRepo  submission.SubmissionRepository
	db       *gorm.DB
	mail     mailer.Enqueuer
	log      *zap.SugaredLogger
}

func NewAdminController(teamRepo team.TeamRepository, subRepo submission.SubmissionRepository, db *gorm.DB, mail mailer.Enqueuer, log *zap.SugaredLogger) *AdminController {
	return &AdminController{teamRepo: teamRepo, subRepo: subRepo, db: db, mail: mail, log: log}
}

type UpdateSubmissionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=submitted shortlisted rejected"`
}

type SetWinnerRequest struct {
	TeamID uint `json:"team_id" binding:"required"`
	Rank   *int `json:"rank" binding:"required,gte=0,lte=3"`
}

type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (ac *AdminController) enqueueMail(msg mailer.Message) {
	if ac.mail == nil {
		return
	}
	if err := ac.mail.Enqueue(context.Background(), msg); err != nil {
		ac.log.Errorw("failed to enqueue mail", "to", msg.To, "subject", msg.Subject, "error", err)
	}
}

func (ac *AdminController) userByID(id uint) *user.User {
	var u user.User
	if err := ac.db.First(&u, id).Error; err != nil {
		return nil
	}
	return &u
}

// GetAllTeams godoc
// @Summary List all teams
// @Tags Admin
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]team.Team}
// @Security ApiKeyAuth
// @Router /admin/teams [get]
func (ac *AdminController) GetAllTeams(c *gin.Context) {
	teams, err := ac.teamRepo.GetAllTeams()
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch teams")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", teams)
}

// DeleteTeam godoc
// @Summary Delete a team and its submissions
// @Tags Admin
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/teams/{id} [delete]
func (ac *AdminController) DeleteTeam(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return
	}

	t, err := ac.teamRepo.GetTeamByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to look up team")
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}

	if leader := ac.userByID(t.LeaderID); leader != nil && leader.Email != "" {
		ac.enqueueMail(mailer.Message{
			To:      leader.Email,
			Subject: "Team Removal Notification",
			HTML: fmt.Sprintf(
				"<h3>Hello %s,</h3><p>Your team <strong>%s</strong> has been removed from the hackathon by the administrator.</p><p>If you believe this is a mistake, please contact the support team.</p>",
				leader.Name, t.Name),
		})
	}

	if err := ac.teamRepo.DeleteTeamCascade(t.ID); err != nil {
		responses.InternalServerError(c, "Error deleting team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team removed", nil)
}

// UpdateSubmissionStatus godoc
// @Summary Set a submission's status
// @Description Any status can be set to any status, including re-opening a
// @Description rejected submission. The team leader is notified by email,
// @Description best-effort.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Submission ID"
// @Param body body UpdateSubmissionStatusRequest true "New status"
// @Success 200 {object} responses.SuccessResponse{data=submission.Submission}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/submissions/{id}/status [put]
func (ac *AdminController) UpdateSubmissionStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		responses.BadRequest(c, "Invalid submission ID")
		return
	}

	var req UpdateSubmissionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	s, err := ac.subRepo.GetSubmissionByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to look up submission")
		return
	}
	if s == nil {
		responses.NotFound(c, "Submission")
		return
	}

	s.Status = req.Status
	if err := ac.subRepo.UpdateSubmission(s); err != nil {
		responses.InternalServerError(c, "Failed to update submission")
		return
	}

	if s.Team != nil {
		if leader := ac.userByID(s.Team.LeaderID); leader != nil && leader.Email != "" {
			ac.enqueueMail(mailer.Message{
				To:      leader.Email,
				Subject: "Update on your Hackathon Submission",
				HTML: fmt.Sprintf(
					"<h3>Hello %s,</h3><p>Your team <strong>%s</strong> has been marked as <strong>%s</strong> for <strong>%s</strong>.</p><p>Check your dashboard for more details.</p>",
					leader.Name, s.Team.Name, s.Status, s.RoundID),
			})
		}
	}

	responses.SendSuccess(c, http.StatusOK, "Submission status updated", s)
}

// SetWinner godoc
// @Summary Set or clear a team's winning rank
// @Description Rank 0 clears the placement. Rank uniqueness across teams is
// @Description not enforced.
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body SetWinnerRequest true "Team and rank"
// @Success 200 {object} responses.SuccessResponse{data=team.Team}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/winners [post]
func (ac *AdminController) SetWinner(c *gin.Context) {
	var req SetWinnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	t, err := ac.teamRepo.GetTeamByID(req.TeamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to look up team")
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}

	t.WinningRank = *req.Rank
	if err := ac.teamRepo.UpdateTeam(t); err != nil {
		responses.InternalServerError(c, "Failed to set winner")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Winner updated", t)
}

// GetWinners godoc
// @Summary List winning teams, best rank first
// @Tags Admin
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]team.Team}
// @Router /admin/winners [get]
func (ac *AdminController) GetWinners(c *gin.Context) {
	winners, err := ac.teamRepo.ListWinners()
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch winners")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", winners)
}

// GetAllUsers godoc
// @Summary List all users
// @Tags Admin
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]user.User}
// @Security ApiKeyAuth
// @Router /admin/users [get]
func (ac *AdminController) GetAllUsers(c *gin.Context) {
	var users []user.User
	if err := ac.db.Order("created_at asc").Find(&users).Error; err != nil {
		responses.InternalServerError(c, "Failed to fetch users")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", users)
}

// DeleteUser godoc
// @Summary Delete a user account
// @Tags Admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/users/{id} [delete]
func (ac *AdminController) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		responses.BadRequest(c, "Invalid user ID")
		return
	}

	u := ac.userByID(uint(id))
	if u == nil {
		responses.NotFound(c, "User")
		return
	}

	// Detach from their team first so no roster row points at a deleted
	// account. Same handoff rules as removing a member by hand.
	t, err := ac.teamRepo.GetTeamByMemberUserID(u.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check team membership")
		return
	}
	if t != nil {
		if t.LeaderID == u.ID && len(t.Members) == 1 {
			if err := ac.teamRepo.DeleteTeamCascade(t.ID); err != nil {
				responses.InternalServerError(c, "Error deleting user")
				return
			}
		} else {
			if t.LeaderID == u.ID {
				for _, m := range t.Members {
					if m.UserID != u.ID {
						t.LeaderID = m.UserID
						break
					}
				}
				if err := ac.teamRepo.UpdateTeam(t); err != nil {
					responses.InternalServerError(c, "Error deleting user")
					return
				}
			}
			if err := ac.teamRepo.RemoveMember(t.ID, u.ID); err != nil {
				responses.InternalServerError(c, "Error deleting user")
				return
			}
		}
	}

	if u.Email != "" {
		ac.enqueueMail(mailer.Message{
			To:      u.Email,
			Subject: "Account Deletion Notification",
			HTML: fmt.Sprintf(
				"<h3>Hello %s,</h3><p>Your account has been deleted by the administrator.</p><p>If you believe this is a mistake, please contact support.</p>",
				u.Name),
		})
	}

	if err := ac.db.Delete(&user.User{}, u.ID).Error; err != nil {
		responses.InternalServerError(c, "Error deleting user")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "User removed", nil)
}

// AddMemberToTeam godoc
// @Summary Add a user to a team by email
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param body body AddMemberRequest true "User email"
// @Success 200 {object} responses.SuccessResponse{data=team.Team}
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse "Team full or user already in a team"
// @Security ApiKeyAuth
// @Router /admin/teams/{id}/members [post]
func (ac *AdminController) AddMemberToTeam(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	t, err := ac.teamRepo.GetTeamByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to look up team")
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}

	if len(t.Members) >= t.MaxMembers {
		responses.SendError(c, http.StatusConflict, "Team is full")
		return
	}

	var u user.User
	if err := ac.db.Where("email = ?", req.Email).First(&u).Error; err != nil {
		responses.NotFound(c, "User")
		return
	}

	existing, err := ac.teamRepo.GetTeamByMemberUserID(u.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check team membership")
		return
	}
	if existing != nil {
		responses.SendError(c, http.StatusConflict, fmt.Sprintf("User is already in team: %s", existing.Name))
		return
	}

	if err := ac.teamRepo.AddMember(&team.TeamMember{
		TeamID: t.ID,
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
	}); err != nil {
		responses.SendError(c, http.StatusConflict, "Error adding member: "+err.Error())
		return
	}

	full, err := ac.teamRepo.GetTeamByID(t.ID)
	if err != nil || full == nil {
		responses.InternalServerError(c, "Failed to load team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Member added", full)
}

// RemoveMemberFromTeam godoc
// @Summary Remove a member from a team
// @Description Removing the leader hands leadership to the earliest-joined
// @Description remaining member; removing the last member deletes the team.
// @Tags Admin
// @Produce json
// @Param id path int true "Team ID"
// @Param userId path int true "User ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/teams/{id}/members/{userId} [delete]
func (ac *AdminController) RemoveMemberFromTeam(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return
	}
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		responses.BadRequest(c, "Invalid user ID")
		return
	}

	t, err := ac.teamRepo.GetTeamByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to look up team")
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}

	found := false
	for _, m := range t.Members {
		if m.UserID == uint(userID) {
			found = true
			break
		}
	}
	if !found {
		responses.SendError(c, http.StatusNotFound, "Member not found in team")
		return
	}

	if t.LeaderID == uint(userID) {
		if len(t.Members) == 1 {
			// Last member out: a team cannot stand without a leader.
			if err := ac.teamRepo.DeleteTeamCascade(t.ID); err != nil {
				responses.InternalServerError(c, "Error removing member")
				return
			}
			responses.SendSuccess(c, http.StatusOK, "Team deleted (no members left)", nil)
			return
		}
		for _, m := range t.Members {
			if m.UserID != uint(userID) {
				t.LeaderID = m.UserID
				break
			}
		}
		if err := ac.teamRepo.UpdateTeam(t); err != nil {
			responses.InternalServerError(c, "Error removing member")
			return
		}
	}

	if err := ac.teamRepo.RemoveMember(t.ID, uint(userID)); err != nil {
		responses.InternalServerError(c, "Error removing member")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Member removed", nil)
}
