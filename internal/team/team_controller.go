package team

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/roborush/portal/internal/common"
	"github.com/roborush/portal/internal/round"
	"github.com/roborush/portal/internal/user"
	"github.com/roborush/portal/pkg/responses"
)

// TeamController handles team formation, membership lifecycle and problem
// selection. All operations act on behalf of the already-authenticated user.
type TeamController struct {
	repo      TeamRepository
	roundRepo round.RoundRepository
	db        *gorm.DB // acting-user snapshot lookups
}

func NewTeamController(repo TeamRepository, roundRepo round.RoundRepository, db *gorm.DB) *TeamController {
	return &TeamController{repo: repo, roundRepo: roundRepo, db: db}
}

type CreateTeamRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	MaxMembers int    `json:"max_members" binding:"omitempty,gte=1,lte=10"`
}

type JoinTeamRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
}

type SelectProblemRequest struct {
	ProblemID uint `json:"problem_id" binding:"required"`
}

// phase1Closed reports whether the team-formation window (round1) is over.
// A missing or open-ended round1 keeps formation open.
func (tc *TeamController) phase1Closed(now time.Time) (bool, error) {
	r, err := tc.roundRepo.GetByRoundID(round.Phase1ID)
	if err != nil {
		return false, err
	}
	return r != nil && r.HasEnded(now), nil
}

func (tc *TeamController) actingUser(c *gin.Context) (*user.User, bool) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return nil, false
	}
	var u user.User
	if err := tc.db.First(&u, userID).Error; err != nil {
		responses.Unauthorized(c, "User not found")
		return nil, false
	}
	return &u, true
}

// CreateTeam godoc
// @Summary Create a team
// @Description Creates a team with the caller as sole member and leader.
// @Tags Teams
// @Accept json
// @Produce json
// @Param body body CreateTeamRequest true "Team data"
// @Success 201 {object} responses.SuccessResponse{data=Team}
// @Failure 400 {object} responses.ErrorResponse "Phase 1 has ended"
// @Failure 409 {object} responses.ErrorResponse "Already in a team or name taken"
// @Security ApiKeyAuth
// @Router /teams [post]
func (tc *TeamController) CreateTeam(c *gin.Context) {
	u, ok := tc.actingUser(c)
	if !ok {
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	closed, err := tc.phase1Closed(time.Now())
	if err != nil {
		responses.InternalServerError(c, "Failed to check phase window")
		return
	}
	if closed {
		responses.SendDomainError(c, common.ErrPhaseClosed, "Phase 1 has ended. Team formation is closed.")
		return
	}

	existing, err := tc.repo.GetTeamByMemberUserID(u.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check team membership")
		return
	}
	if existing != nil {
		responses.SendDomainError(c, common.ErrAlreadyInTeam, "You are already in a team")
		return
	}

	if byName, err := tc.repo.GetTeamByName(req.Name); err != nil {
		responses.InternalServerError(c, "Failed to check team name")
		return
	} else if byName != nil {
		responses.SendError(c, http.StatusConflict, "Team name already exists")
		return
	}

	maxMembers := req.MaxMembers
	if maxMembers == 0 {
		maxMembers = 4
	}

	var created Team
	err = tc.repo.WithTransaction(func(repo TeamRepository) error {
		inviteCode, err := repo.GenerateInviteCode()
		if err != nil {
			return err
		}
		teamCode, err := repo.NextTeamCode()
		if err != nil {
			return err
		}

		t := Team{
			Name:       req.Name,
			TeamCode:   teamCode,
			LeaderID:   u.ID,
			InviteCode: inviteCode,
			MaxMembers: maxMembers,
		}
		if err := repo.CreateTeam(&t); err != nil {
			return err
		}
		if err := repo.AddMember(&TeamMember{
			TeamID: t.ID,
			UserID: u.ID,
			Name:   u.Name,
			Email:  u.Email,
		}); err != nil {
			return err
		}
		created = t
		return nil
	})
	if err != nil {
		// Unique indexes on name, invite code and member user close the
		// check-then-write races; a losing writer lands here.
		responses.SendError(c, http.StatusConflict, "Could not create team: "+err.Error())
		return
	}

	full, err := tc.repo.GetTeamByID(created.ID)
	if err != nil || full == nil {
		responses.InternalServerError(c, "Failed to load created team")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Team created", full)
}

// JoinTeam godoc
// @Summary Join a team by invite code
// @Tags Teams
// @Accept json
// @Produce json
// @Param body body JoinTeamRequest true "Invite code"
// @Success 200 {object} responses.SuccessResponse{data=Team}
// @Failure 400 {object} responses.ErrorResponse "Phase 1 has ended"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Failure 409 {object} responses.ErrorResponse "Already in a team or team full"
// @Security ApiKeyAuth
// @Router /teams/join [post]
func (tc *TeamController) JoinTeam(c *gin.Context) {
	u, ok := tc.actingUser(c)
	if !ok {
		return
	}

	var req JoinTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	closed, err := tc.phase1Closed(time.Now())
	if err != nil {
		responses.InternalServerError(c, "Failed to check phase window")
		return
	}
	if closed {
		responses.SendDomainError(c, common.ErrPhaseClosed, "Phase 1 has ended. Team joining is closed.")
		return
	}

	existing, err := tc.repo.GetTeamByMemberUserID(u.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check team membership")
		return
	}
	if existing != nil {
		responses.SendDomainError(c, common.ErrAlreadyInTeam, "You are already in a team")
		return
	}

	t, err := tc.repo.GetTeamByInviteCode(req.InviteCode)
	if err != nil {
		responses.InternalServerError(c, "Failed to look up team")
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}

	if len(t.Members) >= t.MaxMembers {
		responses.SendDomainError(c, common.ErrTeamFull, "Team is full")
		return
	}

	if err := tc.repo.AddMember(&TeamMember{
		TeamID: t.ID,
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
	}); err != nil {
		responses.SendError(c, http.StatusConflict, "Could not join team: "+err.Error())
		return
	}

	full, err := tc.repo.GetTeamByID(t.ID)
	if err != nil || full == nil {
		responses.InternalServerError(c, "Failed to load team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Joined team", full)
}

// GetMyTeam godoc
// @Summary Get the caller's team
// @Tags Teams
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=Team}
// @Failure 404 {object} responses.ErrorResponse "No team found"
// @Security ApiKeyAuth
// @Router /teams/me [get]
func (tc *TeamController) GetMyTeam(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	t, err := tc.repo.GetTeamByMemberUserID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to look up team")
		return
	}
	if t == nil {
		responses.SendError(c, http.StatusNotFound, "No team found")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", t)
}

// LeaveTeam godoc
// @Summary Leave the caller's team
// @Description The sole member leaving deletes the team and its submissions.
// @Description A leader leaving a larger team hands leadership to the
// @Description earliest-joined remaining member.
// @Tags Teams
// @Produce json
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse "Not in a team"
// @Security ApiKeyAuth
// @Router /teams/leave [put]
func (tc *TeamController) LeaveTeam(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	t, err := tc.repo.GetTeamByMemberUserID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to look up team")
		return
	}
	if t == nil {
		responses.SendDomainError(c, common.ErrNotInTeam, "Team not found")
		return
	}

	if t.LeaderID == userID {
		if len(t.Members) == 1 {
			if err := tc.repo.DeleteTeamCascade(t.ID); err != nil {
				responses.InternalServerError(c, "Failed to delete team")
				return
			}
			responses.SendSuccess(c, http.StatusOK, "Team deleted", nil)
			return
		}

		// Leadership passes to the earliest-joined remaining member.
		for _, m := range t.Members {
			if m.UserID != userID {
				t.LeaderID = m.UserID
				break
			}
		}
		if err := tc.repo.UpdateTeam(t); err != nil {
			responses.InternalServerError(c, "Failed to transfer leadership")
			return
		}
	}

	if err := tc.repo.RemoveMember(t.ID, userID); err != nil {
		responses.InternalServerError(c, "Failed to leave team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Left team", nil)
}

// SelectProblem godoc
// @Summary Select a problem statement for the caller's team
// @Description Leader-only, one-shot. The choice is permanent for the
// @Description participant-facing API.
// @Tags Problems
// @Accept json
// @Produce json
// @Param body body SelectProblemRequest true "Problem to select"
// @Success 200 {object} responses.SuccessResponse{data=Team}
// @Failure 400 {object} responses.ErrorResponse "Phase 1 has ended"
// @Failure 403 {object} responses.ErrorResponse "Only the leader can select"
// @Failure 404 {object} responses.ErrorResponse "Team or problem not found"
// @Failure 409 {object} responses.ErrorResponse "Problem already selected"
// @Security ApiKeyAuth
// @Router /problems/select [post]
func (tc *TeamController) SelectProblem(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req SelectProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	t, err := tc.repo.GetTeamByMemberUserID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to look up team")
		return
	}
	if t == nil {
		responses.SendDomainError(c, common.ErrNotInTeam, "Team not found")
		return
	}

	if t.LeaderID != userID {
		responses.Forbidden(c, "Only team leader can select problem")
		return
	}

	// Selection shares round1's window with team formation; the check is
	// enforced here and not left to the client.
	closed, err := tc.phase1Closed(time.Now())
	if err != nil {
		responses.InternalServerError(c, "Failed to check phase window")
		return
	}
	if closed {
		responses.SendDomainError(c, common.ErrPhaseClosed, "Phase 1 has ended. Problem selection is closed.")
		return
	}

	if t.ProblemID != nil {
		responses.SendDomainError(c, common.ErrAlreadySelected, "Problem already selected")
		return
	}

	exists, err := tc.repo.ProblemExists(req.ProblemID)
	if err != nil {
		responses.InternalServerError(c, "Failed to look up problem")
		return
	}
	if !exists {
		responses.NotFound(c, "Problem")
		return
	}

	problemID := req.ProblemID
	t.ProblemID = &problemID
	if err := tc.repo.UpdateTeam(t); err != nil {
		responses.InternalServerError(c, "Failed to select problem")
		return
	}

	full, err := tc.repo.GetTeamByID(t.ID)
	if err != nil || full == nil {
		responses.InternalServerError(c, "Failed to load team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Problem selected", full)
}
