package submission

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roborush/portal/internal/common"
	"github.com/roborush/portal/internal/round"
	"github.com/roborush/portal/internal/team"
	"github.com/roborush/portal/internal/user"
	"github.com/roborush/portal/pkg/responses"
)

// SubmissionController handles per-round team submissions. Creating one is
// leader-only and runs the full gating chain: round window, then the
// retroactive phase-1 eligibility check, then the per-round dedupe.
type SubmissionController struct {
	repo      SubmissionRepository
	teamRepo  team.TeamRepository
	roundRepo round.RoundRepository
}

func NewSubmissionController(repo SubmissionRepository, teamRepo team.TeamRepository, roundRepo round.RoundRepository) *SubmissionController {
	return &SubmissionController{repo: repo, teamRepo: teamRepo, roundRepo: roundRepo}
}

type FileRef struct {
	URL      string `json:"url" binding:"required"`
	Filename string `json:"filename"`
}

type SubmitRequest struct {
	RoundID     string    `json:"roundId" binding:"required"`
	Description string    `json:"description"`
	GithubLink  string    `json:"githubLink"`
	DriveLink   string    `json:"driveLink"`
	Files       []FileRef `json:"files" binding:"omitempty,dive"`
}

// Submit godoc
// @Summary Submit the team's work for a round
// @Description Leader-only. Rejected when the round is not open, when the
// @Description team failed phase-1 eligibility (no problem selected or
// @Description fewer than 2 members after round1 closed), or when the team
// @Description already submitted for this round.
// @Tags Submissions
// @Accept json
// @Produce json
// @Param body body SubmitRequest true "Submission data"
// @Success 201 {object} responses.SuccessResponse{data=Submission}
// @Failure 400 {object} responses.ErrorResponse "Round closed or team disqualified"
// @Failure 403 {object} responses.ErrorResponse "Only the leader can submit"
// @Failure 404 {object} responses.ErrorResponse "Team or round not found"
// @Failure 409 {object} responses.ErrorResponse "Already submitted for this round"
// @Security ApiKeyAuth
// @Router /submissions [post]
func (sc *SubmissionController) Submit(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	t, err := sc.teamRepo.GetTeamByMemberUserID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to look up team")
		return
	}
	if t == nil {
		responses.SendDomainError(c, common.ErrNotInTeam, "Team not found")
		return
	}

	if t.LeaderID != userID {
		responses.Forbidden(c, "Only team leader can submit")
		return
	}

	now := time.Now()

	rd, err := sc.roundRepo.GetByRoundID(req.RoundID)
	if err != nil {
		responses.InternalServerError(c, "Failed to look up round")
		return
	}
	if rd == nil {
		responses.NotFound(c, "Round")
		return
	}
	if !rd.IsActive(now) {
		responses.SendDomainError(c, common.ErrPhaseClosed, "Round is not open for submissions")
		return
	}

	// Retroactive eligibility: once round1 closes, a team that never
	// selected a problem or is below 2 members is out, whatever round it
	// tries to submit to.
	phase1, err := sc.roundRepo.GetByRoundID(round.Phase1ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check phase window")
		return
	}
	if phase1 != nil && phase1.HasEnded(now) {
		if t.ProblemID == nil || len(t.Members) < 2 {
			responses.SendDomainError(c, common.ErrTeamDisqualified,
				"Team is not eligible: a problem selection and at least 2 members were required before phase 1 closed")
			return
		}
	}

	exists, err := sc.repo.HasSubmission(t.ID, req.RoundID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check existing submissions")
		return
	}
	if exists {
		responses.SendError(c, http.StatusConflict, "Team has already submitted for this round")
		return
	}

	files := make(FileList, 0, len(req.Files))
	for _, f := range req.Files {
		files = append(files, SubmissionFile{URL: f.URL, Filename: f.Filename})
	}

	s := Submission{
		TeamID:      t.ID,
		RoundID:     req.RoundID,
		Description: req.Description,
		GithubLink:  req.GithubLink,
		DriveLink:   req.DriveLink,
		Files:       files,
		Status:      StatusSubmitted,
	}
	if err := sc.repo.CreateSubmission(&s); err != nil {
		// The (team_id, round_id) unique index makes the second of two
		// concurrent submitters fail here instead of duplicating.
		responses.SendError(c, http.StatusConflict, "Team has already submitted for this round")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Submission received", s)
}

// GetSubmissions godoc
// @Summary List submissions
// @Description Admins see every submission with its team; participants see
// @Description only their own team's.
// @Tags Submissions
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Submission}
// @Security ApiKeyAuth
// @Router /submissions [get]
func (sc *SubmissionController) GetSubmissions(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	role, _ := common.GetRoleFromContext(c)
	if role == user.RoleAdmin {
		subs, err := sc.repo.ListAll()
		if err != nil {
			responses.InternalServerError(c, "Failed to fetch submissions")
			return
		}
		responses.SendSuccess(c, http.StatusOK, "", subs)
		return
	}

	t, err := sc.teamRepo.GetTeamByMemberUserID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to look up team")
		return
	}
	if t == nil {
		responses.SendSuccess(c, http.StatusOK, "", []Submission{})
		return
	}

	subs, err := sc.repo.ListByTeam(t.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch submissions")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", subs)
}
