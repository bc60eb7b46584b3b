package round

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roborush/portal/internal/common"
	"github.com/roborush/portal/internal/user"
	"github.com/roborush/portal/pkg/responses"
	"gorm.io/gorm"
)

// RoundController handles the round registry and score uploads.
type RoundController struct {
	repo RoundRepository
	db   *gorm.DB // for judge name lookup on score upload
}

func NewRoundController(repo RoundRepository, db *gorm.DB) *RoundController {
	return &RoundController{repo: repo, db: db}
}

type CreateRoundRequest struct {
	RoundID      string     `json:"roundId" binding:"required"`
	Name         string     `json:"name" binding:"required"`
	Description  string     `json:"description"`
	StartAt      *time.Time `json:"startAt"`
	EndAt        *time.Time `json:"endAt"`
	IsOffline    bool       `json:"isOffline"`
	ScheduleInfo string     `json:"scheduleInfo"`
}

type UpdateRoundRequest struct {
	Name         *string    `json:"name"`
	Description  *string    `json:"description"`
	StartAt      *time.Time `json:"startAt"`
	EndAt        *time.Time `json:"endAt"`
	IsOffline    *bool      `json:"isOffline"`
	ScheduleInfo *string    `json:"scheduleInfo"`
}

type ScoreEntry struct {
	TeamID  uint    `json:"team_id" binding:"required"`
	Score   float64 `json:"score" binding:"required"`
	Remarks string  `json:"remarks"`
}

type UploadScoresRequest struct {
	Scores []ScoreEntry `json:"scores" binding:"required,dive"`
}

// GetRounds godoc
// @Summary List all rounds
// @Tags Rounds
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Round}
// @Router /rounds [get]
func (rc *RoundController) GetRounds(c *gin.Context) {
	rounds, err := rc.repo.ListRounds()
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch rounds")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", rounds)
}

// CreateRound godoc
// @Summary Create a round
// @Tags Rounds
// @Accept json
// @Produce json
// @Param body body CreateRoundRequest true "Round data"
// @Success 201 {object} responses.SuccessResponse{data=Round}
// @Failure 409 {object} responses.ErrorResponse "Round tag already exists"
// @Security ApiKeyAuth
// @Router /rounds [post]
func (rc *RoundController) CreateRound(c *gin.Context) {
	var req CreateRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	existing, err := rc.repo.GetByRoundID(req.RoundID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check existing rounds")
		return
	}
	if existing != nil {
		responses.SendError(c, http.StatusConflict, "Round tag already exists")
		return
	}

	rd := Round{
		RoundID:      req.RoundID,
		Name:         req.Name,
		Description:  req.Description,
		StartAt:      req.StartAt,
		EndAt:        req.EndAt,
		IsOffline:    req.IsOffline,
		ScheduleInfo: req.ScheduleInfo,
	}
	if err := rc.repo.CreateRound(&rd); err != nil {
		responses.SendError(c, http.StatusConflict, "Round tag already exists")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Round created", rd)
}

// UpdateRound godoc
// @Summary Update a round by its tag
// @Tags Rounds
// @Accept json
// @Produce json
// @Param id path string true "Round tag, e.g. round1"
// @Param body body UpdateRoundRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Round}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /rounds/{id} [put]
func (rc *RoundController) UpdateRound(c *gin.Context) {
	roundID := c.Param("id")

	var req UpdateRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	rd, err := rc.repo.GetByRoundID(roundID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch round")
		return
	}
	if rd == nil {
		responses.NotFound(c, "Round")
		return
	}

	if req.Name != nil {
		rd.Name = *req.Name
	}
	if req.Description != nil {
		rd.Description = *req.Description
	}
	if req.StartAt != nil {
		rd.StartAt = req.StartAt
	}
	if req.EndAt != nil {
		rd.EndAt = req.EndAt
	}
	if req.IsOffline != nil {
		rd.IsOffline = *req.IsOffline
	}
	if req.ScheduleInfo != nil {
		rd.ScheduleInfo = *req.ScheduleInfo
	}

	if err := rc.repo.UpdateRound(rd); err != nil {
		responses.InternalServerError(c, "Failed to update round")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Round updated", rd)
}

// UploadScores godoc
// @Summary Bulk upload judge scores for a round
// @Tags Rounds
// @Accept json
// @Produce json
// @Param id path string true "Round tag"
// @Param body body UploadScoresRequest true "Scores"
// @Success 200 {object} responses.SuccessResponse{data=[]Score}
// @Security ApiKeyAuth
// @Router /rounds/{id}/scores [put]
func (rc *RoundController) UploadScores(c *gin.Context) {
	roundID := c.Param("id")

	var req UploadScoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	judge := ""
	if userID, err := common.GetUserIDFromContext(c); err == nil {
		var u user.User
		if err := rc.db.First(&u, userID).Error; err == nil {
			judge = u.Name
		}
	}

	scores := make([]Score, 0, len(req.Scores))
	for _, s := range req.Scores {
		scores = append(scores, Score{
			TeamID:  s.TeamID,
			RoundID: roundID,
			Judge:   judge,
			Score:   s.Score,
			Remarks: s.Remarks,
		})
	}

	if err := rc.repo.CreateScores(scores); err != nil {
		responses.InternalServerError(c, "Failed to save scores")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Scores uploaded", scores)
}
