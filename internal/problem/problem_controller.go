package problem

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/roborush/portal/pkg/responses"
)

// ProblemController handles the admin-owned problem statement catalogue.
// Problem selection by a team leader lives with the team lifecycle.
type ProblemController struct {
	repo ProblemRepository
}

func NewProblemController(repo ProblemRepository) *ProblemController {
	return &ProblemController{repo: repo}
}

type CreateProblemRequest struct {
	Title       string `json:"title" binding:"required"`
	Category    string `json:"category" binding:"required,oneof=Hardware Software Both"`
	Description string `json:"description" binding:"required"`
	Difficulty  string `json:"difficulty" binding:"omitempty,oneof=Easy Medium Hard"`
	MaxTeamSize int    `json:"max_team_size" binding:"omitempty,gte=1"`
}

type UpdateProblemRequest struct {
	Title       *string `json:"title"`
	Category    *string `json:"category" binding:"omitempty,oneof=Hardware Software Both"`
	Description *string `json:"description"`
	Difficulty  *string `json:"difficulty" binding:"omitempty,oneof=Easy Medium Hard"`
	MaxTeamSize *int    `json:"max_team_size" binding:"omitempty,gte=1"`
}

// GetProblems godoc
// @Summary List problem statements
// @Tags Problems
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Problem}
// @Router /problems [get]
func (pc *ProblemController) GetProblems(c *gin.Context) {
	problems, err := pc.repo.ListProblems()
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch problems")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", problems)
}

// CreateProblem godoc
// @Summary Create a problem statement
// @Tags Problems
// @Accept json
// @Produce json
// @Param body body CreateProblemRequest true "Problem data"
// @Success 201 {object} responses.SuccessResponse{data=Problem}
// @Security ApiKeyAuth
// @Router /problems [post]
func (pc *ProblemController) CreateProblem(c *gin.Context) {
	var req CreateProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	p := Problem{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		MaxTeamSize: req.MaxTeamSize,
	}
	if p.Difficulty == "" {
		p.Difficulty = "Medium"
	}
	if p.MaxTeamSize == 0 {
		p.MaxTeamSize = 4
	}

	if err := pc.repo.CreateProblem(&p); err != nil {
		responses.InternalServerError(c, "Failed to create problem")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Problem created", p)
}

// UpdateProblem godoc
// @Summary Update a problem statement
// @Tags Problems
// @Accept json
// @Produce json
// @Param id path int true "Problem ID"
// @Param body body UpdateProblemRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Problem}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /problems/{id} [put]
func (pc *ProblemController) UpdateProblem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		responses.BadRequest(c, "Invalid problem ID")
		return
	}

	var req UpdateProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	p, err := pc.repo.GetProblemByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch problem")
		return
	}
	if p == nil {
		responses.NotFound(c, "Problem")
		return
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Difficulty != nil {
		p.Difficulty = *req.Difficulty
	}
	if req.MaxTeamSize != nil {
		p.MaxTeamSize = *req.MaxTeamSize
	}

	if err := pc.repo.UpdateProblem(p); err != nil {
		responses.InternalServerError(c, "Failed to update problem")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Problem updated", p)
}

// DeleteProblem godoc
// @Summary Delete a problem statement
// @Tags Problems
// @Produce json
// @Param id path int true "Problem ID"
// @Success 200 {object} responses.SuccessResponse
// @Security ApiKeyAuth
// @Router /problems/{id} [delete]
func (pc *ProblemController) DeleteProblem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		responses.BadRequest(c, "Invalid problem ID")
		return
	}

	if err := pc.repo.DeleteProblem(uint(id)); err != nil {
		responses.InternalServerError(c, "Failed to delete problem")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Problem deleted", nil)
}
