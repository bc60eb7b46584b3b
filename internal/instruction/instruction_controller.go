package instruction

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roborush/portal/pkg/responses"
)

type InstructionController struct {
	repo InstructionRepository
}

func NewInstructionController(repo InstructionRepository) *InstructionController {
	return &InstructionController{repo: repo}
}

type UpdateInstructionRequest struct {
	Content string `json:"content" binding:"required"`
}

// GetInstructions godoc
// @Summary Fetch the hackathon instructions
// @Description Returns the instructions document, seeding a default one on first access.
// @Tags Instructions
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=Instruction}
// @Router /instructions [get]
func (ic *InstructionController) GetInstructions(c *gin.Context) {
	ins, err := ic.repo.Get()
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch instructions")
		return
	}
	if ins == nil {
		ins = &Instruction{Content: DefaultContent}
		if err := ic.repo.Create(ins); err != nil {
			responses.InternalServerError(c, "Failed to seed instructions")
			return
		}
	}
	responses.SendSuccess(c, http.StatusOK, "", ins)
}

// UpdateInstructions godoc
// @Summary Replace the hackathon instructions
// @Tags Instructions
// @Accept json
// @Produce json
// @Param body body UpdateInstructionRequest true "New content"
// @Success 200 {object} responses.SuccessResponse{data=Instruction}
// @Security ApiKeyAuth
// @Router /instructions [put]
func (ic *InstructionController) UpdateInstructions(c *gin.Context) {
	var req UpdateInstructionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Content is required")
		return
	}

	ins, err := ic.repo.Get()
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch instructions")
		return
	}
	if ins == nil {
		ins = &Instruction{Content: req.Content}
		if err := ic.repo.Create(ins); err != nil {
			responses.InternalServerError(c, "Failed to save instructions")
			return
		}
	} else {
		ins.Content = req.Content
		if err := ic.repo.Update(ins); err != nil {
			responses.InternalServerError(c, "Failed to save instructions")
			return
		}
	}
	responses.SendSuccess(c, http.StatusOK, "Instructions updated successfully", ins)
}
