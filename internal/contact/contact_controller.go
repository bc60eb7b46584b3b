package contact

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/roborush/portal/pkg/responses"
)

type ContactController struct {
	repo ContactRepository
}

func NewContactController(repo ContactRepository) *ContactController {
	return &ContactController{repo: repo}
}

type CreateContactRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

// GetContacts godoc
// @Summary List organizer contacts
// @Tags Contacts
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Contact}
// @Router /contacts [get]
func (cc *ContactController) GetContacts(c *gin.Context) {
	cts, err := cc.repo.List()
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch contacts")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", cts)
}

// AddContact godoc
// @Summary Add an organizer contact
// @Tags Contacts
// @Accept json
// @Produce json
// @Param body body CreateContactRequest true "Contact data"
// @Success 201 {object} responses.SuccessResponse{data=Contact}
// @Security ApiKeyAuth
// @Router /contacts [post]
func (cc *ContactController) AddContact(c *gin.Context) {
	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Name and phone are required")
		return
	}

	ct := Contact{Name: req.Name, Phone: req.Phone}
	if err := cc.repo.Create(&ct); err != nil {
		responses.InternalServerError(c, "Failed to create contact")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Contact added successfully", ct)
}

// DeleteContact godoc
// @Summary Delete an organizer contact
// @Tags Contacts
// @Produce json
// @Param id path int true "Contact ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /contacts/{id} [delete]
func (cc *ContactController) DeleteContact(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		responses.BadRequest(c, "Invalid contact ID")
		return
	}

	deleted, err := cc.repo.Delete(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to delete contact")
		return
	}
	if deleted == 0 {
		responses.NotFound(c, "Contact")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Contact deleted successfully", nil)
}
