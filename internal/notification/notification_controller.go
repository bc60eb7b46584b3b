package notification

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/roborush/portal/internal/common"
	"github.com/roborush/portal/internal/team"
	"github.com/roborush/portal/internal/user"
	"github.com/roborush/portal/pkg/responses"
)

// NotificationController handles in-app notifications: per-user inbox plus
// the admin broadcast surface.
type NotificationController struct {
	repo     NotificationRepository
	teamRepo team.TeamRepository
	db       *gorm.DB // recipient fan-out lookups
}

func NewNotificationController(repo NotificationRepository, teamRepo team.TeamRepository, db *gorm.DB) *NotificationController {
	return &NotificationController{repo: repo, teamRepo: teamRepo, db: db}
}

type CreateNotificationRequest struct {
	RecipientID uint   `json:"recipient_id"`
	Message     string `json:"message" binding:"required"`
	Type        string `json:"type" binding:"omitempty,oneof=info alert success warning"`
	SendToAll   bool   `json:"send_to_all"`
	SendToTeam  bool   `json:"send_to_team"`
	TeamID      uint   `json:"team_id"`
}

// inboxLimit caps the per-user notification list to the most recent items.
const inboxLimit = 20

// CreateNotification godoc
// @Summary Send a notification, a team broadcast or an all-users broadcast
// @Tags Notifications
// @Accept json
// @Produce json
// @Param body body CreateNotificationRequest true "Notification data"
// @Success 201 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Security ApiKeyAuth
// @Router /notifications [post]
func (nc *NotificationController) CreateNotification(c *gin.Context) {
	senderID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	if req.Type == "" {
		req.Type = TypeInfo
	}

	if req.SendToAll {
		var userIDs []uint
		if err := nc.db.Model(&user.User{}).Pluck("id", &userIDs).Error; err != nil {
			responses.InternalServerError(c, "Failed to fetch recipients")
			return
		}

		batchID := uuid.NewString()
		ns := make([]Notification, 0, len(userIDs))
		for _, id := range userIDs {
			ns = append(ns, Notification{
				RecipientID: id,
				SenderID:    &senderID,
				Message:     req.Message,
				Type:        req.Type,
				BatchID:     &batchID,
			})
		}
		if err := nc.repo.CreateBatch(ns); err != nil {
			responses.InternalServerError(c, "Failed to create notifications")
			return
		}
		responses.SendSuccess(c, http.StatusCreated,
			fmt.Sprintf("Notification sent to %d users", len(ns)),
			gin.H{"batch_id": batchID})
		return
	}

	if req.SendToTeam {
		if req.TeamID == 0 {
			responses.BadRequest(c, "Team ID is required if sending to a team")
			return
		}
		t, err := nc.teamRepo.GetTeamByID(req.TeamID)
		if err != nil {
			responses.InternalServerError(c, "Failed to look up team")
			return
		}
		if t == nil {
			responses.NotFound(c, "Team")
			return
		}

		// Leader plus roster, deduplicated.
		recipients := map[uint]struct{}{t.LeaderID: {}}
		for _, m := range t.Members {
			recipients[m.UserID] = struct{}{}
		}

		batchID := uuid.NewString()
		ns := make([]Notification, 0, len(recipients))
		for id := range recipients {
			ns = append(ns, Notification{
				RecipientID: id,
				SenderID:    &senderID,
				Message:     req.Message,
				Type:        req.Type,
				BatchID:     &batchID,
			})
		}
		if err := nc.repo.CreateBatch(ns); err != nil {
			responses.InternalServerError(c, "Failed to create notifications")
			return
		}
		responses.SendSuccess(c, http.StatusCreated,
			fmt.Sprintf("Notification sent to team members (%d users)", len(ns)),
			gin.H{"batch_id": batchID})
		return
	}

	if req.RecipientID == 0 {
		responses.BadRequest(c, "Recipient ID is required if not sending to all")
		return
	}

	n := Notification{
		RecipientID: req.RecipientID,
		SenderID:    &senderID,
		Message:     req.Message,
		Type:        req.Type,
	}
	if err := nc.repo.Create(&n); err != nil {
		responses.InternalServerError(c, "Failed to create notification")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Notification created", n)
}

// GetBroadcasts godoc
// @Summary List broadcast history grouped by batch
// @Tags Notifications
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]BroadcastSummary}
// @Security ApiKeyAuth
// @Router /notifications/broadcasts [get]
func (nc *NotificationController) GetBroadcasts(c *gin.Context) {
	broadcasts, err := nc.repo.ListBroadcasts()
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch broadcasts")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", broadcasts)
}

// DeleteBroadcast godoc
// @Summary Delete every notification in a broadcast batch
// @Tags Notifications
// @Produce json
// @Param batchId path string true "Batch ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /notifications/broadcasts/{batchId} [delete]
func (nc *NotificationController) DeleteBroadcast(c *gin.Context) {
	batchID := c.Param("batchId")
	deleted, err := nc.repo.DeleteBatch(batchID)
	if err != nil {
		responses.InternalServerError(c, "Failed to delete broadcast")
		return
	}
	if deleted == 0 {
		responses.NotFound(c, "Broadcast")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Broadcast deleted successfully", nil)
}

// GetUserNotifications godoc
// @Summary List the caller's notifications, newest first
// @Tags Notifications
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Notification}
// @Security ApiKeyAuth
// @Router /notifications [get]
func (nc *NotificationController) GetUserNotifications(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	ns, err := nc.repo.ListByRecipient(userID, inboxLimit)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch notifications")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", ns)
}

// MarkAsRead godoc
// @Summary Mark one of the caller's notifications as read
// @Tags Notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} responses.SuccessResponse{data=Notification}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /notifications/{id}/read [put]
func (nc *NotificationController) MarkAsRead(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		responses.BadRequest(c, "Invalid notification ID")
		return
	}

	n, err := nc.repo.GetByIDForRecipient(uint(id), userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to look up notification")
		return
	}
	if n == nil {
		responses.NotFound(c, "Notification")
		return
	}

	n.IsRead = true
	if err := nc.repo.Update(n); err != nil {
		responses.InternalServerError(c, "Failed to update notification")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Notification marked as read", n)
}

// MarkAllAsRead godoc
// @Summary Mark all the caller's notifications as read
// @Tags Notifications
// @Produce json
// @Success 200 {object} responses.SuccessResponse
// @Security ApiKeyAuth
// @Router /notifications/read-all [put]
func (nc *NotificationController) MarkAllAsRead(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	if err := nc.repo.MarkAllRead(userID); err != nil {
		responses.InternalServerError(c, "Failed to update notifications")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "All notifications marked as read", nil)
}
