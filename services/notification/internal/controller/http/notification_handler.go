package http

import (
	"errors"
	"net/http"
	"time"

	"learnhub/pkg/logger"
	"learnhub/services/notification/internal/entity"
	"learnhub/services/notification/internal/rules"
	"learnhub/services/notification/internal/usecase"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationUseCase usecase.NotificationUseCase
	logger              *logger.Logger
}

func NewNotificationHandler(notificationUseCase usecase.NotificationUseCase, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
		logger:              logger,
	}
}

type CreateNotificationRequest struct {
	Recipient         string `json:"recipient"`
	Sender            string `json:"sender"`
	Title             string `json:"title" binding:"required"`
	Message           string `json:"message" binding:"required"`
	Type              string `json:"type"`
	RelatedEntity     string `json:"relatedEntity"`
	RelatedEntityType string `json:"relatedEntityType"`
}

type UpdateNotificationRequest struct {
	Title             *string `json:"title"`
	Message           *string `json:"message"`
	Type              *string `json:"type"`
	RelatedEntity     *string `json:"relatedEntity"`
	RelatedEntityType *string `json:"relatedEntityType"`
	// Accepted on the wire but always discarded: ownership is immutable.
	Recipient *string `json:"recipient"`
	Sender    *string `json:"sender"`
}

type SenderInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type NotificationResponse struct {
	ID                string      `json:"id"`
	Sender            string      `json:"sender,omitempty"`
	SenderInfo        *SenderInfo `json:"senderInfo,omitempty"`
	Recipient         string      `json:"recipient"`
	Title             string      `json:"title"`
	Message           string      `json:"message"`
	Type              string      `json:"type"`
	RelatedEntity     string      `json:"relatedEntity,omitempty"`
	RelatedEntityType string      `json:"relatedEntityType,omitempty"`
	IsRead            bool        `json:"isRead"`
	ReadAt            *time.Time  `json:"readAt,omitempty"`
	CreatedAt         time.Time   `json:"createdAt"`
}

func toResponse(n entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:                n.ID,
		Sender:            n.Sender,
		Recipient:         n.Recipient,
		Title:             n.Title,
		Message:           n.Message,
		Type:              string(n.Type),
		RelatedEntity:     n.RelatedEntity,
		RelatedEntityType: n.RelatedEntityType,
		IsRead:            n.IsRead,
		ReadAt:            n.ReadAt,
		CreatedAt:         n.CreatedAt,
	}
}

func toViewResponse(v usecase.NotificationView) NotificationResponse {
	resp := toResponse(v.Notification)
	if v.Sender != nil {
		resp.SenderInfo = &SenderInfo{
			ID:   v.Sender.ID,
			Name: v.Sender.Name,
			Role: string(v.Sender.Role),
		}
	}
	return resp
}

func actorFromContext(c *gin.Context) (entity.Actor, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return entity.Actor{}, false
	}
	return entity.Actor{ID: userID, Role: entity.Role(c.GetString("user_role"))}, true
}

func (h *NotificationHandler) respondError(c *gin.Context, err error) {
	switch {
	case entity.IsForbidden(err):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, entity.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	case entity.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	default:
		h.logger.Error("Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
	}
}

// GetNotifications godoc
// @Summary      List notifications
// @Description  Returns all notifications addressed to the caller, newest first
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	views, err := h.notificationUseCase.List(c.Request.Context(), actor)
	if err != nil {
		h.respondError(c, err)
		return
	}

	responses := make([]NotificationResponse, len(views))
	for i, v := range views {
		responses[i] = toViewResponse(v)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(responses),
		"data":    responses,
	})
}

// CreateNotification godoc
// @Summary      Create a notification
// @Description  Creates a notification for the caller, or for another user when the caller is a teacher or admin
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        notification body CreateNotificationRequest true "Notification payload"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /notifications [post]
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	created, err := h.notificationUseCase.Create(c.Request.Context(), actor, rules.CreateInput{
		Recipient:         req.Recipient,
		Sender:            req.Sender,
		Title:             req.Title,
		Message:           req.Message,
		Type:              entity.NotificationType(req.Type),
		RelatedEntity:     req.RelatedEntity,
		RelatedEntityType: req.RelatedEntityType,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    toResponse(created),
	})
}

// UpdateNotification godoc
// @Summary      Update a notification
// @Description  Updates content fields; only the sender or a privileged actor may. Recipient and sender cannot be changed.
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Notification ID"
// @Param        notification body UpdateNotificationRequest true "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /notifications/{id} [put]
func (h *NotificationHandler) UpdateNotification(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req UpdateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var notificationType *entity.NotificationType
	if req.Type != nil {
		t := entity.NotificationType(*req.Type)
		notificationType = &t
	}

	updated, err := h.notificationUseCase.Update(c.Request.Context(), actor, c.Param("id"), rules.UpdateInput{
		Title:             req.Title,
		Message:           req.Message,
		Type:              notificationType,
		RelatedEntity:     req.RelatedEntity,
		RelatedEntityType: req.RelatedEntityType,
		Recipient:         req.Recipient,
		Sender:            req.Sender,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    toResponse(updated),
	})
}

// MarkNotificationAsRead godoc
// @Summary      Mark a notification as read
// @Description  Sets the read flag and timestamp; only the recipient may, whatever their role
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Notification ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /notifications/{id}/read [put]
func (h *NotificationHandler) MarkNotificationAsRead(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	read, err := h.notificationUseCase.MarkAsRead(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    toResponse(read),
	})
}

// MarkAllNotificationsAsRead godoc
// @Summary      Mark all notifications as read
// @Description  Marks every unread notification addressed to the caller as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /notifications/read-all [put]
func (h *NotificationHandler) MarkAllNotificationsAsRead(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	count, err := h.notificationUseCase.MarkAllAsRead(c.Request.Context(), actor)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   count,
		"message": "All notifications marked as read",
	})
}

// DeleteNotification godoc
// @Summary      Delete a notification
// @Description  Deletes one notification; allowed for the recipient, the sender or a privileged actor
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Notification ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /notifications/{id} [delete]
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	if err := h.notificationUseCase.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{},
		"message": "Notification deleted",
	})
}

// ClearNotifications godoc
// @Summary      Clear all notifications
// @Description  Deletes every notification addressed to the caller
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /notifications [delete]
func (h *NotificationHandler) ClearNotifications(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	count, err := h.notificationUseCase.ClearAll(c.Request.Context(), actor)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   count,
		"message": "All notifications cleared",
	})
}
