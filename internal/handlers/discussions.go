package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/giftwise-dev/giftwise-api/internal/dto"
	apierrors "github.com/giftwise-dev/giftwise-api/internal/errors"
	"github.com/giftwise-dev/giftwise-api/internal/middleware"
	"github.com/giftwise-dev/giftwise-api/internal/models"
	"github.com/giftwise-dev/giftwise-api/internal/services"
)

// DiscussionHandler coordinates the two per-event discussion channels and
// their polling feed.
type DiscussionHandler struct {
	accessService     *services.AccessService
	discussionService *services.DiscussionService
}

// NewDiscussionHandler creates a new DiscussionHandler.
func NewDiscussionHandler(accessService *services.AccessService, discussionService *services.DiscussionService) *DiscussionHandler {
	return &DiscussionHandler{
		accessService:     accessService,
		discussionService: discussionService,
	}
}

// authorize resolves the event, user, and requested channel, and runs the
// channel's admission rule. The thread type comes from the query string and
// defaults to the public channel.
func (h *DiscussionHandler) authorize(c *gin.Context) (*models.User, models.Event, models.ThreadType, bool) {
	event, exists := middleware.GetEvent(c)
	if !exists {
		apierrors.InternalError(c, "Event not found in context")
		return nil, models.Event{}, "", false
	}

	user, ok := currentUser(c)
	if !ok {
		return nil, models.Event{}, "", false
	}

	threadType := models.ThreadType(c.DefaultQuery("thread_type", string(models.ThreadPublic)))

	if _, err := h.accessService.AuthorizeThread(user, &event, threadType); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidThreadType):
			apierrors.BadRequest(c, "Invalid thread type")
		case errors.Is(err, services.ErrThreadAccessDenied):
			apierrors.Unauthorized(c, "unauthorized")
		default:
			apierrors.InternalError(c, "Failed to check discussion access")
		}
		return nil, models.Event{}, "", false
	}

	return user, event, threadType, true
}

// ShowThread returns the channel and its most recent messages.
func (h *DiscussionHandler) ShowThread(c *gin.Context) {
	user, event, threadType, ok := h.authorize(c)
	if !ok {
		return
	}

	discussion, err := h.discussionService.GetOrCreateThread(event.ID, threadType)
	if err != nil {
		apierrors.InternalError(c, "Failed to load discussion")
		return
	}

	messages, err := h.discussionService.InitialMessages(discussion.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to load messages")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"discussion": discussion,
		"messages":   dto.ToMessageViews(messages, user.ID),
	})
}

// Feed returns messages newer than the client's cursor. Without a cursor it
// returns an empty list; the client renders from ShowThread first.
func (h *DiscussionHandler) Feed(c *gin.Context) {
	user, event, threadType, ok := h.authorize(c)
	if !ok {
		return
	}

	discussion, err := h.discussionService.GetOrCreateThread(event.ID, threadType)
	if err != nil {
		apierrors.InternalError(c, "Failed to load discussion")
		return
	}

	var cursor *uint64
	if raw := c.Query("after_message_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid after_message_id")
			return
		}
		cursor = &parsed
	}

	messages, err := h.discussionService.Feed(discussion.ID, cursor, user.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to load feed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// PostMessage appends a message to the channel.
func (h *DiscussionHandler) PostMessage(c *gin.Context) {
	user, event, threadType, ok := h.authorize(c)
	if !ok {
		return
	}

	type PostMessageRequest struct {
		Content string `json:"content"`
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	discussion, err := h.discussionService.GetOrCreateThread(event.ID, threadType)
	if err != nil {
		apierrors.InternalError(c, "Failed to load discussion")
		return
	}

	msg, err := h.discussionService.PostMessage(discussion, user, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrContentRequired):
			apierrors.UnprocessableEntityWithDetails(c, "Validation failed", gin.H{
				"content": "can't be blank",
			})
		case errors.Is(err, services.ErrContentTooLong):
			apierrors.UnprocessableEntityWithDetails(c, "Validation failed", gin.H{
				"content": "is too long (maximum is 5000 characters)",
			})
		default:
			apierrors.InternalError(c, "Failed to post message")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message_id": msg.ID,
	})
}
