package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/giftwise-dev/giftwise-api/internal/database"
	apierrors "github.com/giftwise-dev/giftwise-api/internal/errors"
	"github.com/giftwise-dev/giftwise-api/internal/models"
	"gorm.io/gorm"
)

// ContactHandler coordinates a user's contact book, used to find people to
// invite as attendees.
type ContactHandler struct{}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler() *ContactHandler {
	return &ContactHandler{}
}

// ListContacts returns the user's contacts with the linked users preloaded.
func (h *ContactHandler) ListContacts(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var contacts []models.Contact
	if err := database.GetDB().
		Preload("ContactUser").
		Where("user_id = ?", user.ID).
		Order("created_at asc").
		Find(&contacts).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch contacts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

// CreateContact links another user into the contact book by email.
func (h *ContactHandler) CreateContact(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	type CreateContactRequest struct {
		Email string `json:"email" binding:"required,email"`
		Note  string `json:"note"`
	}

	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	db := database.GetDB()

	var target models.User
	if err := db.Where("email = ?", req.Email).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "No user with that email")
			return
		}
		apierrors.InternalError(c, "Failed to look up user")
		return
	}

	if target.ID == user.ID {
		apierrors.UnprocessableEntity(c, "Cannot add yourself as a contact")
		return
	}

	var existing models.Contact
	if err := db.Where("user_id = ? AND contact_user_id = ?", user.ID, target.ID).
		First(&existing).Error; err == nil {
		apierrors.Conflict(c, "Contact already exists")
		return
	}

	contact := models.Contact{
		UserID:        user.ID,
		ContactUserID: target.ID,
		Note:          req.Note,
	}
	if err := db.Create(&contact).Error; err != nil {
		apierrors.InternalError(c, "Failed to create contact")
		return
	}
	contact.ContactUser = target

	c.JSON(http.StatusCreated, contact)
}

// DeleteContact removes one of the user's contacts.
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	contactID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid contact ID")
		return
	}

	result := database.GetDB().
		Where("id = ? AND user_id = ?", contactID, user.ID).
		Delete(&models.Contact{})
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to delete contact")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Contact not found")
		return
	}

	c.Status(http.StatusNoContent)
}
