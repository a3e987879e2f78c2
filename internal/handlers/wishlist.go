package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/giftwise-dev/giftwise-api/internal/constants"
	"github.com/giftwise-dev/giftwise-api/internal/database"
	apierrors "github.com/giftwise-dev/giftwise-api/internal/errors"
	"github.com/giftwise-dev/giftwise-api/internal/models"
)

// WishListHandler coordinates a user's own wish list.
type WishListHandler struct{}

// NewWishListHandler creates a new WishListHandler.
func NewWishListHandler() *WishListHandler {
	return &WishListHandler{}
}

func validWishListURL(raw string) bool {
	if raw == "" {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ListItems returns the user's wish list.
func (h *WishListHandler) ListItems(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var items []models.WishListItem
	if err := database.GetDB().
		Where("user_id = ?", user.ID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch wish list")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateItem adds a wish list item. Names are unique per user and the list
// is capped.
func (h *WishListHandler) CreateItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	type CreateItemRequest struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description"`
		URL         string   `json:"url"`
		Price       *float64 `json:"price"`
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if !validWishListURL(req.URL) {
		apierrors.UnprocessableEntity(c, "url must be a valid http or https URL")
		return
	}

	db := database.GetDB()

	var count int64
	if err := db.Model(&models.WishListItem{}).
		Where("user_id = ?", user.ID).
		Count(&count).Error; err != nil {
		apierrors.InternalError(c, "Failed to check wish list")
		return
	}
	if count >= constants.MaxWishListItems {
		apierrors.UnprocessableEntity(c, "Wish list is full")
		return
	}

	var existing models.WishListItem
	if err := db.Where("user_id = ? AND name = ?", user.ID, req.Name).
		First(&existing).Error; err == nil {
		apierrors.Conflict(c, "An item with that name already exists")
		return
	}

	item := models.WishListItem{
		UserID:      user.ID,
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
		Price:       req.Price,
	}

	if err := db.Create(&item).Error; err != nil {
		apierrors.InternalError(c, "Failed to create wish list item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateItem updates one of the user's wish list items.
func (h *WishListHandler) UpdateItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid item ID")
		return
	}

	var item models.WishListItem
	if err := database.GetDB().
		Where("id = ? AND user_id = ?", itemID, user.ID).
		First(&item).Error; err != nil {
		apierrors.NotFound(c, "Wish list item not found")
		return
	}

	type UpdateItemRequest struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		URL         *string  `json:"url"`
		Price       *float64 `json:"price"`
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			apierrors.UnprocessableEntity(c, "name must not be empty")
			return
		}
		var dup models.WishListItem
		if err := database.GetDB().
			Where("user_id = ? AND name = ? AND id <> ?", user.ID, *req.Name, item.ID).
			First(&dup).Error; err == nil {
			apierrors.Conflict(c, "An item with that name already exists")
			return
		}
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.URL != nil {
		if !validWishListURL(*req.URL) {
			apierrors.UnprocessableEntity(c, "url must be a valid http or https URL")
			return
		}
		item.URL = *req.URL
	}
	if req.Price != nil {
		item.Price = req.Price
	}

	if err := database.GetDB().Save(&item).Error; err != nil {
		apierrors.InternalError(c, "Failed to update wish list item")
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteItem removes one of the user's wish list items.
func (h *WishListHandler) DeleteItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid item ID")
		return
	}

	result := database.GetDB().
		Where("id = ? AND user_id = ?", itemID, user.ID).
		Delete(&models.WishListItem{})
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to delete wish list item")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Wish list item not found")
		return
	}

	c.Status(http.StatusNoContent)
}
