package dto

import (
	"github.com/giftwise-dev/giftwise-api/internal/models"
)

// MessageView is what the polling feed and the show endpoint return per
// message. It carries only what rendering needs: the author's display name
// and an is_own flag rather than raw user ids.
type MessageView struct {
	ID        uint64 `json:"id"`
	Content   string `json:"content"`
	UserName  string `json:"user_name"`
	IsOwn     bool   `json:"is_own"`
	Timestamp int64  `json:"timestamp"`
}

// ToMessageView converts a message to its feed representation for a viewer.
func ToMessageView(msg models.DiscussionMessage, viewerID uint64) MessageView {
	return MessageView{
		ID:        msg.ID,
		Content:   msg.Content,
		UserName:  msg.User.FullName(),
		IsOwn:     msg.UserID == viewerID,
		Timestamp: msg.CreatedAt.Unix(),
	}
}

// ToMessageViews converts a slice of messages preserving order.
func ToMessageViews(msgs []models.DiscussionMessage, viewerID uint64) []MessageView {
	views := make([]MessageView, len(msgs))
	for i, m := range msgs {
		views[i] = ToMessageView(m, viewerID)
	}
	return views
}
