package services

import (
	"fmt"
	"unicode/utf8"

	"github.com/giftwise-dev/giftwise-api/internal/constants"
	"github.com/giftwise-dev/giftwise-api/internal/dto"
	"github.com/giftwise-dev/giftwise-api/internal/models"
	"github.com/giftwise-dev/giftwise-api/internal/repository"
)

// DiscussionService owns the two fixed per-event discussion channels and the
// append-only message log behind them.
type DiscussionService struct {
	discussions repository.DiscussionRepository
}

// NewDiscussionService creates a new DiscussionService.
func NewDiscussionService(discussions repository.DiscussionRepository) *DiscussionService {
	return &DiscussionService{discussions: discussions}
}

// GetOrCreateThread returns the (event, threadType) discussion, creating it
// on first access. Calling it twice always yields the same row.
func (s *DiscussionService) GetOrCreateThread(eventID uint64, threadType models.ThreadType) (*models.Discussion, error) {
	if !models.ValidThreadType(threadType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidThreadType, threadType)
	}
	return s.discussions.GetOrCreate(eventID, threadType)
}

// PostMessage validates and appends a message. On validation failure no row
// is written and a per-field error is returned.
func (s *DiscussionService) PostMessage(discussion *models.Discussion, user *models.User, content string) (*models.DiscussionMessage, error) {
	if content == "" {
		return nil, ErrContentRequired
	}
	if utf8.RuneCountInString(content) > constants.MaxMessageLength {
		return nil, ErrContentTooLong
	}

	msg := &models.DiscussionMessage{
		DiscussionID: discussion.ID,
		UserID:       user.ID,
		Content:      content,
	}
	if err := s.discussions.CreateMessage(msg); err != nil {
		return nil, fmt.Errorf("failed to append message: %w", err)
	}
	msg.User = *user
	return msg, nil
}

// InitialMessages returns the newest batch for server-side rendering of the
// thread, in chronological order.
func (s *DiscussionService) InitialMessages(discussionID uint64) ([]models.DiscussionMessage, error) {
	return s.discussions.ListLast(discussionID, constants.InitialMessageBatch)
}

// Feed implements the incremental poll: with no cursor the result is empty
// (the client already rendered the initial batch); with a cursor it returns
// every message strictly newer than it, capped for safety, oldest first.
// Re-requesting the same cursor never reorders previously seen messages.
func (s *DiscussionService) Feed(discussionID uint64, afterMessageID *uint64, viewerID uint64) ([]dto.MessageView, error) {
	if afterMessageID == nil {
		return []dto.MessageView{}, nil
	}

	messages, err := s.discussions.ListAfter(discussionID, *afterMessageID, constants.FeedPollCap)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}
	return dto.ToMessageViews(messages, viewerID), nil
}
