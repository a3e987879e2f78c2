package services

import (
	"fmt"

	"github.com/giftwise-dev/giftwise-api/internal/models"
	"github.com/giftwise-dev/giftwise-api/internal/repository"
	"github.com/rs/zerolog/log"
)

// EventAccess captures the three role facts the thread rules are built from.
// RecipientMatch is a name-equality proxy, not a real identity link: a user
// counts as a recipient when some recipient on the event shares their stored
// first and last name.
type EventAccess struct {
	Creator        bool
	Attendee       bool
	RecipientMatch bool
}

// threadRules maps each channel to its admission predicate. Contributors-only
// deliberately excludes recipients so gift planning stays hidden from them;
// by construction it admits a subset of who the public rule admits.
var threadRules = map[models.ThreadType]func(EventAccess) bool{
	models.ThreadPublic: func(a EventAccess) bool {
		return a.Creator || a.Attendee || a.RecipientMatch
	},
	models.ThreadContributorsOnly: func(a EventAccess) bool {
		return a.Creator || a.Attendee
	},
}

// Allowed reports whether this access grants the channel. Unknown thread
// types are an error, never a default.
func (a EventAccess) Allowed(threadType models.ThreadType) (bool, error) {
	rule, ok := threadRules[threadType]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrInvalidThreadType, threadType)
	}
	return rule(a), nil
}

// AccessService evaluates a user's roles on an event.
type AccessService struct {
	events repository.EventRepository
}

// NewAccessService creates a new AccessService.
func NewAccessService(events repository.EventRepository) *AccessService {
	return &AccessService{events: events}
}

// Evaluate computes the user's role membership on the event.
func (s *AccessService) Evaluate(user *models.User, event *models.Event) (EventAccess, error) {
	access := EventAccess{Creator: event.CreatorID == user.ID}

	attendee, err := s.events.IsAttendee(event.ID, user.ID)
	if err != nil {
		return EventAccess{}, fmt.Errorf("failed to check attendee membership: %w", err)
	}
	access.Attendee = attendee

	match, err := s.events.HasRecipientNamed(event.ID, user.FirstName, user.LastName)
	if err != nil {
		return EventAccess{}, fmt.Errorf("failed to check recipient match: %w", err)
	}
	access.RecipientMatch = match

	return access, nil
}

// AuthorizeThread evaluates the user against the event and the requested
// channel. Returns ErrInvalidThreadType for unknown channels and
// ErrThreadAccessDenied when the roles don't grant access; denials are
// audit-logged with actor and resource ids.
func (s *AccessService) AuthorizeThread(user *models.User, event *models.Event, threadType models.ThreadType) (EventAccess, error) {
	if !models.ValidThreadType(threadType) {
		log.Warn().
			Uint64("user_id", user.ID).
			Uint64("event_id", event.ID).
			Str("thread_type", string(threadType)).
			Msg("invalid thread type")
		return EventAccess{}, fmt.Errorf("%w: %q", ErrInvalidThreadType, threadType)
	}

	access, err := s.Evaluate(user, event)
	if err != nil {
		return EventAccess{}, err
	}

	allowed, err := access.Allowed(threadType)
	if err != nil {
		return EventAccess{}, err
	}
	if !allowed {
		log.Warn().
			Uint64("user_id", user.ID).
			Uint64("event_id", event.ID).
			Str("thread_type", string(threadType)).
			Msg("unauthorized discussion access")
		return access, ErrThreadAccessDenied
	}

	return access, nil
}

// CanViewEventData reports whether the user may read recipient-scoped data on
// the event. This is the public-thread rule: creator, attendee, or a
// name-matched recipient.
func (s *AccessService) CanViewEventData(user *models.User, event *models.Event) (bool, error) {
	access, err := s.Evaluate(user, event)
	if err != nil {
		return false, err
	}
	return access.Allowed(models.ThreadPublic)
}
