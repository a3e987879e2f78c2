package models

import "time"

// ThreadType selects one of the two fixed discussion channels per event.
type ThreadType string

const (
	ThreadPublic           ThreadType = "public"
	ThreadContributorsOnly ThreadType = "contributors_only"
)

var threadTypes = map[ThreadType]bool{
	ThreadPublic:           true,
	ThreadContributorsOnly: true,
}

// ValidThreadType reports whether t is a known channel. Unknown values are
// rejected by callers, never defaulted.
func ValidThreadType(t ThreadType) bool {
	return threadTypes[t]
}

type Discussion struct {
	ID         uint64     `gorm:"primarykey" json:"id"`
	EventID    uint64     `gorm:"not null;uniqueIndex:idx_discussions_event_thread" json:"event_id"`
	ThreadType ThreadType `gorm:"type:varchar(20);not null;default:'public';uniqueIndex:idx_discussions_event_thread" json:"thread_type"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Relations
	Event    Event               `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Messages []DiscussionMessage `gorm:"foreignKey:DiscussionID" json:"messages,omitempty"`
}
