package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConversationKeyFor returns the canonical key for the unordered pair
// (a, b): the two handles sorted lexicographically, joined by ":".
// Both directions of a conversation map to the same key, so one pair can
// never be split across two records.
func ConversationKeyFor(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return pair[0] + ":" + pair[1]
}

// Message is one entry in a conversation log. Immutable after insert except
// for the read flag, which flips false->true exactly once when the
// recipient fetches the conversation.
type Message struct {
	// Seq is the insertion sequence and the authoritative chronological
	// order within a conversation. Timestamps are display metadata only
	// and are never compared for ordering.
	Seq int64 `gorm:"primaryKey;autoIncrement" json:"-"`

	ID              string `gorm:"uniqueIndex;type:text;not null" json:"id"`
	ConversationKey string `gorm:"index;type:text;not null" json:"-"`

	Sender    string `gorm:"index;type:text;not null" json:"sender"`
	Recipient string `gorm:"index;type:text;not null" json:"recipient"`
	Content   string `gorm:"type:text;not null" json:"content"`

	// Attachment reference; bytes live in the blob store.
	FileID *string `gorm:"index;type:text" json:"file_id,omitempty"`
	IsFile bool    `gorm:"default:false" json:"is_file"`

	Read bool `gorm:"column:is_read;default:false" json:"read"`

	CreatedAt time.Time `json:"timestamp"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

// ChatSummary is the derived per-conversation view for list displays.
// Never persisted; recomputed from the log on demand so it cannot go stale.
type ChatSummary struct {
	Username    string    `json:"username"` // peer handle
	LastMessage string    `json:"last_message"`
	Timestamp   time.Time `json:"timestamp"`
	IsFile      bool      `json:"is_file"`
	Unread      int64     `json:"unread"`
}
