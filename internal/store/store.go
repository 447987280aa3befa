package store

import (
	"time"

	"gorm.io/gorm"
)

// Stores bundles the persistence components behind the message service.
// Session and block mutations never take conversation locks, so no
// operation ever holds locks on two resources at once.
type Stores struct {
	Sessions      *SessionStore
	Blocks        *BlockRegistry
	Conversations *ConversationStore
	Chats         *ChatAggregator
	Attachments   *AttachmentRegistry
}

func New(db *gorm.DB, sessionTTL time.Duration) *Stores {
	blocks := NewBlockRegistry(db)
	return &Stores{
		Sessions:      NewSessionStore(db, sessionTTL),
		Blocks:        blocks,
		Conversations: NewConversationStore(db, blocks),
		Chats:         NewChatAggregator(db),
		Attachments:   NewAttachmentRegistry(db),
	}
}
