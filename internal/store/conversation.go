package store

import (
	"sync"
	"time"

	"github.com/toomanyjoshes/terminalchat/internal/models"
	apperrors "github.com/toomanyjoshes/terminalchat/pkg/errors"
	"gorm.io/gorm"
)

// ConversationStore owns the canonical per-pair message logs. All mutations
// on one conversation key are serialized through a keyed mutex; operations
// on different keys proceed independently. Reads go straight to the
// database and observe only committed rows.
type ConversationStore struct {
	db     *gorm.DB
	blocks *BlockRegistry

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewConversationStore(db *gorm.DB, blocks *BlockRegistry) *ConversationStore {
	return &ConversationStore{
		db:     db,
		blocks: blocks,
		locks:  map[string]*sync.Mutex{},
	}
}

// keyLock returns the mutex for a conversation key, creating it on first
// use. One mutex per active conversation; entries are never evicted while
// the process lives.
func (s *ConversationStore) keyLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// Append adds a message to the log for its sender/recipient pair. The
// canonical key is derived here, so callers cannot split one conversation
// across two records. The block check runs inside the key lock: the store
// refuses blocked pairs even if the service layer forgot to check.
func (s *ConversationStore) Append(msg *models.Message) error {
	key := models.ConversationKeyFor(msg.Sender, msg.Recipient)
	msg.ConversationKey = key
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	l := s.keyLock(key)
	l.Lock()
	defer l.Unlock()

	blocked, err := s.blocks.IsBlockedPair(msg.Sender, msg.Recipient)
	if err != nil {
		return err
	}
	if blocked {
		return apperrors.Blocked("You cannot exchange messages with this user")
	}

	if err := s.db.Create(msg).Error; err != nil {
		return apperrors.Storage("failed to store message")
	}
	return nil
}

// List returns the full log for key in append order. A missing log yields
// an empty slice, not an error.
func (s *ConversationStore) List(key string) ([]models.Message, error) {
	messages := []models.Message{}
	err := s.db.Where("conversation_key = ?", key).
		Order("seq asc").
		Find(&messages).Error
	if err != nil {
		return nil, apperrors.Storage("failed to load conversation")
	}
	return messages, nil
}

// MarkRead flips the read flag on every committed message in the log whose
// recipient is reader. A single UPDATE keeps it atomic with respect to
// concurrent appends: a message inserted after the statement runs stays
// unread. Idempotent; a read flag never reverts.
func (s *ConversationStore) MarkRead(key, reader string) (int64, error) {
	l := s.keyLock(key)
	l.Lock()
	defer l.Unlock()

	result := s.db.Model(&models.Message{}).
		Where("conversation_key = ? AND recipient = ? AND is_read = ?", key, reader, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, apperrors.Storage("failed to mark messages read")
	}
	return result.RowsAffected, nil
}

// Delete wipes the log for key. Idempotent.
func (s *ConversationStore) Delete(key string) error {
	l := s.keyLock(key)
	l.Lock()
	defer l.Unlock()

	if err := s.db.Delete(&models.Message{}, "conversation_key = ?", key).Error; err != nil {
		return apperrors.Storage("failed to delete conversation")
	}
	return nil
}

// DeleteAllInvolving wipes every log whose canonical key contains user.
// Used on account deletion. Each log is deleted under its own key lock.
func (s *ConversationStore) DeleteAllInvolving(user string) error {
	var keys []string
	err := s.db.Model(&models.Message{}).
		Distinct("conversation_key").
		Where("sender = ? OR recipient = ?", user, user).
		Pluck("conversation_key", &keys).Error
	if err != nil {
		return apperrors.Storage("failed to enumerate conversations")
	}

	for _, key := range keys {
		if err := s.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
