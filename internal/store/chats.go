package store

import (
	"errors"
	"sort"
	"strings"

	"github.com/toomanyjoshes/terminalchat/internal/models"
	apperrors "github.com/toomanyjoshes/terminalchat/pkg/errors"
	"gorm.io/gorm"
)

// ChatAggregator derives per-user chat summaries from the conversation
// logs. Read-only and stateless: everything is recomputed from the store
// on each call, so a summary can never go stale independently of its log.
type ChatAggregator struct {
	db *gorm.DB
}

func NewChatAggregator(db *gorm.DB) *ChatAggregator {
	return &ChatAggregator{db: db}
}

// peerFromKey extracts the other handle from a canonical "a:b" key.
func peerFromKey(key, user string) string {
	left, right, _ := strings.Cut(key, ":")
	if left == user {
		return right
	}
	return left
}

// SummariesFor returns one summary per conversation involving user: peer,
// last message content / attachment flag / timestamp, and the count of
// messages addressed to user that are still unread. Ordered newest-first
// by last message; ties broken by peer handle ascending so the result is
// deterministic. Within a log "last" means highest insertion sequence,
// never a timestamp-string comparison.
func (a *ChatAggregator) SummariesFor(user string) ([]models.ChatSummary, error) {
	var keys []string
	err := a.db.Model(&models.Message{}).
		Distinct("conversation_key").
		Where("sender = ? OR recipient = ?", user, user).
		Pluck("conversation_key", &keys).Error
	if err != nil {
		return nil, apperrors.Storage("failed to enumerate conversations")
	}

	summaries := make([]models.ChatSummary, 0, len(keys))
	for _, key := range keys {
		var last models.Message
		err := a.db.Where("conversation_key = ?", key).
			Order("seq desc").
			First(&last).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue // emptied between the two queries
		}
		if err != nil {
			return nil, apperrors.Storage("failed to load conversation")
		}

		var unread int64
		err = a.db.Model(&models.Message{}).
			Where("conversation_key = ? AND recipient = ? AND is_read = ?", key, user, false).
			Count(&unread).Error
		if err != nil {
			return nil, apperrors.Storage("failed to count unread messages")
		}

		summaries = append(summaries, models.ChatSummary{
			Username:    peerFromKey(key, user),
			LastMessage: last.Content,
			Timestamp:   last.CreatedAt,
			IsFile:      last.IsFile,
			Unread:      unread,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].Timestamp.Equal(summaries[j].Timestamp) {
			return summaries[i].Timestamp.After(summaries[j].Timestamp)
		}
		return summaries[i].Username < summaries[j].Username
	})

	return summaries, nil
}
