package store

import (
	"errors"

	"github.com/toomanyjoshes/terminalchat/internal/models"
	apperrors "github.com/toomanyjoshes/terminalchat/pkg/errors"
	"gorm.io/gorm"
)

// BlockRegistry stores directed block edges. The service-level predicate
// is symmetric: a pair is blocked when either direction holds.
type BlockRegistry struct {
	db *gorm.DB
}

func NewBlockRegistry(db *gorm.DB) *BlockRegistry {
	return &BlockRegistry{db: db}
}

// Block adds blocker -> blocked. Idempotent; blocking an already-blocked
// user succeeds. Self-block is rejected.
func (r *BlockRegistry) Block(blocker, blocked string) error {
	if blocker == blocked {
		return apperrors.InvalidOperation("You cannot block yourself")
	}

	block := models.UserBlock{BlockerID: blocker, BlockedID: blocked}
	err := r.db.Create(&block).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	if err != nil {
		return apperrors.Storage("failed to store block")
	}
	return nil
}

// Unblock removes blocker -> blocked. Removing an absent relation reports
// NotFound; callers may treat that as non-fatal.
func (r *BlockRegistry) Unblock(blocker, blocked string) error {
	result := r.db.Delete(&models.UserBlock{}, "blocker_id = ? AND blocked_id = ?", blocker, blocked)
	if result.Error != nil {
		return apperrors.Storage("failed to remove block")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("User is not blocked")
	}
	return nil
}

// IsBlockedPair reports whether a blocks b or b blocks a.
func (r *BlockRegistry) IsBlockedPair(a, b string) (bool, error) {
	var count int64
	err := r.db.Model(&models.UserBlock{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
			a, b, b, a).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Storage("failed to check block state")
	}
	return count > 0, nil
}

// PurgeFor removes every block edge touching username, in either role.
func (r *BlockRegistry) PurgeFor(username string) error {
	err := r.db.Delete(&models.UserBlock{}, "blocker_id = ? OR blocked_id = ?", username, username).Error
	if err != nil {
		return apperrors.Storage("failed to purge blocks")
	}
	return nil
}
