package store

import (
	"errors"

	"github.com/toomanyjoshes/terminalchat/internal/models"
	apperrors "github.com/toomanyjoshes/terminalchat/pkg/errors"
	"gorm.io/gorm"
)

// AttachmentRegistry records metadata for uploaded blobs. It never touches
// the bytes; those belong to the blob store and are referenced by ID only.
type AttachmentRegistry struct {
	db *gorm.DB
}

func NewAttachmentRegistry(db *gorm.DB) *AttachmentRegistry {
	return &AttachmentRegistry{db: db}
}

// Register stores a new attachment reference and returns it with a fresh
// collision-resistant ID.
func (r *AttachmentRegistry) Register(conversationKey, sender, originalFilename, contentType string, size int64) (*models.Attachment, error) {
	att := models.Attachment{
		ConversationKey:  conversationKey,
		Sender:           sender,
		OriginalFilename: originalFilename,
		ContentType:      contentType,
		Size:             size,
	}
	if err := r.db.Create(&att).Error; err != nil {
		return nil, apperrors.Storage("failed to store attachment reference")
	}
	return &att, nil
}

// Resolve looks up an attachment reference by ID.
func (r *AttachmentRegistry) Resolve(id string) (*models.Attachment, error) {
	var att models.Attachment
	err := r.db.First(&att, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("File not found")
	}
	if err != nil {
		return nil, apperrors.Storage("failed to look up attachment")
	}
	return &att, nil
}

// Remove drops a single reference. Idempotent; used to roll back a failed
// upload. The blob, if any, is the caller's to delete.
func (r *AttachmentRegistry) Remove(id string) error {
	if err := r.db.Delete(&models.Attachment{}, "id = ?", id).Error; err != nil {
		return apperrors.Storage("failed to remove attachment reference")
	}
	return nil
}

// PurgeFor drops every reference whose sender is user, invoking onPurge
// with each dropped ID so the blob layer can delete the underlying bytes.
// The registry itself never deletes blobs.
func (r *AttachmentRegistry) PurgeFor(user string, onPurge func(id string)) error {
	var refs []models.Attachment
	if err := r.db.Where("sender = ?", user).Find(&refs).Error; err != nil {
		return apperrors.Storage("failed to enumerate attachments")
	}

	if err := r.db.Delete(&models.Attachment{}, "sender = ?", user).Error; err != nil {
		return apperrors.Storage("failed to purge attachments")
	}

	if onPurge != nil {
		for _, ref := range refs {
			onPurge(ref.ID)
		}
	}
	return nil
}
