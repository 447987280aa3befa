package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attachment records metadata for an uploaded blob. The bytes themselves
// are owned by the blob store and referenced only by ID.
type Attachment struct {
	ID               string    `gorm:"primaryKey;type:text" json:"id"`
	ConversationKey  string    `gorm:"index;type:text;not null" json:"-"`
	Sender           string    `gorm:"index;type:text;not null" json:"sender"`
	OriginalFilename string    `gorm:"type:text;not null" json:"original_filename"`
	ContentType      string    `gorm:"type:text" json:"content_type"`
	Size             int64     `json:"size"`
	CreatedAt        time.Time `json:"-"`
}

func (a *Attachment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}
