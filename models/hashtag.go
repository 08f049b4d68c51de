package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const MaxTagLength = 50

// Hashtag names are stored lower-cased and are unique across the system.
type Hashtag struct {
	ID      uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	TagName string    `json:"tagName" db:"tag_name" gorm:"type:varchar(50);not null;uniqueIndex:idx_hashtags_tag_name"`
}

func (h *Hashtag) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// CheepHashtag links a cheep to one of its hashtags.
type CheepHashtag struct {
	CheepID   uuid.UUID `json:"cheepId" db:"cheep_id" gorm:"type:uuid;primaryKey"`
	HashtagID uuid.UUID `json:"hashtagId" db:"hashtag_id" gorm:"type:uuid;primaryKey;index:idx_cheep_hashtags_hashtag_id"`

	Cheep   Cheep   `json:"-" gorm:"foreignKey:CheepID;references:ID;constraint:OnDelete:CASCADE"`
	Hashtag Hashtag `json:"-" gorm:"foreignKey:HashtagID;references:ID;constraint:OnDelete:CASCADE"`
}

type HashtagDTO struct {
	TagName string `json:"tagName"`
}
