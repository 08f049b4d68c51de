package models

import (
	"fmt"
	"html/template"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// PageSize is the fixed number of cheeps on every timeline page.
	PageSize = 32
	// MaxCheepLength counts characters, not bytes.
	MaxCheepLength = 160
)

// Cheep is a short message owned by one author. Cheeps are never edited.
type Cheep struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Text      string    `json:"text" db:"text" gorm:"type:varchar(160);not null"`
	TimeStamp time.Time `json:"timeStamp" db:"time_stamp" gorm:"not null;index:idx_cheeps_time_stamp"`
	AuthorID  uuid.UUID `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index:idx_cheeps_author_id"`
}

func (c *Cheep) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CheepDTO is the read shape of a cheep on every timeline.
type CheepDTO struct {
	ID        uuid.UUID     `json:"id"`
	Author    string        `json:"author"`
	Text      string        `json:"text"`
	TimeStamp string        `json:"timeStamp"`
	HTML      template.HTML `json:"html,omitempty"`
}

// FormatTimestamp renders t in UTC as MM/dd/yy H:mm:ss, hour without a leading zero.
func FormatTimestamp(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s %d:%s", t.Format("01/02/06"), t.Hour(), t.Format("04:05"))
}
