package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Author is a registered user who can post cheeps and follow other authors.
type Author struct {
	ID       uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	UserName string    `json:"userName" db:"user_name" gorm:"type:varchar(256);not null;uniqueIndex:idx_authors_user_name"`
	Email    string    `json:"email" db:"email" gorm:"type:varchar(256);not null;uniqueIndex:idx_authors_email"`
	Cheeps   []Cheep   `json:"cheeps,omitempty" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
}

func (a *Author) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AuthorFollow is a directed edge: Follower follows Followed.
type AuthorFollow struct {
	FollowerID uuid.UUID `json:"followerId" db:"follower_id" gorm:"type:uuid;primaryKey;check:chk_author_follows_not_self,follower_id <> followed_id"`
	FollowedID uuid.UUID `json:"followedId" db:"followed_id" gorm:"type:uuid;primaryKey;index:idx_author_follows_followed_id"`

	Follower Author `json:"-" gorm:"foreignKey:FollowerID;references:ID;constraint:OnDelete:CASCADE"`
	Followed Author `json:"-" gorm:"foreignKey:FollowedID;references:ID;constraint:OnDelete:CASCADE"`
}

type AuthorDTO struct {
	UserName string `json:"userName"`
}
