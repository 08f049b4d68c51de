package database

import (
	"context"
	"strings"
	"time"

	"github.com/chirp-bdsa/chirp/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheepRow is one timeline entry with its author's display name resolved.
type CheepRow struct {
	ID        uuid.UUID
	Author    string
	Text      string
	TimeStamp time.Time
}

type CheepRepo struct {
	db *gorm.DB
}

func NewCheepRepo(db *gorm.DB) *CheepRepo {
	return &CheepRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *CheepRepo) GetDB() *gorm.DB {
	return r.db
}

// Add inserts a new cheep into the database
func (r *CheepRepo) Add(ctx context.Context, cheep *models.Cheep) error {
	return r.db.WithContext(ctx).Create(cheep).Error
}

// timeline is the shared newest-first page query every listing builds on.
func (r *CheepRepo) timeline(ctx context.Context, page int) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Cheep{}).
		Select("cheeps.id, authors.user_name AS author, cheeps.text, cheeps.time_stamp").
		Joins("JOIN authors ON authors.id = cheeps.author_id").
		Order("cheeps.time_stamp DESC").
		Offset(Offset(page)).
		Limit(models.PageSize)
}

// GetCheeps returns one page of the public timeline
func (r *CheepRepo) GetCheeps(ctx context.Context, page int) ([]CheepRow, error) {
	rows := []CheepRow{}
	err := r.timeline(ctx, page).Scan(&rows).Error
	return rows, err
}

func (r *CheepRepo) GetCheepsByAuthor(ctx context.Context, userName string, page int) ([]CheepRow, error) {
	rows := []CheepRow{}
	err := r.timeline(ctx, page).
		Where("authors.user_name = ?", userName).
		Scan(&rows).Error
	return rows, err
}

// GetCheepsByAuthors filters on membership only. An empty set yields an empty page.
func (r *CheepRepo) GetCheepsByAuthors(ctx context.Context, userNames []string, page int) ([]CheepRow, error) {
	rows := []CheepRow{}
	if len(userNames) == 0 {
		return rows, nil
	}
	err := r.timeline(ctx, page).
		Where("authors.user_name IN ?", userNames).
		Scan(&rows).Error
	return rows, err
}

func (r *CheepRepo) GetCheepsByHashtag(ctx context.Context, tagName string, page int) ([]CheepRow, error) {
	rows := []CheepRow{}
	err := r.timeline(ctx, page).
		Joins("JOIN cheep_hashtags ON cheep_hashtags.cheep_id = cheeps.id").
		Joins("JOIN hashtags ON hashtags.id = cheep_hashtags.hashtag_id").
		Where("hashtags.tag_name = ?", strings.ToLower(tagName)).
		Scan(&rows).Error
	return rows, err
}
