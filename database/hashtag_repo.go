package database

import (
	"context"
	"errors"
	"strings"

	"github.com/chirp-bdsa/chirp/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HashtagRepo struct {
	db *gorm.DB
}

func NewHashtagRepo(db *gorm.DB) *HashtagRepo {
	return &HashtagRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *HashtagRepo) GetDB() *gorm.DB {
	return r.db
}

// FindByName looks the tag up case-insensitively; nil when it does not exist.
func (r *HashtagRepo) FindByName(ctx context.Context, tagName string) (*models.Hashtag, error) {
	var hashtag models.Hashtag
	err := r.db.WithContext(ctx).Where("tag_name = ?", strings.ToLower(tagName)).Take(&hashtag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &hashtag, nil
}

// FindOrCreate inserts the tag unless another writer already did, then reads
// back the stored row so callers always get the winning ID.
func (r *HashtagRepo) FindOrCreate(ctx context.Context, tagName string) (*models.Hashtag, error) {
	tagName = strings.ToLower(tagName)

	candidate := models.Hashtag{TagName: tagName}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&candidate).Error; err != nil {
		return nil, err
	}

	var stored models.Hashtag
	if err := r.db.WithContext(ctx).Where("tag_name = ?", tagName).Take(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// Link attaches a hashtag to a cheep. Linking twice is a no-op.
func (r *HashtagRepo) Link(ctx context.Context, cheepID, hashtagID uuid.UUID) error {
	link := models.CheepHashtag{CheepID: cheepID, HashtagID: hashtagID}
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
}

// HashtagsForCheep returns the tag names linked to one cheep, sorted.
func (r *HashtagRepo) HashtagsForCheep(ctx context.Context, cheepID uuid.UUID) ([]string, error) {
	names := []string{}
	err := r.db.WithContext(ctx).
		Table("hashtags").
		Joins("JOIN cheep_hashtags ON cheep_hashtags.hashtag_id = hashtags.id").
		Where("cheep_hashtags.cheep_id = ?", cheepID).
		Order("hashtags.tag_name").
		Pluck("hashtags.tag_name", &names).Error
	return names, err
}
