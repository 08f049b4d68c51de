package database

import (
	"context"
	"errors"

	"github.com/chirp-bdsa/chirp/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AuthorRepo struct {
	db *gorm.DB
}

func NewAuthorRepo(db *gorm.DB) *AuthorRepo {
	return &AuthorRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *AuthorRepo) GetDB() *gorm.DB {
	return r.db
}

// FindByName returns nil without an error when no author has the name.
func (r *AuthorRepo) FindByName(ctx context.Context, userName string) (*models.Author, error) {
	return r.findOne(ctx, "user_name = ?", userName)
}

// FindByEmail returns nil without an error when no author has the email.
func (r *AuthorRepo) FindByEmail(ctx context.Context, email string) (*models.Author, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *AuthorRepo) findOne(ctx context.Context, query string, arg string) (*models.Author, error) {
	var author models.Author
	err := r.db.WithContext(ctx).Where(query, arg).Take(&author).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// Add inserts the author inside its own savepoint so a duplicate key leaves
// an enclosing transaction usable.
func (r *AuthorRepo) Add(ctx context.Context, author *models.Author) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(author).Error
	})
}

// Delete removes the author with their cheeps, their cheeps' hashtag links and
// every follow edge touching them. Hashtags are kept.
func (r *AuthorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownCheeps := tx.Model(&models.Cheep{}).Select("id").Where("author_id = ?", id)
		if err := tx.Where("cheep_id IN (?)", ownCheeps).Delete(&models.CheepHashtag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", id).Delete(&models.Cheep{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR followed_id = ?", id, id).Delete(&models.AuthorFollow{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Author{}).Error
	})
}

func (r *AuthorRepo) follows(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("author_follows").
		Joins("JOIN authors AS follower ON follower.id = author_follows.follower_id").
		Joins("JOIN authors AS followed ON followed.id = author_follows.followed_id")
}

// IsFollowing reports whether an edge follower -> followed exists, by user name.
func (r *AuthorRepo) IsFollowing(ctx context.Context, follower, followed string) (bool, error) {
	var count int64
	err := r.follows(ctx).
		Where("follower.user_name = ? AND followed.user_name = ?", follower, followed).
		Count(&count).Error
	return count > 0, err
}

// Following returns the names the given author follows, sorted.
func (r *AuthorRepo) Following(ctx context.Context, userName string) ([]string, error) {
	names := []string{}
	err := r.follows(ctx).
		Where("follower.user_name = ?", userName).
		Order("followed.user_name").
		Pluck("followed.user_name", &names).Error
	return names, err
}

// Follow inserts the edge; an existing edge is left untouched.
func (r *AuthorRepo) Follow(ctx context.Context, followerID, followedID uuid.UUID) error {
	edge := models.AuthorFollow{FollowerID: followerID, FollowedID: followedID}
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge).Error
}

// Unfollow deletes the edge if present.
func (r *AuthorRepo) Unfollow(ctx context.Context, followerID, followedID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.AuthorFollow{}).Error
}
