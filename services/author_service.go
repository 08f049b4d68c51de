package services

import (
	"context"
	"strings"

	"github.com/chirp-bdsa/chirp/database"
	"github.com/chirp-bdsa/chirp/errs"
	"github.com/chirp-bdsa/chirp/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// AuthorService owns authors and the follow graph. Operations naming an
// unknown author have no effect and do not fail.
type AuthorService struct {
	db     database.Database
	logger zerolog.Logger
}

func NewAuthorService(db database.Database) *AuthorService {
	return &AuthorService{
		db:     db,
		logger: log.With().Str("service", "authors").Logger(),
	}
}

func (s *AuthorService) FindAuthorByName(ctx context.Context, name string) (*models.AuthorDTO, error) {
	author, err := s.db.AuthorRepo().FindByName(ctx, name)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "author", err)
	}
	if author == nil {
		return nil, nil
	}
	return &models.AuthorDTO{UserName: author.UserName}, nil
}

func (s *AuthorService) FindAuthorByEmail(ctx context.Context, email string) (*models.AuthorDTO, error) {
	author, err := s.db.AuthorRepo().FindByEmail(ctx, email)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "author", err)
	}
	if author == nil {
		return nil, nil
	}
	return &models.AuthorDTO{UserName: author.UserName}, nil
}

// CreateAuthor fails with a conflict when the name or email is taken.
func (s *AuthorService) CreateAuthor(ctx context.Context, name, email string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewMissingRequiredFieldError("userName")
	}
	if strings.TrimSpace(email) == "" {
		return errs.NewMissingRequiredFieldError("email")
	}

	if err := s.db.AuthorRepo().Add(ctx, &models.Author{UserName: name, Email: email}); err != nil {
		return errs.NewDatabaseError("create", "author", err)
	}
	return nil
}

// DeleteAuthor forgets the author together with everything they posted and
// every follow edge touching them.
func (s *AuthorService) DeleteAuthor(ctx context.Context, name string) error {
	author, err := s.db.AuthorRepo().FindByName(ctx, name)
	if err != nil {
		return errs.NewDatabaseError("find", "author", err)
	}
	if author == nil {
		return nil
	}

	if err := s.db.AuthorRepo().Delete(ctx, author.ID); err != nil {
		return errs.NewDatabaseError("delete", "author", err)
	}
	s.logger.Info().Str("author", name).Msg("Author deleted")
	return nil
}

func (s *AuthorService) IsFollowing(ctx context.Context, follower, followed string) (bool, error) {
	if follower == followed {
		return false, nil
	}
	following, err := s.db.AuthorRepo().IsFollowing(ctx, follower, followed)
	if err != nil {
		return false, errs.NewDatabaseError("check", "follow", err)
	}
	return following, nil
}

func (s *AuthorService) GetFollowing(ctx context.Context, authorName string) ([]models.AuthorDTO, error) {
	names, err := s.db.AuthorRepo().Following(ctx, authorName)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "following", err)
	}

	authors := make([]models.AuthorDTO, 0, len(names))
	for _, name := range names {
		authors = append(authors, models.AuthorDTO{UserName: name})
	}
	return authors, nil
}

// FollowAuthor is idempotent. Following yourself is silently ignored.
func (s *AuthorService) FollowAuthor(ctx context.Context, follower, followed string) error {
	if follower == followed {
		return nil
	}

	from, to, err := s.pair(ctx, follower, followed)
	if err != nil || from == nil || to == nil {
		return err
	}

	if err := s.db.AuthorRepo().Follow(ctx, from.ID, to.ID); err != nil {
		return errs.NewDatabaseError("create", "follow", err)
	}
	return nil
}

// UnfollowAuthor succeeds when there is no edge to remove.
func (s *AuthorService) UnfollowAuthor(ctx context.Context, follower, followed string) error {
	if follower == followed {
		return nil
	}

	from, to, err := s.pair(ctx, follower, followed)
	if err != nil || from == nil || to == nil {
		return err
	}

	if err := s.db.AuthorRepo().Unfollow(ctx, from.ID, to.ID); err != nil {
		return errs.NewDatabaseError("delete", "follow", err)
	}
	return nil
}

// pair looks both authors up; a nil author means the name is unknown.
func (s *AuthorService) pair(ctx context.Context, follower, followed string) (*models.Author, *models.Author, error) {
	from, err := s.db.AuthorRepo().FindByName(ctx, follower)
	if err != nil {
		return nil, nil, errs.NewDatabaseError("find", "author", err)
	}
	to, err := s.db.AuthorRepo().FindByName(ctx, followed)
	if err != nil {
		return nil, nil, errs.NewDatabaseError("find", "author", err)
	}
	if from == nil || to == nil {
		s.logger.Debug().Str("follower", follower).Str("followed", followed).Msg("Follow change skipped for unknown author")
	}
	return from, to, nil
}
