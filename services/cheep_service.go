package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/chirp-bdsa/chirp/database"
	"github.com/chirp-bdsa/chirp/errs"
	"github.com/chirp-bdsa/chirp/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// AuthorMatchPolicy decides whether a posting author is matched to an
// existing account by user name alone or by user name and email.
type AuthorMatchPolicy string

const (
	MatchByName AuthorMatchPolicy = "name"
	MatchStrict AuthorMatchPolicy = "strict"
)

func ParseAuthorMatchPolicy(raw string) (AuthorMatchPolicy, error) {
	switch policy := AuthorMatchPolicy(strings.ToLower(strings.TrimSpace(raw))); policy {
	case "":
		return MatchByName, nil
	case MatchByName, MatchStrict:
		return policy, nil
	default:
		return "", errs.NewInvalidConfigError("AUTHOR_MATCH_POLICY", raw)
	}
}

type CheepService struct {
	db     database.Database
	policy AuthorMatchPolicy
	now    func() time.Time
	logger zerolog.Logger
}

type CheepServiceOption func(*CheepService)

func WithAuthorMatchPolicy(policy AuthorMatchPolicy) CheepServiceOption {
	return func(s *CheepService) {
		s.policy = policy
	}
}

// WithClock replaces time.Now as the source of cheep timestamps.
func WithClock(now func() time.Time) CheepServiceOption {
	return func(s *CheepService) {
		s.now = now
	}
}

func NewCheepService(db database.Database, opts ...CheepServiceOption) *CheepService {
	s := &CheepService{
		db:     db,
		policy: MatchByName,
		now:    time.Now,
		logger: log.With().Str("service", "cheeps").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateCheepText rejects blank text and text over MaxCheepLength characters.
func ValidateCheepText(text string) error {
	if strings.TrimSpace(text) == "" {
		return errs.NewMissingRequiredFieldError("text")
	}
	if utf8.RuneCountInString(text) > models.MaxCheepLength {
		return errs.NewInvalidFieldError("text", fmt.Sprintf("must be at most %d characters", models.MaxCheepLength))
	}
	return nil
}

// CreateCheep stores a cheep for the named author, creating the author on
// first post, and links every hashtag in the text. All writes share one
// transaction.
func (s *CheepService) CreateCheep(ctx context.Context, authorName, authorEmail, text string) error {
	if err := ValidateCheepText(text); err != nil {
		return err
	}
	if strings.TrimSpace(authorName) == "" {
		return errs.NewMissingRequiredFieldError("authorName")
	}
	if strings.TrimSpace(authorEmail) == "" {
		return errs.NewMissingRequiredFieldError("authorEmail")
	}

	var cheep models.Cheep
	var tags []string
	err := s.db.Transaction(ctx, func(tx database.Database) error {
		author, err := s.resolveAuthor(ctx, tx, authorName, authorEmail)
		if err != nil {
			return err
		}

		cheep = models.Cheep{
			AuthorID:  author.ID,
			Text:      text,
			TimeStamp: s.now().UTC(),
		}
		if err := tx.CheepRepo().Add(ctx, &cheep); err != nil {
			return errs.NewDatabaseError("create", "cheep", err)
		}

		tags = ExtractHashtags(text)
		for _, tag := range tags {
			hashtag, err := tx.HashtagRepo().FindOrCreate(ctx, tag)
			if err != nil {
				return errs.NewDatabaseError("create", "hashtag", err)
			}
			if err := tx.HashtagRepo().Link(ctx, cheep.ID, hashtag.ID); err != nil {
				return errs.NewDatabaseError("link", "hashtag", err)
			}
		}
		return nil
	})
	if err != nil {
		var apiErr *errs.ApiErr
		if errors.As(err, &apiErr) {
			return err
		}
		return errs.NewDatabaseError("commit", "cheep", err)
	}

	s.logger.Debug().
		Str("author", authorName).
		Str("cheepId", cheep.ID.String()).
		Strs("hashtags", tags).
		Msg("Cheep created")
	return nil
}

// resolveAuthor finds the author by name or creates them. A concurrent
// creator winning the race is handled by reading their row back.
func (s *CheepService) resolveAuthor(ctx context.Context, tx database.Database, name, email string) (*models.Author, error) {
	author, err := tx.AuthorRepo().FindByName(ctx, name)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "author", err)
	}

	if author == nil {
		author = &models.Author{UserName: name, Email: email}
		err := tx.AuthorRepo().Add(ctx, author)
		if err == nil {
			return author, nil
		}
		if !errs.IsDuplicateKey(err) {
			return nil, errs.NewDatabaseError("create", "author", err)
		}

		author, err = tx.AuthorRepo().FindByName(ctx, name)
		if err != nil {
			return nil, errs.NewDatabaseError("find", "author", err)
		}
		if author == nil {
			// the name is free, so the email belongs to someone else
			return nil, errs.NewConflictError(fmt.Sprintf("email %s is registered to another author", email))
		}
	}

	if s.policy == MatchStrict && !strings.EqualFold(author.Email, email) {
		return nil, errs.NewConflictError(fmt.Sprintf("author %s is registered with a different email", name))
	}
	return author, nil
}

func (s *CheepService) GetCheeps(ctx context.Context, page int) ([]models.CheepDTO, error) {
	rows, err := s.db.CheepRepo().GetCheeps(ctx, page)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "cheeps", err)
	}
	return toCheepDTOs(rows), nil
}

func (s *CheepService) GetCheepsFromAuthor(ctx context.Context, authorName string, page int) ([]models.CheepDTO, error) {
	rows, err := s.db.CheepRepo().GetCheepsByAuthor(ctx, authorName, page)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "cheeps", err)
	}
	return toCheepDTOs(rows), nil
}

func (s *CheepService) GetCheepsFromAuthors(ctx context.Context, authorNames []string, page int) ([]models.CheepDTO, error) {
	rows, err := s.db.CheepRepo().GetCheepsByAuthors(ctx, authorNames, page)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "cheeps", err)
	}
	return toCheepDTOs(rows), nil
}

// GetCheepsByHashtag accepts the tag with or without its leading '#'.
func (s *CheepService) GetCheepsByHashtag(ctx context.Context, tagName string, page int) ([]models.CheepDTO, error) {
	tagName = strings.TrimPrefix(strings.TrimSpace(tagName), "#")
	if tagName == "" {
		return []models.CheepDTO{}, nil
	}

	rows, err := s.db.CheepRepo().GetCheepsByHashtag(ctx, tagName, page)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "cheeps", err)
	}
	return toCheepDTOs(rows), nil
}

// TimelineFor is what viewer sees on author's page: their own page merges the
// cheeps of everyone they follow, anyone else's page shows only that author.
func (s *CheepService) TimelineFor(ctx context.Context, viewer, author string, page int) ([]models.CheepDTO, error) {
	if viewer == "" || viewer != author {
		return s.GetCheepsFromAuthor(ctx, author, page)
	}

	following, err := s.db.AuthorRepo().Following(ctx, author)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "following", err)
	}
	return s.GetCheepsFromAuthors(ctx, append([]string{author}, following...), page)
}

// AllCheepsFromAuthor walks the author's pages until a short page.
func (s *CheepService) AllCheepsFromAuthor(ctx context.Context, authorName string) ([]models.CheepDTO, error) {
	all := []models.CheepDTO{}
	for page := 1; ; page++ {
		cheeps, err := s.GetCheepsFromAuthor(ctx, authorName, page)
		if err != nil {
			return nil, err
		}
		all = append(all, cheeps...)
		if len(cheeps) < models.PageSize {
			return all, nil
		}
	}
}

func (s *CheepService) GetHashtagsForCheep(ctx context.Context, cheepID uuid.UUID) ([]models.HashtagDTO, error) {
	names, err := s.db.HashtagRepo().HashtagsForCheep(ctx, cheepID)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "hashtags", err)
	}

	hashtags := make([]models.HashtagDTO, 0, len(names))
	for _, name := range names {
		hashtags = append(hashtags, models.HashtagDTO{TagName: name})
	}
	return hashtags, nil
}

func toCheepDTOs(rows []database.CheepRow) []models.CheepDTO {
	cheeps := make([]models.CheepDTO, 0, len(rows))
	for _, row := range rows {
		cheeps = append(cheeps, models.CheepDTO{
			ID:        row.ID,
			Author:    row.Author,
			Text:      row.Text,
			TimeStamp: models.FormatTimestamp(row.TimeStamp),
			HTML:      RenderWithHashtags(row.Text),
		})
	}
	return cheeps
}
