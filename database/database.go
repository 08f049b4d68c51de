package database

import (
	"context"
	"fmt"

	"github.com/chirp-bdsa/chirp/models"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type Database struct {
	db          *gorm.DB
	authorRepo  *AuthorRepo
	cheepRepo   *CheepRepo
	hashtagRepo *HashtagRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:          db,
		authorRepo:  NewAuthorRepo(db),
		cheepRepo:   NewCheepRepo(db),
		hashtagRepo: NewHashtagRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) AuthorRepo() *AuthorRepo {
	return d.authorRepo
}

func (d Database) CheepRepo() *CheepRepo {
	return d.cheepRepo
}

func (d Database) HashtagRepo() *HashtagRepo {
	return d.hashtagRepo
}

// DB returns the underlying connection for maintenance tasks
func (d Database) DB() *gorm.DB {
	return d.db
}

// Transaction runs fn against a Database bound to a single transaction on the
// primary. Any error returned by fn rolls the whole transaction back.
func (d Database) Transaction(ctx context.Context, fn func(tx Database) error) error {
	return d.db.WithContext(ctx).Clauses(dbresolver.Write).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

func (d Database) Migrate() error {
	return models.Migrate(d.db)
}

func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
