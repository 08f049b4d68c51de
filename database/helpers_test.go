package database_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/chirp-bdsa/chirp/database"
	"github.com/chirp-bdsa/chirp/models"
)

var epoch = time.Date(2023, 8, 1, 12, 0, 0, 0, time.UTC)

func mustAddAuthor(t *testing.T, d database.Database, name string) *models.Author {
	t.Helper()
	author := &models.Author{UserName: name, Email: strings.ToLower(name) + "@chirp.test"}
	if err := d.AuthorRepo().Add(context.Background(), author); err != nil {
		t.Fatalf("add author %s: %v", name, err)
	}
	return author
}

func mustAddCheep(t *testing.T, d database.Database, author *models.Author, text string, at time.Time) *models.Cheep {
	t.Helper()
	cheep := &models.Cheep{AuthorID: author.ID, Text: text, TimeStamp: at}
	if err := d.CheepRepo().Add(context.Background(), cheep); err != nil {
		t.Fatalf("add cheep %q: %v", text, err)
	}
	return cheep
}

func mustFollow(t *testing.T, d database.Database, follower, followed *models.Author) {
	t.Helper()
	if err := d.AuthorRepo().Follow(context.Background(), follower.ID, followed.ID); err != nil {
		t.Fatalf("follow %s -> %s: %v", follower.UserName, followed.UserName, err)
	}
}
