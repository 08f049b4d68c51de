package database_test

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/chirp-bdsa/chirp/database"
	"github.com/chirp-bdsa/chirp/database/dbtest"
)

func TestCheepRepoPagination(t *testing.T) {
	d := dbtest.New(t)
	ctx := context.Background()
	anna := mustAddAuthor(t, d, "Anna")

	for i := 0; i < 35; i++ {
		mustAddCheep(t, d, anna, fmt.Sprintf("cheep %02d", i), epoch.Add(time.Duration(i)*time.Minute))
	}

	first, err := d.CheepRepo().GetCheeps(ctx, 1)
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	second, err := d.CheepRepo().GetCheeps(ctx, 2)
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}

	if len(first) != 32 || len(second) != 3 {
		t.Fatalf("expected 32 + 3 cheeps, got %d + %d", len(first), len(second))
	}
	if first[0].Text != "cheep 34" {
		t.Fatalf("expected newest cheep first, got %q", first[0].Text)
	}
	if first[0].Author != "Anna" {
		t.Fatalf("expected author name to be joined in, got %q", first[0].Author)
	}

	all := append(first, second...)
	for i := 1; i < len(all); i++ {
		if all[i].TimeStamp.After(all[i-1].TimeStamp) {
			t.Fatalf("timestamps not descending at %d: %v after %v", i, all[i].TimeStamp, all[i-1].TimeStamp)
		}
	}
	if last := all[len(all)-1].Text; last != "cheep 00" {
		t.Fatalf("expected oldest cheep last, got %q", last)
	}

	clamped, err := d.CheepRepo().GetCheeps(ctx, 0)
	if err != nil {
		t.Fatalf("page 0: %v", err)
	}
	if len(clamped) != 32 || clamped[0].Text != "cheep 34" {
		t.Fatalf("expected page 0 to behave like page 1")
	}

	beyond, err := d.CheepRepo().GetCheeps(ctx, 3)
	if err != nil || len(beyond) != 0 {
		t.Fatalf("page 3 = %d rows, %v", len(beyond), err)
	}
}

func TestCheepRepoByAuthors(t *testing.T) {
	d := dbtest.New(t)
	ctx := context.Background()
	anna := mustAddAuthor(t, d, "Anna")
	bella := mustAddAuthor(t, d, "Bella")
	cheryl := mustAddAuthor(t, d, "Cheryl")

	mustAddCheep(t, d, anna, "a1", epoch)
	mustAddCheep(t, d, bella, "b1", epoch.Add(time.Minute))
	mustAddCheep(t, d, cheryl, "c1", epoch.Add(2*time.Minute))

	rows, err := d.CheepRepo().GetCheepsByAuthors(ctx, []string{"Anna", "Cheryl"}, 1)
	if err != nil {
		t.Fatalf("GetCheepsByAuthors: %v", err)
	}
	if len(rows) != 2 || rows[0].Text != "c1" || rows[1].Text != "a1" {
		t.Fatalf("unexpected rows %+v", rows)
	}

	byOne, err := d.CheepRepo().GetCheepsByAuthor(ctx, "Bella", 1)
	if err != nil || len(byOne) != 1 || byOne[0].Author != "Bella" {
		t.Fatalf("GetCheepsByAuthor(Bella) = %+v, %v", byOne, err)
	}

	empty, err := d.CheepRepo().GetCheepsByAuthors(ctx, nil, 1)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil page for no authors, got %v, %v", empty, err)
	}
}

func TestCheepRepoByHashtagIsCaseInsensitive(t *testing.T) {
	d := dbtest.New(t)
	ctx := context.Background()
	anna := mustAddAuthor(t, d, "Anna")
	tagged := mustAddCheep(t, d, anna, "learning #GoLang", epoch)
	mustAddCheep(t, d, anna, "untagged", epoch.Add(time.Minute))

	tag, err := d.HashtagRepo().FindOrCreate(ctx, "GoLang")
	if err != nil {
		t.Fatalf("FindOrCreate: %v", err)
	}
	if err := d.HashtagRepo().Link(ctx, tagged.ID, tag.ID); err != nil {
		t.Fatalf("Link: %v", err)
	}

	for _, query := range []string{"golang", "GOLANG", "GoLang"} {
		rows, err := d.CheepRepo().GetCheepsByHashtag(ctx, query, 1)
		if err != nil {
			t.Fatalf("GetCheepsByHashtag(%s): %v", query, err)
		}
		if len(rows) != 1 || rows[0].ID != tagged.ID {
			t.Fatalf("GetCheepsByHashtag(%s) = %+v", query, rows)
		}
	}

	unknown, err := d.CheepRepo().GetCheepsByHashtag(ctx, "nothing", 1)
	if err != nil || len(unknown) != 0 {
		t.Fatalf("unknown tag = %+v, %v", unknown, err)
	}
}

func TestOffset(t *testing.T) {
	tests := []struct {
		page int
		want int
	}{
		{-4, 0},
		{0, 0},
		{1, 0},
		{2, 32},
		{5, 128},
		{database.MaxPage, (math.MaxInt / 32) * 32},
		{math.MaxInt, (math.MaxInt / 32) * 32},
	}
	for _, tt := range tests {
		if got := database.Offset(tt.page); got != tt.want {
			t.Errorf("Offset(%d) = %d, want %d", tt.page, got, tt.want)
		}
	}
}

func TestCheepRepoPageBeyondIntRangeIsEmpty(t *testing.T) {
	d := dbtest.New(t)
	anna := mustAddAuthor(t, d, "Anna")
	mustAddCheep(t, d, anna, "only one", epoch)

	for _, page := range []int{math.MaxInt, math.MaxInt/32 + 2, math.MaxInt/16 + 1} {
		rows, err := d.CheepRepo().GetCheeps(context.Background(), page)
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		if len(rows) != 0 {
			t.Fatalf("page %d: expected no rows, got %d", page, len(rows))
		}
	}
}
