package api

import (
	"archive/zip"
	"bytes"
	"net/http"
	"strings"
	"testing"
)

func TestAboutMe(t *testing.T) {
	h := newTestRouter(t, nil)
	mustPostCheep(t, h, "Anna", "mine")
	mustPostCheep(t, h, "Bella", "hers")
	anna := tokenFor(t, "Anna")
	mustStatus(t, doRequest(t, h, http.MethodPost, "/me/following/Bella", anna, ""), http.StatusNoContent)

	rec := doRequest(t, h, http.MethodGet, "/me", anna, "")
	mustStatus(t, rec, http.StatusOK)
	me := decodeBody[aboutMe](t, rec)
	if me.UserName != "Anna" || me.Email != "anna@chirp.test" {
		t.Fatalf("unexpected identity %+v", me)
	}
	if len(me.Following) != 1 || me.Following[0].UserName != "Bella" {
		t.Fatalf("unexpected following %+v", me.Following)
	}
	if me.Cheeps.Count != 1 || me.Cheeps.Cheeps[0].Text != "mine" {
		t.Fatalf("expected only Anna's own cheeps, got %+v", me.Cheeps)
	}

	mustStatus(t, doRequest(t, h, http.MethodGet, "/me", "", ""), http.StatusUnauthorized)
}

func TestExportDownload(t *testing.T) {
	h := newTestRouter(t, nil)
	mustPostCheep(t, h, "Anna", "exported")

	rec := doRequest(t, h, http.MethodGet, "/me/export", tokenFor(t, "Anna"), "")
	mustStatus(t, rec, http.StatusOK)

	if ct := rec.Header().Get("Content-Type"); ct != "application/zip" {
		t.Fatalf("unexpected content type %q", ct)
	}
	disposition := rec.Header().Get("Content-Disposition")
	if !strings.HasPrefix(disposition, `attachment; filename="Anna_chirp_data_`) || !strings.HasSuffix(disposition, `.zip"`) {
		t.Fatalf("unexpected content disposition %q", disposition)
	}

	archive, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}
	names := map[string]bool{}
	for _, f := range archive.File {
		names[f.Name] = true
	}
	for _, want := range []string{"user_info.txt", "following.csv", "cheeps.csv"} {
		if !names[want] {
			t.Errorf("archive is missing %s", want)
		}
	}
}

func TestForgetMe(t *testing.T) {
	h := newTestRouter(t, nil)
	mustPostCheep(t, h, "Anna", "soon gone")
	mustPostCheep(t, h, "Bella", "staying")
	bella := tokenFor(t, "Bella")
	mustStatus(t, doRequest(t, h, http.MethodPost, "/me/following/Anna", bella, ""), http.StatusNoContent)

	mustStatus(t, doRequest(t, h, http.MethodDelete, "/me", tokenFor(t, "Anna"), ""), http.StatusNoContent)

	page := decodeBody[CheepPage](t, doRequest(t, h, http.MethodGet, "/cheeps", "", ""))
	if page.Count != 1 || page.Cheeps[0].Author != "Bella" {
		t.Fatalf("expected only Bella's cheep to remain, got %+v", page)
	}
	status := decodeBody[followStatus](t, doRequest(t, h, http.MethodGet, "/authors/Bella/following/Anna", "", ""))
	if status.Following {
		t.Fatal("expected follow edges to Anna to be removed")
	}
}
