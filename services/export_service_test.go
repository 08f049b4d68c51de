package services

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/chirp-bdsa/chirp/database/dbtest"
)

func readZipEntry(t *testing.T, archive *zip.Reader, name string) string {
	t.Helper()
	for _, f := range archive.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(data)
	}
	t.Fatalf("archive has no %s", name)
	return ""
}

func TestExport(t *testing.T) {
	d := dbtest.New(t)
	cheeps := NewCheepService(d, WithClock(stepClock(start)))
	authors := NewAuthorService(d)
	ctx := context.Background()

	mustPost(t, cheeps, "Anna", "hello, world")
	mustPost(t, cheeps, "Anna", `she said "hi"`)
	mustPost(t, cheeps, "Bella", "not mine")
	if err := authors.FollowAuthor(ctx, "Anna", "Bella"); err != nil {
		t.Fatalf("FollowAuthor: %v", err)
	}

	exports := NewExportService(authors, cheeps)
	exports.now = func() time.Time { return time.Date(2024, 3, 5, 7, 8, 9, 0, time.UTC) }

	if got := exports.FileName("Anna"); got != "Anna_chirp_data_20240305_070809.zip" {
		t.Fatalf("FileName = %q", got)
	}

	var buf bytes.Buffer
	if err := exports.Export(ctx, "Anna", "anna@chirp.test", &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}
	archive, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}

	info := readZipEntry(t, archive, "user_info.txt")
	for _, line := range []string{"USER INFORMATION", "Username: Anna", "Email: anna@chirp.test", "Data exported: 2024-03-05 07:08:09"} {
		if !strings.Contains(info, line) {
			t.Errorf("user_info.txt missing %q:\n%s", line, info)
		}
	}

	following, err := csv.NewReader(strings.NewReader(readZipEntry(t, archive, "following.csv"))).ReadAll()
	if err != nil {
		t.Fatalf("parse following.csv: %v", err)
	}
	if want := [][]string{{"Username"}, {"Bella"}}; !reflect.DeepEqual(following, want) {
		t.Fatalf("following.csv = %v, want %v", following, want)
	}

	rows, err := csv.NewReader(strings.NewReader(readZipEntry(t, archive, "cheeps.csv"))).ReadAll()
	if err != nil {
		t.Fatalf("parse cheeps.csv: %v", err)
	}
	want := [][]string{
		{"Author", "Text", "Timestamp"},
		{"Anna", `she said "hi"`, "08/01/23 12:01:00"},
		{"Anna", "hello, world", "08/01/23 12:00:00"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("cheeps.csv = %v, want %v", rows, want)
	}
}
