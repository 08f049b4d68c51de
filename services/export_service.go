package services

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/chirp-bdsa/chirp/models"
	"golang.org/x/sync/errgroup"
)

// ExportService packages everything Chirp stores about one author into a zip
// archive they can download.
type ExportService struct {
	authors *AuthorService
	cheeps  *CheepService
	now     func() time.Time
}

func NewExportService(authors *AuthorService, cheeps *CheepService) *ExportService {
	return &ExportService{
		authors: authors,
		cheeps:  cheeps,
		now:     time.Now,
	}
}

// FileName is the suggested download name for an export taken now.
func (s *ExportService) FileName(userName string) string {
	return fmt.Sprintf("%s_chirp_data_%s.zip", userName, s.now().UTC().Format("20060102_150405"))
}

// Export writes user_info.txt, following.csv and cheeps.csv for the author to w.
func (s *ExportService) Export(ctx context.Context, userName, email string, w io.Writer) error {
	var (
		following []models.AuthorDTO
		cheeps    []models.CheepDTO
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		following, err = s.authors.GetFollowing(gctx, userName)
		return err
	})
	g.Go(func() error {
		var err error
		cheeps, err = s.cheeps.AllCheepsFromAuthor(gctx, userName)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	archive := zip.NewWriter(w)

	info, err := archive.Create("user_info.txt")
	if err != nil {
		return fmt.Errorf("create user_info.txt: %w", err)
	}
	fmt.Fprintf(info, "USER INFORMATION\n================\n\nUsername: %s\nEmail: %s\n\nData exported: %s\n",
		userName, email, s.now().UTC().Format("2006-01-02 15:04:05"))

	followingRows := [][]string{{"Username"}}
	for _, author := range following {
		followingRows = append(followingRows, []string{author.UserName})
	}
	if err := writeCSV(archive, "following.csv", followingRows); err != nil {
		return err
	}

	cheepRows := [][]string{{"Author", "Text", "Timestamp"}}
	for _, cheep := range cheeps {
		cheepRows = append(cheepRows, []string{cheep.Author, cheep.Text, cheep.TimeStamp})
	}
	if err := writeCSV(archive, "cheeps.csv", cheepRows); err != nil {
		return err
	}

	return archive.Close()
}

func writeCSV(archive *zip.Writer, name string, rows [][]string) error {
	f, err := archive.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := csv.NewWriter(f).WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
