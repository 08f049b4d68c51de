package api

import (
	"time"

	"github.com/chirp-bdsa/chirp/database"
	"github.com/chirp-bdsa/chirp/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, policy services.AuthorMatchPolicy, startupTime time.Time) *routeHandlers {
	cheeps := services.NewCheepService(database, services.WithAuthorMatchPolicy(policy))
	authors := services.NewAuthorService(database)
	exports := services.NewExportService(authors, cheeps)

	return &routeHandlers{
		cheepHandler:   newCheepHandler(cheeps),
		authorHandler:  newAuthorHandler(cheeps, authors),
		hashtagHandler: newHashtagHandler(cheeps),
		meHandler:      newMeHandler(cheeps, authors, exports),
		healthHandler:  newHealthHandler(database, startupTime),
	}
}
