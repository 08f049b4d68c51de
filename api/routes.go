package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes registers public, optionally identified and authenticated routes
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Get("/health", handlers.healthHandler.health())

	r.Group(func(r chi.Router) {
		r.Use(HTTPLoggingMiddleware)

		// Public routes
		r.Get("/cheeps", handlers.cheepHandler.getCheeps())
		r.Get("/cheeps/{cheepID}/hashtags", handlers.cheepHandler.getCheepHashtags())
		r.Get("/hashtags/{tag}/cheeps", handlers.hashtagHandler.getCheepsByHashtag())
		r.Get("/authors/{author}/following", handlers.authorHandler.getFollowing())
		r.Get("/authors/{author}/following/{followed}", handlers.authorHandler.isFollowing())

		// Identity is optional: authors see their merged timeline on their own page
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.identify)
			r.Get("/authors/{author}/cheeps", handlers.authorHandler.getAuthorTimeline())
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Post("/cheeps", handlers.cheepHandler.createCheep())

			r.Get("/me", handlers.meHandler.getMe())
			r.Delete("/me", handlers.meHandler.forgetMe())
			r.Get("/me/export", handlers.meHandler.export())
			r.Post("/me/following/{author}", handlers.meHandler.follow())
			r.Delete("/me/following/{author}", handlers.meHandler.unfollow())
		})
	})
}
