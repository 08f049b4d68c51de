package api

import (
	"net/http"

	"github.com/chirp-bdsa/chirp/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authorHandler struct {
	responder Responder
	logger    zerolog.Logger
	cheeps    *services.CheepService
	authors   *services.AuthorService
}

func newAuthorHandler(cheeps *services.CheepService, authors *services.AuthorService) authorHandler {
	logger := log.With().Str("handlerName", "authorHandler").Logger()

	return authorHandler{
		responder: NewResponder(logger),
		logger:    logger,
		cheeps:    cheeps,
		authors:   authors,
	}
}

// getAuthorTimeline returns an author's cheeps. Authors viewing their own
// page also see the cheeps of everyone they follow.
// @Summary Author timeline
// @Tags Authors
// @Produce json
// @Param author path string true "Author user name"
// @Param page query int false "1-indexed page"
// @Success 200 {object} CheepPage
// @Router /authors/{author}/cheeps [get]
func (h authorHandler) getAuthorTimeline() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		author := chi.URLParam(r, "author")
		page := parsePage(r)

		viewer, _ := ctxGetIdentity(r.Context())
		cheeps, err := h.cheeps.TimelineFor(r.Context(), viewer.Name, author, page)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, newCheepPage(cheeps, page))
	}
}

// getFollowing lists who an author follows
// @Summary Following list
// @Tags Authors
// @Produce json
// @Param author path string true "Author user name"
// @Success 200 {array} models.AuthorDTO
// @Router /authors/{author}/following [get]
func (h authorHandler) getFollowing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		following, err := h.authors.GetFollowing(r.Context(), chi.URLParam(r, "author"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, following)
	}
}

// @Router /authors/{author}/following/{followed} [get]
func (h authorHandler) isFollowing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		follower := chi.URLParam(r, "author")
		followed := chi.URLParam(r, "followed")

		following, err := h.authors.IsFollowing(r.Context(), follower, followed)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, followStatus{
			Follower:  follower,
			Followed:  followed,
			Following: following,
		})
	}
}
