package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/chirp-bdsa/chirp/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// meHandler serves the signed-in author's own resources. Every route is
// behind authenticate, so the identity is always present.
type meHandler struct {
	responder Responder
	logger    zerolog.Logger
	cheeps    *services.CheepService
	authors   *services.AuthorService
	exports   *services.ExportService
}

func newMeHandler(cheeps *services.CheepService, authors *services.AuthorService, exports *services.ExportService) meHandler {
	logger := log.With().Str("handlerName", "meHandler").Logger()

	return meHandler{
		responder: NewResponder(logger),
		logger:    logger,
		cheeps:    cheeps,
		authors:   authors,
		exports:   exports,
	}
}

// @Router /me [get]
func (h meHandler) getMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := ctxGetIdentity(r.Context())
		page := parsePage(r)

		response := aboutMe{UserName: id.Name, Email: id.Email}
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			following, err := h.authors.GetFollowing(ctx, id.Name)
			response.Following = following
			return err
		})
		g.Go(func() error {
			cheeps, err := h.cheeps.GetCheepsFromAuthor(ctx, id.Name, page)
			response.Cheeps = newCheepPage(cheeps, page)
			return err
		})
		if err := g.Wait(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, response)
	}
}

// @Router /me/following/{author} [post]
func (h meHandler) follow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := ctxGetIdentity(r.Context())

		if err := h.authors.FollowAuthor(r.Context(), id.Name, chi.URLParam(r, "author")); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// @Router /me/following/{author} [delete]
func (h meHandler) unfollow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := ctxGetIdentity(r.Context())

		if err := h.authors.UnfollowAuthor(r.Context(), id.Name, chi.URLParam(r, "author")); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// export downloads everything stored about the caller as a zip archive
// @Router /me/export [get]
func (h meHandler) export() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := ctxGetIdentity(r.Context())

		// buffered so a failure can still be reported with a proper status
		var buf bytes.Buffer
		if err := h.exports.Export(r.Context(), id.Name, id.Email, &buf); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.exports.FileName(id.Name)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(buf.Bytes()); err != nil {
			h.logger.Error().Err(err).Msg("error writing export")
		}
	}
}

// forgetMe deletes the caller's author record with all their cheeps and follows
// @Router /me [delete]
func (h meHandler) forgetMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := ctxGetIdentity(r.Context())

		if err := h.authors.DeleteAuthor(r.Context(), id.Name); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("author", id.Name).Msg("Author forgotten")
		w.WriteHeader(http.StatusNoContent)
	}
}
