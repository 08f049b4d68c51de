package api

import (
	"net/http"

	"github.com/chirp-bdsa/chirp/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type hashtagHandler struct {
	responder Responder
	cheeps    *services.CheepService
}

func newHashtagHandler(cheeps *services.CheepService) hashtagHandler {
	return hashtagHandler{
		responder: NewResponder(log.With().Str("handlerName", "hashtagHandler").Logger()),
		cheeps:    cheeps,
	}
}

// getCheepsByHashtag returns cheeps carrying the tag, matched case-insensitively
// @Summary Hashtag timeline
// @Tags Hashtags
// @Produce json
// @Param tag path string true "Tag name without '#'"
// @Param page query int false "1-indexed page"
// @Success 200 {object} CheepPage
// @Router /hashtags/{tag}/cheeps [get]
func (h hashtagHandler) getCheepsByHashtag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := parsePage(r)

		cheeps, err := h.cheeps.GetCheepsByHashtag(r.Context(), chi.URLParam(r, "tag"), page)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, newCheepPage(cheeps, page))
	}
}
