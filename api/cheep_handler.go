package api

import (
	"encoding/json"
	"net/http"

	"github.com/chirp-bdsa/chirp/errs"
	"github.com/chirp-bdsa/chirp/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// maxCheepBodyBytes leaves room for JSON escaping of a 160 character cheep.
const maxCheepBodyBytes = 8 << 10

type cheepHandler struct {
	responder Responder
	logger    zerolog.Logger
	cheeps    *services.CheepService
}

func newCheepHandler(cheeps *services.CheepService) cheepHandler {
	logger := log.With().Str("handlerName", "cheepHandler").Logger()

	return cheepHandler{
		responder: NewResponder(logger),
		logger:    logger,
		cheeps:    cheeps,
	}
}

// getCheeps returns one page of the public timeline
// @Summary Public timeline
// @Tags Cheeps
// @Produce json
// @Param page query int false "1-indexed page"
// @Success 200 {object} CheepPage
// @Failure 503 {object} ErrorResponse "Storage unavailable"
// @Router /cheeps [get]
func (h cheepHandler) getCheeps() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := parsePage(r)

		cheeps, err := h.cheeps.GetCheeps(r.Context(), page)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, newCheepPage(cheeps, page))
	}
}

// createCheep posts a cheep as the signed-in author
// @Summary Post a cheep
// @Tags Cheeps
// @Accept json
// @Produce json
// @Param cheep body createCheepRequest true "Cheep text"
// @Success 201
// @Failure 400 {object} ErrorResponse "Blank or too long text"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 409 {object} ErrorResponse "Author identity conflict"
// @Router /cheeps [post]
func (h cheepHandler) createCheep() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Authentication handled by middleware
		id, _ := ctxGetIdentity(r.Context())

		var body createCheepRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCheepBodyBytes)).Decode(&body); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if err := h.cheeps.CreateCheep(r.Context(), id.Name, id.Email, body.Text); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("author", id.Name).Msg("Cheep posted")
		w.WriteHeader(http.StatusCreated)
	}
}

// getCheepHashtags lists the hashtags linked to a cheep
// @Summary Hashtags of a cheep
// @Tags Cheeps
// @Produce json
// @Param cheepID path string true "Cheep ID" format(uuid)
// @Success 200 {array} models.HashtagDTO
// @Failure 400 {object} ErrorResponse "Invalid cheepID"
// @Router /cheeps/{cheepID}/hashtags [get]
func (h cheepHandler) getCheepHashtags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cheepID, err := uuid.Parse(chi.URLParam(r, "cheepID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("cheepID", "must be a UUID"))
			return
		}

		hashtags, err := h.cheeps.GetHashtagsForCheep(r.Context(), cheepID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, hashtags)
	}
}
