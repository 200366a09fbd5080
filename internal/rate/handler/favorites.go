package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fxconvert/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const SessionHeader = "X-Session-ID"

type FavoriteRequest struct {
	From string `json:"from" example:"USD"`
	To   string `json:"to" example:"EUR"`
}

type FavoriteResponse struct {
	ID         int64     `json:"id" example:"7"`
	From       string    `json:"from" example:"USD"`
	To         string    `json:"to" example:"EUR"`
	UsageCount int       `json:"usage_count" example:"3"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ListFavoritesResponse struct {
	Favorites []FavoriteResponse `json:"favorites"`
}

// sessionID reads the caller's session and issues a new one when absent.
// The id is echoed back so the client can reuse it.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(SessionHeader))
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(SessionHeader, id)
	return id
}

func toFavoriteResponse(f domain.FavoritePair) FavoriteResponse {
	return FavoriteResponse{
		ID:         f.ID,
		From:       f.From.String(),
		To:         f.To.String(),
		UsageCount: f.UsageCount,
		UpdatedAt:  f.UpdatedAt,
	}
}

// ListFavorites godoc
// @Summary Favorite pairs of the session
// @Tags Favorites
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Success 200 {object} ListFavoritesResponse
// @Router /favorites [get]
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	session := sessionID(w, r)
	favorites, err := h.history.ListFavorites(r.Context(), session)
	if err != nil {
		writeFailure(w, err, logrus.Fields{"handler": "ListFavorites"})
		return
	}

	res := ListFavoritesResponse{Favorites: make([]FavoriteResponse, 0, len(favorites))}
	for _, f := range favorites {
		res.Favorites = append(res.Favorites, toFavoriteResponse(f))
	}
	writeJSON(w, http.StatusOK, res)
}

// AddFavorite godoc
// @Summary Add or bump a favorite pair
// @Tags Favorites
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Param request body FavoriteRequest true "Pair"
// @Success 201 {object} FavoriteResponse
// @Failure 400 {object} errorResponse
// @Router /favorites [post]
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 256)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req FavoriteRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	pair, err := h.validator.ValidatePair(req.From, req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	session := sessionID(w, r)
	fav, err := h.history.AddFavorite(r.Context(), session, pair.Base.String(), pair.Target.String())
	if err != nil {
		writeFailure(w, err, logrus.Fields{"handler": "AddFavorite", "pair": pair.Key()})
		return
	}
	writeJSON(w, http.StatusCreated, toFavoriteResponse(fav))
}

// RemoveFavorite godoc
// @Summary Remove a favorite pair
// @Tags Favorites
// @Param id path int true "Favorite id"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /favorites/{id} [delete]
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid favorite id")
		return
	}

	if err = h.history.RemoveFavorite(r.Context(), id); err != nil {
		writeFailure(w, err, logrus.Fields{"handler": "RemoveFavorite", "id": id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
