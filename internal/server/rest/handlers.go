package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/advboard/internal/common"
	"github.com/dmitrijs2005/advboard/internal/server/models"
	"github.com/gorilla/mux"
)

const (
	resourceUser   = "user"
	resourceAdvert = "advertisement"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type advertListResponse struct {
	Advert []models.AdvertisementView `json:"Advert"`
}

type idResponse struct {
	ID int64 `json:"id"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// pathID reads the numeric {id} route variable. Values that overflow int64
// cannot name a stored row and are reported as not found.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, common.ErrorNotFound
	}
	return id, nil
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in models.RegisterInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err, resourceUser)
		return
	}

	token, err := s.users.Register(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err, resourceUser)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in models.LoginInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err, resourceUser)
		return
	}

	token, err := s.users.Login(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err, resourceUser)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token})
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err, resourceUser)
		return
	}

	u, err := s.users.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, resourceUser)
		return
	}
	writeJSON(w, http.StatusOK, u.View())
}

func (s *Server) listAdverts(w http.ResponseWriter, r *http.Request) {
	items, err := s.adverts.List(r.Context())
	if err != nil {
		s.writeError(w, r, err, resourceAdvert)
		return
	}

	views := make([]models.AdvertisementView, 0, len(items))
	for _, a := range items {
		views = append(views, a.View())
	}
	writeJSON(w, http.StatusOK, advertListResponse{Advert: views})
}

func (s *Server) getAdvert(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err, resourceAdvert)
		return
	}

	a, err := s.adverts.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, resourceAdvert)
		return
	}
	writeJSON(w, http.StatusOK, a.View())
}

func (s *Server) createAdvert(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userIDFromContext(r.Context())
	if !ok {
		s.writeError(w, r, common.ErrorUnauthorized, resourceAdvert)
		return
	}

	var in models.AdvertisementInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err, resourceAdvert)
		return
	}

	a, err := s.adverts.Create(r.Context(), ownerID, in)
	if err != nil {
		s.writeError(w, r, err, resourceAdvert)
		return
	}
	writeJSON(w, http.StatusOK, idResponse{ID: a.ID})
}

func (s *Server) updateAdvert(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userIDFromContext(r.Context())
	if !ok {
		s.writeError(w, r, common.ErrorUnauthorized, resourceAdvert)
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err, resourceAdvert)
		return
	}

	var patch models.AdvertisementPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		s.writeError(w, r, err, resourceAdvert)
		return
	}

	a, err := s.adverts.Update(r.Context(), ownerID, id, patch)
	if err != nil {
		s.writeError(w, r, err, resourceAdvert)
		return
	}
	writeJSON(w, http.StatusOK, a.View())
}

func (s *Server) deleteAdvert(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userIDFromContext(r.Context())
	if !ok {
		s.writeError(w, r, common.ErrorUnauthorized, resourceAdvert)
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err, resourceAdvert)
		return
	}

	if err := s.adverts.Delete(r.Context(), ownerID, id); err != nil {
		s.writeError(w, r, err, resourceAdvert)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "deleted"})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn(r.Context(), "health check failed", "error", err)
		writeJSONError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}
