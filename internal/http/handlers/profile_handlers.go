package handlers

import (
	"errors"
	"net/http"
	"strings"

	"chargepulse/internal/models"
	"chargepulse/internal/repository"
	"chargepulse/internal/service"
)

// NewUserProfileHandler returns GET /users/profile handler.
func NewUserProfileHandler(svc *service.AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ds, ok, msg := datasetParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
		if userID == "" {
			writeError(w, http.StatusBadRequest, "missing user_id")
			return
		}

		p, err := svc.UserProfile(r.Context(), ds, userID)
		if errors.Is(err, repository.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to fetch profile")
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// NewAnomalousUsersHandler returns GET /users/anomalous handler. An empty
// list is a valid result, not an error.
func NewAnomalousUsersHandler(svc *service.AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ds, ok, msg := datasetParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		profiles, err := svc.AnomalousUsers(r.Context(), ds)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to fetch anomalous users")
			return
		}
		if profiles == nil {
			profiles = []*models.UserProfile{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"users": profiles})
	}
}
