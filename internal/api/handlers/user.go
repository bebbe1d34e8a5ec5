package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/icare-app/icare-server/internal/api/middleware"
	"github.com/icare-app/icare-server/internal/domain"
	"github.com/icare-app/icare-server/internal/service"
)

type UserHandler struct {
	prefsService *service.PreferencesService
	statsService *service.StatsService
}

func NewUserHandler(prefsService *service.PreferencesService, statsService *service.StatsService) *UserHandler {
	return &UserHandler{
		prefsService: prefsService,
		statsService: statsService,
	}
}

type PreferencesResponse struct {
	HideReels       bool       `json:"hide_reels"`
	HideStories     bool       `json:"hide_stories"`
	HideSuggestions bool       `json:"hide_suggestions"`
	LockMode        bool       `json:"lock_mode"`
	LockEndTime     *time.Time `json:"lock_end_time"`
}

func newPreferencesResponse(prefs *domain.UserPreferences) PreferencesResponse {
	return PreferencesResponse{
		HideReels:       prefs.HideReels,
		HideStories:     prefs.HideStories,
		HideSuggestions: prefs.HideSuggestions,
		LockMode:        prefs.LockMode,
		LockEndTime:     prefs.LockEndTime,
	}
}

// GetPreferences returns the caller's preferences, creating the defaults on
// first read.
func (h *UserHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	prefs, err := h.prefsService.Get(r.Context(), userID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, newPreferencesResponse(prefs))
}

// UpdatePreferences applies a sparse patch. While the record is inside its
// lock window the request is rejected with 403 and nothing is written.
func (h *UserHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var patch domain.PreferencesPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	prefs, err := h.prefsService.Update(r.Context(), userID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrPreferencesLocked) {
			writeJSON(w, http.StatusForbidden, map[string]interface{}{
				"success": false,
				"message": "Mode verrou actif - impossible de modifier les réglages",
			})
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, newPreferencesResponse(prefs))
}

type TimeSavedRequest struct {
	Minutes  int    `json:"minutes"`
	Platform string `json:"platform"`
}

func (r TimeSavedRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Minutes, validation.Required, validation.Min(1)),
	)
}

func (h *UserHandler) AddTimeSaved(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req TimeSavedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Platform == "" {
		req.Platform = "instagram"
	}

	total, err := h.statsService.AddTimeSaved(r.Context(), userID, req.Minutes, req.Platform)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Error(w, "Utilisateur non trouvé", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"total_time_saved": total,
	})
}

func (h *UserHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	stats, err := h.statsService.Stats(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Error(w, "Utilisateur non trouvé", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
