package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/meltforce/healthbridge/internal/models"
)

// forceCreateRequest is the optional body of the force-create route. An empty
// body provisions every known metric for the default user.
type forceCreateRequest struct {
	UserID  string                        `json:"user_id"`
	Metrics map[string][]models.Datapoint `json:"metrics"`
}

func (s *Server) handleForceCreate(w http.ResponseWriter, r *http.Request) {
	var req forceCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	result, err := s.bridge.ForceCreate(r.Context(), req.UserID, req.Metrics)
	s.dispatch(r.Context(), result)
	if err != nil {
		s.log.Error("force-create error", "user", result.UserID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleFixNames(w http.ResponseWriter, r *http.Request) {
	result, err := s.bridge.FixEntityNames(r.Context())
	if err != nil {
		s.log.Error("fix-names error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// optionsBody is the wire shape of the mutable unit preferences.
type optionsBody struct {
	NutrientMass string `json:"nutrient_mass_unit"`
	WaterVolume  string `json:"water_volume_unit"`
}

func (s *Server) handleGetOptions(w http.ResponseWriter, r *http.Request) {
	mass, volume := s.bridge.Preferences()
	writeJSON(w, http.StatusOK, optionsBody{NutrientMass: mass, WaterVolume: volume})
}

func (s *Server) handlePutOptions(w http.ResponseWriter, r *http.Request) {
	var body optionsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	// The file/env-friendly spelling is accepted here too.
	if body.WaterVolume == "fl_oz" {
		body.WaterVolume = "fl oz"
	}
	switch body.NutrientMass {
	case "g", "oz":
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "nutrient_mass_unit must be g or oz"})
		return
	}
	switch body.WaterVolume {
	case "mL", "fl oz":
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "water_volume_unit must be mL or fl_oz"})
		return
	}

	if err := s.bridge.SetPreferences(r.Context(), body.NutrientMass, body.WaterVolume); err != nil {
		s.log.Error("options update failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	s.log.Info("unit preferences updated", "nutrient_mass", body.NutrientMass, "water_volume", body.WaterVolume)
	writeJSON(w, http.StatusOK, body)
}
