package handler

import (
	"net/http"

	"github.com/osse101/StudyGarden_Go/internal/garden"
)

// PlantRequest is the body of POST /garden/plant. Row and Col are pointers so
// that zero is distinguishable from missing.
type PlantRequest struct {
	Row  *int   `json:"row" validate:"required,gte=0"`
	Col  *int   `json:"col" validate:"required,gte=0"`
	Seed string `json:"seed" validate:"required,slug,max=64"`
}

// HarvestRequest is the body of POST /garden/harvest
type HarvestRequest struct {
	Row *int `json:"row" validate:"required,gte=0"`
	Col *int `json:"col" validate:"required,gte=0"`
}

// HandleGetGarden returns the caller's grid, creating it on first access
func HandleGetGarden(svc garden.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		grid, err := svc.GetGrid(r.Context(), UserIDFromContext(r.Context()))
		if err != nil {
			respondServiceError(w, r, OpGetGarden, err)
			return
		}

		respondJSON(w, http.StatusOK, grid)
	}
}

// HandlePlant plants an owned seed in an empty plot
func HandlePlant(svc garden.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PlantRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpPlant); err != nil {
			return
		}

		res, err := svc.Plant(r.Context(), UserIDFromContext(r.Context()), *req.Row, *req.Col, req.Seed)
		if err != nil {
			respondServiceError(w, r, OpPlant, err)
			return
		}

		respondJSON(w, http.StatusCreated, res)
	}
}

// HandleHarvest harvests the plant in a plot
func HandleHarvest(svc garden.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req HarvestRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpHarvest); err != nil {
			return
		}

		res, err := svc.Harvest(r.Context(), UserIDFromContext(r.Context()), *req.Row, *req.Col)
		if err != nil {
			respondServiceError(w, r, OpHarvest, err)
			return
		}

		respondJSON(w, http.StatusOK, res)
	}
}
