package handler

import (
	"net/http"

	"github.com/osse101/StudyGarden_Go/internal/leaderboard"
)

// HandleStudyLeaderboard ranks users by completed study time over ?range
// (day, week, month or year; week by default)
func HandleStudyLeaderboard(svc leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rng, err := leaderboard.ParseRange(GetOptionalQueryParam(r, QueryParamRange, ""))
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRange)
			return
		}

		board, err := svc.Study(r.Context(), rng)
		if err != nil {
			respondServiceError(w, r, OpStudyLeaderboard, err)
			return
		}

		respondJSON(w, http.StatusOK, board)
	}
}
