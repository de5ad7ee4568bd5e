package gsidem

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewHandler returns an HTTP API for s:
//
//	GET /api/elevation?lat=<lat>&lng=<lng>
//	GET /metrics
func NewHandler(s *TileElevationService, logger *slog.Logger) http.Handler {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
	)
	router.Get("/api/elevation", elevationHandler(s, logger))
	router.Handle("/metrics", promhttp.Handler())
	return router
}

type elevationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"`
	Source    string  `json:"source,omitempty"`
	Zoom      int     `json:"zoom"`
	NoData    bool    `json:"noData,omitempty"`
}

func elevationHandler(s *TileElevationService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid lat")
			return
		}
		lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid lng")
			return
		}
		sample, err := s.Sample(r.Context(), lat, lng)
		switch {
		case errors.Is(err, ErrLatitudeOutOfRange):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			logger.ErrorContext(r.Context(), "resolve elevation", "err", err)
			writeError(w, http.StatusBadGateway, "tile fetch failed")
			return
		}
		writeJSON(w, http.StatusOK, elevationResponse{
			Latitude:  lat,
			Longitude: lng,
			Elevation: sample.Elevation,
			Source:    sample.Source,
			Zoom:      sample.Zoom,
			NoData:    !sample.OK,
		})
	}
}

// writeJSON serializes v as JSON with the provided status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
