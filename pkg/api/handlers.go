package api

import (
	"net/http"
	"time"

	"github.com/ssargent/dataprov/pkg/model"
)

// handleHealth godoc
//
//	@Summary		Health check
//	@Description	Get the health status of the API
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	APIResponse
//	@Router			/health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleStats godoc
//
//	@Summary		Record counts
//	@Description	Get the number of records held per kind
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	APIResponse{data=StatsResponse}
//	@Router			/stats [get]
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := StatsResponse{
		Records:       make(map[string]int, len(s.resources)),
		UptimeSeconds: time.Since(s.started).Seconds(),
	}
	for _, res := range s.resources {
		stats.Records[res.Kind()] = res.Len()
	}
	if c, ok := s.patients.(counter); ok {
		stats.Records[model.PatientKind] = c.Len()
	}
	sendSuccess(w, stats)
}
