package api

import (
	"net/http"
	"time"

	"github.com/vytor/killstats/internal/logger"
	"github.com/vytor/killstats/internal/models"
)

// bossDataResponse is the read endpoint payload.
type bossDataResponse struct {
	Data      string    `json:"data"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	text, err := readDumpText(w, r, s.MaxDumpBytes)
	if err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.IngestService.Ingest(r.Context(), text)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.WithFields(map[string]any{
		"world":    result.World,
		"inserted": result.Inserted,
		"total":    result.Total,
	}).Info("dump ingested")
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	text, err := readDumpText(w, r, s.MaxDumpBytes)
	if err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.IngestService.Preview(r.Context(), text)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleBossData(w http.ResponseWriter, r *http.Request) {
	upload, err := s.DumpService.Latest(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, bossDataResponse{
		Data:      upload.RawText,
		UpdatedAt: upload.UploadedAt,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.StatsFilter{
		World:   q.Get("world"),
		AsOf:    q.Get("as_of"),
		Search:  q.Get("q"),
		Status:  q.Get("status"),
		SortBy:  q.Get("sort"),
		SortDir: q.Get("dir"),
	}

	logger.FromContext(r.Context()).WithFields(map[string]any{
		"world":  filter.World,
		"as_of":  filter.AsOf,
		"status": filter.Status,
		"sort":   filter.SortBy,
	}).Debug("building dashboard")

	dashboard, err := s.StatsService.Dashboard(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dashboard)
}

func (s *Server) handleBosses(w http.ResponseWriter, r *http.Request) {
	bosses, err := s.RegistryService.ListBosses(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	if bosses == nil {
		bosses = []models.Boss{}
	}
	writeJSON(w, r, http.StatusOK, bosses)
}

func (s *Server) handleWorlds(w http.ResponseWriter, r *http.Request) {
	worlds, err := s.RegistryService.ListWorlds(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	if worlds == nil {
		worlds = []models.World{}
	}
	writeJSON(w, r, http.StatusOK, worlds)
}
