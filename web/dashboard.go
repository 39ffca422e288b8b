// ABOUTME: Dashboard and sync API handlers
// ABOUTME: Serves the metrics snapshot and drives the mirror reconciler
package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/lonestarscholars/crm/sync"
	"github.com/lonestarscholars/crm/viz"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request, _ string) {
	stats, err := viz.GenerateDashboardStats(s.db, time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleSyncStatus(w http.ResponseWriter, r *http.Request, _ string) {
	lastSync, err := sync.LastStatus(s.db)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"lastSync":   lastSync,
		"configured": s.syncer != nil,
	})
}

func (s *Server) handleRunSync(w http.ResponseWriter, r *http.Request, _ string) {
	if s.syncer == nil {
		writeJSON(w, http.StatusOK, sync.Result{
			Success: false,
			Message: sync.ErrNotConfigured.Error(),
		})
		return
	}

	result, err := s.syncer.Run(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, sync.ErrSyncInProgress):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, sync.ErrNotConfigured):
			writeJSON(w, http.StatusOK, sync.Result{Success: false, Message: err.Error()})
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, result)
}
