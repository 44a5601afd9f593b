package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avrek/wb-radar/internal/apperr"
	"github.com/avrek/wb-radar/internal/models"
)

type createGroupRequest struct {
	Name      string `json:"name,omitempty"`
	GroupType string `json:"group_type"`
}

type quickCompareRequest struct {
	OwnArticleNumber        string `json:"own_article_number"`
	CompetitorArticleNumber string `json:"competitor_article_number"`
	GroupName               string `json:"group_name,omitempty"`
	ScrapeNow               bool   `json:"scrape_now"`
}

type errorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// handleCreateGroup processes POST /api/v1/groups.
func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, apperr.Validation("invalid request body: %v", err))
		return
	}

	group, err := s.svc.CreateGroup(r.Context(), userID, req.Name, models.GroupType(req.GroupType))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, group)
}

// handleDeleteGroup processes DELETE /api/v1/groups/{id}.
func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	if err := s.svc.DeleteGroup(r.Context(), mux.Vars(r)["id"], userID); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleQuickCompare processes POST /api/v1/compare/quick.
func (s *Server) handleQuickCompare(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var req quickCompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, apperr.Validation("invalid request body: %v", err))
		return
	}

	resp, err := s.svc.QuickCompare(r.Context(), userID, req.OwnArticleNumber, req.CompetitorArticleNumber, req.GroupName, req.ScrapeNow)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// handleGetComparison processes GET /api/v1/groups/{id}/comparison.
func (s *Server) handleGetComparison(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	refresh := r.URL.Query().Get("refresh") == "true"

	resp, err := s.svc.Compare(r.Context(), mux.Vars(r)["id"], userID, refresh)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// handleGetHistory processes GET /api/v1/groups/{id}/history.
func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, r, apperr.Validation("invalid days parameter %q", raw))
			return
		}
		days = parsed
	}

	resp, err := s.svc.History(r.Context(), mux.Vars(r)["id"], userID, days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// handleUserStats processes GET /api/v1/users/stats.
func (s *Server) handleUserStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	stats, err := s.svc.UserStats(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, stats)
}

// userID extracts the caller's identity from the X-User-ID header.
func (s *Server) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		s.writeError(w, r, apperr.Validation("missing X-User-ID header"))
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.writeError(w, r, apperr.Validation("invalid X-User-ID header %q", raw))
		return 0, false
	}

	return id, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("failed to encode response", "error", err)
	}
}

// writeError maps the error taxonomy onto HTTP statuses. Partial
// degradation never reaches here: it comes back as a success with warnings.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)

	var status int
	switch kind {
	case apperr.KindValidation, apperr.KindMalformedData:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindExternalFetch:
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}

	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.log.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "kind", kind.String(), "error", err)
	}

	s.writeJSON(w, status, errorResponse{Kind: kind.String(), Message: err.Error()})
}
