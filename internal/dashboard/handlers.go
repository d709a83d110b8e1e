package dashboard

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/spacesedan/tubemood/internal/models"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := newPage(s.defaultVideoID)
	page.Recent = s.recentVideos(r)
	s.render(w, page)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	videoID := r.URL.Query().Get("video_id")

	result, err := s.analyzer.FetchAndScore(r.Context(), videoID)

	page := newPage(videoID)
	page.applyResult(result, err)
	page.Recent = s.recentVideos(r)
	s.render(w, page)
}

type analyzeResponse struct {
	VideoID      string                 `json:"video_id"`
	Summary      models.MoodSummary     `json:"summary"`
	Distribution []models.MoodCount     `json:"distribution"`
	Records      []models.CommentRecord `json:"records"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) handleAPIAnalyze(w http.ResponseWriter, r *http.Request) {
	result, err := s.analyzer.FetchAndScore(r.Context(), r.URL.Query().Get("video_id"))
	if err != nil || result.Empty() {
		resp := errorResponse{Error: noDataWarning}
		if err != nil {
			resp.Detail = err.Error()
		}
		writeJSON(w, http.StatusNotFound, resp)
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		VideoID:      result.VideoID,
		Summary:      result.Summary(),
		Distribution: result.Distribution(),
		Records:      result.Records,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) recentVideos(r *http.Request) []string {
	if s.recent == nil {
		return nil
	}
	ids, err := s.recent.RecentVideos(r.Context())
	if err != nil {
		slog.Warn("[Dashboard] Failed to load recent videos", slog.String("error", err.Error()))
		return nil
	}
	return ids
}

func (s *Server) render(w http.ResponseWriter, page *pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		slog.Error("[Dashboard] Failed to render page", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("[Dashboard] Failed to encode response", slog.String("error", err.Error()))
	}
}
