package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"codelens.dev/pkg/codelens/internal/domain"
	m "codelens.dev/pkg/codelens/internal/model"
)

type reportFileResponse struct {
	Name            string `json:"name"`
	ApplicationName string `json:"application_name"`
	Format          string `json:"format"`
	Timestamp       string `json:"timestamp,omitempty"`
	URL             string `json:"url"`
}

type scanRequest struct {
	RepoPath        string   `json:"repo_path"`
	ApplicationName string   `json:"application_name"`
	Formats         []string `json:"formats"`
}

type scanResponse struct {
	Report  m.Report             `json:"report"`
	Reports []reportFileResponse `json:"reports"`
}

func (s *Server) jsonResponse(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("Failed to encode JSON response", "error", err)
		}
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, err error, status int) {
	http.Error(w, err.Error(), status)
}

func (s *Server) badRequest(w http.ResponseWriter, err error) {
	s.errorResponse(w, err, http.StatusBadRequest)
}

func (s *Server) serverError(w http.ResponseWriter, err error) {
	slog.Error("Request failed", "error", err)
	s.errorResponse(w, err, http.StatusInternalServerError)
}

func (s *Server) apiListReports(w http.ResponseWriter, r *http.Request) {
	files, err := s.Analyzer.ListReports(r.Context(), s.Config.Reports, r.URL.Query().Get("app"))
	if err != nil {
		s.serverError(w, err)
		return
	}

	resp := struct {
		Items []reportFileResponse `json:"items"`
		Total int                  `json:"total"`
	}{
		Items: toReportFileResponses(files),
		Total: len(files),
	}

	s.jsonResponse(w, resp, http.StatusOK)
}

func (s *Server) apiScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, fmt.Errorf("invalid request body: %w", err))
		return
	}

	if strings.TrimSpace(req.RepoPath) == "" {
		s.badRequest(w, errors.New("repo_path is required"))
		return
	}

	formats := s.Config.Formats
	if len(req.Formats) > 0 {
		parsed, err := parseFormats(req.Formats)
		if err != nil {
			s.badRequest(w, err)
			return
		}

		formats = parsed
	}

	outcome, err := s.Analyzer.Analyze(r.Context(), domain.ScanArgs{
		Root:            m.Path(req.RepoPath),
		ApplicationName: req.ApplicationName,
		Reports:         s.Config.Reports,
		Formats:         formats,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRootNotFound) || errors.Is(err, domain.ErrNotDirectory) {
			s.badRequest(w, err)
			return
		}

		s.serverError(w, err)

		return
	}

	s.jsonResponse(w, scanResponse{
		Report:  outcome.Report,
		Reports: toReportFileResponses(outcome.Files),
	}, http.StatusOK)
}

func parseFormats(values []string) ([]m.ReportFormat, error) {
	formats := make([]m.ReportFormat, 0, len(values))

	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}

			format, err := m.ParseReportFormat(part)
			if err != nil {
				return nil, err
			}

			formats = append(formats, format)
		}
	}

	return formats, nil
}

func toReportFileResponses(files []m.ReportFile) []reportFileResponse {
	items := make([]reportFileResponse, 0, len(files))

	for _, file := range files {
		item := reportFileResponse{
			Name:            file.Name,
			ApplicationName: file.ApplicationName,
			Format:          string(file.Format),
			URL:             downloadURL(file.Name),
		}
		if !file.Timestamp.IsZero() {
			item.Timestamp = file.Timestamp.Format(time.RFC3339)
		}

		items = append(items, item)
	}

	return items
}

func downloadURL(name string) string {
	return "/reports/" + url.PathEscape(name)
}
