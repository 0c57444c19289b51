package web

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"codelens.dev/pkg/codelens/internal/adapter"
	"codelens.dev/pkg/codelens/internal/domain"
	m "codelens.dev/pkg/codelens/internal/model"
)

// logTailLines is the number of log lines shown on the logs page.
const logTailLines = 200

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	render(w, r, homePage())
}

func (s *Server) handleScanForm(w http.ResponseWriter, r *http.Request) {
	render(w, r, scanFormPage(""))
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.Config.MaxUpload); err != nil {
		renderStatus(w, r, scanFormPage("invalid form: "+err.Error()), http.StatusBadRequest)
		return
	}

	root := m.Path(strings.TrimSpace(r.FormValue("repo_path")))
	uploads := r.MultipartForm.File["files"]

	if len(uploads) > 0 {
		dir, _, err := s.saveUploads("codelens-scan-", uploads)
		if err != nil {
			s.serverError(w, err)
			return
		}
		defer s.removeUploads(dir)

		root = dir
	}

	if root == "" {
		renderStatus(w, r, scanFormPage("Enter a repository path or upload files."), http.StatusBadRequest)
		return
	}

	outcome, err := s.Analyzer.Analyze(r.Context(), domain.ScanArgs{
		Root:            root,
		ApplicationName: r.FormValue("application_name"),
		Reports:         s.Config.Reports,
		Formats:         s.Config.Formats,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRootNotFound) || errors.Is(err, domain.ErrNotDirectory) {
			renderStatus(w, r, scanFormPage(err.Error()), http.StatusBadRequest)
			return
		}

		s.serverError(w, err)

		return
	}

	render(w, r, scanResultPage(outcome))
}

func (s *Server) handleMatchForm(w http.ResponseWriter, r *http.Request) {
	render(w, r, matchFormPage("", s.Config.Threshold))
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.Config.MaxUpload); err != nil {
		renderStatus(w, r, matchFormPage("invalid form: "+err.Error(), s.Config.Threshold), http.StatusBadRequest)
		return
	}

	sourceFiles := r.MultipartForm.File["source"]
	targetFiles := r.MultipartForm.File["target"]

	if len(sourceFiles) == 0 || len(targetFiles) == 0 {
		renderStatus(w, r, matchFormPage("Upload both a C360 and a target spreadsheet.", s.Config.Threshold), http.StatusBadRequest)
		return
	}

	threshold := s.Config.Threshold

	if raw := strings.TrimSpace(r.FormValue("threshold")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 || value > 100 {
			renderStatus(w, r, matchFormPage("Minimum score must be a number between 0 and 100.", s.Config.Threshold), http.StatusBadRequest)
			return
		}

		threshold = value
	}

	dir, saved, err := s.saveUploads("codelens-match-", []*multipart.FileHeader{sourceFiles[0], targetFiles[0]})
	if err != nil {
		s.serverError(w, err)
		return
	}
	defer s.removeUploads(dir)

	ctx := r.Context()

	source, err := s.Analyzer.LoadDataset(ctx, saved[0])
	if err != nil {
		renderStatus(w, r, matchFormPage(err.Error(), threshold), http.StatusBadRequest)
		return
	}

	target, err := s.Analyzer.LoadDataset(ctx, saved[1])
	if err != nil {
		renderStatus(w, r, matchFormPage(err.Error(), threshold), http.StatusBadRequest)
		return
	}

	stamp := s.now().Format(m.ReportTimestampLayout)
	view := matchView{Preprocessed: r.FormValue("preprocess") != ""}

	if view.Preprocessed {
		var removed []m.RemovedRow

		columns := source.Columns
		source, view.Stats, removed = domain.Preprocess(source)

		if len(removed) > 0 {
			name := "removed_rows_" + stamp + ".xlsx"
			if err := s.Analyzer.ExportRemovedRows(ctx, s.reportPath(name), columns, removed); err != nil {
				s.serverError(w, err)
				return
			}

			view.RemovedRows = name
		}
	}

	algorithm := r.FormValue("algorithm")
	if algorithm == "" {
		algorithm = s.Config.Algorithm
	}

	view.Result, err = s.Analyzer.Compare(ctx, domain.CompareArgs{
		Source:    source,
		Target:    target,
		Column:    domain.ColumnForMatchType(r.FormValue("match_type")),
		Algorithm: algorithm,
		Threshold: threshold,
		Limit:     s.Config.Limit,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnknownAlgorithm) {
			renderStatus(w, r, matchFormPage(err.Error(), threshold), http.StatusBadRequest)
			return
		}

		s.serverError(w, err)

		return
	}

	if len(view.Result.Matches) > 0 {
		name := "matching_attributes_" + stamp + ".xlsx"
		if err := s.Analyzer.ExportMatches(ctx, s.reportPath(name), view.Result); err != nil {
			s.serverError(w, err)
			return
		}

		view.Download = name
	}

	render(w, r, matchResultPage(view))
}

func (s *Server) handleColumnsForm(w http.ResponseWriter, r *http.Request) {
	render(w, r, columnsFormPage("", domain.DefaultColumnThreshold))
}

func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.Config.MaxUpload); err != nil {
		renderStatus(w, r, columnsFormPage("invalid form: "+err.Error(), domain.DefaultColumnThreshold), http.StatusBadRequest)
		return
	}

	firstFiles := r.MultipartForm.File["first"]
	secondFiles := r.MultipartForm.File["second"]

	if len(firstFiles) == 0 || len(secondFiles) == 0 {
		renderStatus(w, r, columnsFormPage("Upload two spreadsheets to compare.", domain.DefaultColumnThreshold), http.StatusBadRequest)
		return
	}

	threshold := domain.DefaultColumnThreshold

	if raw := strings.TrimSpace(r.FormValue("threshold")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < domain.MinColumnThreshold || value > domain.MaxColumnThreshold {
			msg := fmt.Sprintf("Column matching threshold must be a number between %d and %d.",
				domain.MinColumnThreshold, domain.MaxColumnThreshold)
			renderStatus(w, r, columnsFormPage(msg, domain.DefaultColumnThreshold), http.StatusBadRequest)

			return
		}

		threshold = value
	}

	dir, saved, err := s.saveUploads("codelens-columns-", []*multipart.FileHeader{firstFiles[0], secondFiles[0]})
	if err != nil {
		s.serverError(w, err)
		return
	}
	defer s.removeUploads(dir)

	ctx := r.Context()

	datasets := make([]m.Dataset, 0, len(saved))

	for _, path := range saved {
		dataset, err := s.Analyzer.LoadDataset(ctx, path)
		if err != nil {
			renderStatus(w, r, columnsFormPage(err.Error(), threshold), http.StatusBadRequest)
			return
		}

		datasets = append(datasets, dataset)
	}

	view := columnsView{}

	view.Result, err = s.Analyzer.CompareColumns(ctx, domain.ColumnCompareArgs{
		Source:    datasets[0],
		Target:    datasets[1],
		Threshold: threshold,
	})
	if err != nil {
		s.serverError(w, err)
		return
	}

	if len(view.Result.Matches) > 0 {
		name := "excel_analysis_" + s.now().Format(m.ReportTimestampLayout) + ".xlsx"
		if err := s.Analyzer.ExportColumnComparison(ctx, s.reportPath(name), view.Result); err != nil {
			s.serverError(w, err)
			return
		}

		view.Download = name
	}

	render(w, r, columnsResultPage(view))
}

func (s *Server) handleReportsList(w http.ResponseWriter, r *http.Request) {
	application := strings.TrimSpace(r.URL.Query().Get("app"))

	files, err := s.Analyzer.ListReports(r.Context(), s.Config.Reports, application)
	if err != nil {
		s.serverError(w, err)
		return
	}

	render(w, r, reportsPage(files, application))
}

func (s *Server) handleReportDownload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		http.Error(w, "invalid report name", http.StatusBadRequest)
		return
	}

	path := s.reportPath(name)

	info, err := s.FS.FileInfo(path)
	if err != nil || info.IsDir() {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}

	data, err := s.FS.ReadFile(path)
	if err != nil {
		s.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType(path))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", adapter.SafeFileName(name)))
	_, _ = w.Write(data)
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	var lines []string

	if s.Config.LogFile != "" {
		data, err := s.FS.ReadFile(s.Config.LogFile)
		if err == nil {
			lines = tail(string(data), logTailLines)
		}
	}

	render(w, r, logsPage(lines))
}

// saveUploads copies uploads into a new temp dir and returns the dir and the
// saved paths in upload order. Names already taken go into a numbered
// subdirectory so no upload overwrites another.
func (s *Server) saveUploads(pattern string, uploads []*multipart.FileHeader) (m.Path, []m.Path, error) {
	dir, err := s.FS.CreateTempDir(pattern)
	if err != nil {
		return "", nil, fmt.Errorf("create upload dir: %w", err)
	}

	taken := map[string]int{}
	paths := make([]m.Path, 0, len(uploads))

	for _, header := range uploads {
		name := uploadName(header)

		path := s.FS.JoinPath(string(dir), name)
		if n, ok := taken[name]; ok {
			path = s.FS.JoinPath(string(dir), "upload-"+strconv.Itoa(n), name)
		}

		taken[name]++

		if err := s.saveUpload(path, header); err != nil {
			s.removeUploads(dir)
			return "", nil, err
		}

		paths = append(paths, path)
	}

	slog.Info("Saved uploaded files", "dir", dir, "count", len(uploads))

	return dir, paths, nil
}

func (s *Server) saveUpload(path m.Path, header *multipart.FileHeader) error {
	file, err := header.Open()
	if err != nil {
		return fmt.Errorf("open upload %s: %w", header.Filename, err)
	}
	defer file.Close()

	if err := s.FS.CopyFrom(path, file); err != nil {
		return fmt.Errorf("save upload %s: %w", header.Filename, err)
	}

	return nil
}

func (s *Server) removeUploads(dir m.Path) {
	if err := s.FS.RemoveAll(dir); err != nil {
		slog.Warn("Failed to remove upload dir", "dir", dir, "error", err)
	}
}

func (s *Server) reportPath(name string) m.Path {
	return s.FS.JoinPath(string(s.Config.Reports), name)
}

// uploadName strips any client supplied directories from an upload's name.
func uploadName(header *multipart.FileHeader) string {
	name := filepath.Base(filepath.FromSlash(strings.ReplaceAll(header.Filename, "\\", "/")))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "upload"
	}

	return name
}

func contentType(path m.Path) string {
	switch strings.ToLower(path.Ext()) {
	case ".html":
		return "text/html; charset=utf-8"
	case ".json", ".sarif":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

func tail(content string, n int) []string {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil
	}

	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}

	return lines
}
