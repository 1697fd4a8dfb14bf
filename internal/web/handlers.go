package web

import (
	"embed"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/restopsdev/platewatch/internal/export"
	"github.com/restopsdev/platewatch/internal/ingest"
	"github.com/restopsdev/platewatch/internal/logging"
	"github.com/restopsdev/platewatch/internal/report"
	"github.com/restopsdev/platewatch/internal/session"
)

//go:embed sampledata
var sampleFiles embed.FS

// uploadFields maps multipart form field names to source kinds, in
// pipeline order.
var uploadFields = []struct {
	Field string
	Kind  ingest.SourceKind
}{
	{"ingredient_info", ingest.SourceIngredientInfo},
	{"stock", ingest.SourceStock},
	{"usage", ingest.SourceUsage},
	{"waste", ingest.SourceWaste},
}

// reportSummary is the response for a successful processing run.
type reportSummary struct {
	SessionID   string              `json:"session_id"`
	Rows        int                 `json:"rows"`
	Stats       report.SummaryStats `json:"stats"`
	Warnings    []string            `json:"warnings,omitempty"`
	Notices     []string            `json:"notices,omitempty"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// reportView is the response for an interactive view request.
type reportView struct {
	report.ViewResult
	Warnings    []string  `json:"warnings,omitempty"`
	Notices     []string  `json:"notices,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// handleCreateReport processes a four-file upload into a fresh report and
// stores it as the session's current result, replacing any prior one.
func (s *Server) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	// Four files plus form overhead.
	maxSize := 4*s.cfg.Upload.MaxFileSize + 1<<20
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, http.StatusBadRequest, "upload too large or invalid form")
		return
	}

	raw := make(map[ingest.SourceKind]ingest.RawTable, len(uploadFields))
	for _, uf := range uploadFields {
		table, err := s.readSourceFile(r, uf.Field)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		raw[uf.Kind] = table
	}

	s.runReport(w, r, raw)
}

// handleSampleReport processes the bundled sample data, the quickest way to
// see a populated report without preparing four CSV files.
func (s *Server) handleSampleReport(w http.ResponseWriter, r *http.Request) {
	raw := make(map[ingest.SourceKind]ingest.RawTable, len(uploadFields))
	for _, uf := range uploadFields {
		f, err := sampleFiles.Open("sampledata/" + uf.Field + ".csv")
		if err != nil {
			s.respondError(w, r, fmt.Errorf("open sample %s: %w", uf.Field, err))
			return
		}
		table, err := ingest.ReadTable(f)
		f.Close()
		if err != nil {
			s.respondError(w, r, fmt.Errorf("parse sample %s: %w", uf.Field, err))
			return
		}
		raw[uf.Kind] = table
	}

	s.runReport(w, r, raw)
}

// runReport executes the pipeline over raw tables, stores the result for
// the session, and writes the summary response.
func (s *Server) runReport(w http.ResponseWriter, r *http.Request, raw map[ingest.SourceKind]ingest.RawTable) {
	logger := logging.FromContext(r.Context())

	rep, err := report.Process(
		raw[ingest.SourceIngredientInfo],
		raw[ingest.SourceStock],
		raw[ingest.SourceUsage],
		raw[ingest.SourceWaste],
	)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	sessionID := s.sessionID(w, r)
	if err := s.store.Put(r.Context(), sessionID, rep); err != nil {
		s.respondError(w, r, err)
		return
	}

	logger.Info("report processed",
		"session_id", sessionID,
		"rows", rep.Table.Len(),
		"warnings", len(rep.Warnings),
		"notices", len(rep.Notices),
	)

	writeJSON(w, reportSummary{
		SessionID:   sessionID,
		Rows:        rep.Table.Len(),
		Stats:       report.Summarize(rep.Table, s.thresholds),
		Warnings:    rep.Warnings,
		Notices:     noticeStrings(rep.Notices),
		GeneratedAt: rep.GeneratedAt,
	})
}

// handleGetReport returns an interactive view over the session's report.
// Query parameters: filter (named filter), sort (column name), order
// (asc/desc).
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.sessionReport(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	q := r.URL.Query()
	view, err := report.View(rep.Table,
		report.FilterName(q.Get("filter")),
		q.Get("sort"),
		q.Get("order"),
		s.thresholds,
	)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, reportView{
		ViewResult:  view,
		Warnings:    rep.Warnings,
		Notices:     noticeStrings(rep.Notices),
		GeneratedAt: rep.GeneratedAt,
	})
}

// handleDeleteReport clears the session's stored report.
func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.currentSessionID(r)
	if !ok {
		writeJSON(w, map[string]bool{"deleted": false})
		return
	}
	if err := s.store.Delete(r.Context(), sessionID); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, map[string]bool{"deleted": true})
}

// handleExportCSV streams the session's report as a CSV download.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	rep, err := s.sessionReport(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	renderer := export.CSVRenderer{}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", renderer.FileName()))
	if err := renderer.Render(w, rep, s.thresholds); err != nil {
		logging.FromContext(r.Context()).Error("csv export failed", "error", err)
	}
}

// sessionReport loads the report for the request's session. A request
// without a session cookie has no report by definition.
func (s *Server) sessionReport(r *http.Request) (*report.Report, error) {
	sessionID, ok := s.currentSessionID(r)
	if !ok {
		return nil, session.ErrNotFound
	}
	return s.store.Get(r.Context(), sessionID)
}

// readSourceFile parses one uploaded CSV form file into a raw table.
func (s *Server) readSourceFile(r *http.Request, field string) (ingest.RawTable, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return ingest.RawTable{}, fmt.Errorf("missing %q file", field)
	}
	defer file.Close()

	if header.Size > s.cfg.Upload.MaxFileSize {
		return ingest.RawTable{}, fmt.Errorf("%q exceeds the %d byte limit", field, s.cfg.Upload.MaxFileSize)
	}

	table, err := ingest.ReadTable(file)
	if err != nil {
		return ingest.RawTable{}, fmt.Errorf("reading %q: %w", field, err)
	}
	return table, nil
}

// currentSessionID returns the session ID from the request cookie.
func (s *Server) currentSessionID(r *http.Request) (string, bool) {
	c, err := r.Cookie(s.cfg.Session.CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// sessionID returns the request's session ID, minting a new one and setting
// the cookie when the request has none.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if id, ok := s.currentSessionID(r); ok {
		return id
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.Session.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.cfg.Session.TTL.Seconds()),
	})
	return id
}

// noticeStrings renders notices for JSON responses.
func noticeStrings(notices []report.Notice) []string {
	if len(notices) == 0 {
		return nil
	}
	out := make([]string, len(notices))
	for i, n := range notices {
		out[i] = n.String()
	}
	return out
}
