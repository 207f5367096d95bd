package web

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"time"

	"weekendly/internal/ics"
	appLog "weekendly/internal/log"
	"weekendly/internal/notify"
	"weekendly/internal/persist"
	"weekendly/internal/poster"
)

func attachment(w http.ResponseWriter, contentType, name string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
}

// GET /api/export/json downloads {saturday, sunday} as stored.
func (s *Server) handleExportJSON(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := persist.WriteExport(&buf, s.planner.Snapshot()); err != nil {
		s.exportFailed(w, "json", err)
		return
	}
	attachment(w, "application/json; charset=utf-8", persist.ExportFileName)
	_, _ = w.Write(buf.Bytes())
}

// GET /api/export/ics?recurring=1
func (s *Server) handleExportICS(w http.ResponseWriter, r *http.Request) {
	recurring, _ := strconv.ParseBool(r.URL.Query().Get("recurring"))

	var buf bytes.Buffer
	err := ics.Write(&buf, s.planner.Snapshot(), ics.ExportOptions{
		Now:       s.now(),
		Location:  s.loc,
		Recurring: recurring,
	})
	if err != nil {
		s.exportFailed(w, "ics", err)
		return
	}
	attachment(w, "text/calendar; charset=utf-8", ics.FileName)
	_, _ = w.Write(buf.Bytes())
}

// GET /api/export/poster renders the plan through headless Chromium.
func (s *Server) handleExportPoster(w http.ResponseWriter, r *http.Request) {
	timeout := time.Duration(s.cfg.Poster.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	start := time.Now()
	png, err := s.renderer.Render(ctx, s.planner.Snapshot())
	if err != nil {
		s.exportFailed(w, "poster", err)
		return
	}
	appLog.Info("poster exported", "bytes", len(png), "elapsed", time.Since(start).String())

	attachment(w, "image/png", poster.FileName)
	_, _ = w.Write(png)
}

// GET /poster shows the page the PNG export is captured from.
func (s *Server) handlePosterHTML(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := poster.WriteHTML(&buf, s.renderer.View(s.planner.Snapshot())); err != nil {
		appLog.Error("poster page render failed", err)
		writeError(w, http.StatusInternalServerError, "failed to render poster")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// exportFailed reports a failed export to the user and the client. The plan
// itself is untouched.
func (s *Server) exportFailed(w http.ResponseWriter, format string, err error) {
	appLog.Error("export failed", err, "format", format)
	s.queue.Notify("Export failed", "Your weekend plan could not be exported.", notify.KindDestructive)
	writeError(w, http.StatusInternalServerError, "export failed")
}
