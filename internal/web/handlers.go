package web

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/JonMunkholm/cloudsaver/internal/core"
	"github.com/JonMunkholm/cloudsaver/internal/logging"
	"github.com/JonMunkholm/cloudsaver/internal/report"
)

// multipartMemory is how much of a multipart body is kept in memory before
// parts spill to temporary files.
const multipartMemory = 8 << 20

type rootResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, rootResponse{Message: "CloudSaver (CS) backend running"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, s.limiter.Status())
}

// handleAnalyze accepts one or more "files" parts and returns the analysis.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	files, err := s.readUploads(w, r)
	if err != nil {
		s.metrics.ObserveAnalysis(time.Since(start), nil, err)
		respondError(w, r, err)
		return
	}

	var analysis *core.Analysis
	err = s.limiter.Do(r.Context(), func() error {
		var aerr error
		analysis, aerr = core.Analyze(files)
		return aerr
	})
	s.metrics.ObserveAnalysis(time.Since(start), analysis, err)
	if err != nil {
		respondError(w, r, err)
		return
	}

	logging.WithFields(r.Context(), "files", len(files)).Info("analysis complete",
		"suggestions", len(analysis.Suggestions),
		"total_cost", analysis.Summary.TotalCost,
		"total_saving", analysis.Summary.TotalSaving,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	writeJSON(w, r, analysis)
}

// readUploads reads every "files" part of a size-limited multipart body.
func (s *Server) readUploads(w http.ResponseWriter, r *http.Request) ([]core.File, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: request exceeds %d bytes", core.ErrFileTooLarge, tooLarge.Limit)
		}
		return nil, fmt.Errorf("%w: %v", core.ErrNoFiles, err)
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		return nil, core.ErrNoFiles
	}
	if len(headers) > s.cfg.Upload.MaxFiles {
		return nil, fmt.Errorf("%w: got %d, limit is %d", core.ErrTooManyFiles, len(headers), s.cfg.Upload.MaxFiles)
	}

	files := make([]core.File, 0, len(headers))
	for _, fh := range headers {
		data, err := readPart(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, core.File{Name: fh.Filename, Data: data})
	}
	return files, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	return data, nil
}

// handleDownloadReport renders the posted {summary, suggestions} document
// as a CSV or PDF attachment. The format is checked before the body so an
// unsupported format is reported even for an empty document.
func (s *Server) handleDownloadReport(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.metrics.ObserveReport(r.URL.Query().Get("format"), err)
		respondError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)
	doc, err := report.DecodeDocument(r.Body)
	if err == nil {
		err = doc.Validate()
	}
	if err != nil {
		s.metrics.ObserveReport(string(format), err)
		respondError(w, r, err)
		return
	}

	var res *report.Result
	err = s.limiter.Do(r.Context(), func() error {
		var rerr error
		res, rerr = s.renderer.Render(format, doc)
		return rerr
	})
	s.metrics.ObserveReport(string(format), err)
	if err != nil {
		respondError(w, r, err)
		return
	}

	logging.WithFields(r.Context(), "report_id", res.ID.String()).Info("report generated",
		"format", string(res.Format),
		"suggestions", len(doc.Suggestions),
		"bytes", len(res.Body),
	)

	h := w.Header()
	h.Set("Content-Type", res.ContentType())
	h.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, res.Filename()))
	h.Set("X-Report-ID", res.ID.String())
	w.WriteHeader(http.StatusOK)
	w.Write(res.Body)
}
