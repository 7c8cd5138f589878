package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/docforge/pdfconvert/internal/office"
	"github.com/docforge/pdfconvert/internal/pdfops"
	"github.com/docforge/pdfconvert/internal/pipeline"
	"github.com/docforge/pdfconvert/internal/taskstore"
)

// taskView is the JSON shape of a task record.
type taskView struct {
	JobID      string `json:"job_id"`
	Operation  string `json:"operation"`
	TargetKind string `json:"target_kind,omitempty"`
	SourceName string `json:"source_name,omitempty"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	ResultURL  string `json:"result_url,omitempty"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func viewOf(t *taskstore.Task) taskView {
	v := taskView{
		JobID:      t.ID,
		Operation:  t.Operation,
		TargetKind: t.TargetKind,
		SourceName: t.SourceName,
		Status:     string(t.Status),
		Error:      t.Error,
		CreatedAt:  t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  t.UpdatedAt.Format(time.RFC3339),
	}
	if t.Status == taskstore.StatusCompleted && t.ResultName != "" {
		v.ResultURL = fmt.Sprintf("/api/jobs/%s/download", t.ID)
	}
	return v
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1<<20)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	opName := r.FormValue("operation")
	if opName == "" {
		opName = string(pipeline.OpConvert)
	}
	op, err := pipeline.ParseOperation(opName)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	job := &pipeline.Job{
		ID:        pipeline.NewJobID(),
		Operation: op,
		Password:  r.FormValue("password"),
		Watermark: r.FormValue("text"),
	}
	if v := r.FormValue("span"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			job.SplitSpan = n
		}
	}

	if op == pipeline.OpConvert {
		kind, err := office.ParseKind(r.FormValue("target"))
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		job.Kind = kind
	}

	files := r.MultipartForm.File["file"]
	switch {
	case len(files) == 0:
		jsonError(w, "file is required", http.StatusBadRequest)
		return
	case op == pipeline.OpMerge && len(files) < 2:
		jsonError(w, "merge needs at least two files", http.StatusBadRequest)
		return
	case op != pipeline.OpMerge && len(files) > 1:
		jsonError(w, fmt.Sprintf("%s takes a single file", op), http.StatusBadRequest)
		return
	}

	// pdfcpu-backed operations need documents the library can open; the
	// conversion scanner copes with structural damage on its own.
	strict := op != pipeline.OpConvert
	for _, fh := range files {
		data, err := s.readUpload(fh)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := pdfops.Validate(data, strict); err != nil {
			jsonError(w, fmt.Sprintf("%s: %s", fh.Filename, err), http.StatusBadRequest)
			return
		}
		job.Sources = append(job.Sources, data)
	}
	job.SourceName = filepath.Base(files[0].Filename)

	task := &taskstore.Task{
		ID:         job.ID,
		Operation:  string(job.Operation),
		TargetKind: string(job.Kind),
		SourceName: job.SourceName,
	}
	if err := s.tasks.Create(r.Context(), task); err != nil {
		s.log.Error("task create failed", "error", err)
		jsonError(w, "could not record task", http.StatusInternalServerError)
		return
	}

	if err := s.orch.Submit(job); err != nil {
		_ = s.tasks.SetStatus(r.Context(), job.ID, taskstore.StatusFailed, err.Error())
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   taskstore.StatusQueued,
		"poll_url": fmt.Sprintf("/api/jobs/%s", job.ID),
	})
}

func (s *Server) readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("%s exceeds max size (%d bytes)", fh.Filename, s.cfg.MaxUploadBytes)
	}
	return data, nil
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.List(r.Context(), s.cfg.TaskHistory)
	if err != nil {
		s.log.Error("task list failed", "error", err)
		jsonError(w, "could not list tasks", http.StatusInternalServerError)
		return
	}
	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, viewOf(t))
	}
	jsonWrite(w, http.StatusOK, map[string]any{"jobs": views})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "jobID")
	task, err := s.tasks.Get(r.Context(), id)
	if errors.Is(err, taskstore.ErrNotFound) {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("task fetch failed", "job_id", id, "error", err)
		jsonError(w, "could not fetch task", http.StatusInternalServerError)
		return
	}
	jsonWrite(w, http.StatusOK, viewOf(task))
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "jobID")
	task, err := s.tasks.Get(r.Context(), id)
	if errors.Is(err, taskstore.ErrNotFound) {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, "could not fetch task", http.StatusInternalServerError)
		return
	}
	if task.Status != taskstore.StatusCompleted || task.ResultName == "" {
		jsonError(w, fmt.Sprintf("job is %s, no result available", task.Status), http.StatusConflict)
		return
	}

	data, err := s.store.Read(task.ResultName)
	if err != nil {
		s.log.Error("result read failed", "job_id", id, "error", err)
		jsonError(w, "result file unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", resultMIMEType(task.ResultName))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", task.ResultName))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

// resultMIMEType maps a result filename to its media type.
func resultMIMEType(name string) string {
	switch filepath.Ext(name) {
	case ".docx":
		return office.KindWord.MIMEType()
	case ".pptx":
		return office.KindPowerPoint.MIMEType()
	case ".xlsx":
		return office.KindExcel.MIMEType()
	case ".zip":
		return "application/zip"
	default:
		return "application/pdf"
	}
}

func jsonWrite(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	jsonWrite(w, status, map[string]string{"error": msg})
}
