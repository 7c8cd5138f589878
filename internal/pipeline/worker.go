package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/docforge/pdfconvert/internal/convert"
	"github.com/docforge/pdfconvert/internal/pdfops"
	"github.com/docforge/pdfconvert/internal/storage"
	"github.com/docforge/pdfconvert/internal/taskstore"
)

// Worker executes one job at a time: runs the operation, stores the result
// file and advances the task record.
type Worker struct {
	converter *convert.Service
	ops       *pdfops.Service
	store     *storage.Store
	tasks     *taskstore.Store
	log       *slog.Logger
}

// NewWorker wires a worker over the shared services.
func NewWorker(converter *convert.Service, ops *pdfops.Service, store *storage.Store, tasks *taskstore.Store, log *slog.Logger) *Worker {
	return &Worker{
		converter: converter,
		ops:       ops,
		store:     store,
		tasks:     tasks,
		log:       log,
	}
}

// Process runs the job to completion and records the outcome. Failures are
// terminal: the transformation is deterministic, so a retry with the same
// input would reproduce the same result.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "operation", job.Operation)

	if err := w.tasks.SetStatus(ctx, job.ID, taskstore.StatusProcessing, ""); err != nil {
		log.Error("task transition failed", "error", err)
	}

	result, ext, err := w.run(job)
	if err != nil {
		log.Error("job failed", "error", err)
		w.fail(ctx, job.ID, err)
		return
	}

	resultName := job.ID + ext
	if _, err := w.store.Save(resultName, result); err != nil {
		log.Error("result write failed", "error", err)
		w.fail(ctx, job.ID, err)
		return
	}
	if err := w.tasks.SetResult(ctx, job.ID, resultName); err != nil {
		log.Error("task update failed", "error", err)
	}
	if err := w.tasks.SetStatus(ctx, job.ID, taskstore.StatusCompleted, ""); err != nil {
		log.Error("task transition failed", "error", err)
	}
	log.Info("job completed", "result", resultName, "bytes", len(result))
}

func (w *Worker) fail(ctx context.Context, id string, cause error) {
	if err := w.tasks.SetStatus(ctx, id, taskstore.StatusFailed, cause.Error()); err != nil {
		w.log.Error("task transition failed", "job_id", id, "error", err)
	}
}

// run dispatches to the operation implementation and returns the result
// bytes with their file extension.
func (w *Worker) run(job *Job) ([]byte, string, error) {
	if len(job.Sources) == 0 {
		return nil, "", fmt.Errorf("job has no source document")
	}
	source := job.Sources[0]

	switch job.Operation {
	case OpConvert:
		res, err := w.converter.Convert(convert.Request{Source: source, Kind: job.Kind})
		if err != nil {
			return nil, "", err
		}
		return res.Data, job.Kind.Extension(), nil
	case OpMerge:
		out, err := w.ops.Merge(job.Sources)
		return out, ".pdf", err
	case OpSplit:
		out, err := w.ops.Split(source, job.SplitSpan)
		return out, ".zip", err
	case OpCompress:
		out, err := w.ops.Compress(source)
		return out, ".pdf", err
	case OpEncrypt:
		out, err := w.ops.Encrypt(source, job.Password)
		return out, ".pdf", err
	case OpDecrypt:
		out, err := w.ops.Decrypt(source, job.Password)
		return out, ".pdf", err
	case OpWatermark:
		out, err := w.ops.Watermark(source, job.Watermark)
		return out, ".pdf", err
	}
	return nil, "", fmt.Errorf("unknown operation %q", job.Operation)
}
