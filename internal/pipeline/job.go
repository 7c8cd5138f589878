// Package pipeline queues document jobs and runs them on a worker pool.
// Job bookkeeping lives in the task store; this package owns only the
// in-flight payloads and dispatch.
package pipeline

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/docforge/pdfconvert/internal/office"
)

// Operation is the kind of work a job performs.
type Operation string

const (
	OpConvert   Operation = "convert"
	OpMerge     Operation = "merge"
	OpSplit     Operation = "split"
	OpCompress  Operation = "compress"
	OpEncrypt   Operation = "encrypt"
	OpDecrypt   Operation = "decrypt"
	OpWatermark Operation = "watermark"
)

// ParseOperation maps a user-supplied operation name to an Operation.
func ParseOperation(s string) (Operation, error) {
	switch Operation(s) {
	case OpConvert, OpMerge, OpSplit, OpCompress, OpEncrypt, OpDecrypt, OpWatermark:
		return Operation(s), nil
	}
	return "", fmt.Errorf("unknown operation %q", s)
}

// Job is one queued unit of work. Sources holds the uploaded document
// bytes; merge jobs carry several, all others exactly one.
type Job struct {
	ID        string
	Operation Operation

	// Convert only.
	Kind office.Kind

	// Operation parameters.
	Password  string
	Watermark string
	SplitSpan int

	SourceName string
	Sources    [][]byte
}

// NewJobID returns a random 128-bit hex job identifier.
func NewJobID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms
		panic(fmt.Sprintf("rand: %v", err))
	}
	return hex.EncodeToString(b[:])
}
