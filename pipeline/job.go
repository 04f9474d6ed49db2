package pipeline

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/audiodigest/errors"
)

// TimestampLayout formats the job timestamp embedded in output filenames.
const TimestampLayout = "20060102_150405"

var supportedExtensions = []string{"mp3", "mp4", "mpeg", "mpga", "m4a", "wav", "webm"}

// Job is one invocation of the pipeline for a single input file.
type Job struct {
	ID        string
	InputPath string
	// BaseName is the file name without directory and final extension. A
	// dot-file such as ".wav" keeps its full name.
	BaseName string
	// Timestamp is shared by every output file of the job.
	Timestamp string
	// Extension is the lower-cased input extension without the dot.
	Extension string
}

// NewJob validates the extension of path and builds a Job stamped with now.
// It performs no I/O.
func NewJob(path string, now time.Time) (Job, error) {
	if !IsSupportedFormat(path) {
		return Job{}, errors.UnsupportedFormat(path, SupportedExtensions())
	}
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if base == "" {
		base = name
	}
	return Job{
		ID:        uuid.NewString(),
		InputPath: path,
		BaseName:  base,
		Timestamp: now.Format(TimestampLayout),
		Extension: strings.ToLower(strings.TrimPrefix(ext, ".")),
	}, nil
}

// IsSupportedFormat reports whether path ends in an accepted audio extension,
// ignoring case.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	return ext != "" && slices.Contains(supportedExtensions, ext)
}

// SupportedExtensions returns the accepted extensions without leading dots.
func SupportedExtensions() []string {
	return slices.Clone(supportedExtensions)
}

// OutputFilename returns "{base}_{suffix}_{ts}.{ext}".
func OutputFilename(base, suffix, ext, ts string) string {
	return fmt.Sprintf("%s_%s_%s.%s", base, suffix, ts, ext)
}

// OutputFilename names the job's output for suffix and ext.
func (j Job) OutputFilename(suffix, ext string) string {
	return OutputFilename(j.BaseName, suffix, ext, j.Timestamp)
}
