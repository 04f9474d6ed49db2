package bootstrap

import (
	"fmt"
	"time"

	"github.com/kbukum/audiodigest/logger"
)

// Step is one tracked outcome of a task, such as a written file.
type Step struct {
	Name   string
	Detail string
	OK     bool
}

// Summary collects what a task did so it can be reported when it ends.
type Summary struct {
	name     string
	version  string
	duration time.Duration
	steps    []Step
}

// NewSummary creates a summary for the named application.
func NewSummary(name, version string) *Summary {
	return &Summary{name: name, version: version}
}

// Track records a step.
func (s *Summary) Track(name, detail string, ok bool) {
	s.steps = append(s.steps, Step{Name: name, Detail: detail, OK: ok})
}

// SetDuration records how long the task ran.
func (s *Summary) SetDuration(d time.Duration) {
	s.duration = d
}

// Display logs one line per step followed by a totals line.
func (s *Summary) Display(log *logger.Logger) {
	failed := 0
	for _, st := range s.steps {
		fields := map[string]interface{}{"step": st.Name, "detail": st.Detail}
		if st.OK {
			log.Info(fmt.Sprintf("%s %s", statusIcon(true), st.Name), fields)
		} else {
			failed++
			log.Warn(fmt.Sprintf("%s %s", statusIcon(false), st.Name), fields)
		}
	}
	log.Info("Run finished", map[string]interface{}{
		"name":                s.name,
		"version":             s.version,
		"steps":               len(s.steps),
		"failed":              failed,
		logger.FieldDuration: s.duration.Milliseconds(),
	})
}

func statusIcon(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
