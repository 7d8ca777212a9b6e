package bmo

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/padenot/fx-release-analyzer/pkg/model"
)

// ToolError records one failed bmo-to-md invocation. It is recoverable: the
// bugs in the batch fall back to stub entries and the run continues.
type ToolError struct {
	Batch []int
	Err   error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("bmo-to-md failed for batch %v: %v", e.Batch, e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }

// Enricher shells out to bmo-to-md to turn bug IDs into markdown. The tool
// reads BMO_API_KEY from its own environment; this program never talks to
// Bugzilla for bug detail directly.
type Enricher struct {
	Path      string
	BatchSize int
}

// Probe checks that the tool can be executed at all. Callers treat a probe
// failure as a warning, not an abort: every bug would degrade to a stub,
// which is still a valid (if thin) analysis.
func (e Enricher) Probe() error {
	cmd := exec.Command(e.Path, "--help")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s not available: %w", e.Path, err)
	}
	return nil
}

// Enrich fetches markdown for each bug ID, preserving input order. IDs the
// tool cannot format come back as stubs. The returned error aggregates any
// batch failures for the caller to log; the bug list is complete either way.
func (e Enricher) Enrich(ids []int) ([]model.EnrichedBug, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	batchSize := e.BatchSize
	if batchSize <= 0 {
		batchSize = 50
	}

	byID := make(map[int]string)
	var errs []error
	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		out, err := e.runBatch(batch)
		if err != nil {
			errs = append(errs, &ToolError{Batch: batch, Err: err})
			continue
		}
		for id, markdown := range splitByBug(out, batch) {
			byID[id] = markdown
		}
	}

	bugs := make([]model.EnrichedBug, 0, len(ids))
	for _, id := range ids {
		if markdown, ok := byID[id]; ok {
			bugs = append(bugs, model.EnrichedBug{ID: id, Markdown: markdown})
			continue
		}
		bugs = append(bugs, model.EnrichedBug{
			ID:       id,
			Markdown: fmt.Sprintf("Bug %d: (details unavailable)", id),
			Stub:     true,
		})
	}
	return bugs, errors.Join(errs...)
}

func (e Enricher) runBatch(batch []int) (string, error) {
	args := make([]string, len(batch))
	for i, id := range batch {
		args[i] = strconv.Itoa(id)
	}

	// bmo-to-md takes a comma-joined ID list as a single argument.
	out, err := exec.Command(e.Path, strings.Join(args, ",")).Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}

// splitByBug carves the tool's combined output into per-bug sections. Bugs
// are delimited by "# Bug <id>" headers; content before the first header or
// under an unexpected ID is dropped.
func splitByBug(markdown string, wanted []int) map[int]string {
	wantedSet := make(map[int]struct{}, len(wanted))
	for _, id := range wanted {
		wantedSet[id] = struct{}{}
	}

	sections := make(map[int]string)
	currentID := 0
	var current []string

	flush := func() {
		if currentID != 0 && len(current) > 0 {
			sections[currentID] = strings.TrimSpace(strings.Join(current, "\n"))
		}
		currentID = 0
		current = nil
	}

	for _, line := range strings.Split(markdown, "\n") {
		if strings.HasPrefix(line, "# Bug ") {
			flush()
			rest := strings.TrimPrefix(line, "# Bug ")
			fields := strings.Fields(rest)
			if len(fields) == 0 {
				continue
			}
			id, err := strconv.Atoi(strings.TrimSuffix(fields[0], ":"))
			if err != nil {
				continue
			}
			if _, ok := wantedSet[id]; !ok {
				continue
			}
			currentID = id
			current = []string{line}
			continue
		}
		if currentID != 0 {
			current = append(current, line)
		}
	}
	flush()

	return sections
}
