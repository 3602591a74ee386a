package vacancy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// LoadOptions configures the patch store loader.
type LoadOptions struct {
	// PatchesDir holds one vacancy-*.json document per posting.
	PatchesDir string
	// StatusFile is the externally tracked lifecycle index. Missing file is
	// fine: every vacancy then defaults to published.
	StatusFile string
	// IncludeClosed keeps closed postings in the result.
	IncludeClosed bool
}

type patchDocument struct {
	PageID     string         `json:"page_id"`
	Properties map[string]any `json:"properties"`
}

type statusEntry struct {
	PageID string `json:"page_id"`
	Status string `json:"status"`
}

// LoadStatuses reads the lifecycle status index, mapping page id to status.
func LoadStatuses(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read status index: %w", err)
	}

	var entries []statusEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode status index %q: %w", path, err)
	}

	statuses := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.PageID != "" {
			statuses[e.PageID] = e.Status
		}
	}
	return statuses, nil
}

// Load reads every vacancy patch document, joins the lifecycle status and
// filters closed postings unless overridden. Records are independent; the
// result order follows the sorted file names.
func Load(opts LoadOptions, logger *zap.Logger) ([]*Vacancy, error) {
	pattern := filepath.Join(opts.PatchesDir, "vacancy-*.json")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	statuses := map[string]string{}
	if !opts.IncludeClosed {
		if statuses, err = LoadStatuses(opts.StatusFile); err != nil {
			return nil, err
		}
	}

	var vacancies []*Vacancy
	closed := 0

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read patch %q: %w", path, err)
		}

		var doc patchDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode patch %q: %w", path, err)
		}

		status, ok := statuses[doc.PageID]
		if !ok || status == "" {
			status = StatusPublished
		}

		if !opts.IncludeClosed && status == StatusClosed {
			closed++
			continue
		}

		reqs, warnings, err := DecodeRequirements(doc.Properties)
		if err != nil {
			return nil, fmt.Errorf("patch %q: %w", path, err)
		}

		vacancies = append(vacancies, &Vacancy{
			PageID:       doc.PageID,
			File:         filepath.Base(path),
			Status:       status,
			Requirements: reqs,
			Warnings:     warnings,
		})
	}

	if closed > 0 && logger != nil {
		logger.Info("excluding closed vacancies", zap.Int("count", closed))
	}

	return vacancies, nil
}
