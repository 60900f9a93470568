package ops

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jacksmith/todo/internal/model"
)

// IssueType represents the kind of problem found in persisted data.
type IssueType string

const (
	IssueCorrupt     IssueType = "corrupt"
	IssueDuplicateID IssueType = "duplicate_id"
	IssueMissingID   IssueType = "missing_id"
	IssueLegacyID    IssueType = "legacy_id"
	IssueEmptyName   IssueType = "empty_name"
	IssueUnsorted    IssueType = "unsorted"
)

// Issue is one problem found by Validate.
type Issue struct {
	Type    IssueType
	TaskID  string
	Message string
}

func (i Issue) String() string {
	if i.TaskID != "" {
		return fmt.Sprintf("%s: %s - %s", i.TaskID, i.Type, i.Message)
	}
	return fmt.Sprintf("%s - %s", i.Type, i.Message)
}

// Fatal reports whether the issue makes the persisted list unloadable.
func (i Issue) Fatal() bool {
	return i.Type == IssueCorrupt
}

// ValidationReport summarizes the persisted task list.
type ValidationReport struct {
	Present bool // a value was stored under TasksKey
	Tasks   int
	Issues  []Issue
}

// OK reports whether no fatal issue was found.
func (r *ValidationReport) OK() bool {
	for _, i := range r.Issues {
		if i.Fatal() {
			return false
		}
	}
	return true
}

// rawTask mirrors model.Task without the ID assignment Hydrate performs.
type rawTask struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Importance model.Importance `json:"importance"`
}

// Validate inspects the persisted task list without modifying it.
// Only read failures are returned as errors; data problems become issues.
func Validate(ctx context.Context, s Store) (*ValidationReport, error) {
	raw, ok, err := s.Get(ctx, TasksKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read task list: %w", err)
	}

	report := &ValidationReport{Present: ok}
	if !ok || raw == "" {
		return report, nil
	}

	if _, err := model.Hydrate(&raw); err != nil {
		var cerr *model.CorruptStateError
		if errors.As(err, &cerr) {
			report.Issues = append(report.Issues, Issue{Type: IssueCorrupt, Message: cerr.Err.Error()})
			return report, nil
		}
		return nil, err
	}

	var records []rawTask
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		report.Issues = append(report.Issues, Issue{Type: IssueCorrupt, Message: err.Error()})
		return report, nil
	}
	report.Tasks = len(records)

	seen := make(map[string]bool)
	for i, r := range records {
		switch {
		case r.ID == "":
			report.Issues = append(report.Issues, Issue{
				Type:    IssueMissingID,
				Message: fmt.Sprintf("task %d (%q) has no id; one is assigned on next load", i, r.Name),
			})
		case seen[r.ID]:
			report.Issues = append(report.Issues, Issue{
				Type:    IssueDuplicateID,
				TaskID:  r.ID,
				Message: "id is used by more than one task",
			})
		case !model.IsUUID(r.ID):
			report.Issues = append(report.Issues, Issue{
				Type:    IssueLegacyID,
				TaskID:  r.ID,
				Message: "id is not a uuid",
			})
		}
		if r.ID != "" {
			seen[r.ID] = true
		}

		if err := model.ValidateName(r.Name); err != nil {
			report.Issues = append(report.Issues, Issue{
				Type:    IssueEmptyName,
				TaskID:  r.ID,
				Message: "task has no name",
			})
		}
	}

	for i := 1; i < len(records); i++ {
		if records[i-1].Importance.Rank() > records[i].Importance.Rank() {
			report.Issues = append(report.Issues, Issue{
				Type:    IssueUnsorted,
				Message: "stored order is not sorted by importance; it is re-sorted on load",
			})
			break
		}
	}

	return report, nil
}
