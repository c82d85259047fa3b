package filtering

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/recruitgenius/recruit-cli/internal/recruit"
)

// Statuses a candidate can be in.
var knownStatuses = []string{"new", "reviewing", "shortlisted", "hired", "rejected"}

type statusFilter struct {
	disabled bool
	reason   string
	statuses []string
}

// NewStatus creates a filter that keeps candidates in one of the configured
// statuses. Matching ignores case.
func NewStatus() Filter {
	return &statusFilter{}
}

func (f *statusFilter) Name() string { return "status" }

func (f *statusFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *statusFilter) IsEnabled() bool { return !f.disabled }

func (f *statusFilter) Validate(cfg *Config) error {
	f.statuses = nil
	if cfg == nil {
		return nil
	}
	for _, s := range cfg.Statuses {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if !slices.Contains(knownStatuses, s) {
			return fmt.Errorf("unknown status %q, expected one of %s", s, strings.Join(knownStatuses, ", "))
		}
		f.statuses = append(f.statuses, s)
	}
	return nil
}

func (f *statusFilter) Apply(_ context.Context, deps Deps, c *recruit.Candidates) (*recruit.Candidates, Step, error) {
	initial := c.Len()
	if len(f.statuses) == 0 {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	dropped := c.Keep(func(candidate *recruit.Candidate) bool {
		return slices.Contains(f.statuses, strings.ToLower(strings.TrimSpace(candidate.Status)))
	})
	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Debug("excluding candidates by status",
			zap.Strings("statuses", f.statuses),
			zap.Ints("excluded_candidates", dropped),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(dropped), Left: c.Len()}, nil
}

func (f *statusFilter) Status() Status {
	details := map[string]string{}
	if len(f.statuses) > 0 {
		details["statuses"] = strings.Join(f.statuses, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
