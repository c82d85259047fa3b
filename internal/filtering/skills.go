package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/recruitgenius/recruit-cli/internal/recruit"
)

type skillsFilter struct {
	disabled bool
	reason   string
	skills   []string
}

// NewSkills creates a filter that keeps candidates listing every configured
// skill. Matching ignores case and surrounding whitespace.
func NewSkills() Filter {
	return &skillsFilter{}
}

func (f *skillsFilter) Name() string { return "skills" }

func (f *skillsFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *skillsFilter) IsEnabled() bool { return !f.disabled }

func (f *skillsFilter) Validate(cfg *Config) error {
	f.skills = nil
	if cfg == nil {
		return nil
	}
	for _, s := range cfg.Skills {
		if s = normalizeSkill(s); s != "" {
			f.skills = append(f.skills, s)
		}
	}
	return nil
}

func (f *skillsFilter) Apply(_ context.Context, deps Deps, c *recruit.Candidates) (*recruit.Candidates, Step, error) {
	initial := c.Len()
	if len(f.skills) == 0 {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	dropped := c.Keep(func(candidate *recruit.Candidate) bool {
		have := make(map[string]struct{}, len(candidate.Skills))
		for _, s := range candidate.Skills {
			have[normalizeSkill(s)] = struct{}{}
		}
		for _, want := range f.skills {
			if _, ok := have[want]; !ok {
				return false
			}
		}
		return true
	})
	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Debug("excluding candidates by skills",
			zap.Strings("skills", f.skills),
			zap.Ints("excluded_candidates", dropped),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(dropped), Left: c.Len()}, nil
}

func (f *skillsFilter) Status() Status {
	details := map[string]string{}
	if len(f.skills) > 0 {
		details["skills"] = strings.Join(f.skills, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

func normalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
