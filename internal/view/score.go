package view

import (
	"math"
	"strconv"

	"github.com/recruitgenius/recruit-cli/internal/recruit"
)

// Grade buckets an aggregate match score for display.
type Grade int

const (
	Poor Grade = iota
	Warn
	Good
)

const (
	goodThreshold = 70
	warnThreshold = 50
)

func (g Grade) String() string {
	switch g {
	case Good:
		return "good"
	case Warn:
		return "warn"
	default:
		return "poor"
	}
}

func (g Grade) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// ColorClass grades a 0..100 match score: 70 and above is good, 50 and above
// is warn, everything else is poor.
func ColorClass(score float64) Grade {
	switch {
	case score >= goodThreshold:
		return Good
	case score >= warnThreshold:
		return Warn
	default:
		return Poor
	}
}

const (
	ChipLowSkills      = "Low Skills Match"
	ChipLowConfidence  = "Low AI Confidence"
	ChipEmploymentGaps = "Employment Gaps"
)

// FlagChips lists the warning chips for the flags the API set. The flags are
// taken as they are; scores are never re-checked here.
func FlagChips(flags recruit.ThresholdFlags) []string {
	var chips []string
	if flags.SkillsBelow70 {
		chips = append(chips, ChipLowSkills)
	}
	if flags.ConfidenceBelow80 {
		chips = append(chips, ChipLowConfidence)
	}
	if flags.EmploymentGapsDetected {
		chips = append(chips, ChipEmploymentGaps)
	}
	return chips
}

// Metric is one cell of the sub-score grid of a match card.
type Metric struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Score formats the aggregate match score with one decimal.
func Score(score float64) string {
	return fixed(score, 1) + "%"
}

func Metrics(c *recruit.MatchingCandidate) []Metric {
	return []Metric{
		{Label: "Skills Match", Value: number(c.SkillsMatchScore) + "%"},
		{Label: "Experience", Value: number(c.ExperienceRelevanceScore) + "/10"},
		{Label: "Education", Value: number(c.EducationFitScore) + "/10"},
		{Label: "AI Confidence", Value: fixed(c.AIConfidenceScore, 0) + "%"},
	}
}

// fixed rounds half away from zero before formatting, so 0.25 shows as 0.3.
func fixed(v float64, decimals int) string {
	pow := math.Pow(10, float64(decimals))
	return strconv.FormatFloat(math.Round(v*pow)/pow, 'f', decimals, 64)
}

// number prints v with the shortest representation, 85 rather than 85.000000.
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
