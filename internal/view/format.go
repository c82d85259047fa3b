package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/recruitgenius/recruit-cli/internal/recruit"
)

// SkillPreviewSize is how many skills a preview shows before "+N more".
const SkillPreviewSize = 5

type SkillPreview struct {
	Shown []string `json:"shown" yaml:"shown"`
	More  int      `json:"more,omitempty" yaml:"more,omitempty"`
}

// Marker returns "+N more" for hidden skills, or "" when none are hidden.
func (p SkillPreview) Marker() string {
	if p.More <= 0 {
		return ""
	}
	return fmt.Sprintf("+%d more", p.More)
}

// PreviewSkills caps a skill list to SkillPreviewSize entries. Every skill
// preview goes through here.
func PreviewSkills(skills []string) SkillPreview {
	if len(skills) <= SkillPreviewSize {
		return SkillPreview{Shown: skills}
	}
	return SkillPreview{
		Shown: skills[:SkillPreviewSize],
		More:  len(skills) - SkillPreviewSize,
	}
}

// FileSize prints a byte count as B, KB or MB with two decimals.
func FileSize(bytes int64) string {
	const unit = 1024
	switch {
	case bytes < unit:
		return fmt.Sprintf("%d B", bytes)
	case bytes < unit*unit:
		return fmt.Sprintf("%.2f KB", float64(bytes)/unit)
	default:
		return fmt.Sprintf("%.2f MB", float64(bytes)/(unit*unit))
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// Date formats an API timestamp as "Jan 2, 2006", or "January 2, 2006" when
// long is set. Input that does not parse is returned unchanged.
func Date(s string, long bool) string {
	layout := "Jan 2, 2006"
	if long {
		layout = "January 2, 2006"
	}

	for _, in := range dateLayouts {
		if t, err := time.Parse(in, strings.TrimSpace(s)); err == nil {
			return t.Format(layout)
		}
	}
	return s
}

// Tone is the badge color family of a status.
type Tone string

const (
	ToneSky     Tone = "sky"
	ToneAmber   Tone = "amber"
	ToneViolet  Tone = "violet"
	ToneGreen   Tone = "green"
	ToneNeutral Tone = "neutral"
)

var statusTones = map[string]Tone{
	// candidates
	"new":         ToneSky,
	"reviewing":   ToneAmber,
	"shortlisted": ToneViolet,
	"hired":       ToneGreen,
	"rejected":    ToneNeutral,
	// jobs
	"active": ToneGreen,
	"draft":  ToneAmber,
	"closed": ToneNeutral,
}

// StatusTone maps a candidate or job status to its badge tone. Unknown
// statuses are neutral.
func StatusTone(status string) Tone {
	if tone, ok := statusTones[strings.ToLower(status)]; ok {
		return tone
	}
	return ToneNeutral
}

const excerptLength = 200

// Excerpt strips markdown markers from a job description and keeps the first
// 200 characters followed by "...". The ellipsis is always added.
func Excerpt(description string) string {
	plain := strings.NewReplacer("#", "", "*", "").Replace(description)
	runes := []rune(plain)
	if len(runes) > excerptLength {
		runes = runes[:excerptLength]
	}
	return string(runes) + "..."
}

// Language is the language badge of a CV, "DE → EN" when it was translated.
func Language(cv *recruit.CVDetail) string {
	lang := strings.ToUpper(cv.OriginalLanguage)
	if cv.IsTranslated {
		lang += " → EN"
	}
	return lang
}

// CVText returns the title and body of the full text block of a CV,
// preferring the translation when there is one.
func CVText(cv *recruit.CVDetail) (string, string) {
	if cv.IsTranslated {
		return "Translated CV", cv.TranslatedText
	}
	return "Original CV", cv.OriginalText
}
