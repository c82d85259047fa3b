package app

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/recruitgenius/recruit-cli/internal/markdown"
	"github.com/recruitgenius/recruit-cli/internal/recruit"
)

const (
	saveNotification = "save-job"

	// ErrorDocument replaces the draft when generation fails.
	ErrorDocument = "# Error\n\nFailed to generate job description. Please try again."

	MsgGenerateFailed = "Failed to generate job description"
	MsgNothingToSave  = "No job description to save"
	MsgSaving         = "Saving job description..."
	MsgSaved          = "Job description saved successfully!"
	MsgSaveFailed     = "Failed to save job description. Please try again."
)

// OfferGenerator drafts a job description through the generator chat. The
// draft can be edited locally before it is saved.
type OfferGenerator struct {
	env

	markdown   string
	editable   string
	editing    bool
	threadID   string
	generating bool
	saving     bool
}

func NewOfferGenerator(backend Backend, notifier Notifier, log *zap.Logger) *OfferGenerator {
	return &OfferGenerator{env: newEnv(backend, notifier, log, "job_offer")}
}

// Generate sends prompt to the generator and replaces the draft with the
// reply. Blank prompts are ignored.
func (g *OfferGenerator) Generate(ctx context.Context, prompt string) {
	if strings.TrimSpace(prompt) == "" || g.generating {
		return
	}

	g.generating = true
	g.editing = false
	defer func() { g.generating = false }()

	reply, err := g.backend.JobDescriptionChat(ctx, g.threadID, prompt)
	if err != nil {
		g.markdown = ErrorDocument
		g.fail("", MsgGenerateFailed, err)
		return
	}

	g.markdown = reply.Text
	if reply.ThreadID != "" {
		g.threadID = reply.ThreadID
	}
}

// Edit starts editing from the current draft.
func (g *OfferGenerator) Edit() {
	g.editing = true
	g.editable = g.markdown
}

// SetDraft replaces the text being edited. It has no effect outside editing.
func (g *OfferGenerator) SetDraft(text string) {
	if g.editing {
		g.editable = text
	}
}

// Apply keeps the edited text as the draft.
func (g *OfferGenerator) Apply() {
	if !g.editing {
		return
	}
	g.markdown = g.editable
	g.editing = false
}

// Cancel drops the edits.
func (g *OfferGenerator) Cancel() {
	g.editable = g.markdown
	g.editing = false
}

// Save asks the generator to persist the draft and clears the page on
// success. It returns whether the draft was saved.
func (g *OfferGenerator) Save(ctx context.Context) bool {
	if strings.TrimSpace(g.markdown) == "" || g.threadID == "" {
		g.notifier.Notify(Notification{Level: LevelError, Message: MsgNothingToSave})
		return false
	}
	if g.saving {
		return false
	}

	g.saving = true
	defer func() { g.saving = false }()

	g.notifier.Notify(Notification{Level: LevelLoading, ID: saveNotification, Message: MsgSaving})

	if _, err := g.backend.JobDescriptionChat(ctx, g.threadID, recruit.SaveInstruction); err != nil {
		g.fail(saveNotification, MsgSaveFailed, err)
		return false
	}

	g.notifier.Notify(Notification{Level: LevelSuccess, ID: saveNotification, Message: MsgSaved})
	g.markdown = ""
	g.editable = ""
	g.threadID = ""
	g.editing = false
	return true
}

func (g *OfferGenerator) Markdown() string { return g.markdown }

func (g *OfferGenerator) Draft() string { return g.editable }

func (g *OfferGenerator) Editing() bool { return g.editing }

func (g *OfferGenerator) ThreadID() string { return g.threadID }

// Preview renders the current draft with the shared document rules.
func (g *OfferGenerator) Preview() []markdown.Node {
	if g.markdown == "" {
		return nil
	}
	return markdown.Nodes(g.markdown)
}
