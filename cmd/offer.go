package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/recruitgenius/recruit-cli/internal/app"
)

const (
	PromptSend   = "Send a message to the generator"
	PromptEdit   = "Edit the draft"
	PromptSave   = "Save the job offer"
	PromptExport = "Export the draft as HTML"
	PromptQuit   = "Quit"

	PromptApply   = "Apply changes"
	PromptDiscard = "Discard changes"

	defaultExportFile = "job-offer.html"
)

var offerCmd = &cobra.Command{
	Use:   "offer",
	Short: "Draft a job offer with the generator",
	Long: `Draft a job offer by describing the role to the generator. The draft can be
refined with more messages, edited in $EDITOR and finally saved as a job.
Without --prompt an interactive session starts.`,
	Args: cobra.NoArgs,
	RunE: runOffer,
}

func init() {
	rootCmd.AddCommand(offerCmd)

	offerCmd.Flags().StringArrayP("prompt", "p", nil, "message for the generator, may be repeated to refine the draft")
	offerCmd.Flags().Bool("save", false, "save the draft after the prompts")
	offerCmd.Flags().String("html", "", "write the draft as HTML to this file, - for stdout")
}

type offerDraft struct {
	ThreadID string `json:"thread_id"`
	Markdown string `json:"markdown"`
	Saved    bool   `json:"saved"`
}

func runOffer(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	gen := app.NewOfferGenerator(s.client, s.notifier, s.logger)

	prompts, _ := cmd.Flags().GetStringArray("prompt")
	if len(prompts) == 0 {
		return offerLoop(cmd, s, gen)
	}

	for _, prompt := range prompts {
		gen.Generate(cmd.Context(), prompt)
	}

	draft := offerDraft{ThreadID: gen.ThreadID(), Markdown: gen.Markdown()}

	if htmlFile, _ := cmd.Flags().GetString("html"); htmlFile != "" {
		if err := writeHTML(cmd.OutOrStdout(), htmlFile, draft.Markdown); err != nil {
			return fmt.Errorf("exporting job offer: %w", err)
		}
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		draft.Saved = gen.Save(cmd.Context())
	}

	if ok, err := s.emit(cmd.OutOrStdout(), draft); ok || err != nil {
		return firstErr(err, s.done())
	}
	s.printer.Document(draft.Markdown)
	return s.done()
}

func offerLoop(cmd *cobra.Command, s *session, gen *app.OfferGenerator) error {
	for {
		actions := []string{PromptSend}
		if gen.Markdown() != "" {
			actions = append(actions, PromptEdit, PromptSave, PromptExport)
		}
		actions = append(actions, PromptQuit)

		selector := promptui.Select{
			Label: "What next?",
			Items: actions,
		}

		_, action, err := selector.Run()
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := handleOfferAction(cmd, s, gen, action); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		}
	}
}

var errQuit = errors.New("quit requested")

func handleOfferAction(cmd *cobra.Command, s *session, gen *app.OfferGenerator, action string) error {
	switch action {
	case PromptSend:
		message, err := (&promptui.Prompt{Label: "Describe the role"}).Run()
		if err != nil {
			return ignoreAbort(err)
		}
		gen.Generate(cmd.Context(), message)
		s.printer.Document(gen.Markdown())
		return nil
	case PromptEdit:
		return editOffer(s, gen)
	case PromptSave:
		gen.Save(cmd.Context())
		return nil
	case PromptExport:
		path, err := (&promptui.Prompt{Label: "File", Default: defaultExportFile}).Run()
		if err != nil {
			return ignoreAbort(err)
		}
		if err := writeHTML(cmd.OutOrStdout(), path, gen.Markdown()); err != nil {
			return fmt.Errorf("exporting job offer: %w", err)
		}
		s.logger.Info("exported job offer", zap.String("file", path))
		return nil
	case PromptQuit:
		return errQuit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func editOffer(s *session, gen *app.OfferGenerator) error {
	gen.Edit()

	edited, err := editInEditor(gen.Draft())
	if err != nil {
		gen.Cancel()
		return err
	}
	gen.SetDraft(edited)
	s.printer.Document(gen.Draft())

	confirm := promptui.Select{
		Label: "Keep the edited draft?",
		Items: []string{PromptApply, PromptDiscard},
	}
	_, choice, err := confirm.Run()
	if err != nil || choice == PromptDiscard {
		gen.Cancel()
		return ignoreAbort(err)
	}

	gen.Apply()
	return nil
}

// editInEditor opens text in $VISUAL or $EDITOR and returns the saved result.
func editInEditor(text string) (string, error) {
	f, err := os.CreateTemp("", "recruit-offer-*.md")
	if err != nil {
		return "", err
	}
	defer os.Remove(f.Name())

	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	editor := strings.Fields(firstNonEmpty(os.Getenv("VISUAL"), os.Getenv("EDITOR"), "vi"))
	c := exec.Command(editor[0], append(editor[1:], f.Name())...)
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := c.Run(); err != nil {
		return "", fmt.Errorf("running editor %s: %w", editor[0], err)
	}

	data, err := os.ReadFile(f.Name())
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func ignoreAbort(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return nil
	}
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
