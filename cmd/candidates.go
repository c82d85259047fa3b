package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/recruitgenius/recruit-cli/internal/app"
	"github.com/recruitgenius/recruit-cli/internal/filtering"
	"github.com/recruitgenius/recruit-cli/internal/recruit"
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Browse candidates and their CVs",
}

var candidatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List candidates in the pipeline",
	Args:  cobra.NoArgs,
	RunE:  runCandidatesList,
}

var candidateCVsCmd = &cobra.Command{
	Use:   "cvs <candidate-id>",
	Short: "Show a candidate and the CVs uploaded for them",
	Args:  cobra.ExactArgs(1),
	RunE:  runCandidateCVs,
}

func init() {
	rootCmd.AddCommand(candidatesCmd)
	candidatesCmd.AddCommand(candidatesListCmd, candidateCVsCmd)

	addPageFlags(candidatesListCmd)
	candidatesListCmd.Flags().StringSlice("status", nil, "keep only candidates with these statuses")
	candidatesListCmd.Flags().StringSlice("skill", nil, "keep only candidates having all of these skills")

	candidateCVsCmd.Flags().Int("expand", 0, "id of the CV to show in full")
	candidateCVsCmd.Flags().Bool("all", false, "show every CV in full")
}

func addPageFlags(cmd *cobra.Command) {
	cmd.Flags().Int("skip", 0, "number of records to skip")
	cmd.Flags().Int("limit", recruit.DefaultLimit, "maximum number of records")
}

func pageFromFlags(cmd *cobra.Command) recruit.Page {
	skip, _ := cmd.Flags().GetInt("skip")
	limit, _ := cmd.Flags().GetInt("limit")
	return recruit.Page{Skip: skip, Limit: limit}
}

func runCandidatesList(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	page := app.NewCandidatesPage(s.client, s.notifier, s.logger)
	page.Page = pageFromFlags(cmd)
	page.Load(cmd.Context())

	statuses, _ := cmd.Flags().GetStringSlice("status")
	skills, _ := cmd.Flags().GetStringSlice("skill")

	steps := filtering.Default()
	if len(statuses) == 0 {
		filtering.DisableByName(steps, "status", "no --status given")
	}
	if len(skills) == 0 {
		filtering.DisableByName(steps, "skills", "no --skill given")
	}

	candidates, err := filtering.Run(
		cmd.Context(),
		&filtering.Config{Statuses: statuses, Skills: skills},
		filtering.Deps{Logger: s.logger},
		steps,
		&recruit.Candidates{Items: page.Candidates},
	)
	if err != nil {
		return fmt.Errorf("filtering candidates: %w", err)
	}

	for _, status := range filtering.Describe(steps) {
		s.logger.Debug("candidate filter",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	s.logger.Debug("listing candidates",
		zap.Int("loaded", len(page.Candidates)),
		zap.Int("shown", candidates.Len()),
		zap.Strings("statuses", candidates.Statuses()),
	)

	if ok, err := s.emit(cmd.OutOrStdout(), candidates.Items); ok || err != nil {
		return firstErr(err, s.done())
	}

	if s.notifier.failed.Load() {
		return s.done()
	}
	s.printer.Candidates(candidates.Items)
	return s.done()
}

type candidateCVs struct {
	Candidate *recruit.Candidate  `json:"candidate"`
	CVs       []*recruit.CVDetail `json:"cvs"`
}

func runCandidateCVs(cmd *cobra.Command, args []string) error {
	candidateID, err := parseID("candidate", args[0])
	if err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	page := app.NewCandidateCVsPage(s.client, s.notifier, s.logger, candidateID)
	page.Load(cmd.Context())

	cvs := page.CVs()

	if ok, err := s.emit(cmd.OutOrStdout(), candidateCVs{Candidate: page.Candidate(), CVs: cvs}); ok || err != nil {
		return firstErr(err, s.done())
	}

	expand, _ := cmd.Flags().GetInt("expand")
	all, _ := cmd.Flags().GetBool("all")
	if expand != 0 {
		if (&recruit.CVs{Items: cvs}).FindByID(expand) == nil {
			s.logger.Warn("no such cv for this candidate", zap.Int("cv_id", expand), zap.Int("candidate_id", candidateID))
		}
		page.Toggle(expand)
	}

	s.printer.CandidateHeader(page.Candidate())
	if s.notifier.failed.Load() && len(cvs) == 0 {
		return s.done()
	}
	s.printer.CVs(cvs, func(id int) bool { return all || page.Expanded(id) })
	return s.done()
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
