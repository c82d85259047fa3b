package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/recruitgenius/recruit-cli/internal/app"
	"github.com/recruitgenius/recruit-cli/internal/markdown"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Browse job offers and match candidates against them",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List job offers",
	Args:  cobra.NoArgs,
	RunE:  runJobsList,
}

var jobShowCmd = &cobra.Command{
	Use:   "show <job-id>",
	Short: "Show a job offer",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobShow,
}

var jobMatchCmd = &cobra.Command{
	Use:   "match <job-id>",
	Short: "Find the candidates matching a job offer",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobMatch,
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(jobsListCmd, jobShowCmd, jobMatchCmd)

	addPageFlags(jobsListCmd)

	jobShowCmd.Flags().String("html", "", "also write the description as HTML to this file, - for stdout")

	jobMatchCmd.Flags().Int("top-k", 0, "number of candidates to return (default match.top-k)")
	viper.BindPFlag("match.top-k", jobMatchCmd.Flags().Lookup("top-k"))
}

func parseID(kind, arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, arg)
	}
	return id, nil
}

func runJobsList(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	page := app.NewJobsPage(s.client, s.notifier, s.logger)
	page.Page = pageFromFlags(cmd)
	page.Load(cmd.Context())

	if ok, err := s.emit(cmd.OutOrStdout(), page.Jobs); ok || err != nil {
		return firstErr(err, s.done())
	}
	if !s.notifier.failed.Load() {
		s.printer.Jobs(page.Jobs)
	}
	return s.done()
}

func runJobShow(cmd *cobra.Command, args []string) error {
	jobID, err := parseID("job", args[0])
	if err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	page := app.NewJobPage(s.client, s.notifier, s.logger, jobID)
	page.Load(cmd.Context())

	if page.NotFound() {
		s.printer.Job(nil)
		return s.done()
	}

	if htmlFile, _ := cmd.Flags().GetString("html"); htmlFile != "" {
		if err := writeHTML(cmd.OutOrStdout(), htmlFile, page.Job.Description); err != nil {
			return fmt.Errorf("exporting job description: %w", err)
		}
		s.logger.Debug("exported job description", zap.String("file", htmlFile))
		if htmlFile == "-" {
			return s.done()
		}
	}

	if ok, err := s.emit(cmd.OutOrStdout(), page.Job); ok || err != nil {
		return firstErr(err, s.done())
	}
	s.printer.Job(page.Job)
	return s.done()
}

func writeHTML(stdout io.Writer, path, text string) error {
	html, err := markdown.HTML(text)
	if err != nil {
		return err
	}
	if path == "-" {
		_, err = stdout.Write(html)
		return err
	}
	return os.WriteFile(path, html, 0o644)
}

func runJobMatch(cmd *cobra.Command, args []string) error {
	jobID, err := parseID("job", args[0])
	if err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	page := app.NewMatchesPage(s.client, s.notifier, s.logger, jobID, s.config.Match.TopK)
	page.Load(cmd.Context())

	if page.Result == nil {
		return s.done()
	}

	if ok, err := s.emit(cmd.OutOrStdout(), page.Result); ok || err != nil {
		return firstErr(err, s.done())
	}
	s.printer.Matches(page.Result)
	return s.done()
}
