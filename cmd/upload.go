package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/recruitgenius/recruit-cli/internal/app"
	"github.com/recruitgenius/recruit-cli/internal/upload"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a PDF or DOCX CV",
	Long: `Upload a PDF or DOCX CV. The file type is detected from its content and
anything else is rejected before contacting the API. The service extracts the
candidate and returns the new CV and candidate ids.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().Bool("dry-run", false, "only inspect the file")
}

func runUpload(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	file, err := upload.Inspect(args[0])
	if err != nil {
		return err
	}
	s.logger.Debug("inspected file",
		zap.String("name", file.Name),
		zap.String("mime", file.MIME),
		zap.Int64("size", file.Size),
	)

	page := app.NewUploadPage(s.client, s.notifier, s.logger)
	if !page.Select(file) {
		return s.done()
	}

	if s.format == formatText {
		s.printer.UploadFile(file)
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		if ok, err := s.emit(cmd.OutOrStdout(), file); ok || err != nil {
			return firstErr(err, s.done())
		}
		return s.done()
	}

	page.Upload(cmd.Context())
	if page.Result == nil {
		return s.done()
	}

	if ok, err := s.emit(cmd.OutOrStdout(), page.Result); ok || err != nil {
		return firstErr(err, s.done())
	}
	s.printer.UploadResult(page.Result)
	return s.done()
}
