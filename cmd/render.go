package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/recruitgenius/recruit-cli/internal/markdown"
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a document the way chat replies and job offers are shown",
	Long: `Render a document with the line rules used for chat replies, job
descriptions and generated job offers. The document is read from file, or from
stdin when no file is given. With --output json or yaml the classified lines
are printed instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().Bool("html", false, "print HTML instead")
}

func runRender(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	text, err := readDocument(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	if asHTML, _ := cmd.Flags().GetBool("html"); asHTML {
		return firstErr(writeHTML(cmd.OutOrStdout(), "-", text), s.done())
	}

	if ok, err := s.emit(cmd.OutOrStdout(), markdown.Nodes(text)); ok || err != nil {
		return firstErr(err, s.done())
	}
	s.printer.Document(text)
	return s.done()
}

func readDocument(stdin io.Reader, args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("reading document: %w", err)
	}
	return string(data), nil
}
