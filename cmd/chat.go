package cmd

import (
	"errors"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/recruitgenius/recruit-cli/internal/app"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions about the CV database",
	Long: `Ask questions about the uploaded CVs in natural language. Without --query
an interactive session starts; type /exit or press Ctrl+D to leave.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

var chatExitCommands = []string{"/exit", "/quit"}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringArrayP("query", "q", nil, "ask this question and exit, may be repeated to continue the thread")
	chatCmd.Flags().String("user", "", "user identifier sent with each query (default chat.user-identifier)")
	viper.BindPFlag("chat.user-identifier", chatCmd.Flags().Lookup("user"))
}

func runChat(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	session := app.NewChatSession(s.client, s.notifier, s.logger, s.config.Chat.UserIdentifier)

	queries, _ := cmd.Flags().GetStringArray("query")
	if len(queries) > 0 {
		for _, query := range queries {
			reply, ok := session.Send(cmd.Context(), query)
			if ok && s.format == formatText {
				s.printer.Message(reply)
			}
		}
		if ok, err := s.emit(cmd.OutOrStdout(), session.Messages()); ok || err != nil {
			return firstErr(err, s.done())
		}
		return s.done()
	}

	prompt := promptui.Prompt{
		Label: "You",
	}

	for {
		input, err := prompt.Run()
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			break
		}
		if err != nil {
			return err
		}

		input = strings.TrimSpace(input)
		if isChatExit(input) {
			break
		}

		reply, ok := session.Send(cmd.Context(), input)
		if !ok {
			continue
		}
		s.printer.Message(reply)
	}

	s.logger.Debug("chat finished",
		zap.String("thread_id", session.ThreadID()),
		zap.Int("messages", len(session.Messages())),
	)

	// A failed turn was already answered in the conversation.
	_ = s.logger.Sync()
	return nil
}

func isChatExit(input string) bool {
	for _, exit := range chatExitCommands {
		if strings.EqualFold(input, exit) {
			return true
		}
	}
	return false
}
