package app

import (
	"context"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/recruitgenius/recruit-cli/internal/recruit"
)

const (
	MsgChatFailed = "Failed to send message. Please try again."

	// ChatErrorReply is appended as the assistant turn when a query fails.
	ChatErrorReply = "Sorry, I encountered an error processing your request. Please try again."
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role      Role      `json:"role" yaml:"role"`
	Content   string    `json:"content" yaml:"content"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// ChatSession is one conversation with the CV database. Messages are only
// ever appended.
type ChatSession struct {
	env

	UserIdentifier string

	threadID string
	messages []Message
	loading  bool
	now      func() time.Time
}

func NewChatSession(backend Backend, notifier Notifier, log *zap.Logger, userIdentifier string) *ChatSession {
	if userIdentifier == "" {
		userIdentifier = recruit.DefaultUserIdentifier
	}
	return &ChatSession{
		env:            newEnv(backend, notifier, log, "cv_chat"),
		UserIdentifier: userIdentifier,
		now:            time.Now,
	}
}

// Send asks one question and returns the assistant message that was
// appended. Blank input is ignored and reported with ok set to false.
func (s *ChatSession) Send(ctx context.Context, input string) (reply Message, ok bool) {
	query := strings.TrimSpace(input)
	if query == "" || s.loading {
		return Message{}, false
	}

	s.append(RoleUser, query)

	s.loading = true
	defer func() { s.loading = false }()

	req := recruit.ChatRequest{
		Query:          query,
		ThreadID:       s.threadID,
		UserIdentifier: s.UserIdentifier,
	}

	resp, err := s.backend.ChatQuery(ctx, req)
	if err != nil {
		s.fail("", MsgChatFailed, err)
		return s.append(RoleAssistant, ChatErrorReply), true
	}

	s.threadID = resp.ThreadID
	return s.append(RoleAssistant, resp.ResponseText), true
}

func (s *ChatSession) append(role Role, content string) Message {
	msg := Message{Role: role, Content: content, Timestamp: s.now()}
	s.messages = append(s.messages, msg)
	return msg
}

func (s *ChatSession) Messages() []Message {
	return slices.Clone(s.messages)
}

func (s *ChatSession) ThreadID() string {
	return s.threadID
}
