// Package app holds the state of each screen of the client. A page is built
// when the screen is entered and dropped when it is left; nothing is shared
// between pages.
package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/recruitgenius/recruit-cli/internal/logger"
	"github.com/recruitgenius/recruit-cli/internal/recruit"
)

// Backend is the part of the API client the pages use.
type Backend interface {
	ListCandidates(ctx context.Context, page recruit.Page) (*recruit.Candidates, error)
	GetCandidateCVs(ctx context.Context, candidateID int) (*recruit.CVs, error)
	UploadCV(ctx context.Context, upload recruit.Upload) (*recruit.UploadResult, error)
	ListJobs(ctx context.Context, page recruit.Page) (*recruit.Jobs, error)
	GetJob(ctx context.Context, id int) (*recruit.Job, error)
	MatchJob(ctx context.Context, req recruit.MatchRequest) (*recruit.MatchingResponse, error)
	JobDescriptionChat(ctx context.Context, threadID, message string) (*recruit.JobDescriptionReply, error)
	ChatQuery(ctx context.Context, req recruit.ChatRequest) (*recruit.ChatResponse, error)
}

var _ Backend = (*recruit.Client)(nil)

type env struct {
	backend  Backend
	notifier Notifier
	logger   *zap.Logger
}

func newEnv(backend Backend, notifier Notifier, log *zap.Logger, page string) env {
	if notifier == nil {
		notifier = NotifierFunc(func(Notification) {})
	}
	return env{
		backend:  backend,
		notifier: notifier,
		logger:   logger.ForPage(log, page),
	}
}

// fail logs err and raises a single error notification.
func (e env) fail(id, message string, err error) {
	e.logger.Warn(message, zap.Error(err))
	e.notifier.Notify(Notification{Level: LevelError, ID: id, Message: message})
}
