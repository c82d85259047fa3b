package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/recruitgenius/recruit-cli/internal/recruit"
)

const (
	matchingNotification = "matching"

	MsgMatching       = "Finding matching candidates..."
	MsgMatchingFailed = "Failed to find matching candidates"
)

type MatchesPage struct {
	env

	JobID   int
	TopK    int
	Loading bool
	Result  *recruit.MatchingResponse
}

// NewMatchesPage asks for recruit.DefaultTopK candidates when topK is not
// positive.
func NewMatchesPage(backend Backend, notifier Notifier, log *zap.Logger, jobID, topK int) *MatchesPage {
	if topK <= 0 {
		topK = recruit.DefaultTopK
	}
	return &MatchesPage{
		env:     newEnv(backend, notifier, log, "matches"),
		JobID:   jobID,
		TopK:    topK,
		Loading: true,
	}
}

func (p *MatchesPage) Load(ctx context.Context) {
	defer func() { p.Loading = false }()

	p.notifier.Notify(Notification{Level: LevelLoading, ID: matchingNotification, Message: MsgMatching})

	resp, err := p.backend.MatchJob(ctx, recruit.MatchRequest{JobID: p.JobID, TopK: p.TopK})
	if err != nil {
		p.fail(matchingNotification, MsgMatchingFailed, err)
		return
	}

	p.Result = resp
	p.notifier.Notify(Notification{
		Level:   LevelSuccess,
		ID:      matchingNotification,
		Message: fmt.Sprintf("Found %d matching candidates!", len(resp.Candidates)),
	})
}
