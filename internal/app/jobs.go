package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/recruitgenius/recruit-cli/internal/recruit"
)

const (
	MsgJobsFailed = "Failed to load jobs"
	MsgJobFailed  = "Failed to load job details"
)

var errJobNotFound = errors.New("job not found")

type JobsPage struct {
	env

	Page    recruit.Page
	Loading bool
	Jobs    []*recruit.Job
}

func NewJobsPage(backend Backend, notifier Notifier, log *zap.Logger) *JobsPage {
	return &JobsPage{
		env:     newEnv(backend, notifier, log, "jobs"),
		Page:    recruit.FirstPage(),
		Loading: true,
	}
}

func (p *JobsPage) Load(ctx context.Context) {
	defer func() { p.Loading = false }()

	jobs, err := p.backend.ListJobs(ctx, p.Page)
	if err != nil {
		p.fail("", MsgJobsFailed, err)
		return
	}
	p.Jobs = jobs.Items
}

func (p *JobsPage) Empty() bool {
	return !p.Loading && len(p.Jobs) == 0
}

// JobPage is the detail view of one job offer.
type JobPage struct {
	env

	JobID   int
	Loading bool
	Job     *recruit.Job
}

func NewJobPage(backend Backend, notifier Notifier, log *zap.Logger, jobID int) *JobPage {
	return &JobPage{env: newEnv(backend, notifier, log, "job"), JobID: jobID, Loading: true}
}

func (p *JobPage) Load(ctx context.Context) {
	defer func() { p.Loading = false }()

	job, err := p.backend.GetJob(ctx, p.JobID)
	if err == nil && job == nil {
		err = errJobNotFound
	}
	if err != nil {
		p.fail("", MsgJobFailed, err)
		return
	}
	p.Job = job
}

// NotFound reports the "Job not found" state.
func (p *JobPage) NotFound() bool {
	return !p.Loading && p.Job == nil
}
