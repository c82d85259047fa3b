package app

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/recruitgenius/recruit-cli/internal/recruit"
)

const (
	MsgCandidatesFailed = "Failed to load candidates"
	MsgCandidateFailed  = "Failed to load candidate details"
	MsgCVsFailed        = "Failed to load CVs"
)

// CandidatesPage is the candidate pipeline list.
type CandidatesPage struct {
	env

	Page       recruit.Page
	Loading    bool
	Candidates []*recruit.Candidate
}

func NewCandidatesPage(backend Backend, notifier Notifier, log *zap.Logger) *CandidatesPage {
	return &CandidatesPage{
		env:     newEnv(backend, notifier, log, "candidates"),
		Page:    recruit.FirstPage(),
		Loading: true,
	}
}

func (p *CandidatesPage) Load(ctx context.Context) {
	defer func() { p.Loading = false }()

	candidates, err := p.backend.ListCandidates(ctx, p.Page)
	if err != nil {
		p.fail("", MsgCandidatesFailed, err)
		return
	}
	p.Candidates = candidates.Items
}

// Empty reports whether loading finished without any candidate.
func (p *CandidatesPage) Empty() bool {
	return !p.Loading && len(p.Candidates) == 0
}

// CandidateCVsPage shows one candidate and the CVs uploaded for them. The
// candidate is looked up in the first page of the candidate list; both
// requests run at the same time and settle independently.
type CandidateCVsPage struct {
	env

	CandidateID int

	mu               sync.Mutex
	candidate        *recruit.Candidate
	cvs              []*recruit.CVDetail
	loadingCandidate bool
	loadingCVs       bool
	expanded         int
}

func NewCandidateCVsPage(backend Backend, notifier Notifier, log *zap.Logger, candidateID int) *CandidateCVsPage {
	return &CandidateCVsPage{
		env:              newEnv(backend, notifier, log, "candidate_cvs"),
		CandidateID:      candidateID,
		loadingCandidate: true,
		loadingCVs:       true,
	}
}

func (p *CandidateCVsPage) Load(ctx context.Context) {
	var g errgroup.Group

	g.Go(func() error {
		p.loadCandidate(ctx)
		return nil
	})
	g.Go(func() error {
		p.loadCVs(ctx)
		return nil
	})

	_ = g.Wait()
}

func (p *CandidateCVsPage) loadCandidate(ctx context.Context) {
	candidates, err := p.backend.ListCandidates(ctx, recruit.FirstPage())

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loadingCandidate = false

	if err != nil {
		p.fail("", MsgCandidateFailed, err)
		return
	}
	p.candidate = candidates.FindByID(p.CandidateID)
}

func (p *CandidateCVsPage) loadCVs(ctx context.Context) {
	cvs, err := p.backend.GetCandidateCVs(ctx, p.CandidateID)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loadingCVs = false

	if err != nil {
		p.fail("", MsgCVsFailed, err)
		return
	}
	p.cvs = cvs.Items
}

// Candidate is nil when the candidate is not in the list.
func (p *CandidateCVsPage) Candidate() *recruit.Candidate {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.candidate
}

func (p *CandidateCVsPage) CVs() []*recruit.CVDetail {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cvs
}

func (p *CandidateCVsPage) Loading() (candidate, cvs bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadingCandidate, p.loadingCVs
}

// Toggle expands the CV with the given id, or collapses it when it is the
// one already expanded. At most one CV is expanded.
func (p *CandidateCVsPage) Toggle(cvID int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.expanded == cvID {
		p.expanded = 0
		return
	}
	p.expanded = cvID
}

func (p *CandidateCVsPage) Expanded(cvID int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cvID != 0 && p.expanded == cvID
}
