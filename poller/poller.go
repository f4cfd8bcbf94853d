package poller

import (
	"context"
	"time"

	"texttovideo/config"
	"texttovideo/session"
	"texttovideo/types"
)

// StatusFetcher is the part of the job API the poller needs
type StatusFetcher interface {
	GetStatus(ctx context.Context, jobID string) (*types.JobStatus, error)
}

// Poller checks a job's status until it reaches a terminal state.
// Checks never overlap: the next one is scheduled only after the previous
// response has been applied.
type Poller struct {
	fetcher  StatusFetcher
	session  *session.Session
	interval time.Duration

	// OnUpdate, if set, is called with the session state after every applied check
	OnUpdate func(session.Snapshot)
}

// New creates a poller for the given session
func New(fetcher StatusFetcher, s *session.Session, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = config.PollInterval
	}
	return &Poller{
		fetcher:  fetcher,
		session:  s,
		interval: interval,
	}
}

// Run polls the job held by the session under tok. It returns Completed or
// Failed on a terminal state, and Stale when the session was reset or
// resubmitted (or ctx ended) before that. The returned error is the status
// check failure, or ctx.Err() on cancellation.
func (p *Poller) Run(ctx context.Context, tok session.Token) (session.Outcome, error) {
	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return session.Stale, ctx.Err()
		case <-timer.C:
		}

		jobID, ok := p.session.Poll(tok)
		if !ok {
			return session.Stale, nil
		}

		status, err := p.fetcher.GetStatus(ctx, jobID)
		if err != nil {
			if ctx.Err() != nil {
				return session.Stale, ctx.Err()
			}
			if !p.session.FailPoll(tok, err) {
				return session.Stale, nil
			}
			p.notify()
			return session.Failed, err
		}

		outcome := p.session.Apply(tok, *status)
		if outcome == session.Stale {
			return session.Stale, nil
		}
		p.notify()

		if outcome != session.Continue {
			return outcome, nil
		}
		timer.Reset(p.interval)
	}
}

func (p *Poller) notify() {
	if p.OnUpdate != nil {
		p.OnUpdate(p.session.Snapshot())
	}
}
