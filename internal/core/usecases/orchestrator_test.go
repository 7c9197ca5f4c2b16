// internal/core/usecases/orchestrator_test.go
package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"onca/internal/core/domain"
	"onca/internal/core/ports"
	"onca/internal/platform/logx"
	"onca/internal/platform/rate"
	"onca/internal/testutil"
)

var exampleTarget = domain.Target{Domain: "example.com"}

func newTestOrchestrator(sleeper rate.Sleeper, notifier ports.Notifier, sources ...ports.Source) *Orchestrator {
	opts := OrchestratorOptions{
		Sources: sources,
		Policy:  rate.DefaultPolicy().MarkThrottled(domain.SourceWhoisHistory),
		Sleeper: sleeper,
		Logger:  logx.NewSilent(),
	}
	if notifier != nil {
		opts.Observers = []ports.Notifier{notifier}
	}
	return NewOrchestrator(opts)
}

func TestNewOrchestrator_Defaults(t *testing.T) {
	o := NewOrchestrator(OrchestratorOptions{Sources: []ports.Source{nil, newOKSource(domain.SourceArchive)}})

	testutil.AssertNotNil(t, o.policy, "default policy")
	testutil.AssertNotNil(t, o.sleeper, "default sleeper")
	testutil.AssertNotNil(t, o.logger, "default logger")
	testutil.AssertEqual(t, len(o.sources), 1, "nil sources ignored")
}

func TestOrchestrator_Run_MergesResults(t *testing.T) {
	archive := newOKSource(domain.SourceArchive, "https://example.com/a", "https://example.com/b")
	search := newOKSource(domain.SourceWebSearch, "https://example.com/b", "https://blog.example.com/")

	o := newTestOrchestrator(&recordingSleeper{}, nil, archive, search)
	results, report := o.Run(context.Background(), exampleTarget,
		[]domain.SourceID{domain.SourceArchive, domain.SourceWebSearch})

	testutil.AssertStrings(t, results.Sorted(), []string{
		"https://blog.example.com/",
		"https://example.com/a",
		"https://example.com/b",
	}, "union of results")
	testutil.AssertEqual(t, report.Total, 3, "report total")
	testutil.AssertEqual(t, report.Count(domain.OutcomeOK), 2, "ok sources")
	testutil.AssertEqual(t, report.Sources[0].Count, 2, "archive count")
	testutil.AssertFalse(t, report.Canceled, "not canceled")
	testutil.AssertEqual(t, archive.targets[0], exampleTarget, "target passed through")
}

func TestOrchestrator_Run_OrderIndependent(t *testing.T) {
	build := func() []ports.Source {
		return []ports.Source{
			newOKSource(domain.SourceArchive, "https://example.com/a", "https://example.com/c"),
			newOKSource(domain.SourceWebSearch, "https://example.com/b"),
			newOKSource(domain.SourceWhoisHistory, "https://ns1.example.com", "https://example.com/a"),
		}
	}

	forward, _ := newTestOrchestrator(&recordingSleeper{}, nil, build()...).Run(context.Background(), exampleTarget,
		[]domain.SourceID{domain.SourceArchive, domain.SourceWebSearch, domain.SourceWhoisHistory})
	backward, _ := newTestOrchestrator(&recordingSleeper{}, nil, build()...).Run(context.Background(), exampleTarget,
		[]domain.SourceID{domain.SourceWhoisHistory, domain.SourceWebSearch, domain.SourceArchive})

	testutil.AssertTrue(t, forward.Equal(backward), "merge should not depend on source order")
	testutil.AssertEqual(t, forward.Len(), 4, "distinct results")
}

func TestOrchestrator_Run_EmptyIDsRunsAll(t *testing.T) {
	archive := newOKSource(domain.SourceArchive)
	search := newOKSource(domain.SourceWebSearch)
	whois := newOKSource(domain.SourceWhoisHistory)

	_, report := newTestOrchestrator(&recordingSleeper{}, nil, archive, search, whois).
		Run(context.Background(), exampleTarget, nil)

	testutil.AssertEqual(t, archive.calls+search.calls+whois.calls, 3, "every source invoked once")
	testutil.AssertEqual(t, report.Sources[0].Source, domain.SourceArchive, "engine order starts with archive")
	testutil.AssertEqual(t, report.Sources[2].Source, domain.SourceWhoisHistory, "engine order ends with whois-history")
}

func TestOrchestrator_Run_DuplicateIDsCollapse(t *testing.T) {
	archive := newOKSource(domain.SourceArchive, "https://example.com/")

	results, report := newTestOrchestrator(&recordingSleeper{}, nil, archive).Run(context.Background(), exampleTarget,
		[]domain.SourceID{domain.SourceArchive, domain.SourceArchive})

	testutil.AssertEqual(t, archive.calls, 1, "duplicate id invoked once")
	testutil.AssertEqual(t, len(report.Sources), 1, "one report entry")
	testutil.AssertEqual(t, results.Len(), 1, "results")
}

func TestOrchestrator_Run_PausesBeforeEverySource(t *testing.T) {
	var calls []string
	sleeper := &recordingSleeper{log: &calls}

	mk := func(id domain.SourceID) *mockSource {
		s := newOKSource(id)
		s.onCall = func(context.Context) { calls = append(calls, "call:"+string(id)) }
		return s
	}

	o := newTestOrchestrator(sleeper, nil,
		mk(domain.SourceArchive), mk(domain.SourceWebSearch), mk(domain.SourceWhoisHistory))
	o.Run(context.Background(), exampleTarget, nil)

	testutil.AssertStrings(t, calls, []string{
		"sleep:3s", "call:archive",
		"sleep:3s", "call:web-search",
		"sleep:30s", "call:whois-history",
	}, "a pause precedes every invocation, the first included")
}

func TestOrchestrator_Run_ReportsDelays(t *testing.T) {
	o := newTestOrchestrator(&recordingSleeper{}, nil,
		newOKSource(domain.SourceWhoisHistory), newOKSource(domain.SourceArchive))

	_, report := o.Run(context.Background(), exampleTarget,
		[]domain.SourceID{domain.SourceWhoisHistory, domain.SourceArchive})

	testutil.AssertEqual(t, report.Sources[0].Delay, rate.ThrottledDelay, "throttled delay")
	testutil.AssertEqual(t, report.Sources[1].Delay, rate.DefaultDelay, "default delay")
}

func TestOrchestrator_Run_FailureIsolation(t *testing.T) {
	failing := &mockSource{
		id:      domain.SourceArchive,
		outcome: domain.Failed(domain.SourceArchive, errors.New("connection refused")),
	}
	panicking := &mockSource{id: domain.SourceWebSearch, panicMsg: "selector exploded"}
	ok := newOKSource(domain.SourceWhoisHistory, "https://ns1.example.com")

	results, report := newTestOrchestrator(&recordingSleeper{}, nil, failing, panicking, ok).
		Run(context.Background(), exampleTarget, nil)

	testutil.AssertStrings(t, results.Sorted(), []string{"https://ns1.example.com"}, "surviving results")
	testutil.AssertEqual(t, ok.calls, 1, "later sources still run")
	testutil.AssertEqual(t, report.Count(domain.OutcomeFailed), 2, "failed sources")
	testutil.AssertContains(t, report.Sources[0].Err, "connection refused", "failure reason kept")
	testutil.AssertContains(t, report.Sources[1].Err, "selector exploded", "panic value kept")
	testutil.AssertContains(t, report.Sources[1].Err, domain.ErrSourcePanicked.Error(), "panic sentinel")
}

func TestOrchestrator_Run_RateLimitedContinues(t *testing.T) {
	limited := &mockSource{
		id:      domain.SourceWhoisHistory,
		outcome: domain.RateLimited(domain.SourceWhoisHistory, nil),
	}
	archive := newOKSource(domain.SourceArchive, "https://example.com/")
	notifier := &mockNotifier{}

	results, report := newTestOrchestrator(&recordingSleeper{}, notifier, limited, archive).
		Run(context.Background(), exampleTarget, []domain.SourceID{domain.SourceWhoisHistory, domain.SourceArchive})

	testutil.AssertEqual(t, archive.calls, 1, "next source invoked")
	testutil.AssertEqual(t, results.Len(), 1, "results from the remaining source")
	testutil.AssertEqual(t, report.Count(domain.OutcomeRateLimited), 1, "rate limited count")
	testutil.AssertEqual(t, len(notifier.getEventsByType(ports.EventTypeSourceRateLimited)), 1, "rate limited event")
}

func TestOrchestrator_Run_NilResultsTolerated(t *testing.T) {
	src := &mockSource{id: domain.SourceArchive, outcome: domain.Outcome{Kind: domain.OutcomeOK}}

	results, report := newTestOrchestrator(&recordingSleeper{}, nil, src).
		Run(context.Background(), exampleTarget, []domain.SourceID{domain.SourceArchive})

	testutil.AssertEqual(t, results.Len(), 0, "no results")
	testutil.AssertEqual(t, report.Sources[0].Source, domain.SourceArchive, "source filled in")
}

func TestOrchestrator_Run_SkipsUnavailableSources(t *testing.T) {
	search := newOKSource(domain.SourceWebSearch, "https://example.com/")
	notifier := &mockNotifier{}
	sleeper := &recordingSleeper{}

	results, report := newTestOrchestrator(sleeper, notifier, search).
		Run(context.Background(), exampleTarget, []domain.SourceID{domain.SourceArchive, domain.SourceWebSearch})

	testutil.AssertEqual(t, results.Len(), 1, "available source results")
	testutil.AssertTrue(t, report.Sources[0].Skipped, "missing source marked skipped")
	testutil.AssertEqual(t, report.Invoked(), 1, "only one invocation")
	testutil.AssertEqual(t, len(sleeper.delays), 1, "no pause paid for a skipped source")
	testutil.AssertEqual(t, len(notifier.getEventsByType(ports.EventTypeSourceSkipped)), 1, "skipped event")
}

func TestOrchestrator_Run_CancellationReturnsPartialResults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	archive := newOKSource(domain.SourceArchive, "https://example.com/a")
	archive.onCall = func(context.Context) { cancel() }
	search := newOKSource(domain.SourceWebSearch, "https://example.com/b")
	notifier := &mockNotifier{}

	results, report := newTestOrchestrator(&recordingSleeper{}, notifier, archive, search).
		Run(ctx, exampleTarget, []domain.SourceID{domain.SourceArchive, domain.SourceWebSearch})

	testutil.AssertStrings(t, results.Sorted(), []string{"https://example.com/a"}, "partial results")
	testutil.AssertEqual(t, search.calls, 0, "no source invoked after cancellation")
	testutil.AssertTrue(t, report.Canceled, "report marks cancellation")
	testutil.AssertEqual(t, len(notifier.getEventsByType(ports.EventTypeRunCanceled)), 1, "canceled event")
}

func TestOrchestrator_Run_CancellationDuringPause(t *testing.T) {
	archive := newOKSource(domain.SourceArchive, "https://example.com/a")
	sleeper := rate.SleeperFunc(func(ctx context.Context, d time.Duration) error {
		return context.Canceled
	})

	o := newTestOrchestrator(sleeper, nil, archive)
	results, report := o.Run(context.Background(), exampleTarget, nil)

	testutil.AssertEqual(t, archive.calls, 0, "source not invoked when the pause is interrupted")
	testutil.AssertEqual(t, results.Len(), 0, "empty results")
	testutil.AssertTrue(t, report.Canceled, "canceled")
}

func TestOrchestrator_Run_EventSequence(t *testing.T) {
	notifier := &mockNotifier{}
	o := newTestOrchestrator(&recordingSleeper{}, notifier, newOKSource(domain.SourceArchive, "https://example.com/"))

	o.Run(context.Background(), exampleTarget, []domain.SourceID{domain.SourceArchive})

	got := notifier.types()
	want := []ports.EventType{
		ports.EventTypeRunStarted,
		ports.EventTypeSourceWaiting,
		ports.EventTypeSourceStarted,
		ports.EventTypeSourceCompleted,
		ports.EventTypeRunCompleted,
	}
	testutil.AssertEqual(t, len(got), len(want), "event count")
	for i := range want {
		testutil.AssertEqual(t, got[i], want[i], "event order")
	}

	completed := notifier.getEventsByType(ports.EventTypeRunCompleted)[0]
	data, ok := completed.Data.(ports.RunCompletedEvent)
	testutil.AssertTrue(t, ok, "completed payload type")
	testutil.AssertEqual(t, data.Total, 1, "completed total")
}

func TestOrchestrator_Run_NotifierErrorIgnored(t *testing.T) {
	notifier := &mockNotifier{err: errors.New("terminal gone")}
	archive := newOKSource(domain.SourceArchive, "https://example.com/")

	results, _ := newTestOrchestrator(&recordingSleeper{}, notifier, archive).
		Run(context.Background(), exampleTarget, nil)

	testutil.AssertEqual(t, results.Len(), 1, "notifier errors do not affect the run")
}
