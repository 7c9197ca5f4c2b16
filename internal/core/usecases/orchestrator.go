// internal/core/usecases/orchestrator.go
package usecases

import (
	"context"
	"fmt"
	"time"

	"onca/internal/core/domain"
	"onca/internal/core/ports"
	"onca/internal/platform/logx"
	"onca/internal/platform/rate"
)

// Orchestrator ejecuta las fuentes de una en una, en el orden pedido,
// pagando la pausa de la política antes de cada invocación.
// Es el único componente que decide orden y pausas; las fuentes no saben de ellas.
type Orchestrator struct {
	sources   map[domain.SourceID]ports.Source
	policy    *rate.Policy
	sleeper   rate.Sleeper
	logger    logx.Logger
	observers []ports.Notifier
}

// OrchestratorOptions configura el orchestrator.
type OrchestratorOptions struct {
	Sources   []ports.Source
	Policy    *rate.Policy
	Sleeper   rate.Sleeper
	Logger    logx.Logger
	Observers []ports.Notifier
}

// NewOrchestrator crea una nueva instancia del orchestrator.
// Sin Policy se usa rate.DefaultPolicy(); sin Sleeper, un timer real.
func NewOrchestrator(opts OrchestratorOptions) *Orchestrator {
	if opts.Policy == nil {
		opts.Policy = rate.DefaultPolicy()
	}
	if opts.Sleeper == nil {
		opts.Sleeper = rate.TimerSleeper{}
	}
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}

	sources := make(map[domain.SourceID]ports.Source, len(opts.Sources))
	for _, s := range opts.Sources {
		if s == nil {
			continue
		}
		if _, dup := sources[s.ID()]; !dup {
			sources[s.ID()] = s
		}
	}

	return &Orchestrator{
		sources:   sources,
		policy:    opts.Policy,
		sleeper:   opts.Sleeper,
		logger:    opts.Logger.With("component", "orchestrator"),
		observers: opts.Observers,
	}
}

// Run consulta las fuentes ids (todas si está vacío) para el target y une sus resultados.
// Ningún fallo de una fuente aborta la ejecución. Si ctx se cancela, la ejecución
// se detiene antes de la siguiente pausa y devuelve lo acumulado.
func (o *Orchestrator) Run(ctx context.Context, target domain.Target, ids []domain.SourceID) (*domain.ResultSet, *RunReport) {
	if len(ids) == 0 {
		ids = domain.AllSourceIDs()
	}
	ids = dedupeIDs(ids)

	results := domain.NewResultSet()
	report := newRunReport(target)

	o.logger.Info("starting discovery",
		"target", target.Domain,
		"keyword", target.Keyword,
		"sources", len(ids),
	)
	o.notify(ctx, ports.NewEvent(ports.EventTypeRunStarted, "", ports.RunStartedEvent{
		Target:  target,
		Sources: ids,
	}))

	for _, id := range ids {
		if ctx.Err() != nil {
			o.cancel(ctx, report)
			break
		}

		source, ok := o.sources[id]
		if !ok {
			o.logger.Warn("unknown source, skipping", "source", id)
			report.add(SourceReport{Source: id, Kind: domain.OutcomeFailed, Skipped: true, Err: domain.ErrSourceNotRegistered.Error()})
			o.notify(ctx, ports.NewEvent(ports.EventTypeSourceSkipped, id, nil))
			continue
		}

		delay := o.policy.DelayFor(id)
		if delay > 0 {
			o.logger.Debug("rate-limit pause", "source", id, "delay", delay, "throttled", o.policy.IsThrottled(id))
			o.notify(ctx, ports.NewEvent(ports.EventTypeSourceWaiting, id, ports.SourceWaitingEvent{Delay: delay}))
		}
		if err := o.sleeper.Sleep(ctx, delay); err != nil {
			o.cancel(ctx, report)
			break
		}

		sr := o.executeSource(ctx, source, target)
		sr.Delay = delay
		report.add(sr.SourceReport)
		results.Merge(sr.results)
	}

	report.finish(results.Len())

	o.logger.Info("discovery completed",
		"target", target.Domain,
		"results", results.Len(),
		"ok", report.Count(domain.OutcomeOK),
		"rate_limited", report.Count(domain.OutcomeRateLimited),
		"failed", report.Count(domain.OutcomeFailed),
		"duration_ms", report.Duration.Milliseconds(),
	)
	o.notify(ctx, ports.NewEvent(ports.EventTypeRunCompleted, "", ports.RunCompletedEvent{
		Total:    results.Len(),
		Duration: report.Duration,
	}))

	return results, report
}

// executeSource invoca una fuente y traduce su Outcome en logs, eventos y reporte.
func (o *Orchestrator) executeSource(ctx context.Context, source ports.Source, target domain.Target) sourceResult {
	id := source.ID()
	o.logger.Debug("executing source", "source", id)
	o.notify(ctx, ports.NewEvent(ports.EventTypeSourceStarted, id, nil))

	start := time.Now()
	out := invoke(ctx, source, target)
	elapsed := time.Since(start)

	sr := sourceResult{
		SourceReport: SourceReport{
			Source:   id,
			Kind:     out.Kind,
			Count:    out.Results.Len(),
			Duration: elapsed,
		},
		results: out.Results,
	}
	if out.Err != nil {
		sr.Err = out.Err.Error()
	}

	finished := ports.SourceFinishedEvent{Kind: out.Kind, Count: sr.Count, Duration: elapsed, Err: sr.Err}
	switch out.Kind {
	case domain.OutcomeOK:
		o.logger.Info("source completed", "source", id, "results", sr.Count, "duration_ms", elapsed.Milliseconds())
		o.notify(ctx, ports.NewEvent(ports.EventTypeSourceCompleted, id, finished))
	case domain.OutcomeRateLimited:
		o.logger.Warn("source rate limited, continuing", "source", id, "error", sr.Err)
		o.notify(ctx, ports.NewEvent(ports.EventTypeSourceRateLimited, id, finished))
	default:
		o.logger.Warn("source failed, continuing", "source", id, "error", sr.Err)
		o.notify(ctx, ports.NewEvent(ports.EventTypeSourceFailed, id, finished))
	}

	return sr
}

// invoke llama a Discover convirtiendo un pánico en un Outcome fallido.
func invoke(ctx context.Context, source ports.Source, target domain.Target) (out domain.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = domain.Failed(source.ID(), fmt.Errorf("%w: %v", domain.ErrSourcePanicked, r))
		}
	}()

	out = source.Discover(ctx, target)
	if out.Results == nil {
		out.Results = domain.NewResultSet()
	}
	if out.Source == "" {
		out.Source = source.ID()
	}
	return out
}

func (o *Orchestrator) cancel(ctx context.Context, report *RunReport) {
	report.Canceled = true
	o.logger.Warn("discovery canceled, returning partial results", "error", ctx.Err())
	o.notify(ctx, ports.NewEvent(ports.EventTypeRunCanceled, "", nil))
}

// notify envía el evento a todos los observers en orden; los errores solo se registran.
func (o *Orchestrator) notify(ctx context.Context, event ports.Event) {
	for _, observer := range o.observers {
		if err := observer.Notify(ctx, event); err != nil {
			o.logger.Warn("notification failed", "event_type", event.Type, "error", err.Error())
		}
	}
}

func dedupeIDs(ids []domain.SourceID) []domain.SourceID {
	seen := make(map[domain.SourceID]bool, len(ids))
	out := make([]domain.SourceID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// sourceResult encapsula el resultado de ejecución de una fuente.
type sourceResult struct {
	SourceReport
	results *domain.ResultSet
}
