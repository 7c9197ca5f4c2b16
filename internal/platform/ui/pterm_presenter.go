// internal/platform/ui/pterm_presenter.go
package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"onca/internal/core/domain"
	"onca/internal/core/ports"
)

// PTermPresenter implementa ports.Notifier usando pterm para renderizar
// un spinner por fuente y un resumen final.
type PTermPresenter struct {
	mu sync.Mutex
	w  io.Writer

	spinner *pterm.SpinnerPrinter
	current domain.SourceID
	started time.Time
	lines   []sourceLine
	target  string
}

// NewPTermPresenter crea una nueva instancia del presenter con pterm
func NewPTermPresenter(w io.Writer) *PTermPresenter {
	return &PTermPresenter{w: w}
}

// Notify implementa ports.Notifier.
func (p *PTermPresenter) Notify(ctx context.Context, event ports.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch event.Type {
	case ports.EventTypeRunStarted:
		data, _ := event.Data.(ports.RunStartedEvent)
		p.start(data)
	case ports.EventTypeSourceWaiting:
		data, _ := event.Data.(ports.SourceWaitingEvent)
		p.spin(event.Source, fmt.Sprintf("%s waiting %s before %s",
			StatusWaiting.Symbol(), formatDuration(data.Delay), River.Sprint(event.Source)))
	case ports.EventTypeSourceStarted:
		p.spin(event.Source, fmt.Sprintf("%s querying %s...",
			StatusRunning.Symbol(), River.Sprint(event.Source)))
	case ports.EventTypeSourceCompleted, ports.EventTypeSourceRateLimited, ports.EventTypeSourceFailed:
		data, _ := event.Data.(ports.SourceFinishedEvent)
		p.finishSource(event.Source, data)
	case ports.EventTypeSourceSkipped:
		p.stopSpinner()
		line := sourceLine{name: event.Source.String(), status: StatusSkipped, detail: "not available"}
		p.lines = append(p.lines, line)
		p.renderLine(line)
	case ports.EventTypeRunCanceled:
		p.stopSpinner()
		fmt.Fprintln(p.w, pterm.Warning.Sprint("canceled, keeping partial results"))
	case ports.EventTypeRunCompleted:
		data, _ := event.Data.(ports.RunCompletedEvent)
		p.finish(data)
	}
	return nil
}

// Close limpia recursos del presenter
func (p *PTermPresenter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopSpinner()
	return nil
}

func (p *PTermPresenter) start(data ports.RunStartedEvent) {
	p.started = time.Now()
	p.lines = nil
	p.target = data.Target.Domain

	fmt.Fprint(p.w, Ochre.Sprint(GetBanner(pterm.GetTerminalWidth())))
	fmt.Fprintln(p.w)

	info := fmt.Sprintf("%s Target: %s\n", IconTarget, pterm.Cyan(data.Target.Domain))
	if data.Target.HasKeyword() {
		info += fmt.Sprintf("%s Keyword: %s\n", IconKeyword, pterm.Yellow(data.Target.Keyword))
	}
	info += fmt.Sprintf("%s Sources: %s", IconSources, strings.Join(sourceNames(data.Sources), ", "))

	box := pterm.DefaultBox.
		WithTitle("Discovery").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4)
	fmt.Fprintln(p.w, box.Sprint(info))
	fmt.Fprintln(p.w)
}

func (p *PTermPresenter) spin(id domain.SourceID, text string) {
	if p.spinner != nil && p.current == id {
		p.spinner.UpdateText(text)
		return
	}
	p.stopSpinner()

	spinner, err := pterm.DefaultSpinner.
		WithWriter(p.w).
		WithRemoveWhenDone(true).
		WithStyle(StyleActive).
		WithSequence("⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷").
		Start(text)
	if err != nil {
		// sin spinner: una línea estática basta
		fmt.Fprintln(p.w, text)
		return
	}
	p.spinner = spinner
	p.current = id
}

func (p *PTermPresenter) stopSpinner() {
	if p.spinner == nil {
		return
	}
	_ = p.spinner.Stop()
	p.spinner = nil
	p.current = ""
}

func (p *PTermPresenter) finishSource(id domain.SourceID, data ports.SourceFinishedEvent) {
	p.stopSpinner()

	line := sourceLine{
		name:     id.String(),
		status:   statusFromOutcome(data.Kind),
		count:    data.Count,
		detail:   data.Err,
		duration: formatDuration(data.Duration),
	}
	p.lines = append(p.lines, line)
	p.renderLine(line)
}

// renderLine renderiza una línea con el estado final de una fuente
func (p *PTermPresenter) renderLine(line sourceLine) {
	text := fmt.Sprintf("  %s %s", line.status.Symbol(), line.name)
	if line.duration != "" {
		text += fmt.Sprintf(" (%s)", line.duration)
	}
	if line.status == StatusSuccess {
		text += fmt.Sprintf(" %s %d results", IconResults, line.count)
	} else if line.detail != "" {
		text += " " + line.detail
	}
	fmt.Fprintln(p.w, line.status.Style().Sprint(text))
}

func (p *PTermPresenter) finish(data ports.RunCompletedEvent) {
	p.stopSpinner()

	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, pterm.LightBlue(SeparatorHeavy))

	summary := fmt.Sprintf("%s Duration: %s\n", IconTime, pterm.Green(formatDuration(data.Duration)))
	summary += fmt.Sprintf("%s Results: %s", IconResults, pterm.Cyan(fmt.Sprintf("%d", data.Total)))
	box := pterm.DefaultBox.
		WithTitle(fmt.Sprintf("%s completed", p.target)).
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4)
	fmt.Fprintln(p.w, box.Sprint(summary))

	if len(p.lines) == 0 {
		return
	}

	tableData := pterm.TableData{{"Source", "Status", "Results", "Duration"}}
	for _, line := range p.lines {
		tableData = append(tableData, []string{
			line.name,
			line.status.Style().Sprint(line.status.String()),
			fmt.Sprintf("%d", line.count),
			line.duration,
		})
	}

	rendered, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithData(tableData).
		Srender()
	if err == nil {
		fmt.Fprintln(p.w, rendered)
	}
}
