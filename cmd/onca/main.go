// cmd/onca/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"onca/internal/adapters/output"
	"onca/internal/core/domain"
	"onca/internal/core/ports"
	"onca/internal/core/usecases"
	"onca/internal/platform/config"
	"onca/internal/platform/errors"
	"onca/internal/platform/logx"
	"onca/internal/platform/registry"
	"onca/internal/platform/ui"
	"onca/internal/platform/urlfilter"

	// Import sources for auto-registration via init()
	_ "onca/internal/sources/archive"
	_ "onca/internal/sources/websearch"
	_ "onca/internal/sources/whoishistory"
)

var (
	// Rellenables con -ldflags en build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	exitOK     = 0
	exitOutput = 1
	exitConfig = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run ejecuta una búsqueda completa y devuelve el código de salida.
// Una ejecución que termina es exitosa aunque todas las fuentes fallen.
func run(args []string, stdout, stderr io.Writer) int {
	// 1. Config
	cfg, err := config.LoadArgs(args)
	if errors.Is(err, pflag.ErrHelp) {
		config.PrintHelp(stdout)
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: configuration load failed: %v\n", err)
		fmt.Fprintln(stderr, "Try: onca -h for help")
		return exitConfig
	}

	if cfg.PrintVersion {
		config.PrintVersion(stdout, version, commit, date)
		return exitOK
	}

	// 2. Shared logger (stderr; stdout queda para resultados)
	logger := logx.NewWithWriter(stderr, logx.ParseLevel(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		logger.Err(err, "phase", "validation")
		return exitConfig
	}

	reg := registry.Global()
	if cfg.ListSources {
		listSources(stdout, reg)
		return exitOK
	}

	target, err := cfg.Target()
	if err != nil {
		logger.Err(err, "phase", "validation")
		return exitConfig
	}
	ids, err := cfg.SourceIDs()
	if err != nil {
		logger.Err(err, "phase", "validation")
		return exitConfig
	}

	// 3. UI. Con spinners en pantalla, los logs informativos sobran.
	mode := resolveMode(cfg, stderr)
	if mode == ui.ModeProgress && !cfg.Verbose && logx.ParseLevel(cfg.LogLevel) == logx.LevelInfo {
		logger.SetLevel(logx.LevelWarn)
	}
	presenter := ui.NewPresenter(mode, stderr)
	defer presenter.Close()

	logger.Info("ONCA starting",
		"version", version,
		"target", target.Domain,
		"keyword", target.Keyword,
		"sources", len(ids),
		"config", cfg.ConfigPath,
	)

	// 4. Context and signals for clean shutdown
	ctx, cancel := rootContextWithSignals(cfg.Timeout())
	defer cancel()

	// 5. Build sources from registry
	sources, err := reg.Build(ids, cfg.SourceConfigs(), logger)
	if err != nil {
		logger.Err(err, "phase", "source-build")
		return exitConfig
	}

	// 6. Orchestrator
	orch := usecases.NewOrchestrator(usecases.OrchestratorOptions{
		Sources:   sources,
		Policy:    cfg.Policy(reg.ThrottledSources()),
		Logger:    logger,
		Observers: []ports.Notifier{presenter},
	})

	start := time.Now()
	results, report := orch.Run(ctx, target, ids)

	// 7. Strict filter
	if cfg.Strict {
		before := results.Len()
		results = urlfilter.Strict(results, target.Domain)
		logger.Info("strict filter applied", "kept", results.Len(), "dropped", before-results.Len())
	}

	// 8. Output
	sink := output.NewSink(stdout, logger)
	exportOpts := ports.DefaultExportOptions()
	exportOpts.OutputPath = cfg.OutputPath
	exportOpts.FallbackStdout = cfg.FallbackStdout
	if err := sink.Export(results.Sorted(), exportOpts); err != nil {
		logger.Err(err, "phase", "output")
		return exitOutput
	}

	logger.Info("ONCA finished",
		"elapsed_ms", time.Since(start).Milliseconds(),
		"results", results.Len(),
		"invoked", report.Invoked(),
		"ok", report.Count(domain.OutcomeOK),
		"rate_limited", report.Count(domain.OutcomeRateLimited),
		"failed", report.Count(domain.OutcomeFailed),
		"canceled", report.Canceled,
	)
	return exitOK
}

// resolveMode degrada el modo progress a raw cuando stderr no es una terminal.
func resolveMode(cfg config.Config, stderr io.Writer) ui.Mode {
	mode, err := ui.ParseMode(cfg.UIMode)
	if err != nil {
		return ui.ModeQuiet
	}
	if mode == ui.ModeProgress && !isTerminal(stderr) {
		return ui.ModeRaw
	}
	return mode
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// listSources imprime las fuentes registradas en orden de ejecución.
func listSources(w io.Writer, reg *registry.SourceRegistry) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tALIAS\tDELAY\tKEYWORD\tDESCRIPTION")
	for _, id := range reg.List() {
		meta, _ := reg.GetMetadata(id)
		pace := "default"
		if meta.Throttled {
			pace = "throttled"
		}
		keyword := "-"
		if meta.SupportsKeyword {
			keyword = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", id, domain.AliasOf(id), pace, keyword, meta.Description)
	}
	_ = tw.Flush()
}

// rootContextWithSignals creates a root context with optional timeout and signal cancellation.
// Returns a context and cancel function that cleans up all resources (signals, goroutines).
func rootContextWithSignals(timeout time.Duration) (context.Context, context.CancelFunc) {
	var base context.Context
	var baseCancel context.CancelFunc

	if timeout > 0 {
		base, baseCancel = context.WithTimeout(context.Background(), timeout)
	} else {
		base, baseCancel = context.WithCancel(context.Background())
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-ch:
			baseCancel()
		case <-base.Done():
		}
	}()

	cleanupCancel := func() {
		signal.Stop(ch)
		baseCancel()
	}

	return base, cleanupCancel
}
