// internal/adapters/output/sink.go
package output

import (
	"io"

	"onca/internal/core/ports"
	"onca/internal/platform/logx"
)

// Sink implementa ports.Exporter sobre Write.
// Si el fichero no se puede escribir, registra el error y (opcionalmente)
// imprime los resultados en stdout para no perderlos.
type Sink struct {
	stdout io.Writer
	logger logx.Logger
}

var _ ports.Exporter = (*Sink)(nil)

// NewSink crea un sink que usa stdout como salida por defecto.
func NewSink(stdout io.Writer, logger logx.Logger) *Sink {
	if logger == nil {
		logger = logx.NewSilent()
	}
	return &Sink{
		stdout: stdout,
		logger: logger.With("component", "output"),
	}
}

// Name implementa ports.Exporter.
func (s *Sink) Name() string { return "file" }

// Export implementa ports.Exporter.
func (s *Sink) Export(results []string, opts ports.ExportOptions) error {
	err := Write(opts.OutputPath, results, s.stdout)
	if err == nil {
		if opts.OutputPath != "" && opts.OutputPath != "-" {
			s.logger.Info("results written",
				"path", opts.OutputPath,
				"format", FormatFromPath(opts.OutputPath),
				"count", len(results),
			)
		}
		return nil
	}

	s.logger.Err(err, "path", opts.OutputPath)
	if !opts.FallbackStdout || opts.OutputPath == "" || opts.OutputPath == "-" {
		return err
	}

	s.logger.Warn("falling back to stdout", "count", len(results))
	return Write("", results, s.stdout)
}
