// internal/core/ports/exporter.go
package ports

// Exporter es el port para entregar el conjunto final de resultados.
type Exporter interface {
	// Name retorna el nombre del exporter (ej: "json", "yaml", "text")
	Name() string

	// Export escribe los resultados ya ordenados
	Export(results []string, opts ExportOptions) error
}

// ExportOptions configura las opciones de exportación.
type ExportOptions struct {
	// OutputPath ruta donde guardar el resultado (vacío = stdout)
	OutputPath string

	// FallbackStdout imprime en stdout si la escritura del fichero falla
	FallbackStdout bool
}

// DefaultExportOptions retorna opciones por defecto.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		FallbackStdout: true,
	}
}
