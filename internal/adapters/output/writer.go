// internal/adapters/output/writer.go
package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Write serializa results en path según su extensión.
// Con path vacío (o "-") escribe una línea por resultado en stdout.
// Los resultados se ordenan antes de escribir; el slice de entrada no se modifica.
func Write(path string, results []string, stdout io.Writer) error {
	sorted := sortedCopy(results)

	if path == "" || path == "-" {
		return Encode(stdout, FormatText, sorted)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := Encode(f, FormatFromPath(path), sorted); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// Encode escribe results en w con el formato indicado.
func Encode(w io.Writer, format Format, results []string) error {
	if results == nil {
		results = []string{}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return nil

	default:
		bw := bufio.NewWriter(w)
		for _, r := range results {
			if _, err := fmt.Fprintln(bw, r); err != nil {
				return fmt.Errorf("failed to write results: %w", err)
			}
		}
		if err := bw.Flush(); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
		return nil
	}
}

func sortedCopy(results []string) []string {
	out := make([]string, len(results))
	copy(out, results)
	sort.Strings(out)
	return out
}
