// internal/adapters/output/writer_test.go
package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"onca/internal/core/ports"
	"onca/internal/platform/logx"
	"onca/internal/testutil"
)

var unsorted = []string{
	"https://example.com/b",
	"mx://mail.example.com",
	"https://example.com/a",
}

var sorted = []string{
	"https://example.com/a",
	"https://example.com/b",
	"mx://mail.example.com",
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"out.json", FormatJSON},
		{"OUT.JSON", FormatJSON},
		{"dir/out.yaml", FormatYAML},
		{"out.yml", FormatYAML},
		{"out.txt", FormatText},
		{"results", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			testutil.AssertEqual(t, FormatFromPath(tt.path), tt.want, "format")
		})
	}
}

func TestWrite_Stdout(t *testing.T) {
	var buf bytes.Buffer

	err := Write("", unsorted, &buf)

	testutil.AssertNoError(t, err, "write to stdout")
	testutil.AssertEqual(t, buf.String(),
		"https://example.com/a\nhttps://example.com/b\nmx://mail.example.com\n",
		"one sorted result per line")
	testutil.AssertEqual(t, unsorted[0], "https://example.com/b", "input not reordered")
}

func TestWrite_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	testutil.AssertNoError(t, Write(path, unsorted, nil), "write json")

	raw, err := os.ReadFile(path)
	testutil.AssertNoError(t, err, "read file")
	testutil.AssertEqual(t, string(raw),
		"[\n  \"https://example.com/a\",\n  \"https://example.com/b\",\n  \"mx://mail.example.com\"\n]\n",
		"indented json array")

	var decoded []string
	testutil.AssertNoError(t, json.Unmarshal(raw, &decoded), "valid json")
	testutil.AssertStrings(t, decoded, sorted, "json content")
}

func TestWrite_JSONDoesNotEscapeQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	testutil.AssertNoError(t, Write(path, []string{"https://example.com/?a=1&b=2"}, nil), "write json")

	raw, _ := os.ReadFile(path)
	testutil.AssertContains(t, string(raw), "?a=1&b=2", "ampersand kept literal")
}

func TestWrite_EmptyJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	testutil.AssertNoError(t, Write(path, nil, nil), "write empty")

	raw, _ := os.ReadFile(path)
	testutil.AssertEqual(t, string(raw), "[]\n", "empty array, not null")
}

func TestWrite_YAML(t *testing.T) {
	for _, name := range []string{"out.yaml", "out.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			testutil.AssertNoError(t, Write(path, unsorted, nil), "write yaml")

			raw, err := os.ReadFile(path)
			testutil.AssertNoError(t, err, "read file")

			var decoded []string
			testutil.AssertNoError(t, yaml.Unmarshal(raw, &decoded), "valid yaml")
			testutil.AssertStrings(t, decoded, sorted, "yaml content")
		})
	}
}

func TestWrite_TextFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "out.txt")

	testutil.AssertNoError(t, Write(path, unsorted, nil), "write text")

	raw, err := os.ReadFile(path)
	testutil.AssertNoError(t, err, "read file")
	testutil.AssertEqual(t, string(raw),
		"https://example.com/a\nhttps://example.com/b\nmx://mail.example.com\n",
		"newline separated text")
}

func TestWrite_Error(t *testing.T) {
	dir := t.TempDir()

	// un directorio no se puede abrir como fichero
	err := Write(dir, unsorted, nil)

	testutil.AssertError(t, err, "writing onto a directory fails")
}

func TestSink_Export(t *testing.T) {
	var stdout bytes.Buffer
	sink := NewSink(&stdout, logx.NewSilent())
	path := filepath.Join(t.TempDir(), "out.txt")

	err := sink.Export(unsorted, ports.ExportOptions{OutputPath: path, FallbackStdout: true})

	testutil.AssertNoError(t, err, "export")
	testutil.AssertEqual(t, stdout.Len(), 0, "nothing printed when the file is written")
	testutil.AssertEqual(t, sink.Name(), "file", "name")
}

func TestSink_Export_FallbackStdout(t *testing.T) {
	var stdout, logs bytes.Buffer
	sink := NewSink(&stdout, logx.NewWithWriter(&logs, logx.LevelInfo))

	err := sink.Export(unsorted, ports.ExportOptions{OutputPath: t.TempDir(), FallbackStdout: true})

	testutil.AssertNoError(t, err, "fallback succeeds")
	testutil.AssertEqual(t, stdout.String(),
		"https://example.com/a\nhttps://example.com/b\nmx://mail.example.com\n",
		"results printed to stdout")
	testutil.AssertContains(t, logs.String(), "ERR", "write error logged")
	testutil.AssertContains(t, logs.String(), "falling back to stdout", "fallback logged")
}

func TestSink_Export_NoFallback(t *testing.T) {
	var stdout bytes.Buffer
	sink := NewSink(&stdout, nil)

	err := sink.Export(unsorted, ports.ExportOptions{OutputPath: t.TempDir(), FallbackStdout: false})

	testutil.AssertError(t, err, "error returned without fallback")
	testutil.AssertEqual(t, stdout.Len(), 0, "nothing printed")
}

func TestSink_Export_StdoutDefault(t *testing.T) {
	var stdout bytes.Buffer
	sink := NewSink(&stdout, nil)

	testutil.AssertNoError(t, sink.Export(unsorted, ports.DefaultExportOptions()), "export to stdout")
	testutil.AssertEqual(t, stdout.String(),
		"https://example.com/a\nhttps://example.com/b\nmx://mail.example.com\n",
		"stdout output")
}
