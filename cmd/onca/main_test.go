// cmd/onca/main_test.go
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"onca/internal/testutil"
)

// stubConfig levanta un servidor por fuente y escribe un YAML que las apunta a ellos.
func stubConfig(t *testing.T, archiveBody, searchBody, whoisBody string) string {
	t.Helper()
	archive := testutil.NewStubServer(t, testutil.StubResponse{Status: http.StatusOK, Body: archiveBody, ContentType: "application/json"})
	search := testutil.NewStubServer(t, testutil.StubResponse{Status: http.StatusOK, Body: searchBody, ContentType: "text/html"})
	whois := testutil.NewStubServer(t, testutil.StubResponse{Status: http.StatusOK, Body: whoisBody, ContentType: "text/html"})

	yml := fmt.Sprintf(`delay: 0s
throttled_delay: 0s
retries: 0
ui: quiet
source_settings:
  archive:
    base_url: %s
  web-search:
    base_url: %s
  whois-history:
    base_url: %s
`, archive.URL, search.URL, whois.URL)

	path := filepath.Join(t.TempDir(), "onca.yaml")
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func lines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"--version"}, &stdout, &stderr)

	testutil.AssertEqual(t, code, exitOK, "exit code")
	testutil.AssertContains(t, stdout.String(), "dev", "version string")
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-h"}, &stdout, &stderr)

	testutil.AssertEqual(t, code, exitOK, "exit code")
	testutil.AssertContains(t, stdout.String(), "--domain", "usage text")
}

func TestRun_ListSources(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"--list-sources"}, &stdout, &stderr)

	testutil.AssertEqual(t, code, exitOK, "exit code")
	out := stdout.String()
	for _, want := range []string{"archive", "web-search", "whois-history", "wayback", "throttled"} {
		testutil.AssertContains(t, out, want, "source listing")
	}
}

func TestRun_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing domain", []string{"--ui", "quiet"}},
		{"invalid domain", []string{"-d", "not a domain", "--ui", "quiet"}},
		{"unknown source", []string{"-d", "example.com", "-s", "bing", "--ui", "quiet"}},
		{"unknown flag", []string{"--nope"}},
		{"invalid ui", []string{"-d", "example.com", "--ui", "fancy"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)
			testutil.AssertEqual(t, code, exitConfig, "exit code")
			testutil.AssertEqual(t, stdout.Len(), 0, "nothing on stdout")
		})
	}
}

func TestRun_AllSources(t *testing.T) {
	cfgPath := stubConfig(t, testutil.ArchiveCDXMixed, testutil.WebSearchPage, testutil.WhoisHistoryPage)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-c", cfgPath, "-d", "example.com"}, &stdout, &stderr)

	testutil.AssertEqual(t, code, exitOK, "exit code")
	testutil.AssertStrings(t, lines(stdout.String()), []string{
		"http://archive.example.com/snap",
		"http://www.example.com/z?a=1",
		"https://blog.example.com/post?id=7",
		"https://example.com/",
		"https://example.com/about",
		"https://example.com/history/2019",
		"https://ns1.example.com",
		"mx://mail.example.com",
	}, "sorted union of every source")
	testutil.AssertContains(t, stderr.String(), "ONCA finished", "summary log")
}

func TestRun_SelectedSourceAndFile(t *testing.T) {
	cfgPath := stubConfig(t, testutil.ArchiveCDXResponse, "<html></html>", "<html></html>")
	outPath := filepath.Join(t.TempDir(), "out", "results.json")
	var stdout, stderr bytes.Buffer

	code := run([]string{"-c", cfgPath, "-d", "example.com", "-s", "wayback", "-o", outPath}, &stdout, &stderr)

	testutil.AssertEqual(t, code, exitOK, "exit code")
	testutil.AssertEqual(t, stdout.Len(), 0, "results go to the file")

	data, err := os.ReadFile(outPath)
	testutil.AssertNoError(t, err, "read output")
	testutil.AssertEqual(t, string(data), "[\n  \"https://example.com/page1\"\n]\n", "json output")
}

func TestRun_Strict(t *testing.T) {
	cdx := `[["urlkey","timestamp","original","mimetype","statuscode","digest","length"],` +
		`["a","1","https://example.com/in","text/html","200","a","1"],` +
		`["b","1","https://other.org/example.com","text/html","200","b","1"]]`
	cfgPath := stubConfig(t, cdx, "<html></html>", "<html></html>")

	t.Run("off", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run([]string{"-c", cfgPath, "-d", "example.com", "-s", "archive"}, &stdout, &stderr)
		testutil.AssertEqual(t, code, exitOK, "exit code")
		testutil.AssertLen(t, lines(stdout.String()), 2, "unfiltered")
	})

	t.Run("on", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run([]string{"-c", cfgPath, "-d", "example.com", "-s", "archive", "--strict"}, &stdout, &stderr)
		testutil.AssertEqual(t, code, exitOK, "exit code")
		testutil.AssertStrings(t, lines(stdout.String()), []string{"https://example.com/in"}, "host filter")
	})
}

func TestRun_FailingSourcesStillSucceed(t *testing.T) {
	archive := testutil.NewStubServer(t, testutil.StubResponse{Status: http.StatusTooManyRequests})
	yml := fmt.Sprintf("delay: 0s\nthrottled_delay: 0s\nretries: 0\nui: raw\nsource_settings:\n  archive:\n    base_url: %s\n", archive.URL)
	path := filepath.Join(t.TempDir(), "onca.yaml")
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	var stdout, stderr bytes.Buffer

	code := run([]string{"-c", path, "-d", "example.com", "-s", "archive"}, &stdout, &stderr)

	testutil.AssertEqual(t, code, exitOK, "exit code")
	testutil.AssertEqual(t, stdout.Len(), 0, "no results")
	testutil.AssertContains(t, stderr.String(), "rate-limited", "raw presenter reports the outcome")
}

func TestRun_OutputFailure(t *testing.T) {
	cfgPath := stubConfig(t, testutil.ArchiveCDXResponse, "<html></html>", "<html></html>")
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer

	code := run([]string{"-c", cfgPath, "-d", "example.com", "-s", "archive", "-o", dir, "--fallback-stdout=false"}, &stdout, &stderr)

	testutil.AssertEqual(t, code, exitOutput, "exit code")
	testutil.AssertEqual(t, stdout.Len(), 0, "no fallback")
}

func TestRootContextWithSignals(t *testing.T) {
	t.Run("timeout", func(t *testing.T) {
		ctx, cancel := rootContextWithSignals(20 * time.Millisecond)
		defer cancel()

		_, hasDeadline := ctx.Deadline()
		testutil.AssertTrue(t, hasDeadline, "deadline set")
		<-ctx.Done()
		testutil.AssertTrue(t, errors.Is(ctx.Err(), context.DeadlineExceeded), "expired")
	})

	t.Run("no timeout", func(t *testing.T) {
		ctx, cancel := rootContextWithSignals(0)
		_, hasDeadline := ctx.Deadline()
		testutil.AssertFalse(t, hasDeadline, "no deadline")

		cancel()
		testutil.AssertTrue(t, errors.Is(ctx.Err(), context.Canceled), "cleanup cancels")
	})
}
