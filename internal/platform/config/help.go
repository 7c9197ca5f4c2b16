// internal/platform/config/help.go
package config

import (
	"fmt"
	"io"
	"runtime"
)

const helpText = `
ONCA - Web Asset Discovery

USAGE:
  onca -d <domain> [options]

CORE OPTIONS:
  -d, --domain string           Target domain (required, e.g., example.com)
  -k, --keyword string          Keyword to refine the web search query
  -s, --sources list            Comma-separated sources, in execution order (default: all)
                                archive (wayback), web-search (google), whois-history (domaintools)
  -T, --timeout int             Global timeout in seconds, 0=no timeout (default: 0)
  -c, --config string           YAML configuration file

OUTPUT OPTIONS:
  -o, --output string           Output file: .json, .yaml/.yml or plain text (default: stdout)
      --strict                  Keep only results whose host contains the domain
      --fallback-stdout         Print results to stdout if the output file fails (default: true)

PACING OPTIONS:
      --delay duration          Pause before each source (default: 3s)
      --throttled-delay dur.    Pause before throttled sources (default: 30s)
  -r, --retries int             Retries on HTTP 500/502/503/504 (default: 3)
      --retry-network-errors    Also retry connection errors and timeouts

DISPLAY OPTIONS:
      --ui string               progress, raw, json or quiet (default: progress)
      --no-progress             Disable progress display (same as --ui quiet)
  -v, --verbose                 Debug logging on stderr
      --log-level string        debug, info, warn, error (default: info)

INFO:
      --list-sources            List available sources and exit
  -V, --version                 Print version information and exit
  -h, --help                    Show this help message

EXAMPLES:
  All sources, results on stdout:
    onca -d example.com

  Web search with keyword, strict filter, JSON file:
    onca -d example.com -k login -s web-search --strict -o results.json

  Faster pacing for a private mirror configured in onca.yaml:
    onca -d example.com -c onca.yaml --delay 1s

ENVIRONMENT VARIABLES:
  Most options can be set with the ONCA_ prefix:

  ONCA_DOMAIN, ONCA_KEYWORD, ONCA_SOURCES=archive,web-search
  ONCA_OUTPUT, ONCA_STRICT=true, ONCA_TIMEOUT=120
  ONCA_DELAY=5s, ONCA_THROTTLED_DELAY=45, ONCA_RETRIES=5
  ONCA_UI=raw, ONCA_LOG_LEVEL=debug, ONCA_CONFIG=onca.yaml

  Precedence: defaults < config file < environment < flags.

OUTPUT:
  Results go to stdout (one per line) or to --output. Progress and logs go to
  stderr. The exit code is 0 whenever the run completes, even if every source
  failed; 2 means invalid configuration or target.
`

// PrintHelp escribe la ayuda en w.
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, helpText)
}

// PrintVersion escribe la información de versión en w.
func PrintVersion(w io.Writer, version, commit, date string) {
	fmt.Fprintf(w, "ONCA %s\n", version)
	fmt.Fprintf(w, "  Commit:  %s\n", commit)
	fmt.Fprintf(w, "  Built:   %s\n", date)
	fmt.Fprintf(w, "  Go:      %s\n", getGoVersion())
}

func getGoVersion() string {
	return runtime.Version()
}
