// internal/platform/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"onca/internal/core/domain"
	"onca/internal/core/ports"
	"onca/internal/platform/errors"
	"onca/internal/platform/rate"
	"onca/internal/platform/ui"
	"onca/internal/platform/validator"
)

// EnvPrefix prefijo de todas las variables de entorno.
const EnvPrefix = "ONCA_"

type Config struct {
	// Target
	Domain  string `yaml:"domain"`
	Keyword string `yaml:"keyword"`

	// Sources: ids o alias en el orden de ejecución (vacío = todas)
	Sources []string `yaml:"sources"`

	// IO
	OutputPath     string `yaml:"output"`
	FallbackStdout bool   `yaml:"fallback_stdout"`
	Strict         bool   `yaml:"strict"`

	// App
	TimeoutS     int    `yaml:"timeout"` // segundos (0 = sin timeout)
	Verbose      bool   `yaml:"verbose"`
	LogLevel     string `yaml:"log_level"`
	UIMode       string `yaml:"ui"`
	NoProgress   bool   `yaml:"-"`
	ListSources  bool   `yaml:"-"`
	PrintVersion bool   `yaml:"-"`
	ConfigPath   string `yaml:"-"`

	// Pacing
	Delay          time.Duration `yaml:"delay"`
	ThrottledDelay time.Duration `yaml:"throttled_delay"`

	// Resilience
	Retries            int           `yaml:"retries"`
	RetryBackoff       time.Duration `yaml:"retry_backoff"`
	RetryNetworkErrors bool          `yaml:"retry_network_errors"`

	// SourceSettings ajustes por fuente; clave = id o alias
	SourceSettings map[string]SourceSettings `yaml:"source_settings"`
}

// SourceSettings ajustes opcionales de una fuente concreta (solo fichero YAML).
type SourceSettings struct {
	Timeout    time.Duration          `yaml:"timeout"`
	Retries    *int                   `yaml:"retries"`
	Delay      *time.Duration         `yaml:"delay"`
	RateLimit  float64                `yaml:"rate_limit"`
	BaseURL    string                 `yaml:"base_url"`
	UserAgents []string               `yaml:"user_agents"`
	Options    map[string]interface{} `yaml:"options"`

	// MaxBodyBytes tope del cuerpo de respuesta; -1 sin tope
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// DefaultConfig retorna una configuración por defecto.
func DefaultConfig() Config {
	return Config{
		FallbackStdout: true,
		TimeoutS:       0,
		LogLevel:       "info",
		UIMode:         string(ui.ModeProgress),
		Delay:          rate.DefaultDelay,
		ThrottledDelay: rate.ThrottledDelay,
		Retries:        3,
		RetryBackoff:   1 * time.Second,
		SourceSettings: map[string]SourceSettings{},
	}
}

// LoadArgs aplica, en orden de prioridad creciente: defaults, fichero YAML, ENV y flags.
// Retorna pflag.ErrHelp si se pidió la ayuda.
func LoadArgs(args []string) (Config, error) {
	cfg := DefaultConfig()

	// El fichero se conoce antes de parsear el resto de flags
	path := configPathFromArgs(args)
	if path == "" {
		path = getenv(EnvPrefix+"CONFIG", "")
	}
	if path != "" {
		if err := loadFromFile(&cfg, path); err != nil {
			return cfg, err
		}
		cfg.ConfigPath = path
	}

	if err := loadFromEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := loadFromFlags(&cfg, args); err != nil {
		return cfg, err
	}

	normalize(&cfg)

	return cfg, nil
}

// configPathFromArgs busca -c/--config sin fallar por el resto de flags.
func configPathFromArgs(args []string) string {
	fs := pflag.NewFlagSet("onca-preparse", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(discard{})
	fs.Usage = func() {}

	var path string
	fs.StringVarP(&path, "config", "c", "", "")
	_ = fs.Parse(args)
	return path
}

// loadFromFile carga un fichero YAML sobre cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading config file %s", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrapf(err, "parsing config file %s", path)
	}
	return nil
}

// loadFromEnv carga configuración desde variables de entorno.
func loadFromEnv(cfg *Config) error {
	if v := getenv(EnvPrefix+"DOMAIN", ""); v != "" {
		cfg.Domain = v
	}
	if v := getenv(EnvPrefix+"KEYWORD", ""); v != "" {
		cfg.Keyword = v
	}
	if v := getenv(EnvPrefix+"SOURCES", ""); v != "" {
		cfg.Sources = splitList(v)
	}
	if v := getenv(EnvPrefix+"OUTPUT", ""); v != "" {
		cfg.OutputPath = v
	}
	if v := getenv(EnvPrefix+"STRICT", ""); v != "" {
		cfg.Strict = parseBool(v)
	}
	if v := getenv(EnvPrefix+"FALLBACK_STDOUT", ""); v != "" {
		cfg.FallbackStdout = parseBool(v)
	}
	if v := getenv(EnvPrefix+"TIMEOUT", ""); v != "" {
		cfg.TimeoutS = parseInt(v, cfg.TimeoutS)
	}
	if v := getenv(EnvPrefix+"LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv(EnvPrefix+"UI", ""); v != "" {
		cfg.UIMode = v
	}
	if v := getenv(EnvPrefix+"RETRIES", ""); v != "" {
		cfg.Retries = parseInt(v, cfg.Retries)
	}
	if v := getenv(EnvPrefix+"RETRY_NETWORK_ERRORS", ""); v != "" {
		cfg.RetryNetworkErrors = parseBool(v)
	}

	var err error
	if v := getenv(EnvPrefix+"DELAY", ""); v != "" {
		if cfg.Delay, err = parseDuration(v); err != nil {
			return errors.Wrapf(err, "%sDELAY", EnvPrefix)
		}
	}
	if v := getenv(EnvPrefix+"THROTTLED_DELAY", ""); v != "" {
		if cfg.ThrottledDelay, err = parseDuration(v); err != nil {
			return errors.Wrapf(err, "%sTHROTTLED_DELAY", EnvPrefix)
		}
	}
	return nil
}

// loadFromFlags parsea flags de CLI. Los defaults de cada flag son los valores
// ya cargados, de modo que solo los flags presentes sobrescriben.
func loadFromFlags(cfg *Config, args []string) error {
	fs := pflag.NewFlagSet("onca", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.SetOutput(discard{})
	fs.Usage = func() {}

	fs.StringVarP(&cfg.Domain, "domain", "d", cfg.Domain, "Target domain (e.g., example.com)")
	fs.StringVarP(&cfg.Keyword, "keyword", "k", cfg.Keyword, "Keyword to refine web search")
	fs.StringSliceVarP(&cfg.Sources, "sources", "s", cfg.Sources, "Comma-separated sources (default: all)")
	fs.StringVarP(&cfg.OutputPath, "output", "o", cfg.OutputPath, "Output file (.json, .yaml/.yml or text)")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "Keep only results whose host contains the domain")
	fs.BoolVar(&cfg.FallbackStdout, "fallback-stdout", cfg.FallbackStdout, "Print results to stdout if the output file fails")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Debug logging")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVarP(&cfg.ConfigPath, "config", "c", cfg.ConfigPath, "YAML configuration file")
	fs.IntVarP(&cfg.TimeoutS, "timeout", "T", cfg.TimeoutS, "Global timeout in seconds (0 = none)")
	fs.DurationVar(&cfg.Delay, "delay", cfg.Delay, "Pause before each source")
	fs.DurationVar(&cfg.ThrottledDelay, "throttled-delay", cfg.ThrottledDelay, "Pause before throttled sources")
	fs.IntVarP(&cfg.Retries, "retries", "r", cfg.Retries, "Retries on transient HTTP 5xx")
	fs.BoolVar(&cfg.RetryNetworkErrors, "retry-network-errors", cfg.RetryNetworkErrors, "Also retry connection errors and timeouts")
	fs.StringVar(&cfg.UIMode, "ui", cfg.UIMode, "Progress display: progress, raw, json, quiet")
	fs.BoolVar(&cfg.NoProgress, "no-progress", cfg.NoProgress, "Disable progress display")
	fs.BoolVar(&cfg.ListSources, "list-sources", false, "List available sources and exit")
	fs.BoolVarP(&cfg.PrintVersion, "version", "V", false, "Print version information and exit")

	return fs.Parse(args)
}

func normalize(c *Config) {
	c.Domain = validator.NormalizeDomain(c.Domain)
	c.Keyword = strings.TrimSpace(c.Keyword)
	c.OutputPath = strings.TrimSpace(c.OutputPath)
	c.Sources = splitList(strings.Join(c.Sources, ","))

	if c.TimeoutS < 0 {
		c.TimeoutS = 0
	}
	if c.Verbose {
		c.LogLevel = "debug"
	}
	if c.NoProgress {
		c.UIMode = string(ui.ModeQuiet)
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = 1 * time.Second
	}
	if c.SourceSettings == nil {
		c.SourceSettings = map[string]SourceSettings{}
	}
}

// Validate comprueba que la configuración permite una ejecución.
// --list-sources y --version no requieren dominio.
func (c Config) Validate() error {
	var errs []error

	if !c.ListSources && !c.PrintVersion {
		if _, err := c.Target(); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := c.SourceIDs(); err != nil {
		errs = append(errs, err)
	}
	if _, err := ui.ParseMode(c.UIMode); err != nil {
		errs = append(errs, err)
	}
	if c.Retries < 0 {
		errs = append(errs, fmt.Errorf("%w: retries must be non-negative, got %d", errors.ErrInvalidInput, c.Retries))
	}
	if c.Delay < 0 || c.ThrottledDelay < 0 {
		errs = append(errs, fmt.Errorf("%w: delays must be non-negative", errors.ErrInvalidInput))
	}
	for key, s := range c.SourceSettings {
		if _, err := domain.ParseSourceID(key); err != nil {
			errs = append(errs, errors.Wrap(err, "source_settings"))
		}
		if s.Retries != nil && *s.Retries < 0 {
			errs = append(errs, fmt.Errorf("%w: source_settings.%s.retries must be non-negative", errors.ErrInvalidInput, key))
		}
	}

	return errors.Join(errs...)
}

// Target construye y valida el objetivo.
func (c Config) Target() (domain.Target, error) {
	return domain.NewTarget(c.Domain, c.Keyword)
}

// SourceIDs traduce la lista de fuentes (con alias) a ids; vacío = todas.
func (c Config) SourceIDs() ([]domain.SourceID, error) {
	if len(c.Sources) == 0 {
		return domain.AllSourceIDs(), nil
	}
	return domain.ParseSourceIDs(c.Sources)
}

// Timeout devuelve un time.Duration útil si prefieres trabajar con duración.
func (c Config) Timeout() time.Duration {
	if c.TimeoutS <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutS) * time.Second
}

// SourceConfigs construye la configuración de cada fuente combinando
// los valores globales con source_settings. Claves inválidas se ignoran (ver Validate).
func (c Config) SourceConfigs() map[domain.SourceID]ports.SourceConfig {
	out := make(map[domain.SourceID]ports.SourceConfig, len(domain.AllSourceIDs()))

	for _, id := range domain.AllSourceIDs() {
		sc := ports.DefaultSourceConfig()
		sc.Retries = c.Retries
		sc.RetryBackoff = c.RetryBackoff
		sc.RetryNetworkErrors = c.RetryNetworkErrors
		out[id] = sc
	}

	for key, s := range c.SourceSettings {
		id, err := domain.ParseSourceID(key)
		if err != nil {
			continue
		}
		sc := out[id]
		sc.Timeout = s.Timeout
		if s.Retries != nil {
			sc.Retries = *s.Retries
		}
		sc.RateLimit = s.RateLimit
		sc.BaseURL = s.BaseURL
		sc.UserAgents = s.UserAgents
		sc.MaxBodyBytes = s.MaxBodyBytes
		for k, v := range s.Options {
			sc.Custom[k] = v
		}
		out[id] = sc
	}

	return out
}

// Policy construye la política de pausas. throttled son las fuentes marcadas
// como agresivas en el registry.
func (c Config) Policy(throttled []domain.SourceID) *rate.Policy {
	p := rate.NewPolicy(c.Delay, c.ThrottledDelay).MarkThrottled(throttled...)
	for key, s := range c.SourceSettings {
		if s.Delay == nil {
			continue
		}
		if id, err := domain.ParseSourceID(key); err == nil {
			p.Override(id, *s.Delay)
		}
	}
	return p
}

// Helpers

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

// parseDuration acepta "3s", "500ms" o un entero (segundos).
func parseDuration(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid duration %q", errors.ErrInvalidInput, v)
	}
	return d, nil
}

// splitList separa por comas, recorta y descarta vacíos.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
