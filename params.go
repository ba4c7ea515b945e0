package main

import (
	"strings"
	"time"

	"github.com/clientorders/api-contract-tests/config"

	"github.com/alessio/shellescape"
	"github.com/spf13/cobra"
)

type commandParams struct {
	configFile   string
	baseURL      string
	transcript   string
	timeout      time.Duration
	rateLimit    float64
	awaitTimeout time.Duration
	debug        bool
	trace        bool
}

func (c *commandParams) addFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&c.configFile, "config", "c", "", "YAML config file (default "+config.DefaultFile+" if present)")
	fs.StringVar(&c.baseURL, "url", config.DefaultBaseURL, "base URL of the API")
	fs.StringVarP(&c.transcript, "transcript", "o", "", "transcript file (default result.log next to the executable)")
	fs.DurationVar(&c.timeout, "timeout", time.Second*10, "timeout for each request")
	fs.Float64Var(&c.rateLimit, "rate", 0, "maximum requests per second, 0 for no limit")
	fs.DurationVar(&c.awaitTimeout, "await", 0, "wait up to this long for the API to respond before starting")
	fs.BoolVar(&c.debug, "debug", false, "print requests, responses and debug output for every step")
	fs.BoolVar(&c.trace, "trace", false, "write OpenTelemetry spans to stderr")
}

// resolve loads the configuration and applies the flags that were given explicitly.
func (c *commandParams) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return nil, err
	}
	fs := cmd.Flags()
	if fs.Changed("url") {
		cfg.BaseURL = c.baseURL
	}
	if fs.Changed("transcript") {
		cfg.Transcript = c.transcript
	}
	if fs.Changed("timeout") {
		cfg.Timeout = c.timeout
	}
	if fs.Changed("rate") {
		cfg.RateLimit = c.rateLimit
	}
	if fs.Changed("await") {
		cfg.AwaitTimeout = c.awaitTimeout
	}
	if fs.Changed("debug") {
		cfg.Debug = c.debug
	}
	if fs.Changed("trace") {
		cfg.Trace = c.trace
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
