package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/openaipro/openaipro/pkg/config"
	"github.com/openaipro/openaipro/pkg/modeladapter"
	"github.com/openaipro/openaipro/pkg/providers/openai"
	"github.com/openaipro/openaipro/pkg/request"
)

func main() {
	// Handle subcommands before flag parsing.
	if len(os.Args) > 1 && os.Args[1] == "init" {
		initCmd := flag.NewFlagSet("init", flag.ExitOnError)
		initCmd.Usage = func() {
			fmt.Fprintf(os.Stderr, "Usage: openaipro init [flags]\n\nCreate a config file interactively.\n\nFlags:\n")
			initCmd.PrintDefaults()
		}
		cfgPath := initCmd.String("config", ".openaipro.yaml", "path to write the configuration file")
		_ = initCmd.Parse(os.Args[2:])

		if err := runInit(*cfgPath); err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
			os.Exit(1)
		}

		return
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: openaipro [flags] \"query\"\n       openaipro <command> [flags]\n\nFlags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands:\n  init    Create a config file interactively\n")
	}

	opts := cliOptions{}
	flag.StringVar(&opts.Context, "context", "", "context text or path to a context file")
	flag.StringVar(&opts.Model, "model", "", fmt.Sprintf("model to use (default: %s)", request.DefaultModel))
	flag.StringVar(&opts.Effort, "reasoning-effort", "", "reasoning effort level: low, medium, or high")
	flag.StringVar(&opts.MaxTokens, "max-tokens", "", "maximum tokens in the response")
	flag.StringVar(&opts.Temperature, "temperature", "", "response randomness (0.0-2.0)")
	flag.StringVar(&opts.ConfigPath, "config", "", "path to configuration file (default: .openaipro.yaml, then ~/.openaipro.yaml)")
	envFile := flag.String("env", ".env", "path to .env file (ignored if missing)")
	flag.BoolVar(&opts.Plain, "plain", false, "print the completion as plain text without markdown rendering")
	flag.BoolVar(&opts.Quiet, "quiet", false, "disable the progress spinner")
	flag.BoolVar(&opts.Verbose, "verbose", false, "report model, token usage, and rate limit headroom on stderr")
	flag.Parse()

	if err := loadDotEnv(*envFile); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}

	if err := run(flag.Args(), opts); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

// cliOptions are the raw flag values; option parsing and validation belong to
// pkg/request.
type cliOptions struct {
	Context     string
	Model       string
	Effort      string
	MaxTokens   string
	Temperature string
	ConfigPath  string
	Plain       bool
	Quiet       bool
	Verbose     bool
}

func run(args []string, opts cliOptions) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	req, err := request.Resolve(rawInputs(args, opts, cfg))
	if err != nil {
		return err
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("%w: set OPENAI_API_KEY or add api_key to the config", modeladapter.ErrMissingCredential)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = openai.DefaultBaseURL
	}

	adapter := openai.New(baseURL, apiKey, nil)
	adapter.Instructions = cfg.Instructions

	call := func() (openai.Completion, error) {
		return adapter.Complete(ctx, req)
	}

	var completion openai.Completion
	if opts.Quiet {
		completion, err = call()
	} else {
		completion, err = completeWithSpinner(call)
	}
	if err != nil {
		return err
	}

	text := completion.Text
	if !opts.Plain {
		text = renderMarkdown(text)
	}
	fmt.Println(text)

	if opts.Verbose {
		reportVerbose(adapter, req, completion)
	}

	return nil
}

// rawInputs merges flag values with config defaults; a flag always wins and
// config defaults are handed to the resolver unparsed so it owns validation.
func rawInputs(args []string, opts cliOptions, cfg config.Config) request.Raw {
	raw := request.Raw{
		Query:       strings.Join(args, " "),
		Context:     opts.Context,
		Model:       opts.Model,
		Effort:      opts.Effort,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}

	if raw.Model == "" {
		raw.Model = cfg.Model
	}
	if raw.Effort == "" {
		raw.Effort = cfg.ReasoningEffort
	}
	if raw.MaxTokens == "" && cfg.MaxTokens > 0 {
		raw.MaxTokens = strconv.Itoa(cfg.MaxTokens)
	}
	if raw.Temperature == "" && cfg.Temperature != nil {
		raw.Temperature = strconv.FormatFloat(*cfg.Temperature, 'g', -1, 64)
	}

	return raw
}

// loadConfig loads the resolved config file. A missing default config is not
// an error; a missing explicit --config is.
func loadConfig(explicit string) (config.Config, error) {
	path := resolveConfigPath(explicit)
	if path == "" {
		return config.Config{}, nil
	}

	if explicit == "" {
		if _, err := os.Stat(path); err != nil {
			return config.Config{}, nil
		}
	}

	return config.Load(path)
}

func reportVerbose(adapter *openai.Adapter, req request.Request, completion openai.Completion) {
	fmt.Fprintln(os.Stderr, dimStyle.Render(fmt.Sprintf("model: %s", req.Model)))
	fmt.Fprintln(os.Stderr, dimStyle.Render(fmt.Sprintf("tokens: %s in / %s out",
		fmtTokens(completion.Usage.InputTokens), fmtTokens(completion.Usage.OutputTokens))))

	if info := adapter.LastRateLimitInfo(); info != nil {
		fmt.Fprintln(os.Stderr, dimStyle.Render(fmt.Sprintf("rate limit: %d requests / %s tokens remaining",
			info.RemainingRequests, fmtTokens(info.RemainingTokens))))
	}
}
