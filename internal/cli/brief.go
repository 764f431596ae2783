package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ppiankov/casebrief/internal/acquire"
	"github.com/ppiankov/casebrief/internal/cache"
	"github.com/ppiankov/casebrief/internal/extract"
	"github.com/ppiankov/casebrief/internal/llm"
	"github.com/ppiankov/casebrief/internal/model"
	"github.com/ppiankov/casebrief/internal/pipeline"
	"github.com/ppiankov/casebrief/internal/render"
)

var (
	downloadDir     string
	briefDir        string
	chromePath      string
	headless        bool
	noRobots        bool
	noCache         bool
	skipExisting    bool
	stepTimeout     time.Duration
	downloadTimeout time.Duration
	caseTimeout     time.Duration
	llmProvider     string
	llmModel        string
	llmBaseURL      string
	llmRetries      int
)

// briefCmd represents the brief command
var briefCmd = &cobra.Command{
	Use:   "brief <case title>...",
	Short: "Download judgments and generate case briefs",
	Long: `Brief runs the full pipeline for one or more case titles:
- Normalize the title into its canonical search form
- Search the judgment archive and download the judgment PDF
  (skipped when downloads/<title>.pdf already exists)
- Extract the judgment text
- Synthesize a structured nine-section brief via the completion service
- Render the brief as a styled PDF under briefs/

Example:
  casebrief brief "Kesavananda Bharati v. State of Kerala"
  casebrief brief "Maneka Gandhi vs Union of India" "Minerva Mills vs Union of India"
  casebrief brief "Some Case vs State" --llm-provider ollama --llm-model llama3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBrief,
}

func init() {
	rootCmd.AddCommand(briefCmd)
	registerPipelineFlags(briefCmd)
}

// registerPipelineFlags adds the flags shared by brief and batch
func registerPipelineFlags(cmd *cobra.Command) {
	defaults := model.DefaultConfig()

	// Storage flags
	cmd.Flags().StringVar(&downloadDir, "download-dir", defaults.Storage.DownloadDir, "directory for downloaded judgment PDFs")
	cmd.Flags().StringVar(&briefDir, "brief-dir", defaults.Storage.BriefDir, "directory for rendered brief PDFs")
	cmd.Flags().BoolVar(&skipExisting, "skip-existing", false, "skip cases whose rendered brief already exists")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the extracted-text cache")

	// Browser flags
	cmd.Flags().StringVar(&chromePath, "chrome", "", "path to the Chrome/Chromium binary (default: CHROME_BIN or lookup)")
	cmd.Flags().BoolVar(&headless, "headless", true, "run the browser headless")
	cmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip the robots.txt check")
	cmd.Flags().DurationVar(&stepTimeout, "step-timeout", defaults.Browser.StepTimeout, "timeout for each browser protocol step")
	cmd.Flags().DurationVar(&downloadTimeout, "download-timeout", defaults.Browser.DownloadTimeout, "timeout for the PDF download wait")
	cmd.Flags().DurationVar(&caseTimeout, "case-timeout", 5*time.Minute, "overall timeout per case")

	// LLM flags
	cmd.Flags().StringVar(&llmProvider, "llm-provider", defaults.LLM.Provider, "completion provider (openai, openrouter, ollama)")
	cmd.Flags().StringVar(&llmModel, "llm-model", defaults.LLM.Model, "completion model name")
	cmd.Flags().StringVar(&llmBaseURL, "llm-base-url", defaults.LLM.BaseURL, "completion service base URL")
	cmd.Flags().IntVar(&llmRetries, "llm-retries", defaults.LLM.Retries, "completion retries after the first attempt")
}

// buildConfig assembles the effective configuration from defaults + flags + env
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	cfg.Storage.DownloadDir = downloadDir
	cfg.Storage.BriefDir = briefDir
	cfg.Storage.SkipExistingBrief = skipExisting
	cfg.Cache.Enabled = !noCache

	cfg.Browser.ChromePath = chromePath
	cfg.Browser.Headless = headless
	cfg.Browser.RespectRobots = !noRobots
	cfg.Browser.StepTimeout = stepTimeout
	cfg.Browser.DownloadTimeout = downloadTimeout

	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	cfg.LLM.BaseURL = llmBaseURL
	cfg.LLM.Retries = llmRetries
	cfg.Output.Verbose = verbose

	if err := resolveAPIKey(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveAPIKey pulls the provider credential from the environment
func resolveAPIKey(cfg *model.Config) error {
	switch cfg.LLM.Provider {
	case "openai", "openrouter":
		cfg.LLM.APIKey = os.Getenv("OPENROUTER_API_KEY")
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENROUTER_API_KEY or OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key. The OpenRouter base URL default
		// makes no sense for it; drop it so the provider falls back to the
		// local daemon.
		if cfg.LLM.BaseURL == model.DefaultConfig().LLM.BaseURL {
			cfg.LLM.BaseURL = ""
		}
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}

// buildPipeline wires every stage together over one shared browser session.
// The returned cleanup must run after the batch to tear the session down.
func buildPipeline(cfg *model.Config) (*pipeline.Pipeline, func(), error) {
	log := logrus.WithField("component", "casebrief")

	if err := os.MkdirAll(cfg.Storage.DownloadDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("create download directory: %w", err)
	}

	driver, err := acquire.NewChromeDriver(cfg.Storage.DownloadDir, cfg.Browser.ChromePath, cfg.Browser.Headless)
	if err != nil {
		return nil, nil, fmt.Errorf("start browser: %w", err)
	}
	engine := acquire.NewEngine(driver, cfg.Browser, cfg.RateLimiting, cfg.Storage.DownloadDir, log)

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		_ = driver.Close()
		return nil, nil, fmt.Errorf("initialize completion provider: %w", err)
	}
	synthesizer := llm.NewSynthesizer(provider, llm.ConfigFromModel(cfg.LLM), log)

	printer := render.NewChromePrinter(cfg.Browser.ChromePath, 2*time.Minute)
	renderer := render.NewRenderer(printer, log)

	var textCache cache.Cache
	if cfg.Cache.Enabled {
		textCache = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
	}

	p := pipeline.NewPipeline(cfg, pipeline.Options{
		Acquirer:    engine,
		Extractor:   extract.NewPDFExtractor(),
		Synthesizer: synthesizer,
		Renderer:    renderer,
		TextCache:   textCache,
	}, log)

	cleanup := func() { _ = driver.Close() }
	return p, cleanup, nil
}

// reportResult writes one case outcome line to stderr
func reportResult(r model.CaseResult) {
	switch r.Status {
	case model.StatusBriefed:
		fmt.Fprintf(os.Stderr, "✓ %s: %s\n", r.Title, r.Status)
	case model.StatusSkippedExisting:
		fmt.Fprintf(os.Stderr, "- %s: %s\n", r.Title, r.Status)
	default:
		fmt.Fprintf(os.Stderr, "✗ %s: %s (%s)\n", r.Title, r.Status, r.Message)
	}
}

func runBrief(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, cleanup, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	failures := 0
	for _, raw := range args {
		ctx, cancel := context.WithTimeout(context.Background(), caseTimeout)
		result := p.ProcessTitle(ctx, raw)
		cancel()

		reportResult(result)
		if !result.OK() && result.Status != model.StatusSkippedExisting {
			failures++
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d cases failed", failures, len(args))
	}
	return nil
}
