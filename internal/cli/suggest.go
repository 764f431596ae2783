package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ppiankov/casebrief/internal/llm"
	"github.com/ppiankov/casebrief/internal/model"
	"github.com/ppiankov/casebrief/internal/title"
)

var suggestTimeout time.Duration

// suggestCmd represents the suggest command
var suggestCmd = &cobra.Command{
	Use:   "suggest <legal issue>",
	Short: "Suggest landmark Supreme Court cases for a legal issue",
	Long: `Suggest asks the completion service for landmark Indian Supreme Court
cases relevant to a plain-language legal issue and prints their canonical
titles, ready to feed into brief or batch.

Example:
  casebrief suggest "right to privacy"
  casebrief suggest "freedom of speech on the internet" | tee cases.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)

	defaults := model.DefaultConfig()
	suggestCmd.Flags().DurationVar(&suggestTimeout, "timeout", 2*time.Minute, "timeout for the suggestion request")
	suggestCmd.Flags().StringVar(&llmProvider, "llm-provider", defaults.LLM.Provider, "completion provider (openai, openrouter, ollama)")
	suggestCmd.Flags().StringVar(&llmModel, "llm-model", defaults.LLM.Model, "completion model name")
	suggestCmd.Flags().StringVar(&llmBaseURL, "llm-base-url", defaults.LLM.BaseURL, "completion service base URL")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	issue := strings.Join(args, " ")

	cfg := model.DefaultConfig()
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	cfg.LLM.BaseURL = llmBaseURL
	if err := resolveAPIKey(cfg); err != nil {
		return err
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return fmt.Errorf("initialize completion provider: %w", err)
	}
	synthesizer := llm.NewSynthesizer(provider, llm.ConfigFromModel(cfg.LLM), logrus.WithField("component", "suggest"))

	ctx, cancel := context.WithTimeout(context.Background(), suggestTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Asking %s/%s for cases on: %s\n", cfg.LLM.Provider, cfg.LLM.Model, issue)
	}

	titles, err := synthesizer.SuggestTitles(ctx, issue)
	if err != nil {
		return fmt.Errorf("suggest cases: %w", err)
	}

	// Canonical forms go to stdout so the output pipes into batch input
	for _, raw := range titles {
		fmt.Println(title.Normalize(raw))
	}
	return nil
}
