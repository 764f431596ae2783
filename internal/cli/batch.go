package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var batchTimeout time.Duration

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Generate briefs for a file of case titles",
	Long: `Batch reads case titles from a file (one per line) and runs the full
pipeline for each, strictly sequentially: the judgment archive is a shared
public resource and the browser session is reused across cases.

Lines starting with # and blank lines are skipped; duplicate titles are
processed once.

Example:
  casebrief batch cases.txt
  casebrief batch cases.txt --skip-existing --timeout 1h`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	registerPipelineFlags(batchCmd)
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for the batch")
}

// ReadTitlesFromFile reads case titles from a file (one per line)
func ReadTitlesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var titles []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Deduplicate titles
		if !seen[line] {
			seen[line] = true
			titles = append(titles, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return titles, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	titles, err := ReadTitlesFromFile(file)
	if err != nil {
		return fmt.Errorf("read titles: %w", err)
	}
	if len(titles) == 0 {
		return fmt.Errorf("no case titles found in %s", file)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Casebrief Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:    %s\n", file)
	fmt.Fprintf(os.Stderr, "  Cases:         %d\n", len(titles))
	fmt.Fprintf(os.Stderr, "  Downloads:     %s\n", cfg.Storage.DownloadDir)
	fmt.Fprintf(os.Stderr, "  Briefs:        %s\n", cfg.Storage.BriefDir)
	fmt.Fprintf(os.Stderr, "  LLM:           %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
	fmt.Fprintf(os.Stderr, "  Timeout:       %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	p, cleanup, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	results := p.ProcessBatch(ctx, titles)

	for _, raw := range titles {
		reportResult(results[raw])
	}

	// Summary
	succeeded := results.Succeeded()
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d cases\n", len(titles))
	fmt.Fprintf(os.Stderr, "  Briefed:   %d\n", succeeded)
	fmt.Fprintf(os.Stderr, "  Other:     %d\n", len(titles)-succeeded)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", cfg.Storage.BriefDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}
