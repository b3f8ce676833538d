package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/gavel-review/gavel/internal/analyzer"
	"github.com/gavel-review/gavel/internal/cache"
	"github.com/gavel-review/gavel/internal/config"
	"github.com/gavel-review/gavel/internal/diff"
	"github.com/gavel-review/gavel/internal/llm"
	"github.com/gavel-review/gavel/internal/output"
	"github.com/gavel-review/gavel/internal/project"
	"github.com/gavel-review/gavel/internal/review"
)

var (
	flagConfig     string
	flagDiff       string
	flagPatch      string
	flagGit        string
	flagPR         int
	flagRefresh    bool
	flagOutputOnly bool
	flagJSON       bool
	flagExitCode   bool
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review a set of code changes",
	Long: `Review code changes against the cached project context.

The diff can come from --diff (inline JSON or a JSON file), --patch (a
unified diff file, "-" for stdin), --git (a local git diff), or JSON on
stdin when no source flag is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		entries, err := loadEntries()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		result, ok := runPipeline(cmd.Context(), cfg, entries)
		if !ok {
			return nil
		}
		printResult(cfg, result)
		return nil
	},
}

func init() {
	reviewCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "Path to config file")
	reviewCmd.Flags().StringVarP(&flagDiff, "diff", "d", "", "JSON diff data or path to a JSON diff file")
	reviewCmd.Flags().StringVar(&flagPatch, "patch", "", `Unified diff file ("-" for stdin)`)
	reviewCmd.Flags().StringVar(&flagGit, "git", "", "Review a local git diff for the given revision range")
	reviewCmd.Flags().Lookup("git").NoOptDefVal = "HEAD"
	reviewCmd.Flags().IntVarP(&flagPR, "pr", "p", 0, "Pull request number (used in report names)")
	reviewCmd.Flags().BoolVarP(&flagRefresh, "refresh", "r", false, "Force a fresh project analysis")
	reviewCmd.Flags().BoolVar(&flagOutputOnly, "output-only", false, "Print output without saving report files")
	reviewCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the full result as JSON")
	reviewCmd.Flags().BoolVar(&flagExitCode, "exit-code", false, "Exit 1 when the conclusion is needs_review")
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagRefresh {
		cfg.Cache.ForceRefresh = true
	}
	if err := cfg.Validate(knownProvider); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func knownProvider(name string) bool {
	for _, info := range llm.Providers() {
		if info.Name == name {
			return true
		}
	}
	return false
}

// loadEntries resolves the diff source flags into entries. Precedence:
// --patch, then --git, then --diff, then stdin.
func loadEntries() ([]diff.Entry, error) {
	switch {
	case flagPatch != "":
		r := io.Reader(os.Stdin)
		if flagPatch != "-" {
			f, err := os.Open(flagPatch)
			if err != nil {
				return nil, fmt.Errorf("opening patch file: %w", err)
			}
			defer f.Close()
			r = f
		}
		return diff.ParsePatch(r)

	case flagGit != "":
		revRange := flagGit
		if revRange == "HEAD" {
			revRange = ""
		}
		return diff.FromGit(".", revRange)

	case flagDiff != "":
		data := []byte(flagDiff)
		if _, err := os.Stat(flagDiff); err == nil {
			data, err = os.ReadFile(flagDiff)
			if err != nil {
				return nil, fmt.Errorf("reading diff file: %w", err)
			}
		}
		return diff.ParseJSON(data)

	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		if len(data) == 0 {
			return nil, nil
		}
		return diff.ParseJSON(data)
	}
}

// runPipeline executes the review end to end: model client, cached or fresh
// project context, per-file review, and cache info attachment. On failure it
// sets the exit code and returns ok=false.
func runPipeline(ctx context.Context, cfg config.Config, entries []diff.Entry) (*review.Result, bool) {
	client, err := llm.New(llm.Options{
		Provider:    cfg.LLM.Provider,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		BaseURL:     cfg.LLM.BaseURL,
		Temperature: cfg.LLM.Temperature,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if llm.IsAuthError(err) {
			exitCode = ExitAuthError
		} else {
			exitCode = ExitUsageError
		}
		return nil, false
	}
	client = llm.Memoized(client, cfg.Review.MemoEntries)

	store := cache.NewStore(cfg.Cache.Dir, cfg.Cache.TTLDays)
	pc, usedCache := loadOrAnalyze(ctx, client, cfg, store)

	orch := review.NewOrchestrator(client, cfg)
	if !flagJSON {
		if n := countReviewable(entries, cfg); n > 0 {
			bar := progressbar.NewOptions(n,
				progressbar.OptionSetDescription("reviewing"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionClearOnFinish(),
			)
			orch.OnFile = func(string) { bar.Add(1) }
		}
	}

	result, err := orch.Run(ctx, entries, pc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if llm.IsAuthError(err) {
			exitCode = ExitAuthError
		} else {
			exitCode = ExitRuntimeError
		}
		return nil, false
	}

	info := store.Stat()
	cacheInfo := &review.CacheInfo{
		UsedCache:    usedCache,
		CacheVersion: info.Version,
	}
	if info.Exists {
		cacheInfo.CacheTimestamp = info.ModifiedAt.UTC().Format(time.RFC3339)
	}
	result.Cache = cacheInfo

	if flagExitCode && result.Conclusion == review.NeedsReview {
		exitCode = ExitNeedsReview
	}
	return result, true
}

// loadOrAnalyze returns the project context, preferring the cache unless a
// refresh is forced. The second return reports whether the cache was used.
func loadOrAnalyze(ctx context.Context, client llm.Client, cfg config.Config, store *cache.Store) (*project.Context, bool) {
	if !cfg.Cache.ForceRefresh {
		if pc, ok := store.Load(); ok {
			if cache.HasConfigChanged(".", pc.ProjectVersion) {
				fmt.Fprintln(os.Stderr, "Note: project manifest changed since the last analysis; run with --refresh to re-analyze.")
			}
			return pc, true
		}
	}

	pc := analyzer.New(client, cfg).Analyze(ctx, ".")
	if err := store.Save(pc); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save project context: %v\n", err)
	}
	return pc, false
}

func countReviewable(entries []diff.Entry, cfg config.Config) int {
	n := 0
	for _, e := range entries {
		if !review.ShouldExclude(e.Filename, cfg.ExcludePatterns) {
			n++
		}
	}
	return n
}

func printResult(cfg config.Config, result *review.Result) {
	if flagOutputOnly {
		cfg.Output.ReportPath = ""
	}
	gen := output.NewGenerator(cfg.Output)
	out, err := gen.Generate(result, flagPR)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if flagJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}
		fmt.Fprintln(os.Stdout, string(data))
		return
	}

	if out.PRComment != "" {
		fmt.Fprintln(os.Stdout, out.PRComment)
	}
	if out.MarkdownPath != "" {
		fmt.Fprintf(os.Stdout, "\nFull report: %s\n", out.MarkdownPath)
	}
	if out.JSONPath != "" {
		fmt.Fprintf(os.Stdout, "JSON report: %s\n", out.JSONPath)
	}
}
