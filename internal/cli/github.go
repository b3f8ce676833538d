package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gavel-review/gavel/internal/github"
	"github.com/gavel-review/gavel/internal/output"
)

var (
	flagOwner  string
	flagRepo   string
	flagDryRun bool
)

var githubCmd = &cobra.Command{
	Use:   "github <pr-number>",
	Short: "Review a GitHub pull request",
	Long: `Fetch the changed files of a pull request, review them, and post the
result as a PR comment. The repository is detected from the git remote
unless --owner and --repo are given. Requires GITHUB_TOKEN.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prNumber, err := strconv.Atoi(args[0])
		if err != nil || prNumber <= 0 {
			return fmt.Errorf("invalid PR number: %s", args[0])
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		owner, repo := flagOwner, flagRepo
		if owner == "" || repo == "" {
			owner, repo, err = github.DetectRepo()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				exitCode = ExitUsageError
				return nil
			}
		}

		gh, err := github.NewClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitAuthError
			return nil
		}

		entries, err := gh.ListPRFiles(cmd.Context(), owner, repo, prNumber)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		result, ok := runPipeline(cmd.Context(), cfg, entries)
		if !ok {
			return nil
		}

		gen := output.NewGenerator(cfg.Output)
		out, err := gen.Generate(result, prNumber)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		if out.PRComment != "" {
			if flagDryRun {
				fmt.Fprintln(os.Stdout, out.PRComment)
			} else if err := gh.PostComment(cmd.Context(), owner, repo, prNumber, out.PRComment); err != nil {
				fmt.Fprintf(os.Stderr, "Error posting comment: %v\n", err)
				exitCode = ExitRuntimeError
				return nil
			} else {
				fmt.Fprintf(os.Stdout, "Comment posted on %s/%s#%d\n", owner, repo, prNumber)
			}
		}
		if out.MarkdownPath != "" {
			fmt.Fprintf(os.Stdout, "Full report: %s\n", out.MarkdownPath)
		}
		return nil
	},
}

func init() {
	githubCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "Path to config file")
	githubCmd.Flags().StringVar(&flagOwner, "owner", "", "Repository owner (detected from git remote if unset)")
	githubCmd.Flags().StringVar(&flagRepo, "repo", "", "Repository name (detected from git remote if unset)")
	githubCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the comment instead of posting it")
	githubCmd.Flags().BoolVarP(&flagRefresh, "refresh", "r", false, "Force a fresh project analysis")
	githubCmd.Flags().BoolVar(&flagExitCode, "exit-code", false, "Exit 1 when the conclusion is needs_review")
}
