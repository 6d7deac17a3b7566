// Package cli provides the command-line interface for exterminator.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tilt-dev/exterminator/internals/config"
	"github.com/tilt-dev/exterminator/internals/exterminator"
	"github.com/tilt-dev/exterminator/internals/git"
	"github.com/tilt-dev/exterminator/internals/shortcut"
)

// NewRootCommand creates the root command. Each call gets its own viper
// instance, so commands built in tests do not share settings.
func NewRootCommand(version string) *cobra.Command {
	v := config.New()
	var configPath string
	var verbose bool

	root := &cobra.Command{
		Use:   "exterminator",
		Short: "Tilt exterminator tool",
		Long: `exterminator copies issues from GitHub (or GitLab) into Shortcut stories.

Environment variables:
  SHORTCUT_API_TOKEN   Shortcut API token (required; CLUBHOUSE_API_TOKEN also works)
  GITHUB_API_TOKEN     GitHub token (optional, avoids rate limiting)
  GITLAB_TOKEN         GitLab token (optional)
  SLACK_BOT_TOKEN      Slack bot token to announce new stories (optional)
  SLACK_NOTIFY_CHANNEL Slack channel ID for announcements`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().Bool("dry-run", false, "Print out what data will change rather than changing anything")
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")
	_ = v.BindPFlag(config.KeyDryRun, root.PersistentFlags().Lookup("dry-run"))

	root.AddCommand(newSyncCommand(v, &configPath, &verbose))
	return root
}

func newSyncCommand(v *viper.Viper, configPath *string, verbose *bool) *cobra.Command {
	var issue string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync an issue from GitHub to Shortcut",
		Long: `Sync an issue from GitHub to Shortcut.

The story is only created when no story links to the issue yet.

Examples:
  exterminator sync -i 4242
  exterminator sync -i https://github.com/tilt-dev/tilt/issues/4242
  exterminator --dry-run sync -i 4242`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.ReadFile(v, *configPath); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			stderr := cmd.ErrOrStderr()
			for _, w := range cfg.Warnings {
				_, _ = fmt.Fprintf(stderr, "Warning: %s\n", w)
			}
			if cfg.DryRun {
				_, _ = fmt.Fprintln(stderr, "⚠️ Running in dry run mode ⚠️")
			}

			worker := newWorker(cfg, newLogger(stderr, *verbose))
			res, err := worker.Sync(cmd.Context(), issue)
			if err != nil {
				return err
			}
			return exterminator.Report(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVarP(&issue, "issue", "i", "", "The issue number or URL to import into Shortcut")
	_ = cmd.MarkFlagRequired("issue")

	cmd.Flags().String("repo", "", "Repository that bare issue numbers refer to (default tilt-dev/tilt)")
	cmd.Flags().Int64("project-id", 0, "Shortcut project for new stories (default 6)")
	cmd.Flags().String("label", "", "Label attached to new stories (default exterminator)")
	_ = v.BindPFlag(config.KeyRepo, cmd.Flags().Lookup("repo"))
	_ = v.BindPFlag(config.KeyProjectID, cmd.Flags().Lookup("project-id"))
	_ = v.BindPFlag(config.KeyLabel, cmd.Flags().Lookup("label"))

	return cmd
}

func newWorker(cfg config.Config, log *slog.Logger) *exterminator.Worker {
	factory := git.NewFactory(cfg.GitHubToken, cfg.GitLabToken,
		git.WithGitHubBaseURL(cfg.GitHubBaseURL),
		git.WithGitLabBaseURL(cfg.GitLabBaseURL),
	)
	stories := shortcut.NewClient(cfg.ShortcutToken).WithEndpoint(cfg.ShortcutEndpoint)

	var notifier exterminator.Notifier
	if cfg.SlackToken != "" {
		notifier = exterminator.NewSlackNotifier(cfg.SlackToken, cfg.SlackChannel)
	}

	return exterminator.NewWorker(factory, stories, notifier, exterminator.Options{
		DefaultRepo: cfg.Repo,
		Story: exterminator.StoryOptions{
			ProjectID: cfg.ProjectID,
			Label:     cfg.Label,
		},
		DryRun: cfg.DryRun,
	}, log)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
