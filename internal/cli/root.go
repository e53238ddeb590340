package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/spacesedan/trollscope/config"
	"github.com/spacesedan/trollscope/internal/analysis"
	"github.com/spacesedan/trollscope/internal/clients"
	"github.com/spacesedan/trollscope/internal/comments"
	"github.com/spacesedan/trollscope/internal/db"
	"github.com/spacesedan/trollscope/internal/logging"
	"github.com/spacesedan/trollscope/internal/models"
)

const (
	SOURCE_CSV      = "csv"
	SOURCE_DYNAMODB = "dynamodb"

	EXIT_FAILURE   = 1
	EXIT_NOT_FOUND = 2
)

// app holds the global flags and the configuration resolved before any
// subcommand runs.
type app struct {
	env          string
	commentsPath string
	videosPath   string
	source       string

	cfg config.Config
}

// NewRootCmd builds the trollscope command tree. Output goes to the command's
// out writer so callers can capture it.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "trollscope",
		Short: "Rank YouTube commenters and flag likely trolls",
		Long: `trollscope loads a YouTube comments dataset, ranks the most active
commenters per channel and flags authors whose comments are mostly negative.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			env := config.ResolveEnv(a.env)
			config.LoadEnv(env)

			cfg, err := config.Load(env)
			if err != nil {
				return err
			}
			logging.InitLogger(cfg.LogLevel)
			a.cfg = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.env, "env", "", "environment name, selects config/envs/.env.<env> (default $APP_ENV or dev)")
	rootCmd.PersistentFlags().StringVar(&a.commentsPath, "comments", "comments.csv", "comments dataset CSV")
	rootCmd.PersistentFlags().StringVar(&a.videosPath, "videos", "", "videos CSV used to fill in channel names")
	rootCmd.PersistentFlags().StringVar(&a.source, "source", SOURCE_CSV, "comment source (csv, dynamodb)")

	rootCmd.AddCommand(
		newTopCommentersCmd(a),
		newCommentsCmd(a),
		newFlagTrollsCmd(a),
		newRepeatsCmd(a),
		newSyncCmd(a),
	)

	return rootCmd
}

// Execute runs the command tree and maps the outcome to a process exit code.
func Execute(ctx context.Context) int {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("[trollscope] Command failed", slog.String("error", err.Error()))
		return ExitCode(err)
	}
	return 0
}

func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, analysis.ErrNotFound):
		return EXIT_NOT_FOUND
	default:
		return EXIT_FAILURE
	}
}

func (a *app) loadComments(ctx context.Context) ([]models.Comment, error) {
	var (
		loaded []models.Comment
		err    error
	)

	switch a.source {
	case SOURCE_CSV:
		loaded, err = comments.LoadCSV(a.commentsPath)
	case SOURCE_DYNAMODB:
		loaded, err = a.loadFromDynamo(ctx)
	default:
		return nil, fmt.Errorf("unknown comment source %q", a.source)
	}
	if err != nil {
		return nil, err
	}

	if a.videosPath != "" {
		videos, err := comments.LoadVideosCSV(a.videosPath)
		if err != nil {
			return nil, err
		}
		loaded = comments.AttachChannelNames(loaded, videos)
	}

	slog.Info("[trollscope] Comments loaded",
		slog.String("source", a.source),
		slog.Int("count", len(loaded)))
	return loaded, nil
}

func (a *app) loadFromDynamo(ctx context.Context) ([]models.Comment, error) {
	store, err := a.dynamoStore(ctx)
	if err != nil {
		return nil, err
	}
	return store.GetAllComments(ctx)
}

func (a *app) dynamoStore(ctx context.Context) (*db.Store, error) {
	client, err := clients.NewDynamoDBClient(ctx, a.cfg.AWS)
	if err != nil {
		return nil, err
	}
	return db.NewStore(client, a.cfg.AWS.CommentsTable, a.cfg.AWS.FlagsTable), nil
}

// createOutput returns stdout when path is empty.
func createOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, f.Close, nil
}
