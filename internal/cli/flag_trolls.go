package cli

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/spacesedan/trollscope/internal/analysis"
	"github.com/spacesedan/trollscope/internal/clients/kafka_client"
	"github.com/spacesedan/trollscope/internal/report"
)

func newFlagTrollsCmd(a *app) *cobra.Command {
	var (
		q       analysis.CommentQuery
		publish bool
		store   bool
	)

	cmd := &cobra.Command{
		Use:   "flag-trolls",
		Short: "Classify the selected authors' comments and flag likely trolls",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("top") {
				q.TopAuthors = a.cfg.TopAuthors
			}

			loaded, err := a.loadComments(ctx)
			if err != nil {
				return err
			}

			classifier, closeClassifier, err := newClassifier(ctx, a.cfg)
			if err != nil {
				return err
			}
			defer closeClassifier()

			sinks := report.MultiSink{report.NewConsoleSink(cmd.OutOrStdout())}
			if publish {
				producer, err := kafka_client.NewProducer(ctx, a.cfg.Kafka)
				if err != nil {
					return err
				}
				defer producer.Close()
				sinks = append(sinks, report.NewKafkaSink(producer))
			}
			if store {
				flagStore, err := a.dynamoStore(ctx)
				if err != nil {
					return err
				}
				sinks = append(sinks, report.NewDynamoSink(flagStore))
			}

			runID := time.Now().UTC().Format("20060102T150405Z")
			flagger := analysis.NewFlagger(classifier, a.cfg.Labels, sinks).WithRunID(runID)

			result, err := flagger.FlagTrolls(ctx, loaded, q)
			if err != nil {
				return err
			}
			if err := sinks.Flush(ctx); err != nil {
				return fmt.Errorf("flush troll flags: %w", err)
			}

			slog.Info("[trollscope] Troll run complete",
				slog.String("run_id", runID),
				slog.Int("evaluated", len(result.Flags)),
				slog.Int("flagged", len(result.Flagged)))

			if len(result.Flagged) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Flagged authors: %s\n", strings.Join(result.Flagged, ", "))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "No authors flagged")
			}
			return nil
		},
	}

	addQueryFlags(cmd, &q)
	cmd.Flags().BoolVar(&publish, "publish", false, "publish flags to Kafka")
	cmd.Flags().BoolVar(&store, "store", false, "store flags in DynamoDB")
	return cmd
}
