package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/spacesedan/trollscope/internal/analysis"
	"github.com/spacesedan/trollscope/internal/clients"
	"github.com/spacesedan/trollscope/internal/comments"
	"github.com/spacesedan/trollscope/internal/models"
)

func newRepeatsCmd(a *app) *cobra.Command {
	var (
		num     int
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "repeats",
		Short: "Export the most repeated comment texts as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := a.loadComments(cmd.Context())
			if err != nil {
				return err
			}

			repeats := analysis.RepeatComments(loaded, num)
			return writeOutput(cmd, outPath, func(w io.Writer) error {
				return comments.WriteRepeatsCSV(w, repeats)
			})
		},
	}

	cmd.Flags().IntVar(&num, "num", 0, "number of repeated texts to export")
	cmd.Flags().StringVar(&outPath, "out", "", "output CSV path (default stdout)")
	_ = cmd.MarkFlagRequired("num")
	return cmd
}

func newSyncCmd(a *app) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Download top-level comments for every video in the videos CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if a.videosPath == "" {
				return fmt.Errorf("sync needs --videos")
			}

			videos, err := comments.LoadVideosCSV(a.videosPath)
			if err != nil {
				return err
			}

			yt, err := clients.NewYouTubeClient(ctx, a.cfg.YouTube)
			if err != nil {
				return err
			}

			var fetched []models.Comment
			for _, videoID := range slices.Sorted(maps.Keys(videos)) {
				page, err := yt.FetchVideoComments(ctx, videoID, videos[videoID].ChannelName)
				if err != nil {
					return fmt.Errorf("sync video %s: %w", videoID, err)
				}
				fetched = append(fetched, page...)
			}

			err = writeOutput(cmd, outPath, func(w io.Writer) error {
				return comments.WriteCSV(w, fetched)
			})
			if err != nil {
				return err
			}

			slog.Info("[trollscope] Sync complete",
				slog.Int("videos", len(videos)),
				slog.Int("comments", len(fetched)))
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "output comments CSV path (default stdout)")
	return cmd
}

// writeOutput runs write against outPath (stdout when empty) and closes it,
// reporting both a write and a close failure.
func writeOutput(cmd *cobra.Command, outPath string, write func(io.Writer) error) error {
	out, closeOut, err := createOutput(cmd, outPath)
	if err != nil {
		return err
	}
	return closeWith(write(out), closeOut)
}

func closeWith(writeErr error, closeOut func() error) error {
	if closeErr := closeOut(); closeErr != nil {
		return errors.Join(writeErr, fmt.Errorf("close output: %w", closeErr))
	}
	return writeErr
}
