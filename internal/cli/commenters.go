package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spacesedan/trollscope/internal/analysis"
)

func newTopCommentersCmd(a *app) *cobra.Command {
	var (
		channel string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "top-commenters",
		Short: "Rank commenters by comment count for each channel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := a.loadComments(cmd.Context())
			if err != nil {
				return err
			}

			rankings, err := analysis.TopCommenters(loaded, channel)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, ranking := range rankings {
				fmt.Fprintf(out, "Channel: %s\n", ranking.ChannelName)
				shown := ranking.Commenters
				if limit > 0 {
					shown = shown[:min(limit, len(shown))]
				}
				for i, c := range shown {
					fmt.Fprintf(out, "%3d. %s (%s): %d comments\n", i+1, c.AuthorDisplayName, c.AuthorChannelID, c.Count)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&channel, "channel", "", "only rank this channel")
	cmd.Flags().IntVar(&limit, "limit", 10, "commenters shown per channel (0 shows all)")
	return cmd
}

func newCommentsCmd(a *app) *cobra.Command {
	var q analysis.CommentQuery

	cmd := &cobra.Command{
		Use:   "comments",
		Short: "List the comments of the top commenters or of one author",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("top") {
				q.TopAuthors = a.cfg.TopAuthors
			}

			loaded, err := a.loadComments(cmd.Context())
			if err != nil {
				return err
			}

			sets, err := analysis.GetComments(loaded, q)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, set := range sets {
				fmt.Fprintf(out, "Author: %s (%s), %d comments\n", set.DisplayName(), set.AuthorChannelID, len(set.Comments))
				for _, text := range set.Texts() {
					fmt.Fprintf(out, "  - %s\n", strings.ReplaceAll(text, "\n", " "))
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	addQueryFlags(cmd, &q)
	return cmd
}

func addQueryFlags(cmd *cobra.Command, q *analysis.CommentQuery) {
	cmd.Flags().StringVar(&q.ChannelName, "channel", "", "restrict the ranking to this channel")
	cmd.Flags().StringVar(&q.AuthorChannelID, "author", "", "select a single author by channel id")
	cmd.Flags().IntVar(&q.TopAuthors, "top", 5, "top commenters per channel (default $TOP_AUTHORS)")
}
