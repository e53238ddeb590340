package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spacesedan/trollscope/internal/models"
)

const separator = "============================================================="

type ConsoleSink struct {
	w io.Writer
}

func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

func (c *ConsoleSink) Slot(_ context.Context, flag models.TrollFlag) error {
	var b strings.Builder

	if flag.Skipped {
		fmt.Fprintf(&b, "Slot %d (%s) skipped: %s\n", flag.Slot, flag.AuthorChannelID, flag.SkipReason)
	} else {
		fmt.Fprintf(&b, "Slot %d has %d negative comments out of %d total comments\n",
			flag.Slot, flag.NegativeCount, flag.TotalCount)
	}

	if flag.Flagged {
		b.WriteString("Author has been flagged as a possible troll\n")
		fmt.Fprintf(&b, "Author name: %s\n", flag.AuthorDisplayName)
		fmt.Fprintf(&b, "Number of comments classified as negative: %d\n", flag.NegativeCount)
		fmt.Fprintf(&b, "Total number of comments: %d\n", flag.TotalCount)
		fmt.Fprintf(&b, "Percentage of negative comments: %.2f%%\n", flag.NegativePercentage)
	}
	b.WriteString(separator + "\n")

	_, err := io.WriteString(c.w, b.String())
	return err
}

func (c *ConsoleSink) Flush(context.Context) error {
	return nil
}
