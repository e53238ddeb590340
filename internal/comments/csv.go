package comments

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spacesedan/trollscope/internal/models"
)

var CommentColumns = []string{
	"authorChannelId",
	"authorDisplayName",
	"channelId",
	"channelName",
	"videoId",
	"textOriginal",
	"likeCount",
	"publishedAt",
}

var VideoColumns = []string{"videoId", "channelId", "channelName"}

var ErrMissingColumn = errors.New("missing required column")

func LoadCSV(path string) ([]models.Comment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("[Comments] failed to open %s: %w", path, err)
	}
	defer f.Close()

	comments, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("[Comments] %s: %w", path, err)
	}

	slog.Info("[Comments] Loaded comments",
		slog.String("path", path),
		slog.Int("count", len(comments)))
	return comments, nil
}

// ReadCSV parses a comments table with a header row. Extra columns are
// ignored; every column in CommentColumns must be present.
func ReadCSV(r io.Reader) ([]models.Comment, error) {
	reader := newReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	idx, err := columnIndex(header, CommentColumns)
	if err != nil {
		return nil, err
	}

	var comments []models.Comment
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		line, _ := reader.FieldPos(0)
		if err := checkWidth(record, idx); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		comment, err := parseComment(record, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		comments = append(comments, comment)
	}

	return comments, nil
}

func parseComment(record []string, idx map[string]int) (models.Comment, error) {
	get := func(col string) string {
		return record[idx[col]]
	}

	c := models.Comment{
		AuthorChannelID:   get("authorChannelId"),
		AuthorDisplayName: get("authorDisplayName"),
		ChannelID:         get("channelId"),
		ChannelName:       get("channelName"),
		VideoID:           get("videoId"),
		TextOriginal:      get("textOriginal"),
	}

	if raw := strings.TrimSpace(get("likeCount")); raw != "" {
		likes, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c, fmt.Errorf("invalid likeCount %q: %w", raw, err)
		}
		c.LikeCount = int(likes)
	}

	if raw := strings.TrimSpace(get("publishedAt")); raw != "" {
		published, err := parseTimestamp(raw)
		if err != nil {
			return c, fmt.Errorf("invalid publishedAt %q: %w", raw, err)
		}
		c.PublishedAt = published
	}

	return c, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	layouts := []string{time.RFC3339Nano, "2006-01-02 15:04:05Z07:00", "2006-01-02 15:04:05"}
	var err error
	for _, layout := range layouts {
		var t time.Time
		t, err = time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func ReadVideosCSV(r io.Reader) (map[string]models.Video, error) {
	reader := newReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	idx, err := columnIndex(header, VideoColumns)
	if err != nil {
		return nil, err
	}

	videos := make(map[string]models.Video)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := checkWidth(record, idx); err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		v := models.Video{
			VideoID:     record[idx["videoId"]],
			ChannelID:   record[idx["channelId"]],
			ChannelName: record[idx["channelName"]],
		}
		videos[v.VideoID] = v
	}

	return videos, nil
}

func LoadVideosCSV(path string) (map[string]models.Video, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("[Comments] failed to open %s: %w", path, err)
	}
	defer f.Close()

	videos, err := ReadVideosCSV(f)
	if err != nil {
		return nil, fmt.Errorf("[Comments] %s: %w", path, err)
	}
	return videos, nil
}

// AttachChannelNames returns a copy of comments where every comment on an
// indexed video carries that video's channel.
func AttachChannelNames(comments []models.Comment, videos map[string]models.Video) []models.Comment {
	out := make([]models.Comment, len(comments))
	for i, c := range comments {
		if v, ok := videos[c.VideoID]; ok {
			c.ChannelName = v.ChannelName
			if v.ChannelID != "" {
				c.ChannelID = v.ChannelID
			}
		}
		out[i] = c
	}
	return out
}

func WriteCSV(w io.Writer, comments []models.Comment) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CommentColumns); err != nil {
		return err
	}
	for _, c := range comments {
		published := ""
		if !c.PublishedAt.IsZero() {
			published = c.PublishedAt.Format(time.RFC3339)
		}
		if err := writer.Write([]string{
			c.AuthorChannelID,
			c.AuthorDisplayName,
			c.ChannelID,
			c.ChannelName,
			c.VideoID,
			c.TextOriginal,
			strconv.Itoa(c.LikeCount),
			published,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func WriteRepeatsCSV(w io.Writer, repeats []models.RepeatComment) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"text", "likeCount", "count", "authorChannelIds"}); err != nil {
		return err
	}
	for _, r := range repeats {
		if err := writer.Write([]string{
			r.Text,
			strconv.Itoa(r.LikeCount),
			strconv.Itoa(r.Count),
			strings.Join(r.AuthorChannelIDs, ", "),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}

func checkWidth(record []string, idx map[string]int) error {
	for col, i := range idx {
		if i >= len(record) {
			return fmt.Errorf("row has %d fields, column %s is at %d", len(record), col, i+1)
		}
	}
	return nil
}

func columnIndex(header []string, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}

	var missing []string
	positions := make(map[string]int, len(required))
	for _, col := range required {
		i, ok := idx[col]
		if !ok {
			missing = append(missing, col)
			continue
		}
		positions[col] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return positions, nil
}
