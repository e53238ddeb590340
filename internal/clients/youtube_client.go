package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/spacesedan/trollscope/config"
	"github.com/spacesedan/trollscope/internal/models"
)

const YOUTUBE_PAGE_SIZE = 100

// YouTubeClient pages through the Data API commentThreads listing. It
// authenticates with an OAuth bearer token when one is configured and falls
// back to an API key.
type YouTubeClient struct {
	Client  *http.Client
	BaseURL string
	APIKey  string
}

func NewYouTubeClient(ctx context.Context, cfg config.YouTubeConfig) (*YouTubeClient, error) {
	if cfg.AccessToken == "" && cfg.APIKey == "" {
		return nil, fmt.Errorf("[YouTubeClient] YOUTUBE_ACCESS_TOKEN or YOUTUBE_API_KEY is required")
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	if cfg.AccessToken != "" {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.AccessToken,
			TokenType:   "Bearer",
		}))
	}

	slog.Info("[YouTubeClient] Initializing Client",
		slog.String("base_url", cfg.BaseURL),
		slog.Bool("oauth", cfg.AccessToken != ""))

	return &YouTubeClient{Client: httpClient, BaseURL: cfg.BaseURL, APIKey: cfg.APIKey}, nil
}

// FetchVideoComments returns the top-level comments of a video, tagged with
// channelName.
func (y *YouTubeClient) FetchVideoComments(ctx context.Context, videoID, channelName string) ([]models.Comment, error) {
	var comments []models.Comment
	pageToken := ""

	for {
		page, err := y.fetchPage(ctx, videoID, pageToken)
		if err != nil {
			return nil, err
		}

		for _, thread := range page.Items {
			comments = append(comments, threadToComment(thread, videoID, channelName))
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	slog.Info("[YouTubeClient] Fetched comments",
		slog.String("video_id", videoID),
		slog.Int("count", len(comments)))

	return comments, nil
}

func (y *YouTubeClient) fetchPage(ctx context.Context, videoID, pageToken string) (models.YouTubeCommentThreadResponse, error) {
	var page models.YouTubeCommentThreadResponse

	parsedUrl, err := url.Parse(y.BaseURL + "/commentThreads")
	if err != nil {
		return page, fmt.Errorf("[YouTubeClient] Failed to parse URL: %w", err)
	}
	queryParams := parsedUrl.Query()
	queryParams.Set("part", "snippet")
	queryParams.Set("videoId", videoID)
	queryParams.Set("maxResults", fmt.Sprint(YOUTUBE_PAGE_SIZE))
	queryParams.Set("textFormat", "plainText")
	if pageToken != "" {
		queryParams.Set("pageToken", pageToken)
	}
	if y.APIKey != "" {
		queryParams.Set("key", y.APIKey)
	}
	parsedUrl.RawQuery = queryParams.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsedUrl.String(), nil)
	if err != nil {
		return page, fmt.Errorf("[YouTubeClient] Failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := y.Client.Do(req)
	if err != nil {
		return page, fmt.Errorf("[YouTubeClient] Request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return page, fmt.Errorf("[YouTubeClient] Failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		slog.Error("[YouTubeClient] Unexpected status",
			slog.String("video_id", videoID),
			slog.Int("status", resp.StatusCode),
			getPreview(body))
		return page, fmt.Errorf("[YouTubeClient] commentThreads for %s returned %d", videoID, resp.StatusCode)
	}

	if err := json.Unmarshal(body, &page); err != nil {
		return page, fmt.Errorf("[YouTubeClient] Failed to unmarshal response: %w", err)
	}
	return page, nil
}

func threadToComment(thread models.YouTubeCommentThread, videoID, channelName string) models.Comment {
	snippet := thread.Snippet.TopLevelComment.Snippet

	published, err := time.Parse(time.RFC3339, snippet.PublishedAt)
	if err != nil {
		published = time.Time{}
	}

	if thread.Snippet.VideoID != "" {
		videoID = thread.Snippet.VideoID
	}

	return models.Comment{
		AuthorChannelID:   snippet.AuthorChannelID.Value,
		AuthorDisplayName: snippet.AuthorDisplayName,
		ChannelID:         thread.Snippet.ChannelID,
		ChannelName:       channelName,
		VideoID:           videoID,
		TextOriginal:      snippet.TextOriginal,
		LikeCount:         snippet.LikeCount,
		PublishedAt:       published,
	}
}
