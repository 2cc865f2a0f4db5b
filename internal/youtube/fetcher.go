package youtube

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/cognicore/commentscope/pkg/commentscope/comment"
)

// Text formats accepted by commentThreads.list.
const (
	FormatPlainText = "plainText"
	FormatHTML      = "html"
)

// maxPageSize is the API's upper bound for maxResults.
const maxPageSize = 100

// Config configures a Fetcher.
type Config struct {
	APIKey            string
	PageSize          int
	TextFormat        string
	RequestsPerSecond float64
}

// Fetcher lists top-level comments for videos.
type Fetcher struct {
	svc     *yt.Service
	limiter *rate.Limiter
	cfg     Config
	log     logrus.FieldLogger
}

// NewFetcher creates a fetcher. Extra client options are appended after
// the API key, so tests can point the client at a fake endpoint.
func NewFetcher(ctx context.Context, cfg Config, log logrus.FieldLogger, opts ...option.ClientOption) (*Fetcher, error) {
	if cfg.PageSize <= 0 || cfg.PageSize > maxPageSize {
		cfg.PageSize = maxPageSize
	}
	if cfg.TextFormat == "" {
		cfg.TextFormat = FormatPlainText
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	clientOpts := make([]option.ClientOption, 0, len(opts)+1)
	if cfg.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(cfg.APIKey))
	}
	clientOpts = append(clientOpts, opts...)

	svc, err := yt.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "create youtube service")
	}
	return &Fetcher{
		svc:     svc,
		limiter: rate.NewLimiter(limit, 1),
		cfg:     cfg,
		log:     log,
	}, nil
}

// Comments pages through a video's comment threads until maxComments are
// collected or no pages remain.
func (f *Fetcher) Comments(ctx context.Context, videoID string, maxComments int) ([]comment.Raw, error) {
	var out []comment.Raw
	pageToken := ""
	for len(out) < maxComments {
		if err := f.limiter.Wait(ctx); err != nil {
			return out, err
		}

		call := f.svc.CommentThreads.List([]string{"snippet"}).
			VideoId(videoID).
			MaxResults(int64(min(f.cfg.PageSize, maxComments-len(out)))).
			TextFormat(f.cfg.TextFormat).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return out, errors.Wrapf(err, "list comments for %s", videoID)
		}

		for _, item := range resp.Items {
			if raw, ok := f.toRaw(videoID, item); ok {
				out = append(out, raw)
			}
		}

		f.log.WithFields(logrus.Fields{
			"video_id": videoID,
			"page":     len(resp.Items),
			"total":    len(out),
		}).Debug("fetched comment page")

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}
	if len(out) > maxComments {
		out = out[:maxComments]
	}
	return out, nil
}

func (f *Fetcher) toRaw(videoID string, item *yt.CommentThread) (comment.Raw, bool) {
	if item == nil || item.Snippet == nil || item.Snippet.TopLevelComment == nil || item.Snippet.TopLevelComment.Snippet == nil {
		return comment.Raw{}, false
	}
	s := item.Snippet.TopLevelComment.Snippet
	text := s.TextDisplay
	if f.cfg.TextFormat == FormatHTML {
		text = StripHTML(text)
	}
	return comment.Raw{
		VideoID:     videoID,
		Author:      s.AuthorDisplayName,
		Text:        text,
		Likes:       s.LikeCount,
		PublishedAt: s.PublishedAt,
	}, true
}

// FetchAll collects comments for every URL. URLs without a video id and
// videos whose listing fails are logged and skipped.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string, maxPerVideo int) ([]comment.Raw, error) {
	var all []comment.Raw
	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		videoID, err := ExtractVideoID(url)
		if err != nil {
			f.log.WithField("url", url).Warn("skipping url without video id")
			continue
		}

		comments, err := f.Comments(ctx, videoID, maxPerVideo)
		if err != nil {
			if ctx.Err() != nil {
				return all, ctx.Err()
			}
			f.log.WithError(err).WithField("video_id", videoID).Error("fetching comments failed")
			continue
		}
		f.log.WithFields(logrus.Fields{
			"video_id": videoID,
			"comments": len(comments),
		}).Info("fetched comments")
		all = append(all, comments...)
	}
	return all, nil
}
