package bilibili

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"replay_fetcher/internal/domain"
	"replay_fetcher/internal/logging"
)

const (
	// MaxPageSize is the largest page the endpoint serves.
	MaxPageSize = 100

	archivesPath = "/x/series/recArchivesByKeywords"
)

// Config holds catalog client configuration.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	UserAgent      string
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Client lists a user's uploads, newest first.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	userAgent      string
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         zerolog.Logger
}

func New(cfg Config, logger zerolog.Logger) *Client {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        cfg.BaseURL,
		userAgent:      cfg.UserAgent,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logging.Named(logger, "catalog"),
	}
}

// FetchPage returns one page of mid's uploads. Non-success responses fail with
// *domain.RemoteFetchError and are not retried; transport failures are.
func (c *Client) FetchPage(ctx context.Context, mid int64, page, pageSize int) (*domain.Page, error) {
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if pageSize < 1 {
		pageSize = 1
	}

	q := url.Values{}
	q.Set("mid", strconv.FormatInt(mid, 10))
	q.Set("keywords", "")
	q.Set("pn", strconv.Itoa(page))
	q.Set("ps", strconv.Itoa(pageSize))
	reqURL := c.baseURL + archivesPath + "?" + q.Encode()

	resp, err := c.fetch(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	return transform(resp), nil
}

func (c *Client) fetch(ctx context.Context, reqURL string) (*ArchiveList, error) {
	var list *ArchiveList
	var err error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		list, err = c.doRequest(ctx, reqURL)
		if err == nil {
			return list, nil
		}

		var remoteErr *domain.RemoteFetchError
		if errors.As(err, &remoteErr) || ctx.Err() != nil {
			return nil, err
		}

		if attempt == c.maxAttempts {
			break
		}

		backoff := c.calculateBackoff(attempt)
		c.logger.Warn().
			Int("attempt", attempt).
			Dur("backoff", backoff).
			Err(err).
			Msg("request failed, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", c.maxAttempts, err)
}

func (c *Client) doRequest(ctx context.Context, reqURL string) (*ArchiveList, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &domain.RemoteFetchError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	var apiResp APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if apiResp.Code != 0 {
		return nil, &domain.RemoteFetchError{
			StatusCode: resp.StatusCode,
			Code:       apiResp.Code,
			Message:    apiResp.Message,
		}
	}
	if apiResp.Data == nil {
		return nil, &domain.RemoteFetchError{
			StatusCode: resp.StatusCode,
			Message:    "response carries no data",
		}
	}

	return apiResp.Data, nil
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}

func transform(list *ArchiveList) *domain.Page {
	page := &domain.Page{
		Uploads:  make([]domain.Upload, 0, len(list.Archives)),
		Number:   list.Page.Num,
		PageSize: list.Page.Size,
		Total:    list.Page.Total,
		HasNext:  list.Page.Num*list.Page.Size < list.Page.Total,
	}

	for _, a := range list.Archives {
		page.Uploads = append(page.Uploads, domain.Upload{
			ID:              a.AID,
			AltID:           a.BVID,
			DurationSeconds: a.Duration,
			PublishTime:     a.PubDate * 1000,
			Title:           a.Title,
		})
	}

	return page
}
