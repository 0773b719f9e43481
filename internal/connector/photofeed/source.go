// Package photofeed implements a source connector for paged JSON photo
// feeds. The feed returns photos newest-first; the connector walks pages
// until it passes the requested time bound and hands entries to the engine
// oldest-first.
package photofeed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"soposyncd/internal/domain"
)

const (
	defaultPageSize       = 100
	defaultTimeout        = 30 * time.Second
	defaultMaxAttempts    = 3
	defaultInitialBackoff = 1 * time.Second
	defaultMaxBackoff     = 30 * time.Second
)

type Source struct {
	name           string
	httpClient     *http.Client
	baseURL        string
	pageSize       int
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

func New(logger *slog.Logger) *Source {
	return &Source{logger: logger}
}

func (s *Source) Configure(name string, options map[string]string) error {
	s.name = name
	s.logger = s.logger.With("connector", name)

	baseURL, ok := options["base_url"]
	if !ok || baseURL == "" {
		return fmt.Errorf("connector %q lacks base_url: %w", name, domain.ErrConfiguration)
	}
	s.baseURL = baseURL

	var err error
	s.pageSize, err = intOption(options, "page_size", defaultPageSize)
	if err != nil {
		return fmt.Errorf("connector %q: %w", name, err)
	}
	s.maxAttempts, err = intOption(options, "max_attempts", defaultMaxAttempts)
	if err != nil {
		return fmt.Errorf("connector %q: %w", name, err)
	}

	timeout, err := durationOption(options, "timeout", defaultTimeout)
	if err != nil {
		return fmt.Errorf("connector %q: %w", name, err)
	}
	s.initialBackoff, err = durationOption(options, "initial_backoff", defaultInitialBackoff)
	if err != nil {
		return fmt.Errorf("connector %q: %w", name, err)
	}
	s.maxBackoff, err = durationOption(options, "max_backoff", defaultMaxBackoff)
	if err != nil {
		return fmt.Errorf("connector %q: %w", name, err)
	}

	s.httpClient = &http.Client{Timeout: timeout}

	return nil
}

func intOption(options map[string]string, key string, fallback int) (int, error) {
	raw, ok := options[key]
	if !ok {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("option %s=%q: %w", key, raw, domain.ErrConfiguration)
	}
	return v, nil
}

func durationOption(options map[string]string, key string, fallback time.Duration) (time.Duration, error) {
	raw, ok := options[key]
	if !ok {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("option %s=%q: %w", key, raw, domain.ErrConfiguration)
	}
	return v, nil
}

func (s *Source) Entries(ctx context.Context, after time.Time) ([]domain.Entry, error) {
	var newest []domain.Entry

	for page := 0; ; page++ {
		resp, err := s.fetchPage(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w: %v", page, domain.ErrConnector, err)
		}

		entries, reachedBound := s.transform(resp.Photos, after)
		newest = append(newest, entries...)

		s.logger.Debug("fetched page",
			"page", page,
			"photos", len(resp.Photos),
			"total", len(newest),
		)

		if reachedBound || page >= resp.PageInfo.NumPages-1 {
			break
		}
	}

	// The feed is newest-first; the contract wants oldest-first.
	for i, j := 0, len(newest)-1; i < j; i, j = i+1, j-1 {
		newest[i], newest[j] = newest[j], newest[i]
	}

	return newest, nil
}

// Push is not supported; photo feeds are read-only.
func (s *Source) Push(ctx context.Context, entry domain.Entry) error {
	return fmt.Errorf("connector %q cannot act as a target: %w", s.name, domain.ErrConnector)
}

func (s *Source) fetchPage(ctx context.Context, page int) (*feedResponse, error) {
	url := fmt.Sprintf("%s?pageSize=%d&page=%d", s.baseURL, s.pageSize, page)

	var resp *feedResponse
	var err error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		resp, err = s.doRequest(ctx, url)
		if err == nil {
			return resp, nil
		}

		if attempt == s.maxAttempts {
			break
		}

		backoff := s.calculateBackoff(attempt)
		s.logger.Warn("request failed, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", s.maxAttempts, err)
}

func (s *Source) doRequest(ctx context.Context, url string) (*feedResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Soposyncd/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var feedResp feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feedResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &feedResp, nil
}

func (s *Source) calculateBackoff(attempt int) time.Duration {
	backoff := s.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > s.maxBackoff {
		backoff = s.maxBackoff
	}
	return backoff
}

// transform maps photos to entries newer than the bound. The second return
// reports whether a photo at or before the bound was seen, which ends the
// page walk for a newest-first feed.
func (s *Source) transform(photos []photo, after time.Time) ([]domain.Entry, bool) {
	entries := make([]domain.Entry, 0, len(photos))

	for _, p := range photos {
		createdAt, err := time.Parse(time.RFC3339, p.CreatedAt)
		if err != nil {
			s.logger.Warn("failed to parse photo date",
				"photo_id", p.ID,
				"created_at", p.CreatedAt,
			)
			continue
		}

		if !createdAt.After(after) {
			return entries, true
		}

		entry := domain.Entry{
			UniqueID:    strconv.FormatInt(p.ID, 10),
			Title:       p.Name,
			Link:        p.URL,
			CreatedAt:   createdAt,
			Description: p.Description,
			Tags:        p.Tags,
		}

		if p.ImageURL != "" {
			imageURL := p.ImageURL
			entry.Photo = &imageURL
		}

		if p.Latitude != nil && p.Longitude != nil {
			entry.Coordinates = &domain.Coordinates{
				Latitude:  *p.Latitude,
				Longitude: *p.Longitude,
			}
		}

		entries = append(entries, entry)
	}

	return entries, false
}
