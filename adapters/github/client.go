package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/devconnect-io/devconnect/internal/config"
	"github.com/devconnect-io/devconnect/pkg/apperror"
	"github.com/devconnect-io/devconnect/pkg/logger"
)

const (
	defaultBaseURL = "https://api.github.com"
	cacheTTL       = 10 * time.Minute
	cachePrefix    = "github:repos:"
)

type Repo struct {
	Name            string `json:"name"`
	HTMLURL         string `json:"html_url"`
	Description     string `json:"description"`
	StargazersCount int    `json:"stargazers_count"`
	WatchersCount   int    `json:"watchers_count"`
	ForksCount      int    `json:"forks_count"`
}

// Cache keeps upstream responses for a while so the public endpoint does
// not hammer the github API.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

type redisCache struct {
	rdb    *redis.Client
	logger logger.Logger
}

func NewRedisCache(rdb *redis.Client, log logger.Logger) Cache {
	return &redisCache{rdb: rdb, logger: log}
}

func (c *redisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Failed to read github cache", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return val, true
}

func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn("Failed to write github cache", zap.String("key", key), zap.Error(err))
	}
}

type Client struct {
	httpClient   *http.Client
	cache        Cache
	baseURL      string
	clientID     string
	clientSecret string
	logger       logger.Logger
}

func NewClient(cfg config.Config, cache Cache, log logger.Logger) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		cache:        cache,
		baseURL:      defaultBaseURL,
		clientID:     cfg.Github.ClientID,
		clientSecret: cfg.Github.ClientSecret,
		logger:       log,
	}
}

// NewClientWithBaseURL is used by tests to point at a stub server.
func NewClientWithBaseURL(baseURL string, cache Cache, log logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache,
		baseURL:    baseURL,
		logger:     log,
	}
}

// ListRepos returns the five most recent public repositories of a github
// user. An upstream miss of any kind surfaces as a not-found.
func (c *Client) ListRepos(ctx context.Context, username string) ([]Repo, error) {
	cacheKey := cachePrefix + username
	if body, ok := c.cache.Get(ctx, cacheKey); ok {
		return decodeRepos([]byte(body))
	}

	query := url.Values{}
	query.Set("per_page", "5")
	query.Set("sort", "created:asc")
	if c.clientID != "" {
		query.Set("client_id", c.clientID)
		query.Set("client_secret", c.clientSecret)
	}

	reqURL := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(username), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperror.NewInternal("failed to build github request", err)
	}
	req.Header.Set("User-Agent", "devconnect-api")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.NewInternal("failed to reach github", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperror.NewAppError(apperror.ErrNotFound, "No Github profile found", username, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.NewInternal("failed to read github response", err)
	}

	repos, err := decodeRepos(body)
	if err != nil {
		return nil, err
	}

	c.cache.Set(ctx, cacheKey, string(body), cacheTTL)
	return repos, nil
}

func decodeRepos(body []byte) ([]Repo, error) {
	var repos []Repo
	if err := json.Unmarshal(body, &repos); err != nil {
		return nil, apperror.NewInternal("failed to decode github response", err)
	}
	return repos, nil
}
