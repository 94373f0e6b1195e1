// Package parser proxies raw resume documents to the external parsing
// service and caches parse results by content hash.
package parser

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/redis/go-redis/v9"

	"hirepath-api/internal/config"
	"hirepath-api/internal/logging"
	"hirepath-api/pkg/models"
	"hirepath-api/pkg/utils"
)

// Client calls the resume-parsing service. When a Redis client is supplied,
// parse results are cached keyed by the md5 of the document bytes, so
// re-uploading the same file never re-parses it. Without Redis (or when
// Redis is down) every call passes through.
type Client struct {
	baseURL  string
	http     *http.Client
	redis    *redis.Client
	cacheTTL time.Duration
	logger   logging.Logger
}

// New creates a parser client. rdb may be nil.
func New(cfg *config.Config, rdb *redis.Client) *Client {
	return &Client{
		baseURL:  cfg.Parser.BaseURL,
		http:     &http.Client{Timeout: cfg.Parser.Timeout},
		redis:    rdb,
		cacheTTL: cfg.Parser.CacheTTL,
		logger:   logging.GetGlobalLogger().WithField("component", "parser"),
	}
}

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", cfg.Redis.URL, err)
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	opts.DB = cfg.Redis.DB
	opts.DialTimeout = cfg.Redis.Timeout

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// Parse extracts structured fields from a resume document. Every returned
// field is cleaned of NUL bytes and surrounding whitespace.
func (c *Client) Parse(ctx context.Context, filename, contentType string, data []byte) (models.ParsedResume, error) {
	key := cacheKey(data)

	if cached, ok := c.cachedParse(ctx, key); ok {
		return cached, nil
	}

	parsed, err := c.callService(ctx, filename, contentType, data)
	if err != nil {
		return models.ParsedResume{}, err
	}

	parsed.Name = utils.CleanText(parsed.Name)
	parsed.Email = utils.CleanText(parsed.Email)
	parsed.Skills = utils.CleanTextSlice(parsed.Skills)
	parsed.Experience = utils.CleanText(parsed.Experience)

	c.storeParse(ctx, key, parsed)
	return parsed, nil
}

func (c *Client) callService(ctx context.Context, filename, contentType string, data []byte) (models.ParsedResume, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := form.CreatePart(header)
	if err != nil {
		return models.ParsedResume{}, fmt.Errorf("build upload: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return models.ParsedResume{}, fmt.Errorf("build upload: %w", err)
	}
	if err := form.Close(); err != nil {
		return models.ParsedResume{}, fmt.Errorf("build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/parse-resume", &buf)
	if err != nil {
		return models.ParsedResume{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return models.ParsedResume{}, utils.NewParseError(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.ParsedResume{}, utils.NewParseError(fmt.Sprintf("parse service returned status %d", resp.StatusCode))
	}

	var payload struct {
		models.ParsedResume
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.ParsedResume{}, utils.NewParseError(fmt.Sprintf("malformed parse response: %v", err))
	}
	if payload.Error != "" {
		return models.ParsedResume{}, utils.NewParseError(payload.Error)
	}
	return payload.ParsedResume, nil
}

func (c *Client) cachedParse(ctx context.Context, key string) (models.ParsedResume, bool) {
	if c.redis == nil {
		return models.ParsedResume{}, false
	}

	raw, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Parse cache lookup failed", map[string]interface{}{"error": err.Error()})
		}
		return models.ParsedResume{}, false
	}

	var parsed models.ParsedResume
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		// Corrupted entry: drop it and re-parse.
		c.redis.Del(ctx, key)
		return models.ParsedResume{}, false
	}
	return parsed, true
}

func (c *Client) storeParse(ctx context.Context, key string, parsed models.ParsedResume) {
	if c.redis == nil {
		return
	}

	raw, err := json.Marshal(parsed)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, raw, c.cacheTTL).Err(); err != nil {
		c.logger.Warn("Parse cache write failed", map[string]interface{}{"error": err.Error()})
	}
}

func cacheKey(data []byte) string {
	sum := md5.Sum(data)
	return "resume:parse:" + hex.EncodeToString(sum[:])
}
