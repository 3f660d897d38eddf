// Package youtube implements the YouTube-URL extraction rule from spec.md
// §6 and a thin metadata client, grounded directly on the teacher's
// internal/youtube/client.go.
package youtube

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"sync"
	"time"
)

// VideoInfo is the metadata the AddVideo effect needs.
type VideoInfo struct {
	Title    string
	Duration time.Duration
	Views    int
}

// Client fetches and caches video metadata from the YouTube Data API.
type Client struct {
	apiKey string
	mu     sync.RWMutex
	cache  map[string]cacheEntry
}

type cacheEntry struct {
	info     VideoInfo
	cachedAt time.Time
}

// urlPatterns accepts youtube.com/watch?v=<id>, youtu.be/<id>, and
// youtube.com/embed/<id>, per spec.md §6.
var urlPatterns = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([a-zA-Z0-9_-]{11})`)
var bareID = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// ExtractID returns the 11-character video id from text, or "" if none of
// the recognised forms match.
func ExtractID(text string) string {
	if m := urlPatterns.FindStringSubmatch(text); len(m) > 1 {
		return m[1]
	}
	if bareID.MatchString(text) {
		return text
	}
	return ""
}

func NewClient(apiKey string) *Client {
	return &Client{apiKey: apiKey, cache: make(map[string]cacheEntry)}
}

func (c *Client) APIKey() string { return c.apiKey }

func (c *Client) GetVideoInfo(videoID string) (VideoInfo, error) {
	return c.getVideoInfoWithClient(videoID, &http.Client{Timeout: 20 * time.Second})
}

func (c *Client) getVideoInfoWithClient(videoID string, httpClient *http.Client) (VideoInfo, error) {
	c.mu.RLock()
	if e, ok := c.cache[videoID]; ok {
		c.mu.RUnlock()
		return e.info, nil
	}
	c.mu.RUnlock()

	if c.apiKey == "" {
		return VideoInfo{}, fmt.Errorf("YouTube API key not configured")
	}

	url := fmt.Sprintf(
		"https://www.googleapis.com/youtube/v3/videos?part=snippet,contentDetails,statistics&id=%s&key=%s",
		videoID, c.apiKey,
	)
	resp, err := httpClient.Get(url)
	if err != nil {
		return VideoInfo{}, fmt.Errorf("failed to fetch video info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return VideoInfo{}, fmt.Errorf("youtube API returned status: %d", resp.StatusCode)
	}

	var apiResp struct {
		Items []struct {
			Snippet struct {
				Title string `json:"title"`
			} `json:"snippet"`
			ContentDetails struct {
				Duration string `json:"duration"`
			} `json:"contentDetails"`
			Statistics struct {
				ViewCount string `json:"viewCount"`
			} `json:"statistics"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return VideoInfo{}, fmt.Errorf("failed to parse API response: %w", err)
	}
	if len(apiResp.Items) == 0 {
		return VideoInfo{}, fmt.Errorf("video not found")
	}

	item := apiResp.Items[0]
	dur, err := parseISODuration(item.ContentDetails.Duration)
	if err != nil {
		return VideoInfo{}, fmt.Errorf("failed to parse duration: %w", err)
	}
	views := 0
	if item.Statistics.ViewCount != "" {
		views, _ = strconv.Atoi(item.Statistics.ViewCount)
	}

	info := VideoInfo{Title: item.Snippet.Title, Duration: dur, Views: views}

	c.mu.Lock()
	if len(c.cache) >= 100 {
		c.evictOldestLocked()
	}
	c.cache[videoID] = cacheEntry{info: info, cachedAt: time.Now()}
	c.mu.Unlock()

	return info, nil
}

func (c *Client) evictOldestLocked() {
	var oldestKey string
	var oldestTime time.Time
	for k, e := range c.cache {
		if oldestKey == "" || e.cachedAt.Before(oldestTime) {
			oldestKey, oldestTime = k, e.cachedAt
		}
	}
	if oldestKey != "" {
		delete(c.cache, oldestKey)
	}
}

var isoDuration = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

func parseISODuration(iso string) (time.Duration, error) {
	m := isoDuration.FindStringSubmatch(iso)
	if m == nil {
		return 0, fmt.Errorf("invalid duration format")
	}
	h, mi, s := 0, 0, 0
	if m[1] != "" {
		h, _ = strconv.Atoi(m[1])
	}
	if m[2] != "" {
		mi, _ = strconv.Atoi(m[2])
	}
	if m[3] != "" {
		s, _ = strconv.Atoi(m[3])
	}
	return time.Duration(h)*time.Hour + time.Duration(mi)*time.Minute + time.Duration(s)*time.Second, nil
}
