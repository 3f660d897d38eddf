package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/goldbarth/arcflow/internal/core/types"
)

// TestRecentlyPlayedResolvesHistoryThroughVideoItemID guards against the
// YouTube-id/VideoItem.ID namespace mismatch: PlaybackHistory holds
// VideoItem.ID values, not raw YouTube ids, so recentlyPlayed must resolve
// through the current video list before comparing.
func TestRecentlyPlayedResolvesHistoryThroughVideoItemID(t *testing.T) {
	videos := []types.VideoItem{
		{ID: "item-1", YoutubeID: "yt-aaa"},
		{ID: "item-2", YoutubeID: "yt-bbb"},
	}
	history := []string{"item-2", "item-1", "item-2"}

	assert.True(t, recentlyPlayed(videos, history, "yt-bbb", 2))
	assert.False(t, recentlyPlayed(videos, history, "yt-bbb", 3))
	assert.False(t, recentlyPlayed(videos, history, "yt-ccc", 1))
}

func TestRecentlyPlayedIgnoresHistoryEntriesForRemovedVideos(t *testing.T) {
	videos := []types.VideoItem{{ID: "item-1", YoutubeID: "yt-aaa"}}
	history := []string{"item-deleted", "item-deleted"}

	assert.False(t, recentlyPlayed(videos, history, "yt-aaa", 1))
}
