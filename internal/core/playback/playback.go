// Package playback implements the pure PlaybackNavigation contract from
// spec.md §4.1: four total functions, no I/O, no time, no randomness
// except through the caller-supplied shuffle seed.
package playback

import (
	"math/rand"

	"github.com/goldbarth/arcflow/internal/core/types"
)

// DecisionKind discriminates a navigation Decision.
type DecisionKind int

const (
	Stop DecisionKind = iota
	AdvanceTo
	NoOp
)

// Decision is the result of ComputeNext/ComputePrev.
type Decision struct {
	Kind        DecisionKind
	VideoItemID string
}

func videoIDs(videos []types.VideoItem) []string {
	ids := make([]string, len(videos))
	for i, v := range videos {
		ids[i] = v.ID
	}
	return ids
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func indexOfVideo(videos []types.VideoItem, id string) int {
	for i, v := range videos {
		if v.ID == id {
			return i
		}
	}
	return -1
}

func indexOfID(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// GenerateShuffleOrder produces a deterministic Fisher-Yates permutation of
// videos' identities seeded by seed. If currentItemID is present and lands
// at index > 0, it is moved to index 0. Returns nil if videos is empty.
func GenerateShuffleOrder(videos []types.VideoItem, currentItemID *string, seed int64) []string {
	ids := videoIDs(videos)
	if len(ids) == 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	if currentItemID != nil {
		if idx := indexOfID(ids, *currentItemID); idx > 0 {
			cur := ids[idx]
			copy(ids[1:idx+1], ids[0:idx])
			ids[0] = cur
		}
	}
	return ids
}

// ComputeNext implements spec.md §4.1 computeNext.
func ComputeNext(q types.QueueState) (Decision, types.QueueState) {
	if len(q.Videos) == 0 || q.CurrentItemID == nil {
		return Decision{Kind: Stop}, q
	}
	if q.RepeatMode == types.RepeatOne {
		return Decision{Kind: AdvanceTo, VideoItemID: *q.CurrentItemID}, q
	}

	var candidate string
	found := false

	if q.ShuffleEnabled {
		idx := indexOfID(q.ShuffleOrder, *q.CurrentItemID)
		if idx >= 0 {
			if idx+1 < len(q.ShuffleOrder) {
				candidate, found = q.ShuffleOrder[idx+1], true
			} else if q.RepeatMode == types.RepeatAll && len(q.ShuffleOrder) > 0 {
				candidate, found = q.ShuffleOrder[0], true
			}
		}
	} else {
		idx := indexOfVideo(q.Videos, *q.CurrentItemID)
		if idx >= 0 {
			if idx+1 < len(q.Videos) {
				candidate, found = q.Videos[idx+1].ID, true
			} else if q.RepeatMode == types.RepeatAll {
				candidate, found = q.Videos[0].ID, true
			}
		}
	}

	if !found {
		return Decision{Kind: Stop}, q
	}

	q2 := q
	history := append([]string{}, q.PlaybackHistory...)
	history = append(history, *q.CurrentItemID)
	if len(history) > types.PlaybackHistoryCap {
		history = history[len(history)-types.PlaybackHistoryCap:]
	}
	q2.PlaybackHistory = history
	return Decision{Kind: AdvanceTo, VideoItemID: candidate}, q2
}

// ComputePrev implements spec.md §4.1 computePrev.
func ComputePrev(q types.QueueState) (Decision, types.QueueState) {
	if len(q.Videos) == 0 || q.CurrentItemID == nil {
		return Decision{Kind: NoOp}, q
	}

	if q.ShuffleEnabled {
		if len(q.PlaybackHistory) == 0 {
			return Decision{Kind: NoOp}, q
		}
		p := q.PlaybackHistory[len(q.PlaybackHistory)-1]
		q2 := q
		q2.PlaybackHistory = append([]string{}, q.PlaybackHistory[:len(q.PlaybackHistory)-1]...)
		return Decision{Kind: AdvanceTo, VideoItemID: p}, q2
	}

	idx := indexOfVideo(q.Videos, *q.CurrentItemID)
	if idx <= 0 {
		return Decision{Kind: NoOp}, q
	}
	return Decision{Kind: AdvanceTo, VideoItemID: q.Videos[idx-1].ID}, q
}

// RepairPlaybackStructures implements spec.md §4.1 repairPlaybackStructures.
// Must be idempotent.
func RepairPlaybackStructures(q types.QueueState) types.QueueState {
	validIDs := videoIDs(q.Videos)

	filterValid := func(ids []string) []string {
		if ids == nil {
			return nil
		}
		out := make([]string, 0, len(ids))
		for _, id := range ids {
			if containsID(validIDs, id) {
				out = append(out, id)
			}
		}
		return out
	}

	shuffleOrder := filterValid(q.ShuffleOrder)
	if q.ShuffleEnabled && len(shuffleOrder) > 0 {
		present := make(map[string]bool, len(shuffleOrder))
		for _, id := range shuffleOrder {
			present[id] = true
		}
		for _, id := range validIDs {
			if !present[id] {
				shuffleOrder = append(shuffleOrder, id)
			}
		}
	}

	history := filterValid(q.PlaybackHistory)
	if len(history) > types.PlaybackHistoryCap {
		history = history[len(history)-types.PlaybackHistoryCap:]
	}

	currentItemID := q.CurrentItemID
	if currentItemID != nil && !containsID(validIDs, *currentItemID) {
		currentItemID = nil
	}

	var currentIndex *int
	if currentItemID != nil {
		if idx := indexOfVideo(q.Videos, *currentItemID); idx >= 0 {
			currentIndex = &idx
		} else {
			currentItemID = nil
		}
	}

	q2 := q
	q2.ShuffleOrder = shuffleOrder
	q2.PlaybackHistory = history
	q2.CurrentItemID = currentItemID
	q2.CurrentIndex = currentIndex
	return q2
}
