package importexport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldbarth/arcflow/internal/core/types"
)

func samplePlaylists() []types.Playlist {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return []types.Playlist{
		{
			ID:          "pl-1",
			Name:        "Focus",
			Description: "deep work",
			CreatedAt:   now,
			UpdatedAt:   now,
			Videos: []types.VideoItem{
				{ID: "v-2", YoutubeID: "yt2", Title: "Second", Position: 1, AddedAt: now, Duration: 90 * time.Second},
				{ID: "v-1", YoutubeID: "yt1", Title: "First", Position: 0, AddedAt: now},
			},
		},
	}
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	env := ToEnvelope(samplePlaylists(), nil, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	data, err := Serialize(env)
	require.NoError(t, err)

	got, err := Deserialize(data)
	require.NoError(t, err)
	assert.Equal(t, env, got)
}

func TestToEnvelopeOrdersVideosByPosition(t *testing.T) {
	env := ToEnvelope(samplePlaylists(), nil, time.Now())
	require.Len(t, env.Playlists, 1)
	require.Len(t, env.Playlists[0].Videos, 2)
	assert.Equal(t, "v-1", env.Playlists[0].Videos[0].ID)
	assert.Equal(t, "v-2", env.Playlists[0].Videos[1].ID)
}

func TestFromEnvelopeRoundTripsPlaylists(t *testing.T) {
	env := ToEnvelope(samplePlaylists(), nil, time.Now())
	back := FromEnvelope(env)
	require.Len(t, back, 1)
	assert.Equal(t, "Focus", back[0].Name)
	require.Len(t, back[0].Videos, 2)
	assert.Equal(t, "yt1", back[0].Videos[0].YoutubeID)
	assert.Equal(t, 90*time.Second, back[0].Videos[1].Duration)
}

func TestCheckSchemaVersionRejectsNewer(t *testing.T) {
	env := types.Envelope{SchemaVersion: SchemaVersion + 1}
	err := CheckSchemaVersion(env)
	require.NotNil(t, err)
	assert.Equal(t, types.ImportErrUnsupportedSchema, err.Kind)
}

func TestCheckSchemaVersionAcceptsCurrent(t *testing.T) {
	env := types.Envelope{SchemaVersion: SchemaVersion}
	assert.Nil(t, CheckSchemaVersion(env))
}

func TestValidateRejectsEmptyPlaylistName(t *testing.T) {
	env := types.Envelope{Playlists: []types.PlaylistDTO{{Name: ""}}}
	err := Validate(env)
	require.NotNil(t, err)
	assert.Equal(t, types.ImportErrValidation, err.Kind)
}

func TestValidateRejectsEmptyYouTubeID(t *testing.T) {
	env := types.Envelope{Playlists: []types.PlaylistDTO{{
		Name:   "ok",
		Videos: []types.VideoDTO{{YouTubeID: "", Title: "t"}},
	}}}
	err := Validate(env)
	require.NotNil(t, err)
	assert.Equal(t, types.ImportErrValidation, err.Kind)
}

func TestValidateRejectsEmptyTitle(t *testing.T) {
	env := types.Envelope{Playlists: []types.PlaylistDTO{{
		Name:   "ok",
		Videos: []types.VideoDTO{{YouTubeID: "yt", Title: ""}},
	}}}
	err := Validate(env)
	require.NotNil(t, err)
	assert.Equal(t, types.ImportErrValidation, err.Kind)
}

func TestValidateRejectsNegativePosition(t *testing.T) {
	env := types.Envelope{Playlists: []types.PlaylistDTO{{
		Name:   "ok",
		Videos: []types.VideoDTO{{YouTubeID: "yt", Title: "t", Position: -1}},
	}}}
	err := Validate(env)
	require.NotNil(t, err)
	assert.Equal(t, types.ImportErrValidation, err.Kind)
}

func TestValidateAcceptsWellFormedEnvelope(t *testing.T) {
	env := ToEnvelope(samplePlaylists(), nil, time.Now())
	assert.Nil(t, Validate(env))
}

func TestCheckIDCollisionsDetectsDuplicatePlaylistIDs(t *testing.T) {
	env := types.Envelope{Playlists: []types.PlaylistDTO{{ID: "dup"}, {ID: "dup"}}}
	err := CheckIDCollisions(env)
	require.NotNil(t, err)
	assert.Equal(t, types.ImportErrIDCollision, err.Kind)
}

func TestCheckIDCollisionsDetectsDuplicateVideoIDs(t *testing.T) {
	env := types.Envelope{Playlists: []types.PlaylistDTO{
		{ID: "p1", Videos: []types.VideoDTO{{ID: "dup"}}},
		{ID: "p2", Videos: []types.VideoDTO{{ID: "dup"}}},
	}}
	err := CheckIDCollisions(env)
	require.NotNil(t, err)
	assert.Equal(t, types.ImportErrIDCollision, err.Kind)
}

func TestCheckIDCollisionsAllowsUniqueIDs(t *testing.T) {
	env := types.Envelope{Playlists: []types.PlaylistDTO{
		{ID: "p1", Videos: []types.VideoDTO{{ID: "v1"}}},
		{ID: "p2", Videos: []types.VideoDTO{{ID: "v2"}}},
	}}
	assert.Nil(t, CheckIDCollisions(env))
}

func TestSerializeUsesLowerCamelCaseFieldNames(t *testing.T) {
	env := ToEnvelope(samplePlaylists(), nil, time.Now())
	data, err := Serialize(env)
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, `"schemaVersion"`)
	assert.Contains(t, s, `"youTubeId"`)
	assert.Contains(t, s, `"exportedAtUtc"`)
}
