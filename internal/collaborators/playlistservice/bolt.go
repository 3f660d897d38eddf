package playlistservice

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/goldbarth/arcflow/internal/core/types"
)

var bucketPlaylists = []byte("playlists")

// gobVideo and gobPlaylist mirror types.VideoItem and types.Playlist in a
// form gob can encode without
// pulling time.Duration's private representation into the wire format.
type gobVideo struct {
	ID, YoutubeID, Title, ThumbnailURL, PlaylistID string
	DurationSec                                    int
	AddedAt                                        time.Time
	Position                                       int
}

type gobPlaylist struct {
	ID, Name, Description string
	CreatedAt, UpdatedAt  time.Time
	Videos                []gobVideo
}

func toGob(p types.Playlist) gobPlaylist {
	videos := make([]gobVideo, len(p.Videos))
	for i, v := range p.Videos {
		videos[i] = gobVideo{
			ID: v.ID, YoutubeID: v.YoutubeID, Title: v.Title,
			ThumbnailURL: v.ThumbnailURL, PlaylistID: v.PlaylistID,
			DurationSec: int(v.Duration.Seconds()), AddedAt: v.AddedAt, Position: v.Position,
		}
	}
	return gobPlaylist{ID: p.ID, Name: p.Name, Description: p.Description, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt, Videos: videos}
}

func fromGob(g gobPlaylist) types.Playlist {
	videos := make([]types.VideoItem, len(g.Videos))
	for i, v := range g.Videos {
		videos[i] = types.VideoItem{
			ID: v.ID, YoutubeID: v.YoutubeID, Title: v.Title,
			ThumbnailURL: v.ThumbnailURL, PlaylistID: v.PlaylistID,
			Duration: time.Duration(v.DurationSec) * time.Second, AddedAt: v.AddedAt, Position: v.Position,
		}
	}
	return types.Playlist{ID: g.ID, Name: g.Name, Description: g.Description, CreatedAt: g.CreatedAt, UpdatedAt: g.UpdatedAt, Videos: videos}
}

// Bolt is a Service implementation persisting the catalog in a single
// bbolt bucket keyed by playlist id, gob-encoded like the teacher's cache.
type Bolt struct {
	db *bolt.DB
}

// Open opens (creating if needed) the bolt database at path.
func Open(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPlaylists)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Bolt{db: db}, nil
}

func (b *Bolt) Close() error { return b.db.Close() }

func encode(p types.Playlist) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(toGob(p)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte) (types.Playlist, error) {
	var g gobPlaylist
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&g); err != nil {
		return types.Playlist{}, err
	}
	return fromGob(g), nil
}

func (b *Bolt) GetAll() ([]types.Playlist, error) {
	var out []types.Playlist
	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPlaylists).ForEach(func(_, v []byte) error {
			p, err := decode(v)
			if err != nil {
				return err
			}
			out = append(out, p)
			return nil
		})
	})
	return out, err
}

func (b *Bolt) GetByID(id string) (*types.Playlist, error) {
	var p *types.Playlist
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketPlaylists).Get([]byte(id))
		if v == nil {
			return nil
		}
		decoded, err := decode(v)
		if err != nil {
			return err
		}
		p = &decoded
		return nil
	})
	return p, err
}

func (b *Bolt) put(p types.Playlist) error {
	data, err := encode(p)
	if err != nil {
		return err
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPlaylists).Put([]byte(p.ID), data)
	})
}

func (b *Bolt) Create(p types.Playlist) error { return b.put(p) }
func (b *Bolt) Update(p types.Playlist) error { return b.put(p) }

func (b *Bolt) Delete(id string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPlaylists).Delete([]byte(id))
	})
}

func (b *Bolt) AddVideoToPlaylist(playlistID string, v types.VideoItem) error {
	p, err := b.GetByID(playlistID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("playlist not found: %s", playlistID)
	}
	v.Position = len(p.Videos)
	p.Videos = append(p.Videos, v)
	p.UpdatedAt = time.Now()
	return b.put(*p)
}

func (b *Bolt) RemoveVideoFromPlaylist(playlistID, videoID string) error {
	p, err := b.GetByID(playlistID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("playlist not found: %s", playlistID)
	}
	kept := make([]types.VideoItem, 0, len(p.Videos))
	for _, v := range p.Videos {
		if v.ID != videoID {
			kept = append(kept, v)
		}
	}
	for i := range kept {
		kept[i] = kept[i].WithPosition(i)
	}
	p.Videos = kept
	p.UpdatedAt = time.Now()
	return b.put(*p)
}

func (b *Bolt) UpdateVideoPositions(playlistID string, videos []types.VideoItem) error {
	p, err := b.GetByID(playlistID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("playlist not found: %s", playlistID)
	}
	p.Videos = videos
	p.UpdatedAt = time.Now()
	return b.put(*p)
}

// ReplaceAllPlaylists rewrites the whole bucket transactionally, the only
// call the persistence effect (spec.md §4.6) makes.
func (b *Bolt) ReplaceAllPlaylists(playlists []types.Playlist) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketPlaylists); err != nil {
			return err
		}
		bucket, err := tx.CreateBucket(bucketPlaylists)
		if err != nil {
			return err
		}
		for _, p := range playlists {
			data, err := encode(p)
			if err != nil {
				return err
			}
			if err := bucket.Put([]byte(p.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}
