package types

// Envelope is the schema-v1 export/import wire format from spec.md §4.5.
// Field names are lower-camel-case on the wire (see importexport.Serialize);
// this struct is the in-memory representation shared by ImportExportState.
type Envelope struct {
	SchemaVersion      int
	ExportedAtUTC      string
	Playlists          []PlaylistDTO
	SelectedPlaylistID *string
}

// PlaylistDTO is a playlist as it appears in an Envelope.
type PlaylistDTO struct {
	ID            string
	Name          string
	Description   string
	CreatedAtUTC  string
	UpdatedAtUTC  string
	Videos        []VideoDTO
}

// VideoDTO is a video as it appears in an Envelope. ThumbnailURL and
// DurationSec are optional (omitted on write when zero/empty).
type VideoDTO struct {
	ID           string
	YouTubeID    string
	Title        string
	ThumbnailURL string
	DurationSec  *int
	Position     int
	AddedAtUTC   string
}
