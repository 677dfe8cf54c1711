package catalog

// Track is the search result shape handed to clients, and the snapshot they
// pass back when enqueueing or setting the current track.
type Track struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Artist      string  `json:"artist"`
	AlbumArt    *string `json:"albumArt,omitempty"`
	PreviewURL  *string `json:"previewUrl,omitempty"`
	DurationMs  int     `json:"durationMs,omitempty"`
	ExternalURL string  `json:"externalUrl,omitempty"`
}

type SearchResponse struct {
	Tracks []Track `json:"tracks"`
}
