package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Provider searches an external track catalog.
type Provider interface {
	SearchTracks(ctx context.Context, query string, limit int) ([]Track, error)
}

// SpotifyClient talks to a Spotify-compatible search API behind a bearer
// token. The token exchange itself happens upstream; this client only spends
// an already-issued key.
type SpotifyClient struct {
	apiKey    string
	searchURL string
	http      *http.Client
}

func NewSpotifyClient(apiKey, searchURL string) *SpotifyClient {
	return &SpotifyClient{
		apiKey:    apiKey,
		searchURL: searchURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type spotifySearchResponse struct {
	Tracks struct {
		Items []struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
			Album struct {
				Images []struct {
					URL string `json:"url"`
				} `json:"images"`
			} `json:"album"`
			PreviewURL   *string `json:"preview_url"`
			DurationMs   int     `json:"duration_ms"`
			ExternalURLs struct {
				Spotify string `json:"spotify"`
			} `json:"external_urls"`
		} `json:"items"`
	} `json:"tracks"`
}

func (c *SpotifyClient) SearchTracks(ctx context.Context, query string, limit int) ([]Track, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	val := url.Values{}
	val.Set("q", query)
	val.Set("type", "track")
	val.Set("limit", fmt.Sprint(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL+"?"+val.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog status %d", resp.StatusCode)
	}

	var body spotifySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	out := make([]Track, 0, len(body.Tracks.Items))
	for _, it := range body.Tracks.Items {
		artist := ""
		if len(it.Artists) > 0 {
			artist = it.Artists[0].Name
		}
		var art *string
		if len(it.Album.Images) > 0 && it.Album.Images[0].URL != "" {
			u := it.Album.Images[0].URL
			art = &u
		}
		out = append(out, Track{
			ID:          it.ID,
			Name:        it.Name,
			Artist:      artist,
			AlbumArt:    art,
			PreviewURL:  it.PreviewURL,
			DurationMs:  it.DurationMs,
			ExternalURL: it.ExternalURLs.Spotify,
		})
	}
	return out, nil
}
