package party

import (
	"time"
)

// Party status lifecycle: Pending -> Live -> Ended. Ended is terminal.
// Pending may also end directly (host cancels before going live).
const (
	StatusPending = "Pending"
	StatusLive    = "Live"
	StatusEnded   = "Ended"
)

const (
	RoleHost     = "Host"
	RoleCoHost   = "Co-host"
	RoleListener = "Listener"
)

// Party is a hosted, time-bounded shared listening session. The current-track
// columns are set together or not at all; PlaybackTimestamp marks the instant
// the track position was last authoritative on the host's player. Version
// increments inside every locked update, so it follows commit order even when
// transaction timestamps do not; subscribers order snapshots by it.
type Party struct {
	ID                   string     `json:"id"`
	HostID               string     `json:"hostId"`
	Status               string     `json:"status"`
	Version              int64      `json:"version"`
	CurrentTrackID       *string    `json:"currentTrackId,omitempty"`
	CurrentTrackName     *string    `json:"currentTrackName,omitempty"`
	CurrentTrackArtist   *string    `json:"currentTrackArtist,omitempty"`
	CurrentTrackAlbumArt *string    `json:"currentTrackAlbumArt,omitempty"`
	PlaybackTimestamp    *time.Time `json:"playbackTimestamp,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

type Participant struct {
	ID       string    `json:"id"`
	PartyID  string    `json:"partyId"`
	UserID   string    `json:"userId"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

// QueueEntry is one proposed track in a party's queue. SequenceNumber is the
// total-order key; it is unique per party and never reassigned, so deletions
// leave gaps.
type QueueEntry struct {
	ID             string    `json:"id"`
	PartyID        string    `json:"partyId"`
	TrackID        string    `json:"trackId"`
	TrackName      string    `json:"trackName"`
	TrackArtist    string    `json:"trackArtist"`
	TrackAlbumArt  *string   `json:"trackAlbumArt,omitempty"`
	SequenceNumber int64     `json:"sequenceNumber"`
	VoteCount      int       `json:"voteCount"`
	AddedBy        *string   `json:"addedBy,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Track is the catalog snapshot copied onto queue entries and the party's
// current-track columns.
type Track struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Artist   string  `json:"artist"`
	AlbumArt *string `json:"albumArt,omitempty"`
}

func validStatus(s string) bool {
	return s == StatusPending || s == StatusLive || s == StatusEnded
}

// validTransition reports whether a party may move from one status to another.
// Transitions are forward-only: Pending->Live, Pending->Ended, Live->Ended.
func validTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusLive || to == StatusEnded
	case StatusLive:
		return to == StatusEnded
	default:
		return false
	}
}
