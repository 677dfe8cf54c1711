package party

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store owns Party, Participant and QueueEntry persistence. All invariants
// (single host, forward-only status, unique join, monotonic sequence numbers)
// are enforced here; nothing else writes these tables.
type Store interface {
	CreateParty(ctx context.Context, hostID string) (*Party, error)
	GetParty(ctx context.Context, partyID string) (*Party, error)
	SetStatus(ctx context.Context, partyID, callerID, status string) (*Party, error)
	SetCurrentTrack(ctx context.Context, partyID, callerID string, track Track, playbackAt time.Time) (*Party, error)

	ListQueue(ctx context.Context, partyID string) ([]QueueEntry, error)
	Enqueue(ctx context.Context, partyID string, track Track, addedBy *string) (*QueueEntry, error)
	RemoveQueueEntry(ctx context.Context, partyID, entryID string) error
	VoteQueueEntry(ctx context.Context, partyID, entryID string) (*QueueEntry, error)

	Join(ctx context.Context, partyID, userID string) (*Participant, error)
	Leave(ctx context.Context, partyID, userID string) error
	ListParticipants(ctx context.Context, partyID string) ([]Participant, error)
}

type PostgresStore struct {
	pool *pgxpool.Pool
	seq  Sequencer
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		pool: pool,
		seq:  CounterSequencer{},
	}
}

const partyColumns = `id, host_id, status, version,
	current_track_id, current_track_name, current_track_artist, current_track_album_art,
	playback_timestamp, created_at, updated_at`

func scanParty(row pgx.Row) (*Party, error) {
	var p Party
	err := row.Scan(
		&p.ID, &p.HostID, &p.Status, &p.Version,
		&p.CurrentTrackID, &p.CurrentTrackName, &p.CurrentTrackArtist, &p.CurrentTrackAlbumArt,
		&p.PlaybackTimestamp, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return &p, nil
}

// CreateParty inserts the party, its Host participant and its sequence counter
// in one transaction. No observer ever sees a party without a host.
func (s *PostgresStore) CreateParty(ctx context.Context, hostID string) (*Party, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer tx.Rollback(ctx)

	p, err := scanParty(tx.QueryRow(ctx, `
		INSERT INTO listening_parties (host_id, status)
		VALUES ($1, $2)
		RETURNING `+partyColumns, hostID, StatusPending))
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO party_participants (party_id, user_id, role)
		VALUES ($1, $2, $3)
	`, p.ID, hostID, RoleHost); err != nil {
		return nil, mapStoreError(err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO party_sequences (party_id, last_seq)
		VALUES ($1, 0)
	`, p.ID); err != nil {
		return nil, mapStoreError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapStoreError(err)
	}
	return p, nil
}

func (s *PostgresStore) GetParty(ctx context.Context, partyID string) (*Party, error) {
	return scanParty(s.pool.QueryRow(ctx, `
		SELECT `+partyColumns+`
		FROM listening_parties
		WHERE id = $1
	`, partyID))
}

// SetStatus moves the party through its lifecycle. Host-only; Ended is
// terminal.
func (s *PostgresStore) SetStatus(ctx context.Context, partyID, callerID, status string) (*Party, error) {
	if !validStatus(status) {
		return nil, ErrInvalidTransition
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer tx.Rollback(ctx)

	var hostID, current string
	err = tx.QueryRow(ctx, `
		SELECT host_id, status
		FROM listening_parties
		WHERE id = $1
		FOR UPDATE
	`, partyID).Scan(&hostID, &current)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if callerID != hostID {
		return nil, ErrForbidden
	}
	if !validTransition(current, status) {
		return nil, ErrInvalidTransition
	}

	p, err := scanParty(tx.QueryRow(ctx, `
		UPDATE listening_parties
		SET status = $2, version = version + 1, updated_at = now()
		WHERE id = $1
		RETURNING `+partyColumns, partyID, status))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapStoreError(err)
	}
	return p, nil
}

// SetCurrentTrack replaces the whole current-track snapshot and the playback
// timestamp in one update. Host-only; rejected once the party has ended.
func (s *PostgresStore) SetCurrentTrack(ctx context.Context, partyID, callerID string, track Track, playbackAt time.Time) (*Party, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer tx.Rollback(ctx)

	var hostID, current string
	err = tx.QueryRow(ctx, `
		SELECT host_id, status
		FROM listening_parties
		WHERE id = $1
		FOR UPDATE
	`, partyID).Scan(&hostID, &current)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if callerID != hostID {
		return nil, ErrForbidden
	}
	if current == StatusEnded {
		return nil, ErrInvalidTransition
	}

	p, err := scanParty(tx.QueryRow(ctx, `
		UPDATE listening_parties
		SET current_track_id        = $2,
		    current_track_name      = $3,
		    current_track_artist    = $4,
		    current_track_album_art = $5,
		    playback_timestamp      = $6,
		    version                 = version + 1,
		    updated_at              = now()
		WHERE id = $1
		RETURNING `+partyColumns,
		partyID, track.ID, track.Name, track.Artist, track.AlbumArt, playbackAt))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapStoreError(err)
	}
	return p, nil
}

const queueColumns = `id, party_id, track_id, track_name, track_artist,
	track_album_art, sequence_number, vote_count, added_by, created_at`

func scanQueueEntry(row pgx.Row) (*QueueEntry, error) {
	var e QueueEntry
	err := row.Scan(
		&e.ID, &e.PartyID, &e.TrackID, &e.TrackName, &e.TrackArtist,
		&e.TrackAlbumArt, &e.SequenceNumber, &e.VoteCount, &e.AddedBy, &e.CreatedAt,
	)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return &e, nil
}

func (s *PostgresStore) ListQueue(ctx context.Context, partyID string) ([]QueueEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+queueColumns+`
		FROM party_queue
		WHERE party_id = $1
		ORDER BY sequence_number ASC
	`, partyID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	entries := make([]QueueEntry, 0)
	for rows.Next() {
		e, err := scanQueueEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, mapStoreError(err)
	}
	return entries, nil
}

// Enqueue appends a track to the party queue. The sequencer runs inside the
// same transaction as the insert, so the allocated number and the entry commit
// together. The party row is locked in share mode: concurrent enqueues still
// run in parallel, but none can slip past a host ending the party.
func (s *PostgresStore) Enqueue(ctx context.Context, partyID string, track Track, addedBy *string) (*QueueEntry, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer tx.Rollback(ctx)

	var current string
	err = tx.QueryRow(ctx, `
		SELECT status
		FROM listening_parties
		WHERE id = $1
		FOR SHARE
	`, partyID).Scan(&current)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if current == StatusEnded {
		return nil, ErrInvalidTransition
	}

	seq, err := s.seq.NextSequence(ctx, tx, partyID)
	if err != nil {
		return nil, err
	}

	e, err := scanQueueEntry(tx.QueryRow(ctx, `
		INSERT INTO party_queue (
			party_id, track_id, track_name, track_artist, track_album_art,
			sequence_number, added_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+queueColumns,
		partyID, track.ID, track.Name, track.Artist, track.AlbumArt, seq, addedBy))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapStoreError(err)
	}
	return e, nil
}

// RemoveQueueEntry deletes an entry. Surviving entries keep their sequence
// numbers; the order never renumbers.
func (s *PostgresStore) RemoveQueueEntry(ctx context.Context, partyID, entryID string) error {
	res, err := s.pool.Exec(ctx, `
		DELETE FROM party_queue
		WHERE id = $1 AND party_id = $2
	`, entryID, partyID)
	if err != nil {
		return mapStoreError(err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) VoteQueueEntry(ctx context.Context, partyID, entryID string) (*QueueEntry, error) {
	return scanQueueEntry(s.pool.QueryRow(ctx, `
		UPDATE party_queue
		SET vote_count = vote_count + 1
		WHERE id = $1 AND party_id = $2
		RETURNING `+queueColumns, entryID, partyID))
}

// Join adds the user as a Listener. The (party_id, user_id) primary key makes
// a second join fail with ErrConflict. The host's own participant row is
// created by CreateParty, never here.
func (s *PostgresStore) Join(ctx context.Context, partyID, userID string) (*Participant, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM listening_parties WHERE id = $1)
	`, partyID).Scan(&exists)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	var pt Participant
	err = s.pool.QueryRow(ctx, `
		INSERT INTO party_participants (party_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, party_id, user_id, role, joined_at
	`, partyID, userID, RoleListener).Scan(&pt.ID, &pt.PartyID, &pt.UserID, &pt.Role, &pt.JoinedAt)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return &pt, nil
}

// Leave removes the participant row. Leaving a party you are not in is a
// no-op, matching the delete-by-filter semantics clients already rely on.
func (s *PostgresStore) Leave(ctx context.Context, partyID, userID string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM party_participants
		WHERE party_id = $1 AND user_id = $2
	`, partyID, userID)
	return mapStoreError(err)
}

func (s *PostgresStore) ListParticipants(ctx context.Context, partyID string) ([]Participant, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, party_id, user_id, role, joined_at
		FROM party_participants
		WHERE party_id = $1
	`, partyID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	participants := make([]Participant, 0)
	for rows.Next() {
		var pt Participant
		if err := rows.Scan(&pt.ID, &pt.PartyID, &pt.UserID, &pt.Role, &pt.JoinedAt); err != nil {
			return nil, mapStoreError(err)
		}
		participants = append(participants, pt)
	}
	if err := rows.Err(); err != nil {
		return nil, mapStoreError(err)
	}
	return participants, nil
}
