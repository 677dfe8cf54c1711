package party

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func AutoMigrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS pgcrypto`); err != nil {
		log.Printf("party-service: extension: %v", err)
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS listening_parties (
          id                      uuid PRIMARY KEY DEFAULT gen_random_uuid(),
          host_id                 TEXT NOT NULL,
          status                  TEXT NOT NULL DEFAULT 'Pending',
          version                 BIGINT NOT NULL DEFAULT 0,
          current_track_id        TEXT,
          current_track_name      TEXT,
          current_track_artist    TEXT,
          current_track_album_art TEXT,
          playback_timestamp      TIMESTAMPTZ,
          created_at              TIMESTAMPTZ NOT NULL DEFAULT now(),
          updated_at              TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `); err != nil {
		log.Printf("migrate party-service listening_parties: %v", err)
		return err
	}

	if _, err := pool.Exec(ctx, `
      ALTER TABLE listening_parties ADD COLUMN IF NOT EXISTS version BIGINT NOT NULL DEFAULT 0
    `); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS party_participants (
          id        uuid NOT NULL DEFAULT gen_random_uuid(),
          party_id  uuid NOT NULL REFERENCES listening_parties(id) ON DELETE CASCADE,
          user_id   TEXT NOT NULL,
          role      TEXT NOT NULL DEFAULT 'Listener',
          joined_at TIMESTAMPTZ NOT NULL DEFAULT now(),
          PRIMARY KEY (party_id, user_id)
      )
    `); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS party_queue (
          id                  uuid PRIMARY KEY DEFAULT gen_random_uuid(),
          party_id            uuid NOT NULL REFERENCES listening_parties(id) ON DELETE CASCADE,
          track_id            TEXT NOT NULL,
          track_name          TEXT NOT NULL,
          track_artist        TEXT NOT NULL,
          track_album_art     TEXT,
          sequence_number     BIGINT NOT NULL,
          vote_count          INT NOT NULL DEFAULT 0,
          added_by            TEXT,
          created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE UNIQUE INDEX IF NOT EXISTS idx_party_queue_sequence
      ON party_queue(party_id, sequence_number)
    `); err != nil {
		return err
	}

	// Durable per-party counter backing the sequencer. One row per party,
	// created together with the party.
	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS party_sequences (
          party_id uuid PRIMARY KEY REFERENCES listening_parties(id) ON DELETE CASCADE,
          last_seq BIGINT NOT NULL DEFAULT 0
      )
    `); err != nil {
		return err
	}

	return nil
}
