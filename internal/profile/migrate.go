package profile

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func AutoMigrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS users (
          id               TEXT PRIMARY KEY,
          username         TEXT NOT NULL UNIQUE,
          display_name     TEXT,
          bio              TEXT,
          avatar_url       TEXT,
          user_type        TEXT,
          party_preference TEXT,
          created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
          updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `); err != nil {
		log.Printf("migrate party-service users: %v", err)
		return err
	}

	for _, table := range []string{"genres", "vibes", "soundscapes"} {
		if _, err := pool.Exec(ctx, `
          CREATE TABLE IF NOT EXISTS `+table+` (
              id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
              name       TEXT NOT NULL UNIQUE,
              created_at TIMESTAMPTZ NOT NULL DEFAULT now()
          )
        `); err != nil {
			return err
		}
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS artists (
          id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
          name       TEXT NOT NULL UNIQUE,
          image_url  TEXT,
          created_at TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `); err != nil {
		return err
	}

	links := []struct{ table, column, ref string }{
		{"user_genres", "genre_id", "genres"},
		{"user_vibes", "vibe_id", "vibes"},
		{"user_soundscapes", "soundscape_id", "soundscapes"},
		{"user_followed_artists", "artist_id", "artists"},
	}
	for _, l := range links {
		if _, err := pool.Exec(ctx, `
          CREATE TABLE IF NOT EXISTS `+l.table+` (
              user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
              `+l.column+` uuid NOT NULL REFERENCES `+l.ref+`(id) ON DELETE CASCADE,
              created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
              PRIMARY KEY (user_id, `+l.column+`)
          )
        `); err != nil {
			return err
		}
	}

	return nil
}
