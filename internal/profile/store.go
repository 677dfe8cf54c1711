package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("profile not found")
	ErrUsernameTaken = errors.New("username already taken")
)

type Store interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	CreateProfile(ctx context.Context, userID, username string) (*Profile, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*Profile, error)

	SetPreferences(ctx context.Context, userID, kind string, ids []string) error
	GetGenreNames(ctx context.Context, userID string) ([]string, error)

	ListGenres(ctx context.Context) ([]TaxonomyItem, error)
	ListVibes(ctx context.Context) ([]TaxonomyItem, error)
	ListSoundscapes(ctx context.Context) ([]TaxonomyItem, error)
	ListArtists(ctx context.Context) ([]Artist, error)
}

// Preference kinds map one-to-one onto the user_* link tables.
const (
	PrefGenres      = "genres"
	PrefVibes       = "vibes"
	PrefSoundscapes = "soundscapes"
	PrefArtists     = "artists"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const profileColumns = `id, username, display_name, bio, avatar_url,
	user_type, party_preference, created_at, updated_at`

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(
		&p.ID, &p.Username, &p.DisplayName, &p.Bio, &p.AvatarURL,
		&p.UserType, &p.PartyPreference, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PostgresStore) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	return scanProfile(s.pool.QueryRow(ctx, `
		SELECT `+profileColumns+`
		FROM users
		WHERE id = $1
	`, userID))
}

func (s *PostgresStore) CreateProfile(ctx context.Context, userID, username string) (*Profile, error) {
	p, err := scanProfile(s.pool.QueryRow(ctx, `
		INSERT INTO users (id, username)
		VALUES ($1, $2)
		RETURNING `+profileColumns, userID, username))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return p, nil
}

func (s *PostgresStore) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*Profile, error) {
	sets := []string{"updated_at = now()"}
	args := []any{userID}

	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if req.Username != nil {
		add("username", strings.TrimSpace(*req.Username))
	}
	if req.DisplayName != nil {
		add("display_name", req.DisplayName)
	}
	if req.Bio != nil {
		add("bio", req.Bio)
	}
	if req.AvatarURL != nil {
		add("avatar_url", req.AvatarURL)
	}
	if req.UserType != nil {
		add("user_type", req.UserType)
	}
	if req.PartyPreference != nil {
		add("party_preference", req.PartyPreference)
	}

	p, err := scanProfile(s.pool.QueryRow(ctx, `
		UPDATE users
		SET `+strings.Join(sets, ", ")+`
		WHERE id = $1
		RETURNING `+profileColumns, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return p, nil
}

var prefTables = map[string]struct {
	table  string
	column string
}{
	PrefGenres:      {"user_genres", "genre_id"},
	PrefVibes:       {"user_vibes", "vibe_id"},
	PrefSoundscapes: {"user_soundscapes", "soundscape_id"},
	PrefArtists:     {"user_followed_artists", "artist_id"},
}

// SetPreferences replaces the user's whole selection for one taxonomy kind:
// delete then re-insert, the same shape the onboarding screens submit.
func (s *PostgresStore) SetPreferences(ctx context.Context, userID, kind string, ids []string) error {
	ref, ok := prefTables[kind]
	if !ok {
		return fmt.Errorf("unknown preference kind %q", kind)
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM `+ref.table+` WHERE user_id = $1`, userID); err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := tx.Exec(ctx,
			`INSERT INTO `+ref.table+` (user_id, `+ref.column+`) VALUES ($1, $2)`,
			userID, id); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) GetGenreNames(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT g.name
		FROM user_genres ug
		JOIN genres g ON g.id = ug.genre_id
		WHERE ug.user_id = $1
		ORDER BY g.name
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *PostgresStore) listTaxonomy(ctx context.Context, table string) ([]TaxonomyItem, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, created_at FROM `+table+` ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]TaxonomyItem, 0)
	for rows.Next() {
		var it TaxonomyItem
		if err := rows.Scan(&it.ID, &it.Name, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *PostgresStore) ListGenres(ctx context.Context) ([]TaxonomyItem, error) {
	return s.listTaxonomy(ctx, "genres")
}

func (s *PostgresStore) ListVibes(ctx context.Context) ([]TaxonomyItem, error) {
	return s.listTaxonomy(ctx, "vibes")
}

func (s *PostgresStore) ListSoundscapes(ctx context.Context) ([]TaxonomyItem, error) {
	return s.listTaxonomy(ctx, "soundscapes")
}

func (s *PostgresStore) ListArtists(ctx context.Context) ([]Artist, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, image_url, created_at FROM artists ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	artists := make([]Artist, 0)
	for rows.Next() {
		var a Artist
		if err := rows.Scan(&a.ID, &a.Name, &a.ImageURL, &a.CreatedAt); err != nil {
			return nil, err
		}
		artists = append(artists, a)
	}
	return artists, rows.Err()
}
