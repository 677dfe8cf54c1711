package party

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Sequencer allocates the next sequence number for a party's queue. The
// allocation runs inside the caller's transaction so the number and the entry
// it orders commit as one unit.
type Sequencer interface {
	NextSequence(ctx context.Context, tx pgx.Tx, partyID string) (int64, error)
}

// CounterSequencer increments a per-party counter row. The row-level lock
// taken by the UPDATE serializes concurrent enqueues on the same party, which
// is what makes the numbers strictly increasing with no duplicates. A read
// of MAX(sequence_number)+1 in application code cannot give that guarantee.
type CounterSequencer struct{}

const maxSequenceAttempts = 3

func (CounterSequencer) NextSequence(ctx context.Context, tx pgx.Tx, partyID string) (int64, error) {
	for attempt := 0; attempt < maxSequenceAttempts; attempt++ {
		var seq int64
		err := tx.QueryRow(ctx, `
			UPDATE party_sequences
			SET last_seq = last_seq + 1
			WHERE party_id = $1
			RETURNING last_seq
		`, partyID).Scan(&seq)
		if err == nil {
			return seq, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return 0, mapStoreError(err)
		}

		// No counter row: the party predates the counter table. Seed it from
		// whatever the queue already holds, then retry the increment. The
		// ON CONFLICT guard keeps two concurrent seeders from clobbering each
		// other.
		if _, err := tx.Exec(ctx, `
			INSERT INTO party_sequences(party_id, last_seq)
			SELECT $1, COALESCE(MAX(sequence_number), 0)
			FROM party_queue
			WHERE party_id = $1
			ON CONFLICT (party_id) DO NOTHING
		`, partyID); err != nil {
			return 0, mapStoreError(err)
		}
	}
	return 0, fmt.Errorf("%w: sequence allocation retries exhausted", ErrContention)
}
