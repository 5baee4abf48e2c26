package history

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps room logs in the chat_messages table, which the
// application migrations create.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Append(ctx context.Context, roomID, text string) error {
	const query = `INSERT INTO chat_messages (room_id, body) VALUES ($1, $2)`

	if _, err := s.pool.Exec(ctx, query, roomID, text); err != nil {
		return fmt.Errorf("insert chat message: %w", err)
	}
	return nil
}

func (s *PostgresStore) ReadAll(ctx context.Context, roomID string) ([]string, error) {
	const query = `SELECT body FROM chat_messages WHERE room_id = $1 ORDER BY id`

	rows, err := s.pool.Query(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("query chat messages: %w", err)
	}

	lines, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan chat messages: %w", err)
	}
	if lines == nil {
		lines = []string{}
	}
	return lines, nil
}
