// README: Message archive backed by PostgreSQL (optional, append-only audit trail).
package conversation

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ArchiveStore writes every exchanged message to Postgres. Best effort: the
// service logs archive failures but never fails a user request over them.
type ArchiveStore struct {
	db *pgxpool.Pool
}

func NewArchiveStore(db *pgxpool.Pool) *ArchiveStore {
	return &ArchiveStore{db: db}
}

func (s *ArchiveStore) AppendMessage(ctx context.Context, sessionID string, m Message) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO conversation_messages (
            session_id, role, content, created_at
        ) VALUES ($1, $2, $3, $4)`,
		sessionID,
		string(m.Role),
		m.Content,
		m.Timestamp,
	)
	return err
}

// RecentMessages returns the newest messages for a session, oldest first.
func (s *ArchiveStore) RecentMessages(ctx context.Context, sessionID string, limit int) ([]Message, error) {
	rows, err := s.db.Query(ctx, `
        SELECT role, content, created_at
        FROM conversation_messages
        WHERE session_id = $1
        ORDER BY created_at DESC
        LIMIT $2`, sessionID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		var role string
		if err := rows.Scan(&role, &m.Content, &m.Timestamp); err != nil {
			return nil, err
		}
		m.Role = Role(role)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// reverse into chronological order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
