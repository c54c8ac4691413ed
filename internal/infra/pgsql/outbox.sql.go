package pgsql

import (
	"context"
	"time"
)

const insertOutboxEvent = `
INSERT INTO outbox_events (id, aggregate_id, event_type, payload, created_at)
VALUES ($1, $2, $3, $4, $5)
`

func (q *Queries) InsertOutboxEvent(ctx context.Context, db DBTX, arg OutboxEvents) error {
	_, err := db.Exec(ctx, insertOutboxEvent, arg.ID, arg.AggregateID, arg.EventType, arg.Payload, arg.CreatedAt)
	return err
}

const fetchUnpublishedOutbox = `
SELECT seq, id, aggregate_id, event_type, payload, created_at
FROM outbox_events
WHERE published_at IS NULL
ORDER BY seq
LIMIT $1
FOR UPDATE SKIP LOCKED
`

func (q *Queries) FetchUnpublishedOutbox(ctx context.Context, db DBTX, limit int32) ([]OutboxEvents, error) {
	rows, err := db.Query(ctx, fetchUnpublishedOutbox, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []OutboxEvents{}
	for rows.Next() {
		var i OutboxEvents
		if err := rows.Scan(&i.Seq, &i.ID, &i.AggregateID, &i.EventType, &i.Payload, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const markOutboxPublished = `
UPDATE outbox_events
SET published_at = $2
WHERE seq = ANY($1)
`

func (q *Queries) MarkOutboxPublished(ctx context.Context, db DBTX, seqs []int64, at time.Time) error {
	if len(seqs) == 0 {
		return nil
	}
	_, err := db.Exec(ctx, markOutboxPublished, seqs, at)
	return err
}
