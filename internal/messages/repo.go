package messages

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/portfolio/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type poolProvider interface {
	Pool(ctx context.Context) (*pgxpool.Pool, error)
}

var _ messagesRepo = (*Repo)(nil)

type Repo struct {
	db poolProvider
}

func NewRepo(db poolProvider) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, msg *Message) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "messagesRepo.Add")
	defer span.End()

	if err := msg.Validate(); err != nil {
		return err
	}
	now := time.Now()
	msg.Read = false
	msg.CreatedAt = now
	msg.UpdatedAt = now

	pool, err := r.db.Pool(ctx)
	if err != nil {
		return err
	}

	return pool.QueryRow(
		ctx,
		`INSERT INTO message (name, email, message, read, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;`,
		msg.Name, msg.Email, msg.Message, msg.Read, msg.CreatedAt, msg.UpdatedAt,
	).Scan(&msg.ID)
}

// All returns every message, newest first.
func (r *Repo) All(ctx context.Context) ([]*Message, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "messagesRepo.All")
	defer span.End()

	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(
		ctx,
		`SELECT id, name, email, message, read, created_at, updated_at FROM message ORDER BY created_at DESC, id DESC;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Message, error) {
		m := &Message{}
		err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.Read, &m.CreatedAt, &m.UpdatedAt)
		return m, err
	})
}

func (r *Repo) SetRead(ctx context.Context, id int, read bool) (*Message, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "messagesRepo.SetRead")
	span.SetAttributes(attribute.Int("id", id), attribute.Bool("read", read))
	defer span.End()

	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}

	m := &Message{}
	err = pool.QueryRow(
		ctx,
		`UPDATE message SET read = $1, updated_at = now() WHERE id = $2
		RETURNING id, name, email, message, read, created_at, updated_at;`,
		read, id,
	).Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.Read, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *Repo) Delete(ctx context.Context, id int) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "messagesRepo.Delete")
	span.SetAttributes(attribute.Int("id", id))
	defer span.End()

	pool, err := r.db.Pool(ctx)
	if err != nil {
		return err
	}

	tag, err := pool.Exec(ctx, `DELETE FROM message WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMessageNotFound
	}
	return nil
}
