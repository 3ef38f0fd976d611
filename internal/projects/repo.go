package projects

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/portfolio/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type poolProvider interface {
	Pool(ctx context.Context) (*pgxpool.Pool, error)
}

var _ projectsRepo = (*Repo)(nil)

type Repo struct {
	db poolProvider
}

func NewRepo(db poolProvider) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, project *Project) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "projectsRepo.Add")
	defer span.End()

	if err := project.Validate(); err != nil {
		return err
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now()
	}

	pool, err := r.db.Pool(ctx)
	if err != nil {
		return err
	}

	err = pool.QueryRow(
		ctx,
		`INSERT INTO project (name, description, image, link, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id;`,
		project.Name, project.Desc, project.Image, project.Link, project.CreatedAt,
	).Scan(&project.ID)
	if err != nil {
		return err
	}

	span.SetAttributes(attribute.Int("id", project.ID))
	return nil
}

func (r *Repo) All(ctx context.Context) ([]*Project, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "projectsRepo.All")
	defer span.End()

	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(
		ctx,
		`SELECT id, name, description, image, link, created_at FROM project ORDER BY created_at DESC, id DESC;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Project, error) {
		p := &Project{}
		err := row.Scan(&p.ID, &p.Name, &p.Desc, &p.Image, &p.Link, &p.CreatedAt)
		return p, err
	})
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Update replaces the editable fields, created_at stays as it was.
func (r *Repo) Update(ctx context.Context, project *Project) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "projectsRepo.Update")
	span.SetAttributes(attribute.Int("id", project.ID))
	defer span.End()

	if err := project.Validate(); err != nil {
		return err
	}

	pool, err := r.db.Pool(ctx)
	if err != nil {
		return err
	}

	err = pool.QueryRow(
		ctx,
		`UPDATE project SET name = $1, description = $2, image = $3, link = $4 WHERE id = $5 RETURNING created_at;`,
		project.Name, project.Desc, project.Image, project.Link, project.ID,
	).Scan(&project.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrProjectNotFound
	}
	return err
}

func (r *Repo) Delete(ctx context.Context, id int) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "projectsRepo.Delete")
	span.SetAttributes(attribute.Int("id", id))
	defer span.End()

	pool, err := r.db.Pool(ctx)
	if err != nil {
		return err
	}

	tag, err := pool.Exec(ctx, `DELETE FROM project WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		log.Tracef("project %d not deleted, not found", id)
		return ErrProjectNotFound
	}
	return nil
}
