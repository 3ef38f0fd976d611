package skills

import (
	"context"
	"strings"

	"github.com/2beens/portfolio/internal/telemetry/tracing"
	"github.com/2beens/portfolio/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type poolProvider interface {
	Pool(ctx context.Context) (*pgxpool.Pool, error)
}

var _ skillsRepo = (*Repo)(nil)

type Repo struct {
	db poolProvider
}

func NewRepo(db poolProvider) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, skill *Skill) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "skillsRepo.Add")
	defer span.End()

	skill.Name = strings.TrimSpace(skill.Name)
	if skill.Name == "" {
		return ErrSkillNameEmpty
	}

	pool, err := r.db.Pool(ctx)
	if err != nil {
		return err
	}

	err = pool.QueryRow(ctx, `INSERT INTO skill (name) VALUES ($1) RETURNING id;`, skill.Name).Scan(&skill.ID)
	if pkg.IsUniqueViolationError(err) {
		return ErrSkillExists
	}
	return err
}

func (r *Repo) All(ctx context.Context) ([]*Skill, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "skillsRepo.All")
	defer span.End()

	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, `SELECT id, name FROM skill ORDER BY name;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Skill, error) {
		s := &Skill{}
		err := row.Scan(&s.ID, &s.Name)
		return s, err
	})
}

func (r *Repo) Delete(ctx context.Context, id int) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "skillsRepo.Delete")
	span.SetAttributes(attribute.Int("id", id))
	defer span.End()

	pool, err := r.db.Pool(ctx)
	if err != nil {
		return err
	}

	tag, err := pool.Exec(ctx, `DELETE FROM skill WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSkillNotFound
	}
	return nil
}
