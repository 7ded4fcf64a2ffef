package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gottaspeak/backend/internal/domain"
)

// MaterialFilter captures listing parameters.
type MaterialFilter struct {
	Type       *domain.MaterialType
	SearchTerm *string
	SortBy     string
	SortAsc    bool
	Limit      int
	Offset     int
}

// MaterialRepository encapsulates material persistence.
type MaterialRepository interface {
	Create(ctx context.Context, material *domain.Material) error
	Update(ctx context.Context, material *domain.Material) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Material, error)
	GetByTypeSlug(ctx context.Context, materialType domain.MaterialType, slug string) (*domain.Material, error)
	SlugExists(ctx context.Context, materialType domain.MaterialType, slug string) (bool, error)
	ListWithFilter(ctx context.Context, filter MaterialFilter) ([]domain.Material, int64, error)
}

type materialRepository struct {
	pool *pgxpool.Pool
}

// NewMaterialRepository instantiates repository.
func NewMaterialRepository(pool *pgxpool.Pool) MaterialRepository {
	return &materialRepository{pool: pool}
}

var materialSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"order":     "sort_order",
	"title":     "title",
}

func (r *materialRepository) Create(ctx context.Context, material *domain.Material) error {
	sections, err := json.Marshal(material.Sections)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO materials (title, type, slug, kind, sort_order, sections, tags, is_published)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		material.Title,
		material.Type,
		material.Slug,
		material.Kind,
		material.Order,
		sections,
		material.Tags,
		material.IsPublished,
	).Scan(&material.ID, &material.CreatedAt, &material.UpdatedAt)
}

func (r *materialRepository) Update(ctx context.Context, material *domain.Material) error {
	sections, err := json.Marshal(material.Sections)
	if err != nil {
		return err
	}
	const query = `
        UPDATE materials SET title=$1, type=$2, slug=$3, kind=$4, sort_order=$5,
            sections=$6, tags=$7, is_published=$8, updated_at=NOW()
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		material.Title,
		material.Type,
		material.Slug,
		material.Kind,
		material.Order,
		sections,
		material.Tags,
		material.IsPublished,
		material.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *materialRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM materials WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *materialRepository) GetByID(ctx context.Context, id string) (*domain.Material, error) {
	const query = `
        SELECT id, title, type, slug, kind, sort_order, sections, tags, is_published, created_at, updated_at
        FROM materials WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *materialRepository) GetByTypeSlug(ctx context.Context, materialType domain.MaterialType, slug string) (*domain.Material, error) {
	const query = `
        SELECT id, title, type, slug, kind, sort_order, sections, tags, is_published, created_at, updated_at
        FROM materials WHERE type=$1 AND slug=$2`
	return r.fetchSingle(ctx, query, materialType, slug)
}

func (r *materialRepository) SlugExists(ctx context.Context, materialType domain.MaterialType, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM materials WHERE type=$1 AND slug=$2)`,
		materialType, slug,
	).Scan(&exists)
	return exists, err
}

func (r *materialRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Material, error) {
	var material domain.Material
	var sections []byte
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&material.ID,
		&material.Title,
		&material.Type,
		&material.Slug,
		&material.Kind,
		&material.Order,
		&sections,
		&material.Tags,
		&material.IsPublished,
		&material.CreatedAt,
		&material.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(sections) > 0 {
		if err := json.Unmarshal(sections, &material.Sections); err != nil {
			return nil, err
		}
	}
	return &material, nil
}

func (r *materialRepository) ListWithFilter(ctx context.Context, filter MaterialFilter) ([]domain.Material, int64, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, fmt.Sprintf("type=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		clauses = append(clauses, fmt.Sprintf("LOWER(title) LIKE $%d", len(args)))
	}
	where := strings.Join(clauses, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM materials WHERE %s`, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortCol, ok := materialSortColumns[filter.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	dir := "DESC"
	if filter.SortAsc {
		dir = "ASC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
        SELECT id, title, type, slug, kind, sort_order, sections, tags, is_published, created_at, updated_at
        FROM materials WHERE %s ORDER BY %s %s LIMIT %d OFFSET %d`,
		where, sortCol, dir, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Material
	for rows.Next() {
		var material domain.Material
		var sections []byte
		if err := rows.Scan(
			&material.ID,
			&material.Title,
			&material.Type,
			&material.Slug,
			&material.Kind,
			&material.Order,
			&sections,
			&material.Tags,
			&material.IsPublished,
			&material.CreatedAt,
			&material.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		if len(sections) > 0 {
			if err := json.Unmarshal(sections, &material.Sections); err != nil {
				return nil, 0, err
			}
		}
		result = append(result, material)
	}
	return result, total, rows.Err()
}
