package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"designvault/api/internal/models"
)

var componentSortColumns = map[string]string{
	"createdAt": "c.created_at",
	"updatedAt": "c.updated_at",
	"name":      "c.name",
	"type":      "c.type",
	"status":    "c.status",
	"version":   "c.version",
}

type PgComponentRepository struct {
	pool *pgxpool.Pool
}

func NewPgComponentRepository(pool *pgxpool.Pool) *PgComponentRepository {
	return &PgComponentRepository{pool: pool}
}

const componentColumns = `
	c.id, c.name, c.type, c.description, c.styles, c.code, c.examples,
	c.tags, c.status, c.version, c.dependencies, c.created_by, u.username,
	c.created_at, c.updated_at
`

func (r *PgComponentRepository) Create(ctx context.Context, component models.Component) error {
	const query = `
		INSERT INTO components (
			id, name, type, description, styles, code, examples, tags,
			status, version, dependencies, created_by, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
	`

	_, err := r.pool.Exec(ctx, query,
		component.ID,
		component.Name,
		component.Type,
		component.Description,
		component.Styles,
		component.Code,
		component.Examples,
		component.Tags,
		component.Status,
		component.Version,
		component.Dependencies,
		component.CreatedBy.ID,
		component.CreatedAt,
		component.UpdatedAt,
	)
	return err
}

func (r *PgComponentRepository) GetByID(ctx context.Context, id string) (models.Component, error) {
	query := `
		SELECT` + componentColumns + `, u.email
		FROM components c
		JOIN users u ON u.id = c.created_by
		WHERE c.id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)
	var component models.Component
	if err := row.Scan(
		&component.ID,
		&component.Name,
		&component.Type,
		&component.Description,
		&component.Styles,
		&component.Code,
		&component.Examples,
		&component.Tags,
		&component.Status,
		&component.Version,
		&component.Dependencies,
		&component.CreatedBy.ID,
		&component.CreatedBy.Username,
		&component.CreatedAt,
		&component.UpdatedAt,
		&component.CreatedBy.Email,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Component{}, ErrComponentNotFound
		}
		return models.Component{}, err
	}
	return component, nil
}

func (r *PgComponentRepository) FindByName(ctx context.Context, name string) (models.Component, error) {
	query := `
		SELECT` + componentColumns + `
		FROM components c
		JOIN users u ON u.id = c.created_by
		WHERE c.name = $1
		LIMIT 1
	`

	component, err := scanComponent(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Component{}, ErrComponentNotFound
		}
		return models.Component{}, err
	}
	return component, nil
}

func (r *PgComponentRepository) List(ctx context.Context, filter ComponentFilter) ([]models.Component, int, error) {
	where, args := componentFilterClause(filter)

	countQuery := `SELECT COUNT(*) FROM components c` + where
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	column, ok := componentSortColumns[filter.SortBy]
	if !ok {
		column = "c.created_at"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT`+componentColumns+`
		FROM components c
		JOIN users u ON u.id = c.created_by
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, where, column, direction, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	components, err := r.queryMany(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return components, total, nil
}

func (r *PgComponentRepository) Update(ctx context.Context, component models.Component) error {
	const query = `
		UPDATE components
		SET name = $2,
		    type = $3,
		    description = $4,
		    styles = $5,
		    code = $6,
		    examples = $7,
		    tags = $8,
		    status = $9,
		    version = $10,
		    dependencies = $11,
		    updated_at = $12
		WHERE id = $1
	`

	cmd, err := r.pool.Exec(ctx, query,
		component.ID,
		component.Name,
		component.Type,
		component.Description,
		component.Styles,
		component.Code,
		component.Examples,
		component.Tags,
		component.Status,
		component.Version,
		component.Dependencies,
		component.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrComponentNotFound
	}
	return nil
}

func (r *PgComponentRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM components WHERE id = $1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrComponentNotFound
	}
	return nil
}

func (r *PgComponentRepository) ListByType(ctx context.Context, componentType string) ([]models.Component, error) {
	query := `
		SELECT` + componentColumns + `
		FROM components c
		JOIN users u ON u.id = c.created_by
		WHERE c.type = $1 AND c.status = 'active'
		ORDER BY c.created_at DESC
	`

	return r.queryMany(ctx, query, componentType)
}

func (r *PgComponentRepository) SearchByText(ctx context.Context, searchQuery string) ([]models.Component, error) {
	query := `
		SELECT` + componentColumns + `
		FROM components c
		JOIN users u ON u.id = c.created_by
		WHERE c.search_tsv @@ plainto_tsquery('english', $1)
		ORDER BY ts_rank(c.search_tsv, plainto_tsquery('english', $1)) DESC
	`

	return r.queryMany(ctx, query, searchQuery)
}

func (r *PgComponentRepository) Stats(ctx context.Context) (models.ComponentStats, error) {
	stats := models.ComponentStats{
		TypeCounts:   make(map[string]int),
		StatusCounts: make(map[string]int),
	}

	const query = `SELECT type, status, COUNT(*) FROM components GROUP BY type, status`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return models.ComponentStats{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var componentType, status string
		var count int
		if err := rows.Scan(&componentType, &status, &count); err != nil {
			return models.ComponentStats{}, err
		}
		stats.Total += count
		stats.TypeCounts[componentType] += count
		stats.StatusCounts[status] += count
	}
	return stats, rows.Err()
}

func (r *PgComponentRepository) queryMany(ctx context.Context, query string, args ...any) ([]models.Component, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	components := make([]models.Component, 0)
	for rows.Next() {
		component, err := scanComponent(rows)
		if err != nil {
			return nil, err
		}
		components = append(components, component)
	}
	return components, rows.Err()
}

func componentFilterClause(filter ComponentFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("c.type = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("c.status = $%d", len(args)))
	}
	if len(filter.Tags) > 0 {
		args = append(args, filter.Tags)
		conditions = append(conditions, fmt.Sprintf("c.tags && $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, filter.Search)
		conditions = append(conditions, fmt.Sprintf("c.search_tsv @@ plainto_tsquery('english', $%d)", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func scanComponent(row pgx.Row) (models.Component, error) {
	var component models.Component
	err := row.Scan(
		&component.ID,
		&component.Name,
		&component.Type,
		&component.Description,
		&component.Styles,
		&component.Code,
		&component.Examples,
		&component.Tags,
		&component.Status,
		&component.Version,
		&component.Dependencies,
		&component.CreatedBy.ID,
		&component.CreatedBy.Username,
		&component.CreatedAt,
		&component.UpdatedAt,
	)
	return component, err
}
