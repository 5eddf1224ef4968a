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

// API-level sort field names mapped onto columns. Anything else sorts by
// created_at so arbitrary input never reaches the ORDER BY clause.
var tokenSortColumns = map[string]string{
	"createdAt": "t.created_at",
	"updatedAt": "t.updated_at",
	"name":      "t.name",
	"category":  "t.category",
	"value":     "t.value",
	"theme":     "t.theme",
	"status":    "t.status",
}

type PgTokenRepository struct {
	pool *pgxpool.Pool
}

func NewPgTokenRepository(pool *pgxpool.Pool) *PgTokenRepository {
	return &PgTokenRepository{pool: pool}
}

const tokenColumns = `
	t.id, t.name, t.category, t.value, t.description, t.tags, t.theme,
	t.light_value, t.dark_value, t.status, t.created_by, u.username,
	t.created_at, t.updated_at
`

func (r *PgTokenRepository) Create(ctx context.Context, token models.DesignToken) error {
	const query = `
		INSERT INTO design_tokens (
			id, name, category, value, description, tags, theme,
			light_value, dark_value, status, created_by, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
	`

	_, err := r.pool.Exec(ctx, query,
		token.ID,
		token.Name,
		token.Category,
		token.Value,
		token.Description,
		token.Tags,
		token.Theme,
		token.LightValue,
		token.DarkValue,
		token.Status,
		token.CreatedBy.ID,
		token.CreatedAt,
		token.UpdatedAt,
	)
	return err
}

func (r *PgTokenRepository) GetByID(ctx context.Context, id string) (models.DesignToken, error) {
	query := `
		SELECT` + tokenColumns + `, u.email
		FROM design_tokens t
		JOIN users u ON u.id = t.created_by
		WHERE t.id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)
	var token models.DesignToken
	if err := row.Scan(
		&token.ID,
		&token.Name,
		&token.Category,
		&token.Value,
		&token.Description,
		&token.Tags,
		&token.Theme,
		&token.LightValue,
		&token.DarkValue,
		&token.Status,
		&token.CreatedBy.ID,
		&token.CreatedBy.Username,
		&token.CreatedAt,
		&token.UpdatedAt,
		&token.CreatedBy.Email,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.DesignToken{}, ErrTokenNotFound
		}
		return models.DesignToken{}, err
	}
	return token, nil
}

func (r *PgTokenRepository) FindByName(ctx context.Context, name string) (models.DesignToken, error) {
	query := `
		SELECT` + tokenColumns + `
		FROM design_tokens t
		JOIN users u ON u.id = t.created_by
		WHERE t.name = $1
		LIMIT 1
	`

	row := r.pool.QueryRow(ctx, query, name)
	token, err := scanToken(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.DesignToken{}, ErrTokenNotFound
		}
		return models.DesignToken{}, err
	}
	return token, nil
}

func (r *PgTokenRepository) List(ctx context.Context, filter TokenFilter) ([]models.DesignToken, int, error) {
	where, args := tokenFilterClause(filter)

	countQuery := `SELECT COUNT(*) FROM design_tokens t` + where
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	column, ok := tokenSortColumns[filter.SortBy]
	if !ok {
		column = "t.created_at"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT`+tokenColumns+`
		FROM design_tokens t
		JOIN users u ON u.id = t.created_by
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, where, column, direction, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tokens := make([]models.DesignToken, 0)
	for rows.Next() {
		token, err := scanToken(rows)
		if err != nil {
			return nil, 0, err
		}
		tokens = append(tokens, token)
	}
	return tokens, total, rows.Err()
}

func (r *PgTokenRepository) Update(ctx context.Context, token models.DesignToken) error {
	const query = `
		UPDATE design_tokens
		SET name = $2,
		    category = $3,
		    value = $4,
		    description = $5,
		    tags = $6,
		    theme = $7,
		    light_value = $8,
		    dark_value = $9,
		    status = $10,
		    updated_at = $11
		WHERE id = $1
	`

	cmd, err := r.pool.Exec(ctx, query,
		token.ID,
		token.Name,
		token.Category,
		token.Value,
		token.Description,
		token.Tags,
		token.Theme,
		token.LightValue,
		token.DarkValue,
		token.Status,
		token.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTokenNotFound
	}
	return nil
}

func (r *PgTokenRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM design_tokens WHERE id = $1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTokenNotFound
	}
	return nil
}

func tokenFilterClause(filter TokenFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("t.category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, filter.Search)
		conditions = append(conditions, fmt.Sprintf("t.search_tsv @@ plainto_tsquery('english', $%d)", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func scanToken(row pgx.Row) (models.DesignToken, error) {
	var token models.DesignToken
	err := row.Scan(
		&token.ID,
		&token.Name,
		&token.Category,
		&token.Value,
		&token.Description,
		&token.Tags,
		&token.Theme,
		&token.LightValue,
		&token.DarkValue,
		&token.Status,
		&token.CreatedBy.ID,
		&token.CreatedBy.Username,
		&token.CreatedAt,
		&token.UpdatedAt,
	)
	return token, err
}
