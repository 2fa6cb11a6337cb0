package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/relplan/internal/db"
	"github.com/alexanderramin/relplan/internal/domain"
)

const releaseColumns = `id, name, start_date, end_date, created_at, updated_at`

// SQLiteReleaseRepo implements ReleaseRepo using a SQLite database.
type SQLiteReleaseRepo struct {
	db db.DBTX
}

func NewSQLiteReleaseRepo(conn db.DBTX) *SQLiteReleaseRepo {
	return &SQLiteReleaseRepo{db: conn}
}

func (r *SQLiteReleaseRepo) Create(ctx context.Context, rel *domain.Release) error {
	query := `INSERT INTO releases (` + releaseColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rel.ID,
		rel.Name,
		dateToString(rel.StartDate),
		dateToString(rel.EndDate),
		rel.CreatedAt.Format(time.RFC3339),
		rel.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting release: %w", err)
	}
	return nil
}

func (r *SQLiteReleaseRepo) GetByID(ctx context.Context, id string) (*domain.Release, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+releaseColumns+` FROM releases WHERE id = ?`, id)
	return scanRelease(row)
}

func (r *SQLiteReleaseRepo) GetByName(ctx context.Context, name string) (*domain.Release, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+releaseColumns+` FROM releases WHERE name = ? COLLATE NOCASE`, name)
	return scanRelease(row)
}

func (r *SQLiteReleaseRepo) FindByIDPrefix(ctx context.Context, prefix string) ([]*domain.Release, error) {
	if strings.ContainsAny(prefix, `%_\`) {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+releaseColumns+` FROM releases WHERE id LIKE ? ORDER BY created_at`, prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("finding releases by id prefix: %w", err)
	}
	defer rows.Close()
	return scanReleases(rows)
}

func (r *SQLiteReleaseRepo) List(ctx context.Context) ([]*domain.Release, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+releaseColumns+` FROM releases ORDER BY start_date, name`)
	if err != nil {
		return nil, fmt.Errorf("listing releases: %w", err)
	}
	defer rows.Close()
	return scanReleases(rows)
}

func (r *SQLiteReleaseRepo) Update(ctx context.Context, rel *domain.Release) error {
	query := `UPDATE releases SET name = ?, start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		rel.Name,
		dateToString(rel.StartDate),
		dateToString(rel.EndDate),
		rel.UpdatedAt.Format(time.RFC3339),
		rel.ID,
	)
	if err != nil {
		return fmt.Errorf("updating release: %w", err)
	}
	return requireAffected(res, "release")
}

// Delete removes the release together with its features, sprints and items.
func (r *SQLiteReleaseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM releases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting release: %w", err)
	}
	return requireAffected(res, "release")
}

func scanReleases(rows *sql.Rows) ([]*domain.Release, error) {
	var releases []*domain.Release
	for rows.Next() {
		rel, err := scanRelease(rows)
		if err != nil {
			return nil, err
		}
		releases = append(releases, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating releases: %w", err)
	}
	return releases, nil
}

func scanRelease(row rowScanner) (*domain.Release, error) {
	var rel domain.Release
	var startStr, endStr sql.NullString
	var createdStr, updatedStr string

	if err := row.Scan(&rel.ID, &rel.Name, &startStr, &endStr, &createdStr, &updatedStr); err != nil {
		return nil, notFound("release", err)
	}

	var err error
	if rel.StartDate, err = parseNullableDate(startStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if rel.EndDate, err = parseNullableDate(endStr); err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	if err := parseTimestamps(createdStr, updatedStr, &rel.CreatedAt, &rel.UpdatedAt); err != nil {
		return nil, err
	}
	return &rel, nil
}

// requireAffected reports ErrNotFound when a write touched no row.
func requireAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", entity, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}
