package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/relplan/internal/db"
	"github.com/alexanderramin/relplan/internal/domain"
)

// SQLiteFeatureRepo implements FeatureRepo using a SQLite database.
type SQLiteFeatureRepo struct {
	db db.DBTX
}

func NewSQLiteFeatureRepo(conn db.DBTX) *SQLiteFeatureRepo {
	return &SQLiteFeatureRepo{db: conn}
}

func (r *SQLiteFeatureRepo) Create(ctx context.Context, f *domain.Feature) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO features (id, release_id, name, order_index) VALUES (?, ?, ?, ?)`,
		f.ID, f.ReleaseID, f.Name, f.OrderIndex,
	)
	if err != nil {
		return fmt.Errorf("inserting feature: %w", err)
	}
	return nil
}

func (r *SQLiteFeatureRepo) GetByID(ctx context.Context, id string) (*domain.Feature, error) {
	var f domain.Feature
	err := r.db.QueryRowContext(ctx,
		`SELECT id, release_id, name, order_index FROM features WHERE id = ?`, id,
	).Scan(&f.ID, &f.ReleaseID, &f.Name, &f.OrderIndex)
	if err != nil {
		return nil, notFound("feature", err)
	}
	return &f, nil
}

// ListByRelease returns the release's features in order, without work items.
func (r *SQLiteFeatureRepo) ListByRelease(ctx context.Context, releaseID string) ([]domain.Feature, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, release_id, name, order_index FROM features WHERE release_id = ? ORDER BY order_index, rowid`,
		releaseID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing features: %w", err)
	}
	defer rows.Close()

	var features []domain.Feature
	for rows.Next() {
		var f domain.Feature
		if err := rows.Scan(&f.ID, &f.ReleaseID, &f.Name, &f.OrderIndex); err != nil {
			return nil, fmt.Errorf("scanning feature row: %w", err)
		}
		features = append(features, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating features: %w", err)
	}
	return features, nil
}

// SQLiteSprintRepo implements SprintRepo using a SQLite database.
type SQLiteSprintRepo struct {
	db db.DBTX
}

func NewSQLiteSprintRepo(conn db.DBTX) *SQLiteSprintRepo {
	return &SQLiteSprintRepo{db: conn}
}

func (r *SQLiteSprintRepo) Create(ctx context.Context, s *domain.Sprint, orderIndex int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sprints (id, release_id, name, start_date, end_date, order_index) VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.ReleaseID, s.Name,
		s.StartDate.Format(dateLayout),
		s.EndDate.Format(dateLayout),
		orderIndex,
	)
	if err != nil {
		return fmt.Errorf("inserting sprint: %w", err)
	}
	return nil
}

func (r *SQLiteSprintRepo) ListByRelease(ctx context.Context, releaseID string) ([]domain.Sprint, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, release_id, name, start_date, end_date FROM sprints WHERE release_id = ? ORDER BY order_index, start_date`,
		releaseID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing sprints: %w", err)
	}
	defer rows.Close()

	var sprints []domain.Sprint
	for rows.Next() {
		var s domain.Sprint
		var startStr, endStr string
		if err := rows.Scan(&s.ID, &s.ReleaseID, &s.Name, &startStr, &endStr); err != nil {
			return nil, fmt.Errorf("scanning sprint row: %w", err)
		}
		if s.StartDate, err = parseRequiredDate("start_date", startStr); err != nil {
			return nil, err
		}
		if s.EndDate, err = parseRequiredDate("end_date", endStr); err != nil {
			return nil, err
		}
		sprints = append(sprints, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sprints: %w", err)
	}
	return sprints, nil
}
