package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/relplan/internal/db"
	"github.com/alexanderramin/relplan/internal/domain"
)

// SQLiteHolidayRepo implements HolidayRepo using a SQLite database.
type SQLiteHolidayRepo struct {
	db db.DBTX
}

func NewSQLiteHolidayRepo(conn db.DBTX) *SQLiteHolidayRepo {
	return &SQLiteHolidayRepo{db: conn}
}

func (r *SQLiteHolidayRepo) Upsert(ctx context.Context, h *domain.Holiday) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO holidays (id, name, start_date, end_date) VALUES (?, ?, ?, ?)`,
		h.ID, h.Name, h.StartDate.Format(dateLayout), h.EndDate.Format(dateLayout),
	)
	if err != nil {
		return fmt.Errorf("upserting holiday: %w", err)
	}
	return nil
}

func (r *SQLiteHolidayRepo) List(ctx context.Context) ([]domain.Holiday, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, start_date, end_date FROM holidays ORDER BY start_date, name`)
	if err != nil {
		return nil, fmt.Errorf("listing holidays: %w", err)
	}
	defer rows.Close()

	var holidays []domain.Holiday
	for rows.Next() {
		var h domain.Holiday
		var startStr, endStr string
		if err := rows.Scan(&h.ID, &h.Name, &startStr, &endStr); err != nil {
			return nil, fmt.Errorf("scanning holiday row: %w", err)
		}
		if h.StartDate, err = parseRequiredDate("start_date", startStr); err != nil {
			return nil, err
		}
		if h.EndDate, err = parseRequiredDate("end_date", endStr); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holidays: %w", err)
	}
	return holidays, nil
}

func (r *SQLiteHolidayRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM holidays WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting holiday: %w", err)
	}
	return requireAffected(res, "holiday")
}
