package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/relplan/internal/db"
	"github.com/alexanderramin/relplan/internal/domain"
)

// workItemColumns is the canonical SELECT column list for work_items.
const workItemColumns = `w.id, w.feature_id, w.title, w.status, w.start_date, w.end_date,
		w.effort_days, w.story_points, w.assigned_to, w.required_role,
		w.created_at, w.updated_at`

// SQLiteWorkItemRepo implements WorkItemRepo using a SQLite database.
// Dependencies are stored alongside the item and always loaded with it.
type SQLiteWorkItemRepo struct {
	db db.DBTX
}

func NewSQLiteWorkItemRepo(conn db.DBTX) *SQLiteWorkItemRepo {
	return &SQLiteWorkItemRepo{db: conn}
}

func (r *SQLiteWorkItemRepo) Create(ctx context.Context, w *domain.WorkItem, orderIndex int) error {
	query := `INSERT INTO work_items (id, feature_id, title, status, start_date, end_date,
		effort_days, story_points, assigned_to, required_role, order_index, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.FeatureID,
		w.Title,
		string(w.Status),
		w.StartDate.Format(dateLayout),
		w.EndDate.Format(dateLayout),
		nullableFloatToValue(w.EffortDays),
		nullableFloatToValue(w.StoryPoints),
		w.AssignedTo,
		w.RequiredRole,
		orderIndex,
		w.CreatedAt.Format(time.RFC3339),
		w.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting work item: %w", err)
	}
	return r.insertDeps(ctx, w)
}

func (r *SQLiteWorkItemRepo) GetByID(ctx context.Context, id string) (*domain.WorkItem, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+workItemColumns+` FROM work_items w WHERE w.id = ?`, id)
	w, err := scanWorkItem(row)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT depends_on_id FROM work_item_deps WHERE work_item_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("listing dependencies: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var dep string
		if err := rows.Scan(&dep); err != nil {
			return nil, fmt.Errorf("scanning dependency row: %w", err)
		}
		w.DependsOn = append(w.DependsOn, dep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dependencies: %w", err)
	}
	return w, nil
}

func (r *SQLiteWorkItemRepo) ListByRelease(ctx context.Context, releaseID string) ([]domain.WorkItem, error) {
	query := `SELECT ` + workItemColumns + `
		FROM work_items w
		JOIN features f ON w.feature_id = f.id
		WHERE f.release_id = ?
		ORDER BY f.order_index, f.rowid, w.order_index, w.rowid`
	rows, err := r.db.QueryContext(ctx, query, releaseID)
	if err != nil {
		return nil, fmt.Errorf("listing work items by release: %w", err)
	}
	defer rows.Close()

	var items []domain.WorkItem
	index := make(map[string]int)
	for rows.Next() {
		w, err := scanWorkItem(rows)
		if err != nil {
			return nil, err
		}
		index[w.ID] = len(items)
		items = append(items, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work items: %w", err)
	}
	if len(items) == 0 {
		return items, nil
	}

	deps, err := r.db.QueryContext(ctx, `SELECT d.work_item_id, d.depends_on_id
		FROM work_item_deps d
		JOIN work_items w ON d.work_item_id = w.id
		JOIN features f ON w.feature_id = f.id
		WHERE f.release_id = ?
		ORDER BY d.work_item_id, d.position`, releaseID)
	if err != nil {
		return nil, fmt.Errorf("listing dependencies by release: %w", err)
	}
	defer deps.Close()
	for deps.Next() {
		var itemID, dep string
		if err := deps.Scan(&itemID, &dep); err != nil {
			return nil, fmt.Errorf("scanning dependency row: %w", err)
		}
		if i, ok := index[itemID]; ok {
			items[i].DependsOn = append(items[i].DependsOn, dep)
		}
	}
	if err := deps.Err(); err != nil {
		return nil, fmt.Errorf("iterating dependencies: %w", err)
	}
	return items, nil
}

// Update rewrites the item's fields and replaces its dependency list.
func (r *SQLiteWorkItemRepo) Update(ctx context.Context, w *domain.WorkItem) error {
	query := `UPDATE work_items SET title = ?, status = ?, start_date = ?, end_date = ?,
		effort_days = ?, story_points = ?, assigned_to = ?, required_role = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		w.Title,
		string(w.Status),
		w.StartDate.Format(dateLayout),
		w.EndDate.Format(dateLayout),
		nullableFloatToValue(w.EffortDays),
		nullableFloatToValue(w.StoryPoints),
		w.AssignedTo,
		w.RequiredRole,
		w.UpdatedAt.Format(time.RFC3339),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating work item: %w", err)
	}
	if err := requireAffected(res, "work item"); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM work_item_deps WHERE work_item_id = ?`, w.ID); err != nil {
		return fmt.Errorf("clearing dependencies: %w", err)
	}
	return r.insertDeps(ctx, w)
}

func (r *SQLiteWorkItemRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM work_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting work item: %w", err)
	}
	return requireAffected(res, "work item")
}

func (r *SQLiteWorkItemRepo) insertDeps(ctx context.Context, w *domain.WorkItem) error {
	for i, dep := range w.DependsOn {
		_, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO work_item_deps (work_item_id, depends_on_id, position) VALUES (?, ?, ?)`,
			w.ID, dep, i,
		)
		if err != nil {
			return fmt.Errorf("inserting dependency %s -> %s: %w", w.ID, dep, err)
		}
	}
	return nil
}

func scanWorkItem(row rowScanner) (*domain.WorkItem, error) {
	var w domain.WorkItem
	var statusStr, startStr, endStr, createdStr, updatedStr string
	var effort, points sql.NullFloat64

	err := row.Scan(
		&w.ID, &w.FeatureID, &w.Title, &statusStr,
		&startStr, &endStr,
		&effort, &points,
		&w.AssignedTo, &w.RequiredRole,
		&createdStr, &updatedStr,
	)
	if err != nil {
		return nil, notFound("work item", err)
	}

	w.Status = domain.WorkItemStatus(statusStr)
	w.EffortDays = nullFloatToPtr(effort)
	w.StoryPoints = nullFloatToPtr(points)

	if w.StartDate, err = parseRequiredDate("start_date", startStr); err != nil {
		return nil, err
	}
	if w.EndDate, err = parseRequiredDate("end_date", endStr); err != nil {
		return nil, err
	}
	if err := parseTimestamps(createdStr, updatedStr, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}
