package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/relplan/internal/db"
	"github.com/alexanderramin/relplan/internal/domain"
)

// SQLiteTeamRepo implements TeamRepo using a SQLite database. Members and
// their PTO are organisation-wide and shared by every release.
type SQLiteTeamRepo struct {
	db db.DBTX
}

func NewSQLiteTeamRepo(conn db.DBTX) *SQLiteTeamRepo {
	return &SQLiteTeamRepo{db: conn}
}

func (r *SQLiteTeamRepo) Upsert(ctx context.Context, m *domain.TeamMember) error {
	query := `INSERT INTO team_members (id, name, role, experience, velocity) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, role = excluded.role,
			experience = excluded.experience, velocity = excluded.velocity`
	_, err := r.db.ExecContext(ctx, query, m.ID, m.Name, m.Role, string(m.Experience), m.VelocityMultiplier)
	if err != nil {
		return fmt.Errorf("upserting team member: %w", err)
	}
	return nil
}

func (r *SQLiteTeamRepo) GetByID(ctx context.Context, id string) (*domain.TeamMember, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, role, experience, velocity FROM team_members WHERE id = ?`, id)
	m, err := scanMember(row)
	if err != nil {
		return nil, err
	}
	if m.PTO, err = r.ListPTO(ctx, id); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *SQLiteTeamRepo) List(ctx context.Context) ([]domain.TeamMember, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, role, experience, velocity FROM team_members ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing team members: %w", err)
	}
	defer rows.Close()

	var members []domain.TeamMember
	index := make(map[string]int)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		index[m.ID] = len(members)
		members = append(members, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team members: %w", err)
	}

	pto, err := r.listPTO(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, p := range pto {
		if i, ok := index[p.MemberID]; ok {
			members[i].PTO = append(members[i].PTO, p)
		}
	}
	return members, nil
}

// AddPTO stores an entry, replacing any entry with the same id.
func (r *SQLiteTeamRepo) AddPTO(ctx context.Context, p *domain.PTOEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO pto_entries (id, member_id, start_date, end_date, reason) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.MemberID, p.StartDate.Format(dateLayout), p.EndDate.Format(dateLayout), p.Reason,
	)
	if err != nil {
		return fmt.Errorf("inserting pto entry: %w", err)
	}
	return nil
}

func (r *SQLiteTeamRepo) ListPTO(ctx context.Context, memberID string) ([]domain.PTOEntry, error) {
	return r.listPTO(ctx, memberID)
}

func (r *SQLiteTeamRepo) DeletePTO(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pto_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting pto entry: %w", err)
	}
	return requireAffected(res, "pto entry")
}

// listPTO lists entries for one member, or for everyone when memberID is "".
func (r *SQLiteTeamRepo) listPTO(ctx context.Context, memberID string) ([]domain.PTOEntry, error) {
	query := `SELECT id, member_id, start_date, end_date, reason FROM pto_entries`
	var args []any
	if memberID != "" {
		query += ` WHERE member_id = ?`
		args = append(args, memberID)
	}
	query += ` ORDER BY member_id, start_date, rowid`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing pto: %w", err)
	}
	defer rows.Close()

	var entries []domain.PTOEntry
	for rows.Next() {
		var p domain.PTOEntry
		var startStr, endStr string
		if err := rows.Scan(&p.ID, &p.MemberID, &startStr, &endStr, &p.Reason); err != nil {
			return nil, fmt.Errorf("scanning pto row: %w", err)
		}
		if p.StartDate, err = parseRequiredDate("start_date", startStr); err != nil {
			return nil, err
		}
		if p.EndDate, err = parseRequiredDate("end_date", endStr); err != nil {
			return nil, err
		}
		entries = append(entries, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pto: %w", err)
	}
	return entries, nil
}

func scanMember(row rowScanner) (*domain.TeamMember, error) {
	var m domain.TeamMember
	var experience string
	var velocity sql.NullFloat64
	if err := row.Scan(&m.ID, &m.Name, &m.Role, &experience, &velocity); err != nil {
		return nil, notFound("team member", err)
	}
	m.Experience = domain.ExperienceLevel(experience)
	m.VelocityMultiplier = 1.0
	if velocity.Valid {
		m.VelocityMultiplier = velocity.Float64
	}
	return &m, nil
}
