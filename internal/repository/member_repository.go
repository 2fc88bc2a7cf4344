package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/kimLalilo/boxe-reventin-planning/internal/model"
	"github.com/kimLalilo/boxe-reventin-planning/internal/utils"
)

// MemberRepo provides CRUD access to the members table.
type MemberRepo struct{ DB *sql.DB }

func NewMemberRepo(db *sql.DB) *MemberRepo { return &MemberRepo{DB: db} }

const memberColumns = "id,email,name,password_hash,role,weekly_quota,restricted_category,created_at,updated_at"

// Create inserts a member and returns its ID. The password is digested
// with the configured scheme before it reaches the database.
func (r *MemberRepo) Create(ctx context.Context, email, name, password, role string, weeklyQuota int, restrictedCategory *string, bcryptCost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, bcryptCost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO members (email, name, password_hash, role, weekly_quota, restricted_category) VALUES (?,?,?,?,?,?)",
		email, name, hash, role, weeklyQuota, restrictedCategory)
	if err != nil {
		// 1062 is the MySQL duplicate-key error on the email unique index.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a member by normalized email.
func (r *MemberRepo) GetByEmail(ctx context.Context, email string) (model.Member, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+memberColumns+" FROM members WHERE email=? LIMIT 1", email))
}

// GetByID fetches a member by id.
func (r *MemberRepo) GetByID(ctx context.Context, id uint64) (model.Member, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+memberColumns+" FROM members WHERE id=? LIMIT 1", id))
}

// List returns all members ordered by name.
func (r *MemberRepo) List(ctx context.Context) ([]model.Member, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+memberColumns+" FROM members ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	members := make([]model.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// Update overwrites name, role, quota and restriction of a member.
// When newPassword is non-empty the credential is re-digested as well.
func (r *MemberRepo) Update(ctx context.Context, id uint64, name, role string, weeklyQuota int, restrictedCategory *string, newPassword string, bcryptCost int) error {
	if newPassword != "" {
		hash, err := utils.HashPassword(newPassword, bcryptCost)
		if err != nil {
			return err
		}
		res, err := r.DB.ExecContext(ctx,
			"UPDATE members SET name=?, role=?, weekly_quota=?, restricted_category=?, password_hash=? WHERE id=?",
			name, role, weeklyQuota, restrictedCategory, hash, id)
		return affectedOrNotFound(res, err)
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE members SET name=?, role=?, weekly_quota=?, restricted_category=? WHERE id=?",
		name, role, weeklyQuota, restrictedCategory, id)
	return affectedOrNotFound(res, err)
}

// UpdatePassword re-digests and stores a member's own password.
func (r *MemberRepo) UpdatePassword(ctx context.Context, id uint64, newPassword string, bcryptCost int) error {
	hash, err := utils.HashPassword(newPassword, bcryptCost)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE members SET password_hash=? WHERE id=?", hash, id)
	return affectedOrNotFound(res, err)
}

// Delete removes a member together with their reservations and refresh
// tokens in one transaction, so no orphaned rows survive the account.
func (r *MemberRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, "DELETE FROM reservations WHERE member_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM refresh_tokens WHERE member_id=?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM members WHERE id=?", id)
	if err := affectedOrNotFound(res, err); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

type rowScanner interface{ Scan(dest ...any) error }

func (r *MemberRepo) scanOne(row *sql.Row) (model.Member, error) {
	return scanMember(row)
}

func scanMember(row rowScanner) (model.Member, error) {
	var m model.Member
	var restricted sql.NullString
	err := row.Scan(&m.ID, &m.Email, &m.Name, &m.PasswordHash, &m.Role,
		&m.WeeklyQuota, &restricted, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return model.Member{}, err
	}
	if restricted.Valid {
		rc := restricted.String
		m.RestrictedCategory = &rc
	}
	return m, nil
}

// affectedOrNotFound maps "zero rows touched" onto ErrNotFound.
func affectedOrNotFound(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
