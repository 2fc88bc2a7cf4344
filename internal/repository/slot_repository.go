package repository

import (
	"context"
	"database/sql"

	"github.com/kimLalilo/boxe-reventin-planning/internal/model"
)

// SlotRepo provides CRUD access to the class_slots table.
type SlotRepo struct{ DB *sql.DB }

func NewSlotRepo(db *sql.DB) *SlotRepo { return &SlotRepo{DB: db} }

const slotColumns = "id,title,category,weekday,start_time,end_time,capacity,created_at,updated_at"

// Create inserts a class slot and returns its ID.
func (r *SlotRepo) Create(ctx context.Context, title, category string, weekday int, startTime, endTime string, capacity int) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO class_slots (title, category, weekday, start_time, end_time, capacity) VALUES (?,?,?,?,?,?)",
		title, category, weekday, startTime, endTime, capacity)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a slot by id, mapping a missing row onto ErrNotFound.
func (r *SlotRepo) GetByID(ctx context.Context, id uint64) (model.ClassSlot, error) {
	s, err := scanSlot(r.DB.QueryRowContext(ctx,
		"SELECT "+slotColumns+" FROM class_slots WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.ClassSlot{}, ErrNotFound
	}
	return s, err
}

// ListByWeekday returns the slots of one weekday ordered by start time.
// When restrictedCategory is non-nil only slots of that category are
// returned, mirroring the member's restriction flag.
func (r *SlotRepo) ListByWeekday(ctx context.Context, weekday int, restrictedCategory *string) ([]model.ClassSlot, error) {
	query := "SELECT " + slotColumns + " FROM class_slots WHERE weekday=?"
	args := []any{weekday}
	if restrictedCategory != nil {
		query += " AND category=?"
		args = append(args, *restrictedCategory)
	}
	query += " ORDER BY start_time, id"
	return r.list(ctx, query, args...)
}

// ListAll returns every slot ordered by weekday then start time.
func (r *SlotRepo) ListAll(ctx context.Context) ([]model.ClassSlot, error) {
	return r.list(ctx, "SELECT "+slotColumns+" FROM class_slots ORDER BY weekday, start_time, id")
}

func (r *SlotRepo) list(ctx context.Context, query string, args ...any) ([]model.ClassSlot, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	slots := make([]model.ClassSlot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// Update overwrites all editable fields of a slot.
func (r *SlotRepo) Update(ctx context.Context, id uint64, title, category string, weekday int, startTime, endTime string, capacity int) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE class_slots SET title=?, category=?, weekday=?, start_time=?, end_time=?, capacity=? WHERE id=?",
		title, category, weekday, startTime, endTime, capacity, id)
	return affectedOrNotFound(res, err)
}

// Delete removes a slot and all reservations made against it in one
// transaction; a vanished class cannot keep seats booked.
func (r *SlotRepo) Delete(ctx context.Context, id uint64) error {
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
	if _, err := tx.ExecContext(ctx, "DELETE FROM reservations WHERE slot_id=?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM class_slots WHERE id=?", id)
	if err := affectedOrNotFound(res, err); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func scanSlot(row rowScanner) (model.ClassSlot, error) {
	var s model.ClassSlot
	err := row.Scan(&s.ID, &s.Title, &s.Category, &s.Weekday,
		&s.StartTime, &s.EndTime, &s.Capacity, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return model.ClassSlot{}, err
	}
	return s, nil
}
