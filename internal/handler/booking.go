package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kimLalilo/boxe-reventin-planning/internal/booking"
	"github.com/kimLalilo/boxe-reventin-planning/internal/calendar"
	"github.com/kimLalilo/boxe-reventin-planning/internal/model"
	"github.com/kimLalilo/boxe-reventin-planning/internal/queue"
	"github.com/kimLalilo/boxe-reventin-planning/internal/repository"
	queue_publisher "github.com/kimLalilo/boxe-reventin-planning/internal/service"
)

// BookingHandler exposes the reservation endpoints. All decisions are
// delegated to the booking.Allocator; the handler only loads the actors
// and translates the outcome onto HTTP.
type BookingHandler struct {
	Members      *repository.MemberRepo
	Slots        *repository.SlotRepo
	Reservations *repository.ReservationRepo
	Allocator    *booking.Allocator
}

func NewBookingHandler(m *repository.MemberRepo, s *repository.SlotRepo, r *repository.ReservationRepo, a *booking.Allocator) *BookingHandler {
	if m == nil || s == nil || r == nil || a == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Members: m, Slots: s, Reservations: r, Allocator: a}
}

// Book reserves a seat (or a waitlist spot) on the slot's occurrence in
// the currently bookable week. 201 carries the outcome; refusals map to
// the engine's error taxonomy.
func (h *BookingHandler) Book(c echo.Context) error {
	memberID, err := getMemberID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	slotID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	member, slot, ok := h.loadActors(ctx, c, memberID, slotID)
	if !ok {
		return nil
	}
	if member.RestrictedCategory != nil && slot.Category != *member.RestrictedCategory {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "category not allowed"})
	}

	outcome, res, err := h.Allocator.Book(ctx, member, slot)
	if err != nil {
		return bookingError(c, err)
	}

	if outcome == booking.Confirmed {
		ev := queue.ReservationConfirmedEvent{
			EventID:       uuid.NewString(),
			ReservationID: res.ID,
			MemberID:      member.ID,
			MemberName:    member.Name,
			SlotID:        slot.ID,
			SlotTitle:     slot.Title,
			Category:      slot.Category,
			Weekday:       slot.Weekday,
			StartTime:     slot.StartTime,
			Week:          res.Week,
			ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		// Fire and forget; a broker outage must not fail the booking.
		go func() {
			pctx, pcancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer pcancel()
			_ = queue_publisher.PublishReservationConfirmed(pctx, ev)
		}()
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"outcome":     string(outcome),
		"reservation": reservationPart(res),
	})
}

// Cancel withdraws the member's reservation on the slot occurrence.
// Waitlist spots go at any time; confirmed seats obey the same cutoff
// as booking.
func (h *BookingHandler) Cancel(c echo.Context) error {
	memberID, err := getMemberID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	slotID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	member, slot, ok := h.loadActors(ctx, c, memberID, slotID)
	if !ok {
		return nil
	}
	if err := h.Allocator.Cancel(ctx, member, slot); err != nil {
		return bookingError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MyReservations lists the caller's active reservations for one week,
// defaulting to the currently bookable week.
func (h *BookingHandler) MyReservations(c echo.Context) error {
	memberID, err := getMemberID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	week := calendar.CurrentWeek(time.Now().In(h.Allocator.Policy.Location))
	if s := c.QueryParam("week"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 53 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid week"})
		}
		week.Number = n
	}
	if s := c.QueryParam("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil || y < 2000 || y > 2100 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid year"})
		}
		week.Year = y
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	list, err := h.Reservations.ListForMemberWeek(ctx, memberID, week)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"week": week, "reservations": list})
}

// loadActors fetches the member and slot. It writes the error response
// itself and reports ok=false when either is missing, so callers just
// return nil in that case.
func (h *BookingHandler) loadActors(ctx context.Context, c echo.Context, memberID, slotID uint64) (model.Member, model.ClassSlot, bool) {
	member, err := h.Members.GetByID(ctx, memberID)
	if err != nil {
		if err == sql.ErrNoRows {
			_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown member"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		return model.Member{}, model.ClassSlot{}, false
	}
	slot, err := h.Slots.GetByID(ctx, slotID)
	if err != nil {
		if err == repository.ErrNotFound {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "slot not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		return model.Member{}, model.ClassSlot{}, false
	}
	return member, slot, true
}

type reservationJSON struct {
	ID         uint64        `json:"id"`
	SlotID     uint64        `json:"slot_id"`
	Waitlisted bool          `json:"waitlisted"`
	Week       calendar.Week `json:"week"`
}

func reservationPart(r model.Reservation) reservationJSON {
	return reservationJSON{ID: r.ID, SlotID: r.SlotID, Waitlisted: r.Waitlisted, Week: r.Week}
}
