package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kimLalilo/boxe-reventin-planning/internal/booking"
	"github.com/kimLalilo/boxe-reventin-planning/internal/calendar"
	"github.com/kimLalilo/boxe-reventin-planning/internal/repository"
)

// RosterHandler serves the coach-facing views: the weekly occupancy
// overview and the attendee list of a single class.
type RosterHandler struct {
	Slots        *repository.SlotRepo
	Reservations *repository.ReservationRepo
	Policy       *booking.Policy
}

func NewRosterHandler(s *repository.SlotRepo, r *repository.ReservationRepo, p *booking.Policy) *RosterHandler {
	return &RosterHandler{Slots: s, Reservations: r, Policy: p}
}

func (h *RosterHandler) week(c echo.Context) (calendar.Week, bool) {
	week := calendar.CurrentWeek(time.Now().In(h.Policy.Location))
	if s := c.QueryParam("week"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 53 {
			return calendar.Week{}, false
		}
		week.Number = n
	}
	if s := c.QueryParam("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil || y < 2000 || y > 2100 {
			return calendar.Week{}, false
		}
		week.Year = y
	}
	return week, true
}

type occupancyRow struct {
	SlotID       uint64 `json:"slot_id"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	Weekday      int    `json:"weekday"`
	StartTime    string `json:"start_time"`
	Capacity     int    `json:"capacity"`
	SeatsTaken   int    `json:"seats_taken"`
	WaitlistSize int    `json:"waitlist_size"`
}

// Overview lists every slot of the week with confirmed and waitlist
// counts, the at-a-glance occupancy board.
func (h *RosterHandler) Overview(c echo.Context) error {
	week, ok := h.week(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid week"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	slots, err := h.Slots.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	counts, err := h.Reservations.CountsForWeek(ctx, week)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	rows := make([]occupancyRow, 0, len(slots))
	for _, s := range slots {
		cnt := counts[s.ID]
		rows = append(rows, occupancyRow{
			SlotID:       s.ID,
			Title:        s.Title,
			Category:     s.Category,
			Weekday:      s.Weekday,
			StartTime:    s.StartTime,
			Capacity:     s.Capacity,
			SeatsTaken:   cnt.Confirmed,
			WaitlistSize: cnt.Waitlisted,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"week": week, "slots": rows})
}

// SlotRoster returns who booked one class occurrence, confirmed seats
// first in booking order.
func (h *RosterHandler) SlotRoster(c echo.Context) error {
	slotID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
	}
	week, ok := h.week(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid week"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	slot, err := h.Slots.GetByID(ctx, slotID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "slot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	entries, err := h.Reservations.RosterForSlot(ctx, slotID, week)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"week":      week,
		"slot":      slot,
		"attendees": entries,
	})
}
