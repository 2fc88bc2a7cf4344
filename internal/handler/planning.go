package handler

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kimLalilo/boxe-reventin-planning/internal/booking"
	"github.com/kimLalilo/boxe-reventin-planning/internal/calendar"
	"github.com/kimLalilo/boxe-reventin-planning/internal/repository"
)

// PlanningHandler serves the weekly planning view: the Monday-to-Friday
// grid of classes with remaining seats, the caller's own reservation
// state and holiday closures, exactly what the booking page renders.
type PlanningHandler struct {
	Members      *repository.MemberRepo
	Slots        *repository.SlotRepo
	Reservations *repository.ReservationRepo
	Policy       *booking.Policy
	Now          func() time.Time
}

func NewPlanningHandler(m *repository.MemberRepo, s *repository.SlotRepo, r *repository.ReservationRepo, p *booking.Policy) *PlanningHandler {
	return &PlanningHandler{Members: m, Slots: s, Reservations: r, Policy: p}
}

func (h *PlanningHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

type planningSlot struct {
	ID            uint64 `json:"id"`
	Title         string `json:"title"`
	Category      string `json:"category"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Capacity      int    `json:"capacity"`
	SeatsTaken    int    `json:"seats_taken"`
	WaitlistSize  int    `json:"waitlist_size"`
	Bookable      bool   `json:"bookable"`
	Reserved      bool   `json:"reserved"`
	OnWaitlist    bool   `json:"on_waitlist"`
	HolidayClosed bool   `json:"holiday_closed"`
}

type planningDay struct {
	Weekday int            `json:"weekday"`
	Date    string         `json:"date"`
	Holiday bool           `json:"holiday"`
	Slots   []planningSlot `json:"slots"`
}

type planningResp struct {
	Week calendar.Week `json:"week"`
	Days []planningDay `json:"days"`
}

// Planning returns the grid for the currently bookable week, or for an
// explicit ?week=&year= pair when given. The bookable flags are only
// meaningful for the current week; past or future weeks render with
// every slot closed to booking.
func (h *PlanningHandler) Planning(c echo.Context) error {
	memberID, err := getMemberID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	now := h.now().In(h.Policy.Location)
	current := calendar.CurrentWeek(now)
	week := current
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

	member, err := h.Members.GetByID(ctx, memberID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "member not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	slots, err := h.Slots.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	counts, err := h.Reservations.CountsForWeek(ctx, week)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	mine, err := h.Reservations.MemberStateForWeek(ctx, memberID, week)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	resp := planningResp{Week: week, Days: make([]planningDay, 0, 5)}
	for weekday := calendar.Monday; weekday <= calendar.Friday; weekday++ {
		date, err := calendar.ResolveDate(week, weekday, h.Policy.Location)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "calendar failed"})
		}
		holiday := calendar.IsPublicHoliday(date)

		day := planningDay{
			Weekday: weekday,
			Date:    date.Format("2006-01-02"),
			Holiday: holiday,
			Slots:   make([]planningSlot, 0),
		}
		for _, s := range slots {
			if s.Weekday != weekday {
				continue
			}
			if member.RestrictedCategory != nil && s.Category != *member.RestrictedCategory {
				continue
			}
			cnt := counts[s.ID]
			waitlisted, reserved := mine[s.ID]

			bookable := false
			if week == current && !holiday && !reserved {
				if ok, err := h.Policy.BookingAllowed(now, s.Weekday, s.StartTime); err == nil && ok {
					bookable = true
				}
			}

			day.Slots = append(day.Slots, planningSlot{
				ID:            s.ID,
				Title:         s.Title,
				Category:      s.Category,
				StartTime:     s.StartTime,
				EndTime:       s.EndTime,
				Capacity:      s.Capacity,
				SeatsTaken:    cnt.Confirmed,
				WaitlistSize:  cnt.Waitlisted,
				Bookable:      bookable,
				Reserved:      reserved && !waitlisted,
				OnWaitlist:    reserved && waitlisted,
				HolidayClosed: holiday,
			})
		}
		resp.Days = append(resp.Days, day)
	}

	return c.JSON(http.StatusOK, resp)
}
