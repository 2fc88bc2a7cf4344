package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kimLalilo/boxe-reventin-planning/internal/repository"
)

// AdminSlotHandler manages the weekly class template. Slots describe a
// recurring weekday class, not a dated event; occurrences are derived
// per ISO week at booking time.
type AdminSlotHandler struct {
	Slots *repository.SlotRepo
}

func NewAdminSlotHandler(s *repository.SlotRepo) *AdminSlotHandler {
	return &AdminSlotHandler{Slots: s}
}

type slotReq struct {
	Title     string `json:"title" validate:"required,min=2,max=100"`
	Category  string `json:"category" validate:"required,min=1,max=50"`
	Weekday   *int   `json:"weekday" validate:"required,min=0,max=4"`
	StartTime string `json:"start_time" validate:"required,len=5"`
	EndTime   string `json:"end_time" validate:"required,len=5"`
	Capacity  int    `json:"capacity" validate:"required,min=1,max=200"`
}

// checkTimes rejects malformed or inverted HH:MM pairs before they
// reach the database; a bad start time would make the slot unbookable.
func (r slotReq) checkTimes() bool {
	start, err := time.Parse("15:04", r.StartTime)
	if err != nil {
		return false
	}
	end, err := time.Parse("15:04", r.EndTime)
	if err != nil {
		return false
	}
	return end.After(start)
}

// Create adds a class slot to the weekly template.
func (h *AdminSlotHandler) Create(c echo.Context) error {
	var req slotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if !req.checkTimes() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start/end time"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	id, err := h.Slots.Create(ctx, req.Title, req.Category, *req.Weekday, req.StartTime, req.EndTime, req.Capacity)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create slot failed"})
	}
	slot, err := h.Slots.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load slot failed"})
	}
	return c.JSON(http.StatusCreated, slot)
}

// List returns the full weekly template.
func (h *AdminSlotHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	slots, err := h.Slots.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"slots": slots})
}

// Get returns one slot.
func (h *AdminSlotHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	slot, err := h.Slots.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "slot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, slot)
}

// Update rewrites a slot. Existing reservations keep pointing at the
// slot; shrinking capacity never evicts confirmed seats.
func (h *AdminSlotHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
	}
	var req slotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if !req.checkTimes() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start/end time"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	err = h.Slots.Update(ctx, id, req.Title, req.Category, *req.Weekday, req.StartTime, req.EndTime, req.Capacity)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "slot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	slot, err := h.Slots.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load slot failed"})
	}
	return c.JSON(http.StatusOK, slot)
}

// Delete removes a slot and every reservation made against it.
func (h *AdminSlotHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Slots.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "slot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
