package handler

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kimLalilo/boxe-reventin-planning/internal/config"
	"github.com/kimLalilo/boxe-reventin-planning/internal/repository"
)

// AdminMemberHandler manages club membership. Only admins reach these
// endpoints; members never self-register.
type AdminMemberHandler struct {
	Cfg     config.Config
	Members *repository.MemberRepo
}

func NewAdminMemberHandler(cfg config.Config, m *repository.MemberRepo) *AdminMemberHandler {
	return &AdminMemberHandler{Cfg: cfg, Members: m}
}

type createMemberReq struct {
	Email              string  `json:"email" validate:"required,email"`
	Name               string  `json:"name" validate:"required,min=2,max=100"`
	Password           string  `json:"password" validate:"required,min=8"`
	Role               string  `json:"role" validate:"required,oneof=member coach admin"`
	WeeklyQuota        int     `json:"weekly_quota" validate:"required,min=1,max=5"`
	RestrictedCategory *string `json:"restricted_category" validate:"omitempty,min=1,max=50"`
}

type updateMemberReq struct {
	Name               string  `json:"name" validate:"required,min=2,max=100"`
	Role               string  `json:"role" validate:"required,oneof=member coach admin"`
	WeeklyQuota        int     `json:"weekly_quota" validate:"required,min=1,max=5"`
	RestrictedCategory *string `json:"restricted_category" validate:"omitempty,min=1,max=50"`
	Password           string  `json:"password" validate:"omitempty,min=8"`
}

// Create registers a new member with their weekly quota.
func (h *AdminMemberHandler) Create(c echo.Context) error {
	var req createMemberReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := reqCtx(c)
	defer cancel()

	id, err := h.Members.Create(ctx, req.Email, req.Name, req.Password, req.Role, req.WeeklyQuota, req.RestrictedCategory, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create member failed"})
	}

	m, err := h.Members.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load member failed"})
	}
	return c.JSON(http.StatusCreated, toMemberPart(m))
}

// List returns all members ordered by name.
func (h *AdminMemberHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	members, err := h.Members.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]memberPart, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberPart(m))
	}
	return c.JSON(http.StatusOK, echo.Map{"members": out})
}

// Get returns one member.
func (h *AdminMemberHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid member id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	m, err := h.Members.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "member not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toMemberPart(m))
}

// Update rewrites a member's profile; an optional password resets the
// credential.
func (h *AdminMemberHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid member id"})
	}
	var req updateMemberReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	err = h.Members.Update(ctx, id, req.Name, req.Role, req.WeeklyQuota, req.RestrictedCategory, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "member not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	m, err := h.Members.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load member failed"})
	}
	return c.JSON(http.StatusOK, toMemberPart(m))
}

// Delete removes a member along with their reservations and sessions.
func (h *AdminMemberHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid member id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Members.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "member not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
