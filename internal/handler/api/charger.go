package api

import (
	"net/http"

	reqdto "chargeshare/internal/handler/dto/request"
	resdto "chargeshare/internal/handler/dto/response"
	"chargeshare/internal/handler/httperr"
	"chargeshare/internal/handler/middleware"
	"chargeshare/internal/pkg/errs"
	"chargeshare/internal/usecase/commands"
	"chargeshare/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ChargerHandler struct {
	cmds commands.ChargerCommands
	q    queries.ChargerQueries
}

func NewChargerHandler(cmds commands.ChargerCommands, q queries.ChargerQueries) *ChargerHandler {
	return &ChargerHandler{cmds: cmds, q: q}
}

// @Summary Get charger
// @Description Get a charger with its availability schedule
// @Tags chargers
// @Produce json
// @Param id path string true "Charger ID"
// @Success 200 {object} resdto.ChargerResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /chargers/{id} [get]
func (h *ChargerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortChargerError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromChargerView(view))
}

// @Summary Update charger availability
// @Description Replace the weekly schedule and blocked dates; owner and admins only
// @Tags chargers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Charger ID"
// @Param request body reqdto.UpdateAvailabilityRequest true "Availability"
// @Success 200 {object} resdto.ChargerResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /chargers/{id}/availability [put]
func (h *ChargerHandler) UpdateAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	role, _ := middleware.GetUserRole(c)

	var req reqdto.UpdateAvailabilityRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	view, err := h.cmds.UpdateAvailability(c.Request.Context(), id, userID, role, req)
	if err != nil {
		abortChargerError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromChargerView(view))
}

func abortChargerError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrChargerNotFound), errs.Is(err, queries.ErrChargerNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Charger not found", nil)
	case errs.Is(err, commands.ErrNotChargerOwner):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Only the owner can manage this charger", nil)
	case errs.Is(err, commands.ErrBlockedDateInPast):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Blocked dates must not be in the past", nil)
	case errs.Is(err, commands.ErrInvalidAvailability):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid availability", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
