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

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking
// @Description Book a charger for a time slot
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.cmds.CreateBooking(c.Request.Context(), req, userID)
	if err != nil {
		abortBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Get booking
// @Description Get a booking by ID; visible to the renter, the owner and admins
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
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

	view, err := h.q.GetByID(c.Request.Context(), userID, role, id)
	if err != nil {
		abortBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List own bookings
// @Description List the authenticated user's bookings, newest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingListResponse
// @Failure 401 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	items, err := h.q.ListByUser(c.Request.Context(), userID)
	if err != nil {
		abortBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingListItems(items))
}

// @Summary List charger bookings
// @Description List bookings on a charger; owner and admins only
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Charger ID"
// @Success 200 {array} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /chargers/{id}/bookings [get]
func (h *BookingHandler) ListByCharger(c *gin.Context) {
	chargerID, err := uuid.Parse(c.Param("id"))
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

	items, err := h.q.ListByCharger(c.Request.Context(), userID, role, chargerID)
	if err != nil {
		abortBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingListItems(items))
}

// @Summary Change booking status
// @Description Move a booking along pending, confirmed, active, completed; or cancel it
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ChangeBookingStatusRequest true "Target status"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/status [patch]
func (h *BookingHandler) ChangeStatus(c *gin.Context) {
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

	var req reqdto.ChangeBookingStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}
	target, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid target status", nil)
		return
	}

	view, err := h.cmds.ChangeBookingStatus(c.Request.Context(), id, userID, role, target)
	if err != nil {
		abortBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Cancel booking
// @Description Cancel a pending or confirmed booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
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

	view, err := h.cmds.CancelBooking(c.Request.Context(), id, userID, role)
	if err != nil {
		abortBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func abortBookingError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrMalformedRequest):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Malformed booking request", nil)
	case errs.Is(err, commands.ErrInvalidInterval):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "End time must be after start time", nil)
	case errs.Is(err, commands.ErrPastStart):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Start time must be in the future", nil)
	case errs.Is(err, commands.ErrChargerNotFound), errs.Is(err, queries.ErrChargerNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Charger not found", nil)
	case errs.Is(err, commands.ErrBookingNotFound), errs.Is(err, queries.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errs.Is(err, commands.ErrChargerUnavailable):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Charger is not available for booking", nil)
	case errs.Is(err, commands.ErrDateBlocked):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Requested date is blocked by the owner", nil)
	case errs.Is(err, commands.ErrOutsideSchedule):
		// The cause message names the applicable window.
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Requested slot is outside the charger schedule", err.Error())
	case errs.Is(err, commands.ErrSelfBookingForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Owners cannot book their own charger", nil)
	case errs.Is(err, commands.ErrUnauthorized), errs.Is(err, queries.ErrNotChargerOwner):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Not allowed", nil)
	case errs.Is(err, commands.ErrSlotTaken):
		httperr.AbortWithError(c, http.StatusConflict, err, "Slot conflicts with an existing booking", nil)
	case errs.Is(err, commands.ErrIllegalTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Illegal status transition", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
