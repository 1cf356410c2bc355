package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "ticketgo/internal/handler/dto/request"
	resdto "ticketgo/internal/handler/dto/response"
	"ticketgo/internal/usecase/commands"
	"ticketgo/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TripHandler struct {
	tripCommands commands.TripCommands
	tripQueries  queries.TripQueries
}

func NewTripHandler(tripCommands commands.TripCommands, tripQueries queries.TripQueries) *TripHandler {
	return &TripHandler{
		tripCommands: tripCommands,
		tripQueries:  tripQueries,
	}
}

// @Summary Create trip
// @Description Create a trip with its full seat map (admin only)
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateTripRequest true "Trip request"
// @Success 201 {object} resdto.TripResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /trips [post]
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req reqdto.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.tripCommands.CreateTrip(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidTrip):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip"})
		case errors.Is(err, commands.ErrDuplicateTrip):
			c.JSON(http.StatusConflict, gin.H{"error": "Trip code already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromTripView(view))
}

// @Summary Search trips
// @Description Search trips by route, kind and departure window
// @Tags trips
// @Produce json
// @Param from query string false "Origin city"
// @Param to query string false "Destination city"
// @Param kind query string false "Trip kind (bus, flight, event)"
// @Param departs_after query string false "Departure window start (RFC3339)"
// @Param departs_before query string false "Departure window end (RFC3339)"
// @Param available query bool false "Only trips with free seats"
// @Param limit query int false "Max results"
// @Success 200 {array} resdto.TripResponse
// @Failure 400 {object} map[string]string
// @Router /trips [get]
func (h *TripHandler) SearchTrips(c *gin.Context) {
	var filter queries.TripSearchFilter

	if from := c.Query("from"); from != "" {
		filter.FromCity = &from
	}
	if to := c.Query("to"); to != "" {
		filter.ToCity = &to
	}
	if kind := c.Query("kind"); kind != "" {
		filter.Kind = &kind
	}
	if raw := c.Query("departs_after"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid departs_after format"})
			return
		}
		filter.DepartsAfter = &t
	}
	if raw := c.Query("departs_before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid departs_before format"})
			return
		}
		filter.DepartsBefore = &t
	}
	filter.OnlyAvailable = c.Query("available") == "true"

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := parsePositiveInt(raw); err == nil {
			limit = parsed
		}
	}

	views, err := h.tripQueries.Search(c.Request.Context(), filter, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromTripViews(views))
}

// @Summary Get trip
// @Description Get trip by ID
// @Tags trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} resdto.TripResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /trips/{id} [get]
func (h *TripHandler) GetTrip(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip ID format"})
		return
	}

	view, err := h.tripQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrTripNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromTripView(view))
}

// @Summary List seats
// @Description List the seat map for a trip, claimed seats included
// @Tags trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {array} resdto.SeatResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /trips/{id}/seats [get]
func (h *TripHandler) ListSeats(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip ID format"})
		return
	}

	seats, err := h.tripQueries.ListSeats(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrTripNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromSeatViews(seats))
}
