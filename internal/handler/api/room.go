package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	reqdto "parkvue/internal/handler/dto/request"
	resdto "parkvue/internal/handler/dto/response"
	"parkvue/internal/handler/httperr"
	"parkvue/internal/handler/middleware"
	"parkvue/internal/usecase/commands"
	"parkvue/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoomHandler struct {
	cmds commands.RoomCommands
	q    queries.RoomQueries
}

func NewRoomHandler(cmds commands.RoomCommands, q queries.RoomQueries) *RoomHandler {
	return &RoomHandler{cmds: cmds, q: q}
}

// @Summary Create room
// @Description List a new parking room. Hosts and admins only.
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRoomRequest true "Room"
// @Success 201 {object} resdto.RoomResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.cmds.CreateRoom(c.Request.Context(), req.ToInput(), ownerID)
	if err != nil {
		if errors.Is(err, commands.ErrInvalidRoom) {
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, err.Error(), nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to create room", nil)
		return
	}

	res, err := resdto.FromRoomView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.Header("Location", "/api/rooms/"+view.ID.String())
	c.JSON(http.StatusCreated, res)
}

// @Summary Get room
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} resdto.RoomResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/rooms/{id} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortRoomQueryError(c, err)
		return
	}
	res, err := resdto.FromRoomView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary List rooms
// @Description Newest first. Filter on availability for the map view.
// @Tags rooms
// @Produce json
// @Param available query bool false "Only rooms that are (or are not) bookable"
// @Param limit query int false "Max items (default 20, max 100)"
// @Success 200 {array} resdto.RoomResponse
// @Failure 400 {object} httperr.Response
// @Router /api/rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	var filter queries.RoomFilter
	if v := c.Query("available"); v != "" {
		available, err := strconv.ParseBool(v)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid available filter", nil)
			return
		}
		filter.Available = &available
	}
	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	views, err := h.q.List(c.Request.Context(), filter, limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list rooms", nil)
		return
	}
	res, err := resdto.FromRoomList(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Price quote
// @Description Quote for booking the room over [start, end). Missing or invalid dates give a zero quote.
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Param start query string false "RFC3339 start"
// @Param end query string false "RFC3339 end"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/rooms/{id}/quote [get]
func (h *RoomHandler) Quote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room id", nil)
		return
	}
	start := parseTimeOrZero(c.Query("start"))
	end := parseTimeOrZero(c.Query("end"))

	quote, err := h.q.Quote(c.Request.Context(), id, start, end)
	if err != nil {
		abortRoomQueryError(c, err)
		return
	}
	res, err := resdto.FromQuoteView(quote)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

func abortRoomQueryError(c *gin.Context, err error) {
	if errors.Is(err, queries.ErrRoomNotFound) {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
		return
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load room", nil)
}

func parseTimeOrZero(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// parseLimit aborts the request on a malformed limit.
func parseLimit(c *gin.Context) (int, bool) {
	v := c.Query("limit")
	if v == "" {
		return queries.DefaultListLimit, true
	}
	limit, err := strconv.Atoi(v)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit", nil)
		return 0, false
	}
	return queries.ValidateLimit(limit), true
}
