package api

import (
	"errors"
	"net/http"

	reqdto "parkvue/internal/handler/dto/request"
	resdto "parkvue/internal/handler/dto/response"
	"parkvue/internal/handler/httperr"
	"parkvue/internal/handler/middleware"
	"parkvue/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RatingHandler struct {
	cmds commands.RatingCommands
}

func NewRatingHandler(cmds commands.RatingCommands) *RatingHandler {
	return &RatingHandler{cmds: cmds}
}

// @Summary Rate room
// @Description Rate a room 1-5. Rating again replaces the caller's previous value.
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param request body reqdto.RateRoomRequest true "Rating"
// @Success 200 {object} resdto.RatingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/rooms/{id}/rating [put]
func (h *RatingHandler) Rate(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room id", nil)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	var req reqdto.RateRoomRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	result, err := h.cmds.RateRoom(c.Request.Context(), roomID, userID, *req.Value)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidRating):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Rating must be between 1 and 5", nil)
		case errors.Is(err, commands.ErrRoomNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
		case errors.Is(err, commands.ErrRatingConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "Room is being rated by others, try again", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to rate room", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromRateResult(result))
}
