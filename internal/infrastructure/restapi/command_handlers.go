package restapi

import (
	"net/http"

	"block_scanner/internal/app/command"
	"block_scanner/internal/app/port"

	"github.com/gin-gonic/gin"
)

// APICommandRequest carries one chat line, prefix included.
type APICommandRequest struct {
	Command string `json:"command" binding:"required"`
}

// CommandHandler exposes the chat command surface over HTTP.
type CommandHandler struct {
	dispatcher *command.Dispatcher
	logger     port.Logger
}

// NewCommandHandler creates a new instance of CommandHandler.
func NewCommandHandler(d *command.Dispatcher, l port.Logger) *CommandHandler {
	return &CommandHandler{dispatcher: d, logger: l}
}

// PostCommandHandler executes the posted command and returns the chat reply.
// Image bytes are base64-encoded by the JSON encoder.
func (h *CommandHandler) PostCommandHandler(c *gin.Context) {
	var req APICommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIErrorResponse{Error: err.Error()})
		return
	}

	reply, ok := h.dispatcher.HandleLine(c.Request.Context(), req.Command)
	if !ok {
		c.JSON(http.StatusBadRequest, APIErrorResponse{Error: "command must start with the bot prefix"})
		return
	}
	h.logger.Debug("Command handled", "command", req.Command, "hasImage", reply.Image != nil)
	c.JSON(http.StatusOK, reply)
}
