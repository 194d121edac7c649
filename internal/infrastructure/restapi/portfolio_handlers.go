package restapi

import (
	"errors"
	"net/http"

	"block_scanner/internal/app/command"
	"block_scanner/internal/app/port"
	"block_scanner/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// APIErrorResponse is the body of every non-2xx reply.
type APIErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// APIPortfolioResponse is the body of the text portfolio endpoint.
type APIPortfolioResponse struct {
	Identifier string `json:"identifier"`
	Text       string `json:"text"`
}

// PortfolioHandler serves the portfolio pipeline over HTTP.
type PortfolioHandler struct {
	portfolioService port.PortfolioService
	logger           port.Logger
}

// NewPortfolioHandler creates a new instance of PortfolioHandler.
func NewPortfolioHandler(ps port.PortfolioService, l port.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: ps, logger: l}
}

// GetPortfolioHandler returns the text portfolio of :identifier.
func (h *PortfolioHandler) GetPortfolioHandler(c *gin.Context) {
	identifier := c.Param("identifier")
	text, err := h.portfolioService.PortfolioText(c.Request.Context(), identifier)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIPortfolioResponse{Identifier: identifier, Text: text})
}

// GetPortfolioChartHandler returns the chart of :identifier as a PNG.
func (h *PortfolioHandler) GetPortfolioChartHandler(c *gin.Context) {
	chart, err := h.portfolioService.PortfolioChart(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+command.ChartImageName+`"`)
	c.Data(http.StatusOK, "image/png", chart.Image)
}

func (h *PortfolioHandler) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	resp := APIErrorResponse{Error: command.ErrorText(err)}
	if se, ok := entity.AsScanError(err); ok {
		resp.Kind = se.Kind.String()
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("Portfolio request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, resp)
}

func statusFor(err error) int {
	var se *entity.ScanError
	if !errors.As(err, &se) {
		return http.StatusInternalServerError
	}
	switch se.Kind {
	case entity.KindNotFound, entity.KindNoData:
		return http.StatusNotFound
	case entity.KindUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
