package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"askrelay/internal/model"
	"askrelay/internal/service"
)

// StatsHandler 结果计数处理器
type StatsHandler struct {
	relaySvc *service.RelayService
}

// NewStatsHandler 创建结果计数处理器
func NewStatsHandler(relaySvc *service.RelayService) *StatsHandler {
	return &StatsHandler{relaySvc: relaySvc}
}

// Stats 各类结果的累计次数
// @Summary      结果计数
// @Tags         ops
// @Produce      json
// @Success      200  {object}  model.StatsResponse
// @Failure      503  {object}  model.AskResponse  "未配置 Redis"
// @Router       /stats [get]
func (h *StatsHandler) Stats(c *gin.Context) {
	counts, err := h.relaySvc.Stats(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrStatsDisabled) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, model.NewFailure(err.Error()))
		return
	}

	c.JSON(http.StatusOK, model.StatsResponse{Outcomes: counts})
}
