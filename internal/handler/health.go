package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"askrelay/internal/model"
)

const readyTimeout = 2 * time.Second

// Pinger 可探活的依赖
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler 健康检查处理器
type HealthHandler struct {
	components map[string]Pinger // 值为 nil 表示未启用
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(components map[string]Pinger) *HealthHandler {
	return &HealthHandler{components: components}
}

// Health 健康检查
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, model.StatusResponse{Status: "ok"})
}

// Ready 就绪检查，可选依赖异常时为 degraded，不影响 /ask
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	names := make([]string, 0, len(h.components))
	for name := range h.components {
		names = append(names, name)
	}
	sort.Strings(names)

	status := "ready"
	components := make(map[string]string, len(names))
	for _, name := range names {
		p := h.components[name]
		switch {
		case p == nil:
			components[name] = "disabled"
		case p.Ping(ctx) != nil:
			components[name] = "down"
			status = "degraded"
		default:
			components[name] = "up"
		}
	}

	c.JSON(http.StatusOK, model.StatusResponse{Status: status, Components: components})
}
