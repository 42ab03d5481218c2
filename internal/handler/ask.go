package handler

import (
	"github.com/gin-gonic/gin"

	"askrelay/internal/model"
	"askrelay/internal/pkg/ctxutil"
	"askrelay/internal/pkg/strictjson"
	"askrelay/internal/service"
)

// AskHandler 提问转发处理器
type AskHandler struct {
	relaySvc *service.RelayService
}

// NewAskHandler 创建提问转发处理器
func NewAskHandler(relaySvc *service.RelayService) *AskHandler {
	return &AskHandler{
		relaySvc: relaySvc,
	}
}

// Ask 把问题转发给上游 LLM
// @Summary      提问
// @Description  把问题作为单条 user 消息转发给 OpenAI chat completions，返回第一个候选回答
// @Tags         relay
// @Accept       json
// @Produce      json
// @Param        request  body      model.AskRequest   true  "问题"
// @Success      200      {object}  model.AskResponse  "回答；choices 为空时 answer 为占位文本"
// @Failure      400      {object}  model.AskResponse  "请求体不合法"
// @Failure      500      {object}  model.AskResponse  "请求上游失败或上游响应无法解析"
// @Failure      502      {object}  model.AskResponse  "上游返回非 2xx"
// @Router       /ask [post]
func (h *AskHandler) Ask(c *gin.Context) {
	ctx := c.Request.Context()

	var res *service.AskResult
	var req model.AskRequest
	if err := c.ShouldBindWith(&req, strictjson.Binding); err != nil {
		res = h.relaySvc.Reject(ctx, err)
	} else {
		res = h.relaySvc.Ask(ctx, *req.Question)
	}

	c.Set(ctxutil.KeyOutcome, string(res.Outcome))
	c.Set(ctxutil.KeyUpstreamStatus, res.UpstreamStatus)
	c.JSON(res.Status, res.Response)
}
