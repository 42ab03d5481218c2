package relayclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"askrelay/internal/model"
	"askrelay/internal/pkg/id"
)

// HeaderRequestID 与服务端中间件使用同一个请求头
const HeaderRequestID = "X-Request-ID"

// Client /ask 接口客户端
type Client struct {
	http *resty.Client
}

// New 创建客户端，server 为服务根地址，如 http://localhost:8080
func New(server string, timeout time.Duration) (*Client, error) {
	server = strings.TrimRight(strings.TrimSpace(server), "/")
	if server == "" {
		return nil, errors.New("server address is required")
	}

	httpClient := resty.New().
		SetBaseURL(server).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		httpClient.SetTimeout(timeout)
	}

	return &Client{http: httpClient}, nil
}

// Result 一次提问的结果
type Result struct {
	StatusCode int
	RequestID  string
	Response   model.AskResponse
}

// Failed 服务端返回了 error 字段
func (r *Result) Failed() bool {
	return r.Response.Error != nil
}

// Ask 提交问题；非 2xx 只要响应体是 AskResponse 也按正常结果返回
func (c *Client) Ask(ctx context.Context, question string) (*Result, error) {
	var out model.AskResponse
	requestID := id.New()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(HeaderRequestID, requestID).
		SetBody(model.AskRequest{Question: &question}).
		SetResult(&out).
		SetError(&out).
		Post("/ask")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if out.Answer == "" && out.Error == nil && !resp.IsSuccess() {
		return nil, fmt.Errorf("unexpected response: %s", resp.Status())
	}

	if rid := resp.Header().Get(HeaderRequestID); rid != "" {
		requestID = rid
	}

	return &Result{
		StatusCode: resp.StatusCode(),
		RequestID:  requestID,
		Response:   out,
	}, nil
}
