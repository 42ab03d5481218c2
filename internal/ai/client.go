package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"askrelay/internal/config"
)

// maxErrorBody 记录上游错误响应体的最大长度
const maxErrorBody = 512

// Client 上游 LLM 客户端
// 职责: 构造 completions 请求，按失败类型返回 TransportError / StatusError / DecodeError
type Client struct {
	cfg  *config.AIConfig
	http *resty.Client
	url  string
}

// NewClient 创建上游客户端，resty.Client 并发安全，进程内共享一个
func NewClient(cfg *config.AIConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("AI API key not configured")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("AI base url not configured")
	}

	httpClient := resty.New().
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{})
	if cfg.Timeout > 0 {
		httpClient.SetTimeout(cfg.Timeout)
	}

	return &Client{
		cfg:  cfg,
		http: httpClient,
		url:  cfg.CompletionsURL(),
	}, nil
}

// Complete 把问题作为单条 user 消息发给上游
func (c *Client) Complete(ctx context.Context, question string) (*CompletionResponse, error) {
	req := NewQuestionRequest(c.cfg.Model, c.cfg.Temperature, question)

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post(c.url)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if !resp.IsSuccess() {
		body := resp.String()
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode(), Body: body}
	}

	out, err := decodeCompletion(resp.Body())
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return out, nil
}

// Model 当前使用的模型
func (c *Client) Model() string {
	return c.cfg.Model
}

// restyLogger 把 resty 内部日志转到 zerolog
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...interface{}) {
	log.Error().Str("component", "resty").Msg(fmt.Sprintf(format, v...))
}

func (restyLogger) Warnf(format string, v ...interface{}) {
	log.Warn().Str("component", "resty").Msg(fmt.Sprintf(format, v...))
}

func (restyLogger) Debugf(format string, v ...interface{}) {
	log.Debug().Str("component", "resty").Msg(fmt.Sprintf(format, v...))
}
