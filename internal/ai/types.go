package ai

import "askrelay/internal/pkg/strictjson"

const (
	RoleUser = "user"
)

// Message chat 消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest 上游 chat completions 请求体
type CompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

// Choice 候选回复
type Choice struct {
	Message Message `json:"message"`
}

// CompletionResponse 上游 chat completions 响应体
type CompletionResponse struct {
	Choices []Choice `json:"choices"`
}

// FirstContent 返回第一个候选的内容，choices 为空时 ok=false
func (r *CompletionResponse) FirstContent() (content string, ok bool) {
	if r == nil || len(r.Choices) == 0 {
		return "", false
	}
	return r.Choices[0].Message.Content, true
}

// NewQuestionRequest 构造单条 user 消息的请求
func NewQuestionRequest(model string, temperature float64, question string) *CompletionRequest {
	return &CompletionRequest{
		Model: model,
		Messages: []Message{
			{Role: RoleUser, Content: question},
		},
		Temperature: temperature,
	}
}

// wire* 类型只用于解析上游响应，choices / message / role / content 都是必需字段
type wireMessage struct {
	Role    *string `json:"role" binding:"required"`
	Content *string `json:"content" binding:"required"`
}

type wireChoice struct {
	Message *wireMessage `json:"message" binding:"required"`
}

type wireResponse struct {
	Choices []*wireChoice `json:"choices" binding:"required,dive,required"`
}

// decodeCompletion 解析上游响应体，键名大小写敏感，缺少必需字段时返回错误
func decodeCompletion(body []byte) (*CompletionResponse, error) {
	var wire wireResponse
	if err := strictjson.Decode(body, &wire); err != nil {
		return nil, err
	}

	out := &CompletionResponse{Choices: make([]Choice, 0, len(wire.Choices))}
	for _, c := range wire.Choices {
		out.Choices = append(out.Choices, Choice{
			Message: Message{Role: *c.Message.Role, Content: *c.Message.Content},
		})
	}
	return out, nil
}
