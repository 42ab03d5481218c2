package model

// NoResponseAnswer 上游 choices 为空时的占位回答
const NoResponseAnswer = "No response from OpenAI"

// AskResponse 提问响应
// answer 和 error 两个字段总会序列化，成功时 error 为 null
type AskResponse struct {
	Answer string  `json:"answer" example:"Paris"`
	Error  *string `json:"error" example:"OpenAI API error: 429 Too Many Requests"`
}

// NewAnswer 成功响应
func NewAnswer(answer string) AskResponse {
	return AskResponse{Answer: answer}
}

// NewFailure 失败响应，answer 为空
func NewFailure(msg string) AskResponse {
	return AskResponse{Error: &msg}
}

// StatsResponse 结果计数
type StatsResponse struct {
	Outcomes map[string]int64 `json:"outcomes"`
}

// StatusResponse 健康检查响应
type StatusResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}
