package model

// AskRequest 提问请求
// Question 用指针区分「缺失」和「空字符串」：只要求字段存在
type AskRequest struct {
	Question *string `json:"question" binding:"required" example:"What is the capital of France?"`
}
