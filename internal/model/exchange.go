package model

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Outcome 一次转发的结果类型
type Outcome string

const (
	OutcomeAnswered       Outcome = "answered"        // 2xx 且有 choice
	OutcomeEmpty          Outcome = "empty"           // 2xx 但 choices 为空
	OutcomeTransportError Outcome = "transport_error" // 请求未完成
	OutcomeUpstreamError  Outcome = "upstream_error"  // 上游非 2xx
	OutcomeParseError     Outcome = "parse_error"     // 响应体结构不对
	OutcomeBadRequest     Outcome = "bad_request"     // 入参不合法，未调用上游
)

// Exchange 一次问答流水，只写不读
type Exchange struct {
	ID             string    `bson:"id" json:"id"`                                               // UUID
	RequestID      string    `bson:"request_id,omitempty" json:"request_id,omitempty"`           // X-Request-ID
	Model          string    `bson:"model" json:"model"`                                         // 上游模型
	Question       string    `bson:"question" json:"question"`                                   // 原始问题
	Answer         string    `bson:"answer" json:"answer"`                                       // 返回给调用方的回答
	Error          string    `bson:"error,omitempty" json:"error,omitempty"`                     // 返回给调用方的错误
	Outcome        Outcome   `bson:"outcome" json:"outcome"`                                     // 结果类型
	Status         int       `bson:"status" json:"status"`                                       // 返回给调用方的 HTTP 状态码
	UpstreamStatus int       `bson:"upstream_status,omitempty" json:"upstream_status,omitempty"` // 上游 HTTP 状态码
	LatencyMS      int64     `bson:"latency_ms" json:"latency_ms"`                               // 上游耗时
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// Collection 返回集合名称
func (e *Exchange) Collection() string {
	return "exchanges"
}

// EnsureIndexes 创建和维护索引
func (e *Exchange) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(e.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_created_at"),
		},
		{
			Keys:    bson.D{bson.E{Key: "outcome", Value: 1}, bson.E{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_outcome_created"),
		},
		{
			Keys:    bson.D{bson.E{Key: "id", Value: 1}},
			Options: options.Index().SetName("idx_id").SetUnique(true),
		},
	}

	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
