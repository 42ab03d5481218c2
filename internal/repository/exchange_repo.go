package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"askrelay/internal/model"
)

// ExchangeRepo 问答流水仓库
type ExchangeRepo struct {
	collection *mongo.Collection
}

// NewExchangeRepo 创建问答流水仓库
func NewExchangeRepo(db *mongo.Database) *ExchangeRepo {
	var e model.Exchange
	return &ExchangeRepo{
		collection: db.Collection(e.Collection()),
	}
}

// Create 写入一条流水
func (r *ExchangeRepo) Create(ctx context.Context, exchange *model.Exchange) error {
	if exchange.CreatedAt.IsZero() {
		exchange.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, exchange)
	return err
}
