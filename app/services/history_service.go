package services

import (
	"context"
	"fmt"
	"time"

	"github.com/housing-pricer/app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// HistoryService ghi lịch sử định giá vào MongoDB. Optional: service
// chạy được không có Mongo, khi đó mọi method là no-op.
type HistoryService struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewHistoryService tạo history service trên database cho trước.
func NewHistoryService(db *mongo.Database, logger *zap.Logger) *HistoryService {
	collection := db.Collection("prediction_history")

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{bson.E{Key: "fingerprint", Value: 1}}},
		{Keys: bson.D{bson.E{Key: "created_at", Value: -1}}},
		{Keys: bson.D{bson.E{Key: "model_name", Value: 1}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		logger.Warn("Không thể tạo indexes cho prediction_history", zap.Error(err))
	}

	return &HistoryService{collection: collection, logger: logger}
}

// NewNopHistoryService history service no-op khi không cấu hình Mongo.
func NewNopHistoryService(logger *zap.Logger) *HistoryService {
	return &HistoryService{logger: logger}
}

// Enabled cho biết có backend lưu trữ hay không.
func (hs *HistoryService) Enabled() bool { return hs.collection != nil }

// Record ghi một dòng lịch sử. Lỗi ghi không chặn response, chỉ log.
func (hs *HistoryService) Record(ctx context.Context, record *models.PredictionRecord) {
	if hs.collection == nil {
		return
	}
	record.CreatedAt = time.Now()

	if _, err := hs.collection.InsertOne(ctx, record); err != nil {
		hs.logger.Warn("Lỗi ghi prediction history", zap.Error(err))
		return
	}
	hs.logger.Debug("Đã ghi prediction history",
		zap.String("fingerprint", record.Fingerprint),
		zap.String("model", record.ModelName))
}

// Recent trả các dòng lịch sử mới nhất, tối đa limit.
func (hs *HistoryService) Recent(ctx context.Context, limit int) ([]models.PredictionRecord, error) {
	if hs.collection == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := hs.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("lỗi query prediction history: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.PredictionRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("lỗi decode prediction history: %w", err)
	}
	return records, nil
}

// Count tổng số dòng lịch sử.
func (hs *HistoryService) Count(ctx context.Context) (int64, error) {
	if hs.collection == nil {
		return 0, nil
	}
	return hs.collection.CountDocuments(ctx, bson.M{})
}
