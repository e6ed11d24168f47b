package persistence

import (
	"context"
	"errors"

	"guilinpaizi/common/database"
	"guilinpaizi/common/log"
	"guilinpaizi/core/domain/entity"
	"guilinpaizi/core/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GameRecordRepository 对局记录与手牌记录的 MongoDB 仓储实现（C10 持久化）
type GameRecordRepository struct {
	mongo *database.MongoManager
}

// NewGameRecordRepository 创建游戏记录仓储
func NewGameRecordRepository(mongo *database.MongoManager) repository.GameRecordRepository {
	return &GameRecordRepository{mongo: mongo}
}

// SaveGameRecord 保存游戏记录（元数据）
func (r *GameRecordRepository) SaveGameRecord(ctx context.Context, record *entity.GameRecord) error {
	collection := r.mongo.Db.Collection("game_records")
	_, err := collection.InsertOne(ctx, record)
	if err != nil {
		log.Error("保存游戏记录失败: %v", err)
		return err
	}
	return nil
}

// FindGameRecord 根据ID查找游戏记录
func (r *GameRecordRepository) FindGameRecord(ctx context.Context, recordID primitive.ObjectID) (*entity.GameRecord, error) {
	collection := r.mongo.Db.Collection("game_records")

	var record entity.GameRecord
	err := collection.FindOne(ctx, bson.M{"_id": recordID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrGameRecordNotFound
		}
		log.Error("查询游戏记录失败: %v", err)
		return nil, err
	}
	return &record, nil
}

// FindGameRecordsByUser 查找用户参与的游戏记录（分页）
func (r *GameRecordRepository) FindGameRecordsByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.GameRecord, error) {
	collection := r.mongo.Db.Collection("game_records")

	filter := bson.M{"players.user_id": userID}
	opts := options.Find().
		SetSort(bson.M{"start_time": -1}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		log.Error("查询用户游戏记录失败: %v", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*entity.GameRecord
	if err := cursor.All(ctx, &records); err != nil {
		log.Error("解析游戏记录失败: %v", err)
		return nil, err
	}
	return records, nil
}

// FindGameRecordsByRoom 根据房间ID查找游戏记录
func (r *GameRecordRepository) FindGameRecordsByRoom(ctx context.Context, roomID string) (*entity.GameRecord, error) {
	collection := r.mongo.Db.Collection("game_records")

	var record entity.GameRecord
	err := collection.FindOne(ctx, bson.M{"room_id": roomID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrGameRecordNotFound
		}
		log.Error("查询游戏记录失败: %v", err)
		return nil, err
	}
	return &record, nil
}

// SaveRoundRecord 保存手牌记录（每手一个文档）
func (r *GameRecordRepository) SaveRoundRecord(ctx context.Context, round *entity.RoundRecord) error {
	collection := r.mongo.Db.Collection("round_records")
	_, err := collection.InsertOne(ctx, round)
	if err != nil {
		log.Error("保存手牌记录失败: %v", err)
		return err
	}
	return nil
}

// SaveRoundRecords 批量保存手牌记录
func (r *GameRecordRepository) SaveRoundRecords(ctx context.Context, rounds []*entity.RoundRecord) error {
	if len(rounds) == 0 {
		return nil
	}
	collection := r.mongo.Db.Collection("round_records")

	docs := make([]any, 0, len(rounds))
	for _, round := range rounds {
		if round == nil {
			continue
		}
		docs = append(docs, round)
	}
	if len(docs) == 0 {
		return nil
	}

	_, err := collection.InsertMany(ctx, docs)
	if err != nil {
		log.Error("批量保存手牌记录失败: %v", err)
		return err
	}
	log.Info("批量保存手牌记录成功: count=%d", len(docs))
	return nil
}

// FindRoundRecords 查找游戏的所有手牌记录（按手数排序）
func (r *GameRecordRepository) FindRoundRecords(ctx context.Context, gameRecordID primitive.ObjectID) ([]*entity.RoundRecord, error) {
	collection := r.mongo.Db.Collection("round_records")

	filter := bson.M{"game_record_id": gameRecordID}
	opts := options.Find().SetSort(bson.M{"hand_number": 1})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		log.Error("查询手牌记录失败: %v", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*entity.RoundRecord
	if err := cursor.All(ctx, &records); err != nil {
		log.Error("解析手牌记录失败: %v", err)
		return nil, err
	}
	return records, nil
}

// FindRoundRecord 查找指定手数的记录
func (r *GameRecordRepository) FindRoundRecord(ctx context.Context, gameRecordID primitive.ObjectID, handNumber int) (*entity.RoundRecord, error) {
	collection := r.mongo.Db.Collection("round_records")

	filter := bson.M{
		"game_record_id": gameRecordID,
		"hand_number":    handNumber,
	}

	var record entity.RoundRecord
	err := collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrGameRecordNotFound
		}
		log.Error("查询手牌记录失败: %v", err)
		return nil, err
	}
	return &record, nil
}
