package repository

import (
	"context"
	"dataforge_backend/internal/model"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const progressKeyPrefix = "dataforge:progress:"

// ProgressRepository 进度存档的键值槽：每个用户一个固定key，
// 值是 JSON 信封 {version, userProgress, theme}。最后写入者获胜。
type ProgressRepository struct {
	Redis *redis.Client
}

func NewProgressRepository(rdb *redis.Client) *ProgressRepository {
	return &ProgressRepository{Redis: rdb}
}

func progressKey(userID uint) string {
	return fmt.Sprintf("%s%d", progressKeyPrefix, userID)
}

// Load 读取存档；key 不存在时返回 (nil, nil)
func (r *ProgressRepository) Load(ctx context.Context, userID uint) (*model.ProgressEnvelope, error) {
	val, err := r.Redis.Get(ctx, progressKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var env model.ProgressEnvelope
	if err := json.Unmarshal([]byte(val), &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Save 整体覆盖写入，无过期时间
func (r *ProgressRepository) Save(ctx context.Context, userID uint, env *model.ProgressEnvelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return r.Redis.Set(ctx, progressKey(userID), payload, 0).Err()
}

// Delete 清除存档槽（整体重置语义）
func (r *ProgressRepository) Delete(ctx context.Context, userID uint) error {
	return r.Redis.Del(ctx, progressKey(userID)).Err()
}
