// Package cache 活动目录缓存
//
// 目录在启动写入种子后不再变化，适合长 TTL 缓存；报名名单实时变化，不进缓存。
package cache

import (
	"context"
	"encoding/json"
	"errors"

	"activity-signup/app/signup/model"
	commonCache "activity-signup/common/cache"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// ==================== CatalogueCache 活动目录缓存 ====================
//
// 缓存策略：
//   - Key: signup:catalogue:list
//   - TTL: 30min ± 10%
//   - Redis 未配置或出错时直接查 DB
//   - singleflight 合并并发回源

// CatalogueCache 活动目录缓存服务
type CatalogueCache struct {
	rds     *redis.Redis // 可为 nil
	db      *gorm.DB
	sfGroup singleflight.Group
}

// NewCatalogueCache 创建目录缓存服务，rds 为 nil 时只读 DB
func NewCatalogueCache(rds *redis.Redis, db *gorm.DB) *CatalogueCache {
	return &CatalogueCache{
		rds: rds,
		db:  db,
	}
}

// CatalogueCacheData 目录缓存数据结构（不含报名名单）
type CatalogueCacheData struct {
	ID              uint64  `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	Schedule        *string `json:"schedule,omitempty"`
	MaxParticipants *int    `json:"max_participants,omitempty"`
}

// GetList 获取活动目录（按 id 升序）
//
// 流程：
//  1. 查询 Redis 缓存
//  2. 缓存命中：反序列化返回
//  3. 缓存未命中：查询 DB，写入缓存
func (c *CatalogueCache) GetList(ctx context.Context) ([]model.Activity, error) {
	if c.rds == nil {
		return c.getFromDB(ctx)
	}

	key := commonCache.CatalogueListKey()

	val, err := c.rds.GetCtx(ctx, key)
	if err != nil && !errors.Is(err, redis.Nil) {
		logx.WithContext(ctx).Errorf("[CatalogueCache] Redis 错误，降级查 DB: err=%v", err)
		return c.getFromDB(ctx)
	}

	if val != "" {
		var cacheList []CatalogueCacheData
		if err := json.Unmarshal([]byte(val), &cacheList); err != nil {
			logx.WithContext(ctx).Errorf("[CatalogueCache] 反序列化失败: err=%v", err)
			_, _ = c.rds.DelCtx(ctx, key)
			return c.loadShared(ctx, key)
		}
		return toActivities(cacheList), nil
	}

	return c.loadShared(ctx, key)
}

// loadShared 回源查询，同一时刻只有一个请求访问 DB
func (c *CatalogueCache) loadShared(ctx context.Context, key string) ([]model.Activity, error) {
	v, err, _ := c.sfGroup.Do(key, func() (interface{}, error) {
		return c.getFromDBAndCache(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	// 共享结果需要复制，调用方可能修改
	shared := v.([]model.Activity)
	result := make([]model.Activity, len(shared))
	copy(result, shared)
	return result, nil
}

// getFromDB 直接从数据库查询
func (c *CatalogueCache) getFromDB(ctx context.Context) ([]model.Activity, error) {
	return model.NewActivityModel(c.db).ListAll(ctx)
}

// getFromDBAndCache 从 DB 查询并写入缓存
func (c *CatalogueCache) getFromDBAndCache(ctx context.Context, key string) ([]model.Activity, error) {
	activities, err := c.getFromDB(ctx)
	if err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		// 空目录不缓存，等待种子写入
		return activities, nil
	}

	data, err := json.Marshal(toCacheDataList(activities))
	if err != nil {
		logx.WithContext(ctx).Errorf("[CatalogueCache] 序列化失败: err=%v", err)
		return activities, nil
	}

	ttl := commonCache.RandomTTLSeconds(commonCache.LongTTL)
	if err := c.rds.SetexCtx(ctx, key, string(data), ttl); err != nil {
		logx.WithContext(ctx).Errorf("[CatalogueCache] 写入缓存失败: err=%v", err)
	}

	return activities, nil
}

// Warmup 预热目录缓存
//
// 调用时机：服务启动、种子写入之后
func (c *CatalogueCache) Warmup(ctx context.Context) error {
	if c.rds == nil {
		return nil
	}
	_, err := c.getFromDBAndCache(ctx, commonCache.CatalogueListKey())
	return err
}

// ==================== 数据转换 ====================

func toCacheDataList(activities []model.Activity) []CatalogueCacheData {
	result := make([]CatalogueCacheData, len(activities))
	for i, a := range activities {
		result[i] = CatalogueCacheData{
			ID:              a.ID,
			Name:            a.Name,
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
		}
	}
	return result
}

func toActivities(cacheList []CatalogueCacheData) []model.Activity {
	result := make([]model.Activity, len(cacheList))
	for i, d := range cacheList {
		result[i] = model.Activity{
			ID:              d.ID,
			Name:            d.Name,
			Description:     d.Description,
			Schedule:        d.Schedule,
			MaxParticipants: d.MaxParticipants,
		}
	}
	return result
}
