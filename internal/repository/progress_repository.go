//go:generate mockery --name ProgressKV --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"course_portal/internal/config"
	"course_portal/internal/middleware"
	"course_portal/internal/model"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressKV は進捗を保存するキー・バリューストア。値は JSON 配列の文字列
type ProgressKV interface {
	// Get は値を返す。キーが無ければ model.ErrNotFound
	Get(ctx context.Context, key string) (string, error)
	// Set は値を丸ごと置き換える
	Set(ctx context.Context, key, value string) error
}

// --- database ---

type gormProgressKV struct {
	db *gorm.DB
}

func NewGormProgressKV(db *gorm.DB) ProgressKV {
	return &gormProgressKV{db: db}
}

func (r *gormProgressKV) Get(ctx context.Context, key string) (string, error) {
	var entry model.ProgressEntry
	result := r.db.WithContext(ctx).Where("progress_key = ?", key).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Error reading progress entry in DB", "error", result.Error, "key", key)
		return "", fmt.Errorf("gormProgressKV.Get: %w", result.Error)
	}
	return entry.Value, nil
}

func (r *gormProgressKV) Set(ctx context.Context, key, value string) error {
	entry := model.ProgressEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "progress_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error writing progress entry in DB", "error", result.Error, "key", key)
		return fmt.Errorf("gormProgressKV.Set: %w", result.Error)
	}
	return nil
}

// --- redis ---

type redisProgressKV struct {
	client *redis.Client
}

func NewRedisProgressKV(client *redis.Client) ProgressKV {
	return &redisProgressKV{client: client}
}

// NewRedisClient は接続を確認してからクライアントを返します
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("repository.NewRedisClient: %w", err)
	}
	return client, nil
}

func (r *redisProgressKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Error reading progress from redis", "error", err, "key", key)
		return "", fmt.Errorf("redisProgressKV.Get: %w", err)
	}
	return val, nil
}

func (r *redisProgressKV) Set(ctx context.Context, key, value string) error {
	// 期限なし。ブラウザの localStorage と同じく明示的に上書きされるまで残る
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		middleware.GetLogger(ctx).Error("Error writing progress to redis", "error", err, "key", key)
		return fmt.Errorf("redisProgressKV.Set: %w", err)
	}
	return nil
}

// --- memory ---

type memoryProgressKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryProgressKV はプロセス内だけで保持する (開発・テスト用)
func NewMemoryProgressKV() ProgressKV {
	return &memoryProgressKV{values: make(map[string]string)}
}

func (m *memoryProgressKV) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", model.ErrNotFound
	}
	return v, nil
}

func (m *memoryProgressKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// OpenProgressKV は設定の backend (database | redis | memory) に応じたストアを返す。close は終了時に呼ぶ
func OpenProgressKV(ctx context.Context, cfg config.ProgressConfig, db *gorm.DB) (ProgressKV, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case "", "database":
		return NewGormProgressKV(db), noop, nil
	case "redis":
		client, err := NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisProgressKV(client), client.Close, nil
	case "memory":
		return NewMemoryProgressKV(), noop, nil
	default:
		return nil, nil, fmt.Errorf("repository.OpenProgressKV: unknown backend %q", cfg.Backend)
	}
}
