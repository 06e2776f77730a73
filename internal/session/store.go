package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sabai-next/internal/cache"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// NewStore 根据缓存是否启用选择会话存储实现
func NewStore(ttl time.Duration) Store {
	if cache.Enabled() {
		return NewRedisStore(cache.Client(), cache.Prefix(), ttl)
	}
	return NewMemoryStore(ttl)
}

// RedisStore 基于 Redis 的会话存储
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore 创建 Redis 会话存储
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(token string) string {
	return fmt.Sprintf("%s:session:%s", s.prefix, token)
}

// Create 创建会话
func (s *RedisStore) Create(ctx context.Context, data *Data) (string, error) {
	token := uuid.NewString()
	if err := s.Save(ctx, token, data); err != nil {
		return "", err
	}
	return token, nil
}

// Get 读取会话
func (s *RedisStore) Get(ctx context.Context, token string) (*Data, error) {
	if token == "" {
		return nil, nil
	}
	val, err := s.client.Get(ctx, s.key(token)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var data Data
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Save 写入会话并刷新有效期
func (s *RedisStore) Save(ctx context.Context, token string, data *Data) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(token), payload, s.ttl).Err()
}

// Delete 删除会话
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}

type memoryEntry struct {
	data      Data
	expiresAt time.Time
}

// MemoryStore 进程内会话存储，未启用 Redis 时使用
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore 创建进程内会话存储
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Create 创建会话
func (s *MemoryStore) Create(ctx context.Context, data *Data) (string, error) {
	token := uuid.NewString()
	if err := s.Save(ctx, token, data); err != nil {
		return "", err
	}
	return token, nil
}

// Get 读取会话
func (s *MemoryStore) Get(ctx context.Context, token string) (*Data, error) {
	if token == "" {
		return nil, nil
	}
	s.mu.RLock()
	entry, ok := s.entries[token]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, token)
		s.mu.Unlock()
		return nil, nil
	}
	copied := entry.data
	copied.Cart = append([]CartLine(nil), entry.data.Cart...)
	return &copied, nil
}

// Save 写入会话并刷新有效期
func (s *MemoryStore) Save(ctx context.Context, token string, data *Data) error {
	if data == nil {
		return fmt.Errorf("session data is nil")
	}
	stored := *data
	stored.Cart = append([]CartLine(nil), data.Cart...)
	s.mu.Lock()
	s.entries[token] = memoryEntry{data: stored, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

// Delete 删除会话
func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.entries, token)
	s.mu.Unlock()
	return nil
}
