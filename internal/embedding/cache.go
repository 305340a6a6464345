package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"job-match-go/internal/config"
	"job-match-go/internal/constants"
	"job-match-go/internal/logger"

	einoembedding "github.com/cloudwego/eino/components/embedding"
	"github.com/redis/go-redis/v9"
)

// Embedder 嵌入器的最小接口，缓存装饰器对其包装
type Embedder interface {
	EmbedStrings(ctx context.Context, texts []string, opts ...einoembedding.Option) ([][]float64, error)
	GetDimensions() int
}

// CachedEmbedder Redis缓存装饰器
//
// 缓存key包含模型指纹（模型名+维度），换模型后旧向量自动失效，
// 不会出现"新索引读到旧模型向量"的静默污染。
// Redis不可用时降级为直接调用内层嵌入器：缓存是优化，不是依赖。
type CachedEmbedder struct {
	inner       Embedder
	client      *redis.Client
	fingerprint string
	ttl         time.Duration
}

// NewCachedEmbedder 创建缓存装饰器
// client为nil时所有调用直接透传给内层嵌入器
func NewCachedEmbedder(inner Embedder, client *redis.Client, fingerprint string) *CachedEmbedder {
	return &CachedEmbedder{
		inner:       inner,
		client:      client,
		fingerprint: fingerprint,
		ttl:         constants.EmbeddingCacheDuration,
	}
}

// NewRedisClient 按配置创建Redis客户端并验证连通性
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("连接Redis失败 (%s): %w", cfg.Address, err)
	}

	return client, nil
}

// GetDimensions 返回内层嵌入器的维度
func (c *CachedEmbedder) GetDimensions() int {
	return c.inner.GetDimensions()
}

// cacheKey 指纹+文本哈希构成缓存key
func (c *CachedEmbedder) cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return constants.EmbeddingCachePrefix + c.fingerprint + ":" + hex.EncodeToString(sum[:])
}

// EmbedStrings 先查缓存，仅对未命中的文本调用内层嵌入器
func (c *CachedEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...einoembedding.Option) ([][]float64, error) {
	if c.client == nil || len(texts) == 0 {
		return c.inner.EmbedStrings(ctx, texts, opts...)
	}

	results := make([][]float64, len(texts))
	var missIdx []int
	var missTexts []string

	for i, text := range texts {
		vec, err := c.get(ctx, c.cacheKey(text))
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				// 缓存读取故障只记日志，不影响嵌入流程
				logger.Warn().Err(err).Msg("读取嵌入缓存失败，回退到嵌入服务")
			}
			missIdx = append(missIdx, i)
			missTexts = append(missTexts, text)
			continue
		}
		results[i] = vec
	}

	if len(missTexts) == 0 {
		return results, nil
	}

	computed, err := c.inner.EmbedStrings(ctx, missTexts, opts...)
	if err != nil {
		return nil, err
	}
	if len(computed) != len(missTexts) {
		return nil, fmt.Errorf("嵌入结果数量不符: 期望%d, 实际%d", len(missTexts), len(computed))
	}

	for j, idx := range missIdx {
		results[idx] = computed[j]
		if err := c.put(ctx, c.cacheKey(texts[idx]), computed[j]); err != nil {
			logger.Warn().Err(err).Msg("写入嵌入缓存失败")
		}
	}

	return results, nil
}

func (c *CachedEmbedder) get(ctx context.Context, key string) ([]float64, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}
	var vec []float64
	if err := json.Unmarshal(data, &vec); err != nil {
		return nil, fmt.Errorf("反序列化缓存向量失败: %w", err)
	}
	return vec, nil
}

func (c *CachedEmbedder) put(ctx context.Context, key string, vec []float64) error {
	data, err := json.Marshal(vec)
	if err != nil {
		return fmt.Errorf("序列化向量失败: %w", err)
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}
