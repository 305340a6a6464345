package constants

import "time"

const (
	// DefaultSemanticScore 岗位未出现在语义检索结果中时使用的中性回退分
	// 注意：这是刻意设计的中性值，不是零分
	DefaultSemanticScore = 0.5

	// DefaultYearsOfExperience 无法从简历中识别工作年限时的启发式默认值
	DefaultYearsOfExperience = 2.0

	// PresentReferenceYear "present"/"current" 年份区间解析的固定参考年
	PresentReferenceYear = 2024

	// MaxProjects 从简历中最多提取的项目数量
	MaxProjects = 5

	// MaxMissingSkills 缺失技能建议的最大数量
	MaxMissingSkills = 5

	// MaxRewriteChanges 简历改写结果中保留的最大变更条目数
	MaxRewriteChanges = 7
)

// 嵌入向量缓存相关常量
const (
	// EmbeddingCachePrefix Redis中嵌入向量缓存的key前缀
	EmbeddingCachePrefix = "embedding:"
	// EmbeddingCacheDuration 嵌入向量缓存的过期时间
	EmbeddingCacheDuration = 7 * 24 * time.Hour
)
