package index

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"job-match-go/internal/types"

	"github.com/cloudwego/eino/components/embedding"
)

// TextEmbedder 文本向量化接口 (符合 cloudwego/eino 规范)
type TextEmbedder interface {
	// EmbedStrings 将一批文本转换为向量表示
	EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error)

	// GetDimensions 返回嵌入向量的维度
	GetDimensions() int
}

// Result 单条检索结果
type Result struct {
	Job        types.JobPosting
	Similarity float64 // 1/(1+距离)，单调递减于距离，取值(0,1]
}

// FlatIndex 精确L2最近邻的扁平向量索引
//
// 构建后冻结：Build成功返回即视为只读，可被并发查询；
// 需要换模型或换目录时必须创建新实例，不允许原地重建。
// 模型指纹是索引身份的一部分，换模型而不重建会在查询时
// 以维度错误的形式暴露，而不是静默返回错误结果。
type FlatIndex struct {
	embedder    TextEmbedder
	fingerprint string // 模型指纹: 模型名+维度

	jobs      []types.JobPosting
	vectors   [][]float64
	dimension int
	built     bool
}

// Option 索引的配置选项
type Option func(*FlatIndex)

// WithFingerprint 设置模型指纹（通常为 模型名:维度）
// 指纹随索引一起保存，出现维度错误时用于定位配置问题
func WithFingerprint(fingerprint string) Option {
	return func(f *FlatIndex) {
		f.fingerprint = fingerprint
	}
}

// NewFlatIndex 创建一个未构建的扁平索引
func NewFlatIndex(embedder TextEmbedder, options ...Option) *FlatIndex {
	f := &FlatIndex{
		embedder:    embedder,
		fingerprint: fmt.Sprintf("dim=%d", embedder.GetDimensions()),
	}

	for _, option := range options {
		option(f)
	}

	return f
}

// jobEmbeddingText 岗位的嵌入输入文本：标题+公司+描述+要求
func jobEmbeddingText(job types.JobPosting) string {
	return strings.Join([]string{job.Title, job.Company, job.Description, job.Requirements}, " ")
}

// Build 为全部岗位计算嵌入向量并建立索引
// 构建时记录嵌入维度；之后所有查询向量必须与之完全一致。
// 对已构建的索引再次调用返回ErrIndexFrozen。
func (f *FlatIndex) Build(ctx context.Context, jobs []types.JobPosting) error {
	if f.built {
		return fmt.Errorf("重建需要创建新的索引实例: %w", ErrIndexFrozen)
	}

	f.jobs = jobs
	f.vectors = nil
	f.dimension = f.embedder.GetDimensions()

	if len(jobs) == 0 {
		f.built = true
		return nil
	}

	texts := make([]string, len(jobs))
	for i, job := range jobs {
		texts[i] = jobEmbeddingText(job)
	}

	vectors, err := f.embedder.EmbedStrings(ctx, texts)
	if err != nil {
		return fmt.Errorf("计算岗位嵌入向量失败: %w", err)
	}
	if len(vectors) != len(jobs) {
		return fmt.Errorf("嵌入结果数量不符: 期望%d, 实际%d", len(jobs), len(vectors))
	}

	// 维度以第一条向量为准记录，所有向量必须一致
	f.dimension = len(vectors[0])
	for _, vec := range vectors {
		if len(vec) != f.dimension {
			return &DimensionError{
				Expected:    f.dimension,
				Actual:      len(vec),
				Fingerprint: f.fingerprint,
			}
		}
	}

	f.vectors = vectors
	f.built = true
	return nil
}

// Query 对资料文本做最近邻检索，返回最多min(k, 岗位数)条去重结果
// 原始距离d换算为有界相似度 s = 1/(1+d)
func (f *FlatIndex) Query(ctx context.Context, profileText string, topK int) ([]Result, error) {
	if !f.built || len(f.jobs) == 0 {
		return nil, fmt.Errorf("查询前必须先调用Build: %w", ErrIndexNotReady)
	}

	vectors, err := f.embedder.EmbedStrings(ctx, []string{profileText})
	if err != nil {
		return nil, fmt.Errorf("计算资料嵌入向量失败: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("嵌入结果数量不符: 期望1, 实际%d", len(vectors))
	}

	queryVec := vectors[0]
	if len(queryVec) != f.dimension {
		// 配置错误：必须中止查询而不是返回误导性结果
		return nil, &DimensionError{
			Expected:    f.dimension,
			Actual:      len(queryVec),
			Fingerprint: f.fingerprint,
		}
	}

	if topK > len(f.jobs) {
		topK = len(f.jobs)
	}
	if topK <= 0 {
		return []Result{}, nil
	}

	type scored struct {
		idx      int
		distance float64
	}
	distances := make([]scored, len(f.vectors))
	for i, vec := range f.vectors {
		distances[i] = scored{idx: i, distance: l2SquaredDistance(queryVec, vec)}
	}

	// 距离升序，同距离时保持目录顺序，保证排序稳定可复现
	sort.SliceStable(distances, func(a, b int) bool {
		return distances[a].distance < distances[b].distance
	})

	results := make([]Result, 0, topK)
	for _, d := range distances[:topK] {
		results = append(results, Result{
			Job:        f.jobs[d.idx],
			Similarity: 1.0 / (1.0 + d.distance),
		})
	}

	return results, nil
}

// l2SquaredDistance 平方L2距离
// 与相似度换算1/(1+d)组合后保持与真实L2距离相同的排序
func l2SquaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}

// Built 索引是否已构建完成
func (f *FlatIndex) Built() bool {
	return f.built
}

// Dimension 构建时记录的嵌入维度
func (f *FlatIndex) Dimension() int {
	return f.dimension
}

// Size 已索引的岗位数量
func (f *FlatIndex) Size() int {
	return len(f.jobs)
}

// Fingerprint 构建索引使用的模型指纹
func (f *FlatIndex) Fingerprint() string {
	return f.fingerprint
}
