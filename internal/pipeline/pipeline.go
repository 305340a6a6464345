package pipeline

import (
	"context"
	"sort"
	"strings"
	"time"

	"job-match-go/internal/constants"
	"job-match-go/internal/index"
	"job-match-go/internal/logger"
	"job-match-go/internal/scorer"
	"job-match-go/internal/types"
)

// MatchPipeline 匹配流水线：过滤 → 检索 → 评分 → 排序
//
// 流水线本身无状态，评分不依赖历史调用；
// 每次Match为过滤后的岗位集合构建一个新的向量索引。
type MatchPipeline struct {
	embedder    index.TextEmbedder
	scorer      *scorer.HybridScorer
	fingerprint string
	topK        int // 0表示使用过滤后的岗位总数
}

// PipelineOption 流水线配置选项
type PipelineOption func(*MatchPipeline)

// WithTopK 限制语义检索返回的候选数量
// 不在检索结果内的岗位仍会被评分，语义分采用默认值
func WithTopK(topK int) PipelineOption {
	return func(p *MatchPipeline) {
		p.topK = topK
	}
}

// WithModelFingerprint 设置传递给向量索引的模型指纹
func WithModelFingerprint(fingerprint string) PipelineOption {
	return func(p *MatchPipeline) {
		p.fingerprint = fingerprint
	}
}

// NewMatchPipeline 创建匹配流水线
func NewMatchPipeline(embedder index.TextEmbedder, options ...PipelineOption) *MatchPipeline {
	p := &MatchPipeline{
		embedder: embedder,
		scorer:   scorer.NewHybridScorer(),
	}

	for _, option := range options {
		option(p)
	}

	return p
}

// FilterByRoles 按选中角色过滤岗位：角色名是岗位标题的子串（不区分大小写）即保留
func FilterByRoles(jobs []types.JobPosting, selectedRoles []string) []types.JobPosting {
	var filtered []types.JobPosting
	for _, job := range jobs {
		titleLower := strings.ToLower(job.Title)
		for _, role := range selectedRoles {
			if strings.Contains(titleLower, strings.ToLower(role)) {
				filtered = append(filtered, job)
				break
			}
		}
	}
	return filtered
}

// profileText 简历资料的检索文本：期望角色 + 技能 + 简历全文
func profileText(profile *types.ResumeProfile, selectedRoles []string) string {
	return strings.Join([]string{
		strings.Join(selectedRoles, " "),
		strings.Join(profile.Skills, " "),
		profile.FullText,
	}, " ")
}

// Match 对岗位目录执行完整匹配：过滤、语义检索、混合评分、排序
// 过滤后无岗位时返回空列表而不是错误
func (p *MatchPipeline) Match(ctx context.Context, profile *types.ResumeProfile, selectedRoles []string, jobs []types.JobPosting) ([]types.RankedJob, error) {
	start := time.Now()

	filtered := FilterByRoles(jobs, selectedRoles)
	if len(filtered) == 0 {
		logger.Info().
			Strs("roles", selectedRoles).
			Int("catalog_size", len(jobs)).
			Msg("角色过滤后没有候选岗位")
		return []types.RankedJob{}, nil
	}

	idx := index.NewFlatIndex(p.embedder, index.WithFingerprint(p.fingerprint))
	if err := idx.Build(ctx, filtered); err != nil {
		return nil, NewMatchError(StageIndex, err, "构建岗位向量索引")
	}

	topK := p.topK
	if topK <= 0 || topK > len(filtered) {
		topK = len(filtered)
	}

	results, err := idx.Query(ctx, profileText(profile, selectedRoles), topK)
	if err != nil {
		return nil, NewMatchError(StageRetrieve, err, "语义检索")
	}

	// 语义分按岗位ID归位，检索未覆盖的岗位使用默认值
	semanticByID := make(map[int]float64, len(results))
	for _, r := range results {
		semanticByID[r.Job.ID] = r.Similarity
	}

	ranked := make([]types.RankedJob, 0, len(filtered))
	for _, job := range filtered {
		semantic, ok := semanticByID[job.ID]
		if !ok {
			semantic = constants.DefaultSemanticScore
		}

		smart := p.scorer.CalculateSmartScore(profile, job, semantic)
		breakdown := p.scorer.CalculateDetailedBreakdown(profile, job)
		// 展示层的总分以混合评分为准
		breakdown.Overall = smart.FinalScore

		ranked = append(ranked, types.RankedJob{
			Job:        job,
			FinalScore: smart.FinalScore,
			Smart:      smart,
			Breakdown:  breakdown,
		})
	}

	// 分数降序；同分保持过滤后的目录顺序
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].FinalScore > ranked[b].FinalScore
	})

	logger.Info().
		Int("filtered", len(filtered)).
		Int("ranked", len(ranked)).
		Dur("duration", time.Since(start)).
		Msg("匹配流水线执行完成")

	return ranked, nil
}
