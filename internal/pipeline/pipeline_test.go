package pipeline

import (
	"context"
	"errors"
	"testing"

	"job-match-go/internal/constants"
	"job-match-go/internal/embedding"
	"job-match-go/internal/types"

	einoembedding "github.com/cloudwego/eino/components/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogFixture() []types.JobPosting {
	return []types.JobPosting{
		{
			ID:           1,
			Title:        "Backend Developer",
			Company:      "TechCorp",
			Description:  "Build backend services",
			Requirements: "python sql docker 3+ years",
			Experience:   "3+",
		},
		{
			ID:           2,
			Title:        "Senior Backend Developer",
			Company:      "CloudBase",
			Description:  "Lead backend development",
			Requirements: "python go kubernetes 7+ years",
			Experience:   "7+",
		},
		{
			ID:           3,
			Title:        "Frontend Developer",
			Company:      "WebWorks",
			Description:  "Build user interfaces",
			Requirements: "javascript react css",
			Experience:   "2+",
		},
		{
			ID:           4,
			Title:        "Data Scientist",
			Company:      "DataLab",
			Description:  "Machine learning models",
			Requirements: "python pandas statistics",
			Experience:   "2+",
		},
	}
}

func profileFixture() *types.ResumeProfile {
	return &types.ResumeProfile{
		Skills:   []string{"Python", "SQL", "Docker"},
		Edu:      types.Education{Level: "bachelor", Summary: "bachelor in Computer Science"},
		Years:    5,
		FullText: "Backend developer with python sql docker experience over 5 years",
	}
}

func TestFilterByRoles(t *testing.T) {
	jobs := catalogFixture()

	filtered := FilterByRoles(jobs, []string{"backend developer"})
	require.Len(t, filtered, 2, "子串匹配应同时命中Backend和Senior Backend")
	assert.Equal(t, 1, filtered[0].ID)
	assert.Equal(t, 2, filtered[1].ID)

	filtered = FilterByRoles(jobs, []string{"FRONTEND DEVELOPER"})
	require.Len(t, filtered, 1, "角色匹配必须不区分大小写")
	assert.Equal(t, 3, filtered[0].ID)

	// 一个岗位命中多个角色时只保留一次
	filtered = FilterByRoles(jobs, []string{"Backend Developer", "Developer"})
	assert.Len(t, filtered, 3)
}

func TestMatch_EmptyFilter(t *testing.T) {
	p := NewMatchPipeline(embedding.NewMockEmbedder(64))

	ranked, err := p.Match(context.Background(), profileFixture(), []string{"Astronaut"}, catalogFixture())

	require.NoError(t, err, "过滤后为空不是错误")
	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)
}

func TestMatch_RanksAllFilteredJobs(t *testing.T) {
	p := NewMatchPipeline(embedding.NewMockEmbedder(64))

	ranked, err := p.Match(context.Background(), profileFixture(), []string{"Developer"}, catalogFixture())
	require.NoError(t, err)
	require.Len(t, ranked, 3, "过滤命中的岗位全部参与评分")

	for i, r := range ranked {
		assert.GreaterOrEqual(t, r.FinalScore, 0.0)
		assert.LessOrEqual(t, r.FinalScore, 1.0)
		assert.Equal(t, r.FinalScore, r.Smart.FinalScore)
		assert.Equal(t, r.FinalScore, r.Breakdown.Overall, "展示分解的总分必须被混合评分覆盖")
		if i > 0 {
			assert.LessOrEqual(t, r.FinalScore, ranked[i-1].FinalScore, "结果必须按分数降序")
		}
	}

	// 技能和经验高度吻合的岗位应排在前面
	assert.Equal(t, 1, ranked[0].Job.ID)
}

func TestMatch_DefaultSemanticForUncoveredJobs(t *testing.T) {
	// topK=1时只有一个岗位能拿到检索语义分，其余使用默认值
	p := NewMatchPipeline(embedding.NewMockEmbedder(64), WithTopK(1))

	ranked, err := p.Match(context.Background(), profileFixture(), []string{"Developer"}, catalogFixture())
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	defaults := 0
	for _, r := range ranked {
		if r.Smart.Breakdown.Semantic == constants.DefaultSemanticScore {
			defaults++
		}
	}
	assert.Equal(t, 2, defaults, "检索未覆盖的岗位语义分应为默认值")
}

func TestMatch_DeterministicOrdering(t *testing.T) {
	p := NewMatchPipeline(embedding.NewMockEmbedder(64))

	run := func() []int {
		ranked, err := p.Match(context.Background(), profileFixture(), []string{"Developer"}, catalogFixture())
		require.NoError(t, err)
		ids := make([]int, len(ranked))
		for i, r := range ranked {
			ids[i] = r.Job.ID
		}
		return ids
	}

	first := run()
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, run(), "相同输入必须产生相同排名")
	}
}

// failingEmbedder 始终返回错误的嵌入器
type failingEmbedder struct{}

func (f *failingEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...einoembedding.Option) ([][]float64, error) {
	return nil, errors.New("embedding service unavailable")
}

func (f *failingEmbedder) GetDimensions() int { return 64 }

func TestMatch_IndexBuildFailure(t *testing.T) {
	p := NewMatchPipeline(&failingEmbedder{})

	_, err := p.Match(context.Background(), profileFixture(), []string{"Developer"}, catalogFixture())

	require.Error(t, err)
	matchErr, ok := IsMatchError(err)
	require.True(t, ok, "错误应为结构化的MatchError")
	assert.Equal(t, StageIndex, matchErr.Stage)
}
