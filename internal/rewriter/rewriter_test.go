package rewriter

import (
	"context"
	"errors"
	"strings"
	"testing"

	"job-match-go/internal/types"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRewriteLLM 返回预设响应的模拟LLM
type MockRewriteLLM struct {
	mockResponse string
	mockErr      error
	received     []*schema.Message
}

// Generate 实现model.ToolCallingChatModel接口
func (m *MockRewriteLLM) Generate(ctx context.Context, messages []*schema.Message, options ...model.Option) (*schema.Message, error) {
	m.received = append(m.received, messages...)
	if m.mockErr != nil {
		return nil, m.mockErr
	}
	return &schema.Message{
		Role:    schema.RoleType("assistant"),
		Content: m.mockResponse,
	}, nil
}

// Stream 实现model.ToolCallingChatModel接口
func (m *MockRewriteLLM) Stream(ctx context.Context, messages []*schema.Message, options ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, nil
}

// WithTools 实现model.ToolCallingChatModel接口
func (m *MockRewriteLLM) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return m, nil
}

func testJob() types.JobPosting {
	return types.JobPosting{
		ID:           1,
		Title:        "Backend Developer",
		Company:      "TechCorp",
		Requirements: "python sql docker",
		Description:  "Build backend services",
	}
}

func testBreakdown() types.DetailedBreakdown {
	return types.DetailedBreakdown{
		Skills:     types.SkillsDetail{Score: 0.6, Missing: []string{"docker", "aws"}},
		Education:  types.EducationDetail{Score: 1.0},
		Experience: types.ExperienceDetail{Score: 0.8},
		Projects:   types.ProjectsDetail{Score: 0.5},
	}
}

func TestNewResumeRewriter_NilModel(t *testing.T) {
	_, err := NewResumeRewriter(nil)
	assert.Error(t, err, "空模型必须被拒绝")
}

func TestOptimizeResumeWithDiff_ParsesChanges(t *testing.T) {
	llm := &MockRewriteLLM{mockResponse: `John Doe
Senior Backend Developer with Python and SQL expertise.

### CHANGES MADE:
- Changed title to match the target role
- Added keyword "docker" for ATS optimization
• Reordered sections to emphasize backend work
- Quantified the database migration achievement`}

	r, err := NewResumeRewriter(llm)
	require.NoError(t, err)

	result := r.OptimizeResumeWithDiff(context.Background(), "John Doe\nDeveloper", testJob(), testBreakdown())

	require.True(t, result.Success)
	assert.Empty(t, result.Error)
	assert.Contains(t, result.OptimizedResume, "Senior Backend Developer")
	assert.NotContains(t, result.OptimizedResume, "CHANGES MADE", "变更段落不应混入简历正文")
	require.Len(t, result.Changes, 4)
	assert.Equal(t, "Changed title to match the target role", result.Changes[0])
	assert.Equal(t, "Reordered sections to emphasize backend work", result.Changes[2])
}

func TestOptimizeResumeWithDiff_CapsChanges(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("Optimized resume text\n\n### CHANGES MADE:\n")
	for i := 0; i < 12; i++ {
		sb.WriteString("- change item\n")
	}
	llm := &MockRewriteLLM{mockResponse: sb.String()}

	r, err := NewResumeRewriter(llm)
	require.NoError(t, err)

	result := r.OptimizeResumeWithDiff(context.Background(), "resume", testJob(), testBreakdown())

	require.True(t, result.Success)
	assert.Len(t, result.Changes, 7, "变更列表最多保留7条")
}

func TestOptimizeResumeWithDiff_FormatFallback(t *testing.T) {
	// LLM没有按格式输出变更段落
	llm := &MockRewriteLLM{mockResponse: "Just the optimized resume without any marker"}

	r, err := NewResumeRewriter(llm)
	require.NoError(t, err)

	result := r.OptimizeResumeWithDiff(context.Background(), "resume", testJob(), testBreakdown())

	require.True(t, result.Success)
	assert.Equal(t, "Just the optimized resume without any marker", result.OptimizedResume)
	assert.Equal(t, []string{"Resume optimized for this position"}, result.Changes)
}

func TestOptimizeResumeWithDiff_LLMFailureNeverFatal(t *testing.T) {
	llm := &MockRewriteLLM{mockErr: errors.New("connection refused")}

	r, err := NewResumeRewriter(llm)
	require.NoError(t, err)

	result := r.OptimizeResumeWithDiff(context.Background(), "resume", testJob(), testBreakdown())

	assert.False(t, result.Success)
	assert.Empty(t, result.OptimizedResume)
	assert.Empty(t, result.Changes)
	assert.Contains(t, result.Error, "connection refused")
}

func TestExplainJobFit(t *testing.T) {
	llm := &MockRewriteLLM{mockResponse: "Strong match on Python and SQL."}

	r, err := NewResumeRewriter(llm)
	require.NoError(t, err)

	profile := types.ResumeProfile{
		Skills: []string{"python", "sql"},
		Years:  5,
	}
	analysis, err := r.ExplainJobFit(context.Background(), profile, []string{"Backend Developer"}, testJob(), 0.87)

	require.NoError(t, err)
	assert.Equal(t, "Strong match on Python and SQL.", analysis)

	// 提示词包含角色、技能和百分比形式的分数
	require.NotEmpty(t, llm.received)
	prompt := llm.received[len(llm.received)-1].Content
	assert.Contains(t, prompt, "Backend Developer")
	assert.Contains(t, prompt, "python, sql")
	assert.Contains(t, prompt, "87.0%")
}

func TestQuickTip_FallbackOnError(t *testing.T) {
	llm := &MockRewriteLLM{mockErr: errors.New("timeout")}

	r, err := NewResumeRewriter(llm)
	require.NoError(t, err)

	tip := r.QuickTip(context.Background(), "Data Scientist")
	assert.Equal(t, "Prepare specific examples of your past work!", tip)
}

func TestCareerChat_IncludesSystemAndHistory(t *testing.T) {
	llm := &MockRewriteLLM{mockResponse: "Focus on quantifying your impact."}

	r, err := NewResumeRewriter(llm)
	require.NoError(t, err)

	history := []*schema.Message{
		schema.UserMessage("How do I improve my resume?"),
		schema.AssistantMessage("Start with a strong summary.", nil),
	}
	reply, err := r.CareerChat(context.Background(), "What about the skills section?", history)

	require.NoError(t, err)
	assert.Equal(t, "Focus on quantifying your impact.", reply)

	require.Len(t, llm.received, 4, "应包含system+两条历史+本轮用户消息")
	assert.Equal(t, schema.System, llm.received[0].Role)
	assert.Contains(t, llm.received[0].Content, "Orion")
	assert.Equal(t, "What about the skills section?", llm.received[3].Content)
}
