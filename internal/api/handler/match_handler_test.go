package handler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"job-match-go/internal/catalog"
	"job-match-go/internal/embedding"
	"job-match-go/internal/extractor"
	"job-match-go/internal/parser"
	"job-match-go/internal/pipeline"
	"job-match-go/internal/rewriter"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChatModel 返回固定响应的模拟LLM
type stubChatModel struct {
	response string
}

func (s *stubChatModel) Generate(ctx context.Context, messages []*schema.Message, options ...model.Option) (*schema.Message, error) {
	return &schema.Message{
		Role:    schema.RoleType("assistant"),
		Content: s.response,
	}, nil
}

func (s *stubChatModel) Stream(ctx context.Context, messages []*schema.Message, options ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, nil
}

func (s *stubChatModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return s, nil
}

const handlerCatalogJSON = `[
  {
    "id": 1,
    "title": "Backend Developer",
    "company": "TechCorp",
    "description": "Build backend services",
    "requirements": "python sql docker 3+ years experience",
    "experience": "3+"
  },
  {
    "id": 2,
    "title": "Frontend Developer",
    "company": "WebWorks",
    "description": "Build user interfaces",
    "requirements": "javascript react css",
    "experience": "2+"
  }
]`

const handlerResumeText = `John Doe
Backend engineer with 5 years of experience.

SKILLS
Python, SQL, Docker, Git

EDUCATION
Bachelor of Science in Computer Science`

func newTestHandler(t *testing.T, r *rewriter.ResumeRewriter) *MatchHandler {
	t.Helper()

	catalogPath := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, os.WriteFile(catalogPath, []byte(handlerCatalogJSON), 0644))

	c, err := catalog.Load(catalogPath, []string{"Backend Developer", "Frontend Developer"})
	require.NoError(t, err)

	fileParser, err := parser.NewResumeFileParser(context.Background())
	require.NoError(t, err)

	p := pipeline.NewMatchPipeline(embedding.NewMockEmbedder(64))

	return NewMatchHandler(fileParser, extractor.NewFeatureExtractor(), p, c, r)
}

func newTestRewriter(t *testing.T, response string) *rewriter.ResumeRewriter {
	t.Helper()
	r, err := rewriter.NewResumeRewriter(&stubChatModel{response: response})
	require.NoError(t, err)
	return r
}

func TestHandleMatch(t *testing.T) {
	h := newTestHandler(t, nil)

	resp, err := h.HandleMatch(context.Background(), strings.NewReader(handlerResumeText), "resume.txt", []string{"Backend Developer"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.RequestID)
	require.NotNil(t, resp.Profile)
	assert.Contains(t, resp.Profile.Skills, "Python")
	assert.Equal(t, 5.0, resp.Profile.Years)

	require.Equal(t, 1, resp.Count)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 1, resp.Results[0].Job.ID)
	assert.Greater(t, resp.Results[0].FinalScore, 0.5, "高度吻合的岗位分数应明显偏高")
}

func TestHandleMatch_NoRoles(t *testing.T) {
	h := newTestHandler(t, nil)

	_, err := h.HandleMatch(context.Background(), strings.NewReader(handlerResumeText), "resume.txt", nil)
	assert.Error(t, err)
}

func TestHandleMatch_UnsupportedFile(t *testing.T) {
	h := newTestHandler(t, nil)

	_, err := h.HandleMatch(context.Background(), strings.NewReader("binary"), "resume.docx", []string{"Backend Developer"})
	require.Error(t, err)
	assert.ErrorIs(t, err, parser.ErrUnsupportedFileType)
}

func TestHandleRewrite(t *testing.T) {
	r := newTestRewriter(t, "Optimized resume body\n\n### CHANGES MADE:\n- Emphasized backend experience\n- Added docker keyword")
	h := newTestHandler(t, r)

	resp, err := h.HandleRewrite(context.Background(), RewriteRequest{ResumeText: handlerResumeText, JobID: 1})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, 1, resp.JobID)
	require.True(t, resp.Result.Success)
	assert.Equal(t, "Optimized resume body", resp.Result.OptimizedResume)
	assert.Len(t, resp.Result.Changes, 2)
}

func TestHandleRewrite_DisabledWithoutLLM(t *testing.T) {
	h := newTestHandler(t, nil)

	_, err := h.HandleRewrite(context.Background(), RewriteRequest{ResumeText: handlerResumeText, JobID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "未启用")
}

func TestHandleRewrite_UnknownJob(t *testing.T) {
	r := newTestRewriter(t, "unused")
	h := newTestHandler(t, r)

	_, err := h.HandleRewrite(context.Background(), RewriteRequest{ResumeText: handlerResumeText, JobID: 999})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "岗位不存在")
}

func TestRoles(t *testing.T) {
	h := newTestHandler(t, nil)
	assert.Equal(t, []string{"Backend Developer", "Frontend Developer"}, h.Roles())
}
