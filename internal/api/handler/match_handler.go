package handler

import (
	"context"
	"fmt"
	"io"
	"time"

	"job-match-go/internal/catalog"
	"job-match-go/internal/extractor"
	"job-match-go/internal/logger"
	"job-match-go/internal/parser"
	"job-match-go/internal/pipeline"
	"job-match-go/internal/rewriter"
	"job-match-go/internal/scorer"
	"job-match-go/internal/types"

	"github.com/google/uuid"
)

// MatchHandler 匹配处理器，协调简历解析和匹配流水线
type MatchHandler struct {
	fileParser *parser.ResumeFileParser
	extractor  *extractor.FeatureExtractor
	pipeline   *pipeline.MatchPipeline
	catalog    *catalog.Catalog
	scorer     *scorer.HybridScorer
	rewriter   *rewriter.ResumeRewriter // 可选，未配置LLM时为nil
}

// NewMatchHandler 创建匹配处理器
func NewMatchHandler(
	fileParser *parser.ResumeFileParser,
	featureExtractor *extractor.FeatureExtractor,
	matchPipeline *pipeline.MatchPipeline,
	jobCatalog *catalog.Catalog,
	resumeRewriter *rewriter.ResumeRewriter,
) *MatchHandler {
	return &MatchHandler{
		fileParser: fileParser,
		extractor:  featureExtractor,
		pipeline:   matchPipeline,
		catalog:    jobCatalog,
		scorer:     scorer.NewHybridScorer(),
		rewriter:   resumeRewriter,
	}
}

// MatchResponse 匹配请求的响应
type MatchResponse struct {
	RequestID string               `json:"request_id"`
	Profile   *types.ResumeProfile `json:"profile"`
	Results   []types.RankedJob    `json:"results"`
	Count     int                  `json:"count"`
}

// HandleMatch 处理简历上传并执行完整匹配
func (h *MatchHandler) HandleMatch(ctx context.Context, reader io.Reader, filename string, selectedRoles []string) (*MatchResponse, error) {
	requestID := uuid.NewString()
	start := time.Now()

	if len(selectedRoles) == 0 {
		return nil, fmt.Errorf("至少需要选择一个目标角色")
	}

	resumeText, err := h.fileParser.Parse(ctx, reader, filename)
	if err != nil {
		return nil, fmt.Errorf("提取简历文本失败: %w", err)
	}

	profile := h.extractor.ParseResume(resumeText)

	results, err := h.pipeline.Match(ctx, profile, selectedRoles, h.catalog.Jobs())
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("request_id", requestID).
		Str("filename", filename).
		Strs("roles", selectedRoles).
		Int("results", len(results)).
		Dur("duration", time.Since(start)).
		Msg("匹配请求处理完成")

	return &MatchResponse{
		RequestID: requestID,
		Profile:   profile,
		Results:   results,
		Count:     len(results),
	}, nil
}

// RewriteRequest 简历改写请求体
type RewriteRequest struct {
	ResumeText string `json:"resume_text"`
	JobID      int    `json:"job_id"`
}

// RewriteResponse 简历改写响应
type RewriteResponse struct {
	RequestID string              `json:"request_id"`
	JobID     int                 `json:"job_id"`
	Result    types.RewriteResult `json:"result"`
}

// HandleRewrite 针对指定岗位改写简历文本
func (h *MatchHandler) HandleRewrite(ctx context.Context, req RewriteRequest) (*RewriteResponse, error) {
	if h.rewriter == nil {
		return nil, fmt.Errorf("简历改写功能未启用: 缺少LLM配置")
	}
	if req.ResumeText == "" {
		return nil, fmt.Errorf("简历文本不能为空")
	}

	job, err := h.findJob(req.JobID)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	profile := h.extractor.ParseResume(req.ResumeText)
	breakdown := h.scorer.CalculateDetailedBreakdown(profile, job)

	result := h.rewriter.OptimizeResumeWithDiff(ctx, req.ResumeText, job, breakdown)

	logger.Info().
		Str("request_id", requestID).
		Int("job_id", req.JobID).
		Bool("success", result.Success).
		Int("changes", len(result.Changes)).
		Msg("简历改写请求处理完成")

	return &RewriteResponse{
		RequestID: requestID,
		JobID:     req.JobID,
		Result:    result,
	}, nil
}

// Roles 返回可选的角色列表
func (h *MatchHandler) Roles() []string {
	return h.catalog.Roles()
}

func (h *MatchHandler) findJob(jobID int) (types.JobPosting, error) {
	for _, job := range h.catalog.Jobs() {
		if job.ID == jobID {
			return job, nil
		}
	}
	return types.JobPosting{}, fmt.Errorf("岗位不存在: id=%d", jobID)
}
