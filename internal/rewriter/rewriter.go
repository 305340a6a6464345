package rewriter

import (
	"context"
	"fmt"
	"strings"

	"job-match-go/internal/constants"
	"job-match-go/internal/logger"
	"job-match-go/internal/types"

	"github.com/cloudwego/eino/components/model"
	einoschema "github.com/cloudwego/eino/schema"
)

// careerCoachSystemPrompt 职业教练对话的系统提示词
const careerCoachSystemPrompt = `You are Orion, an expert AI career coach and advisor. You help job seekers with:

- Resume and cover letter advice
- Interview preparation and tips
- Career planning and job search strategy
- LinkedIn profile optimization
- Salary negotiation
- Networking advice
- Career transitions

Be friendly, supportive, and actionable. Keep responses concise (2-4 paragraphs) unless the user asks for detailed information. Provide specific, practical advice.`

// changesSectionMarker 改写响应中变更列表段落的分隔标记
const changesSectionMarker = "### CHANGES MADE:"

// ResumeRewriter 基于LLM的简历改写与职业建议协作方
//
// 所有改写类操作遵循"永不致命"契约：LLM调用失败时返回
// Success=false的结果而不是错误，匹配流水线不受影响。
type ResumeRewriter struct {
	llmModel model.ToolCallingChatModel
}

// RewriterOption 改写器配置选项
type RewriterOption func(*ResumeRewriter)

// NewResumeRewriter 创建简历改写器
func NewResumeRewriter(llmModel model.ToolCallingChatModel, options ...RewriterOption) (*ResumeRewriter, error) {
	if llmModel == nil {
		return nil, fmt.Errorf("LLM模型不能为空")
	}

	r := &ResumeRewriter{llmModel: llmModel}

	for _, option := range options {
		option(r)
	}

	return r, nil
}

// OptimizeResumeWithDiff 针对特定岗位改写简历并返回变更列表
// LLM故障不会向上抛错：返回Success=false和错误描述，由展示层决定如何提示
func (r *ResumeRewriter) OptimizeResumeWithDiff(ctx context.Context, resumeText string, job types.JobPosting, breakdown types.DetailedBreakdown) types.RewriteResult {
	missing := "None"
	if len(breakdown.Skills.Missing) > 0 {
		missing = strings.Join(breakdown.Skills.Missing, ", ")
	}

	prompt := fmt.Sprintf(`You are an expert resume optimizer. Optimize this resume for the specific job below.

CURRENT RESUME:
%s

TARGET JOB:
Title: %s
Company: %s
Requirements: %s
Description: %s

ANALYSIS:
- Skills Match: %.0f%%
- Education Match: %.0f%%
- Experience Match: %.0f%%
- Projects Match: %.0f%%
- Missing Skills: %s

INSTRUCTIONS:
1. Keep all information truthful - DO NOT fabricate experience or skills
2. Rewrite and reorder to highlight the most relevant experience for THIS job
3. Add keywords from job requirements naturally (for ATS optimization)
4. Quantify achievements where possible (use numbers/metrics)
5. Emphasize skills that match the job requirements
6. Make it ATS-friendly and professional

IMPORTANT: After the optimized resume, add a section called "### CHANGES MADE:" and list 5-7 specific changes you made in bullet points.

Format:
[OPTIMIZED RESUME TEXT HERE]

### CHANGES MADE:
- Changed X to Y to better highlight...
- Added keyword "Z" for ATS optimization...
- Reordered sections to emphasize...
- etc.

Provide the complete optimized resume followed by the changes list.`,
		resumeText,
		job.Title, job.Company, job.Requirements, job.Description,
		breakdown.Skills.Score*100,
		breakdown.Education.Score*100,
		breakdown.Experience.Score*100,
		breakdown.Projects.Score*100,
		missing,
	)

	content, err := r.generate(ctx, "", prompt)
	if err != nil {
		logger.Warn().Err(err).Int("job_id", job.ID).Msg("简历改写LLM调用失败")
		return types.RewriteResult{
			OptimizedResume: "",
			Changes:         []string{},
			Success:         false,
			Error:           err.Error(),
		}
	}

	return parseRewriteResponse(content)
}

// parseRewriteResponse 从LLM响应中分离改写结果与变更列表
// 响应未遵循格式时整段作为简历返回，附单条兜底变更说明
func parseRewriteResponse(content string) types.RewriteResult {
	if !strings.Contains(content, changesSectionMarker) {
		return types.RewriteResult{
			OptimizedResume: content,
			Changes:         []string{"Resume optimized for this position"},
			Success:         true,
		}
	}

	parts := strings.SplitN(content, changesSectionMarker, 2)
	optimized := strings.TrimSpace(parts[0])
	changesSection := strings.TrimSpace(parts[1])

	var changes []string
	for _, line := range strings.Split(changesSection, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "-"):
			changes = append(changes, strings.TrimSpace(line[1:]))
		case strings.HasPrefix(line, "•"):
			changes = append(changes, strings.TrimSpace(strings.TrimPrefix(line, "•")))
		case strings.HasPrefix(line, "#"):
			continue
		default:
			changes = append(changes, line)
		}
	}

	if len(changes) > constants.MaxRewriteChanges {
		changes = changes[:constants.MaxRewriteChanges]
	}

	return types.RewriteResult{
		OptimizedResume: optimized,
		Changes:         changes,
		Success:         true,
	}
}

// ExplainJobFit 生成候选人与岗位匹配原因的分析
func (r *ResumeRewriter) ExplainJobFit(ctx context.Context, profile types.ResumeProfile, desiredRoles []string, job types.JobPosting, matchScore float64) (string, error) {
	title := "Not specified"
	if len(desiredRoles) > 0 {
		title = strings.Join(desiredRoles, ", ")
	}
	skills := "Not specified"
	if len(profile.Skills) > 0 {
		skills = strings.Join(profile.Skills, ", ")
	}

	prompt := fmt.Sprintf(`You are a career advisor AI. Analyze why this candidate matches this job.

CANDIDATE PROFILE:
- Desired Role: %s
- Skills: %s
- Experience: %.1f years

JOB POSTING:
- Title: %s
- Company: %s
- Requirements: %s
- Description: %s

AI MATCH SCORE: %.1f%%

Provide a concise analysis (3-4 paragraphs) covering:
1. **Why This is a Good Match**: Key alignments between candidate and role
2. **Strengths to Highlight**: Top 3-4 specific qualifications that stand out
3. **Potential Gaps**: Any areas where the candidate could strengthen their application (be honest but constructive)
4. **Action Items**: 1-2 specific recommendations for the application/interview

Be encouraging but realistic. Use a professional, friendly tone.`,
		title, skills, profile.Years,
		job.Title, job.Company, job.Requirements, job.Description,
		matchScore*100,
	)

	content, err := r.generate(ctx, "", prompt)
	if err != nil {
		return "", fmt.Errorf("生成岗位匹配分析失败: %w", err)
	}
	return content, nil
}

// QuickTip 返回针对指定岗位的一条面试建议
// LLM失败时退回通用建议而不是报错
func (r *ResumeRewriter) QuickTip(ctx context.Context, jobTitle string) string {
	prompt := fmt.Sprintf(`Give ONE specific, actionable interview tip for someone interviewing for a %s position.

Keep it to 2-3 sentences max. Be practical and specific.`, jobTitle)

	content, err := r.generate(ctx, "", prompt)
	if err != nil {
		logger.Warn().Err(err).Str("job_title", jobTitle).Msg("面试建议LLM调用失败，使用兜底建议")
		return "Prepare specific examples of your past work!"
	}
	return content
}

// CareerChat 职业教练多轮对话
// history为已有的对话消息（不含system），本轮用户消息追加在末尾
func (r *ResumeRewriter) CareerChat(ctx context.Context, userMessage string, history []*einoschema.Message) (string, error) {
	messages := make([]*einoschema.Message, 0, len(history)+2)
	messages = append(messages, einoschema.SystemMessage(careerCoachSystemPrompt))
	messages = append(messages, history...)
	messages = append(messages, einoschema.UserMessage(userMessage))

	response, err := r.llmModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("职业教练对话失败: %w", err)
	}
	if response == nil || response.Content == "" {
		return "", fmt.Errorf("LLM返回了空响应")
	}
	return response.Content, nil
}

// generate 单轮调用，system为空时只发送user消息
func (r *ResumeRewriter) generate(ctx context.Context, system, user string) (string, error) {
	var messages []*einoschema.Message
	if system != "" {
		messages = append(messages, einoschema.SystemMessage(system))
	}
	messages = append(messages, einoschema.UserMessage(user))

	response, err := r.llmModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("LLM调用失败: %w", err)
	}
	if response == nil || response.Content == "" {
		return "", fmt.Errorf("LLM返回了空响应")
	}

	return response.Content, nil
}
