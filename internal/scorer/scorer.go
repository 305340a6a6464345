package scorer

import (
	"regexp"
	"strconv"
	"strings"

	"job-match-go/internal/constants"
	"job-match-go/internal/extractor"
	"job-match-go/internal/types"
)

// 基础权重（始终应用），合计1.00
const (
	weightExactSkills   = 0.25
	weightRelatedSkills = 0.15
	weightExperience    = 0.40
	weightSemantic      = 0.20
)

// conditionalWeight 条件权重规则：仅当applies(job)成立时计入对应子分数
// 以有序规则列表建模，使"为什么这项权重是0"可以被直接检查和测试
type conditionalWeight struct {
	name    string
	weight  float64
	applies func(job types.JobPosting) bool
}

var conditionalWeights = []conditionalWeight{
	{
		name:   "education",
		weight: 0.05,
		applies: func(job types.JobPosting) bool {
			return educationLevelOf(job.EducationReq) > 0
		},
	},
	{
		name:   "projects",
		weight: 0.05,
		applies: func(job types.JobPosting) bool {
			return jobWantsProjects(job.ProjectsReq)
		},
	},
}

var firstIntRe = regexp.MustCompile(`\d+`)

// HybridScorer 混合评分器：将语义相似度与规则子分数按权重合成最终分
// 无内部状态，可被任意数量的匹配请求共享
type HybridScorer struct{}

// NewHybridScorer 创建混合评分器
func NewHybridScorer() *HybridScorer {
	return &HybridScorer{}
}

// requiredYearsOf 从岗位经验字符串（如"3+"）解析所需年限，无数字时为0
func requiredYearsOf(experience string) float64 {
	m := firstIntRe.FindString(experience)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

// educationLevelOf 将自由文本映射到学历等级，命中多个关键词时取最高
func educationLevelOf(text string) int {
	textLower := strings.ToLower(text)
	level := 0
	for key, value := range extractor.EducationHierarchy {
		if strings.Contains(textLower, key) && value > level {
			level = value
		}
	}
	return level
}

// jobWantsProjects 岗位是否明确要求项目/作品集
func jobWantsProjects(projectsReq string) bool {
	reqLower := strings.ToLower(projectsReq)
	return strings.Contains(reqLower, "portfolio") || strings.Contains(reqLower, "projects")
}

// exactSkillsScore 候选人技能在岗位要求文本中的精确命中率
// 以技能数的一半为分母归一化：命中一半即可满分，这是刻意的宽松策略
func exactSkillsScore(skillsLower []string, jobReqLower string) (float64, int) {
	matches := 0
	for _, skill := range skillsLower {
		if strings.Contains(jobReqLower, skill) {
			matches++
		}
	}
	total := float64(len(skillsLower))
	if total == 0 {
		total = 1
	}
	denom := total * 0.5
	if denom < 1 {
		denom = 1
	}
	score := float64(matches) / denom
	if score > 1.0 {
		score = 1.0
	}
	return score, matches
}

// relatedSkillsScore 通过同义词表统计相关（非精确）命中
func relatedSkillsScore(skillsLower []string, jobReqLower string) (float64, int) {
	matches := 0
	for _, skill := range skillsLower {
		for key, synonyms := range extractor.SkillSynonyms {
			hit := skill == key
			if !hit {
				for _, syn := range synonyms {
					if skill == syn {
						hit = true
						break
					}
				}
			}
			if hit && strings.Contains(jobReqLower, key) {
				matches++
				break
			}
		}
	}
	total := float64(len(skillsLower))
	if total == 0 {
		total = 1
	}
	denom := total * 0.3
	if denom < 1 {
		denom = 1
	}
	score := float64(matches) / denom
	if score > 1.0 {
		score = 1.0
	}
	return score, matches
}

// smartExperienceScore 智能评分使用的经验阶梯
// 无要求→0.8；达标→1.0；达到70%→0.85；达到50%→0.65；否则按比例
func smartExperienceScore(candidateYears, requiredYears float64) float64 {
	var score float64
	switch {
	case requiredYears == 0:
		score = 0.8
	case candidateYears >= requiredYears:
		score = 1.0
	case candidateYears >= requiredYears*0.7:
		score = 0.85
	case candidateYears >= requiredYears*0.5:
		score = 0.65
	default:
		denom := requiredYears
		if denom < 1 {
			denom = 1
		}
		score = candidateYears / denom
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// smartEducationScore 智能评分使用的学历阶梯（低一级=0.85）
func smartEducationScore(candidateLevel, requiredLevel int) float64 {
	switch {
	case requiredLevel == 0:
		return 0.8
	case candidateLevel >= requiredLevel:
		return 1.0
	case candidateLevel == requiredLevel-1:
		return 0.85
	default:
		return 0.6
	}
}

// CalculateSmartScore 计算混合智能评分
// 六项子分数按固定+条件权重合成，结果截断在[0,1]；
// 每个（简历，岗位）对都重新计算，不跨简历缓存。
func (s *HybridScorer) CalculateSmartScore(profile *types.ResumeProfile, job types.JobPosting, semanticScore float64) types.SmartScore {
	jobReqLower := strings.ToLower(job.Requirements)

	skillsLower := make([]string, len(profile.Skills))
	for i, skill := range profile.Skills {
		skillsLower[i] = strings.ToLower(skill)
	}

	// 1. 精确技能命中
	exactScore, exactMatches := exactSkillsScore(skillsLower, jobReqLower)

	// 2. 同义词相关命中
	relatedScore, relatedMatches := relatedSkillsScore(skillsLower, jobReqLower)

	// 3. 经验对比
	requiredYears := requiredYearsOf(job.Experience)
	candidateYears := profile.Years
	experienceScore := smartExperienceScore(candidateYears, requiredYears)

	// 4. 学历对比（条件项）
	candidateLevel := educationLevelOf(profile.Edu.Level)
	requiredLevel := educationLevelOf(job.EducationReq)
	educationScore := smartEducationScore(candidateLevel, requiredLevel)

	// 5. 项目（条件项）：岗位未要求时给中性的0.7
	var projectsScore float64
	if jobWantsProjects(job.ProjectsReq) {
		if len(profile.Projects) > 0 {
			projectsScore = float64(len(profile.Projects)) / 2.0
			if projectsScore > 1.0 {
				projectsScore = 1.0
			}
		} else {
			projectsScore = 0.4
		}
	} else {
		projectsScore = 0.7
	}

	// 6. 语义相似度直接透传检索阶段的结果
	breakdown := types.SubScores{
		ExactSkills:   exactScore,
		RelatedSkills: relatedScore,
		Experience:    experienceScore,
		Education:     educationScore,
		Projects:      projectsScore,
		Semantic:      semanticScore,
	}

	base := exactScore*weightExactSkills +
		relatedScore*weightRelatedSkills +
		experienceScore*weightExperience +
		semanticScore*weightSemantic

	// 条件权重按规则列表逐条求值
	weights := types.SmartWeights{
		SkillsTotal: weightExactSkills + weightRelatedSkills,
		Experience:  weightExperience,
		Semantic:    weightSemantic,
	}
	conditional := 0.0
	for _, rule := range conditionalWeights {
		if !rule.applies(job) {
			continue
		}
		switch rule.name {
		case "education":
			weights.Education = rule.weight
			conditional += educationScore * rule.weight
		case "projects":
			weights.Projects = rule.weight
			conditional += projectsScore * rule.weight
		}
	}

	finalScore := base + conditional
	if finalScore > 1.0 {
		finalScore = 1.0
	}
	if finalScore < 0 {
		finalScore = 0
	}

	gap := requiredYears - candidateYears
	if gap < 0 {
		gap = 0
	}

	sufficient := true
	if requiredLevel > 0 {
		sufficient = candidateLevel >= requiredLevel
	}

	return types.SmartScore{
		FinalScore:          finalScore,
		Breakdown:           breakdown,
		Weights:             weights,
		ExperienceGap:       gap,
		EducationSufficient: sufficient,
		ExactMatches:        exactMatches,
		RelatedMatches:      relatedMatches,
	}
}

// CalculateDetailedBreakdown 计算展示层使用的四类目加权分解
// 注意：阶梯常数与CalculateSmartScore存在刻意保留的差异
// （如学历低一级此处为0.8而非0.85），二者必须独立演化，不得合并。
func (s *HybridScorer) CalculateDetailedBreakdown(profile *types.ResumeProfile, job types.JobPosting) types.DetailedBreakdown {
	jobReqLower := strings.ToLower(job.Requirements)

	skillsLower := make([]string, len(profile.Skills))
	for i, skill := range profile.Skills {
		skillsLower[i] = strings.ToLower(skill)
	}

	// 1. 技能：与智能评分相同的半数归一化
	skillsScore, skillsMatched := exactSkillsScore(skillsLower, jobReqLower)

	totalSkills := len(skillsLower)
	if totalSkills == 0 {
		totalSkills = 1
	}

	// 2. 学历：低一级=0.8，更低=0.5
	candidateLevel := educationLevelOf(profile.Edu.Level)
	requiredLevel := educationLevelOf(job.EducationReq)

	var educationScore float64
	switch {
	case requiredLevel == 0:
		educationScore = 0.8
	case candidateLevel >= requiredLevel:
		educationScore = 1.0
	case candidateLevel == requiredLevel-1:
		educationScore = 0.8
	default:
		educationScore = 0.5
	}

	// 3. 经验：此处70%档为0.8，且没有50%档
	requiredYears := requiredYearsOf(job.Experience)
	candidateYears := profile.Years

	var experienceScore float64
	switch {
	case requiredYears == 0:
		experienceScore = 0.8
	case candidateYears >= requiredYears:
		experienceScore = 1.0
	case candidateYears >= requiredYears*0.7:
		experienceScore = 0.8
	default:
		denom := requiredYears
		if denom < 1 {
			denom = 1
		}
		experienceScore = candidateYears / denom
	}
	if experienceScore > 1.0 {
		experienceScore = 1.0
	}

	// 4. 项目：未检测到时假定存在一些项目，给0.5
	var projectsScore float64
	if len(profile.Projects) > 0 {
		projectsScore = float64(len(profile.Projects)) / 2.0
		if projectsScore > 1.0 {
			projectsScore = 1.0
		}
	} else {
		projectsScore = 0.5
	}

	overall := skillsScore*0.40 +
		educationScore*0.25 +
		experienceScore*0.25 +
		projectsScore*0.10

	candidateSummary := profile.Edu.Summary
	if candidateSummary == "" {
		candidateSummary = "Not specified"
	}
	requiredEdu := job.EducationReq
	if requiredEdu == "" {
		requiredEdu = "Not specified"
	}
	projectsReq := job.ProjectsReq
	if projectsReq == "" {
		projectsReq = "Portfolio of relevant projects"
	}

	gap := requiredYears - candidateYears
	if gap < 0 {
		gap = 0
	}

	return types.DetailedBreakdown{
		Overall: overall,
		Skills: types.SkillsDetail{
			Score:   skillsScore,
			Matched: skillsMatched,
			Total:   totalSkills,
			Missing: s.IdentifyMissingSkills(profile, job),
		},
		Education: types.EducationDetail{
			Score:          educationScore,
			Candidate:      candidateSummary,
			Required:       requiredEdu,
			CandidateLevel: candidateLevel,
			RequiredLevel:  requiredLevel,
		},
		Experience: types.ExperienceDetail{
			Score:          experienceScore,
			CandidateYears: candidateYears,
			RequiredYears:  requiredYears,
			Gap:            gap,
		},
		Projects: types.ProjectsDetail{
			Score:    projectsScore,
			Count:    len(profile.Projects),
			Required: projectsReq,
		},
	}
}

// IdentifyMissingSkills 找出岗位要求中出现、但候选人技能列表缺失的技能
// 扫描与提取器相同的固定词表，最多返回5项
func (s *HybridScorer) IdentifyMissingSkills(profile *types.ResumeProfile, job types.JobPosting) []string {
	jobReqLower := strings.ToLower(job.Requirements)

	skillsLower := make([]string, len(profile.Skills))
	for i, skill := range profile.Skills {
		skillsLower[i] = strings.ToLower(skill)
	}
	joined := strings.Join(skillsLower, " ")

	var missing []string
	for _, skill := range extractor.SkillVocabulary {
		skillLower := strings.ToLower(skill)
		if strings.Contains(jobReqLower, skillLower) && !strings.Contains(joined, skillLower) {
			missing = append(missing, skill)
			if len(missing) >= constants.MaxMissingSkills {
				break
			}
		}
	}

	return missing
}
