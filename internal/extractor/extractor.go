package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"job-match-go/internal/constants"
	"job-match-go/internal/types"
)

// FeatureExtractor 基于规则的简历特征提取器
// 完全离线、确定性，不涉及任何LLM调用；同一输入永远得到同一输出。
// 所有提取方法在未命中时返回空值/默认值，不返回错误。
type FeatureExtractor struct {
	skillPatterns      []skillPattern
	experiencePatterns []*regexp.Regexp
	dateRangePattern   *regexp.Regexp
}

type skillPattern struct {
	name string // 词表中的原始写法
	re   *regexp.Regexp
}

var (
	educationStartRe = regexp.MustCompile(`(?i)\b(education|academic|qualifications)\b`)
	educationEndRe   = regexp.MustCompile(`(?i)\b(experience|skills|projects|work history)\b`)
	fieldOfStudyRe   = regexp.MustCompile(`(?i)in\s+([A-Za-z\s]+?)(?:\s+from|\s+at|\s*,|\s*\n|$)`)

	projectsStartRe = regexp.MustCompile(`(?i)\b(projects?|portfolio|work samples)\b`)
	projectsEndRe   = regexp.MustCompile(`(?i)\b(experience|education|skills|work history)\b`)
	projectTitleRe  = regexp.MustCompile(`^[•\-*]?\s*([A-Za-z0-9\s\-:]+?)(?:\s*[-–]|\s*:|\s*\(|$)`)
)

// NewFeatureExtractor 创建特征提取器，所有正则在此一次性编译
func NewFeatureExtractor() *FeatureExtractor {
	e := &FeatureExtractor{}

	for _, skill := range SkillVocabulary {
		// 整词匹配，大小写不敏感（对小写文本匹配小写词）
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(skill)) + `\b`)
		e.skillPatterns = append(e.skillPatterns, skillPattern{name: skill, re: re})
	}

	for _, p := range []string{
		`(\d+)\+?\s*years?(?:\s+of)?\s+(?:experience|exp)`,
		`(\d+)\+?\s*yrs?(?:\s+of)?\s+(?:experience|exp)`,
		`experience[:\s]+(\d+)\+?\s*years?`,
		`(\d+)\+?\s*years?\s+in`,
	} {
		e.experiencePatterns = append(e.experiencePatterns, regexp.MustCompile(`(?i)`+p))
	}

	e.dateRangePattern = regexp.MustCompile(`(?i)(20\d{2})\s*[-–]\s*(20\d{2}|present|current)`)

	return e
}

// ExtractSkills 通过词表整词匹配提取技能
// 保持词表顺序，大小写不敏感去重，保留首次出现的写法
func (e *FeatureExtractor) ExtractSkills(resumeText string) []string {
	textLower := strings.ToLower(resumeText)

	var found []string
	for _, sp := range e.skillPatterns {
		if sp.re.MatchString(textLower) {
			found = append(found, sp.name)
		}
	}

	seen := make(map[string]struct{}, len(found))
	unique := make([]string, 0, len(found))
	for _, skill := range found {
		key := strings.ToLower(skill)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, skill)
	}

	return unique
}

// ExtractEducation 通过章节定位 + 模式匹配提取教育信息
// 未找到教育章节时退回到全文扫描
func (e *FeatureExtractor) ExtractEducation(resumeText string) types.Education {
	var edu types.Education

	// 逐行定位教育章节：从章节标题行开始，到下一个主要章节标题行结束
	var sectionLines []string
	inEducation := false
	for _, line := range strings.Split(resumeText, "\n") {
		lineLower := strings.ToLower(line)

		if educationStartRe.MatchString(lineLower) {
			inEducation = true
			continue
		}
		if inEducation && educationEndRe.MatchString(lineLower) {
			break
		}
		if inEducation {
			sectionLines = append(sectionLines, line)
		}
	}

	educationText := resumeText
	if len(sectionLines) > 0 {
		educationText = strings.Join(sectionLines, " ")
	}

	// 词表按学历从高到低排列，取第一个命中项即为最高学历
	for _, level := range EducationLevels {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(level) + `\b`)
		loc := re.FindStringIndex(educationText)
		if loc == nil {
			continue
		}
		edu.Level = level

		// 在命中位置后的100个字符内尝试提取专业方向
		end := loc[0] + 100
		if end > len(educationText) {
			end = len(educationText)
		}
		context := educationText[loc[0]:end]
		if m := fieldOfStudyRe.FindStringSubmatch(context); m != nil {
			edu.Field = strings.TrimSpace(m[1])
		}
		break
	}

	switch {
	case edu.Level != "" && edu.Field != "":
		edu.Summary = edu.Level + " in " + edu.Field
	case edu.Level != "":
		edu.Summary = edu.Level
	default:
		edu.Summary = "Education details from resume"
	}

	return edu
}

// ExtractYears 从两类信号中提取工作年限并取最大值：
// (a) 显式表述，如 "5 years experience"、"experience: 3 years"
// (b) 年份区间，如 "2018-2023"、"2020-present"（present按固定参考年解析）
// 取最大值是刻意策略：简历常同时写某段任职时长和更长的总区间，
// 取最大避免低估，代价是可能高估。未命中任何信号时返回默认值2.0。
func (e *FeatureExtractor) ExtractYears(resumeText string) float64 {
	var years []float64

	for _, re := range e.experiencePatterns {
		for _, m := range re.FindAllStringSubmatch(resumeText, -1) {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				years = append(years, v)
			}
		}
	}

	for _, m := range e.dateRangePattern.FindAllStringSubmatch(resumeText, -1) {
		start, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		end := constants.PresentReferenceYear
		if endStr := strings.ToLower(m[2]); endStr != "present" && endStr != "current" {
			end, err = strconv.Atoi(m[2])
			if err != nil {
				continue
			}
		}
		years = append(years, float64(end-start))
	}

	if len(years) == 0 {
		return constants.DefaultYearsOfExperience
	}

	max := years[0]
	for _, y := range years[1:] {
		if y > max {
			max = y
		}
	}
	if max < 0 {
		return 0
	}
	return max
}

// ExtractProjects 提取项目条目，最多返回5条
// 优先使用显式的项目章节；没有时退回到按动词逐行识别
func (e *FeatureExtractor) ExtractProjects(resumeText string) []types.Project {
	lines := strings.Split(resumeText, "\n")

	var sectionLines []string
	inProjects := false
	for _, line := range lines {
		lineLower := strings.ToLower(strings.TrimSpace(line))

		if projectsStartRe.MatchString(lineLower) {
			inProjects = true
			continue
		}
		if inProjects && projectsEndRe.MatchString(lineLower) {
			break
		}
		if inProjects && strings.TrimSpace(line) != "" {
			sectionLines = append(sectionLines, line)
		}
	}

	// 无显式章节时扫描指示动词
	if len(sectionLines) == 0 {
		for _, line := range lines {
			lineLower := strings.ToLower(line)
			for _, indicator := range projectIndicators {
				if strings.Contains(lineLower, indicator) && len(line) > 20 {
					sectionLines = append(sectionLines, line)
					break
				}
			}
		}
	}

	limit := len(sectionLines)
	if limit > constants.MaxProjects {
		limit = constants.MaxProjects
	}

	var projects []types.Project
	for _, line := range sectionLines[:limit] {
		line = strings.TrimSpace(line)
		if len(line) <= 10 {
			continue
		}
		m := projectTitleRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		description := line
		if runes := []rune(line); len(runes) > 100 {
			description = string(runes[:100]) + "..."
		}
		projects = append(projects, types.Project{
			Title:       strings.TrimSpace(m[1]),
			Description: description,
		})
	}

	return projects
}

// ParseResume 运行全部提取器并打包结果
// 纯函数：相同输入文本产生相同的ResumeProfile
func (e *FeatureExtractor) ParseResume(resumeText string) *types.ResumeProfile {
	return &types.ResumeProfile{
		Skills:   e.ExtractSkills(resumeText),
		Edu:      e.ExtractEducation(resumeText),
		Years:    e.ExtractYears(resumeText),
		Projects: e.ExtractProjects(resumeText),
		FullText: resumeText,
	}
}
