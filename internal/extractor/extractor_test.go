package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `John Doe
Senior Backend Engineer

SKILLS
Python, Go, Docker, Kubernetes, PostgreSQL, Redis

EXPERIENCE
Backend Engineer at Acme Corp, 2018-2023
5 years experience building distributed systems with Python and Go.

EDUCATION
Master's in Computer Science from State University

PROJECTS
Payment Gateway - built a high throughput payment gateway handling 10k TPS
Log Pipeline: developed a streaming log pipeline with Kafka and Spark
`

func TestExtractSkills(t *testing.T) {
	e := NewFeatureExtractor()

	skills := e.ExtractSkills(sampleResume)
	require.NotEmpty(t, skills, "样例简历应提取出技能")

	assert.Contains(t, skills, "Python")
	assert.Contains(t, skills, "Go")
	assert.Contains(t, skills, "Docker")
	assert.Contains(t, skills, "Kubernetes")
	assert.Contains(t, skills, "PostgreSQL")
	assert.Contains(t, skills, "Redis")

	// 未出现的技能不应被提取
	assert.NotContains(t, skills, "Rust")
}

func TestExtractSkillsWholeWord(t *testing.T) {
	e := NewFeatureExtractor()

	// "Going"中的"Go"不是整词，不应命中
	skills := e.ExtractSkills("Going forward we will use Java.")
	assert.NotContains(t, skills, "Go")
	assert.Contains(t, skills, "Java")
}

func TestExtractSkillsCaseInsensitiveDedup(t *testing.T) {
	e := NewFeatureExtractor()

	skills := e.ExtractSkills("Python and python and PYTHON")

	count := 0
	for _, s := range skills {
		if strings.EqualFold(s, "python") {
			count++
		}
	}
	assert.Equal(t, 1, count, "大小写不同的同一技能只应保留一条")
	assert.Contains(t, skills, "Python", "应保留词表中的规范写法")
}

func TestExtractSkillsVocabularyOrder(t *testing.T) {
	e := NewFeatureExtractor()

	// 文本顺序与词表顺序相反，结果应仍按词表顺序
	skills := e.ExtractSkills("Docker before Java before Python")
	require.Len(t, skills, 3)
	assert.Equal(t, []string{"Python", "Java", "Docker"}, skills)
}

func TestExtractEducation(t *testing.T) {
	e := NewFeatureExtractor()

	edu := e.ExtractEducation(sampleResume)
	assert.Equal(t, "Master's", edu.Level)
	assert.Equal(t, "Computer Science", edu.Field)
	assert.Equal(t, "Master's in Computer Science", edu.Summary)
}

func TestExtractEducationHighestWins(t *testing.T) {
	e := NewFeatureExtractor()

	// 同时出现学士和博士时取最高学历
	edu := e.ExtractEducation("Bachelor of Science, later earned PhD in Physics")
	assert.Equal(t, "PhD", edu.Level)
}

func TestExtractEducationFallback(t *testing.T) {
	e := NewFeatureExtractor()

	edu := e.ExtractEducation("no relevant content here")
	assert.Empty(t, edu.Level)
	assert.Empty(t, edu.Field)
	assert.Equal(t, "Education details from resume", edu.Summary)
}

func TestExtractYearsExplicitPhrase(t *testing.T) {
	e := NewFeatureExtractor()

	assert.Equal(t, 5.0, e.ExtractYears("I have 5 years experience in backend"))
	assert.Equal(t, 3.0, e.ExtractYears("3+ yrs exp with Python"))
	assert.Equal(t, 7.0, e.ExtractYears("Experience: 7 years"))
	assert.Equal(t, 4.0, e.ExtractYears("4 years in data engineering"))
}

func TestExtractYearsDateRange(t *testing.T) {
	e := NewFeatureExtractor()

	assert.Equal(t, 5.0, e.ExtractYears("Acme Corp 2018-2023"))
	// present按固定参考年2024解析
	assert.Equal(t, 4.0, e.ExtractYears("Acme Corp 2020-present"))
	assert.Equal(t, 4.0, e.ExtractYears("Acme Corp 2020 - Current"))
}

func TestExtractYearsTakesMax(t *testing.T) {
	e := NewFeatureExtractor()

	// 同时存在短任职时长和长总区间时取最大值
	years := e.ExtractYears("2 years experience at current role, previously 2015-2023 at Acme")
	assert.Equal(t, 8.0, years)
}

func TestExtractYearsDefault(t *testing.T) {
	e := NewFeatureExtractor()

	// 未命中任何模式时返回启发式默认值2.0，而非0
	assert.Equal(t, 2.0, e.ExtractYears("no experience information at all"))
	assert.Equal(t, 2.0, e.ExtractYears(""))
}

func TestExtractYearsNeverNegative(t *testing.T) {
	e := NewFeatureExtractor()

	texts := []string{
		sampleResume,
		"",
		"2023-2020 reversed range",
		"garbage ~~~ 0 years experience",
	}
	for _, text := range texts {
		assert.GreaterOrEqual(t, e.ExtractYears(text), 0.0, "年限不应为负: %q", text)
	}
}

func TestExtractProjectsFromSection(t *testing.T) {
	e := NewFeatureExtractor()

	projects := e.ExtractProjects(sampleResume)
	require.Len(t, projects, 2)
	assert.Equal(t, "Payment Gateway", projects[0].Title)
	assert.Equal(t, "Log Pipeline", projects[1].Title)
}

func TestExtractProjectsIndicatorFallback(t *testing.T) {
	e := NewFeatureExtractor()

	// 没有显式项目章节，通过动词识别
	text := "Summary\nBuilt a recommendation engine for e-commerce search\nDeployed containerized services to Kubernetes clusters\n"
	projects := e.ExtractProjects(text)
	require.NotEmpty(t, projects)
}

func TestExtractProjectsCappedAtFive(t *testing.T) {
	e := NewFeatureExtractor()

	var sb strings.Builder
	sb.WriteString("PROJECTS\n")
	for i := 0; i < 10; i++ {
		sb.WriteString("Service Alpha - built yet another microservice for the platform\n")
	}
	projects := e.ExtractProjects(sb.String())
	assert.LessOrEqual(t, len(projects), 5, "项目数量不应超过5条")
}

func TestExtractProjectsTruncatesDescription(t *testing.T) {
	e := NewFeatureExtractor()

	long := "PROJECTS\nData Platform - " + strings.Repeat("x", 200) + "\n"
	projects := e.ExtractProjects(long)
	require.Len(t, projects, 1)
	assert.True(t, strings.HasSuffix(projects[0].Description, "..."), "超长描述应被截断并带省略标记")
	assert.Len(t, []rune(projects[0].Description), 103)
}

func TestParseResumeIdempotent(t *testing.T) {
	e := NewFeatureExtractor()

	first := e.ParseResume(sampleResume)
	second := e.ParseResume(sampleResume)

	assert.Equal(t, first, second, "相同输入的两次解析结果必须一致")
	assert.Equal(t, sampleResume, first.FullText, "原始文本应完整保留")
}

func TestParseResumeEmptyInput(t *testing.T) {
	e := NewFeatureExtractor()

	profile := e.ParseResume("")
	assert.Empty(t, profile.Skills)
	assert.Empty(t, profile.Edu.Level)
	assert.Equal(t, 2.0, profile.Years)
	assert.Empty(t, profile.Projects)
}
