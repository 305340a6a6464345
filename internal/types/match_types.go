package types

// JobPosting 岗位目录条目，加载后只读
type JobPosting struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Company         string `json:"company"`
	Location        string `json:"location"`
	Salary          string `json:"salary"`
	Type            string `json:"type"`
	Description     string `json:"description"`
	Requirements    string `json:"requirements"` // 同时用于嵌入文本和关键词扫描
	Experience      string `json:"experience"`   // 例如 "3+"，解析为所需年限
	EducationReq    string `json:"education_required"`
	ProjectsReq     string `json:"projects_required"`
	VisaSponsorship bool   `json:"visa_sponsorship"`
}

// Education 从简历中提取的教育信息
type Education struct {
	Level   string `json:"level"`   // 检测到的最高学历关键词，可能为空
	Field   string `json:"field"`   // 推断的专业方向，可选
	Summary string `json:"summary"` // 人类可读的组合描述
}

// Project 从简历中提取的项目条目
type Project struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ResumeProfile 简历解析结果，每次解析整体重建
type ResumeProfile struct {
	Skills   []string  `json:"skills"` // 规范化技能名，保持插入顺序，大小写不敏感去重
	Edu      Education `json:"education"`
	Years    float64   `json:"years_of_experience"` // 非负；无法识别时为启发式默认值2.0
	Projects []Project `json:"projects"`            // 最多5条
	FullText string    `json:"full_text"`           // 保留的原始简历文本
}

// SubScores 智能评分的六项子分数，均在[0,1]内
type SubScores struct {
	ExactSkills   float64 `json:"exact_skills"`
	RelatedSkills float64 `json:"related_skills"`
	Experience    float64 `json:"experience"`
	Education     float64 `json:"education"`
	Projects      float64 `json:"projects"`
	Semantic      float64 `json:"semantic"`
}

// SmartWeights 智能评分实际应用的权重，条件项未触发时为0
type SmartWeights struct {
	SkillsTotal float64 `json:"skills_total"` // 精确 + 相关
	Experience  float64 `json:"experience"`
	Semantic    float64 `json:"semantic"`
	Education   float64 `json:"education"` // 条件权重
	Projects    float64 `json:"projects"`  // 条件权重
}

// SmartScore 混合评分结果，每个（简历，岗位）对重新计算
type SmartScore struct {
	FinalScore          float64      `json:"final_score"` // [0,1]，已截断
	Breakdown           SubScores    `json:"breakdown"`
	Weights             SmartWeights `json:"weights"`
	ExperienceGap       float64      `json:"experience_gap"` // max(0, 所需年限-候选人年限)
	EducationSufficient bool         `json:"education_sufficient"`
	ExactMatches        int          `json:"exact_matches"`
	RelatedMatches      int          `json:"related_matches"`
}

// SkillsDetail 详细分解中的技能类目
type SkillsDetail struct {
	Score   float64  `json:"score"`
	Matched int      `json:"matched"`
	Total   int      `json:"total"`
	Missing []string `json:"missing"`
}

// EducationDetail 详细分解中的教育类目
type EducationDetail struct {
	Score          float64 `json:"score"`
	Candidate      string  `json:"candidate"`
	Required       string  `json:"required"`
	CandidateLevel int     `json:"candidate_level"`
	RequiredLevel  int     `json:"required_level"`
}

// ExperienceDetail 详细分解中的经验类目
type ExperienceDetail struct {
	Score          float64 `json:"score"`
	CandidateYears float64 `json:"candidate_years"`
	RequiredYears  float64 `json:"required_years"`
	Gap            float64 `json:"gap"`
}

// ProjectsDetail 详细分解中的项目类目
type ProjectsDetail struct {
	Score    float64 `json:"score"`
	Count    int     `json:"count"`
	Required string  `json:"required"`
}

// DetailedBreakdown 独立于智能评分的四类目加权分解，供展示层使用
// 注意：它与SmartScore使用不同的分数阶梯，二者必须保持为两个独立函数
type DetailedBreakdown struct {
	Overall    float64          `json:"overall"`
	Skills     SkillsDetail     `json:"skills"`
	Education  EducationDetail  `json:"education"`
	Experience ExperienceDetail `json:"experience"`
	Projects   ProjectsDetail   `json:"projects"`
}

// RankedJob 匹配流水线的单条输出
type RankedJob struct {
	Job        JobPosting        `json:"job"`
	FinalScore float64           `json:"final_score"`
	Smart      SmartScore        `json:"smart_score"`
	Breakdown  DetailedBreakdown `json:"breakdown"` // Overall已被智能评分覆盖
}

// RewriteResult AI简历改写协作方的返回契约
type RewriteResult struct {
	OptimizedResume string   `json:"optimized_resume"`
	Changes         []string `json:"changes"`
	Success         bool     `json:"success"`
	Error           string   `json:"error,omitempty"`
}
