package extractor

// SkillVocabulary 固定的技能词表，匹配时保持此处顺序
// 顺序即归并时的先后次序，调整顺序会改变输出排序
var SkillVocabulary = []string{
	// 编程语言
	"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Ruby", "Go", "Rust", "PHP",
	"Swift", "Kotlin", "R", "Scala", "Perl", "MATLAB", "C", "Objective-C",

	// Web技术
	"React", "Angular", "Vue", "Vue.js", "Node.js", "Django", "Flask", "Spring", "Express",
	"HTML", "CSS", "SASS", "LESS", "Bootstrap", "Tailwind", "REST", "GraphQL", "WebSocket",
	"Next.js", "Nuxt.js", "jQuery", "Redux", "MobX",

	// 数据库
	"SQL", "MySQL", "PostgreSQL", "MongoDB", "Redis", "Cassandra", "DynamoDB",
	"Oracle", "SQLite", "ElasticSearch", "Neo4j", "CouchDB", "MariaDB",

	// 云与DevOps
	"AWS", "Azure", "GCP", "Google Cloud", "Docker", "Kubernetes", "K8s", "Jenkins",
	"GitLab", "CI/CD", "Terraform", "Ansible", "Chef", "Puppet", "Linux", "Git",
	"GitHub", "Bitbucket", "CircleCI", "Travis CI",

	// 机器学习与数据科学
	"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch", "Keras", "scikit-learn",
	"NLP", "Natural Language Processing", "Computer Vision", "Neural Networks",
	"Data Science", "Pandas", "NumPy", "Spark", "Hadoop", "Tableau", "Power BI",
	"MLOps", "AI", "Artificial Intelligence", "Data Mining", "Statistical Analysis",

	// 移动端
	"iOS", "Android", "React Native", "Flutter", "SwiftUI", "UIKit",

	// 测试
	"Testing", "Unit Testing", "Integration Testing", "Jest", "Mocha", "Pytest",
	"Selenium", "Cypress", "JUnit", "TestNG",

	// 其他
	"Agile", "Scrum", "Microservices", "API", "RESTful API", "Serverless",
	"Blockchain", "Solidity", "Web3",
}

// EducationLevels 学历关键词，按最高学历在前排序
// 提取时取命中的第一项，因此顺序决定"最高学历优先"
var EducationLevels = []string{
	"PhD", "Ph.D", "Doctorate", "Masters", "Master's", "MS", "M.S", "MBA",
	"Bachelor", "Bachelor's", "BS", "B.S", "BA", "B.A", "Associate", "Diploma",
}

// EducationHierarchy 学历关键词到等级的映射 (博士=5 … 专科文凭=1)
// 供评分器对候选人与岗位要求做同一尺度比较
var EducationHierarchy = map[string]int{
	"phd": 5, "ph.d": 5, "doctorate": 5,
	"masters": 4, "master's": 4, "ms": 4, "m.s": 4, "mba": 4,
	"bachelor": 3, "bachelor's": 3, "bs": 3, "b.s": 3, "ba": 3,
	"associate": 2,
	"diploma":   1,
}

// SkillSynonyms 相关技能同义词表，key为规范名
var SkillSynonyms = map[string][]string{
	"python":           {"py", "python3"},
	"javascript":       {"js", "typescript", "ts"},
	"machine learning": {"ml", "deep learning", "dl", "ai"},
	"react":            {"reactjs", "react.js"},
	"node":             {"nodejs", "node.js"},
	"tensorflow":       {"tf"},
	"pytorch":          {"torch"},
	"kubernetes":       {"k8s"},
}

// projectIndicators 无显式项目章节时用于逐行识别项目的动词
var projectIndicators = []string{
	"project", "built", "developed", "created", "designed", "implemented",
	"deployed", "launched", "architected", "led",
}
