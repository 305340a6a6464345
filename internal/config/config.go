package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EmbeddingConfig 嵌入服务配置 (OpenAI兼容端点)
type EmbeddingConfig struct {
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	BaseURL    string `yaml:"base_url"`
}

// AliyunConfig 阿里云API配置
type AliyunConfig struct {
	APIKey    string          `yaml:"api_key"`
	APIURL    string          `yaml:"api_url"`
	Model     string          `yaml:"model"`     // 默认聊天模型
	Embedding EmbeddingConfig `yaml:"embedding"` // Embedding专用配置
}

// RedisConfig Redis嵌入缓存配置
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"` // 未启用时流水线直接调用嵌入服务
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// 连接池设置
	PoolSize     int `yaml:"pool_size"`
	MinIdleConns int `yaml:"min_idle_conns"`
	// 超时设置
	DialTimeoutSeconds  int `yaml:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"`
}

// CatalogConfig 岗位目录配置
type CatalogConfig struct {
	JobsFile string   `yaml:"jobs_file"` // 岗位目录JSON文件路径
	Roles    []string `yaml:"roles"`     // 预定义的可选岗位角色列表
}

// RewriterConfig 简历改写器（LLM协作方）配置
type RewriterConfig struct {
	ModelName        string  `yaml:"modelName"`
	Temperature      float64 `yaml:"temperature"`
	MaxTokens        int     `yaml:"maxTokens"`
	RewriteTimeout   string  `yaml:"rewriteTimeout"` // 例如 "60s"
	MaxRetries       int     `yaml:"maxRetries"`
	RetryWaitSeconds int     `yaml:"retryWaitSeconds"`
}

// ServerConfig HTTP服务配置
type ServerConfig struct {
	Address string `yaml:"address"` // 例如 ":8080"
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // 时间格式
	ReportCaller bool   `yaml:"report_caller"` // 是否报告调用位置
}

// Config 应用程序配置
type Config struct {
	Aliyun   AliyunConfig   `yaml:"aliyun"`
	Redis    RedisConfig    `yaml:"redis"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Rewriter RewriterConfig `yaml:"rewriter"`
	Server   ServerConfig   `yaml:"server"`
	Logger   LoggerConfig   `yaml:"logger"`

	// TopK 语义检索返回的候选数量，0表示使用过滤后的岗位总数
	TopK int `yaml:"top_k"`
}

// LoadConfig 从文件加载配置
func LoadConfig(configPath string) (*Config, error) {
	// 如果未指定配置文件路径，则尝试在常见位置查找
	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			"./config.yaml",
			"../config.yaml",
			filepath.Join(os.Getenv("HOME"), ".job-match", "config.yaml"),
		}

		execPath, err := os.Executable()
		if err == nil {
			execDir := filepath.Dir(execPath)
			searchPaths = append(searchPaths, filepath.Join(execDir, "config.yaml"))
		}

		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}

		// 仍找不到时，测试环境下返回默认配置
		if configPath == "" {
			if inTestEnv() {
				return createDefaultConfig(), nil
			}
			configPath = "config.yaml"
		}
	}

	if _, err := os.Stat(configPath); err != nil {
		if inTestEnv() {
			return createDefaultConfig(), nil
		}
		return nil, fmt.Errorf("配置文件不存在: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 从环境变量覆盖配置（如果存在）
	if envKey := os.Getenv("ALIYUN_API_KEY"); envKey != "" {
		config.Aliyun.APIKey = envKey
	}
	if envURL := os.Getenv("ALIYUN_API_URL"); envURL != "" {
		config.Aliyun.APIURL = envURL
	}
	if envModel := os.Getenv("ALIYUN_MODEL"); envModel != "" {
		config.Aliyun.Model = envModel
	}

	applyDefaults(&config)

	return &config, nil
}

// inTestEnv 粗略检测是否运行在go test环境中
func inTestEnv() bool {
	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			return true
		}
	}
	return false
}

// applyDefaults 填充缺失的默认值
func applyDefaults(config *Config) {
	if config.Server.Address == "" {
		config.Server.Address = ":8080"
	}
	if config.Aliyun.Embedding.Model == "" {
		config.Aliyun.Embedding.Model = "text-embedding-v3"
	}
	if config.Aliyun.Embedding.Dimensions == 0 {
		config.Aliyun.Embedding.Dimensions = 1024
	}
	if config.Aliyun.Embedding.BaseURL == "" {
		config.Aliyun.Embedding.BaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/embeddings"
	}
	if config.Catalog.JobsFile == "" {
		config.Catalog.JobsFile = "data/jobs.json"
	}
	if len(config.Catalog.Roles) == 0 {
		config.Catalog.Roles = defaultRoles()
	}
	if config.Rewriter.ModelName == "" {
		config.Rewriter.ModelName = config.Aliyun.Model
	}
	if config.Rewriter.RewriteTimeout == "" {
		config.Rewriter.RewriteTimeout = "60s"
	}
}

// defaultRoles 预定义的角色过滤列表
func defaultRoles() []string {
	return []string{
		"Machine Learning Engineer",
		"ML Engineer",
		"Software Engineer",
		"Senior Software Engineer",
		"Data Scientist",
		"Senior Data Scientist",
		"Frontend Developer",
		"Backend Developer",
		"Full Stack Developer",
		"DevOps Engineer",
		"Data Engineer",
		"AI/ML Researcher",
		"Product Manager - Tech",
		"Cloud Engineer",
		"Mobile Developer (iOS/Android)",
	}
}

// createDefaultConfig 创建默认配置，用于测试环境
func createDefaultConfig() *Config {
	config := &Config{}
	config.Aliyun.APIURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/chat/completions"
	config.Aliyun.Model = "qwen-turbo"

	// Redis默认配置（测试环境默认关闭缓存）
	config.Redis.Enabled = false
	config.Redis.Address = "localhost:6379"
	config.Redis.PoolSize = 10
	config.Redis.MinIdleConns = 2
	config.Redis.DialTimeoutSeconds = 5
	config.Redis.ReadTimeoutSeconds = 3
	config.Redis.WriteTimeoutSeconds = 3

	// 日志默认配置
	config.Logger.Level = "info"
	config.Logger.Format = "pretty"
	config.Logger.TimeFormat = "2006-01-02 15:04:05"
	config.Logger.ReportCaller = true

	if envKey := os.Getenv("ALIYUN_API_KEY"); envKey != "" {
		config.Aliyun.APIKey = envKey
	} else {
		config.Aliyun.APIKey = "test_api_key"
	}

	applyDefaults(config)

	return config
}

// CreateSampleConfig 创建一个示例配置文件
func CreateSampleConfig(filePath string) error {
	if _, err := os.Stat(filePath); err == nil {
		return fmt.Errorf("文件 '%s' 已存在，不会覆盖", filePath)
	}

	config := createDefaultConfig()

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("写入示例配置文件 '%s' 失败: %w", filePath, err)
	}

	return nil
}

// GetDuration 解析配置中的时长字符串，失败时返回默认值
func GetDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	if durationStr == "" {
		return defaultDuration
	}
	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return defaultDuration
	}
	return d
}
