package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"job-match-go/internal/api/handler"
	"job-match-go/internal/api/router"
	"job-match-go/internal/catalog"
	"job-match-go/internal/config"
	"job-match-go/internal/embedding"
	"job-match-go/internal/extractor"
	"job-match-go/internal/index"
	"job-match-go/internal/llm"
	"job-match-go/internal/logger"
	"job-match-go/internal/parser"
	"job-match-go/internal/pipeline"
	"job-match-go/internal/rewriter"

	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/spf13/pflag"
)

var (
	version     = "1.0.0"        //nolint:gochecknoglobals
	serviceName = "job-match-go" //nolint:gochecknoglobals
)

func main() {
	var configPath string
	var sampleConfigPath string
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径")
	pflag.StringVar(&sampleConfigPath, "sample-config", "", "生成示例配置文件到指定路径后退出")
	pflag.Parse()

	if sampleConfigPath != "" {
		if err := config.CreateSampleConfig(sampleConfigPath); err != nil {
			fmt.Fprintf(os.Stderr, "生成示例配置失败: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("示例配置已写入 %s\n", sampleConfigPath)
		return
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	initLogger(cfg)
	logger.Info().Str("version", version).Msg("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 岗位目录
	jobCatalog, err := catalog.Load(cfg.Catalog.JobsFile, cfg.Catalog.Roles)
	if err != nil {
		logger.Fatal().Err(err).Msg("加载岗位目录失败")
	}

	// 嵌入器（可选Redis缓存装饰）
	embedder, fingerprint, err := buildEmbedder(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化嵌入器失败")
	}

	matchPipeline := pipeline.NewMatchPipeline(embedder,
		pipeline.WithTopK(cfg.TopK),
		pipeline.WithModelFingerprint(fingerprint),
	)

	fileParser, err := parser.NewResumeFileParser(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("创建简历文件解析器失败")
	}

	// 改写器可选：没有API密钥时相关接口返回未启用错误
	resumeRewriter := buildRewriter(cfg)

	matchHandler := handler.NewMatchHandler(
		fileParser,
		extractor.NewFeatureExtractor(),
		matchPipeline,
		jobCatalog,
		resumeRewriter,
	)

	h := server.Default(server.WithHostPorts(cfg.Server.Address))
	router.RegisterRoutes(h, matchHandler)

	go func() {
		if err := h.Run(); err != nil {
			logger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()
	logger.Info().Str("address", cfg.Server.Address).Msg("HTTP服务器已启动")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("接收到终止信号，正在优雅退出...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := h.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("服务器关闭失败")
	}

	logger.Info().Msg("优雅退出完成")
}

// initLogger 初始化zerolog并桥接Hertz的hlog
func initLogger(cfg *config.Config) {
	logger.Init(logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})

	logger.Logger = logger.Logger.With().
		Str("app", serviceName).
		Logger()

	glog.SetLogger(hertzadapter.From(logger.Logger))
}

// buildEmbedder 创建嵌入器，Redis可用时套上缓存装饰器
func buildEmbedder(ctx context.Context, cfg *config.Config) (index.TextEmbedder, string, error) {
	aliyunEmbedder, err := embedding.NewAliyunEmbedder(cfg.Aliyun.APIKey, cfg.Aliyun.Embedding)
	if err != nil {
		return nil, "", err
	}
	fingerprint := fmt.Sprintf("%s:%d", aliyunEmbedder.Model(), aliyunEmbedder.GetDimensions())

	if !cfg.Redis.Enabled {
		return aliyunEmbedder, fingerprint, nil
	}

	client, err := embedding.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		// 缓存是优化而不是依赖，Redis不可用时直连嵌入服务
		logger.Warn().Err(err).Msg("Redis不可用，嵌入缓存已禁用")
		return aliyunEmbedder, fingerprint, nil
	}

	logger.Info().Str("fingerprint", fingerprint).Msg("嵌入缓存已启用")
	return embedding.NewCachedEmbedder(aliyunEmbedder, client, fingerprint), fingerprint, nil
}

// buildRewriter 配置了API密钥时创建LLM改写器，否则返回nil
func buildRewriter(cfg *config.Config) *rewriter.ResumeRewriter {
	if cfg.Aliyun.APIKey == "" {
		logger.Warn().Msg("未配置API密钥，简历改写功能不可用")
		return nil
	}

	chatModel, err := llm.NewQwenChatModel(
		cfg.Aliyun.APIKey,
		cfg.Rewriter.ModelName,
		cfg.Aliyun.APIURL,
		llm.WithTemperature(cfg.Rewriter.Temperature),
		llm.WithMaxTokens(cfg.Rewriter.MaxTokens),
	)
	if err != nil {
		logger.Warn().Err(err).Msg("初始化聊天模型失败，简历改写功能不可用")
		return nil
	}

	r, err := rewriter.NewResumeRewriter(chatModel)
	if err != nil {
		logger.Warn().Err(err).Msg("创建简历改写器失败")
		return nil
	}
	return r
}
