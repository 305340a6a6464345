package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"job-match-go/internal/logger"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

const (
	defaultChatAPIURL    = "https://dashscope.aliyuncs.com/compatible-mode/v1/chat/completions"
	defaultChatModelName = "qwen-plus"
)

// QwenChatModel 通义千问聊天模型客户端 (OpenAI兼容端点)
// 实现 model.ToolCallingChatModel；本应用不使用工具调用，WithTools为透传
type QwenChatModel struct {
	apiKey      string
	modelName   string
	apiURL      string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
}

// QwenOption 聊天模型配置选项
type QwenOption func(*QwenChatModel)

// WithTemperature 设置采样温度
func WithTemperature(temperature float64) QwenOption {
	return func(q *QwenChatModel) {
		q.temperature = temperature
	}
}

// WithMaxTokens 设置响应token上限
func WithMaxTokens(maxTokens int) QwenOption {
	return func(q *QwenChatModel) {
		q.maxTokens = maxTokens
	}
}

// NewQwenChatModel 创建通义千问聊天模型客户端
func NewQwenChatModel(apiKey, modelName, apiURL string, options ...QwenOption) (*QwenChatModel, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("API密钥不能为空")
	}
	if strings.TrimSpace(modelName) == "" {
		modelName = defaultChatModelName
	}
	if strings.TrimSpace(apiURL) == "" {
		apiURL = defaultChatAPIURL
	}

	q := &QwenChatModel{
		apiKey:     apiKey,
		modelName:  modelName,
		apiURL:     apiURL,
		httpClient: &http.Client{},
	}

	for _, option := range options {
		option(q)
	}

	logger.Info().
		Str("api_url", q.apiURL).
		Str("model", q.modelName).
		Msg("通义千问聊天模型客户端就绪")

	return q, nil
}

type chatCompletionRequest struct {
	Model       string            `json:"model"`
	Messages    []*schema.Message `json:"messages"`
	Temperature float64           `json:"temperature,omitempty"`
	MaxTokens   int               `json:"max_tokens,omitempty"`
}

type chatCompletionChoice struct {
	Index        int `json:"index"`
	Message      struct {
		Role    string  `json:"role"`
		Content *string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

type chatCompletionResponse struct {
	ID      string                 `json:"id"`
	Model   string                 `json:"model"`
	Choices []chatCompletionChoice `json:"choices"`
}

// Generate 实现 model.ToolCallingChatModel 接口
func (q *QwenChatModel) Generate(ctx context.Context, messages []*schema.Message, options ...model.Option) (*schema.Message, error) {
	reqPayload := chatCompletionRequest{
		Model:       q.modelName,
		Messages:    messages,
		Temperature: q.temperature,
		MaxTokens:   q.maxTokens,
	}

	jsonData, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, fmt.Errorf("序列化请求体失败: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, q.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+q.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := q.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("发送HTTP请求失败: %w", err)
	}
	defer httpResp.Body.Close()

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应体失败: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API请求失败, 状态 %s: %s", httpResp.Status, string(bodyBytes))
	}

	var resp chatCompletionResponse
	if err := json.Unmarshal(bodyBytes, &resp); err != nil {
		return nil, fmt.Errorf("反序列化API响应失败: %w, 响应体: %s", err, string(bodyBytes))
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("API响应不包含choices: %s", string(bodyBytes))
	}

	apiMessage := resp.Choices[0].Message
	content := ""
	if apiMessage.Content != nil {
		content = *apiMessage.Content
	}

	role := schema.RoleType(apiMessage.Role)
	if role == "" {
		role = schema.Assistant
	}

	return &schema.Message{
		Role:    role,
		Content: content,
	}, nil
}

// Stream 实现 model.ToolCallingChatModel 接口
// 当前所有调用方都使用同步Generate，流式暂未实现
func (q *QwenChatModel) Stream(ctx context.Context, messages []*schema.Message, options ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, fmt.Errorf("QwenChatModel的Stream方法未实现")
}

// WithTools 实现 model.ToolCallingChatModel 接口
// 本应用不绑定工具，直接返回自身
func (q *QwenChatModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	if len(tools) > 0 {
		logger.Warn().Int("tools", len(tools)).Msg("QwenChatModel不支持工具调用，忽略绑定请求")
	}
	return q, nil
}

var _ model.ToolCallingChatModel = (*QwenChatModel)(nil)
