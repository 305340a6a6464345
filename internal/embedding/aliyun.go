package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"job-match-go/internal/config"

	"github.com/cloudwego/eino/components/embedding"
)

// AliyunEmbedder 通过OpenAI兼容端点实现的嵌入服务客户端
type AliyunEmbedder struct {
	apiKey     string
	model      string
	dimensions int
	httpClient *http.Client
	baseURL    string
}

// NewAliyunEmbedder 创建新的阿里云Embedder (OpenAI兼容端点)
func NewAliyunEmbedder(apiKey string, embeddingCfg config.EmbeddingConfig) (*AliyunEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API密钥不能为空")
	}

	model := embeddingCfg.Model
	if model == "" {
		model = "text-embedding-v3"
	}
	dimensions := embeddingCfg.Dimensions
	if dimensions == 0 {
		dimensions = 1024
	}
	baseURL := embeddingCfg.BaseURL
	if baseURL == "" {
		baseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/embeddings"
	}

	return &AliyunEmbedder{
		apiKey:     apiKey,
		model:      model,
		dimensions: dimensions,
		httpClient: &http.Client{},
		baseURL:    baseURL,
	}, nil
}

// GetDimensions 返回嵌入器配置的维度
func (a *AliyunEmbedder) GetDimensions() int {
	return a.dimensions
}

// Model 返回嵌入模型名，用于索引指纹
func (a *AliyunEmbedder) Model() string {
	return a.model
}

// openAIEmbeddingRequest OpenAI兼容的Embedding请求结构
type openAIEmbeddingRequest struct {
	Input          interface{} `json:"input"` // string 或 []string
	Model          string      `json:"model"`
	Dimensions     int         `json:"dimensions,omitempty"`
	EncodingFormat string      `json:"encoding_format,omitempty"`
}

// openAIEmbeddingResponse OpenAI兼容的Embedding响应结构
type openAIEmbeddingResponse struct {
	Object string              `json:"object"`
	Data   []openAIDataEntry   `json:"data"`
	Model  string              `json:"model"`
	Usage  openAIUsage         `json:"usage"`
	ID     string              `json:"id,omitempty"`
	Error  *openAIServiceError `json:"error,omitempty"` // HTTP 200但响应内携带错误
}

type openAIDataEntry struct {
	Object    string    `json:"object"`
	Embedding []float64 `json:"embedding"`
	Index     int       `json:"index"`
}

type openAIUsage struct {
	PromptTokens int `json:"prompt_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

type openAIServiceError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param"`
	Code    string `json:"code"`
}

// EmbedStrings 将文本转换为向量
func (a *AliyunEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	var inputBody interface{}
	if len(texts) == 1 {
		inputBody = texts[0]
	} else {
		inputBody = texts
	}

	reqBody := openAIEmbeddingRequest{
		Input: inputBody,
		Model: a.model,
	}
	// 1024是text-embedding-v3的默认维度，非默认值才显式传递
	if a.dimensions > 0 && a.dimensions != 1024 {
		reqBody.Dimensions = a.dimensions
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("序列化请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送HTTP请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应体失败: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiError openAIServiceError
		if json.Unmarshal(body, &apiError) == nil && apiError.Message != "" {
			return nil, fmt.Errorf("API调用失败, 状态码: %d, 类型: %s, 错误: %s, Code: %s",
				resp.StatusCode, apiError.Type, apiError.Message, apiError.Code)
		}
		return nil, fmt.Errorf("API调用失败, 状态码: %d, 响应: %s", resp.StatusCode, string(body))
	}

	var embeddingResp openAIEmbeddingResponse
	if err := json.Unmarshal(body, &embeddingResp); err != nil {
		return nil, fmt.Errorf("解析OpenAI兼容响应失败: %w, 响应体: %s", err, string(body))
	}

	if embeddingResp.Error != nil && embeddingResp.Error.Message != "" {
		return nil, fmt.Errorf("嵌入API调用失败(响应内错误): 类型: %s, 错误: %s, Code: %s",
			embeddingResp.Error.Type, embeddingResp.Error.Message, embeddingResp.Error.Code)
	}

	if len(embeddingResp.Data) == 0 {
		return nil, fmt.Errorf("API响应不包含嵌入数据, 响应: %s", string(body))
	}

	embeddings := make([][]float64, len(embeddingResp.Data))
	for _, item := range embeddingResp.Data {
		// 按index归位，避免依赖API返回顺序
		if item.Index < 0 || item.Index >= len(embeddings) {
			return nil, fmt.Errorf("嵌入数据索引 %d 超出范围 %d", item.Index, len(embeddings)-1)
		}
		embeddings[item.Index] = item.Embedding
	}

	return embeddings, nil
}
