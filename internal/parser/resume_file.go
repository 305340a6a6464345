package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"job-match-go/internal/logger"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoparser "github.com/cloudwego/eino/components/document/parser"
)

// ErrUnsupportedFileType 文件扩展名不在支持列表内
// 属于可恢复的用户输入错误，调用方应提示用户换文件而不是中止服务
var ErrUnsupportedFileType = errors.New("不支持的文件类型")

// ErrEmptyDocument 文件解析成功但没有任何文本内容
var ErrEmptyDocument = errors.New("文件不包含可提取的文本")

// ResumeFileParser 简历文件文本提取器，支持PDF和纯文本
type ResumeFileParser struct {
	pdfParser *pdf.PDFParser
	timeout   time.Duration
}

// ResumeFileOption 解析器配置选项
type ResumeFileOption func(*ResumeFileParser)

// WithParseTimeout 设置单个文件的解析超时
func WithParseTimeout(timeout time.Duration) ResumeFileOption {
	return func(p *ResumeFileParser) {
		p.timeout = timeout
	}
}

// NewResumeFileParser 创建简历文件解析器
// PDF解析配置为不按页分割，整份文档作为单个连续文本返回
func NewResumeFileParser(ctx context.Context, options ...ResumeFileOption) (*ResumeFileParser, error) {
	pdfParser, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: false,
	})
	if err != nil {
		return nil, fmt.Errorf("创建PDF解析器失败: %w", err)
	}

	p := &ResumeFileParser{
		pdfParser: pdfParser,
		timeout:   30 * time.Second,
	}

	for _, option := range options {
		option(p)
	}

	return p, nil
}

// Parse 按文件名扩展识别格式并提取文本
// 支持 .pdf 和 .txt；其他扩展名返回ErrUnsupportedFileType
func (p *ResumeFileParser) Parse(ctx context.Context, reader io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".pdf":
		return p.parsePDF(ctx, reader, filename)
	case ".txt":
		return p.parseText(reader, filename)
	default:
		return "", fmt.Errorf("扩展名 %q: %w", ext, ErrUnsupportedFileType)
	}
}

// ParseFile 打开文件并提取文本
func (p *ResumeFileParser) ParseFile(ctx context.Context, filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("打开简历文件失败 (%s): %w", filePath, err)
	}
	defer file.Close()

	return p.Parse(ctx, file, filePath)
}

func (p *ResumeFileParser) parsePDF(ctx context.Context, reader io.Reader, filename string) (string, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	docs, err := p.pdfParser.Parse(ctx, reader, einoparser.WithURI(filename))
	if err != nil {
		return "", fmt.Errorf("PDF解析失败 (%s): %w", filename, err)
	}
	if len(docs) == 0 {
		return "", fmt.Errorf("%s: %w", filename, ErrEmptyDocument)
	}

	// ToPages=false时正常只返回一个文档，多文档时合并
	var builder strings.Builder
	for _, doc := range docs {
		builder.WriteString(doc.Content)
	}
	text := builder.String()

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s: %w", filename, ErrEmptyDocument)
	}

	logger.Debug().
		Str("file", filename).
		Int("chars", len(text)).
		Dur("duration", time.Since(start)).
		Msg("PDF文本提取完成")

	return text, nil
}

func (p *ResumeFileParser) parseText(reader io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("读取文本文件失败 (%s): %w", filename, err)
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("文件 %s 不是有效的UTF-8文本", filename)
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s: %w", filename, ErrEmptyDocument)
	}

	return text, nil
}
