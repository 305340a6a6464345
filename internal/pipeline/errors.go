package pipeline

import (
	"errors"
	"fmt"
)

// 流水线阶段标识，用于错误定位
const (
	StageFilter   = "FILTER"
	StageIndex    = "INDEX"
	StageRetrieve = "RETRIEVE"
	StageScore    = "SCORE"
)

// MatchError 匹配流水线的结构化错误
type MatchError struct {
	Stage   string // 出错的流水线阶段
	Err     error  // 原始错误
	Message string // 补充说明
}

func (e *MatchError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("匹配流水线[%s]失败: %s: %v", e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("匹配流水线[%s]失败: %v", e.Stage, e.Err)
}

func (e *MatchError) Unwrap() error {
	return e.Err
}

// NewMatchError 创建流水线错误
func NewMatchError(stage string, err error, message string) *MatchError {
	return &MatchError{
		Stage:   stage,
		Err:     err,
		Message: message,
	}
}

// IsMatchError 判断是否为流水线错误并返回具体类型
func IsMatchError(err error) (*MatchError, bool) {
	var matchErr *MatchError
	if errors.As(err, &matchErr) {
		return matchErr, true
	}
	return nil, false
}
