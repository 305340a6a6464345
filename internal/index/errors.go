package index

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	// ErrIndexNotReady 在Build完成之前发起查询
	ErrIndexNotReady = errors.New("向量索引尚未构建")
	// ErrDimensionMismatch 查询向量维度与索引构建时记录的维度不一致
	// 属于配置错误：通常是换了嵌入模型却没有重建索引
	ErrDimensionMismatch = errors.New("向量维度不匹配")
	// ErrIndexFrozen 对已构建的索引再次调用Build
	// 重建必须创建新的索引实例，不允许原地修改
	ErrIndexFrozen = errors.New("索引已构建且冻结")
)

// DimensionError 携带维度详情的配置错误
type DimensionError struct {
	Expected    int    // 索引记录的维度
	Actual      int    // 实际得到的维度
	Fingerprint string // 构建索引时的模型指纹
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: 期望%d维, 实际%d维 (索引模型指纹: %s)",
		ErrDimensionMismatch, e.Expected, e.Actual, e.Fingerprint)
}

func (e *DimensionError) Unwrap() error {
	return ErrDimensionMismatch
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *DimensionError) Is(target error) bool {
	return errors.Is(ErrDimensionMismatch, target)
}
