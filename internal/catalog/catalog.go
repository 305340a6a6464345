package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"job-match-go/internal/logger"
	"job-match-go/internal/types"
)

// Catalog 岗位目录，加载后只读
// 匹配流水线对目录做角色过滤和检索，但从不修改目录内容。
type Catalog struct {
	jobs  []types.JobPosting
	roles []string
}

// Load 从JSON文件加载岗位目录
func Load(jobsFile string, roles []string) (*Catalog, error) {
	data, err := os.ReadFile(jobsFile)
	if err != nil {
		return nil, fmt.Errorf("读取岗位目录文件失败 (%s): %w", jobsFile, err)
	}

	var jobs []types.JobPosting
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("解析岗位目录JSON失败 (%s): %w", jobsFile, err)
	}

	for i, job := range jobs {
		if job.Title == "" {
			return nil, fmt.Errorf("岗位目录第%d条(id=%d)缺少title字段", i, job.ID)
		}
	}

	logger.Info().
		Str("file", jobsFile).
		Int("jobs", len(jobs)).
		Int("roles", len(roles)).
		Msg("岗位目录加载完成")

	return &Catalog{jobs: jobs, roles: roles}, nil
}

// Jobs 返回全部岗位的副本，调用方修改副本不影响目录
func (c *Catalog) Jobs() []types.JobPosting {
	out := make([]types.JobPosting, len(c.jobs))
	copy(out, c.jobs)
	return out
}

// Roles 返回可选的角色过滤列表
func (c *Catalog) Roles() []string {
	out := make([]string, len(c.roles))
	copy(out, c.roles)
	return out
}

// Size 岗位数量
func (c *Catalog) Size() int {
	return len(c.jobs)
}
