package router

import (
	"context"
	"errors"

	"job-match-go/internal/api/handler"
	"job-match-go/internal/parser"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, matchHandler *handler.MatchHandler) {
	api := h.Group("/api/v1")

	api.POST("/match", func(c context.Context, ctx *app.RequestContext) {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}

		roles := formValues(ctx, "roles")
		if len(roles) == 0 {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "至少需要选择一个目标角色"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()

		resp, err := matchHandler.HandleMatch(c, file, fileHeader.Filename, roles)
		if err != nil {
			ctx.JSON(statusForError(err), utils.H{"error": err.Error()})
			return
		}

		ctx.JSON(consts.StatusOK, resp)
	})

	api.POST("/resume/rewrite", func(c context.Context, ctx *app.RequestContext) {
		var req handler.RewriteRequest
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体格式错误"})
			return
		}

		resp, err := matchHandler.HandleRewrite(c, req)
		if err != nil {
			ctx.JSON(statusForError(err), utils.H{"error": err.Error()})
			return
		}

		ctx.JSON(consts.StatusOK, resp)
	})

	api.GET("/roles", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"roles": matchHandler.Roles()})
	})

	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}

// formValues 读取multipart表单中同名的全部字段值
func formValues(ctx *app.RequestContext, key string) []string {
	form, err := ctx.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	var values []string
	for _, v := range form.Value[key] {
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}

// statusForError 用户输入类错误返回400，其余返回500
func statusForError(err error) int {
	if errors.Is(err, parser.ErrUnsupportedFileType) || errors.Is(err, parser.ErrEmptyDocument) {
		return consts.StatusBadRequest
	}
	return consts.StatusInternalServerError
}
