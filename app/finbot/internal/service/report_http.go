package service

import (
	"context"
	nethttp "net/http"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/finbot/app/finbot/internal/view"
)

const (
	OperationFinBotIndex          = "/finbot.v1.FinBot/Index"
	OperationFinBotGenerateReport = "/finbot.v1.FinBot/GenerateReport"
)

// ReportRequest POST /api/v1/report 请求体
type ReportRequest struct {
	URL string `json:"url"`
}

type ArticleReply struct {
	URL      string `json:"url"`
	Title    string `json:"title,omitempty"`
	Byline   string `json:"byline,omitempty"`
	SiteName string `json:"site_name,omitempty"`
	Excerpt  string `json:"excerpt,omitempty"`
}

type ErrorReply struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// ReportReply 与页面状态一一对应
type ReportReply struct {
	State   string        `json:"state"`
	Warning string        `json:"warning,omitempty"`
	Report  string        `json:"report,omitempty"`
	Model   string        `json:"model,omitempty"`
	Article *ArticleReply `json:"article,omitempty"`
	Error   *ErrorReply   `json:"error,omitempty"`
}

// RegisterFinBotHTTPServer 注册页面、JSON 接口与健康检查
func RegisterFinBotHTTPServer(s *http.Server, srv *FinBotService) {
	// 探活请求不走中间件，避免刷屏访问日志
	s.HandleFunc("/healthz", srv.Healthz)

	r := s.Route("/")
	r.GET("/", _FinBot_Index0_HTTP_Handler(srv))
	r.POST("/", _FinBot_Index0_HTTP_Handler(srv))
	r.POST("/api/v1/report", _FinBot_GenerateReport0_HTTP_Handler(srv))
}

// GET 展示空白页面，POST 提交表单中的 url 并同步生成报告
func _FinBot_Index0_HTTP_Handler(srv *FinBotService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ReportRequest
		submit := ctx.Request().Method == nethttp.MethodPost
		if submit {
			if err := ctx.Request().ParseForm(); err != nil {
				return errors.BadRequest("INVALID_FORM", err.Error())
			}
			in.URL = ctx.Request().PostFormValue("url")
		}
		http.SetOperation(ctx, OperationFinBotIndex)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			if !submit {
				return srv.machine.Idle(), nil
			}
			return srv.machine.Submit(ctx, req.(*ReportRequest).URL), nil
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		srv.render(ctx.Response(), out.(*view.Page))
		return nil
	}
}

func _FinBot_GenerateReport0_HTTP_Handler(srv *FinBotService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ReportRequest
		if err := ctx.Bind(&in); err != nil {
			return errors.BadRequest("INVALID_BODY", err.Error())
		}
		http.SetOperation(ctx, OperationFinBotGenerateReport)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.machine.Submit(ctx, req.(*ReportRequest).URL), nil
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		page := out.(*view.Page)
		return ctx.JSON(statusOf(page), toReportReply(page))
	}
}

func statusOf(page *view.Page) int {
	switch {
	case page.State == view.StateFailed && page.Code > 0:
		return page.Code
	case page.State == view.StateFailed:
		return nethttp.StatusInternalServerError
	case page.Warning != "":
		return nethttp.StatusBadRequest
	default:
		return nethttp.StatusOK
	}
}

func toReportReply(page *view.Page) *ReportReply {
	reply := &ReportReply{
		State:   page.State.String(),
		Warning: page.Warning,
	}
	if page.Report != nil {
		reply.Report = page.Report.Markdown
		reply.Model = page.Report.Model
	}
	if a := page.Article; a != nil {
		reply.Article = &ArticleReply{
			URL:      a.URL,
			Title:    a.Title,
			Byline:   a.Byline,
			SiteName: a.SiteName,
			Excerpt:  a.Excerpt,
		}
	}
	if page.Error != "" {
		reply.Error = &ErrorReply{Reason: page.Reason, Message: page.Error}
	}
	return reply
}
