package service

import (
	"bytes"
	"embed"
	"html/template"
	nethttp "net/http"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"

	"github.com/iWorld-y/finbot/app/finbot/internal/biz"
	"github.com/iWorld-y/finbot/app/finbot/internal/markdown"
	"github.com/iWorld-y/finbot/app/finbot/internal/view"
)

// ProviderSet is service providers.
var ProviderSet = wire.NewSet(NewFinBotService, markdown.NewRenderer, view.NewMachine,
	wire.Bind(new(view.Analyzer), new(*biz.AnalysisUseCase)))

//go:embed assets/*
var assets embed.FS

var pageTpl = template.Must(template.ParseFS(assets, "assets/index.html"))

// FinBotService 页面与 JSON 接口
type FinBotService struct {
	machine *view.Machine
	md      *markdown.Renderer
	log     *log.Helper
}

func NewFinBotService(machine *view.Machine, md *markdown.Renderer, logger log.Logger) *FinBotService {
	return &FinBotService{
		machine: machine,
		md:      md,
		log:     log.NewHelper(log.With(logger, "module", "service")),
	}
}

// pageData 模板数据
type pageData struct {
	*view.Page
	ReportHTML template.HTML
}

func (s *FinBotService) render(w nethttp.ResponseWriter, page *view.Page) {
	data := pageData{Page: page}
	if page.State == view.StateReported && page.Report != nil {
		data.ReportHTML = s.md.Render(page.Report.Markdown)
	}

	var buf bytes.Buffer
	if err := pageTpl.Execute(&buf, data); err != nil {
		s.log.Errorf("render page: %v", err)
		nethttp.Error(w, "internal error", nethttp.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// Healthz 存活检查
func (s *FinBotService) Healthz(w nethttp.ResponseWriter, _ *nethttp.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
