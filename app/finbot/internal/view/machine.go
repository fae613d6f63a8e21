// Package view 页面状态机，与具体渲染方式无关。
package view

import (
	"context"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/finbot/app/finbot/internal/biz"
)

// State 页面状态
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReported
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReported:
		return "reported"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MsgSuccess 报告生成成功提示
const MsgSuccess = "Report generated successfully!"

// Page 一次提交结束后页面需要展示的全部内容
type Page struct {
	State   State
	URL     string
	Warning string
	Error   string
	Reason  string
	Code    int
	Success string
	Article *biz.ArticleContent
	Report  *biz.AnalysisReport
}

// Analyzer 执行分析流水线
type Analyzer interface {
	Analyze(ctx context.Context, req biz.ArticleRequest) (*biz.Analysis, error)
}

// Machine Idle → Loading → Reported / Failed。
// 不保存任何跨请求状态，每次 Submit 都是独立的一次运行。
type Machine struct {
	analyzer Analyzer
	observe  func(from, to State)
	log      *log.Helper
}

// NewMachine 创建状态机
func NewMachine(analyzer Analyzer, logger log.Logger) *Machine {
	return &Machine{
		analyzer: analyzer,
		log:      log.NewHelper(log.With(logger, "module", "view")),
	}
}

// Observe 注册状态迁移回调，需在开始处理请求前调用
func (m *Machine) Observe(fn func(from, to State)) *Machine {
	m.observe = fn
	return m
}

// Idle 初始页面
func (m *Machine) Idle() *Page {
	return &Page{State: StateIdle}
}

// Submit 处理一次提交，同步执行完整流水线后返回最终页面。
// 空 URL 停留在 Idle 并给出警告，不会触发任何网络请求。
func (m *Machine) Submit(ctx context.Context, rawURL string) *Page {
	req, err := biz.NewArticleRequest(rawURL)
	if err != nil {
		return &Page{State: StateIdle, URL: rawURL, Warning: biz.Message(err)}
	}

	m.transition(ctx, StateIdle, StateLoading)
	analysis, err := m.analyzer.Analyze(ctx, req)
	if err != nil {
		m.transition(ctx, StateLoading, StateFailed)
		return &Page{
			State:  StateFailed,
			URL:    req.URL,
			Error:  biz.Message(err),
			Reason: errors.Reason(err),
			Code:   errors.Code(err),
		}
	}

	m.transition(ctx, StateLoading, StateReported)
	return &Page{
		State:   StateReported,
		URL:     req.URL,
		Success: MsgSuccess,
		Article: analysis.Article,
		Report:  analysis.Report,
	}
}

func (m *Machine) transition(ctx context.Context, from, to State) {
	m.log.WithContext(ctx).Debugf("state %s -> %s", from, to)
	if m.observe != nil {
		m.observe(from, to)
	}
}
