package view

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/finbot/app/finbot/internal/biz"
	"github.com/iWorld-y/finbot/app/finbot/internal/conf"
	"github.com/iWorld-y/finbot/app/finbot/internal/data"
)

type stubFetcher struct {
	text  string
	err   error
	calls int
}

func (s *stubFetcher) Fetch(_ context.Context, url string) (*biz.ArticleContent, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &biz.ArticleContent{URL: url, Text: s.text}, nil
}

type stubGenerator struct {
	credential bool
	markdown   string
	calls      int
	prompts    []biz.AnalysisPrompt
}

func (s *stubGenerator) Preflight() error {
	if !s.credential {
		return biz.ErrConfiguration(conf.DefaultAPIKeyEnv)
	}
	return nil
}

func (s *stubGenerator) Generate(_ context.Context, p biz.AnalysisPrompt) (*biz.AnalysisReport, error) {
	s.calls++
	s.prompts = append(s.prompts, p)
	return &biz.AnalysisReport{Markdown: s.markdown, Model: "stub"}, nil
}

const report = `### Executive Summary
Company X reported record profits.

### Sentiment Analysis
Positive - record profits signal strength.

### Key Risks
- Competition.

### Potential Opportunities
- Expansion.
`

type recorder struct {
	transitions [][2]State
}

func (r *recorder) observe(from, to State) {
	r.transitions = append(r.transitions, [2]State{from, to})
}

func newMachine(f biz.ArticleFetcher, g biz.ReportGenerator, rec *recorder) *Machine {
	uc := biz.NewAnalysisUseCase(f, g, log.DefaultLogger)
	return NewMachine(uc, log.DefaultLogger).Observe(rec.observe)
}

func TestMachine_Idle(t *testing.T) {
	m := newMachine(&stubFetcher{}, &stubGenerator{}, &recorder{})
	p := m.Idle()
	assert.Equal(t, StateIdle, p.State)
	assert.Nil(t, p.Report)
}

func TestMachine_EmptyURLStaysIdle(t *testing.T) {
	for _, u := range []string{"", "  ", "\n"} {
		f := &stubFetcher{text: "x"}
		g := &stubGenerator{credential: true}
		rec := &recorder{}

		p := newMachine(f, g, rec).Submit(context.Background(), u)

		assert.Equal(t, StateIdle, p.State)
		assert.Equal(t, biz.MsgEmptyURL, p.Warning)
		assert.Empty(t, p.Error)
		assert.Empty(t, rec.transitions)
		assert.Zero(t, f.calls)
		assert.Zero(t, g.calls)
	}
}

// URL → 正文 → 提示词包含原句 → 模型返回四段报告 → 页面展示同一份 markdown
func TestMachine_Scenario_Reported(t *testing.T) {
	f := &stubFetcher{text: "Company X reported record profits."}
	g := &stubGenerator{credential: true, markdown: report}
	rec := &recorder{}

	p := newMachine(f, g, rec).Submit(context.Background(), "https://news.example.com/x")

	assert.Equal(t, StateReported, p.State)
	assert.Equal(t, report, p.Report.Markdown)
	assert.Equal(t, MsgSuccess, p.Success)
	assert.Empty(t, p.Error)
	require.Len(t, g.prompts, 1)
	assert.Contains(t, string(g.prompts[0]), "Company X reported record profits.")
	assert.Equal(t, [][2]State{{StateIdle, StateLoading}, {StateLoading, StateReported}}, rec.transitions)
}

// 抓取超时 → 展示包含超时原因的错误 → 没有模型调用
func TestMachine_Scenario_FetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	fc := &conf.Fetcher{Timeout: "50ms", UserAgent: "finbot-test", MaxBodyBytes: 1 << 20}
	d, cleanup, err := data.NewData(fc, &conf.LLM{APIKeyEnv: conf.DefaultAPIKeyEnv}, log.DefaultLogger)
	require.NoError(t, err)
	defer cleanup()

	g := &stubGenerator{credential: true, markdown: report}
	rec := &recorder{}

	p := newMachine(data.NewArticleRepo(d, fc, log.DefaultLogger), g, rec).Submit(context.Background(), srv.URL)

	assert.Equal(t, StateFailed, p.State)
	assert.Equal(t, biz.ReasonFetch, p.Reason)
	assert.Contains(t, p.Error, "Error fetching article from URL")
	assert.Contains(t, p.Error, "Timeout")
	assert.Nil(t, p.Report)
	assert.Empty(t, p.Success)
	assert.Zero(t, g.calls)
	assert.Equal(t, [][2]State{{StateIdle, StateLoading}, {StateLoading, StateFailed}}, rec.transitions)
}

// 抓取可以成功，但缺少凭证 → 配置错误 → 没有抓取错误，也没有模型调用
func TestMachine_Scenario_MissingCredential(t *testing.T) {
	f := &stubFetcher{text: "Company X reported record profits."}
	g := &stubGenerator{credential: false}
	rec := &recorder{}

	p := newMachine(f, g, rec).Submit(context.Background(), "https://news.example.com/x")

	assert.Equal(t, StateFailed, p.State)
	assert.Equal(t, biz.ReasonConfiguration, p.Reason)
	assert.Equal(t, biz.MsgMissingAPIKey, p.Error)
	assert.NotContains(t, p.Error, "Error fetching article")
	assert.Zero(t, f.calls)
	assert.Zero(t, g.calls)
}

func TestMachine_FailureThenNewSubmission(t *testing.T) {
	f := &stubFetcher{err: biz.ErrFetch(assert.AnError)}
	g := &stubGenerator{credential: true, markdown: report}
	m := newMachine(f, g, &recorder{})

	first := m.Submit(context.Background(), "https://news.example.com/broken")
	assert.Equal(t, StateFailed, first.State)

	f.err = nil
	f.text = "Company X reported record profits."
	second := m.Submit(context.Background(), "https://news.example.com/ok")
	assert.Equal(t, StateReported, second.State)
	assert.Empty(t, second.Error)
	assert.Equal(t, "https://news.example.com/ok", second.URL)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "reported", StateReported.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "unknown", State(42).String())
}
