package biz

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"
)

// AnalysisUseCase 串联 抓取 → 构造提示词 → 生成报告
type AnalysisUseCase struct {
	fetcher   ArticleFetcher
	generator ReportGenerator
	log       *log.Helper
}

// NewAnalysisUseCase 创建分析业务逻辑实例
func NewAnalysisUseCase(fetcher ArticleFetcher, generator ReportGenerator, logger log.Logger) *AnalysisUseCase {
	return &AnalysisUseCase{
		fetcher:   fetcher,
		generator: generator,
		log:       log.NewHelper(log.With(logger, "module", "biz/analysis")),
	}
}

// Analyze 对单篇文章执行一次完整分析。
// 凭证检查放在抓取之前，缺少 API Key 时不会产生任何网络请求。
func (uc *AnalysisUseCase) Analyze(ctx context.Context, req ArticleRequest) (*Analysis, error) {
	if strings.TrimSpace(req.URL) == "" {
		return nil, ErrValidation()
	}

	if err := uc.generator.Preflight(); err != nil {
		uc.log.WithContext(ctx).Errorw("msg", "credential preflight failed", "url", req.URL, "reason", ReasonConfiguration)
		return nil, err
	}

	start := time.Now()
	article, err := uc.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		uc.log.WithContext(ctx).Errorw("msg", "fetch article failed", "url", req.URL, "err", err)
		return nil, asFetchFailure(err)
	}
	if article == nil || strings.TrimSpace(article.Text) == "" {
		uc.log.WithContext(ctx).Warnw("msg", "article has no extractable text", "url", req.URL)
		return nil, ErrFetch(errors.New("no article text could be extracted"))
	}
	uc.log.WithContext(ctx).Infow("msg", "article fetched", "url", req.URL, "chars", len(article.Text), "elapsed", time.Since(start))

	prompt := BuildPrompt(article.Text)

	start = time.Now()
	report, err := uc.generator.Generate(ctx, prompt)
	if err != nil {
		uc.log.WithContext(ctx).Errorw("msg", "generate report failed", "url", req.URL, "err", err)
		return nil, asGenerationFailure(err)
	}
	if report == nil {
		return nil, ErrGeneration(errors.New("model returned no report"))
	}
	uc.log.WithContext(ctx).Infow("msg", "report generated", "url", req.URL, "model", report.Model, "elapsed", time.Since(start))

	return &Analysis{Article: article, Report: report}, nil
}

// asFetchFailure 保证抓取阶段的错误一定带有 FETCH_FAILURE
func asFetchFailure(err error) error {
	if IsFetchFailure(err) {
		return err
	}
	return ErrFetch(err)
}

// asGenerationFailure 保留 CONFIGURATION_FAILURE，其余统一为 GENERATION_FAILURE
func asGenerationFailure(err error) error {
	if IsGenerationFailure(err) || IsConfigurationFailure(err) {
		return err
	}
	return ErrGeneration(err)
}
