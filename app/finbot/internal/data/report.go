package data

import (
	"context"
	"errors"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/finbot/app/finbot/internal/biz"
	"github.com/iWorld-y/finbot/app/finbot/internal/conf"
)

type reportRepo struct {
	data *Data
	conf *conf.LLM
	log  *log.Helper
}

// NewReportRepo 基于 eino ChatModel 的报告生成实现
func NewReportRepo(data *Data, c *conf.LLM, logger log.Logger) biz.ReportGenerator {
	return &reportRepo{
		data: data,
		conf: c,
		log:  log.NewHelper(log.With(logger, "module", "data/report")),
	}
}

// Preflight 检查 API Key 与模型客户端是否就绪
func (r *reportRepo) Preflight() error {
	if !r.conf.HasCredential() || r.data.chat == nil {
		return biz.ErrConfiguration(r.conf.APIKeyEnv)
	}
	return nil
}

// Generate 以 temperature=0 调用模型，返回原始 markdown，不做结构校验，不重试
func (r *reportRepo) Generate(ctx context.Context, prompt biz.AnalysisPrompt) (*biz.AnalysisReport, error) {
	if err := r.Preflight(); err != nil {
		return nil, err
	}

	messages := []*schema.Message{
		schema.UserMessage(string(prompt)),
	}

	resp, err := r.data.chat.Generate(ctx, messages,
		model.WithTemperature(0),
		model.WithModel(r.conf.Model),
	)
	if err != nil {
		return nil, biz.ErrGeneration(err)
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return nil, biz.ErrGeneration(errors.New("model returned an empty response"))
	}

	if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
		r.log.WithContext(ctx).Debugf("token usage: prompt=%d completion=%d finish=%s",
			resp.ResponseMeta.Usage.PromptTokens, resp.ResponseMeta.Usage.CompletionTokens, resp.ResponseMeta.FinishReason)
	}

	return &biz.AnalysisReport{
		Markdown: resp.Content,
		Model:    r.conf.Model,
	}, nil
}
