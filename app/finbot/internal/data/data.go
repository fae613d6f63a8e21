package data

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"

	"github.com/iWorld-y/finbot/app/finbot/internal/conf"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(NewData, NewArticleRepo, NewReportRepo)

// Data 外部依赖：抓取文章用的 HTTP 客户端与模型客户端
type Data struct {
	http *http.Client
	// chat 在未配置 API Key 时为 nil，由 reportRepo.Preflight 报错
	chat model.BaseChatModel
}

// NewData 根据配置初始化外部客户端
func NewData(cf *conf.Fetcher, cl *conf.LLM, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(log.With(logger, "module", "data"))

	d := &Data{
		http: &http.Client{Timeout: cf.RequestTimeout()},
	}

	if cl.HasCredential() {
		temperature := float32(0)
		cm, err := openai.NewChatModel(context.Background(), &openai.ChatModelConfig{
			BaseURL:     cl.BaseURL,
			APIKey:      cl.APIKey,
			Model:       cl.Model,
			Timeout:     cl.RequestTimeout(),
			Temperature: &temperature,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("init chat model: %w", err)
		}
		d.chat = cm
		helper.Infof("chat model ready: model=%s base_url=%s", cl.Model, cl.BaseURL)
	} else {
		helper.Warnf("%s is not set, report generation will be rejected until it is configured", cl.APIKeyEnv)
	}

	cleanup := func() {
		helper.Info("closing the data resources")
		d.http.CloseIdleConnections()
	}
	return d, cleanup, nil
}
