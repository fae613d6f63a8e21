package main

import (
	"flag"
	"os"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/finbot/app/finbot/internal/conf"
	"github.com/iWorld-y/finbot/app/finbot/pkg/logger"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name 是服务的名称
	Name string = "finbot"
	// Version 是服务的版本号
	Version string
	// flagconf 是配置文件的路径命令行参数
	flagconf string
	// flagenv 是 .env 文件路径
	flagenv string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "app/finbot/configs/config.yaml", "config path, eg: -conf config.yaml")
	flag.StringVar(&flagenv, "env", ".env", "dotenv file holding the provider API key, eg: -env .env")
}

func newApp(logger log.Logger, hs *http.Server) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(hs),
	)
}

func main() {
	flag.Parse()

	bc, err := conf.Load(flagconf, flagenv)
	if err != nil {
		panic(err)
	}

	l, closeLog, err := logger.New(bc.Log.Level, bc.Log.File)
	if err != nil {
		panic(err)
	}
	defer closeLog()
	// 初始化日志记录器，包含调用者信息、服务ID等上下文
	klog := log.With(logger.NewKratosLogger(l),
		logger.CallerKey, log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)

	if !bc.LLM.HasCredential() {
		log.NewHelper(klog).Warnf("API key not found in %s or config, report generation will fail until it is set", bc.LLM.APIKeyEnv)
	}

	app, cleanup, err := initApp(bc.Server, bc.LLM, bc.Fetcher, klog)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	if err := app.Run(); err != nil {
		panic(err)
	}
}
