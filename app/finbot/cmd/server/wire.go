//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final binary.

package main

import (
	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"

	"github.com/iWorld-y/finbot/app/finbot/internal/biz"
	"github.com/iWorld-y/finbot/app/finbot/internal/conf"
	"github.com/iWorld-y/finbot/app/finbot/internal/data"
	"github.com/iWorld-y/finbot/app/finbot/internal/server"
	"github.com/iWorld-y/finbot/app/finbot/internal/service"
)

// initApp init kratos application.
func initApp(*conf.Server, *conf.LLM, *conf.Fetcher, log.Logger) (*kratos.App, func(), error) {
	panic(wire.Build(
		server.ProviderSet,
		data.ProviderSet,
		biz.ProviderSet,
		service.ProviderSet,
		newApp,
	))
}
