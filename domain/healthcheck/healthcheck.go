package healthcheck

import (
	"github.com/astromart/goledger/base/ctx"
)

type HealthCheckRepo interface {
	PingDB(ctx ctx.Ctx) error
}

type HealthCheckUsecase interface {
	Check(ctx ctx.Ctx) error
}
