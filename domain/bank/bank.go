package bank

import (
	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/domain"
)

// Service moves native currency out of the marketplace's own ledger
// account: escrow refunds, seller payouts, royalties and fees all go
// through it. Incoming escrow is moved by the ledger gateway before a call
// reaches the marketplace, so there is no inbound counterpart.
type Service interface {
	Transfer(ctx ctx.Ctx, to domain.AccountId, amount string) error
}
