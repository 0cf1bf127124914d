package deposit

import (
	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/domain"
)

// StorageDeposit is the pre-paid storage balance of one account, in minimal
// currency units. Admission of a new listing/offer requires
// balance >= (reservations + 1) * domain.StorageCostPerReservation.
type StorageDeposit struct {
	Account domain.AccountId `json:"accountId" bson:"accountId"`
	Balance string           `json:"balance" bson:"balance"`
}

type Repo interface {
	// Get returns domain.ErrNotFound when the account never deposited
	Get(ctx ctx.Ctx, account domain.AccountId) (*StorageDeposit, error)
	Upsert(ctx ctx.Ctx, d *StorageDeposit) error
	Remove(ctx ctx.Ctx, account domain.AccountId) error
}
