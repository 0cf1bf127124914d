package reservation

import (
	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/domain"
)

// Kind tags which entity a reservation points at. Listings and offers live
// in different key namespaces; the tag keeps them structurally separate and
// the quota check merges them only by counting per account.
type Kind string

const (
	KindListing Kind = "listing"
	KindOffer   Kind = "offer"
)

// Reservation records that an account currently holds one listing or offer
// key. The set sizes the account's storage-quota requirement and must stay
// exactly in sync with listing/offer creation and deletion.
type Reservation struct {
	Account domain.AccountId `json:"accountId" bson:"accountId"`
	Kind    Kind             `json:"kind" bson:"kind"`
	Key     string           `json:"key" bson:"key"`
}

type Repo interface {
	Insert(ctx ctx.Ctx, r *Reservation) error
	Remove(ctx ctx.Ctx, account domain.AccountId, kind Kind, key string) error
	CountByAccount(ctx ctx.Ctx, account domain.AccountId) (int, error)
	FindByAccount(ctx ctx.Ctx, account domain.AccountId) ([]*Reservation, error)
}
