package settings

import (
	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/domain"
)

// Key is the id of the single settings document
const Key = "marketplace"

// Settings is the marketplace's global configuration record, mutated only
// through owner-gated operations.
type Settings struct {
	Key                string             `json:"-" bson:"key"`
	Owner              domain.AccountId   `json:"ownerId" bson:"ownerId"`
	Treasury           domain.AccountId   `json:"treasuryId" bson:"treasuryId"`
	TransactionFeeBps  uint16             `json:"transactionFee" bson:"transactionFeeBps"`
	ApprovedRegistries []domain.AccountId `json:"approvedRegistryIds" bson:"approvedRegistries"`
	ApprovedCurrencies []domain.AccountId `json:"approvedCurrencyIds" bson:"approvedCurrencies"`
}

func (s *Settings) IsApprovedRegistry(registry domain.AccountId) bool {
	for _, r := range s.ApprovedRegistries {
		if r == registry {
			return true
		}
	}
	return false
}

func (s *Settings) IsApprovedCurrency(currency domain.AccountId) bool {
	for _, c := range s.ApprovedCurrencies {
		if c == currency {
			return true
		}
	}
	return false
}

type Repo interface {
	// Get returns domain.ErrNotFound before initialization
	Get(ctx ctx.Ctx) (*Settings, error)
	Upsert(ctx ctx.Ctx, s *Settings) error
}
