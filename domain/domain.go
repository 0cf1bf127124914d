package domain

import (
	"math/big"
)

// AccountId identifies a ledger account. Asset registries and currencies are
// themselves accounts on the host ledger.
type AccountId string

func (a AccountId) String() string {
	return string(a)
}

func (a AccountId) IsEmpty() bool {
	return len(a) == 0
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

// Table is a mongo collection name
type Table string

const (
	TableListings        Table = "listings"
	TableOffers          Table = "offers"
	TableReservations    Table = "reservations"
	TableStorageDeposits Table = "storage_deposits"
	TableSettings        Table = "settings"
	TableSaleEvents      Table = "sale_events"
)

// NativeCurrency is the host ledger's native unit, the only currency the
// marketplace settles in. Other fungible currencies can be recorded on
// listings but have no transfer path here.
const NativeCurrency = AccountId("native")

const (
	// MaxPrice is the exclusive upper bound for listing and offer prices,
	// one billion whole tokens of 24 decimals.
	maxPriceStr = "1000000000000000000000000000000000"

	// StorageCostPerReservation is the deposit required per active
	// listing/offer reservation, in minimal units.
	StorageCostPerReservation = "8590000000000000000000"

	// OneUnit is the exact payment required on sensitive calls as an
	// anti-accidental-call safeguard.
	OneUnit = "1"

	// MaxPayoutRecipients caps the royalty split requested from registries.
	MaxPayoutRecipients = 10

	// PayoutTolerance absorbs integer rounding in a registry's own split:
	// payout amounts may sum to at most this many units below the price.
	PayoutTolerance = 100
)

// MaxPrice returns the exclusive price cap as a big integer
func MaxPrice() *big.Int {
	v, _ := new(big.Int).SetString(maxPriceStr, 10)
	return v
}

// ToAmount parses a non-negative integer amount of minimal currency units
func ToAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, ErrInvalidNumberFormat
	}
	return v, nil
}

// CmpAmounts compares two decimal amount strings numerically
func CmpAmounts(a, b string) (int, error) {
	av, err := ToAmount(a)
	if err != nil {
		return 0, err
	}
	bv, err := ToAmount(b)
	if err != nil {
		return 0, err
	}
	return av.Cmp(bv), nil
}

type SortDir int8

const (
	SortDirAsc  SortDir = 1
	SortDirDesc SortDir = -1
)
