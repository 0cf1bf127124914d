package listing

import (
	"time"

	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/domain"
)

// Bid is an escrowed price proposal against an auction listing. The bid
// list is ordered and strictly increasing in price, so the last element is
// always the current highest bid.
type Bid struct {
	Bidder domain.AccountId `json:"bidderId" bson:"bidderId"`
	Price  string           `json:"price" bson:"price"`
}

// Listing is a recorded intent to sell one asset, either at a fixed price
// or via an ascending auction. Exactly one listing exists per (registry,
// token). Price is the floor price when IsAuction is set.
type Listing struct {
	Owner      domain.AccountId `json:"ownerId" bson:"ownerId"`
	ApprovalId uint64           `json:"approvalId" bson:"approvalId"`
	Registry   domain.AccountId `json:"registryId" bson:"registryId"`
	TokenId    domain.TokenId   `json:"tokenId" bson:"tokenId"`
	Currency   domain.AccountId `json:"currencyId" bson:"currencyId"`
	Price      string           `json:"price" bson:"price"`
	Bids       []Bid            `json:"bids,omitempty" bson:"bids,omitempty"`
	StartedAt  *time.Time       `json:"startedAt,omitempty" bson:"startedAt,omitempty"`
	EndedAt    *time.Time       `json:"endedAt,omitempty" bson:"endedAt,omitempty"`
	IsAuction  bool             `json:"isAuction" bson:"isAuction"`
}

func (l *Listing) ToId() Id {
	return Id{
		Registry: l.Registry,
		TokenId:  l.TokenId,
	}
}

// HighestBid returns the last bid of the list, nil when there is none
func (l *Listing) HighestBid() *Bid {
	if len(l.Bids) == 0 {
		return nil
	}
	return &l.Bids[len(l.Bids)-1]
}

type Id struct {
	Registry domain.AccountId `json:"registryId" bson:"registryId"`
	TokenId  domain.TokenId   `json:"tokenId" bson:"tokenId"`
}

type findAllOptions struct {
	Owner     *domain.AccountId
	Registry  *domain.AccountId
	IsAuction *bool
	Offset    *int32
	Limit     *int32
}

type FindAllOptionsFunc func(*findAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (findAllOptions, error) {
	res := findAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithOwner(owner domain.AccountId) FindAllOptionsFunc {
	return func(opts *findAllOptions) error {
		opts.Owner = &owner
		return nil
	}
}

func WithRegistry(registry domain.AccountId) FindAllOptionsFunc {
	return func(opts *findAllOptions) error {
		opts.Registry = &registry
		return nil
	}
}

func WithIsAuction(isAuction bool) FindAllOptionsFunc {
	return func(opts *findAllOptions) error {
		opts.IsAuction = &isAuction
		return nil
	}
}

func WithPagination(offset, limit int32) FindAllOptionsFunc {
	return func(opts *findAllOptions) error {
		opts.Offset = &offset
		opts.Limit = &limit
		return nil
	}
}

// Repo persists listings keyed by (registry, token)
type Repo interface {
	FindOne(ctx ctx.Ctx, id Id) (*Listing, error)
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
	Count(ctx ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	Upsert(ctx ctx.Ctx, l *Listing) error
	Remove(ctx ctx.Ctx, id Id) error
}
