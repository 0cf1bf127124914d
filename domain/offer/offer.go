package offer

import (
	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/domain"
)

// Offer is a standing buy offer for an asset, fully escrowed at creation.
// At most one offer exists per (registry, buyer, token); a replacement
// refunds the prior escrow first.
type Offer struct {
	Buyer    domain.AccountId `json:"buyerId" bson:"buyerId"`
	Registry domain.AccountId `json:"registryId" bson:"registryId"`
	TokenId  domain.TokenId   `json:"tokenId" bson:"tokenId"`
	Currency domain.AccountId `json:"currencyId" bson:"currencyId"`
	Price    string           `json:"price" bson:"price"`
}

func (o *Offer) ToId() Id {
	return Id{
		Registry: o.Registry,
		Buyer:    o.Buyer,
		TokenId:  o.TokenId,
	}
}

type Id struct {
	Registry domain.AccountId `json:"registryId" bson:"registryId"`
	Buyer    domain.AccountId `json:"buyerId" bson:"buyerId"`
	TokenId  domain.TokenId   `json:"tokenId" bson:"tokenId"`
}

type findAllOptions struct {
	Buyer    *domain.AccountId
	Registry *domain.AccountId
	TokenId  *domain.TokenId
	Offset   *int32
	Limit    *int32
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

func WithBuyer(buyer domain.AccountId) FindAllOptionsFunc {
	return func(opts *findAllOptions) error {
		opts.Buyer = &buyer
		return nil
	}
}

func WithRegistry(registry domain.AccountId) FindAllOptionsFunc {
	return func(opts *findAllOptions) error {
		opts.Registry = &registry
		return nil
	}
}

func WithTokenId(tokenId domain.TokenId) FindAllOptionsFunc {
	return func(opts *findAllOptions) error {
		opts.TokenId = &tokenId
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

// Repo persists offers keyed by (registry, buyer, token)
type Repo interface {
	FindOne(ctx ctx.Ctx, id Id) (*Offer, error)
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Offer, error)
	Upsert(ctx ctx.Ctx, o *Offer) error
	Remove(ctx ctx.Ctx, id Id) error
}
