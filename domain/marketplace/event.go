package marketplace

import (
	"time"

	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/domain"
)

type EventType string

const (
	EventAddListing    EventType = "add_listing"
	EventUpdateListing EventType = "update_listing"
	EventDeleteListing EventType = "delete_listing"
	EventAddBid        EventType = "add_bid"
	EventCancelBid     EventType = "cancel_bid"
	EventAddOffer      EventType = "add_offer"
	EventDeleteOffer   EventType = "delete_offer"
	// settlement outcomes: the triggering call has already finished, so
	// these are the only user-visible trace of the resolution step
	EventResolvePurchase     EventType = "resolve_purchase"
	EventResolvePurchaseFail EventType = "resolve_purchase_fail"
)

// Event is the persisted emission of a state change or settlement outcome
type Event struct {
	Id           string           `json:"id" bson:"id"`
	Type         EventType        `json:"type" bson:"type"`
	Registry     domain.AccountId `json:"registryId" bson:"registryId"`
	TokenId      domain.TokenId   `json:"tokenId" bson:"tokenId"`
	Seller       domain.AccountId `json:"sellerId,omitempty" bson:"sellerId,omitempty"`
	Buyer        domain.AccountId `json:"buyerId,omitempty" bson:"buyerId,omitempty"`
	Currency     domain.AccountId `json:"currencyId,omitempty" bson:"currencyId,omitempty"`
	Price        string           `json:"price,omitempty" bson:"price,omitempty"`
	DisplayPrice string           `json:"displayPrice,omitempty" bson:"displayPrice,omitempty"`
	IsOffer      bool             `json:"isOffer,omitempty" bson:"isOffer,omitempty"`
	CreatedAt    time.Time        `json:"createdAt" bson:"createdAt"`
}

type eventFindAllOptions struct {
	Type     *EventType
	Registry *domain.AccountId
	TokenId  *domain.TokenId
	Offset   *int32
	Limit    *int32
}

type EventFindAllOptionsFunc func(*eventFindAllOptions) error

func GetEventFindAllOptions(opts ...EventFindAllOptionsFunc) (eventFindAllOptions, error) {
	res := eventFindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func EventWithType(t EventType) EventFindAllOptionsFunc {
	return func(opts *eventFindAllOptions) error {
		opts.Type = &t
		return nil
	}
}

func EventWithRegistry(registry domain.AccountId) EventFindAllOptionsFunc {
	return func(opts *eventFindAllOptions) error {
		opts.Registry = &registry
		return nil
	}
}

func EventWithTokenId(tokenId domain.TokenId) EventFindAllOptionsFunc {
	return func(opts *eventFindAllOptions) error {
		opts.TokenId = &tokenId
		return nil
	}
}

func EventWithPagination(offset, limit int32) EventFindAllOptionsFunc {
	return func(opts *eventFindAllOptions) error {
		opts.Offset = &offset
		opts.Limit = &limit
		return nil
	}
}

type EventRepo interface {
	Insert(ctx ctx.Ctx, e *Event) error
	FindAll(ctx ctx.Ctx, opts ...EventFindAllOptionsFunc) ([]*Event, error)
}
