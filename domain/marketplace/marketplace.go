package marketplace

import (
	"time"

	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/domain"
	"github.com/astromart/goledger/domain/listing"
	"github.com/astromart/goledger/domain/offer"
	"github.com/astromart/goledger/domain/settings"
)

// Sale is the immutable snapshot handed across the asynchronous settlement
// boundary. It is captured when the triggering listing/offer is deleted and
// is never re-read from storage: by the time the registry call resolves,
// global state may have moved on.
type Sale struct {
	Seller     domain.AccountId `json:"sellerId" bson:"sellerId"`
	Buyer      domain.AccountId `json:"buyerId" bson:"buyerId"`
	Registry   domain.AccountId `json:"registryId" bson:"registryId"`
	TokenId    domain.TokenId   `json:"tokenId" bson:"tokenId"`
	Currency   domain.AccountId `json:"currencyId" bson:"currencyId"`
	ApprovalId uint64           `json:"approvalId" bson:"approvalId"`
	Price      string           `json:"price" bson:"price"`
	IsOffer    bool             `json:"isOffer" bson:"isOffer"`
}

// market type values carried in a registry approval message
const (
	MarketTypeSale        = "sale"
	MarketTypeAcceptOffer = "accept_offer"
)

// ApprovalMsg is the message a registry forwards when an owner approves the
// marketplace for one transfer. It either creates a listing or accepts a
// standing offer.
type ApprovalMsg struct {
	MarketType string           `json:"marketType" validate:"required"`
	Price      string           `json:"price" validate:"required"`
	Currency   domain.AccountId `json:"currencyId"`
	StartedAt  *time.Time       `json:"startedAt,omitempty"`
	EndedAt    *time.Time       `json:"endedAt,omitempty"`
	IsAuction  *bool            `json:"isAuction,omitempty"`
	Buyer      domain.AccountId `json:"buyerId,omitempty"`
}

type RegistryApprovalParams struct {
	Registry   domain.AccountId
	Owner      domain.AccountId
	TokenId    domain.TokenId
	ApprovalId uint64
	Msg        ApprovalMsg
}

type BuyParams struct {
	Buyer    domain.AccountId
	Registry domain.AccountId
	TokenId  domain.TokenId
	Currency *domain.AccountId
	Price    *string
	Deposit  string
}

type UpdateListingPriceParams struct {
	Caller   domain.AccountId
	Registry domain.AccountId
	TokenId  domain.TokenId
	Currency domain.AccountId
	Price    string
	Deposit  string
}

type DeleteListingParams struct {
	Caller   domain.AccountId
	Registry domain.AccountId
	TokenId  domain.TokenId
	Deposit  string
}

type AddBidParams struct {
	Bidder   domain.AccountId
	Registry domain.AccountId
	TokenId  domain.TokenId
	Currency domain.AccountId
	Amount   string
	Deposit  string
}

type AcceptBidParams struct {
	Caller   domain.AccountId
	Registry domain.AccountId
	TokenId  domain.TokenId
	Deposit  string
}

type CancelBidParams struct {
	Caller   domain.AccountId
	Registry domain.AccountId
	TokenId  domain.TokenId
	Bidder   domain.AccountId
	Deposit  string
}

type AddOfferParams struct {
	Buyer    domain.AccountId
	Registry domain.AccountId
	TokenId  domain.TokenId
	Currency domain.AccountId
	Price    string
	Deposit  string
}

type CancelOfferParams struct {
	Buyer    domain.AccountId
	Registry domain.AccountId
	TokenId  domain.TokenId
	Deposit  string
}

type StorageDepositParams struct {
	Caller  domain.AccountId
	Account domain.AccountId // optional beneficiary, defaults to caller
	Deposit string
}

type StorageWithdrawParams struct {
	Caller  domain.AccountId
	Deposit string
}

type SetTreasuryParams struct {
	Caller   domain.AccountId
	Treasury domain.AccountId
	Deposit  string
}

type SetTransactionFeeParams struct {
	Caller  domain.AccountId
	FeeBps  uint16
	Deposit string
}

type TransferOwnershipParams struct {
	Caller  domain.AccountId
	Owner   domain.AccountId
	Deposit string
}

type ApprovedAccountsParams struct {
	Caller   domain.AccountId
	Accounts []domain.AccountId
	Deposit  string
}

// UseCase is the marketplace's full surface. Mutating operations run one at
// a time to completion, matching the host ledger's execution model.
type UseCase interface {
	// registry callback: create listing or accept offer
	RegistryApproval(ctx ctx.Ctx, p *RegistryApprovalParams) error

	// listing store
	UpdateListingPrice(ctx ctx.Ctx, p *UpdateListingPriceParams) error
	DeleteListing(ctx ctx.Ctx, p *DeleteListingParams) error
	GetListing(ctx ctx.Ctx, id listing.Id) (*listing.Listing, error)
	GetListings(ctx ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error)

	// purchases and auctions
	Buy(ctx ctx.Ctx, p *BuyParams) error
	AddBid(ctx ctx.Ctx, p *AddBidParams) error
	AcceptBid(ctx ctx.Ctx, p *AcceptBidParams) error
	CancelBid(ctx ctx.Ctx, p *CancelBidParams) error

	// offer store
	AddOffer(ctx ctx.Ctx, p *AddOfferParams) error
	CancelOffer(ctx ctx.Ctx, p *CancelOfferParams) error
	GetOffer(ctx ctx.Ctx, id offer.Id) (*offer.Offer, error)

	// storage quota
	StorageDeposit(ctx ctx.Ctx, p *StorageDepositParams) error
	StorageWithdraw(ctx ctx.Ctx, p *StorageWithdrawParams) error
	StorageMinimumBalance(ctx ctx.Ctx) string
	StorageBalanceOf(ctx ctx.Ctx, account domain.AccountId) (string, error)
	GetSupplyByOwner(ctx ctx.Ctx, account domain.AccountId) (int, error)

	// configuration
	SetTreasury(ctx ctx.Ctx, p *SetTreasuryParams) error
	SetTransactionFee(ctx ctx.Ctx, p *SetTransactionFeeParams) error
	TransferOwnership(ctx ctx.Ctx, p *TransferOwnershipParams) error
	AddApprovedRegistries(ctx ctx.Ctx, p *ApprovedAccountsParams) error
	RemoveApprovedRegistries(ctx ctx.Ctx, p *ApprovedAccountsParams) error
	AddApprovedCurrencies(ctx ctx.Ctx, p *ApprovedAccountsParams) error
	GetSettings(ctx ctx.Ctx) (*settings.Settings, error)

	// events
	GetEvents(ctx ctx.Ctx, opts ...EventFindAllOptionsFunc) ([]*Event, error)
}
