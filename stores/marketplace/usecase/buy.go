package usecase

import (
	"math/big"

	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/domain"
	"github.com/astromart/goledger/domain/listing"
	"github.com/astromart/goledger/domain/marketplace"
)

// Buy purchases a fixed-price listing outright. The optional currency and
// price arguments guard the buyer against a listing change racing their
// call.
func (im *impl) Buy(ctx ctx.Ctx, p *marketplace.BuyParams) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	l, err := im.listingRepo.FindOne(ctx, listing.Id{Registry: p.Registry, TokenId: p.TokenId})
	if err != nil {
		return err
	}
	if l.IsAuction {
		return domain.ErrAuctionInProgress
	}
	if l.Owner == p.Buyer {
		return domain.ErrSelfTrade
	}
	if l.Currency != domain.NativeCurrency {
		return domain.ErrCurrencyNotSupported
	}
	if p.Currency != nil && *p.Currency != l.Currency {
		return domain.ErrCurrencyMismatch
	}
	if p.Price != nil {
		if cmp, err := domain.CmpAmounts(*p.Price, l.Price); err != nil || cmp != 0 {
			return domain.ErrPriceMismatch
		}
	}

	deposit, err := domain.ToAmount(p.Deposit)
	if err != nil {
		return domain.ErrBadParamInput
	}
	price, err := domain.ToAmount(l.Price)
	if err != nil {
		return err
	}
	if deposit.Cmp(price) < 0 {
		return domain.ErrDepositTooLow
	}
	if excess := new(big.Int).Sub(deposit, price); excess.Sign() > 0 {
		im.refund(ctx, p.Buyer, excess.String())
	}

	return im.processPurchase(ctx, l, p.Buyer)
}

// processPurchase removes the listing, captures the sale snapshot and
// schedules settlement against the asset registry. From here on failure can
// only refund the buyer, never restore the listing.
func (im *impl) processPurchase(ctx ctx.Ctx, l *listing.Listing, buyer domain.AccountId) error {
	sale := &marketplace.Sale{
		Seller:     l.Owner,
		Buyer:      buyer,
		Registry:   l.Registry,
		TokenId:    l.TokenId,
		Currency:   l.Currency,
		ApprovalId: l.ApprovalId,
		Price:      l.Price,
	}

	if err := im.internalDeleteListing(ctx, l); err != nil {
		return err
	}

	im.scheduleSettlement(ctx, sale)
	return nil
}
