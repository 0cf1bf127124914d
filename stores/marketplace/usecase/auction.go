package usecase

import (
	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/domain"
	"github.com/astromart/goledger/domain/listing"
	"github.com/astromart/goledger/domain/marketplace"
)

// AddBid places an escrowed bid on an auction listing. Bid prices are
// strictly increasing; a bidder replacing their own bid gets the old escrow
// back first.
func (im *impl) AddBid(ctx ctx.Ctx, p *marketplace.AddBidParams) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	l, err := im.listingRepo.FindOne(ctx, listing.Id{Registry: p.Registry, TokenId: p.TokenId})
	if err != nil {
		return err
	}
	if !l.IsAuction {
		return domain.ErrNotAuction
	}
	if l.Owner == p.Bidder {
		return domain.ErrSelfTrade
	}
	if p.Currency != domain.NativeCurrency {
		return domain.ErrCurrencyNotSupported
	}
	if p.Currency != l.Currency {
		return domain.ErrCurrencyMismatch
	}

	now := im.clock()
	if l.StartedAt != nil && now.Before(*l.StartedAt) {
		return domain.ErrAuctionNotStarted
	}
	if l.EndedAt != nil && now.After(*l.EndedAt) {
		return domain.ErrAuctionEnded
	}

	amount, err := domain.ToAmount(p.Amount)
	if err != nil {
		return domain.ErrBadParamInput
	}
	if cmp, err := domain.CmpAmounts(p.Deposit, p.Amount); err != nil || cmp < 0 {
		return domain.ErrDepositTooLow
	}

	floor, err := domain.ToAmount(l.Price)
	if err != nil {
		return err
	}
	if amount.Cmp(floor) < 0 {
		return domain.ErrBidTooLow
	}
	if highest := l.HighestBid(); highest != nil {
		hv, err := domain.ToAmount(highest.Price)
		if err != nil {
			return err
		}
		if amount.Cmp(hv) <= 0 {
			return domain.ErrBidTooLow
		}
	}

	if err := im.checkStorageQuota(ctx, p.Bidder); err != nil {
		return err
	}

	// replacement: refund the bidder's previous escrow and drop the entry
	kept := l.Bids[:0]
	for _, b := range l.Bids {
		if b.Bidder == p.Bidder {
			im.refund(ctx, b.Bidder, b.Price)
			continue
		}
		kept = append(kept, b)
	}
	l.Bids = append(kept, listing.Bid{Bidder: p.Bidder, Price: p.Amount})

	if err := im.listingRepo.Upsert(ctx, l); err != nil {
		return err
	}

	im.emitEvent(ctx, &marketplace.Event{
		Type:     marketplace.EventAddBid,
		Registry: p.Registry,
		TokenId:  p.TokenId,
		Seller:   l.Owner,
		Buyer:    p.Bidder,
		Currency: l.Currency,
		Price:    p.Amount,
	})
	return nil
}

// AcceptBid closes the auction on its current highest bid. Losing bids are
// refunded and the winning escrow settles like a direct purchase.
func (im *impl) AcceptBid(ctx ctx.Ctx, p *marketplace.AcceptBidParams) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	if err := assertOneUnit(p.Deposit); err != nil {
		return err
	}

	l, err := im.listingRepo.FindOne(ctx, listing.Id{Registry: p.Registry, TokenId: p.TokenId})
	if err != nil {
		return err
	}
	if l.Owner != p.Caller {
		return domain.ErrOwnerOnly
	}
	if !l.IsAuction {
		return domain.ErrNotAuction
	}
	if len(l.Bids) == 0 {
		return domain.ErrNoBids
	}

	winner := l.Bids[len(l.Bids)-1]
	for _, b := range l.Bids[:len(l.Bids)-1] {
		im.refund(ctx, b.Bidder, b.Price)
	}
	l.Bids = nil
	l.Price = winner.Price
	if err := im.listingRepo.Upsert(ctx, l); err != nil {
		return err
	}

	return im.processPurchase(ctx, l, winner.Bidder)
}

// CancelBid withdraws and refunds every bid placed by the given bidder.
// Callable by the bidder themselves or the contract owner.
func (im *impl) CancelBid(ctx ctx.Ctx, p *marketplace.CancelBidParams) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	if err := assertOneUnit(p.Deposit); err != nil {
		return err
	}

	if p.Caller != p.Bidder {
		cfg, err := im.getSettings(ctx)
		if err != nil {
			return err
		}
		if cfg.Owner != p.Caller {
			return domain.ErrOwnerOnly
		}
	}

	l, err := im.listingRepo.FindOne(ctx, listing.Id{Registry: p.Registry, TokenId: p.TokenId})
	if err != nil {
		return err
	}

	found := false
	kept := l.Bids[:0]
	var refunded string
	for _, b := range l.Bids {
		if b.Bidder == p.Bidder {
			im.refund(ctx, b.Bidder, b.Price)
			refunded = b.Price
			found = true
			continue
		}
		kept = append(kept, b)
	}
	if !found {
		return domain.ErrNotFound
	}

	l.Bids = kept
	if err := im.listingRepo.Upsert(ctx, l); err != nil {
		return err
	}

	im.emitEvent(ctx, &marketplace.Event{
		Type:     marketplace.EventCancelBid,
		Registry: p.Registry,
		TokenId:  p.TokenId,
		Seller:   l.Owner,
		Buyer:    p.Bidder,
		Currency: l.Currency,
		Price:    refunded,
	})
	return nil
}
