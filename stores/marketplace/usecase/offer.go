package usecase

import (
	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/domain"
	"github.com/astromart/goledger/domain/keys"
	"github.com/astromart/goledger/domain/listing"
	"github.com/astromart/goledger/domain/marketplace"
	"github.com/astromart/goledger/domain/offer"
	"github.com/astromart/goledger/domain/reservation"
)

// AddOffer records a standing buy offer. The full price is escrowed with
// the call; replacing an existing offer refunds the previous escrow first.
func (im *impl) AddOffer(ctx ctx.Ctx, p *marketplace.AddOfferParams) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	cfg, err := im.getSettings(ctx)
	if err != nil {
		return err
	}
	if !cfg.IsApprovedRegistry(p.Registry) {
		return domain.ErrRegistryNotApproved
	}
	if p.Currency != domain.NativeCurrency {
		return domain.ErrCurrencyNotSupported
	}

	price, err := domain.ToAmount(p.Price)
	if err != nil || price.Sign() == 0 {
		return domain.ErrBadParamInput
	}
	if price.Cmp(domain.MaxPrice()) >= 0 {
		return domain.ErrPriceTooHigh
	}
	if cmp, err := domain.CmpAmounts(p.Deposit, p.Price); err != nil || cmp != 0 {
		return domain.ErrExactPriceDeposit
	}

	id := offer.Id{Registry: p.Registry, Buyer: p.Buyer, TokenId: p.TokenId}
	if existing, err := im.offerRepo.FindOne(ctx, id); err == nil {
		if err := im.internalDeleteOffer(ctx, existing, true); err != nil {
			return err
		}
	} else if err != domain.ErrNotFound {
		return err
	}

	if err := im.checkStorageQuota(ctx, p.Buyer); err != nil {
		return err
	}

	o := &offer.Offer{
		Buyer:    p.Buyer,
		Registry: p.Registry,
		TokenId:  p.TokenId,
		Currency: p.Currency,
		Price:    p.Price,
	}
	if err := im.offerRepo.Upsert(ctx, o); err != nil {
		return err
	}

	r := &reservation.Reservation{
		Account: p.Buyer,
		Kind:    reservation.KindOffer,
		Key:     keys.OfferKey(p.Registry, p.Buyer, p.TokenId),
	}
	if err := im.reservationRepo.Insert(ctx, r); err != nil {
		return err
	}

	im.emitEvent(ctx, &marketplace.Event{
		Type:     marketplace.EventAddOffer,
		Registry: p.Registry,
		TokenId:  p.TokenId,
		Buyer:    p.Buyer,
		Currency: p.Currency,
		Price:    p.Price,
		IsOffer:  true,
	})
	return nil
}

func (im *impl) CancelOffer(ctx ctx.Ctx, p *marketplace.CancelOfferParams) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	if err := assertOneUnit(p.Deposit); err != nil {
		return err
	}

	o, err := im.offerRepo.FindOne(ctx, offer.Id{Registry: p.Registry, Buyer: p.Buyer, TokenId: p.TokenId})
	if err != nil {
		return err
	}

	if err := im.internalDeleteOffer(ctx, o, true); err != nil {
		return err
	}

	im.emitEvent(ctx, &marketplace.Event{
		Type:     marketplace.EventDeleteOffer,
		Registry: p.Registry,
		TokenId:  p.TokenId,
		Buyer:    p.Buyer,
		Currency: o.Currency,
		Price:    o.Price,
		IsOffer:  true,
	})
	return nil
}

// internalDeleteOffer removes the offer and its reservation, optionally
// refunding the escrow (acceptance keeps it for settlement)
func (im *impl) internalDeleteOffer(ctx ctx.Ctx, o *offer.Offer, refundEscrow bool) error {
	if refundEscrow {
		im.refund(ctx, o.Buyer, o.Price)
	}

	if err := im.offerRepo.Remove(ctx, o.ToId()); err != nil {
		return err
	}

	key := keys.OfferKey(o.Registry, o.Buyer, o.TokenId)
	if err := im.reservationRepo.Remove(ctx, o.Buyer, reservation.KindOffer, key); err != nil && err != domain.ErrNotFound {
		return err
	}
	return nil
}

// acceptOffer is the accept_offer branch of a registry approval: the token
// owner approved a transfer directly against a standing offer's escrow.
func (im *impl) acceptOffer(ctx ctx.Ctx, p *marketplace.RegistryApprovalParams) error {
	if p.Msg.Buyer.IsEmpty() {
		return domain.ErrBadParamInput
	}
	if p.Msg.Buyer == p.Owner {
		return domain.ErrSelfTrade
	}

	o, err := im.offerRepo.FindOne(ctx, offer.Id{Registry: p.Registry, Buyer: p.Msg.Buyer, TokenId: p.TokenId})
	if err != nil {
		return err
	}

	if cmp, err := domain.CmpAmounts(p.Msg.Price, o.Price); err != nil || cmp != 0 {
		return domain.ErrPriceMismatch
	}

	// any direct listing for the asset is now stale: the owner chose the
	// offer instead, so its bids go back to their bidders
	id := listing.Id{Registry: p.Registry, TokenId: p.TokenId}
	if l, err := im.listingRepo.FindOne(ctx, id); err == nil {
		if err := im.internalDeleteListing(ctx, l); err != nil {
			return err
		}
	} else if err != domain.ErrNotFound {
		return err
	}

	if err := im.internalDeleteOffer(ctx, o, false); err != nil {
		return err
	}

	im.emitEvent(ctx, &marketplace.Event{
		Type:     marketplace.EventDeleteOffer,
		Registry: p.Registry,
		TokenId:  p.TokenId,
		Seller:   p.Owner,
		Buyer:    o.Buyer,
		Currency: o.Currency,
		Price:    o.Price,
		IsOffer:  true,
	})

	sale := &marketplace.Sale{
		Seller:     p.Owner,
		Buyer:      o.Buyer,
		Registry:   p.Registry,
		TokenId:    p.TokenId,
		Currency:   o.Currency,
		ApprovalId: p.ApprovalId,
		Price:      o.Price,
		IsOffer:    true,
	}
	im.scheduleSettlement(ctx, sale)
	return nil
}

func (im *impl) GetOffer(ctx ctx.Ctx, id offer.Id) (*offer.Offer, error) {
	return im.offerRepo.FindOne(ctx, id)
}
