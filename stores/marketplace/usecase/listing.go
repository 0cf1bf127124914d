package usecase

import (
	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/base/log"
	"github.com/astromart/goledger/domain"
	"github.com/astromart/goledger/domain/keys"
	"github.com/astromart/goledger/domain/listing"
	"github.com/astromart/goledger/domain/marketplace"
	"github.com/astromart/goledger/domain/reservation"
	"github.com/astromart/goledger/domain/settings"
)

// RegistryApproval handles the callback an approved registry sends when a
// token owner grants the marketplace a transfer approval. The attached
// message decides whether this creates a listing or accepts a standing
// offer.
func (im *impl) RegistryApproval(ctx ctx.Ctx, p *marketplace.RegistryApprovalParams) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	cfg, err := im.getSettings(ctx)
	if err != nil {
		return err
	}
	if !cfg.IsApprovedRegistry(p.Registry) {
		return domain.ErrRegistryNotApproved
	}

	switch p.Msg.MarketType {
	case marketplace.MarketTypeSale:
		return im.createListing(ctx, cfg, p)
	case marketplace.MarketTypeAcceptOffer:
		return im.acceptOffer(ctx, p)
	default:
		ctx.WithField("marketType", p.Msg.MarketType).Warn("unknown market type")
		return domain.ErrBadParamInput
	}
}

func (im *impl) createListing(ctx ctx.Ctx, cfg *settings.Settings, p *marketplace.RegistryApprovalParams) error {
	msg := p.Msg

	price, err := domain.ToAmount(msg.Price)
	if err != nil || price.Sign() == 0 {
		return domain.ErrBadParamInput
	}
	if price.Cmp(domain.MaxPrice()) >= 0 {
		return domain.ErrPriceTooHigh
	}

	currency := msg.Currency
	if currency.IsEmpty() {
		currency = domain.NativeCurrency
	}
	if currency != domain.NativeCurrency && !cfg.IsApprovedCurrency(currency) {
		return domain.ErrCurrencyNotSupported
	}

	now := im.clock()
	if msg.StartedAt != nil && msg.StartedAt.Before(now) {
		return domain.ErrInvalidTimeWindow
	}
	if msg.EndedAt != nil && msg.EndedAt.Before(now) {
		return domain.ErrInvalidTimeWindow
	}
	if msg.StartedAt != nil && msg.EndedAt != nil && !msg.StartedAt.Before(*msg.EndedAt) {
		return domain.ErrInvalidTimeWindow
	}

	id := listing.Id{Registry: p.Registry, TokenId: p.TokenId}

	// a re-approval replaces the previous listing entirely, so outstanding
	// bids are refunded before the new record is admitted
	if existing, err := im.listingRepo.FindOne(ctx, id); err == nil {
		if err := im.internalDeleteListing(ctx, existing); err != nil {
			return err
		}
	} else if err != domain.ErrNotFound {
		return err
	}

	if err := im.checkStorageQuota(ctx, p.Owner); err != nil {
		return err
	}

	isAuction := msg.IsAuction != nil && *msg.IsAuction
	l := &listing.Listing{
		Owner:      p.Owner,
		ApprovalId: p.ApprovalId,
		Registry:   p.Registry,
		TokenId:    p.TokenId,
		Currency:   currency,
		Price:      msg.Price,
		StartedAt:  msg.StartedAt,
		EndedAt:    msg.EndedAt,
		IsAuction:  isAuction,
	}
	if err := im.listingRepo.Upsert(ctx, l); err != nil {
		return err
	}

	r := &reservation.Reservation{
		Account: p.Owner,
		Kind:    reservation.KindListing,
		Key:     keys.ListingKey(p.Registry, p.TokenId),
	}
	if err := im.reservationRepo.Insert(ctx, r); err != nil {
		return err
	}

	im.emitEvent(ctx, &marketplace.Event{
		Type:     marketplace.EventAddListing,
		Registry: p.Registry,
		TokenId:  p.TokenId,
		Seller:   p.Owner,
		Currency: currency,
		Price:    msg.Price,
	})
	return nil
}

func (im *impl) UpdateListingPrice(ctx ctx.Ctx, p *marketplace.UpdateListingPriceParams) error {
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
	if l.Currency != p.Currency {
		return domain.ErrCurrencyMismatch
	}

	price, err := domain.ToAmount(p.Price)
	if err != nil || price.Sign() == 0 {
		return domain.ErrBadParamInput
	}
	if price.Cmp(domain.MaxPrice()) >= 0 {
		return domain.ErrPriceTooHigh
	}

	l.Price = p.Price
	if err := im.listingRepo.Upsert(ctx, l); err != nil {
		return err
	}

	im.emitEvent(ctx, &marketplace.Event{
		Type:     marketplace.EventUpdateListing,
		Registry: p.Registry,
		TokenId:  p.TokenId,
		Seller:   l.Owner,
		Currency: l.Currency,
		Price:    p.Price,
	})
	return nil
}

func (im *impl) DeleteListing(ctx ctx.Ctx, p *marketplace.DeleteListingParams) error {
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
		cfg, err := im.getSettings(ctx)
		if err != nil {
			return err
		}
		if cfg.Owner != p.Caller {
			return domain.ErrOwnerOnly
		}
	}

	if err := im.internalDeleteListing(ctx, l); err != nil {
		return err
	}

	im.emitEvent(ctx, &marketplace.Event{
		Type:     marketplace.EventDeleteListing,
		Registry: p.Registry,
		TokenId:  p.TokenId,
		Seller:   l.Owner,
		Currency: l.Currency,
		Price:    l.Price,
	})
	return nil
}

// internalDeleteListing refunds all outstanding bids and removes the
// listing together with its reservation entry
func (im *impl) internalDeleteListing(ctx ctx.Ctx, l *listing.Listing) error {
	for _, b := range l.Bids {
		im.refund(ctx, b.Bidder, b.Price)
	}

	if err := im.listingRepo.Remove(ctx, l.ToId()); err != nil {
		return err
	}

	key := keys.ListingKey(l.Registry, l.TokenId)
	if err := im.reservationRepo.Remove(ctx, l.Owner, reservation.KindListing, key); err != nil && err != domain.ErrNotFound {
		ctx.WithFields(log.Fields{
			"err": err,
			"key": key,
		}).Error("reservationRepo.Remove failed")
		return err
	}
	return nil
}

func (im *impl) GetListing(ctx ctx.Ctx, id listing.Id) (*listing.Listing, error) {
	return im.listingRepo.FindOne(ctx, id)
}

func (im *impl) GetListings(ctx ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	return im.listingRepo.FindAll(ctx, opts...)
}
