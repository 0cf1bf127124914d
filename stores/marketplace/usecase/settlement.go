package usecase

import (
	"encoding/json"
	"math/big"
	"sort"

	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/base/log"
	"github.com/astromart/goledger/domain"
	"github.com/astromart/goledger/domain/marketplace"
	"github.com/astromart/goledger/domain/nftregistry"
)

// scheduleSettlement submits the registry transfer-payout call to the
// worker pool. The triggering request returns immediately; the outcome is
// applied by resolvePurchase as its own serialized step.
func (im *impl) scheduleSettlement(c ctx.Ctx, sale *marketplace.Sale) {
	im.dispatch(func() {
		// the originating request context is gone by the time this runs
		bg := ctx.Background()

		req := &nftregistry.TransferPayoutRequest{
			Receiver:      sale.Buyer,
			TokenId:       sale.TokenId,
			ApprovalId:    sale.ApprovalId,
			Price:         sale.Price,
			MaxRecipients: domain.MaxPayoutRecipients,
		}
		body, err := im.registry.TransferPayout(bg, sale.Registry, req)

		im.mu.Lock()
		defer im.mu.Unlock()
		im.resolvePurchase(bg, sale, body, err)
	})
}

// resolvePurchase applies the settlement outcome using only the sale
// snapshot and the current fee configuration. It never re-reads the listing
// or offer stores: those records were removed before the registry call.
func (im *impl) resolvePurchase(c ctx.Ctx, sale *marketplace.Sale, payoutBody []byte, callErr error) {
	c = ctx.WithValues(c, map[string]interface{}{
		"registry": sale.Registry,
		"tokenId":  sale.TokenId,
		"buyer":    sale.Buyer,
		"seller":   sale.Seller,
	})

	if callErr != nil {
		c.WithField("err", callErr).Warn("registry transfer failed, refunding buyer")
		im.refund(c, sale.Buyer, sale.Price)
		im.met.BumpSum("resolve.fail", 1)
		im.emitEvent(c, &marketplace.Event{
			Type:     marketplace.EventResolvePurchaseFail,
			Registry: sale.Registry,
			TokenId:  sale.TokenId,
			Seller:   sale.Seller,
			Buyer:    sale.Buyer,
			Currency: sale.Currency,
			Price:    sale.Price,
			IsOffer:  sale.IsOffer,
		})
		return
	}

	price, err := domain.ToAmount(sale.Price)
	if err != nil {
		c.WithField("err", err).Error("sale price corrupt")
		return
	}

	feeBps := uint16(0)
	treasury := domain.AccountId("")
	if cfg, err := im.getSettings(c); err == nil {
		feeBps = cfg.TransactionFeeBps
		treasury = cfg.Treasury
	}
	fee := new(big.Int).Div(new(big.Int).Mul(price, big.NewInt(int64(feeBps))), big.NewInt(10000))

	payout := parsePayout(payoutBody, price)
	if payout == nil {
		// degraded success: token moved but the registry reported no usable
		// royalty split, so the seller takes the whole remainder
		if fee.Sign() > 0 && !treasury.IsEmpty() {
			im.transfer(c, treasury, fee)
		}
		im.transfer(c, sale.Seller, new(big.Int).Sub(price, fee))
	} else {
		recipients := make([]string, 0, len(payout))
		for acc := range payout {
			recipients = append(recipients, acc)
		}
		sort.Strings(recipients)

		// the fee comes out of the seller's own payout entry, so total
		// outflow never exceeds the reported payout sum. A payout that
		// omits the seller carries no entry to deduct from and no fee is
		// charged.
		for _, acc := range recipients {
			amount := payout[acc]
			if domain.AccountId(acc) == sale.Seller && fee.Sign() > 0 && !treasury.IsEmpty() {
				cut := fee
				if cut.Cmp(amount) > 0 {
					cut = amount
				}
				im.transfer(c, treasury, cut)
				amount = new(big.Int).Sub(amount, cut)
			}
			im.transfer(c, domain.AccountId(acc), amount)
		}
	}

	im.met.BumpSum("resolve.success", 1)
	im.emitEvent(c, &marketplace.Event{
		Type:     marketplace.EventResolvePurchase,
		Registry: sale.Registry,
		TokenId:  sale.TokenId,
		Seller:   sale.Seller,
		Buyer:    sale.Buyer,
		Currency: sale.Currency,
		Price:    sale.Price,
		IsOffer:  sale.IsOffer,
	})
}

func (im *impl) transfer(c ctx.Ctx, to domain.AccountId, amount *big.Int) {
	if amount.Sign() <= 0 {
		return
	}
	if err := im.bank.Transfer(c, to, amount.String()); err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"to":     to,
			"amount": amount.String(),
		}).Error("payout transfer failed")
		im.met.BumpSum("payout.err", 1)
	}
}

type payoutEnvelope struct {
	Payout map[string]string `json:"payout"`
}

// parsePayout decodes a registry's payout report, accepting either a bare
// account->amount map or a {"payout": {...}} envelope. It returns nil when
// the report is absent, malformed, names too many recipients, or its sum is
// inconsistent with the price: amounts may not exceed the price and may
// fall short of it by at most the rounding tolerance.
func parsePayout(body []byte, price *big.Int) map[string]*big.Int {
	if len(body) == 0 {
		return nil
	}

	raw := map[string]string{}
	if err := json.Unmarshal(body, &raw); err != nil || len(raw) == 0 {
		envelope := payoutEnvelope{}
		if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Payout) == 0 {
			return nil
		}
		raw = envelope.Payout
	}

	if len(raw) > domain.MaxPayoutRecipients {
		return nil
	}

	remainder := new(big.Int).Set(price)
	payout := make(map[string]*big.Int, len(raw))
	for acc, s := range raw {
		amount, err := domain.ToAmount(s)
		if err != nil {
			return nil
		}
		remainder.Sub(remainder, amount)
		if remainder.Sign() < 0 {
			return nil
		}
		payout[acc] = amount
	}

	if remainder.Cmp(big.NewInt(domain.PayoutTolerance)) > 0 {
		return nil
	}
	return payout
}
