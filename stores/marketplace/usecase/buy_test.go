package usecase

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/base/ptr"
	"github.com/astromart/goledger/domain"
	"github.com/astromart/goledger/domain/listing"
	"github.com/astromart/goledger/domain/marketplace"
	"github.com/astromart/goledger/domain/nftregistry"
	"github.com/astromart/goledger/domain/reservation"
)

func testSaleListing() *listing.Listing {
	l := testAuction()
	l.IsAuction = false
	l.StartedAt = nil
	l.EndedAt = nil
	return l
}

func buyParams(deposit string) *marketplace.BuyParams {
	return &marketplace.BuyParams{
		Buyer:    "bob",
		Registry: "nft.registry",
		TokenId:  "token-1",
		Deposit:  deposit,
	}
}

func TestBuyValidation(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	t.Run("auction cannot be bought outright", func(t *testing.T) {
		im, m := newTestImpl()
		m.listingRepo.On("FindOne", mock.Anything, mock.Anything).Return(testAuction(), nil)

		req.Equal(domain.ErrAuctionInProgress, im.Buy(c, buyParams("1000")))
	})

	t.Run("self trade", func(t *testing.T) {
		im, m := newTestImpl()
		m.listingRepo.On("FindOne", mock.Anything, mock.Anything).Return(testSaleListing(), nil)

		p := buyParams("1000")
		p.Buyer = "alice"
		req.Equal(domain.ErrSelfTrade, im.Buy(c, p))
	})

	t.Run("currency guard", func(t *testing.T) {
		im, m := newTestImpl()
		m.listingRepo.On("FindOne", mock.Anything, mock.Anything).Return(testSaleListing(), nil)

		p := buyParams("1000")
		cur := domain.AccountId("usdt.token")
		p.Currency = &cur
		req.Equal(domain.ErrCurrencyMismatch, im.Buy(c, p))
	})

	t.Run("price guard", func(t *testing.T) {
		im, m := newTestImpl()
		m.listingRepo.On("FindOne", mock.Anything, mock.Anything).Return(testSaleListing(), nil)

		p := buyParams("1000")
		p.Price = ptr.String("999")
		req.Equal(domain.ErrPriceMismatch, im.Buy(c, p))
	})

	t.Run("deposit below price", func(t *testing.T) {
		im, m := newTestImpl()
		m.listingRepo.On("FindOne", mock.Anything, mock.Anything).Return(testSaleListing(), nil)

		req.Equal(domain.ErrDepositTooLow, im.Buy(c, buyParams("999")))
	})

	t.Run("missing listing", func(t *testing.T) {
		im, m := newTestImpl()
		m.listingRepo.On("FindOne", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

		req.Equal(domain.ErrNotFound, im.Buy(c, buyParams("1000")))
	})
}

func TestBuySchedulesSettlement(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	im, m := newTestImpl()

	l := testSaleListing()
	m.listingRepo.On("FindOne", mock.Anything, l.ToId()).Return(l, nil)
	m.listingRepo.On("Remove", mock.Anything, l.ToId()).Return(nil)
	m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)
	m.reservationRepo.On("Remove", mock.Anything, domain.AccountId("alice"), reservation.KindListing, mock.Anything).Return(nil)
	m.eventRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	m.bank.On("Transfer", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.registry.On("TransferPayout", mock.Anything, domain.AccountId("nft.registry"), mock.Anything).Return(nil, nil)

	req.NoError(im.Buy(c, buyParams("1000")))
	req.Len(m.tasks, 1)

	m.runTasks()

	reqArg := m.registry.Calls[0].Arguments.Get(2).(*nftregistry.TransferPayoutRequest)
	req.Equal(domain.AccountId("bob"), reqArg.Receiver)
	req.Equal(domain.TokenId("token-1"), reqArg.TokenId)
	req.Equal(uint64(7), reqArg.ApprovalId)
	req.Equal("1000", reqArg.Price)

	// fee = 1000 * 200 / 10000 = 20
	m.bank.AssertCalled(t, "Transfer", mock.Anything, domain.AccountId("treasury"), "20")
	m.bank.AssertCalled(t, "Transfer", mock.Anything, domain.AccountId("alice"), "980")
	m.listingRepo.AssertCalled(t, "Remove", mock.Anything, l.ToId())
}

func TestBuyRefundsExcessDeposit(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	im, m := newTestImpl()

	l := testSaleListing()
	m.listingRepo.On("FindOne", mock.Anything, l.ToId()).Return(l, nil)
	m.listingRepo.On("Remove", mock.Anything, l.ToId()).Return(nil)
	m.reservationRepo.On("Remove", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.eventRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	m.bank.On("Transfer", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.registry.On("TransferPayout", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	req.NoError(im.Buy(c, buyParams("1250")))

	// only the excess moves before settlement resolves
	m.bank.AssertCalled(t, "Transfer", mock.Anything, domain.AccountId("bob"), "250")
	m.bank.AssertNumberOfCalls(t, "Transfer", 1)
}
