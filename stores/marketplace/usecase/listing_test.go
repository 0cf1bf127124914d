package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/base/ptr"
	"github.com/astromart/goledger/domain"
	"github.com/astromart/goledger/domain/keys"
	"github.com/astromart/goledger/domain/listing"
	"github.com/astromart/goledger/domain/marketplace"
	"github.com/astromart/goledger/domain/reservation"
)

func saleApproval(price string) *marketplace.RegistryApprovalParams {
	return &marketplace.RegistryApprovalParams{
		Registry:   "nft.registry",
		Owner:      "alice",
		TokenId:    "token-1",
		ApprovalId: 7,
		Msg: marketplace.ApprovalMsg{
			MarketType: marketplace.MarketTypeSale,
			Price:      price,
		},
	}
}

func TestCreateListing(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	im, m := newTestImpl()

	m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)
	m.listingRepo.On("FindOne", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	m.listingRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	m.reservationRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	m.eventRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	allowStorage(m, "alice")

	req.NoError(im.RegistryApproval(c, saleApproval("1000")))

	stored := m.listingRepo.Calls[1].Arguments.Get(1).(*listing.Listing)
	req.Equal(&listing.Listing{
		Owner:      "alice",
		ApprovalId: 7,
		Registry:   "nft.registry",
		TokenId:    "token-1",
		Currency:   domain.NativeCurrency,
		Price:      "1000",
	}, stored)

	res := m.reservationRepo.Calls[1].Arguments.Get(1).(*reservation.Reservation)
	req.Equal(domain.AccountId("alice"), res.Account)
	req.Equal(reservation.KindListing, res.Kind)
	req.Equal(keys.ListingKey("nft.registry", "token-1"), res.Key)
}

func TestCreateListingValidation(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	t.Run("registry not approved", func(t *testing.T) {
		im, m := newTestImpl()
		m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)

		p := saleApproval("1000")
		p.Registry = "rogue.registry"
		req.Equal(domain.ErrRegistryNotApproved, im.RegistryApproval(c, p))
	})

	t.Run("zero price", func(t *testing.T) {
		im, m := newTestImpl()
		m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)

		req.Equal(domain.ErrBadParamInput, im.RegistryApproval(c, saleApproval("0")))
	})

	t.Run("price at cap", func(t *testing.T) {
		im, m := newTestImpl()
		m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)

		req.Equal(domain.ErrPriceTooHigh, im.RegistryApproval(c, saleApproval(domain.MaxPrice().String())))
	})

	t.Run("unapproved currency", func(t *testing.T) {
		im, m := newTestImpl()
		m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)

		p := saleApproval("1000")
		p.Msg.Currency = "usdt.token"
		req.Equal(domain.ErrCurrencyNotSupported, im.RegistryApproval(c, p))
	})

	t.Run("start in the past", func(t *testing.T) {
		im, m := newTestImpl()
		m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)

		p := saleApproval("1000")
		p.Msg.StartedAt = ptr.Time(testNow.Add(-time.Minute))
		req.Equal(domain.ErrInvalidTimeWindow, im.RegistryApproval(c, p))
	})

	t.Run("end in the past", func(t *testing.T) {
		im, m := newTestImpl()
		m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)

		p := saleApproval("1000")
		p.Msg.EndedAt = ptr.Time(testNow.Add(-time.Minute))
		req.Equal(domain.ErrInvalidTimeWindow, im.RegistryApproval(c, p))
	})

	t.Run("start not before end", func(t *testing.T) {
		im, m := newTestImpl()
		m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)

		p := saleApproval("1000")
		p.Msg.StartedAt = ptr.Time(testNow.Add(2 * time.Hour))
		p.Msg.EndedAt = ptr.Time(testNow.Add(time.Hour))
		req.Equal(domain.ErrInvalidTimeWindow, im.RegistryApproval(c, p))
	})

	t.Run("storage quota exhausted", func(t *testing.T) {
		im, m := newTestImpl()
		m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)
		m.listingRepo.On("FindOne", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
		m.reservationRepo.On("CountByAccount", mock.Anything, domain.AccountId("alice")).Return(1, nil)
		m.depositRepo.On("Get", mock.Anything, domain.AccountId("alice")).Return(nil, domain.ErrNotFound)

		req.Equal(domain.ErrDepositTooLow, im.RegistryApproval(c, saleApproval("1000")))
	})
}

func TestCreateListingReplacesExisting(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	im, m := newTestImpl()

	old := testAuction()
	old.Bids = []listing.Bid{{Bidder: "carol", Price: "1100"}}
	m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)
	m.listingRepo.On("FindOne", mock.Anything, old.ToId()).Return(old, nil)
	m.listingRepo.On("Remove", mock.Anything, old.ToId()).Return(nil)
	m.listingRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	m.reservationRepo.On("Remove", mock.Anything, domain.AccountId("alice"), reservation.KindListing, mock.Anything).Return(nil)
	m.reservationRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	m.eventRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	m.bank.On("Transfer", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	allowStorage(m, "alice")

	req.NoError(im.RegistryApproval(c, saleApproval("2000")))

	m.bank.AssertCalled(t, "Transfer", mock.Anything, domain.AccountId("carol"), "1100")
	m.bank.AssertNumberOfCalls(t, "Transfer", 1)
	m.listingRepo.AssertCalled(t, "Remove", mock.Anything, old.ToId())
}

func TestUpdateListingPrice(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	params := func() *marketplace.UpdateListingPriceParams {
		return &marketplace.UpdateListingPriceParams{
			Caller:   "alice",
			Registry: "nft.registry",
			TokenId:  "token-1",
			Currency: domain.NativeCurrency,
			Price:    "2000",
			Deposit:  domain.OneUnit,
		}
	}

	t.Run("updates price", func(t *testing.T) {
		im, m := newTestImpl()
		l := testAuction()
		m.listingRepo.On("FindOne", mock.Anything, l.ToId()).Return(l, nil)
		m.listingRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
		m.eventRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)

		req.NoError(im.UpdateListingPrice(c, params()))

		stored := m.listingRepo.Calls[1].Arguments.Get(1).(*listing.Listing)
		req.Equal("2000", stored.Price)
	})

	t.Run("owner only", func(t *testing.T) {
		im, m := newTestImpl()
		m.listingRepo.On("FindOne", mock.Anything, mock.Anything).Return(testAuction(), nil)

		p := params()
		p.Caller = "bob"
		req.Equal(domain.ErrOwnerOnly, im.UpdateListingPrice(c, p))
	})

	t.Run("currency mismatch", func(t *testing.T) {
		im, m := newTestImpl()
		m.listingRepo.On("FindOne", mock.Anything, mock.Anything).Return(testAuction(), nil)

		p := params()
		p.Currency = "usdt.token"
		req.Equal(domain.ErrCurrencyMismatch, im.UpdateListingPrice(c, p))
	})

	t.Run("one unit required", func(t *testing.T) {
		im, _ := newTestImpl()

		p := params()
		p.Deposit = "0"
		req.Equal(domain.ErrOneUnitRequired, im.UpdateListingPrice(c, p))
	})
}

func TestDeleteListing(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	params := func(caller domain.AccountId) *marketplace.DeleteListingParams {
		return &marketplace.DeleteListingParams{
			Caller:   caller,
			Registry: "nft.registry",
			TokenId:  "token-1",
			Deposit:  domain.OneUnit,
		}
	}

	t.Run("owner deletes, bids refunded", func(t *testing.T) {
		im, m := newTestImpl()
		l := testAuction()
		l.Bids = []listing.Bid{{Bidder: "carol", Price: "1100"}}
		m.listingRepo.On("FindOne", mock.Anything, l.ToId()).Return(l, nil)
		m.listingRepo.On("Remove", mock.Anything, l.ToId()).Return(nil)
		m.reservationRepo.On("Remove", mock.Anything, domain.AccountId("alice"), reservation.KindListing, mock.Anything).Return(nil)
		m.eventRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
		m.bank.On("Transfer", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		req.NoError(im.DeleteListing(c, params("alice")))
		m.bank.AssertCalled(t, "Transfer", mock.Anything, domain.AccountId("carol"), "1100")
	})

	t.Run("contract owner may delete", func(t *testing.T) {
		im, m := newTestImpl()
		l := testAuction()
		m.listingRepo.On("FindOne", mock.Anything, l.ToId()).Return(l, nil)
		m.listingRepo.On("Remove", mock.Anything, l.ToId()).Return(nil)
		m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)
		m.reservationRepo.On("Remove", mock.Anything, domain.AccountId("alice"), reservation.KindListing, mock.Anything).Return(nil)
		m.eventRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)

		req.NoError(im.DeleteListing(c, params("owner")))
	})

	t.Run("third party rejected", func(t *testing.T) {
		im, m := newTestImpl()
		m.listingRepo.On("FindOne", mock.Anything, mock.Anything).Return(testAuction(), nil)
		m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)

		req.Equal(domain.ErrOwnerOnly, im.DeleteListing(c, params("mallory")))
	})
}
