package usecase

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/domain"
	"github.com/astromart/goledger/domain/marketplace"
	"github.com/astromart/goledger/domain/settings"
)

func testSettings() *settings.Settings {
	return &settings.Settings{
		Key:                settings.Key,
		Owner:              "owner",
		Treasury:           "treasury",
		TransactionFeeBps:  200,
		ApprovedRegistries: []domain.AccountId{"nft.registry"},
		ApprovedCurrencies: []domain.AccountId{domain.NativeCurrency},
	}
}

func testSale() *marketplace.Sale {
	return &marketplace.Sale{
		Seller:     "alice",
		Buyer:      "bob",
		Registry:   "nft.registry",
		TokenId:    "token-1",
		Currency:   domain.NativeCurrency,
		ApprovalId: 7,
		Price:      "1000",
	}
}

func TestResolvePurchaseWithRoyalties(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	im, m := newTestImpl()

	m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)
	m.eventRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	m.bank.On("Transfer", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	payout := []byte(`{"payout":{"alice":"950","royal.near":"50"}}`)
	im.resolvePurchase(c, testSale(), payout, nil)

	// fee = 1000 * 200 / 10000 = 20, deducted from the seller's entry
	m.bank.AssertCalled(t, "Transfer", mock.Anything, domain.AccountId("treasury"), "20")
	m.bank.AssertCalled(t, "Transfer", mock.Anything, domain.AccountId("alice"), "930")
	m.bank.AssertCalled(t, "Transfer", mock.Anything, domain.AccountId("royal.near"), "50")
	m.bank.AssertNumberOfCalls(t, "Transfer", 3)

	req.Len(m.eventRepo.Calls, 1)
	e := m.eventRepo.Calls[0].Arguments.Get(1).(*marketplace.Event)
	req.Equal(marketplace.EventResolvePurchase, e.Type)
	req.Equal("1000", e.Price)
}

func TestResolvePurchaseBareMapPayout(t *testing.T) {
	c := ctx.Background()
	im, m := newTestImpl()

	m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)
	m.eventRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	m.bank.On("Transfer", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	payout := []byte(`{"alice":"950","royal.near":"50"}`)
	im.resolvePurchase(c, testSale(), payout, nil)

	m.bank.AssertCalled(t, "Transfer", mock.Anything, domain.AccountId("treasury"), "20")
	m.bank.AssertCalled(t, "Transfer", mock.Anything, domain.AccountId("alice"), "930")
	m.bank.AssertCalled(t, "Transfer", mock.Anything, domain.AccountId("royal.near"), "50")
	m.bank.AssertNumberOfCalls(t, "Transfer", 3)
}

func TestResolvePurchaseSellerlessPayoutChargesNoFee(t *testing.T) {
	c := ctx.Background()
	im, m := newTestImpl()

	m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)
	m.eventRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	m.bank.On("Transfer", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	// the registry routed the whole price to a royalty account; there is no
	// seller entry to deduct the fee from, so outflow stays at the price
	payout := []byte(`{"royal.near":"1000"}`)
	im.resolvePurchase(c, testSale(), payout, nil)

	m.bank.AssertCalled(t, "Transfer", mock.Anything, domain.AccountId("royal.near"), "1000")
	m.bank.AssertNotCalled(t, "Transfer", mock.Anything, domain.AccountId("treasury"), mock.Anything)
	m.bank.AssertNumberOfCalls(t, "Transfer", 1)
}

func TestResolvePurchaseSellerEntryBelowFee(t *testing.T) {
	c := ctx.Background()
	im, m := newTestImpl()

	m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)
	m.eventRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	m.bank.On("Transfer", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	// fee is 20 but the seller's entry is only 5; the fee is capped at the
	// entry so recipients still receive exactly the payout sum
	payout := []byte(`{"alice":"5","royal.near":"995"}`)
	im.resolvePurchase(c, testSale(), payout, nil)

	m.bank.AssertCalled(t, "Transfer", mock.Anything, domain.AccountId("treasury"), "5")
	m.bank.AssertCalled(t, "Transfer", mock.Anything, domain.AccountId("royal.near"), "995")
	m.bank.AssertNotCalled(t, "Transfer", mock.Anything, domain.AccountId("alice"), mock.Anything)
	m.bank.AssertNumberOfCalls(t, "Transfer", 2)
}

func TestResolvePurchaseNoPayout(t *testing.T) {
	c := ctx.Background()
	im, m := newTestImpl()

	m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)
	m.eventRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	m.bank.On("Transfer", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	im.resolvePurchase(c, testSale(), nil, nil)

	m.bank.AssertCalled(t, "Transfer", mock.Anything, domain.AccountId("treasury"), "20")
	m.bank.AssertCalled(t, "Transfer", mock.Anything, domain.AccountId("alice"), "980")
	m.bank.AssertNumberOfCalls(t, "Transfer", 2)
}

func TestResolvePurchaseInconsistentPayoutFallsBack(t *testing.T) {
	c := ctx.Background()

	cases := []struct {
		name string
		body []byte
	}{
		{"over sum", []byte(`{"alice":"900","royal.near":"200"}`)},
		{"short sum beyond tolerance", []byte(`{"alice":"800"}`)},
		{"garbage", []byte(`not json`)},
		{"negative amount", []byte(`{"alice":"-100","royal.near":"1100"}`)},
	}

	for _, tc := range cases {
		im, m := newTestImpl()
		m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)
		m.eventRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
		m.bank.On("Transfer", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		im.resolvePurchase(c, testSale(), tc.body, nil)

		m.bank.AssertCalled(t, "Transfer", mock.Anything, domain.AccountId("alice"), "980")
		m.bank.AssertNumberOfCalls(t, "Transfer", 2)
	}
}

func TestResolvePurchaseShortSumWithinTolerance(t *testing.T) {
	c := ctx.Background()
	im, m := newTestImpl()

	m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)
	m.eventRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	m.bank.On("Transfer", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	// sums to 950, 50 units short but within the 100-unit tolerance
	payout := []byte(`{"alice":"900","royal.near":"50"}`)
	im.resolvePurchase(c, testSale(), payout, nil)

	m.bank.AssertCalled(t, "Transfer", mock.Anything, domain.AccountId("alice"), "880")
	m.bank.AssertCalled(t, "Transfer", mock.Anything, domain.AccountId("royal.near"), "50")
	m.bank.AssertCalled(t, "Transfer", mock.Anything, domain.AccountId("treasury"), "20")
	m.bank.AssertNumberOfCalls(t, "Transfer", 3)
}

func TestResolvePurchaseRegistryFailureRefundsBuyer(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	im, m := newTestImpl()

	m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)
	m.eventRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	m.bank.On("Transfer", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	im.resolvePurchase(c, testSale(), nil, errors.New("custody transfer rejected"))

	// full refund, no fee retained
	m.bank.AssertCalled(t, "Transfer", mock.Anything, domain.AccountId("bob"), "1000")
	m.bank.AssertNumberOfCalls(t, "Transfer", 1)

	req.Len(m.eventRepo.Calls, 1)
	e := m.eventRepo.Calls[0].Arguments.Get(1).(*marketplace.Event)
	req.Equal(marketplace.EventResolvePurchaseFail, e.Type)
}

func TestResolvePurchaseZeroFee(t *testing.T) {
	c := ctx.Background()
	im, m := newTestImpl()

	cfg := testSettings()
	cfg.TransactionFeeBps = 0
	m.settingsRepo.On("Get", mock.Anything).Return(cfg, nil)
	m.eventRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	m.bank.On("Transfer", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	im.resolvePurchase(c, testSale(), nil, nil)

	m.bank.AssertCalled(t, "Transfer", mock.Anything, domain.AccountId("alice"), "1000")
	m.bank.AssertNumberOfCalls(t, "Transfer", 1)
}

func TestParsePayout(t *testing.T) {
	req := require.New(t)
	price := big.NewInt(1000)

	res := parsePayout([]byte(`{"a":"600","b":"400"}`), price)
	req.NotNil(res)
	req.Equal(big.NewInt(600), res["a"])
	req.Equal(big.NewInt(400), res["b"])

	res = parsePayout([]byte(`{"payout":{"a":"600","b":"400"}}`), price)
	req.NotNil(res)

	req.Nil(parsePayout(nil, price))
	req.Nil(parsePayout([]byte(`{}`), price))
	req.Nil(parsePayout([]byte(`{"a":"600","b":"500"}`), price))
	req.Nil(parsePayout([]byte(`{"a":"600"}`), price))
	req.Nil(parsePayout([]byte(`{"a":"abc"}`), price))

	// exactly at tolerance boundary
	req.NotNil(parsePayout([]byte(`{"a":"900"}`), price))
	req.Nil(parsePayout([]byte(`{"a":"899"}`), price))

	// recipient cap
	over := []byte(`{"r1":"1","r2":"1","r3":"1","r4":"1","r5":"1","r6":"1","r7":"1","r8":"1","r9":"1","r10":"1","r11":"990"}`)
	req.Nil(parsePayout(over, price))
}
