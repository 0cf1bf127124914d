package usecase

import (
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/viney-shih/goroutines"

	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/base/log"
	"github.com/astromart/goledger/base/metrics"
	"github.com/astromart/goledger/base/priceformatter"
	"github.com/astromart/goledger/domain"
	"github.com/astromart/goledger/domain/bank"
	"github.com/astromart/goledger/domain/deposit"
	"github.com/astromart/goledger/domain/listing"
	"github.com/astromart/goledger/domain/marketplace"
	"github.com/astromart/goledger/domain/nftregistry"
	"github.com/astromart/goledger/domain/offer"
	"github.com/astromart/goledger/domain/reservation"
	"github.com/astromart/goledger/domain/settings"
)

type MarketplaceUseCaseCfg struct {
	ListingRepo     listing.Repo
	OfferRepo       offer.Repo
	ReservationRepo reservation.Repo
	DepositRepo     deposit.Repo
	SettingsRepo    settings.Repo
	EventRepo       marketplace.EventRepo
	Bank            bank.Service
	Registry        nftregistry.Client
	Metrics         metrics.Service
}

type impl struct {
	listingRepo     listing.Repo
	offerRepo       offer.Repo
	reservationRepo reservation.Repo
	depositRepo     deposit.Repo
	settingsRepo    settings.Repo
	eventRepo       marketplace.EventRepo
	bank            bank.Service
	registry        nftregistry.Client
	met             metrics.Service

	// mu serializes every state-mutating operation, reproducing the host
	// ledger's run-to-completion execution model.
	mu         sync.Mutex
	workerPool *goroutines.Pool
	dispatch   func(task func())
	clock      func() time.Time
}

func New(cfg *MarketplaceUseCaseCfg) marketplace.UseCase {
	im := &impl{
		listingRepo:     cfg.ListingRepo,
		offerRepo:       cfg.OfferRepo,
		reservationRepo: cfg.ReservationRepo,
		depositRepo:     cfg.DepositRepo,
		settingsRepo:    cfg.SettingsRepo,
		eventRepo:       cfg.EventRepo,
		bank:            cfg.Bank,
		registry:        cfg.Registry,
		met:             cfg.Metrics,
		workerPool:      goroutines.NewPool(32, goroutines.WithTaskQueueLength(1024), goroutines.WithPreAllocWorkers(8)),
		clock:           time.Now,
	}
	im.dispatch = func(task func()) {
		im.workerPool.Schedule(task)
	}
	return im
}

func assertOneUnit(deposit string) error {
	cmp, err := domain.CmpAmounts(deposit, domain.OneUnit)
	if err != nil || cmp != 0 {
		return domain.ErrOneUnitRequired
	}
	return nil
}

func (im *impl) getSettings(ctx ctx.Ctx) (*settings.Settings, error) {
	cfg, err := im.settingsRepo.Get(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("settingsRepo.Get failed")
		return nil, err
	}
	return cfg, nil
}

// requireOwner loads settings and checks the caller is the contract owner
func (im *impl) requireOwner(ctx ctx.Ctx, caller domain.AccountId) (*settings.Settings, error) {
	cfg, err := im.getSettings(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.Owner != caller {
		return nil, domain.ErrOwnerOnly
	}
	return cfg, nil
}

// checkStorageQuota admits one more reservation for the account when its
// deposit covers (reservations + 1) * unit cost
func (im *impl) checkStorageQuota(ctx ctx.Ctx, account domain.AccountId) error {
	cnt, err := im.reservationRepo.CountByAccount(ctx, account)
	if err != nil {
		return err
	}

	balance := big.NewInt(0)
	if d, err := im.depositRepo.Get(ctx, account); err == nil {
		if balance, err = domain.ToAmount(d.Balance); err != nil {
			return err
		}
	} else if err != domain.ErrNotFound {
		return err
	}

	unit, _ := domain.ToAmount(domain.StorageCostPerReservation)
	required := new(big.Int).Mul(unit, big.NewInt(int64(cnt)+1))
	if balance.Cmp(required) < 0 {
		ctx.WithFields(log.Fields{
			"account":  account,
			"balance":  balance.String(),
			"required": required.String(),
		}).Warn("storage quota not met")
		return domain.ErrDepositTooLow
	}
	return nil
}

// refund moves escrow back out through the bank, logging but tolerating
// transfer rejections: a failed refund must not roll back ledger state
func (im *impl) refund(ctx ctx.Ctx, to domain.AccountId, amount string) {
	if err := im.bank.Transfer(ctx, to, amount); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"to":     to,
			"amount": amount,
		}).Error("refund transfer failed")
		im.met.BumpSum("refund.err", 1)
	}
}

func (im *impl) emitEvent(ctx ctx.Ctx, e *marketplace.Event) {
	e.Id = uuid.New().String()
	e.CreatedAt = im.clock()
	if e.Price != "" {
		if dp, err := priceformatter.DisplayPrice(e.Price); err == nil {
			e.DisplayPrice = dp
		}
	}
	if err := im.eventRepo.Insert(ctx, e); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"event": *e,
		}).Error("eventRepo.Insert failed")
	}
}

func (im *impl) GetEvents(ctx ctx.Ctx, opts ...marketplace.EventFindAllOptionsFunc) ([]*marketplace.Event, error) {
	res, err := im.eventRepo.FindAll(ctx, opts...)
	if err != nil {
		ctx.WithField("err", err).Error("eventRepo.FindAll failed")
		return nil, err
	}
	return res, nil
}
