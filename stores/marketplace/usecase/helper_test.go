package usecase

import (
	"time"

	"github.com/astromart/goledger/base/metrics"
	mBank "github.com/astromart/goledger/domain/bank/mocks"
	mDeposit "github.com/astromart/goledger/domain/deposit/mocks"
	mListing "github.com/astromart/goledger/domain/listing/mocks"
	mEvent "github.com/astromart/goledger/domain/marketplace/mocks"
	mRegistry "github.com/astromart/goledger/domain/nftregistry/mocks"
	mOffer "github.com/astromart/goledger/domain/offer/mocks"
	mReservation "github.com/astromart/goledger/domain/reservation/mocks"
	mSettings "github.com/astromart/goledger/domain/settings/mocks"
)

var testNow = time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)

type testMocks struct {
	listingRepo     *mListing.Repo
	offerRepo       *mOffer.Repo
	reservationRepo *mReservation.Repo
	depositRepo     *mDeposit.Repo
	settingsRepo    *mSettings.Repo
	eventRepo       *mEvent.EventRepo
	bank            *mBank.Service
	registry        *mRegistry.Client

	tasks []func()
}

// runTasks drains the captured settlement tasks. They are executed after
// the triggering operation returned, like the worker pool would.
func (m *testMocks) runTasks() {
	for len(m.tasks) > 0 {
		task := m.tasks[0]
		m.tasks = m.tasks[1:]
		task()
	}
}

func newTestImpl() (*impl, *testMocks) {
	m := &testMocks{
		listingRepo:     &mListing.Repo{},
		offerRepo:       &mOffer.Repo{},
		reservationRepo: &mReservation.Repo{},
		depositRepo:     &mDeposit.Repo{},
		settingsRepo:    &mSettings.Repo{},
		eventRepo:       &mEvent.EventRepo{},
		bank:            &mBank.Service{},
		registry:        &mRegistry.Client{},
	}

	im := &impl{
		listingRepo:     m.listingRepo,
		offerRepo:       m.offerRepo,
		reservationRepo: m.reservationRepo,
		depositRepo:     m.depositRepo,
		settingsRepo:    m.settingsRepo,
		eventRepo:       m.eventRepo,
		bank:            m.bank,
		registry:        m.registry,
		met:             metrics.New("test"),
		clock:           func() time.Time { return testNow },
	}
	im.dispatch = func(task func()) {
		m.tasks = append(m.tasks, task)
	}
	return im, m
}
