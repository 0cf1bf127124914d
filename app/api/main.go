package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/base/database/mongoclient"
	"github.com/astromart/goledger/base/database/redisclient"
	"github.com/astromart/goledger/base/log"
	"github.com/astromart/goledger/base/metrics"
	bValidator "github.com/astromart/goledger/base/validator"
	"github.com/astromart/goledger/domain"
	"github.com/astromart/goledger/domain/settings"
	mmiddleware "github.com/astromart/goledger/middleware"
	bank_service "github.com/astromart/goledger/service/bank"
	nftregistry_service "github.com/astromart/goledger/service/nftregistry"
	"github.com/astromart/goledger/service/query"
	"github.com/astromart/goledger/service/redis"
	auth_delivery "github.com/astromart/goledger/stores/auth/delivery/http"
	auth_middleware "github.com/astromart/goledger/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/astromart/goledger/stores/auth/usecase"
	deposit_repository "github.com/astromart/goledger/stores/deposit/repository"
	event_repository "github.com/astromart/goledger/stores/event/repository"
	hc_delivery "github.com/astromart/goledger/stores/healthcheck/delivery/http"
	hc_repo "github.com/astromart/goledger/stores/healthcheck/repository"
	hc_usecase "github.com/astromart/goledger/stores/healthcheck/usecase"
	listing_repository "github.com/astromart/goledger/stores/listing/repository"
	marketplace_delivery "github.com/astromart/goledger/stores/marketplace/delivery/http"
	marketplace_usecase "github.com/astromart/goledger/stores/marketplace/usecase"
	offer_repository "github.com/astromart/goledger/stores/offer/repository"
	reservation_repository "github.com/astromart/goledger/stores/reservation/repository"
	settings_repository "github.com/astromart/goledger/stores/settings/repository"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	// init Redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), redisCachePool)

	mmiddleware.SetupCache(redisCache)

	// outbound ledger gateway and registry clients
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = 3
	retryClient.HTTPClient.Timeout = viper.GetDuration("gateway.timeout")

	bankService := bank_service.New(viper.GetString("gateway.bankEndpoint"), retryClient)
	registryClient := nftregistry_service.New(viper.GetString("gateway.registryEndpoint"), retryClient)

	// repositories
	listingRepo := listing_repository.NewListingRepo(q)
	offerRepo := offer_repository.NewOfferRepo(q)
	reservationRepo := reservation_repository.NewReservationRepo(q)
	depositRepo := deposit_repository.NewDepositRepo(q)
	settingsRepo := settings_repository.NewSettingsRepo(q)
	eventRepo := event_repository.NewEventRepo(q)
	hcRepo := hc_repo.New(mongoClient, redisCache)

	seedSettings(context, settingsRepo)

	// usecases
	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"))
	hc := hc_usecase.New(hcRepo)
	mp := marketplace_usecase.New(&marketplace_usecase.MarketplaceUseCaseCfg{
		ListingRepo:     listingRepo,
		OfferRepo:       offerRepo,
		ReservationRepo: reservationRepo,
		DepositRepo:     depositRepo,
		SettingsRepo:    settingsRepo,
		EventRepo:       eventRepo,
		Bank:            bankService,
		Registry:        registryClient,
		Metrics:         metrics.New("marketplace"),
	})

	authMiddleware := auth_middleware.New(auth)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth)
	marketplace_delivery.New(e, mp, authMiddleware)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}

// seedSettings writes the initial settings document on first boot. Every
// later mutation goes through the owner-gated operations.
func seedSettings(context ctx.Ctx, repo settings.Repo) {
	if _, err := repo.Get(context); err == nil {
		return
	} else if err != domain.ErrNotFound {
		context.WithField("err", err).Panic("settingsRepo.Get failed")
	}

	registries := []domain.AccountId{}
	for _, r := range viper.GetStringSlice("marketplace.approvedRegistries") {
		registries = append(registries, domain.AccountId(r))
	}

	s := &settings.Settings{
		Key:                settings.Key,
		Owner:              domain.AccountId(viper.GetString("marketplace.owner")),
		Treasury:           domain.AccountId(viper.GetString("marketplace.treasury")),
		TransactionFeeBps:  uint16(viper.GetUint32("marketplace.transactionFeeBps")),
		ApprovedRegistries: registries,
		ApprovedCurrencies: []domain.AccountId{domain.NativeCurrency},
	}
	if err := repo.Upsert(context, s); err != nil {
		context.WithField("err", err).Panic("seed settings failed")
	}
	context.Info("seeded marketplace settings")
}
