package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/base/log"
	"github.com/astromart/goledger/domain"
	"github.com/astromart/goledger/domain/reservation"
	"github.com/astromart/goledger/service/query"
)

type reservationRepoImpl struct {
	q query.Mongo
}

func NewReservationRepo(q query.Mongo) reservation.Repo {
	return &reservationRepoImpl{q}
}

func (im *reservationRepoImpl) Insert(ctx ctx.Ctx, r *reservation.Reservation) error {
	err := im.q.Insert(ctx, domain.TableReservations, r)
	if err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":         err,
			"reservation": *r,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *reservationRepoImpl) Remove(ctx ctx.Ctx, account domain.AccountId, kind reservation.Kind, key string) error {
	selector := bson.M{
		"accountId": account,
		"kind":      kind,
		"key":       key,
	}

	err := im.q.Remove(ctx, domain.TableReservations, selector)
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("failed to q.Remove")
		return err
	}
	return nil
}

func (im *reservationRepoImpl) CountByAccount(ctx ctx.Ctx, account domain.AccountId) (int, error) {
	selector := bson.M{"accountId": account}

	cnt, err := im.q.Count(ctx, domain.TableReservations, selector)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"accountId": account,
		}).Error("failed to q.Count")
		return 0, err
	}
	return cnt, nil
}

func (im *reservationRepoImpl) FindByAccount(ctx ctx.Ctx, account domain.AccountId) ([]*reservation.Reservation, error) {
	selector := bson.M{"accountId": account}

	res := []*reservation.Reservation{}
	err := im.q.Search(ctx, domain.TableReservations, 0, 0, "_id", selector, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"accountId": account,
		}).Error("failed to q.Search")
		return nil, err
	}
	return res, nil
}
