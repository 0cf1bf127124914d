package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/base/log"
	"github.com/astromart/goledger/domain"
	"github.com/astromart/goledger/domain/settings"
	"github.com/astromart/goledger/service/query"
)

type settingsRepoImpl struct {
	q query.Mongo
}

func NewSettingsRepo(q query.Mongo) settings.Repo {
	return &settingsRepoImpl{q}
}

func (im *settingsRepoImpl) Get(ctx ctx.Ctx) (*settings.Settings, error) {
	selector := bson.M{"key": settings.Key}

	res := settings.Settings{}
	err := im.q.FindOne(ctx, domain.TableSettings, selector, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return &res, nil
}

func (im *settingsRepoImpl) Upsert(ctx ctx.Ctx, s *settings.Settings) error {
	s.Key = settings.Key
	selector := bson.M{"key": settings.Key}

	err := im.q.Upsert(ctx, domain.TableSettings, selector, s)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"settings": *s,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}
