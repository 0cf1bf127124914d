package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/base/log"
	"github.com/astromart/goledger/domain"
	"github.com/astromart/goledger/domain/marketplace"
	"github.com/astromart/goledger/service/query"
)

type eventRepoImpl struct {
	q query.Mongo
}

func NewEventRepo(q query.Mongo) marketplace.EventRepo {
	return &eventRepoImpl{q}
}

func (im *eventRepoImpl) makeQuery(opts ...marketplace.EventFindAllOptionsFunc) (bson.M, int, int, error) {
	options, err := marketplace.GetEventFindAllOptions(opts...)
	if err != nil {
		return nil, 0, 0, err
	}
	query := bson.M{}

	if options.Type != nil {
		query["type"] = *options.Type
	}

	if options.Registry != nil {
		query["registryId"] = *options.Registry
	}

	if options.TokenId != nil {
		query["tokenId"] = *options.TokenId
	}

	offset, limit := 0, 0
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}

	return query, offset, limit, nil
}

func (im *eventRepoImpl) Insert(ctx ctx.Ctx, e *marketplace.Event) error {
	err := im.q.Insert(ctx, domain.TableSaleEvents, e)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"event": *e,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *eventRepoImpl) FindAll(ctx ctx.Ctx, opts ...marketplace.EventFindAllOptionsFunc) ([]*marketplace.Event, error) {
	query, offset, limit, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	res := []*marketplace.Event{}
	err = im.q.Search(ctx, domain.TableSaleEvents, offset, limit, "-createdAt", query, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}
