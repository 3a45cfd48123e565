// Package service holds the cross-module travel plan orchestration.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"travelplan/internal/maps"
	"travelplan/internal/modules/travelplan"
)

type planRequester interface {
	Itinerary(ctx context.Context, in travelplan.TravelFormInput) (*travelplan.Itinerary, error)
	Eateries(ctx context.Context, in travelplan.TravelFormInput) (*travelplan.Eateries, error)
	Faqs(ctx context.Context, in travelplan.TravelFormInput) (*travelplan.Faqs, error)
}

type destinationLookup interface {
	PopularDestinations(ctx context.Context, destination string) ([]maps.Place, error)
}

type planStore interface {
	Ping(ctx context.Context) error
	Create(ctx context.Context, p *travelplan.TravelPlan) error
}

// TripPlanner generates every section of a travel plan concurrently and stores the result.
type TripPlanner struct {
	requests     planRequester
	destinations destinationLookup
	store        planStore
	newID        func() uuid.UUID
	now          func() time.Time
}

// NewTripPlanner creates a TripPlanner with initialized dependencies.
func NewTripPlanner(requests planRequester, destinations destinationLookup, store planStore) *TripPlanner {
	return &TripPlanner{
		requests:     requests,
		destinations: destinations,
		store:        store,
		newID:        uuid.New,
		now:          time.Now,
	}
}

// GenerateFullTravelPlan runs the itinerary, eateries, FAQ, and popular-destination
// lookups in parallel and persists the combined plan. Nothing is stored unless all
// four succeed. The returned error is a *travelplan.Error of kind Persistence or
// Aggregation wrapping the cause.
func (p *TripPlanner) GenerateFullTravelPlan(ctx context.Context, in travelplan.TravelFormInput, ownerUID string) (uuid.UUID, error) {
	const op = "service.GenerateFullTravelPlan"
	log := zap.L().With(zap.String("destination", in.Destination))

	if err := p.store.Ping(ctx); err != nil {
		log.Error("storage unavailable", zap.Error(err))
		return uuid.Nil, &travelplan.Error{Kind: travelplan.KindPersistence, Op: op, Err: err}
	}

	var (
		itinerary *travelplan.Itinerary
		eateries  *travelplan.Eateries
		faqs      *travelplan.Faqs
		popular   []maps.Place
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		itinerary, err = p.requests.Itinerary(gctx, in)
		return err
	})
	g.Go(func() (err error) {
		eateries, err = p.requests.Eateries(gctx, in)
		return err
	})
	g.Go(func() (err error) {
		faqs, err = p.requests.Faqs(gctx, in)
		return err
	})
	g.Go(func() (err error) {
		popular, err = p.destinations.PopularDestinations(gctx, in.Destination)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to generate travel plan sections", zap.Error(err))
		return uuid.Nil, &travelplan.Error{Kind: travelplan.KindAggregation, Op: op, Err: err}
	}
	if popular == nil {
		popular = []maps.Place{}
	}

	plan := &travelplan.TravelPlan{
		ID:                  p.newID(),
		OwnerUID:            ownerUID,
		Destination:         in.Destination,
		TravelDates:         in.TravelDates,
		Budget:              in.Budget,
		TravelType:          in.TravelType,
		KeyInterests:        in.KeyInterests,
		NumberOfPeople:      in.NumberOfPeople,
		TravelCompanions:    in.TravelCompanions,
		Itinerary:           itinerary.Days,
		Eateries:            eateries,
		Faqs:                faqs,
		PopularDestinations: popular,
		CreatedAt:           p.now().UTC(),
	}

	if err := p.store.Create(ctx, plan); err != nil {
		log.Error("failed to save travel plan", zap.Stringer("plan_id", plan.ID), zap.Error(err))
		return uuid.Nil, &travelplan.Error{Kind: travelplan.KindPersistence, Op: op, Err: err}
	}

	log.Info("travel plan saved", zap.Stringer("plan_id", plan.ID))
	return plan.ID, nil
}
