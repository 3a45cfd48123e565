// README: Travel plan store backed by PostgreSQL (JSONB sections).
package travelplan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Ping checks that a connection can be acquired. Safe to call repeatedly.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) Create(ctx context.Context, p *TravelPlan) error {
	itinerary, err := json.Marshal(p.Itinerary)
	if err != nil {
		return fmt.Errorf("marshal itinerary: %w", err)
	}
	eateries, err := json.Marshal(p.Eateries)
	if err != nil {
		return fmt.Errorf("marshal eateries: %w", err)
	}
	faqs, err := json.Marshal(p.Faqs)
	if err != nil {
		return fmt.Errorf("marshal faqs: %w", err)
	}
	popular, err := json.Marshal(p.PopularDestinations)
	if err != nil {
		return fmt.Errorf("marshal popular destinations: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO travel_plans (
			id, owner_uid, destination, start_date, end_date,
			budget, travel_type, key_interests, number_of_people, travel_companions,
			itinerary, eateries, faqs, popular_destinations, created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15
		)`,
		p.ID.String(), p.OwnerUID, p.Destination, p.TravelDates.StartDate, p.TravelDates.EndDate,
		p.Budget, p.TravelType, p.KeyInterests, p.NumberOfPeople, p.TravelCompanions,
		itinerary, eateries, faqs, popular, p.CreatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*TravelPlan, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id::text, owner_uid, destination, start_date, end_date,
		       budget, travel_type, key_interests, number_of_people, travel_companions,
		       itinerary, eateries, faqs, popular_destinations, created_at
		FROM travel_plans
		WHERE id = $1`, id.String(),
	)

	var p TravelPlan
	var rawID string
	var itinerary, eateries, faqs, popular []byte
	err := row.Scan(
		&rawID, &p.OwnerUID, &p.Destination, &p.TravelDates.StartDate, &p.TravelDates.EndDate,
		&p.Budget, &p.TravelType, &p.KeyInterests, &p.NumberOfPeople, &p.TravelCompanions,
		&itinerary, &eateries, &faqs, &popular, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if p.ID, err = uuid.Parse(rawID); err != nil {
		return nil, fmt.Errorf("parse plan id: %w", err)
	}
	sections := []struct {
		raw  []byte
		dest any
	}{
		{itinerary, &p.Itinerary},
		{eateries, &p.Eateries},
		{faqs, &p.Faqs},
		{popular, &p.PopularDestinations},
	}
	for _, sec := range sections {
		if err := json.Unmarshal(sec.raw, sec.dest); err != nil {
			return nil, fmt.Errorf("decode plan %s: %w", rawID, err)
		}
	}
	return &p, nil
}
