package queries

import (
	"errors"

	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/pkg/guard"
)

var ErrGetMyPlaceQueryIsNotConstructed = errors.New(
	"GetMyPlaceQuery must be created via NewGetMyPlaceQuery constructor",
)

// GetMyPlaceQuery is the courier's self-service view: identified by phone,
// it answers "where am I in the line".
type GetMyPlaceQuery struct { //nolint:recvcheck //using for validation
	phone kernel.Phone

	guard guard.ConstructorGuard
}

// NewGetMyPlaceQuery creates a query for a courier's place in the line.
func NewGetMyPlaceQuery(phone kernel.Phone) (GetMyPlaceQuery, error) {
	query := GetMyPlaceQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := phone.Validate(); err != nil {
		return GetMyPlaceQuery{}, err
	}
	query.phone = phone

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetMyPlaceQuery) Validate() error {
	return q.guard.Validate(ErrGetMyPlaceQueryIsNotConstructed)
}

// Phone returns the phone identifying the courier.
func (q GetMyPlaceQuery) Phone() kernel.Phone {
	return q.phone
}

// GetMyPlaceQueryResponse reports a courier's standing in their unit.
// Place is 1-based among waiting couriers and zero when the courier is not
// in the line (called, delivering, or off duty).
type GetMyPlaceQueryResponse struct {
	CourierID kernel.UUID
	Name      string
	Unit      kernel.Unit
	Status    string
	Place     int
}
