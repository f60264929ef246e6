package kernel

import (
	"fmt"

	"rotafila/internal/pkg/errs"
)

// Unit is the physical location tag a courier belongs to. Every unit runs its
// own independent rotation queue; couriers only ever interact with the queue
// of their own unit.
type Unit string

const (
	UnitItaqua Unit = "ITAQUA"
	UnitPoa    Unit = "POA"
	UnitSuzano Unit = "SUZANO"
)

// AllUnits returns every known unit, in a stable order. The periodic jobs
// iterate over this set.
func AllUnits() []Unit {
	return []Unit{UnitItaqua, UnitPoa, UnitSuzano}
}

// UnitFromString parses and validates a unit tag coming from a request or the
// database.
func UnitFromString(s string) (Unit, error) {
	u := Unit(s)
	if err := u.Validate(); err != nil {
		return "", err
	}
	return u, nil
}

// Validate checks the unit against the known set.
func (u Unit) Validate() error {
	switch u {
	case UnitItaqua, UnitPoa, UnitSuzano:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("unit", fmt.Errorf("%q is not a known unit", string(u)))
}

func (u Unit) String() string {
	return string(u)
}
