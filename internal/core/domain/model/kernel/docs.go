// Package kernel contains the shared value objects of the domain model:
// identifiers, the unit (location) tag, and normalized phone numbers.
// All types here are immutable; invalid states are unrepresentable once a
// value passed its constructor.
package kernel
