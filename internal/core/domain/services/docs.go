// Package services provides domain services that span multiple aggregates.
//
// RotationPolicy owns the queue ordering rules: who is in the line, who is
// next, and how a full reorder rewrites positions.
package services
