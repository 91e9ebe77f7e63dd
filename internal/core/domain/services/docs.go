// Package services contains stateless domain services that coordinate
// behavior across aggregates: picking a delivery partner from the fixed
// roster and planning the randomized status progression for a new order.
//
// Both services take the random source as an explicit parameter so the whole
// simulation stays deterministic under a seeded generator.
package services
