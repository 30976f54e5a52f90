// Package services provides domain services that operate across aggregates.
//
// CourierMatcher ranks couriers for an order pickup by availability,
// proximity and rating. It deliberately stops short of assigning: proposing
// candidates and committing an assignment are separate steps, so the caller
// controls the transaction in which the assignment happens.
package services
