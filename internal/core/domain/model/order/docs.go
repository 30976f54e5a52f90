// Package order contains the Order aggregate root and its lifecycle state
// machine.
//
// An Order is created at checkout as an immutable snapshot of the cart:
// items, prices and the fee breakdown are copied, never referenced. From
// there the order advances through a forward-only status path
// (Pending, Confirmed, Preparing, Ready, PickedUp, OutForDelivery,
// Delivered) with Cancelled reachable only before preparation finishes.
// Every change appends to an append-only timeline, and a version field
// lets the persistence layer detect concurrent updates.
package order
