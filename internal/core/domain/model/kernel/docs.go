// Package kernel provides core domain primitives shared across the
// order-fulfillment model. It implements fundamental building blocks
// following Domain-Driven Design principles.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - GeoPoint: A value object for geographic coordinates with great-circle distance
//   - RoundedAverage / ValidateRating: rating arithmetic used by aggregate stats
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are designed to be immutable
// and thread-safe, making them suitable for concurrent use.
package kernel
