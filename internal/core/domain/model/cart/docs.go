// Package cart contains the shopping cart aggregate.
//
// A Cart holds a customer's pending selection for a single restaurant.
// Line items are identified by their menu item plus customization set,
// compared order-independently, so adding an equivalent configuration
// twice merges into one line with a summed quantity. The cart keeps its
// subtotal consistent with the line item totals after every mutation.
//
// Carts move Active -> Checkout -> Completed, or Active -> Abandoned
// when swept after a period of inactivity.
package cart
