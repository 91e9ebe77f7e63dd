// Package cart implements the in-memory shopping cart aggregate.
//
// A cart is a mutable collection of lines, unique per product, living entirely
// within one session: lines are created on first add, merged on repeat adds,
// and the whole cart is cleared after submission or cancellation. The cart is
// the only owner of its lines; order submission takes a defensive snapshot.
package cart
