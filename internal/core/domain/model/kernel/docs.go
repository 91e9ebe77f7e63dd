// Package kernel provides core domain primitives shared by the order-lifecycle
// model. It currently contains the UUID value object used for order identity.
//
// The primitives enforce their invariants at construction time, are immutable
// and thread-safe, and carry no behavior specific to any single aggregate.
package kernel
