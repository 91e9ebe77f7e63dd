// Package order implements the order aggregate and its delivery-status state
// machine.
//
// An order is an immutable snapshot of a cart at submission time: the line
// items, the total, the creation timestamp, the free-text notes, and the
// assigned delivery partner never change afterwards. The delivery status is
// the single mutable field, advancing through the simulated pipeline
// Pending -> In Progress -> Out for Delivery -> {Delivered | Cancelled}.
// Delivered and Cancelled are terminal: no transition leaves them.
package order
