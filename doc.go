// Package cardrank is a poker analysis toolkit: bit-packed card and deck
// types, a constant-time hand evaluator backed by precomputed perfect-hash
// and flush tables, thin variant adapters (Hold'em, Omaha, Short-Deck,
// Lowball), and exhaustive/sampling equity enumeration.
//
// The [solver] subpackage builds on top of this core with a generic
// extensive-form game abstraction, a CFR+ family solver, and an
// exploitability oracle.
package cardrank
