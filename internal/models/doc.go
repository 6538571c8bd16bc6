// Package models defines the core domain models for Shareable Split Saga.
//
// # Ledger entries
//
// The ledger is made of a small set of immutable value types:
//   - Participant: a member of a trip, referenced by ID everywhere else
//   - Purchase: one expense with who paid (PaidBy) and who shares the cost (SplitBetween)
//   - Share: a single participant/amount entry of a purchase
//   - Settlement: a recommended payment that moves two balances toward zero
//
// Balances are never stored. They are derived from the full purchase collection
// by the calculator package every time they are needed.
//
// # Trips and users
//
//   - Trip: a group of participants sharing purchases, joinable by a short code
//   - User: a registered account; joining a trip turns a user into a Participant
//
// # Amounts
//
// All money amounts are decimal.Decimal values in currency major units. Values
// coming from floating point inputs must go through ParseAmount so that NaN and
// infinities never reach the ledger.
//
// Relationships use ID strings rather than pointers.
package models
