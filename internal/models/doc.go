// Package models defines the domain records persisted by cardplanner.
//
// A user owns stores, custom cards and purchase lists. Each purchase list
// holds items; every (item, store) pair has a price entry whose price may be
// nil to mean "not carried". Allocations record manual per-store quantities
// and are independent of the computed optimal plan.
//
// Relationships are expressed with ID strings rather than pointers, and
// timestamps are Unix seconds.
package models
