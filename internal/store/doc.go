// Package store provides the in-memory product catalog and its change notifications.
//
// This package is internal to the catalog module and owns the ordered sequence
// of product records. Every read and write goes through a [Store]; there is no
// package-level instance, so each caller (and each test) constructs its own.
//
// The main components are:
//
//   - [Store]: Interface defining catalog mutations, reads and subscriptions
//   - [MemoryStore]: Slice-backed implementation of Store with pub/sub
//   - [Product]: Storage representation of a single catalog record
//   - [Change]: Notification emitted after every successful mutation
//
// Records are addressed either by their stable id or by their global index
// (position in the full, unfiltered catalog). Removing a record shifts every
// later record down by one, so global indices must be re-resolved after a
// removal; ids never change.
//
// Observers registered with [MemoryStore.Observe] run synchronously before the
// mutating call returns. Channel subscribers receive updates via non-blocking
// sends (slow subscribers miss updates rather than block the store).
package store
