// Package kmlog keeps an odometer log: an ordered collection of events, each
// pairing a calendar date with a kilometer reading. The whole collection is
// persisted as a single blob in a key-value Store after every mutation, and
// summary statistics and chart series are derived from it on demand.
//
// Typical usage looks like:
//   - Open a Store (memory, Redis, bbolt or Postgres) with NewStore
//   - Create an EventLog with NewEventLog and call Load
//   - Add, Update and Delete events, or drive the edit mode with
//     BeginEdit, CommitEdit and CancelEdit
//   - Render the returned Events along with Summary and Series
//
// The cmd/kmlog directory contains a command-line front end that exercises
// the API end to end.
package kmlog
