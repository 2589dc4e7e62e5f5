// Package booking models the orchestrator's view of a customer booking.
//
// The booking aggregate here deliberately covers only what the assignment
// lifecycle needs: the status machine from pending through completed, the
// actual work window with its derived duration, and the fields the worker
// needs to read (schedule, contact, quote). Creation, cancellation and
// payment handling belong to other services.
package booking
