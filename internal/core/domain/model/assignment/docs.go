// Package assignment contains the Assignment aggregate: the record binding
// one worker to one booking for a single job cycle, its lifecycle Status
// state machine, and the CompletionReport attached when a job finishes.
//
// The aggregate enforces the transition set Assigned -> Accepted ->
// InProgress -> Completed with an Assigned -> Rejected branch, and the
// timestamp invariants that go with it. There are no reverse edges; a wrong
// transition is corrected by a subsequent operation, never undone.
package assignment
