// Package runs holds the record model for executed bootstrap runs: one
// Run per invocation, one StepResult per executed step, plus the query
// and repository contracts used to store and inspect them.
package runs
