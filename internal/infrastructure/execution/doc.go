// Package execution implements the step executor: it renders plan steps
// into command lines, runs them through os/exec with bounded output
// capture, and executes the export and configfile kinds natively against
// the run-local environment overlay.
package execution
