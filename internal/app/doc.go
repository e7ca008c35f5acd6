// Package app wires the domain contracts together: it implements the
// bootstrap run service that drives plans through the step executor and
// records the outcome, and the history service over stored run records.
package app
