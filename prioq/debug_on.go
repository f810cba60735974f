//go:build prioqdebug

package prioq

// debugChecks enables a full Validate after every mutation.
const debugChecks = true
