//go:build !prioqdebug

package prioq

const debugChecks = false
