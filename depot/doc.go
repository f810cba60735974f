// Package depot provides a warehouse building for economy sessions.
//
// A Depot stores wares and workers at one flag, applies a stock policy per
// type, and turns planned workers into requests for their build costs. When
// those units arrive they join the depot's stock, and the worker economy
// creates the worker at its next balance.
package depot
