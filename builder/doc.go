// Package builder assembles deterministic flag networks for tests, examples
// and benchmarks.
//
// A build applies Constructors in order against a Target (a *core.Network or
// an *economy.Session) and records every flag and road it creates in a
// Layout, where flags can be looked up by generated name.
//
// The package offers the following key components:
//
//   - Topologies: Path, Grid, Star and RandomSparse.
//   - Flag naming (IDFn): DefaultIDFn ("0","1",…), ExcelColumnIDFn
//     ("A",…,"Z","AA",…) and SymbolNumberIDFn(prefix) ("f0","f1",…).
//   - Road costs: every road costs CostPerField times the distance of its
//     ends plus a slack drawn from a SlackFn (ConstantSlack, UniformSlack).
//     Costs therefore never undercut the geometric lower bound the network
//     enforces, as long as WithCostPerField matches the network's setting.
//
// Guarantees:
//
//   - Determinism: same options, seed and constructor order give the same
//     flags, serials, coordinates and costs.
//   - Constructors validate parameters before creating anything and return
//     sentinel errors; option constructors panic on meaningless values.
//   - Complexity is linear in the number of flags and roads created, except
//     RandomSparse which examines every pair, O(n²).
package builder
