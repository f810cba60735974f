// Package wareflow is a logistics economy for settlement games: it decides
// which ware or worker goes where across a network of flags and roads.
//
// 🚀 What is wareflow?
//
//	A deterministic, lockstep-friendly balancer that brings together:
//		• Routing graph: flags, roads, per-kind carrying rules
//		• Pathfinding: generic A* with stamped search state and a cutoff
//		• Economies: connected components per player and kind, split/merge
//		• Districts: warehouse catchment areas from multi-source Dijkstra
//		• Matching: urgency-ordered pairing of requests with supplies
//		• Stock keeping: warehouse policies, target quantities, worker creation
//
// ✨ Why wareflow?
//
//   - Deterministic – identical command sequences give identical decisions,
//     checked with a hashed sync stream
//   - Explicit time – a Session advances game time; nothing runs on wall clocks
//   - Observable – slog logging, Prometheus collectors, SQLite snapshots
//
// Under the hood the module is organized as:
//
//	prioq/        indexed binary heap with decrease-key
//	astar/        A* / Dijkstra engine over any graph with per-node state
//	core/         Network, Flag, Road, serial counter
//	district/     district classification and merging
//	economy/      Session, Economy, requests, supplies, transfers
//	depot/        warehouse implementation with stock policies and worker plans
//	syncstream/   digest and zstd file sinks for divergence checks
//	scenario/     YAML scenarios with timed events
//	builder/      generated flag networks for tests and benchmarks
//	config/       viper configuration with validation
//	metrics/      Prometheus collectors
//	persistence/  SQLite snapshot store
//	cmd/wareflow  CLI: run, digest, runs, stress
//
// Quick start:
//
//	go install github.com/katalvlaran/wareflow/cmd/wareflow@latest
//	wareflow run scenario.yaml
package wareflow
