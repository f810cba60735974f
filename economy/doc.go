// Package economy routes wares and workers between buildings.
//
// A Session owns a routing network of flags and roads. For each commodity
// Kind the flags are partitioned into economies: connected sets of one
// player's flags. Each economy tracks the warehouses, open requests and
// available supplies located on its flags, plus a target stock per type.
//
// Economies maintain themselves as roads change:
//
//   - Adding a road merges the economies of its ends right away. The one with
//     more flags absorbs the other; targets keep the newer timestamp.
//   - Removing a road only queues a connectivity check. Checks run at the next
//     balance, so removing many roads costs one search per check, not one
//     recomputation per road.
//
// Any change that could create a match arms the economy's request timer. When
// it fires, the economy balances:
//
//  1. resolve queued split checks
//  2. rebuild districts (warehouse-anchored clusters)
//  3. create or plan workers for unmet worker demand
//  4. match requests with supplies through one urgency-ordered queue
//  5. send stray units on the network to storage
//  6. replace cross-district transfers with local ones when possible
//
// Determinism: every instance fed the same calls reaches the same state.
// Ties are broken by serials and registration order, never by map or
// pointer order, and every decision is written to the sync stream.
//
// Concurrency: a Session is not safe for concurrent use.
package economy
