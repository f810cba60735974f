// Package district partitions the flags of one economy into warehouse-anchored
// clusters ("districts") so that requests prefer supplies close to home.
//
// Algorithm:
//
//  1. Multi-source Dijkstra seeded from every warehouse flag at once. Each flag
//     is assigned to whichever warehouse's frontier settles it first.
//  2. Every road whose ends were assigned to different warehouses yields an
//     inter-warehouse cost: cost(u) + road + cost(v). The minimum per unordered
//     warehouse pair is recorded, keyed canonically with the lower serial first.
//  3. Warehouses whose recorded cost is strictly below the merge threshold are
//     clustered; clusters grow transitively until a fixed point is reached.
//     The representative of a cluster is its lowest-serial warehouse.
//  4. Every flag is reassigned to its cluster's representative. The district
//     count is the number of clusters.
//
// Edge cases:
//
//   - No warehouses: every flag gets center 0 and Count is 0.
//   - No flags: the economy is about to be destroyed; Classify returns an empty
//     Result without searching.
//   - Two warehouses on one flag: the lower serial seeds that flag and both
//     share its district.
//
// Determinism:
//
//   - Anchors are sorted by serial before seeding, flags are scanned in the
//     order given (callers pass serial order), and representatives are chosen
//     by serial, never by map or pointer order.
//
// Complexity:
//
//   - Time:  O((F + R) log F + W α(W)) for F flags, R roads, W warehouses.
//   - Space: O(F + W²) in the worst case for recorded links.
package district
