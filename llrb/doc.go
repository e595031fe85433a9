// Package llrb implement an ordered key,value map on top of a
// left-leaning red-black tree.
//
//   * Keys are totally ordered, either cmp.Ordered or via a custom
//     comparator.
//   * Each key shall be unique within the map.
//   * Insert, lookup and the three delete paths are O(log n).
//   * Order statistics, Select and Rank, are served from a size
//     field maintained on every node.
//   * Not safe for concurrent mutation, callers shall serialize
//     writes. Statistics counters are atomic and can be scraped
//     from other goroutines.
//
package llrb
