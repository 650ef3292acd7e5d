// Package easycsp implements a constraint-satisfaction and
// constraint-optimization engine over finite discrete domains.
//
// A problem is the triple (Z, D, C): a set of variables Z, a domain D per
// variable, and a set of constraints C, each a predicate over the currently
// assigned values of a chosen variable tuple. Problems are assembled with a
// Builder, tightened with node/arc consistency and minimal-width reordering,
// and enumerated by the search algorithms in the algorithm subpackage.
// The numeric subpackage adds an integer dialect with an arithmetic
// expression front end, and the solver subpackage wraps any algorithm in a
// reentrant produce-next-solution driver.
package easycsp
