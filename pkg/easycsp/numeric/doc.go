// Package numeric is the integer dialect of the engine: variables over
// interval domains, an arithmetic expression front end that decomposes
// n-ary terms into binary and ternary constraints pinned to derived
// auxiliary variables, and the search algorithm variants that cascade
// assignments through those auxiliaries.
package numeric
