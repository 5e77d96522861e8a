// Package ballotcatalog manages the ballot itself: the positions contested in
// a voting cycle and the candidates running for them. A candidate always
// belongs to exactly one position, and the position's cycle is authoritative.
package ballotcatalog
