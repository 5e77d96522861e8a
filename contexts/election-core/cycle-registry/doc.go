// Package cycleregistry owns voting cycles, the yearly election windows every
// ballot and vote hangs off. At most one cycle is active at a time; activation
// swaps the flag atomically so there is never a moment with two open windows.
package cycleregistry
