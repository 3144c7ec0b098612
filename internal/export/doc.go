// Package export renders a computation graph for people and tools.
//
// Build captures the sub-graph reachable from a root as a Snapshot: every
// node with its value, gradient and display string, and every parent to
// child edge with the operand slot it feeds. A node used twice by the same
// operation produces two edges.
//
// Snapshots are plain data. WriteText, WriteJSON and WriteDOT turn them
// into a line listing, a JSON document or a Graphviz digraph. Rendering is
// read-only; nothing here changes the graph or makes it reloadable.
package export
