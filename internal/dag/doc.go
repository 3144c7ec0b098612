// Package dag holds the graph-ordering primitives used across the
// application.
//
// Graph is a small keyed DAG with explicit edges, used where the vertex set is
// known up front (for example ordering named values in a definition file).
// ReverseTopological orders an implicit graph, described only by a parents
// function, so that every node comes after all of its consumers. The
// backward pass of the autodiff engine is scheduled with it.
package dag
