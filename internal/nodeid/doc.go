// internal/nodeid/doc.go

/*
Package nodeid provides the identity type for nodes in a computation graph.

An ID is an index into the arena that owns the nodes. Identity is never
derived from a node's contents: two leaves created with the same value and
label are different nodes.

The canonical text form is `n<index>`, e.g. `n0`, `n42`. It is used by the
exporters and in log attributes.
*/
package nodeid
