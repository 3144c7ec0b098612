// Package config defines the format-agnostic model of a graph definition,
// along with the interfaces (Loader, Compiler) for reading definitions from
// files and lowering them onto a computation graph.
//
// A definition is a set of named values. Each value is either a literal
// leaf (`data`) or an expression over other values (`expr`). An optional
// backward target names the value to differentiate. Concrete
// implementations, such as the HCL one, live in separate packages.
package config
