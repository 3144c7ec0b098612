// Package mlp builds small fully connected networks on top of the autodiff
// graph. Every weight, bias and activation is a graph node, so a single
// backward pass from a loss yields the gradient of every parameter.
package mlp
