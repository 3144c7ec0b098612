// Package cli turns the neuron command line into an app.Config.
//
// A graph comes either from definition files (-graph, -g or the first
// positional argument) or from -mlp with -inputs and optional -targets.
// Bad arguments are reported as an *ExitError with code 2; -h and an empty
// command line print usage and ask the caller to exit cleanly.
package cli
