// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary execution lifecycle: build a
// graph from a definition or a network, run the backward pass, render the
// result and optionally publish it. It is decoupled from any specific
// entrypoint like a CLI.
package app
