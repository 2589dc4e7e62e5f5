// Package kernel provides the domain primitives shared by every aggregate in
// the assignment model, currently the UUID identifier value object. The
// primitives are immutable, validate themselves, and are safe for concurrent
// use.
package kernel
