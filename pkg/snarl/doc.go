// Package snarl implements the oriented-boundary primitives, the snarl and
// chain data model, and the chain iterator that the decomposition index
// (see [pkg/snarl/manager]) and the net-graph adaptor (see
// [pkg/snarl/netgraph]) are built on.
//
// # Orientation model
//
// Everything here is built on [handle.Handle]'s bidirected orientation: a
// node can be entered or left from either side, and a snarl or chain
// inherits the same left/right symmetry by composing node orientations.
// [Endpoint] names one side of one node; [Visit] names a traversal of
// either a node or a nested snarl, in a given direction.
//
// # Snarls and chains
//
// A [Snarl] is a subgraph bounded by two oriented [Visit]s; [Snarl.IsUnary]
// overrides classification whenever start and end name the same node in
// opposite orientations. A [Chain] is an ordered, possibly-empty sequence of
// oriented snarl references; [Iterator] walks one in six modes - forward,
// reverse, and reverse-complement, each with a matching end sentinel - via
// the Chain* constructors and [ChainBeginFrom]/[ChainEndFrom].
//
// Both [Chain] and the net-graph adaptor are parameterized over a snarl
// reference type rather than hardcoding *Snarl, so the same machinery works
// over bare snarls in tests and over the manager's records in production
// without an import cycle between the two packages.
package snarl
