// Package netgraph adapts a snarl's already-decomposed children into a flat,
// neighbor-walkable view of its interior: every child chain or unary child
// snarl collapses into a single meta-node, so the classification pass never
// has to see past one level of nesting at a time.
//
// # Meta-node identity
//
// A chain child is represented by the backing-graph handle at the inward
// side of its first snarl's start; a unary child is represented by its own
// inward boundary handle. Walking into a chain from its far end is rewritten
// back to that same representative, so the two sides of a multi-snarl chain
// never appear as different nodes.
//
// # Connectivity and the neighbor walk
//
// [Graph.FollowEdges] looks up each meta-node's [Connectivity] - whether a
// walk entering on the left can turn around and leave on the left again
// (TurnLeft), the symmetric case on the right (TurnRight), and whether a
// walk can pass straight through (PassThrough) - and answers accordingly,
// rewriting and deduplicating results as it goes. With useInternalConnectivity
// false, every chain meta-node behaves as a flat pass-through and a unary
// meta-node offers no turnaround or pass-through at all, which is what a
// finder needs when classifying a snarl's own shape without descending into
// children it has already classified.
//
// # What a net graph cannot do
//
// [Graph] implements [handle.Graph] in full except for GetLength and
// GetSequence, which always fail: the net graph is a structural view with no
// sequence data of its own.
package netgraph
