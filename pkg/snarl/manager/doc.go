// Package manager indexes a flat collection of snarls into the parent/child
// and chain structure the rest of the decomposition core walks: which
// snarls nest inside which, which run together end to end in a chain, and
// in what orientation each one settled after regularization.
//
// # Building a manager
//
// Add every snarl a finder discovered with [Manager.AddSnarl], each
// returning the owned [Record] that represents it from then on. Once every
// snarl is added, call [Manager.Finish] exactly once: it resolves parents
// from the boundary each snarl names, groups snarls into chains by walking
// shared boundaries, and regularizes every chain and snarl so its
// orientation runs with ascending node IDs wherever a majority vote allows.
//
// # Querying the tree
//
// [Manager.ChildrenOf] and [Manager.ParentOf] walk the snarl tree;
// [Manager.ChainOf], [Manager.ChainOrientationOf], and [Manager.ChainRankOf]
// report a snarl's position within its chain. [Manager.NetGraphOf] builds
// the net-graph view ([pkg/snarl/netgraph]) of one snarl's interior, ready
// for a finder to classify it.
package manager
