// Package finder drives a bottom-up decomposition walk into a populated,
// finished [pkg/snarl/manager.Manager].
//
// A [Finder] only knows how to walk a backing graph and report the chains
// and snarls it passes through, inside out, via four callbacks. Everything
// this package does - stacking unmanaged scratch snarls until their own
// boundary is known, classifying each snarl from its already-classified
// children, and finally adding every snarl to a manager - happens inside
// [FindSnarls] and [FindSnarlsParallel], so a Finder implementation never
// touches a manager directly.
package finder
