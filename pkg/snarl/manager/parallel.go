package manager

import "sync"

// parallelEach runs fn once per item concurrently, waiting for every call to
// return. It is the Go stand-in for the decomposition core's OpenMP
// "parallel for" loops over root snarls, a snarl's children, or a chain
// list.
func parallelEach[T any](items []T, fn func(T)) {
	var wg sync.WaitGroup
	wg.Add(len(items))
	for _, item := range items {
		go func(item T) {
			defer wg.Done()
			fn(item)
		}(item)
	}
	wg.Wait()
}
