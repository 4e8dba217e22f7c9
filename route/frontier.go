package route

import (
	"container/heap"

	"github.com/hupe1980/stargo/model"
)

// Compile time check to ensure frontier satisfies the heap interface.
var _ heap.Interface = (*frontier)(nil)

// frontierItem is one pending SearchNode reference on the frontier.
// Hops, Key and Sys are denormalized from the arena so Less never chases
// node indirections.
type frontierItem struct {
	Node int32          // index into the search arena
	Hops int32          // hop count, primary order
	Key  float32        // tie-break key (cumulative or goal distance)
	Sys  model.SystemID // stable final tie-break
}

// frontier implements heap.Interface ordered by ascending hop count, then
// ascending key, then ascending system ID. Hop count first makes the search
// minimize jumps; the key only breaks ties within a hop layer; the ID makes
// repeated runs deterministic.
type frontier struct {
	Items []frontierItem
}

// Len returns the number of elements on the frontier.
func (f *frontier) Len() int { return len(f.Items) }

// Less reports whether the element with index i should sort before the element with index j.
func (f *frontier) Less(i, j int) bool {
	a, b := f.Items[i], f.Items[j]
	if a.Hops != b.Hops {
		return a.Hops < b.Hops
	}
	if a.Key != b.Key {
		return a.Key < b.Key
	}
	return a.Sys < b.Sys
}

// Swap swaps the elements with indexes i and j.
func (f *frontier) Swap(i, j int) {
	f.Items[i], f.Items[j] = f.Items[j], f.Items[i]
}

// Push adds x to the frontier.
func (f *frontier) Push(x any) {
	item, _ := x.(frontierItem)
	f.Items = append(f.Items, item)
}

// Pop removes and returns the best element from the frontier.
func (f *frontier) Pop() any {
	old := f.Items
	n := len(old)
	item := old[n-1]
	f.Items = old[:n-1]

	return item
}

func (f *frontier) push(item frontierItem) {
	heap.Push(f, item)
}

func (f *frontier) pop() frontierItem {
	item, _ := heap.Pop(f).(frontierItem)
	return item
}

func (f *frontier) top() frontierItem {
	return f.Items[0]
}
