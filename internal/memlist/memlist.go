// Package memlist provides the indexed lookups shared by the in-memory
// stores, so each entity does not grow its own find-by-id scan.
package memlist

// IndexOf returns the position of the first element whose id matches, or -1.
func IndexOf[T any](items []T, id int, idOf func(T) int) int {
	for i := range items {
		if idOf(items[i]) == id {
			return i
		}
	}
	return -1
}

// RemoveAt deletes the element at position i, preserving order.
func RemoveAt[T any](items []T, i int) []T {
	return append(items[:i], items[i+1:]...)
}
