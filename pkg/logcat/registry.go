package logcat

// Registry assigns each process id a stable ordinal in first-seen order.
// Ordinals are never reused or renumbered within a run. A run owns exactly
// one registry; it is not safe for concurrent use.
type Registry struct {
	ordinals map[int]int
	order    []int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ordinals: make(map[int]int)}
}

// IndexOf returns the ordinal for pid, registering it with the next free
// ordinal on first sight.
func (r *Registry) IndexOf(pid int) int {
	if ordinal, ok := r.ordinals[pid]; ok {
		return ordinal
	}
	ordinal := len(r.order)
	r.ordinals[pid] = ordinal
	r.order = append(r.order, pid)
	return ordinal
}

// Resolve returns key with its process ordinal assigned, registering the
// process id if needed. Key construction never touches the registry, so
// this is the single mutation point on the way into the store.
func (r *Registry) Resolve(key Key) Key {
	key.ProcessIndex = r.IndexOf(key.Process)
	return key
}

// Len returns the number of distinct process ids seen so far.
func (r *Registry) Len() int {
	return len(r.order)
}
