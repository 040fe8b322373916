package core

// DedupTable maps an original absolute source path to the integer
// identity assigned the first time that path was seen during a run.
//
// The table only covers read-only sources: every checkpoint referencing
// the same absolute path shares one physical copy, named after the
// identity stored here. Writable sources are never entered because each
// descriptor gets its own private copy.
//
// A table lives for exactly one consolidation run and is discarded
// afterwards.
type DedupTable map[string]int

// Identity returns the identity for path and whether the path has been
// seen before. For an unseen path the returned identity is the next
// free one, but it is not recorded until Remember is called, after the
// physical copy has actually been made.
func (t DedupTable) Identity(path string) (int, bool) {
	id, seen := t[path]
	if !seen {
		id = len(t)
	}
	return id, seen
}

// Remember records the identity assigned to path.
func (t DedupTable) Remember(path string, id int) {
	t[path] = id
}
