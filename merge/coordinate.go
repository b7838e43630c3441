package merge

// EmbeddingEntry is the (thread, offset, orientation) triple a node id maps
// to. It is deliberately a small value type: pass by value, never alias
// and mutate through a pointer.
type EmbeddingEntry struct {
	Thread    int64
	Offset    int
	IsReverse bool
}

// NodeSide computes the thread-side (thread offset) for one end of a node
// of the given length embedded at entry. high selects the node's
// high end (offset length-1) instead of its low end (offset 0).
func NodeSide(entry EmbeddingEntry, nodeLength int, high bool) int {
	if !high {
		return entry.Offset
	}
	if !entry.IsReverse {
		return entry.Offset + (nodeLength - 1)
	}
	return entry.Offset - (nodeLength - 1)
}

// EdgeEndFlags computes the isEnd flags for the from-side and to-side of an
// edge: isEnd starts false and is flipped by !from_start on the from side
// and by to_end on the to side.
func EdgeEndFlags(fromStart, toEnd bool) (isEndFrom, isEndTo bool) {
	isEndFrom = false
	if !fromStart {
		isEndFrom = !isEndFrom
	}
	isEndTo = false
	if toEnd {
		isEndTo = !isEndTo
	}
	return isEndFrom, isEndTo
}

// relativeOrientation is the explicit 4-boolean parity function the design
// notes ask for in place of a left-associative chained XOR comparison: the
// pinch's relative-orientation flag is true exactly when an odd number of
// the four inputs are true.
func relativeOrientation(isReverseInThreadOurs, isReverseInMappingOurs, isReverseInThreadTheirs, isReverseInMappingTheirs bool) bool {
	parity := false
	for _, b := range [4]bool{isReverseInThreadOurs, isReverseInMappingOurs, isReverseInThreadTheirs, isReverseInMappingTheirs} {
		if b {
			parity = !parity
		}
	}
	return parity
}

// TransformPathPosition implements the offset transform for welding a
// path position onto its thread. entry is the node's embedding; offsetInNode
// and isReverseInMapping come from the mapping's position; overlapStart and
// pathPosition are base coordinates along the shared path; overlapLength is
// the length of the overlap being pinched.
func TransformPathPosition(entry EmbeddingEntry, offsetInNode int, isReverseInMapping bool, overlapStart, pathPosition, overlapLength int) int {
	offset := entry.Offset
	if !entry.IsReverse {
		offset += offsetInNode
	} else {
		offset -= offsetInNode
	}

	reversedOnThread := entry.IsReverse != isReverseInMapping
	delta := overlapStart - pathPosition
	if !reversedOnThread {
		offset += delta
	} else {
		offset -= delta
	}
	if reversedOnThread {
		offset -= overlapLength - 1
	}
	return offset
}
