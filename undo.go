package easel

// UndoLog is the external undo/redo surface. Batches bracket an entire
// gesture: opened speculatively on gesture start with a document snapshot,
// closed after completion writes have landed, or cancelled when the gesture
// changed nothing.
type UndoLog interface {
	StartBatch(snapshot []*Node)
	EndBatch()
	CancelBatch()
	BatchDepth() int
}

// undoBatch is one committed batch in the in-memory log.
type undoBatch struct {
	snapshot []*Node
}

// MemoryUndoLog is the in-process UndoLog used when no external log is
// attached. It retains snapshots in order; storage internals beyond that are
// out of scope for this core.
type MemoryUndoLog struct {
	batches []undoBatch
	open    *undoBatch
	depth   int
}

// NewMemoryUndoLog creates an empty log.
func NewMemoryUndoLog() *MemoryUndoLog {
	return &MemoryUndoLog{}
}

// StartBatch opens a batch holding the pre-gesture snapshot. Starting a
// batch while one is open commits the previous one first; gestures never
// legitimately nest.
func (l *MemoryUndoLog) StartBatch(snapshot []*Node) {
	if l.open != nil {
		l.EndBatch()
	}
	l.open = &undoBatch{snapshot: snapshot}
	l.depth++
}

// EndBatch commits the open batch. A close without an open batch is a no-op.
func (l *MemoryUndoLog) EndBatch() {
	if l.open == nil {
		return
	}
	l.batches = append(l.batches, *l.open)
	l.open = nil
	l.depth--
}

// CancelBatch discards the open batch without committing it.
func (l *MemoryUndoLog) CancelBatch() {
	if l.open == nil {
		return
	}
	l.open = nil
	l.depth--
}

// BatchDepth returns the number of currently open batches (0 or 1 in
// practice).
func (l *MemoryUndoLog) BatchDepth() int {
	return l.depth
}

// Batches returns the number of committed batches.
func (l *MemoryUndoLog) Batches() int {
	return len(l.batches)
}

// LastSnapshot returns the snapshot of the most recently committed batch, or
// nil.
func (l *MemoryUndoLog) LastSnapshot() []*Node {
	if len(l.batches) == 0 {
		return nil
	}
	return l.batches[len(l.batches)-1].snapshot
}
