package state

import (
	"fmt"
	"slices"
)

// UndoOrder selects which item Undo takes off the display list.
type UndoOrder int

const (
	// UndoChronological undoes the most recently committed item.
	UndoChronological UndoOrder = iota
	// UndoLinesFirst undoes the most recent stroke while any stroke is
	// active and only then falls back to stickers.
	UndoLinesFirst
)

func (o UndoOrder) String() string {
	switch o {
	case UndoChronological:
		return "chronological"
	case UndoLinesFirst:
		return "lines-first"
	default:
		return fmt.Sprintf("UndoOrder(%d)", int(o))
	}
}

// ParseUndoOrder accepts the names returned by UndoOrder.String.
func ParseUndoOrder(s string) (UndoOrder, error) {
	switch s {
	case "", "chronological":
		return UndoChronological, nil
	case "lines-first":
		return UndoLinesFirst, nil
	}
	return UndoChronological, fmt.Errorf("state: unknown undo order %q", s)
}

// History keeps the live display list (the undo stack) and the redo stack.
// An item is in at most one of them. History is not safe for concurrent
// use; Session serializes access to it.
type History struct {
	active []*Item
	redo   []*Item
	order  UndoOrder
	clock  *Clock

	// OnOp is called after every change with the op that caused it.
	OnOp func(Op)
}

func NewHistory(order UndoOrder, clock *Clock) *History {
	if clock == nil {
		clock = &Clock{}
	}
	return &History{order: order, clock: clock}
}

// Commit appends it to the display list and drops the redo stack.
// Items already tracked by the history are ignored.
func (h *History) Commit(it *Item) {
	if it == nil || h.contains(it) {
		return
	}
	h.active = append(h.active, it)
	h.redo = nil
	h.emit(OpCommit, it)
}

// Undo moves one item from the display list to the redo stack. It reports
// false and does nothing when the display list is empty.
func (h *History) Undo() bool {
	if len(h.active) == 0 {
		return false
	}
	i := len(h.active) - 1
	if h.order == UndoLinesFirst {
		if j := h.lastStroke(); j >= 0 {
			i = j
		}
	}
	it := h.active[i]
	h.active = slices.Delete(h.active, i, i+1)
	h.redo = append(h.redo, it)
	h.emit(OpUndo, it)
	return true
}

// Redo moves the most recently undone item back to the end of the display
// list. It reports false and does nothing when the redo stack is empty.
func (h *History) Redo() bool {
	if len(h.redo) == 0 {
		return false
	}
	it := h.redo[len(h.redo)-1]
	h.redo[len(h.redo)-1] = nil
	h.redo = h.redo[:len(h.redo)-1]
	h.active = append(h.active, it)
	h.emit(OpRedo, it)
	return true
}

// Clear empties both stacks.
func (h *History) Clear() {
	h.active = nil
	h.redo = nil
	h.emit(OpClear, nil)
}

// Items returns the display list in paint order.
func (h *History) Items() []*Item {
	return append([]*Item(nil), h.active...)
}

// RedoItems returns the redo stack, bottom first.
func (h *History) RedoItems() []*Item {
	return append([]*Item(nil), h.redo...)
}

func (h *History) Len() int      { return len(h.active) }
func (h *History) RedoLen() int  { return len(h.redo) }
func (h *History) CanUndo() bool { return len(h.active) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Contains reports whether it is on the display list.
func (h *History) Contains(it *Item) bool {
	for _, a := range h.active {
		if a == it {
			return true
		}
	}
	return false
}

func (h *History) contains(it *Item) bool {
	if h.Contains(it) {
		return true
	}
	for _, r := range h.redo {
		if r == it {
			return true
		}
	}
	return false
}

func (h *History) lastStroke() int {
	for i := len(h.active) - 1; i >= 0; i-- {
		if h.active[i].Kind == KindStroke {
			return i
		}
	}
	return -1
}

func (h *History) emit(t OpType, it *Item) {
	op := Op{Type: t, Item: it, Lamport: h.clock.Tick()}
	if h.OnOp != nil {
		h.OnOp(op)
	}
}
