package state

import (
	"image/color"
	"strings"
	"sync"

	"PaintTool/internal/logging"
)

// Options configures a new Session.
type Options struct {
	Thin, Thick float64
	Color       color.NRGBA
	Stickers    []string
	UndoOrder   UndoOrder
}

func DefaultOptions() Options {
	return Options{
		Thin:     ThicknessThin,
		Thick:    ThicknessThick,
		Color:    color.NRGBA{A: 0xff},
		Stickers: append([]string(nil), DefaultStickers...),
	}
}

// Session owns the document being drawn: tool state, history and the item
// currently being dragged. All methods are safe for concurrent use; OnChange
// runs after the lock is released.
type Session struct {
	mu       sync.Mutex
	tools    Tools
	clock    Clock
	history  *History
	live     *Item
	dragging bool
	hover    *Point
	pending  []Op

	// OnChange is called once per op that requires a redraw.
	OnChange func(Op)
}

func NewSession(opts Options) *Session {
	s := &Session{tools: newTools(opts)}
	s.history = NewHistory(opts.UndoOrder, &s.clock)
	s.history.OnOp = s.record
	return s
}

func (s *Session) record(op Op) {
	s.pending = append(s.pending, op)
}

// unlock releases the lock and delivers the ops queued while it was held.
func (s *Session) unlock() {
	ops := s.pending
	s.pending = nil
	cb := s.OnChange
	s.mu.Unlock()

	log := logging.Logger()
	for _, op := range ops {
		if op.Type != OpExtend && op.Type != OpPreview {
			attrs := []any{"op", op.Type, "lamport", op.Lamport}
			if op.Item != nil {
				attrs = append(attrs, "kind", op.Item.Kind, "item", op.Item.ID)
			}
			log.Debug("history changed", attrs...)
		}
		if cb != nil {
			cb(op)
		}
	}
}

// PointerDown starts a new stroke, or places the armed sticker, and commits
// it. The armed sticker is consumed.
func (s *Session) PointerDown(p Point) {
	s.mu.Lock()
	defer s.unlock()

	s.dragging = true
	s.hover = nil
	if s.tools.armed != "" {
		s.live = newStickerItem(s.clock.Tick(), PlaceSticker(p, s.tools.armed))
		s.tools.armed = ""
	} else {
		s.live = newStrokeItem(s.clock.Tick(), BeginStroke(p, s.tools.thickness, s.tools.color))
	}
	s.history.Commit(s.live)
}

// PointerMove extends the live stroke or drags the live sticker. With no
// drag in progress it moves the tool preview instead.
func (s *Session) PointerMove(p Point) {
	s.mu.Lock()
	defer s.unlock()

	if s.dragging {
		if s.live == nil {
			return
		}
		switch s.live.Kind {
		case KindStroke:
			s.live.Stroke.Extend(p)
		case KindSticker:
			s.live.Sticker.Reposition(p)
		}
		s.record(Op{Type: OpExtend, Item: s.live, Lamport: s.clock.Tick()})
		return
	}
	s.hover = &p
	s.record(Op{Type: OpPreview, Lamport: s.clock.Tick()})
}

// PointerUp finalizes the live item.
func (s *Session) PointerUp() {
	s.mu.Lock()
	defer s.unlock()

	s.dragging = false
	s.live = nil
}

// PointerLeave hides the tool preview. A drag in progress continues.
func (s *Session) PointerLeave() {
	s.mu.Lock()
	defer s.unlock()

	if s.hover == nil {
		return
	}
	s.hover = nil
	s.record(Op{Type: OpPreview, Lamport: s.clock.Tick()})
}

func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.unlock()

	ok := s.history.Undo()
	if ok && s.live != nil && !s.history.Contains(s.live) {
		s.live = nil
	}
	return ok
}

func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.unlock()
	return s.history.Redo()
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.unlock()

	s.live = nil
	s.history.Clear()
}

func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// Snapshot returns deep copies of the display list in paint order.
func (s *Session) Snapshot() []*Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.history.Items()
	for i, it := range items {
		items[i] = it.Clone()
	}
	return items
}

// RedoSnapshot returns deep copies of the redo stack, bottom first.
func (s *Session) RedoSnapshot() []*Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.history.RedoItems()
	for i, it := range items {
		items[i] = it.Clone()
	}
	return items
}

// Preview reports the tool preview, present only while the pointer hovers
// over the surface with no drag in progress.
func (s *Session) Preview() (Preview, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dragging || s.hover == nil {
		return Preview{}, false
	}
	return s.tools.preview(*s.hover), true
}

func (s *Session) Dragging() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dragging
}

func (s *Session) SetPreset(p Preset) {
	s.mu.Lock()
	defer s.unlock()

	s.tools.setPreset(p)
	s.toolChanged()
}

func (s *Session) Thickness() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tools.thickness
}

// SetColor sets the color of strokes begun from now on.
func (s *Session) SetColor(c color.Color) {
	s.mu.Lock()
	defer s.unlock()

	s.tools.color = color.NRGBAModel.Convert(c).(color.NRGBA)
	s.toolChanged()
}

// SetColorString parses v with ParseColor and applies it.
func (s *Session) SetColorString(v string) error {
	c, err := ParseColor(v)
	if err != nil {
		return err
	}
	s.SetColor(c)
	return nil
}

func (s *Session) Color() color.NRGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tools.color
}

// ArmSticker makes the next pointer-down place glyph. A blank glyph disarms.
func (s *Session) ArmSticker(glyph string) {
	s.mu.Lock()
	defer s.unlock()

	s.tools.armed = strings.TrimSpace(glyph)
	s.toolChanged()
}

func (s *Session) Armed() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tools.armed
}

// AddSticker appends glyph to the palette. It reports false for blank or
// already present glyphs.
func (s *Session) AddSticker(glyph string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tools.addSticker(glyph)
}

func (s *Session) Stickers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.tools.stickers...)
}

// toolChanged queues a redraw when a visible preview depends on the tools.
func (s *Session) toolChanged() {
	if s.hover != nil && !s.dragging {
		s.record(Op{Type: OpTool, Lamport: s.clock.Tick()})
	}
}
