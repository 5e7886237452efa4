package widget

// Orientation is the direction a Box lays out its children in.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Window is a top-level container holding a single child.
type Window struct {
	containerBase

	// DeleteEvent is emitted by Close. A handler returning true keeps the
	// window open.
	DeleteEvent ReturnSignal[*Window]
}

// NewWindow creates a window with the given title.
func NewWindow(id, title string) *Window {
	w := &Window{}
	w.init(w, id, "window")
	w.max = 1
	w.track(&w.DeleteEvent)
	w.SetProp("title", title)
	return w
}

// Title returns the window title.
func (w *Window) Title() string { return w.Prop("title") }

// Close asks the window to close, as a window manager would. It reports
// whether the window was destroyed.
func (w *Window) Close() bool {
	if w.destroyed {
		return false
	}
	if w.DeleteEvent.Emit(w) {
		return false
	}
	w.Destroy()
	return true
}

// Box lays out children in a row or a column.
type Box struct {
	containerBase
}

// NewBox creates a box with the given children.
func NewBox(id string, o Orientation, children ...Widget) *Box {
	b := &Box{}
	b.init(b, id, "box")
	b.SetProp("orientation", o.String())
	for _, c := range children {
		b.Add(c)
	}
	return b
}

// NewVBox creates a vertical box.
func NewVBox(id string, children ...Widget) *Box {
	return NewBox(id, Vertical, children...)
}

// NewHBox creates a horizontal box.
func NewHBox(id string, children ...Widget) *Box {
	return NewBox(id, Horizontal, children...)
}

// Button is a clickable widget with a label.
type Button struct {
	Base

	Clicked Signal[*Button]
}

// NewButton creates a button.
func NewButton(id, label string) *Button {
	b := &Button{}
	b.init(b, id, "button")
	b.track(&b.Clicked)
	b.SetProp("label", label)
	return b
}

// Label returns the button label.
func (b *Button) Label() string { return b.Prop("label") }

// SetLabel sets the button label.
func (b *Button) SetLabel(s string) { b.SetProp("label", s) }

// Click simulates a user click.
func (b *Button) Click() {
	if b.destroyed {
		return
	}
	b.Clicked.Emit(b)
}

// Label displays text.
type Label struct {
	Base
}

// NewLabel creates a label.
func NewLabel(id, text string) *Label {
	l := &Label{}
	l.init(l, id, "label")
	l.SetProp("text", text)
	return l
}

// Text returns the label text.
func (l *Label) Text() string { return l.Prop("text") }

// SetText sets the label text.
func (l *Label) SetText(s string) { l.SetProp("text", s) }

// Entry is a single-line text input.
type Entry struct {
	Base

	// Changed is emitted whenever the text changes, including changes made
	// through SetText.
	Changed Signal[*Entry]
}

// NewEntry creates an empty entry.
func NewEntry(id string) *Entry {
	e := &Entry{}
	e.init(e, id, "entry")
	e.track(&e.Changed)
	e.SetProp("text", "")
	return e
}

// Text returns the entry text.
func (e *Entry) Text() string { return e.Prop("text") }

// SetText replaces the text and emits Changed. Setting the text it
// already holds does nothing.
func (e *Entry) SetText(s string) {
	if e.Prop("text") == s {
		return
	}
	e.SetProp("text", s)
	e.Changed.Emit(e)
}

// Input simulates the user typing s at the end of the text.
func (e *Entry) Input(s string) {
	e.SetText(e.Text() + s)
}
