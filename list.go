package hipack

// List is an ordered sequence of Values, one of the two HiPack container
// kinds (the other being Dict).
type List struct {
	items []Value
}

// NewList returns a List initialized with the given items, in order.
func NewList(items ...Value) *List {
	l := &List{}
	if len(items) > 0 {
		l.items = append(l.items, items...)
	}
	return l
}

// Len reports the number of items in the list.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns the item at index i. It panics if i is out of range.
func (l *List) At(i int) Value { return l.items[i] }

// Append adds v to the end of the list.
func (l *List) Append(v Value) { l.items = append(l.items, v) }

// Items returns the list's items as a slice. The caller must not mutate the
// returned slice in place; use Append to extend the list.
func (l *List) Items() []Value {
	if l == nil {
		return nil
	}
	return l.items
}
