package state

// Query is the input panel text buffer. The cursor is a rune offset.
type Query struct {
	text   []rune
	cursor int
}

// String returns the buffer text.
func (q *Query) String() string {
	return string(q.text)
}

// Len returns the length in runes.
func (q *Query) Len() int {
	return len(q.text)
}

// Empty reports whether the buffer has no text.
func (q *Query) Empty() bool {
	return len(q.text) == 0
}

// Cursor returns the rune offset of the cursor.
func (q *Query) Cursor() int {
	if q.cursor < 0 {
		return 0
	}
	if q.cursor > len(q.text) {
		return len(q.text)
	}
	return q.cursor
}

// Insert adds text at the cursor.
func (q *Query) Insert(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	pos := q.Cursor()
	updated := make([]rune, 0, len(q.text)+len(insert))
	updated = append(updated, q.text[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, q.text[pos:]...)
	q.text = updated
	q.cursor = pos + len(insert)
	return true
}

// DeleteBackward removes the rune before the cursor.
func (q *Query) DeleteBackward() bool {
	pos := q.Cursor()
	if pos == 0 {
		return false
	}
	q.text = append(q.text[:pos-1], q.text[pos:]...)
	q.cursor = pos - 1
	return true
}

// Clear empties the buffer.
func (q *Query) Clear() bool {
	if len(q.text) == 0 {
		return false
	}
	q.text = nil
	q.cursor = 0
	return true
}

// Set replaces the buffer and moves the cursor to the end.
func (q *Query) Set(text string) {
	q.text = []rune(text)
	q.cursor = len(q.text)
}
