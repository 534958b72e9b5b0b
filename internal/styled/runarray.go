package styled

// shrinkThreshold is the capacity above which a half-empty RunArray releases
// storage.
const shrinkThreshold = 100

// RunArray holds one Style per character in two parallel buffers.
//
// Capacity policy: storage grows to twice the required length when the
// length exceeds capacity, drops to zero when the array becomes empty, and
// halves when capacity exceeds 100 and less than half of it is used.
// A capacity change always moves the contents into freshly allocated
// storage; the old storage is never resized in place.
type RunArray struct {
	flags    []StyleFlags
	colors   []RGBColor
	length   int
	capacity int
}

// NewRunArray returns an array of n unstyled runs.
func NewRunArray(n int) *RunArray {
	a := &RunArray{}
	a.Resize(0, 0, n)
	return a
}

// NewUniformRunArray returns an array of n runs with the same style.
func NewUniformRunArray(n int, flags StyleFlags, color RGBColor) *RunArray {
	a := NewRunArray(n)
	a.Fill(0, n, flags, color)
	return a
}

// Len returns the number of runs.
func (a *RunArray) Len() int {
	return a.length
}

// Cap returns the current storage capacity.
func (a *RunArray) Cap() int {
	return a.capacity
}

// At returns the style at index i. Out-of-range indexes return the zero Style.
func (a *RunArray) At(i int) Style {
	if i < 0 || i >= a.length {
		return Style{}
	}
	return Style{Flags: a.flags[i], Color: a.colors[i]}
}

// Set replaces the style at index i.
func (a *RunArray) Set(i int, s Style) {
	if i < 0 || i >= a.length {
		return
	}
	a.flags[i] = s.Flags & AllStyles
	a.colors[i] = s.Color
}

// Fill assigns one style to runs [i, i+n).
func (a *RunArray) Fill(i, n int, flags StyleFlags, color RGBColor) {
	i, n = a.clamp(i, n)
	flags &= AllStyles
	for end := i + n; i < end; i++ {
		a.flags[i] = flags
		a.colors[i] = color
	}
}

// CopyFrom copies n runs of src starting at srcOffset into [i, i+n).
// src may be a itself.
func (a *RunArray) CopyFrom(i, n int, src *RunArray, srcOffset int) {
	if src == nil || n <= 0 || srcOffset < 0 {
		return
	}
	if srcOffset+n > src.length {
		n = src.length - srcOffset
	}
	i, n = a.clamp(i, n)
	if n <= 0 {
		return
	}
	copy(a.flags[i:i+n], src.flags[srcOffset:srcOffset+n])
	copy(a.colors[i:i+n], src.colors[srcOffset:srcOffset+n])
}

// Insert opens n unstyled runs at index i, shifting the tail right.
func (a *RunArray) Insert(i, n int) {
	a.Resize(i, 0, n)
}

// Remove deletes n runs starting at index i.
func (a *RunArray) Remove(i, n int) {
	a.Resize(i, n, 0)
}

// Resize removes lenRemove runs at index and opens lenAdd unstyled runs in
// their place. Runs before index keep their positions; runs after
// index+lenRemove move to index+lenAdd.
func (a *RunArray) Resize(index, lenRemove, lenAdd int) {
	if index < 0 || index > a.length || lenAdd < 0 {
		return
	}
	if lenRemove < 0 || index+lenRemove > a.length {
		lenRemove = a.length - index
	}

	tailOld := index + lenRemove
	tailNew := index + lenAdd
	tailLen := a.length - tailOld
	newLength := a.length + lenAdd - lenRemove
	newCapacity := nextCapacity(newLength, a.capacity)

	if newCapacity != a.capacity {
		flags := make([]StyleFlags, newCapacity)
		colors := make([]RGBColor, newCapacity)
		copy(flags[:index], a.flags[:index])
		copy(colors[:index], a.colors[:index])
		copy(flags[tailNew:tailNew+tailLen], a.flags[tailOld:tailOld+tailLen])
		copy(colors[tailNew:tailNew+tailLen], a.colors[tailOld:tailOld+tailLen])
		a.flags = flags
		a.colors = colors
		a.capacity = newCapacity
	} else if tailNew != tailOld && tailLen > 0 {
		// copy has memmove semantics, overlapping ranges are safe.
		copy(a.flags[tailNew:tailNew+tailLen], a.flags[tailOld:tailOld+tailLen])
		copy(a.colors[tailNew:tailNew+tailLen], a.colors[tailOld:tailOld+tailLen])
	}
	a.length = newLength

	// Opened runs start unstyled rather than exposing stale values.
	for i := index; i < tailNew; i++ {
		a.flags[i] = NoStyle
		a.colors[i] = NoColor
	}
}

// Truncate shortens the array to n runs.
func (a *RunArray) Truncate(n int) {
	if n < 0 || n >= a.length {
		return
	}
	a.Resize(n, a.length-n, 0)
}

// Clear removes all runs and releases storage.
func (a *RunArray) Clear() {
	a.Resize(0, a.length, 0)
}

// Clone returns a deep copy.
func (a *RunArray) Clone() *RunArray {
	b := NewRunArray(a.length)
	b.CopyFrom(0, a.length, a, 0)
	return b
}

// Swap exchanges the contents of a and b.
func (a *RunArray) Swap(b *RunArray) {
	*a, *b = *b, *a
}

// clamp restricts [i, i+n) to the array bounds.
func (a *RunArray) clamp(i, n int) (int, int) {
	if i < 0 || i >= a.length || n <= 0 {
		return 0, 0
	}
	if i+n > a.length {
		n = a.length - i
	}
	return i, n
}

// nextCapacity applies the grow/shrink policy.
func nextCapacity(length, capacity int) int {
	switch {
	case length > capacity:
		return length * 2
	case length == 0:
		return 0
	case capacity > shrinkThreshold && length < capacity/2:
		return capacity / 2
	}
	return capacity
}
