package gallery

// Trail is a fixed-capacity FIFO of points. Pushing onto a full trail
// evicts the oldest point.
type Trail struct {
	buf   []Point3
	head  int
	count int
}

func NewTrail(capacity int) *Trail {
	if capacity < 0 {
		capacity = 0
	}
	return &Trail{buf: make([]Point3, capacity)}
}

func (t *Trail) Len() int { return t.count }
func (t *Trail) Cap() int { return len(t.buf) }

func (t *Trail) Push(p Point3) {
	if len(t.buf) == 0 {
		return
	}
	idx := (t.head + t.count) % len(t.buf)
	t.buf[idx] = p
	if t.count < len(t.buf) {
		t.count++
		return
	}
	t.head = (t.head + 1) % len(t.buf)
}

// At returns the i-th point counting from the oldest.
func (t *Trail) At(i int) Point3 {
	return t.buf[(t.head+i)%len(t.buf)]
}

// Last returns the newest point.
func (t *Trail) Last() (Point3, bool) {
	if t.count == 0 {
		return Point3{}, false
	}
	return t.At(t.count - 1), true
}

// AppendTo appends the points oldest to newest.
func (t *Trail) AppendTo(dst []Point3) []Point3 {
	for i := 0; i < t.count; i++ {
		dst = append(dst, t.At(i))
	}
	return dst
}

func (t *Trail) Clear() {
	t.head = 0
	t.count = 0
}

// Resize changes the capacity, keeping the newest points that still fit.
func (t *Trail) Resize(capacity int) {
	if capacity < 0 {
		capacity = 0
	}
	if capacity == len(t.buf) {
		return
	}
	keep := t.count
	if keep > capacity {
		keep = capacity
	}
	buf := make([]Point3, capacity)
	for i := 0; i < keep; i++ {
		buf[i] = t.At(t.count - keep + i)
	}
	t.buf = buf
	t.head = 0
	t.count = keep
}
