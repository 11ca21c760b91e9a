package rhythm

// effect is a callback due at a point on the rhythm clock.
type effect struct {
	at  float64
	gen int
	fn  func()
}

// effectQueue holds deferred hit effects. Entries from an older generation
// are dropped instead of run.
type effectQueue struct {
	gen     int
	pending []effect
}

func (q *effectQueue) schedule(at float64, fn func()) {
	q.pending = append(q.pending, effect{at: at, gen: q.gen, fn: fn})
}

// runDue runs every current-generation effect due at or before now, in
// scheduling order.
func (q *effectQueue) runDue(now float64) {
	if len(q.pending) == 0 {
		return
	}
	// Snapshot; callbacks may schedule more
	due := q.pending
	q.pending = nil
	for _, e := range due {
		switch {
		case e.gen != q.gen:
		case e.at <= now:
			e.fn()
		default:
			q.pending = append(q.pending, e)
		}
	}
}

// cancel drops every pending effect.
func (q *effectQueue) cancel() {
	q.gen++
	q.pending = nil
}

func (q *effectQueue) size() int {
	return len(q.pending)
}
