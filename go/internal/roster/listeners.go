package roster

// Change describes which collections a mutation touched.
type Change uint8

const (
	AthletesChanged Change = 1 << iota
	TeamsChanged
)

// Has reports whether c includes other.
func (c Change) Has(other Change) bool { return c&other != 0 }

// Listener is called synchronously after every successful mutation.
type Listener func(Change)

type listener struct {
	fn Listener
}

// OnChange registers fn and returns a function that removes it.
func (r *Roster) OnChange(fn Listener) (unsubscribe func()) {
	l := &listener{fn: fn}
	r.listeners = append(r.listeners, l)
	return func() {
		for i, existing := range r.listeners {
			if existing == l {
				r.listeners = append(r.listeners[:i:i], r.listeners[i+1:]...)
				return
			}
		}
	}
}

func (r *Roster) notify(c Change) {
	for _, l := range r.listeners {
		l.fn(c)
	}
}
