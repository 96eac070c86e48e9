package channel

import "src.squeak.sh/pkg/ioctrl"

// Observer signatures of the signals of a channel.
type (
	// VrbObserver receives the messages of a verbosity tier.
	VrbObserver func(msg string, cat ioctrl.Category)
	// CatObserver receives the messages of a category.
	CatObserver func(msg string, vrb ioctrl.Verbosity)
	// FullObserver receives every message with its verbosity and category.
	FullObserver func(msg string, vrb ioctrl.Verbosity, cat ioctrl.Category)
	// AllObserver receives the text of every message.
	AllObserver func(msg string)
)

// Signal is a list of observers. Observers are called synchronously, in the
// order they were connected.
type Signal[F any] struct {
	slots  []slot[F]
	nextID uint64
}

type slot[F any] struct {
	id uint64
	fn F
}

// Connection identifies a connected observer.
type Connection struct {
	disconnect func()
}

// Disconnect removes the observer from its signal. It is safe to call more
// than once, and from within an observer.
func (c Connection) Disconnect() {
	if c.disconnect != nil {
		c.disconnect()
	}
}

// Connect appends fn to the signal.
func (s *Signal[F]) Connect(fn F) Connection {
	id := s.nextID
	s.nextID++
	s.slots = append(s.slots, slot[F]{id, fn})
	return Connection{func() { s.remove(id) }}
}

// Len returns the number of connected observers.
func (s *Signal[F]) Len() int { return len(s.slots) }

func (s *Signal[F]) remove(id uint64) {
	for i, sl := range s.slots {
		if sl.id == id {
			// Copy so that an emission in progress keeps its snapshot.
			s.slots = append(s.slots[:i:i], s.slots[i+1:]...)
			return
		}
	}
}

// emit calls call with each observer. Observers connected or disconnected
// during the emission take effect from the next one.
func (s *Signal[F]) emit(call func(F)) {
	for _, sl := range s.slots {
		call(sl.fn)
	}
}

// Signals holds the eleven observer points of a channel.
type Signals struct {
	vrb  [len(ioctrl.Verbosities)]Signal[VrbObserver]
	cat  [len(ioctrl.Categories)]Signal[CatObserver]
	full Signal[FullObserver]
	all  Signal[AllObserver]
}

// Verbosity returns the signal of a verbosity tier. An observer of tier v
// receives every message whose verbosity is v or more essential. It panics if
// v is not a valid tier.
func (s *Signals) Verbosity(v ioctrl.Verbosity) *Signal[VrbObserver] {
	if !v.Valid() {
		panic("channel: invalid verbosity " + v.String())
	}
	return &s.vrb[v]
}

// Category returns the signal of a single category. It panics if c is not
// exactly one category.
func (s *Signals) Category(c ioctrl.Category) *Signal[CatObserver] {
	for i, bit := range ioctrl.Categories {
		if c == bit {
			return &s.cat[i]
		}
	}
	panic("channel: not a single category: " + c.String())
}

// Full returns the signal that receives every message with its verbosity and
// category.
func (s *Signals) Full() *Signal[FullObserver] { return &s.full }

// All returns the signal that receives the text of every message.
func (s *Signals) All() *Signal[AllObserver] { return &s.all }
