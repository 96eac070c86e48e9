package channel

import "src.squeak.sh/pkg/ioctrl"

// permission is the cached result of the gate.
type permission uint8

const (
	// unknown means the gate must be evaluated before it is read.
	unknown permission = iota
	permitted
	denied
)

// gate decides whether the current message is processed at all. It combines
// a permission window, the most verbose tier and the categories allowed, with
// the verbosity and category of the message. The result is cached until
// invalidate is called.
type gate struct {
	maxVrb  ioctrl.Verbosity
	allowed ioctrl.Category
	state   permission
}

func newGate() gate {
	return gate{maxVrb: ioctrl.TMI, allowed: ioctrl.CatAll}
}

// invalidate forces the next canParse to re-evaluate. It must be called by
// every mutator of the message verbosity, the message category or the
// window.
func (g *gate) invalidate() { g.state = unknown }

// canParse reports whether a message with the given verbosity and category
// passes the window. It is the only place where unknown is resolved.
func (g *gate) canParse(vrb ioctrl.Verbosity, cat ioctrl.Category) bool {
	if g.state == unknown {
		if vrb <= g.maxVrb && cat.Intersects(g.allowed) {
			g.state = permitted
		} else {
			g.state = denied
		}
	}
	return g.state == permitted
}

// suppress removes cat from the allowed categories. It reports whether no
// category remains allowed.
func (g *gate) suppress(cat ioctrl.Category) bool {
	g.allowed &^= cat
	g.invalidate()
	return g.allowed == ioctrl.CatNone
}

// allow adds cat to the allowed categories.
func (g *gate) allow(cat ioctrl.Category) {
	g.allowed |= cat & ioctrl.CatAll
	g.invalidate()
}

// limit sets the most verbose tier allowed.
func (g *gate) limit(vrb ioctrl.Verbosity) {
	g.maxVrb = vrb
	g.invalidate()
}

// raise allows vrb if it is more verbose than the current limit.
func (g *gate) raise(vrb ioctrl.Verbosity) {
	if vrb > g.maxVrb {
		g.maxVrb = vrb
		g.invalidate()
	}
}

// open allows everything.
func (g *gate) open() {
	g.maxVrb = ioctrl.TMI
	g.allowed = ioctrl.CatAll
	g.invalidate()
}
