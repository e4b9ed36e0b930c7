package entity

// Store is the ordered collection of live entities.
type Store []Entity

// Instantiate builds a store with one clone per template, preserving order.
// An empty template list yields an empty, non-nil store.
func Instantiate(templates []Template) Store {
	s := make(Store, 0, len(templates))
	for _, t := range templates {
		s = append(s, t.Instantiate())
	}
	return s
}

// Reset discards the current store contents and re-instantiates from the
// templates. Callers are responsible for reselecting the mirror.
func Reset(templates []Template) Store {
	return Instantiate(templates)
}

func (s Store) Len() int { return len(s) }

// At returns a pointer into the store, or nil when i is out of range.
func (s Store) At(i int) *Entity {
	if i < 0 || i >= len(s) {
		return nil
	}
	return &s[i]
}

// Active counts entities that take part in simulation and rendering.
func (s Store) Active() int {
	n := 0
	for i := range s {
		if s[i].Active {
			n++
		}
	}
	return n
}

func (s Store) Clone() Store {
	c := make(Store, len(s))
	for i := range s {
		c[i] = s[i].Clone()
	}
	return c
}

func (s Store) Names() []string {
	names := make([]string, len(s))
	for i := range s {
		names[i] = s[i].Name
	}
	return names
}

// CopyTemplates returns a private copy of the slice so later edits to the
// caller's slice never leak into a reset.
func CopyTemplates(templates []Template) []Template {
	c := make([]Template, len(templates))
	for i, t := range templates {
		c[i] = Template(Entity(t).Clone())
	}
	return c
}
