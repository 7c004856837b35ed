package places

// Set aggregates place records by id. Iteration order is the order ids were
// first added, which the loader makes deterministic by walking source files
// lexically. Duplicate ids replace the record but keep the original position.
type Set struct {
	byID  map[string]Place
	order []string
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{byID: make(map[string]Place)}
}

// Add inserts a place record. Records with an empty id are dropped silently;
// a duplicate id overwrites the stored record (last write wins).
func (s *Set) Add(p Place) {
	if p.ID == "" {
		return
	}
	if _, exists := s.byID[p.ID]; !exists {
		s.order = append(s.order, p.ID)
	}
	s.byID[p.ID] = p
}

// Get returns the place stored under id.
func (s *Set) Get(id string) (Place, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// IDs returns all place ids in first-seen order.
func (s *Set) IDs() []string {
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// Len returns the number of distinct places.
func (s *Set) Len() int {
	return len(s.byID)
}
