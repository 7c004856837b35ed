// Package places loads the authoritative place records that drive a sync.
// Records live in YAML documents under a directory tree; each document is a
// list of places. The loader aggregates every document into a Set keyed by
// the place's stable id, in deterministic first-seen order.
package places

// Place is one authoritative place record.
type Place struct {
	ID      string   `yaml:"id"`
	Names   []Name   `yaml:"names"`
	Parents []Parent `yaml:"parents"`
}

// Name is one name a place carries, optionally bounded to a period.
type Name struct {
	Name   string `yaml:"name"`
	Period string `yaml:"period,omitempty"`
}

// Parent links a place to an enclosing place by id, optionally bounded to a
// period. Entries without an id are ignored by the merger.
type Parent struct {
	ID     string `yaml:"id,omitempty"`
	Period string `yaml:"period,omitempty"`
}
