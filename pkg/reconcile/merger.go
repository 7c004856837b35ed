// Package reconcile rewrites location records from authoritative place
// records. The merger rebuilds a record's name and parent-link children
// entirely from the place while preserving everything else the registry has
// accumulated: foreign tags, unique ids, and the change-metadata timestamp
// of the last genuine change.
package reconcile

import (
	"crypto/rand"
	"fmt"

	"github.com/agentstation/utc"

	"github.com/treeline/gazetteer/pkg/gedcom"
	"github.com/treeline/gazetteer/pkg/places"
)

// Merger merges place records into location records.
type Merger struct {
	now func() utc.Time
}

// Option configures a Merger.
type Option func(*Merger)

// WithClock replaces the merger's clock. The default is utc.Now; tests pin
// fixed instants through this.
func WithClock(now func() utc.Time) Option {
	return func(m *Merger) {
		m.now = now
	}
}

// NewMerger creates a Merger.
func NewMerger(opts ...Option) *Merger {
	m := &Merger{now: utc.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Merge rewrites record.Children in place from the place record. Merging the
// same place twice yields the same children on both passes: the
// change-metadata timestamp is carried over, never bumped, and a unique id
// is generated only when the record arrives without one.
func (m *Merger) Merge(record *gedcom.Node, place places.Place) {
	level := record.Level + 1

	// Partition the existing children. Names contribute their abbreviations
	// and are then rebuilt; parent links are rebuilt; the change-metadata
	// child is captured rather than regenerated; unique ids and every
	// foreign tag survive untouched.
	abbrs := make(map[string]string)
	var preserved []*gedcom.Node
	var existingChange *gedcom.Node
	hasUID := false

	for _, child := range record.Children {
		switch child.Tag {
		case gedcom.TagName:
			if abbr := child.FirstChild(gedcom.TagAbbreviation); abbr != nil {
				abbrs[child.Value] = abbr.Value
			}
		case gedcom.TagUID:
			preserved = append(preserved, child)
			hasUID = true
		case gedcom.TagChange:
			existingChange = child // last one wins
		case gedcom.TagLocation:
		default:
			preserved = append(preserved, child)
		}
	}

	if !hasUID {
		uid := gedcom.NewNode(level, gedcom.TagUID, generateUID())
		preserved = append([]*gedcom.Node{uid}, preserved...)
	}

	// New name children, reattaching harvested abbreviations.
	var names []*gedcom.Node
	for _, n := range place.Names {
		name := gedcom.NewNode(level, gedcom.TagName, n.Name)
		if abbr, ok := abbrs[n.Name]; ok {
			name.AddChild(gedcom.NewNode(level+1, gedcom.TagAbbreviation, abbr))
		}
		if n.Period != "" {
			name.AddChild(gedcom.NewNode(level+1, gedcom.TagDate, n.Period))
		}
		names = append(names, name)
	}

	// New parent-link children. Entries without an id carry nothing to link.
	var parents []*gedcom.Node
	for _, p := range place.Parents {
		if p.ID == "" {
			continue
		}
		link := gedcom.NewNode(level, gedcom.TagLocation, fmt.Sprintf("@%s@", p.ID))
		if p.Period != "" {
			link.AddChild(gedcom.NewNode(level+1, gedcom.TagDate, p.Period))
		}
		parents = append(parents, link)
	}

	// Reassemble in fixed order: unique ids, change metadata, preserved
	// children in their original relative order, names, parent links.
	var uids, others []*gedcom.Node
	for _, child := range preserved {
		if child.Tag == gedcom.TagUID {
			uids = append(uids, child)
		} else {
			others = append(others, child)
		}
	}

	children := make([]*gedcom.Node, 0, len(preserved)+1+len(names)+len(parents))
	children = append(children, uids...)
	if existingChange != nil {
		children = append(children, existingChange)
	} else {
		children = append(children, NewChangeNode(record.Level, m.now()))
	}
	children = append(children, others...)
	children = append(children, names...)
	children = append(children, parents...)
	record.Children = children
}

// NewRecord synthesizes a location record for a place the registry does not
// hold yet and merges the place into it. The fresh record always receives a
// fresh change-metadata stamp.
func (m *Merger) NewRecord(place places.Place) *gedcom.Node {
	record := gedcom.NewLocationRecord(place.ID)
	m.Merge(record, place)
	return record
}

// generateUID returns 128 bits from a cryptographically secure source as 32
// uppercase hexadecimal characters. Uniqueness is probabilistic, not
// enforced.
func generateUID() string {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(err) // crypto/rand.Read never fails
	}
	return fmt.Sprintf("%X", buf[:])
}
