package reconcile

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treeline/gazetteer/pkg/gedcom"
	"github.com/treeline/gazetteer/pkg/places"
)

var uidPattern = regexp.MustCompile(`^[0-9A-F]{32}$`)

func fixedClock(at time.Time) func() utc.Time {
	return func() utc.Time {
		return utc.New(at)
	}
}

// testClock pins merges to 2024-03-17 14:03:02.5 UTC.
var testClock = fixedClock(time.Date(2024, time.March, 17, 14, 3, 2, 500_000_000, time.UTC))

func TestNewRecordSynthesis(t *testing.T) {
	m := NewMerger(WithClock(testClock))

	record := m.NewRecord(places.Place{
		ID:    "L1",
		Names: []places.Name{{Name: "Springfield"}},
	})

	assert.Equal(t, 0, record.Level)
	assert.Equal(t, gedcom.TagLocation, record.Tag)
	assert.Equal(t, "@L1@", record.XRef)

	require.Len(t, record.Children, 3)

	uid := record.Children[0]
	assert.Equal(t, gedcom.TagUID, uid.Tag)
	assert.Equal(t, 1, uid.Level)
	assert.Regexp(t, uidPattern, uid.Value)

	change := record.Children[1]
	assert.Equal(t, gedcom.TagChange, change.Tag)
	date := change.FirstChild(gedcom.TagDate)
	require.NotNil(t, date)
	assert.Equal(t, "17 MAR 2024", date.Value)
	tm := date.FirstChild(gedcom.TagTime)
	require.NotNil(t, tm)
	assert.Equal(t, "14:03:02.5", tm.Value)

	name := record.Children[2]
	assert.Equal(t, gedcom.TagName, name.Tag)
	assert.Equal(t, "Springfield", name.Value)
	assert.Empty(t, name.Children)
}

func TestMergeIdempotent(t *testing.T) {
	place := places.Place{
		ID: "L1",
		Names: []places.Name{
			{Name: "Springfield", Period: "1900-1950"},
			{Name: "Springfield Township"},
		},
		Parents: []places.Parent{{ID: "L9"}},
	}

	m := NewMerger(WithClock(testClock))
	record := m.NewRecord(place)
	first := record.Format()

	// A later run must not bump the timestamp or regenerate the unique id.
	later := NewMerger(WithClock(fixedClock(time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC))))
	later.Merge(record, place)

	assert.Equal(t, first, record.Format())
}

func TestMergePreservesForeignTags(t *testing.T) {
	record := gedcom.NewLocationRecord("L1")
	note := record.AddChild(gedcom.NewNode(1, "NOTE", "ancestral seat"))
	note.AddChild(gedcom.NewNode(2, "CONT", "second line"))
	mapNode := record.AddChild(gedcom.NewNode(1, "MAP", ""))
	mapNode.AddChild(gedcom.NewNode(2, "LATI", "N39.8"))

	m := NewMerger(WithClock(testClock))
	m.Merge(record, places.Place{ID: "L1", Names: []places.Name{{Name: "Springfield"}}})

	// _UID, CHAN, NOTE, MAP, NAME.
	require.Len(t, record.Children, 5)
	assert.Equal(t, "NOTE", record.Children[2].Tag)
	assert.Equal(t, "ancestral seat", record.Children[2].Value)
	require.Len(t, record.Children[2].Children, 1)
	assert.Equal(t, "second line", record.Children[2].Children[0].Value)
	assert.Equal(t, "MAP", record.Children[3].Tag)
	assert.Equal(t, "N39.8", record.Children[3].Children[0].Value)
}

func TestMergeAbbreviationCarryOver(t *testing.T) {
	record := gedcom.NewLocationRecord("L1")
	name := record.AddChild(gedcom.NewNode(1, gedcom.TagName, "Springfield"))
	name.AddChild(gedcom.NewNode(2, gedcom.TagAbbreviation, "SPR"))
	old := record.AddChild(gedcom.NewNode(1, gedcom.TagName, "Old Springfield"))
	old.AddChild(gedcom.NewNode(2, gedcom.TagAbbreviation, "OSP"))

	m := NewMerger(WithClock(testClock))
	m.Merge(record, places.Place{ID: "L1", Names: []places.Name{{Name: "Springfield"}}})

	names := record.ChildrenByTag(gedcom.TagName)
	require.Len(t, names, 1)
	assert.Equal(t, "Springfield", names[0].Value)

	abbr := names[0].FirstChild(gedcom.TagAbbreviation)
	require.NotNil(t, abbr)
	assert.Equal(t, "SPR", abbr.Value)
}

func TestMergeReplacesNamesAndParentLinks(t *testing.T) {
	record := gedcom.NewLocationRecord("L2")
	record.AddChild(gedcom.NewNode(1, gedcom.TagName, "Stale Name"))
	record.AddChild(gedcom.NewNode(1, gedcom.TagLocation, "@L404@"))

	m := NewMerger(WithClock(testClock))
	m.Merge(record, places.Place{
		ID:      "L2",
		Names:   []places.Name{{Name: "Shelbyville"}},
		Parents: []places.Parent{{ID: "L1"}},
	})

	names := record.ChildrenByTag(gedcom.TagName)
	require.Len(t, names, 1)
	assert.Equal(t, "Shelbyville", names[0].Value)

	links := record.ChildrenByTag(gedcom.TagLocation)
	require.Len(t, links, 1)
	assert.Equal(t, "@L1@", links[0].Value)
}

func TestMergeParentLinks(t *testing.T) {
	m := NewMerger(WithClock(testClock))

	record := m.NewRecord(places.Place{
		ID: "L2",
		Parents: []places.Parent{
			{ID: "L1", Period: "1900-1950"},
			{Period: "1800-1900"}, // no id, nothing to link
		},
	})

	links := record.ChildrenByTag(gedcom.TagLocation)
	require.Len(t, links, 1)
	assert.Equal(t, "@L1@", links[0].Value)
	require.Len(t, links[0].Children, 1)
	assert.Equal(t, gedcom.TagDate, links[0].Children[0].Tag)
	assert.Equal(t, "1900-1950", links[0].Children[0].Value)
}

func TestMergeNamePeriods(t *testing.T) {
	m := NewMerger(WithClock(testClock))

	record := m.NewRecord(places.Place{
		ID:    "L1",
		Names: []places.Name{{Name: "Springfield", Period: "1900-"}},
	})

	name := record.FirstChild(gedcom.TagName)
	require.NotNil(t, name)
	require.Len(t, name.Children, 1)
	assert.Equal(t, gedcom.TagDate, name.Children[0].Tag)
	assert.Equal(t, "1900-", name.Children[0].Value)
}

func TestMergeCarriesExistingChange(t *testing.T) {
	record := gedcom.NewLocationRecord("L1")
	record.AddChild(gedcom.NewNode(1, gedcom.TagUID, "0D863F4A72B049E6B92E7D54A65C7A1F"))
	oldChange := gedcom.NewNode(1, gedcom.TagChange, "")
	oldChange.AddChild(gedcom.NewNode(2, gedcom.TagDate, "01 JAN 2020"))
	record.AddChild(oldChange)

	m := NewMerger(WithClock(testClock))
	m.Merge(record, places.Place{ID: "L1"})

	changes := record.ChildrenByTag(gedcom.TagChange)
	require.Len(t, changes, 1)
	assert.Same(t, oldChange, changes[0])
	assert.Equal(t, "01 JAN 2020", changes[0].FirstChild(gedcom.TagDate).Value)
}

func TestMergeCollapsesDuplicateChanges(t *testing.T) {
	record := gedcom.NewLocationRecord("L1")
	first := gedcom.NewNode(1, gedcom.TagChange, "")
	first.AddChild(gedcom.NewNode(2, gedcom.TagDate, "01 JAN 2020"))
	record.AddChild(first)
	second := gedcom.NewNode(1, gedcom.TagChange, "")
	second.AddChild(gedcom.NewNode(2, gedcom.TagDate, "02 FEB 2021"))
	record.AddChild(second)

	m := NewMerger(WithClock(testClock))
	m.Merge(record, places.Place{ID: "L1"})

	changes := record.ChildrenByTag(gedcom.TagChange)
	require.Len(t, changes, 1)
	assert.Equal(t, "02 FEB 2021", changes[0].FirstChild(gedcom.TagDate).Value)
}

func TestMergeKeepsAllUniqueIDs(t *testing.T) {
	record := gedcom.NewLocationRecord("L1")
	record.AddChild(gedcom.NewNode(1, "NOTE", "keep me"))
	record.AddChild(gedcom.NewNode(1, gedcom.TagUID, "AAAA"))
	record.AddChild(gedcom.NewNode(1, gedcom.TagUID, "BBBB"))

	m := NewMerger(WithClock(testClock))
	m.Merge(record, places.Place{ID: "L1"})

	// Both ids move to the front in their original order; no new id is
	// generated.
	uids := record.ChildrenByTag(gedcom.TagUID)
	require.Len(t, uids, 2)
	assert.Equal(t, "AAAA", record.Children[0].Value)
	assert.Equal(t, "BBBB", record.Children[1].Value)
	assert.Equal(t, gedcom.TagChange, record.Children[2].Tag)
	assert.Equal(t, "NOTE", record.Children[3].Tag)
}

func TestMergeGeneratesUniqueIDOnlyOnce(t *testing.T) {
	record := gedcom.NewLocationRecord("L1")
	place := places.Place{ID: "L1"}

	m := NewMerger(WithClock(testClock))
	m.Merge(record, place)

	uids := record.ChildrenByTag(gedcom.TagUID)
	require.Len(t, uids, 1)
	generated := uids[0].Value
	assert.Regexp(t, uidPattern, generated)

	m.Merge(record, place)
	uids = record.ChildrenByTag(gedcom.TagUID)
	require.Len(t, uids, 1)
	assert.Equal(t, generated, uids[0].Value)
}

func TestMergeChildOrder(t *testing.T) {
	record := gedcom.NewLocationRecord("L1")
	record.AddChild(gedcom.NewNode(1, gedcom.TagName, "Anywhere"))
	record.AddChild(gedcom.NewNode(1, "NOTE", "a note"))
	record.AddChild(gedcom.NewNode(1, "SOUR", "census"))

	m := NewMerger(WithClock(testClock))
	m.Merge(record, places.Place{
		ID:      "L1",
		Names:   []places.Name{{Name: "First"}, {Name: "Second"}},
		Parents: []places.Parent{{ID: "L9"}},
	})

	tags := make([]string, 0, len(record.Children))
	for _, child := range record.Children {
		tags = append(tags, child.Tag)
	}
	assert.Equal(t, []string{
		gedcom.TagUID, gedcom.TagChange, "NOTE", "SOUR",
		gedcom.TagName, gedcom.TagName, gedcom.TagLocation,
	}, tags)
}

func TestMergeEmptyPlaceStillStampsRecord(t *testing.T) {
	m := NewMerger(WithClock(testClock))
	record := m.NewRecord(places.Place{ID: "L1"})

	require.Len(t, record.Children, 2)
	assert.Equal(t, gedcom.TagUID, record.Children[0].Tag)
	assert.Equal(t, gedcom.TagChange, record.Children[1].Tag)
}

func TestGenerateUID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 64; i++ {
		uid := generateUID()
		require.Regexp(t, uidPattern, uid)
		assert.Equal(t, strings.ToUpper(uid), uid)
		assert.False(t, seen[uid], "uid %s repeated", uid)
		seen[uid] = true
	}
}
