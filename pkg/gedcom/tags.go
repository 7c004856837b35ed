package gedcom

// Tags recognized by the synchronizer. Underscore-prefixed tags are vendor
// extensions in the GEDCOM convention; the rest are standard.
const (
	// TagLocation marks a place record at level 0 and a parent link below it.
	TagLocation = "_LOC"

	// TagUID carries a record's stable unique id.
	TagUID = "_UID"

	// TagName carries one name of a place; may hold ABBR and DATE sub-nodes.
	TagName = "NAME"

	// TagAbbreviation carries the short form of the name above it.
	TagAbbreviation = "ABBR"

	// TagDate carries a date or period value.
	TagDate = "DATE"

	// TagChange opens the change-metadata block stamped on every merge.
	TagChange = "CHAN"

	// TagTime carries the sub-second time inside a change-metadata block.
	TagTime = "TIME"

	// TagTrailer marks the sentinel record that must terminate the file.
	TagTrailer = "TRLR"
)
