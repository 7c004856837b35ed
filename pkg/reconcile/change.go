package reconcile

import (
	"github.com/agentstation/utc"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/treeline/gazetteer/pkg/constants"
	"github.com/treeline/gazetteer/pkg/gedcom"
)

// NewChangeNode builds the change-metadata block recording the instant a
// record changed: a CHAN node holding a DATE ("17 MAR 2024") holding a TIME
// ("14:03:02.5", exactly one sub-second digit). Child levels are anchored to
// the owning record's level.
func NewChangeNode(recordLevel int, at utc.Time) *gedcom.Node {
	date := cases.Upper(language.English).String(at.Format(constants.ChangeDateLayout))

	change := gedcom.NewNode(recordLevel+1, gedcom.TagChange, "")
	dateNode := change.AddChild(gedcom.NewNode(recordLevel+2, gedcom.TagDate, date))
	dateNode.AddChild(gedcom.NewNode(recordLevel+3, gedcom.TagTime, at.Format(constants.ChangeTimeLayout)))
	return change
}
