package gedcom

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/treeline/gazetteer/pkg/errors"
	"github.com/treeline/gazetteer/pkg/logging"
)

// Tree is the parsed registry: the ordered top-level records, an index from
// location business id to its record, and counters for everything the parser
// recovered from rather than failed on.
type Tree struct {
	Records []*Node
	Index   map[string]*Node
	Stats   ParseStats
}

// ParseStats counts what the parser saw and what it dropped. Dropped input
// is never an error; the counts feed the integrity report.
type ParseStats struct {
	// Lines is the number of non-blank input lines.
	Lines int

	// Skipped counts lines with no integer level or nothing after the level.
	Skipped int

	// Garbage counts filtered top-level location records whose value held
	// what should have been the cross-reference id.
	Garbage int

	// Orphaned counts nodes dropped because no ancestor was open on the stack.
	Orphaned int
}

// token is one tokenized line before tree attachment.
type token struct {
	level int
	xref  string
	tag   string
	value string
}

// tokenize splits one trimmed, non-empty line into its segments. The second
// segment is a cross-reference id iff it begins and ends with "@"; with one
// present the remainder splits once more into tag and value, otherwise the
// second segment is the tag and the rest is the verbatim value. Returns
// ok=false for noise: a level that is not an integer, or a level with
// nothing after it.
func tokenize(line string) (token, bool) {
	parts := strings.SplitN(line, " ", 3)

	level, err := strconv.Atoi(parts[0])
	if err != nil {
		return token{}, false
	}

	tok := token{level: level}
	if len(parts) > 1 && strings.HasPrefix(parts[1], "@") && strings.HasSuffix(parts[1], "@") {
		tok.xref = parts[1]
		if len(parts) > 2 {
			rest := strings.SplitN(parts[2], " ", 2)
			tok.tag = rest[0]
			if len(rest) > 1 {
				tok.value = rest[1]
			}
		}
		return tok, true
	}

	if len(parts) < 2 {
		return token{}, false
	}
	tok.tag = parts[1]
	if len(parts) > 2 {
		tok.value = parts[2]
	}
	return tok, true
}

// isGarbage reports whether a token is the artifact of a historical buggy
// write: a top-level location record whose value holds what should have been
// the cross-reference id, with no id attached to the record itself.
func isGarbage(tok token) bool {
	return tok.level == 0 &&
		tok.tag == TagLocation &&
		tok.xref == "" &&
		strings.HasPrefix(tok.value, "@") &&
		strings.HasSuffix(tok.value, "@")
}

// stackEntry is one open ancestor during tree construction.
type stackEntry struct {
	level int
	node  *Node
}

// Parse reads the registry line format and reconstructs the record forest in
// a single pass. Malformed lines, garbage records, and orphaned nodes are
// dropped and counted, never surfaced as errors; the only error is a failing
// reader.
func Parse(r io.Reader) (*Tree, error) {
	tree := &Tree{Index: make(map[string]*Node)}

	var stack []stackEntry

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tree.Stats.Lines++

		tok, ok := tokenize(line)
		if !ok {
			tree.Stats.Skipped++
			logging.Debug().Int("line", lineno).Str("text", line).Msg("Skipping unparseable line")
			continue
		}

		if isGarbage(tok) {
			tree.Stats.Garbage++
			logging.Debug().Int("line", lineno).Str("value", tok.value).Msg("Dropping garbage location record")
			continue
		}

		node := &Node{
			Level: tok.level,
			XRef:  tok.xref,
			Tag:   tok.tag,
			Value: tok.value,
		}

		if tok.level == 0 {
			tree.Records = append(tree.Records, node)
			stack = stack[:0]
			stack = append(stack, stackEntry{0, node})

			if tok.tag == TagLocation && tok.xref != "" {
				tree.Index[node.ID()] = node
			}
			continue
		}

		// Pop until the top is a strict ancestor; tolerates skipped levels.
		for len(stack) > 0 && stack[len(stack)-1].level >= tok.level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			tree.Stats.Orphaned++
			logging.Debug().Int("line", lineno).Str("tag", tok.tag).Msg("Dropping orphaned node")
			continue
		}
		stack[len(stack)-1].node.AddChild(node)
		stack = append(stack, stackEntry{tok.level, node})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapParse("gedcom", "", err)
	}

	return tree, nil
}

// ParseFile parses the registry at path. An absent file is not an error: the
// registry starts empty and the sync creates it.
func ParseFile(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Tree{Index: make(map[string]*Node)}, nil
		}
		return nil, errors.WrapIO("read", path, err)
	}
	return Parse(bytes.NewReader(data))
}

// Location returns the location record registered under the business id.
func (t *Tree) Location(id string) (*Node, bool) {
	node, ok := t.Index[id]
	return node, ok
}

// AddLocation appends a new top-level location record and registers it in
// the index. Last write wins on a duplicate id.
func (t *Tree) AddLocation(n *Node) {
	t.Records = append(t.Records, n)
	if id := n.ID(); id != "" {
		t.Index[id] = n
	}
}

// RelocateTrailer moves the first trailer record to the end of the record
// sequence, or appends a fresh empty one if none exists. Later duplicate
// trailers in malformed input are left in place.
func (t *Tree) RelocateTrailer() {
	for i, rec := range t.Records {
		if rec.Tag == TagTrailer {
			t.Records = append(t.Records[:i], t.Records[i+1:]...)
			t.Records = append(t.Records, rec)
			return
		}
	}
	t.Records = append(t.Records, NewTrailer())
}
