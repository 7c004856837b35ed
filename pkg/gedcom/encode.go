package gedcom

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/treeline/gazetteer/pkg/constants"
	"github.com/treeline/gazetteer/pkg/errors"
)

// Format renders the node and its descendants as registry text: one line per
// node in stack order, newline-separated, without a trailing newline. The tag
// segment is always emitted, even when empty, so parsing and reserializing an
// untouched subtree is byte-identical.
func (n *Node) Format() string {
	var b strings.Builder
	n.appendTo(&b)
	return b.String()
}

func (n *Node) appendTo(b *strings.Builder) {
	b.WriteString(strconv.Itoa(n.Level))
	if n.XRef != "" {
		b.WriteByte(' ')
		b.WriteString(n.XRef)
	}
	b.WriteByte(' ')
	b.WriteString(n.Tag)
	if n.Value != "" {
		b.WriteByte(' ')
		b.WriteString(n.Value)
	}
	for _, child := range n.Children {
		b.WriteByte('\n')
		child.appendTo(b)
	}
}

// Marshal renders every top-level record in order, each subtree followed by
// one newline.
func (t *Tree) Marshal() []byte {
	var buf bytes.Buffer
	for _, rec := range t.Records {
		buf.WriteString(rec.Format())
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// WriteFile overwrites path with the marshaled registry. The data goes to a
// temporary file in the same directory first and is renamed into place, so a
// crash mid-write cannot leave a truncated registry.
func (t *Tree) WriteFile(path string) error {
	data := t.Marshal()

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("close", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("chmod", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("rename", path, err)
	}
	return nil
}
