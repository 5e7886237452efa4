package widget

import (
	"sort"
	"strconv"
	"strings"
)

// Dump renders the tree rooted at w in a line-oriented, deterministic
// text form suitable for diffing:
//
//	node <id> <type>
//	prop <id> <k>=<v> <k>=<v> ...
//	child <parent> <child>
//
// Nodes appear in depth-first declaration order. Property keys are
// sorted; values containing spaces, quotes, equal signs or control
// characters are quoted.
func Dump(w Widget) string {
	var b strings.Builder
	var walk func(w Widget)
	walk = func(w Widget) {
		b.WriteString("node " + w.ID() + " " + w.Type() + "\n")

		props := w.Props()
		if w.Visible() {
			props["visible"] = "1"
		}
		if len(props) > 0 {
			keys := make([]string, 0, len(props))
			for k := range props {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			b.WriteString("prop " + w.ID())
			for _, k := range keys {
				b.WriteString(" " + k + "=" + quote(props[k]))
			}
			b.WriteByte('\n')
		}

		c, ok := w.(Container)
		if !ok {
			return
		}
		children := c.Children()
		for _, child := range children {
			b.WriteString("child " + w.ID() + " " + child.ID() + "\n")
		}
		for _, child := range children {
			walk(child)
		}
	}
	walk(w)
	return b.String()
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\\\"=") {
		return strconv.Quote(s)
	}
	return s
}
