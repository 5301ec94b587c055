package scene

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

type attr struct {
	name, value string
}

// Node is one SVG element being written out. Children, text and
// animations are serialized in the order they were added.
type Node struct {
	tag      string
	attrs    []attr
	children []*Node
	text     string
}

// El creates a node. kv holds attribute name/value pairs.
func El(tag string, kv ...string) *Node {
	n := &Node{tag: tag}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Set(kv[i], kv[i+1])
	}
	return n
}

// Set sets an attribute, replacing an earlier value of the same name.
func (n *Node) Set(name, value string) *Node {
	for i := range n.attrs {
		if n.attrs[i].name == name {
			n.attrs[i].value = value
			return n
		}
	}
	n.attrs = append(n.attrs, attr{name, value})
	return n
}

func (n *Node) Num(name string, v float64) *Node {
	return n.Set(name, num(v))
}

func (n *Node) Text(s string) *Node {
	n.text = s
	return n
}

func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.children = append(n.children, c)
		}
	}
	return n
}

// Animate writes the tween's start value as the static attribute and, if
// the value moves, an <animate> that plays the eased frames once and holds
// the last one.
func (n *Node) Animate(name string, tw Tween) *Node {
	n.Num(name, tw.From)
	if !tw.Moving() {
		return n
	}
	values := tw.Samples()
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = num(v)
	}
	return n.Append(animate(name, parts, tw.Transition))
}

// AnimateArc does the same for a slice's path, regenerating the geometry
// from the interpolated angles at every frame.
func (n *Node) AnimateArc(name string, at ArcTween, rg Ring) *Node {
	n.Set(name, rg.Path(at.Prev))
	if !at.Moving() {
		return n
	}
	frames := at.Samples()
	parts := make([]string, len(frames))
	for i, a := range frames {
		parts[i] = rg.Path(a)
	}
	return n.Append(animate(name, parts, at.Transition))
}

// AnimateValues appends an <animate> over arbitrary values, such as
// colors, spaced evenly across the transition.
func (n *Node) AnimateValues(name string, values []string, tr Transition) *Node {
	if len(values) < 2 {
		return n
	}
	tr.Frames = len(values)
	return n.Append(animate(name, values, tr))
}

func animate(name string, values []string, tr Transition) *Node {
	times := tr.keyTimes()
	kt := make([]string, len(times))
	for i, t := range times {
		kt[i] = strconv.FormatFloat(t, 'f', 4, 64)
	}
	return El("animate",
		"attributeName", name,
		"values", strings.Join(values, ";"),
		"keyTimes", strings.Join(kt, ";"),
		"dur", strconv.FormatInt(tr.Duration.Milliseconds(), 10)+"ms",
		"fill", "freeze",
	)
}

// String returns the node as markup. Attribute values and text are escaped.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	b.WriteString("<" + n.tag)
	for _, a := range n.attrs {
		b.WriteString(" " + a.name + `="` + templ.EscapeString(a.value) + `"`)
	}
	if len(n.children) == 0 && n.text == "" {
		b.WriteString("/>")
		return
	}
	b.WriteString(">")
	b.WriteString(templ.EscapeString(n.text))
	for _, c := range n.children {
		c.write(b)
	}
	b.WriteString("</" + n.tag + ">")
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

// Num is the coordinate format used in every attribute.
func Num(v float64) string { return num(v) }
