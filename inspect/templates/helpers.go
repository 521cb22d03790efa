package templates

import (
	"strconv"

	"github.com/delaneyj/signalgraph/reactive"
)

func quote(s string) string {
	return strconv.Quote(s)
}

func nodeLabel(n reactive.NodeInfo) string {
	label := n.Kind + " " + n.ID
	if n.Label != "" {
		label = n.Label + "\n" + label
	}
	if n.Refs > 0 {
		label += " refs=" + strconv.Itoa(n.Refs)
	}
	return label
}

func shapeFor(kind string) string {
	switch kind {
	case "signal":
		return "ellipse"
	case "memo":
		return "box"
	case "effect":
		return "diamond"
	default:
		return "plaintext"
	}
}

func styleFor(state string) string {
	switch state {
	case "dirty":
		return `"filled",fillcolor="salmon"`
	case "check":
		return `"filled",fillcolor="khaki"`
	default:
		return "solid"
	}
}
