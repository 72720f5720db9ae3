package scroller

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Resolver looks up containers by selector.
type Resolver interface {
	Lookup(selector string) (Container, bool)
}

// Element identifies the container a scroller renders into: either a
// selector resolved at construction or a container handle.
type Element interface {
	resolve(r Resolver) (Container, error)
}

type selectorElement string

func (s selectorElement) resolve(r Resolver) (Container, error) {
	sel := strings.TrimSpace(string(s))
	if sel == "" {
		return nil, NewInvalidElementError("", errors.New("empty selector"))
	}
	if r == nil {
		return nil, NewInvalidElementError(sel, errors.New("no resolver to look up selector"))
	}
	c, ok := r.Lookup(sel)
	if !ok || c == nil {
		return nil, NewInvalidElementError(sel, errors.New("no such container"))
	}
	return c, nil
}

type handleElement struct {
	c Container
}

func (h handleElement) resolve(Resolver) (Container, error) {
	if h.c == nil {
		return nil, NewInvalidElementError("", errors.New("nil container"))
	}
	return h.c, nil
}

// Selector returns an element resolved by name.
func Selector(name string) Element {
	return selectorElement(name)
}

// Handle returns an element wrapping an existing container.
func Handle(c Container) Element {
	return handleElement{c: c}
}

// ParentSizer is implemented by containers that can report the height of
// the area they live in. Percentage heights need it.
type ParentSizer interface {
	ParentHeight() int
}

// Height is a parsed height option: either an absolute number of lines or a
// percentage of the parent's height.
type Height struct {
	Value   int
	Percent bool
}

// MaxHeight bounds fixed heights so line arithmetic cannot overflow.
const MaxHeight = math.MaxInt32

// ParseHeight parses a height option. Accepted values are positive ints and
// whole floats up to MaxHeight, and strings of the form "N", "Npx" or "N%".
func ParseHeight(v any) (Height, error) {
	switch h := v.(type) {
	case nil:
		return Height{}, NewInvalidHeightError(v, errors.New("height is required"))
	case Height:
		if h.Value <= 0 || h.Value > MaxHeight || (h.Percent && h.Value > 100) {
			return Height{}, NewInvalidHeightError(v, nil)
		}
		return h, nil
	case int:
		if h <= 0 || h > MaxHeight {
			return Height{}, NewInvalidHeightError(v, nil)
		}
		return Height{Value: h}, nil
	case float64:
		if math.IsNaN(h) || math.IsInf(h, 0) || h < 1 || h > MaxHeight {
			return Height{}, NewInvalidHeightError(v, nil)
		}
		return Height{Value: int(h)}, nil
	case string:
		s := strings.TrimSpace(h)
		percent := false
		switch {
		case strings.HasSuffix(s, "%"):
			percent = true
			s = strings.TrimSuffix(s, "%")
		case strings.HasSuffix(s, "px"):
			s = strings.TrimSuffix(s, "px")
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return Height{}, NewInvalidHeightError(v, err)
		}
		if n <= 0 || n > MaxHeight || (percent && n > 100) {
			return Height{}, NewInvalidHeightError(v, nil)
		}
		return Height{Value: n, Percent: percent}, nil
	default:
		return Height{}, NewInvalidHeightError(v, fmt.Errorf("unsupported type %T", v))
	}
}

// Resolve returns the height in lines for the given container.
func (h Height) Resolve(c Container) (int, error) {
	if !h.Percent {
		return h.Value, nil
	}
	ps, ok := c.(ParentSizer)
	if !ok {
		return 0, NewInvalidHeightError(h.String(), errors.New("container cannot resolve percentage heights"))
	}
	lines := ps.ParentHeight() * h.Value / 100
	if lines <= 0 {
		return 0, NewInvalidHeightError(h.String(), errors.New("resolves to zero lines"))
	}
	return lines, nil
}

func (h Height) String() string {
	if h.Percent {
		return strconv.Itoa(h.Value) + "%"
	}
	return strconv.Itoa(h.Value) + "px"
}
