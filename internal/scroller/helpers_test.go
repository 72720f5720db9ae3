package scroller

import (
	"context"
	"fmt"
	"slices"
)

// recordingContainer is a Container test double that mirrors the rows it
// is given and counts the row operations.
type recordingContainer struct {
	height        int
	parentHeight  int
	rows          []*Row
	paddingTop    int
	paddingBottom int
	added         int
	removed       int
	ops           []string
}

func (c *recordingContainer) SetHeight(height int) { c.height = height }

func (c *recordingContainer) Prepend(row *Row) {
	c.rows = append([]*Row{row}, c.rows...)
	c.added++
	c.ops = append(c.ops, fmt.Sprintf("prepend %d", row.Index))
}

func (c *recordingContainer) Append(row *Row) {
	c.rows = append(c.rows, row)
	c.added++
	c.ops = append(c.ops, fmt.Sprintf("append %d", row.Index))
}

func (c *recordingContainer) Remove(row *Row) {
	i := slices.Index(c.rows, row)
	if i < 0 {
		panic(fmt.Sprintf("remove of unknown row %d", row.Index))
	}
	c.rows = slices.Delete(c.rows, i, i+1)
	c.removed++
	c.ops = append(c.ops, fmt.Sprintf("remove %d", row.Index))
}

func (c *recordingContainer) SetPadding(top, bottom int) {
	c.paddingTop = top
	c.paddingBottom = bottom
}

func (c *recordingContainer) ParentHeight() int { return c.parentHeight }

func (c *recordingContainer) indexes() []int {
	out := make([]int, 0, len(c.rows))
	for _, r := range c.rows {
		out = append(out, r.Index)
	}
	return out
}

func (c *recordingContainer) resetCounts() {
	c.added = 0
	c.removed = 0
	c.ops = nil
}

// countingLoader hands out sequential ints and stops after limit items when
// limit is positive.
type countingLoader struct {
	next  int
	limit int
	calls []int
	err   error
}

func (l *countingLoader) LoadMore(_ context.Context, count int) ([]int, error) {
	l.calls = append(l.calls, count)
	if l.err != nil {
		return nil, l.err
	}
	n := count
	if l.limit > 0 {
		n = max(0, min(count, l.limit-l.next))
	}
	items := make([]int, n)
	for i := range items {
		items[i] = l.next
		l.next++
	}
	return items, nil
}

func renderInt(i int) string {
	return fmt.Sprintf("item %d", i)
}

func seq(from, to int) []int {
	var out []int
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}
