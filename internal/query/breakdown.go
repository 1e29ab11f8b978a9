package query

import (
	"fmt"
	"sort"
	"strings"

	"covidtrack/internal/database"
	"covidtrack/internal/places"
)

// Tree is a breakdown result: the scalar totals of the resolved node plus
// its ordered children.
type Tree struct {
	Scalar
	Children []*Node `json:"children,omitempty"`
}

// Breakdown computes the full hierarchical breakdown for the filter's
// date scope and drills down to the most specific supplied place filter.
// An inconsistent filter combination falls back to the best resolvable
// ancestor, never an error.
func (e *Engine) Breakdown(f Filter) (*Tree, error) {
	scope, err := e.resolveDates(f)
	if err != nil {
		return nil, err
	}

	root := &Node{Name: "Global"}
	if scope.date != "" {
		continents, err := e.db.ContinentByCountry()
		if err != nil {
			return nil, fmt.Errorf("loading continent mapping: %w", err)
		}

		if err := e.fold(root, continents, scope.date, 1); err != nil {
			return nil, err
		}
		if scope.isRange {
			if err := e.fold(root, continents, scope.baseline, -1); err != nil {
				return nil, err
			}
		}
		clampTree(root)
		sortTree(root)
	}

	node := drill(root, f)

	t := &Tree{
		Scalar: Scalar{
			Place:     node.Name,
			Confirmed: node.Confirmed,
			Deaths:    node.Deaths,
			Recovered: node.Recovered,
		},
		Children: node.Children,
	}
	if scope.isRange {
		t.DateRange = scope.label
	} else {
		t.Date = scope.label
	}
	return t, nil
}

// fold accumulates one day's rows into the tree with the given sign.
// Range deltas fold the end date at +1 and the baseline date at -1.
func (e *Engine) fold(root *Node, continents map[string]string, date string, sign int64) error {
	rows, err := e.db.CountRowsForDate(date)
	if err != nil {
		return fmt.Errorf("loading rows for %s: %w", date, err)
	}

	for _, r := range rows {
		add(root, r, sign)
		if r.Country == "" {
			// Unplaceable rows count toward the global total only.
			continue
		}

		continent, ok := continents[r.Country]
		if !ok {
			continent = places.UnknownContinent
		}
		cNode := child(root, continent)
		add(cNode, r, sign)

		coNode := child(cNode, r.Country)
		add(coNode, r, sign)

		if r.Province == nil || *r.Province == "Unknown" {
			continue
		}
		sNode := child(coNode, *r.Province)
		add(sNode, r, sign)

		if r.USCountyName == nil || r.Country != places.USCountry {
			continue
		}
		add(child(sNode, *r.USCountyName), r, sign)
	}
	return nil
}

func add(n *Node, r database.CountRow, sign int64) {
	n.Confirmed += sign * r.Confirmed
	n.Deaths += sign * r.Deaths
	n.Recovered += sign * r.Recovered
}

// child finds or appends the named child node.
func child(n *Node, name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	c := &Node{Name: name}
	n.Children = append(n.Children, c)
	return c
}

// clampTree zeroes negative counts left by baseline subtraction.
func clampTree(n *Node) {
	n.Confirmed = clamp(n.Confirmed)
	n.Deaths = clamp(n.Deaths)
	n.Recovered = clamp(n.Recovered)
	for _, c := range n.Children {
		clampTree(c)
	}
}

// sortTree orders children by name at every level for stable output.
func sortTree(n *Node) {
	sort.Slice(n.Children, func(i, j int) bool {
		return n.Children[i].Name < n.Children[j].Name
	})
	for _, c := range n.Children {
		sortTree(c)
	}
}

// drill returns the tree node matching the most specific supplied place
// filter, county > state > country > continent. A filter level with no
// match falls through to the next coarser level, down to the global root.
func drill(root *Node, f Filter) *Node {
	if f.County != "" {
		if n := findAtDepth(root, 0, 4, f.County); n != nil {
			return n
		}
	}
	if f.State != "" {
		if n := findAtDepth(root, 0, 3, f.State); n != nil {
			return n
		}
	}
	if f.Country != "" {
		if n := findAtDepth(root, 0, 2, f.Country); n != nil {
			return n
		}
	}
	if f.Continent != "" {
		if n := findAtDepth(root, 0, 1, f.Continent); n != nil {
			return n
		}
	}
	return root
}

// findAtDepth searches for a name at one tree depth, case-insensitively.
// Depth 1 is continents, 2 countries, 3 states, 4 counties.
func findAtDepth(n *Node, depth, target int, name string) *Node {
	if depth == target {
		if strings.EqualFold(n.Name, name) {
			return n
		}
		return nil
	}
	for _, c := range n.Children {
		if found := findAtDepth(c, depth+1, target, name); found != nil {
			return found
		}
	}
	return nil
}
