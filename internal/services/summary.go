package services

import (
	"slices"
	"strings"

	"agroute-trip-service/internal/domain"
)

// UnknownRetailer is the sentinel bucket for locations with a blank
// retailer name.
const UnknownRetailer = "(unknown)"

// RetailerSummary is the per-retailer rollup over the visible set.
type RetailerSummary struct {
	Retailer   string
	Count      int
	Suppliers  []string
	Categories []string
	States     []string
}

// Summarize groups the visible set by trimmed retailer name and emits
// one row per retailer with the count and the supplier/category/state
// unions. Unions deduplicate case-insensitively, preserving first-seen
// casing. Rows are sorted by descending count, then retailer name
// ascending; the sort is stable and part of the contract.
//
// Blank retailer names group under UnknownRetailer; that bucket and
// headquarters-class locations are dropped unless the policy opts in.
func Summarize(visible []domain.Location, policy FilterPolicy) []RetailerSummary {
	type group struct {
		name       string
		count      int
		suppliers  *unionSet
		categories *unionSet
		states     *unionSet
	}

	groups := make(map[string]*group)
	order := make([]string, 0)

	for _, loc := range visible {
		if policy.isHeadquarters(loc.Category) && !policy.SummarizeHeadquarters {
			continue
		}

		name := strings.TrimSpace(loc.Retailer)
		if name == "" {
			name = UnknownRetailer
		}

		key := strings.ToLower(name)
		g, ok := groups[key]
		if !ok {
			g = &group{
				name:       name,
				suppliers:  newUnionSet(),
				categories: newUnionSet(),
				states:     newUnionSet(),
			}
			groups[key] = g
			order = append(order, key)
		}

		g.count++
		for _, s := range loc.Suppliers {
			g.suppliers.add(s)
		}
		g.categories.add(loc.Category)
		g.states.add(strings.ToUpper(strings.TrimSpace(loc.State)))
	}

	out := make([]RetailerSummary, 0, len(groups))
	for _, key := range order {
		g := groups[key]
		if g.name == UnknownRetailer && !policy.SummarizeUnknownRetailer {
			continue
		}
		out = append(out, RetailerSummary{
			Retailer:   g.name,
			Count:      g.count,
			Suppliers:  g.suppliers.values(),
			Categories: g.categories.values(),
			States:     g.states.values(),
		})
	}

	slices.SortStableFunc(out, func(a, b RetailerSummary) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(strings.ToLower(a.Retailer), strings.ToLower(b.Retailer))
	})

	return out
}

// unionSet accumulates strings with case-insensitive dedupe while
// preserving first-seen casing and insertion order.
type unionSet struct {
	seen map[string]struct{}
	vals []string
}

func newUnionSet() *unionSet {
	return &unionSet{seen: make(map[string]struct{})}
}

func (u *unionSet) add(v string) {
	v = strings.TrimSpace(v)
	if v == "" {
		return
	}
	key := strings.ToLower(v)
	if _, ok := u.seen[key]; ok {
		return
	}
	u.seen[key] = struct{}{}
	u.vals = append(u.vals, v)
}

func (u *unionSet) values() []string {
	out := make([]string, len(u.vals))
	copy(out, u.vals)
	return out
}
