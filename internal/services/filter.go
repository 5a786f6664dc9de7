package services

import (
	"strings"

	"agroute-trip-service/internal/domain"
)

// Selection holds the four independent filter dimensions. An empty or
// nil dimension means "no restriction". All comparisons are
// case-insensitive; original casing is preserved for display only.
type Selection struct {
	States     []string
	Retailers  []string
	Categories []string
	Suppliers  []string
}

// FilterPolicy configures the entity-class rules that vary per dataset.
// Classes are matched against the location category, case-insensitively.
type FilterPolicy struct {
	// Categories rejected outright before any dimension is consulted.
	ExcludedCategories []string
	// Headquarters-class locations bypass the retailer, category and
	// supplier dimensions and are filtered by state only.
	HeadquartersClasses []string
	// Always-visible locations bypass every dimension.
	AlwaysVisibleClasses []string

	// Whether headquarters-class locations appear in retailer summaries.
	SummarizeHeadquarters bool
	// Whether the "(unknown)" retailer bucket appears in summaries.
	SummarizeUnknownRetailer bool
}

// DefaultFilterPolicy matches the production ag-retail dataset: kingpin
// entities are always visible, headquarters markers are state-filtered
// only, and neither appears in retailer summaries.
func DefaultFilterPolicy() FilterPolicy {
	return FilterPolicy{
		HeadquartersClasses:  []string{"headquarters"},
		AlwaysVisibleClasses: []string{"kingpin"},
	}
}

func (p FilterPolicy) isExcluded(category string) bool {
	return containsFold(p.ExcludedCategories, category)
}

func (p FilterPolicy) isHeadquarters(category string) bool {
	return containsFold(p.HeadquartersClasses, category)
}

func (p FilterPolicy) isAlwaysVisible(category string) bool {
	return containsFold(p.AlwaysVisibleClasses, category)
}

// ApplyFilter returns the subset of locations satisfying the compound
// predicate. The result may be empty; no show-all fallback is ever
// substituted, callers decide how to display zero matches. A nil or
// blank-only dimension degrades to "no restriction".
func ApplyFilter(locations []domain.Location, sel Selection, policy FilterPolicy) []domain.Location {
	states := normalizeTerms(sel.States)
	retailers := normalizeTerms(sel.Retailers)
	categories := normalizeTerms(sel.Categories)
	suppliers := normalizeTerms(sel.Suppliers)

	visible := make([]domain.Location, 0, len(locations))
	for _, loc := range locations {
		if policy.isExcluded(loc.Category) {
			continue
		}

		if policy.isAlwaysVisible(loc.Category) {
			visible = append(visible, loc)
			continue
		}

		if len(states) > 0 && !matchFold(states, loc.State) {
			continue
		}

		// Headquarters markers are filtered by state only.
		if policy.isHeadquarters(loc.Category) {
			visible = append(visible, loc)
			continue
		}

		if len(retailers) > 0 && !matchFold(retailers, loc.Retailer) {
			continue
		}
		if len(categories) > 0 && !matchFold(categories, loc.Category) {
			continue
		}
		if len(suppliers) > 0 && !matchAnySupplier(suppliers, loc) {
			continue
		}

		visible = append(visible, loc)
	}

	return visible
}

// normalizeTerms trims entries and drops blanks so malformed selections
// degrade to "no restriction" instead of matching nothing.
func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func containsFold(terms []string, value string) bool {
	value = strings.TrimSpace(value)
	for _, t := range terms {
		if strings.EqualFold(strings.TrimSpace(t), value) {
			return true
		}
	}
	return false
}

func matchFold(selected []string, value string) bool {
	return containsFold(selected, value)
}

func matchAnySupplier(selected []string, loc domain.Location) bool {
	for _, s := range selected {
		if loc.HasSupplier(s) {
			return true
		}
	}
	return false
}
