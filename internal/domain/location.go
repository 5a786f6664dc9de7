package domain

import "strings"

// Location is a single geo-located business site from the repository.
// Records are created once at load and never mutated afterwards.
type Location struct {
	ID        string
	Label     string
	Retailer  string
	Category  string
	Address   string
	City      string
	State     string // 2-letter code, compared case-insensitively
	Zip       string
	Phone     string
	Contact   string
	Suppliers []string
	Coord     Coordinates
}

// NormalizeSuppliers deduplicates supplier names case-insensitively while
// preserving the first-seen casing for display. Blank entries are dropped.
func NormalizeSuppliers(suppliers []string) []string {
	seen := make(map[string]struct{}, len(suppliers))
	out := make([]string, 0, len(suppliers))
	for _, s := range suppliers {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

// HasSupplier reports whether the location lists the given supplier.
// Matching is case-insensitive and accepts a substring match so partial
// selections like "Helena" match "Helena Agri-Enterprises".
func (l Location) HasSupplier(supplier string) bool {
	needle := strings.ToLower(strings.TrimSpace(supplier))
	if needle == "" {
		return false
	}
	for _, s := range l.Suppliers {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}
