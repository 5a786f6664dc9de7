package services

import (
	"testing"

	"agroute-trip-service/internal/domain"
)

func TestSummarizeSpecScenario(t *testing.T) {
	visible := ApplyFilter(testLocations(), Selection{
		States:     []string{"IA"},
		Categories: []string{"agronomy"},
		Suppliers:  []string{"Helena"},
	}, FilterPolicy{})

	rows := Summarize(visible, FilterPolicy{})
	if len(rows) != 1 {
		t.Fatalf("summary rows = %d, want 1", len(rows))
	}

	row := rows[0]
	if row.Retailer != "Heartland Co-op" || row.Count != 1 {
		t.Fatalf("row = %+v, want Heartland Co-op count 1", row)
	}
	if len(row.Suppliers) != 2 || row.Suppliers[0] != "Helena" || row.Suppliers[1] != "CHS" {
		t.Fatalf("suppliers = %v, want [Helena CHS]", row.Suppliers)
	}
	if len(row.Categories) != 1 || row.Categories[0] != "Agronomy" {
		t.Fatalf("categories = %v, want [Agronomy]", row.Categories)
	}
	if len(row.States) != 1 || row.States[0] != "IA" {
		t.Fatalf("states = %v, want [IA]", row.States)
	}
}

func TestSummarizeCountsPartitionVisibleSet(t *testing.T) {
	visible := []domain.Location{
		{Retailer: "Ag Partners", Category: "Agronomy", State: "NE"},
		{Retailer: "ag partners", Category: "Grain", State: "IA"},
		{Retailer: "Key Cooperative", Category: "Grain", State: "IA"},
		{Retailer: "", Category: "Agronomy", State: "IA"}, // unknown bucket
	}

	rows := Summarize(visible, FilterPolicy{})

	total := 0
	for _, r := range rows {
		total += r.Count
	}
	// The unknown bucket is excluded by default policy.
	if total != 3 {
		t.Fatalf("summed counts = %d, want 3", total)
	}

	rows = Summarize(visible, FilterPolicy{SummarizeUnknownRetailer: true})
	total = 0
	found := false
	for _, r := range rows {
		total += r.Count
		if r.Retailer == UnknownRetailer {
			found = true
		}
	}
	if total != len(visible) || !found {
		t.Fatalf("with unknown bucket enabled: total = %d, unknown present = %v", total, found)
	}
}

func TestSummarizeGroupsCaseInsensitively(t *testing.T) {
	visible := []domain.Location{
		{Retailer: "Heartland Co-op", Category: "Agronomy", State: "IA", Suppliers: []string{"Helena"}},
		{Retailer: "HEARTLAND CO-OP", Category: "Energy", State: "NE", Suppliers: []string{"helena", "CHS"}},
	}

	rows := Summarize(visible, FilterPolicy{})
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1 (case-insensitive grouping)", len(rows))
	}
	if rows[0].Retailer != "Heartland Co-op" {
		t.Fatalf("retailer = %q, want first-seen casing", rows[0].Retailer)
	}
	if rows[0].Count != 2 {
		t.Fatalf("count = %d, want 2", rows[0].Count)
	}
	if len(rows[0].Suppliers) != 2 {
		t.Fatalf("supplier union = %v, want case-insensitive dedupe to 2", rows[0].Suppliers)
	}
	if len(rows[0].States) != 2 {
		t.Fatalf("state union = %v, want [IA NE]", rows[0].States)
	}
}

func TestSummarizeSortOrder(t *testing.T) {
	visible := []domain.Location{
		{Retailer: "Zeta Ag", Category: "Agronomy", State: "IA"},
		{Retailer: "Alpha Ag", Category: "Agronomy", State: "IA"},
		{Retailer: "Midland", Category: "Agronomy", State: "IA"},
		{Retailer: "Midland", Category: "Grain", State: "NE"},
	}

	rows := Summarize(visible, FilterPolicy{})
	if rows[0].Retailer != "Midland" {
		t.Fatalf("rows[0] = %q, want highest count first", rows[0].Retailer)
	}
	if rows[1].Retailer != "Alpha Ag" || rows[2].Retailer != "Zeta Ag" {
		t.Fatalf("ties must sort by name ascending, got %q then %q", rows[1].Retailer, rows[2].Retailer)
	}
}

func TestSummarizeHeadquartersPolicy(t *testing.T) {
	visible := []domain.Location{
		{Retailer: "Frontier Ag", Category: "Headquarters", State: "KS"},
		{Retailer: "Frontier Ag", Category: "Agronomy", State: "KS"},
	}
	policy := DefaultFilterPolicy()

	rows := Summarize(visible, policy)
	if len(rows) != 1 || rows[0].Count != 1 {
		t.Fatalf("headquarters should be excluded by default, got %+v", rows)
	}

	policy.SummarizeHeadquarters = true
	rows = Summarize(visible, policy)
	if len(rows) != 1 || rows[0].Count != 2 {
		t.Fatalf("headquarters should count when opted in, got %+v", rows)
	}
}
