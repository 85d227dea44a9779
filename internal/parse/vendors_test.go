package parse

import "testing"

func TestLoadVendorTable(t *testing.T) {
	table, err := LoadVendorTable()
	if err != nil {
		t.Fatalf("load vendor table: %v", err)
	}
	if len(table.vendors) == 0 {
		t.Fatal("vendor table is empty")
	}
	if len(table.Aliases()) == 0 {
		t.Fatal("alias rules are empty")
	}
}

func TestVendorTableMatch(t *testing.T) {
	table, err := LoadVendorTable()
	if err != nil {
		t.Fatalf("load vendor table: %v", err)
	}

	tests := []struct {
		header string
		want   string
		found  bool
	}{
		{"THE HOME DEPOT #1234", "Home Depot", true},
		{"homedepot.com order confirmation", "Home Depot", true},
		{"WALMART Supercenter", "Walmart", true},
		{"DEFFENBAUGH DISPOSAL", "Waste Management", true},
		{"completely unknown store", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, found := table.Match(tt.header)
			if found != tt.found || got != tt.want {
				t.Errorf("Match(%q): got (%q, %v), want (%q, %v)", tt.header, got, found, tt.want, tt.found)
			}
		})
	}
}

func TestVendorTableOrder(t *testing.T) {
	table, err := LoadVendorTable()
	if err != nil {
		t.Fatalf("load vendor table: %v", err)
	}

	// A utility bill mentioning a retailer must resolve to the utility:
	// the table is priority-ordered and the first entry wins.
	header := "WASTE MANAGEMENT invoice - pay in store at Walmart"
	got, found := table.Match(header)
	if !found || got != "Waste Management" {
		t.Errorf("got (%q, %v), want Waste Management", got, found)
	}
}
