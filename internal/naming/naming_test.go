package naming

import "testing"

func TestLowerCamel(t *testing.T) {
	tests := map[string]string{
		"":         "",
		"a":        "a",
		"A":        "a",
		"ID":       "id",
		"Name":     "name",
		"PlacedAt": "placedAt",
		"URLPath":  "urlPath",
		"HTTPURL":  "httpurl",
		"items":    "items",
	}
	for input, want := range tests {
		if got := LowerCamel(input); got != want {
			t.Fatalf("LowerCamel(%q): expected %q, got %q", input, want, got)
		}
	}
}

func TestSlotAvoidsKeywords(t *testing.T) {
	if got := Slot("Type"); got != "type_" {
		t.Fatalf("expected type_, got %q", got)
	}
	if got := Slot("Range"); got != "range_" {
		t.Fatalf("expected range_, got %q", got)
	}
	if got := Slot("Customer"); got != "customer" {
		t.Fatalf("expected customer, got %q", got)
	}
}

func TestConstructor(t *testing.T) {
	if got := Constructor("Order", "OrderBuilder"); got != "NewOrderBuilder" {
		t.Fatalf("expected NewOrderBuilder, got %q", got)
	}
	if got := Constructor("pair", "pairBuilder"); got != "newPairBuilder" {
		t.Fatalf("expected newPairBuilder, got %q", got)
	}
}

func TestGoName(t *testing.T) {
	tests := map[string]string{
		"name":        "Name",
		"first_name":  "FirstName",
		"id":          "ID",
		"owner_id":    "OwnerID",
		"homePageUrl": "HomePageURL",
		"x-trace":     "XTrace",
		"2fa":         "F2fa",
		"":            "Field",
	}
	for input, want := range tests {
		if got := GoName(input); got != want {
			t.Fatalf("GoName(%q): expected %q, got %q", input, want, got)
		}
	}
}
