package query

import (
	"net/url"
	"testing"
)

func TestParseParamsDefaults(t *testing.T) {
	p, err := ParseParams(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Sort != "-createdAt" {
		t.Errorf("expected default sort -createdAt, got %q", p.Sort)
	}
	if p.Page != 1 || p.Limit != 100 {
		t.Errorf("expected page 1 limit 100, got %d/%d", p.Page, p.Limit)
	}
	if p.Select != nil {
		t.Errorf("expected no selection, got %v", p.Select)
	}
	if len(p.Filter) != 0 {
		t.Errorf("expected empty filter, got %v", p.Filter)
	}
}

func TestParseParamsExtractsReservedKeys(t *testing.T) {
	raw := url.Values{
		"select":           {"name, description"},
		"sort":             {"name,-tuition"},
		"page":             {"3"},
		"limit":            {"25"},
		"careers[in]":      {"Business"},
		"housing":          {"true"},
		"averageCost[lte]": {"10000"},
	}

	p, err := ParseParams(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Select) != 2 || p.Select[0] != "name" || p.Select[1] != "description" {
		t.Errorf("unexpected select fields: %v", p.Select)
	}
	if p.Sort != "name,-tuition" {
		t.Errorf("unexpected sort: %q", p.Sort)
	}
	if p.Page != 3 || p.Limit != 25 {
		t.Errorf("unexpected page/limit: %d/%d", p.Page, p.Limit)
	}
	if p.Skip() != 50 {
		t.Errorf("expected skip 50, got %d", p.Skip())
	}
	for _, reserved := range []string{"select", "sort", "page", "limit"} {
		if _, ok := p.Filter[reserved]; ok {
			t.Errorf("reserved key %q leaked into the filter set", reserved)
		}
	}
	if len(p.Filter) != 3 {
		t.Errorf("expected 3 filter keys, got %v", p.Filter)
	}
}

func TestParseParamsRejectsRepeatedReservedKeys(t *testing.T) {
	cases := []url.Values{
		{"select": {"name", "description"}},
		{"sort": {"name", "tuition"}},
		{"page": {"1", "2"}},
		{"limit": {"10", "20"}},
	}
	for _, raw := range cases {
		if _, err := ParseParams(raw); err == nil {
			t.Errorf("expected error for repeated reserved key in %v", raw)
		}
	}
}

func TestParseParamsRejectsBadIntegers(t *testing.T) {
	cases := []url.Values{
		{"page": {"abc"}},
		{"page": {"0"}},
		{"page": {"-1"}},
		{"limit": {"ten"}},
		{"limit": {"0"}},
	}
	for _, raw := range cases {
		if _, err := ParseParams(raw); err == nil {
			t.Errorf("expected error for %v", raw)
		}
	}
}

func TestSelectIncludes(t *testing.T) {
	p := &Params{}
	if !p.SelectIncludes("anything") {
		t.Error("no active selection should include every field")
	}

	p.Select = []string{"name", "courses"}
	if !p.SelectIncludes("courses") {
		t.Error("expected courses to be included")
	}
	if p.SelectIncludes("owner") {
		t.Error("expected owner to be excluded")
	}
}
