package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestSearchCriteria tests query construction and page handling.
func TestSearchCriteria(t *testing.T) {
	t.Parallel()

	t.Run("default criteria target page 1 without filters", func(t *testing.T) {
		t.Parallel()

		c := DefaultSearchCriteria()
		if c.PageIndex != 1 {
			t.Errorf("expected PageIndex 1, got %d", c.PageIndex)
		}
		if !c.IsUnfiltered() {
			t.Error("expected default criteria to be unfiltered")
		}
	})

	t.Run("WithPage does not mutate the receiver", func(t *testing.T) {
		t.Parallel()

		c := SearchCriteria{BusinessCategory: BusinessCategoryMedical, PageIndex: 1}
		next := c.WithPage(5)
		if c.PageIndex != 1 {
			t.Errorf("receiver mutated: PageIndex %d", c.PageIndex)
		}
		if next.PageIndex != 5 || next.BusinessCategory != BusinessCategoryMedical {
			t.Errorf("unexpected copy: %+v", next)
		}
	})

	t.Run("query params carry all filters", func(t *testing.T) {
		t.Parallel()

		c := SearchCriteria{
			BusinessCategory:  BusinessCategoryEducation,
			DonationGroupType: DonationGroupStatutory,
			CorporationName:   "장학",
			PageIndex:         3,
		}
		want := map[string]string{
			"pbcbizTy":  "교육",
			"ctbmGrpTy": "법정기부금단체",
			"cprNm":     "장학",
			"pageIndex": "3",
		}
		if diff := cmp.Diff(want, c.QueryParams()); diff != "" {
			t.Errorf("params mismatch (-want +got):\n%s", diff)
		}
		if got := c.Values().Get("pageIndex"); got != "3" {
			t.Errorf("expected pageIndex 3, got %q", got)
		}
	})

	t.Run("page below 1 is treated as first page", func(t *testing.T) {
		t.Parallel()

		c := SearchCriteria{PageIndex: 0}
		if c.Page() != 1 {
			t.Errorf("expected page 1, got %d", c.Page())
		}
		if got := c.QueryParams()["pageIndex"]; got != "1" {
			t.Errorf("expected pageIndex '1', got %q", got)
		}
	})
}

// TestEnumerations tests the category and group type checks.
func TestEnumerations(t *testing.T) {
	t.Parallel()

	for _, c := range append(BusinessCategories(), "") {
		if !IsBusinessCategory(c) {
			t.Errorf("expected %q to be a business category", c)
		}
	}
	if IsBusinessCategory("스포츠") {
		t.Error("unexpected business category accepted")
	}

	for _, g := range append(DonationGroupTypes(), "") {
		if !IsDonationGroupType(g) {
			t.Errorf("expected %q to be a donation group type", g)
		}
	}
	if IsDonationGroupType("공공기관") {
		t.Error("unexpected donation group type accepted")
	}
}
