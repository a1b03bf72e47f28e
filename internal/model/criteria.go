package model

import (
	"net/url"
	"strconv"
)

// Query parameter names understood by the listing endpoint.
const (
	ParamBusinessCategory  = "pbcbizTy"
	ParamDonationGroupType = "ctbmGrpTy"
	ParamCorporationName   = "cprNm"
	ParamPageIndex         = "pageIndex"
	// ParamCacheBust carries a value that changes on every request so that
	// intermediaries never serve a cached listing page.
	ParamCacheBust = "_"
)

// Business categories accepted by the listing endpoint.
// The empty string selects every category.
const (
	BusinessCategoryAll         = ""
	BusinessCategoryEducation   = "교육"
	BusinessCategoryScholarship = "학술•장학"
	BusinessCategoryWelfare     = "사회복지"
	BusinessCategoryMedical     = "의료"
	BusinessCategoryArtsCulture = "예술•문화"
	BusinessCategoryOther       = "기타"
)

// Donation group types accepted by the listing endpoint.
// The empty string selects every group type.
const (
	DonationGroupAll        = ""
	DonationGroupStatutory  = "법정기부금단체"
	DonationGroupDesignated = "지정기부금단체"
	DonationGroupOther      = "기타기부금단체"
)

// BusinessCategories lists the non-empty business category values in the
// order the portal presents them.
func BusinessCategories() []string {
	return []string{
		BusinessCategoryEducation,
		BusinessCategoryScholarship,
		BusinessCategoryWelfare,
		BusinessCategoryMedical,
		BusinessCategoryArtsCulture,
		BusinessCategoryOther,
	}
}

// DonationGroupTypes lists the non-empty donation group type values.
func DonationGroupTypes() []string {
	return []string{
		DonationGroupStatutory,
		DonationGroupDesignated,
		DonationGroupOther,
	}
}

// IsBusinessCategory reports whether v is empty or a known business category.
func IsBusinessCategory(v string) bool {
	if v == BusinessCategoryAll {
		return true
	}
	for _, c := range BusinessCategories() {
		if c == v {
			return true
		}
	}
	return false
}

// IsDonationGroupType reports whether v is empty or a known donation group type.
func IsDonationGroupType(v string) bool {
	if v == DonationGroupAll {
		return true
	}
	for _, g := range DonationGroupTypes() {
		if g == v {
			return true
		}
	}
	return false
}

// SearchCriteria describes one request to the listing endpoint.
// It is a value type: WithPage returns a modified copy and never mutates
// the receiver, so a criteria value can be shared across pages safely.
type SearchCriteria struct {
	// BusinessCategory filters by public-benefit business category.
	// Empty means all categories.
	BusinessCategory string `json:"businessCategory" yaml:"businessCategory,omitempty"`

	// DonationGroupType filters by donation group type.
	// Empty means all group types.
	DonationGroupType string `json:"donationGroupType" yaml:"donationGroupType,omitempty"`

	// CorporationName is a free-text filter on the corporation name.
	CorporationName string `json:"corporationName" yaml:"corporationName,omitempty"`

	// PageIndex is the 1-based page to request.
	PageIndex int `json:"pageIndex" yaml:"-"`
}

// DefaultSearchCriteria returns criteria for an unfiltered listing starting
// at the first page.
func DefaultSearchCriteria() SearchCriteria {
	return SearchCriteria{PageIndex: 1}
}

// WithPage returns a copy of the criteria targeting the given page.
func (c SearchCriteria) WithPage(page int) SearchCriteria {
	c.PageIndex = page
	return c
}

// Page returns the page index, treating values below 1 as the first page.
func (c SearchCriteria) Page() int {
	if c.PageIndex < 1 {
		return 1
	}
	return c.PageIndex
}

// QueryParams returns the criteria as endpoint query parameters, without
// the cache-bust token.
func (c SearchCriteria) QueryParams() map[string]string {
	return map[string]string{
		ParamBusinessCategory:  c.BusinessCategory,
		ParamDonationGroupType: c.DonationGroupType,
		ParamCorporationName:   c.CorporationName,
		ParamPageIndex:         strconv.Itoa(c.Page()),
	}
}

// Values returns the criteria as url.Values, without the cache-bust token.
func (c SearchCriteria) Values() url.Values {
	v := url.Values{}
	for k, val := range c.QueryParams() {
		v.Set(k, val)
	}
	return v
}

// IsUnfiltered reports whether no filter is applied.
func (c SearchCriteria) IsUnfiltered() bool {
	return c.BusinessCategory == "" && c.DonationGroupType == "" && c.CorporationName == ""
}
