package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and can be matched with
// errors.Is() by callers that want to react to a specific problem.
var (
	// ErrEmptyEndpoint is returned when no listing endpoint is configured.
	ErrEmptyEndpoint = errors.New("empty endpoint: a listing endpoint URL is required")

	// ErrInvalidMaxPages is returned when the page limit is negative.
	// Use 0 to collect every page.
	ErrInvalidMaxPages = errors.New("invalid max pages: must be non-negative")

	// ErrInvalidDelay is returned when the delay between pages is negative.
	// Use 0 for no delay between requests.
	ErrInvalidDelay = errors.New("invalid page delay: must be non-negative")

	// ErrInvalidBusinessCategory is returned when the business category is
	// not one the portal accepts.
	ErrInvalidBusinessCategory = errors.New("invalid business category")

	// ErrInvalidDonationGroupType is returned when the donation group type is
	// not one the portal accepts.
	ErrInvalidDonationGroupType = errors.New("invalid donation group type")

	// ErrEmptyOutputDir is returned when no output directory is configured.
	ErrEmptyOutputDir = errors.New("empty output directory")
)
