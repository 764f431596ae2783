package acquire

import "errors"

var (
	// ErrNavigationTimeout reports that the search entry point did not load
	// within the bounded wait.
	ErrNavigationTimeout = errors.New("navigation timed out")

	// ErrElementNotFound reports that a required page control did not appear
	// within the bounded wait.
	ErrElementNotFound = errors.New("element not found")

	// ErrNoResults reports that the search produced no result links. This is
	// the expected outcome for a title with no indexed judgment.
	ErrNoResults = errors.New("no search results found")

	// ErrDownloadTimeout reports that no new PDF landed in the download
	// directory before the overall deadline.
	ErrDownloadTimeout = errors.New("timed out waiting for download")
)
