package core

import "fmt"

// The engine's rejection taxonomy. All of these are synchronous and
// user-correctable; handlers map them to HTTP statuses and surface the
// reason string verbatim.

type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

type DuplicateError struct {
	Reason string
}

func (e *DuplicateError) Error() string {
	return e.Reason
}

// SiteDistance reports how far a reading was from one configured site.
type SiteDistance struct {
	Site     string  `json:"site"`
	Distance float64 `json:"distance"` // metres
}

// LocationError carries the distance to every configured site so support can
// see how far off the reading was, not just that it missed.
type LocationError struct {
	Distances []SiteDistance
}

func (e *LocationError) Error() string {
	msg := "location is not within any registered office"
	for _, d := range e.Distances {
		msg += fmt.Sprintf("; %s: %.0fm away", d.Site, d.Distance)
	}
	return msg
}

type NotFoundError struct {
	Reason string
}

func (e *NotFoundError) Error() string {
	return e.Reason
}

type AlreadyClosedError struct {
	Reason string
}

func (e *AlreadyClosedError) Error() string {
	return e.Reason
}
