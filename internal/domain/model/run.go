package model

import "time"

type Status string

const (
	StatusUpdated        Status = "Updated"
	StatusFailedToUpdate Status = "Failed to update"
	StatusNotFound       Status = "SKU not found"
	StatusLookupFailed   Status = "Lookup failed"
)

type Outcome struct {
	Sku      string
	NewPrice string
	Status   Status
}

type Run struct {
	ID        string
	StartedAt time.Time
	Outcomes  []Outcome
}

type Summary struct {
	Updated        int
	FailedToUpdate int
	NotFound       int
	LookupFailed   int
}

func (r Run) Summary() Summary {
	var s Summary
	for _, outcome := range r.Outcomes {
		switch outcome.Status {
		case StatusUpdated:
			s.Updated++
		case StatusFailedToUpdate:
			s.FailedToUpdate++
		case StatusNotFound:
			s.NotFound++
		case StatusLookupFailed:
			s.LookupFailed++
		}
	}
	return s
}
