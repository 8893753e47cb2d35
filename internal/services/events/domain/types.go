// Package domain defines the types and ports for the durable event store
package domain

import "time"

// EventCreate is the payload for a single durable event insert.
// The pipeline only ever creates events; it never updates or deletes them
type EventCreate struct {
	Title        string
	StartDate    time.Time
	EndDate      *time.Time
	Region       *string
	Locality     *string
	Venue        string
	Organizer    string
	AdmissionFee string
	HasSales     bool
	Description  string
	ExternalURL  *string
	SourceRegion string
	SourceURL    string
	CreatedBy    string // operator uuid
}
