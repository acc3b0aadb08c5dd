package domain

import "time"

// AccreditationStatus enumerates review states for accreditation requests.
type AccreditationStatus string

const (
	StatusPending  AccreditationStatus = "pending"
	StatusApproved AccreditationStatus = "approved"
	StatusRejected AccreditationStatus = "rejected"
)

// Valid reports whether the status belongs to the closed set.
func (s AccreditationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Area enumerates the groups an applicant can request access for.
type Area string

const (
	AreaProduction Area = "Production"
	AreaVolunteers Area = "Volunteers"
	AreaSponsors   Area = "Sponsors"
	AreaSuppliers  Area = "Suppliers"
	AreaFanFest    Area = "Fan Fest"
	AreaPress      Area = "Press"
)

// Areas returns the closed set of valid areas.
func Areas() []Area {
	return []Area{AreaProduction, AreaVolunteers, AreaSponsors, AreaSuppliers, AreaFanFest, AreaPress}
}

// Valid reports whether the area belongs to the closed set.
func (a Area) Valid() bool {
	for _, candidate := range Areas() {
		if a == candidate {
			return true
		}
	}
	return false
}

// Zone identifies a physical access zone assigned during review.
type Zone string

const (
	Zone1 Zone = "Zone 1"
	Zone2 Zone = "Zone 2"
	Zone3 Zone = "Zone 3"
	Zone4 Zone = "Zone 4"
	Zone5 Zone = "Zone 5"
	Zone6 Zone = "Zone 6"
	Zone7 Zone = "Zone 7"
	Zone8 Zone = "Zone 8"
	Zone9 Zone = "Zone 9"
)

// zoneLabels maps stored zone identifiers to the names shown to humans.
var zoneLabels = map[Zone]string{
	Zone1: "Zone 1 · Venue",
	Zone2: "Zone 2 · FOP",
	Zone3: "Zone 3 · LOC",
	Zone4: "Zone 4 · VIP",
	Zone5: "Zone 5 · Broadcast",
	Zone6: "Zone 6 · Officials",
	Zone7: "Zone 7 · Media",
	Zone8: "Zone 8 · Volunteers",
	Zone9: "All zones",
}

// Zones returns the closed set of valid zones.
func Zones() []Zone {
	return []Zone{Zone1, Zone2, Zone3, Zone4, Zone5, Zone6, Zone7, Zone8, Zone9}
}

// Valid reports whether the zone belongs to the closed set.
func (z Zone) Valid() bool {
	_, ok := zoneLabels[z]
	return ok
}

// Label returns the human-readable name for the zone.
func (z Zone) Label() string {
	if label, ok := zoneLabels[z]; ok {
		return label
	}
	return string(z)
}

// Applicant holds the identity fields captured once at intake.
// IDDocument is deliberately free-form: passport, national ID or any
// identifier string is accepted.
type Applicant struct {
	FirstName    string
	LastName     string
	IDDocument   string
	Email        string
	Organization *string
}

// AccreditationRecord is the aggregate for one applicant's access request.
// ID and CreatedAt are assigned by the store; Area and the applicant fields
// are written once at intake and never mutated afterward.
type AccreditationRecord struct {
	ID        int64
	Area      Area
	Applicant Applicant
	Status    AccreditationStatus
	Zone      *Zone
	CreatedAt time.Time
}

// ZoneAssigned reports whether a zone has been set. Approval requires it.
func (r *AccreditationRecord) ZoneAssigned() bool {
	return r.Zone != nil
}
