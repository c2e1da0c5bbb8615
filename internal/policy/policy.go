// Package policy holds the band-keyed leave and travel entitlement tables.
package policy

import (
	"strconv"

	"github.com/spec-kit/employee-assistant/internal/domain"
)

// Allowance is a number of days, or one of the Unlimited/NotApplicable markers.
type Allowance int

const (
	Unlimited     Allowance = -1
	NotApplicable Allowance = -2
)

func (a Allowance) String() string {
	switch a {
	case Unlimited:
		return "Unlimited"
	case NotApplicable:
		return "NA"
	default:
		return strconv.Itoa(int(a))
	}
}

// Days renders the allowance as a day count, or the marker text.
func (a Allowance) Days() string {
	if a < 0 {
		return a.String()
	}
	return a.String() + " days"
}

// LeaveEntitlement describes the yearly leave allowance of a band.
type LeaveEntitlement struct {
	Total            Allowance
	Earned           Allowance
	Sick             Allowance
	Casual           Allowance
	OfficeAttendance string
}

// TravelEntitlement describes travel benefits of a band. Amounts are INR
// except PerDiemInternational, which is USD.
type TravelEntitlement struct {
	FlightClass          string
	HotelCapPerNight     int64
	PerDiemDomestic      int64
	PerDiemInternational int64
}

var leaveTable = map[domain.Band]LeaveEntitlement{
	domain.BandL1: {Total: 12, Earned: 6, Sick: 4, Casual: 2, OfficeAttendance: "4/week"},
	domain.BandL2: {Total: 15, Earned: 8, Sick: 5, Casual: 2, OfficeAttendance: "3-4/week"},
	domain.BandL3: {Total: 18, Earned: 10, Sick: 6, Casual: 2, OfficeAttendance: "3/week"},
	domain.BandL4: {Total: 20, Earned: 12, Sick: 6, Casual: 2, OfficeAttendance: "2-3/week"},
	domain.BandL5: {Total: Unlimited, Earned: NotApplicable, Sick: NotApplicable, Casual: NotApplicable, OfficeAttendance: "0-2/week"},
}

var travelTable = map[domain.Band]TravelEntitlement{
	domain.BandL1: {FlightClass: "Economy (VP approval)", HotelCapPerNight: 2000, PerDiemDomestic: 1500, PerDiemInternational: 30},
	domain.BandL2: {FlightClass: "Economy (>6hrs)", HotelCapPerNight: 3000, PerDiemDomestic: 2000, PerDiemInternational: 40},
	domain.BandL3: {FlightClass: "Economy standard", HotelCapPerNight: 4000, PerDiemDomestic: 3000, PerDiemInternational: 60},
	domain.BandL4: {FlightClass: "Premium Economy", HotelCapPerNight: 6000, PerDiemDomestic: 4500, PerDiemInternational: 80},
	domain.BandL5: {FlightClass: "Business class", HotelCapPerNight: 10000, PerDiemDomestic: 7500, PerDiemInternational: 120},
}

// LeaveFor returns the leave entitlement of band. ok is false for bands
// outside the table.
func LeaveFor(band domain.Band) (LeaveEntitlement, bool) {
	ent, ok := leaveTable[band]
	return ent, ok
}

// TravelFor returns the travel entitlement of band. ok is false for bands
// outside the table.
func TravelFor(band domain.Band) (TravelEntitlement, bool) {
	ent, ok := travelTable[band]
	return ent, ok
}
