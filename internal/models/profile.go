package models

import "fmt"

// RecruitmentType distinguishes the two hiring cost structures a
// prospect can describe. Every profile is exactly one of the two.
type RecruitmentType string

const (
	RecruitmentAgency   RecruitmentType = "agency"
	RecruitmentInternal RecruitmentType = "internal"
)

// InternalTeam describes the in-house recruiting staff for profiles
// with RecruitmentInternal.
type InternalTeam struct {
	Recruiters        int     `json:"recruiters"`
	RecruiterSalary   float64 `json:"recruiterSalary"`
	Coordinators      int     `json:"coordinators"`
	CoordinatorSalary float64 `json:"coordinatorSalary"`
}

// Size returns the total team headcount.
func (t InternalTeam) Size() int {
	return t.Recruiters + t.Coordinators
}

// AnnualCost returns the fully loaded annual salary cost of the team.
func (t InternalTeam) AnnualCost() float64 {
	return float64(t.Recruiters)*t.RecruiterSalary + float64(t.Coordinators)*t.CoordinatorSalary
}

// RecruitmentProfile is the complete set of answers a prospect gives
// about their current hiring process. Fields that belong to the
// inactive recruitment type are ignored by downstream calculations.
type RecruitmentProfile struct {
	RecruitmentType RecruitmentType `json:"recruitmentType"`

	HiresPerYear  int     `json:"hiresPerYear"`
	TimeToHire    float64 `json:"timeToHire"`    // days
	HRTimePerHire float64 `json:"hrTimePerHire"` // hours

	// Agency fields.
	HRHourlyRate      float64 `json:"hrHourlyRate,omitempty"`
	AgencyFeesPerHire float64 `json:"agencyFeesPerHire,omitempty"`

	// Internal fields.
	TotalCostPerHire float64      `json:"totalCostPerHire,omitempty"`
	InternalTeam     InternalTeam `json:"internalTeam,omitempty"`

	RevenueLostPerDay float64 `json:"revenueLostPerDay"`
	YearsToProject    int     `json:"yearsToProject"`
}

// ProfileBuilder assembles a RecruitmentProfile step by step. Each
// With method returns a copy, so partially built values can be shared
// safely across goroutines.
type ProfileBuilder struct {
	profile RecruitmentProfile
}

// NewProfileBuilder starts a builder for the given recruitment type.
func NewProfileBuilder(rt RecruitmentType) ProfileBuilder {
	return ProfileBuilder{profile: RecruitmentProfile{RecruitmentType: rt}}
}

func (b ProfileBuilder) WithHiring(hiresPerYear int, timeToHireDays float64) ProfileBuilder {
	b.profile.HiresPerYear = hiresPerYear
	b.profile.TimeToHire = timeToHireDays
	return b
}

func (b ProfileBuilder) WithHRTime(hoursPerHire, hourlyRate float64) ProfileBuilder {
	b.profile.HRTimePerHire = hoursPerHire
	b.profile.HRHourlyRate = hourlyRate
	return b
}

func (b ProfileBuilder) WithAgencyFees(feesPerHire float64) ProfileBuilder {
	b.profile.AgencyFeesPerHire = feesPerHire
	return b
}

func (b ProfileBuilder) WithInternalTeam(team InternalTeam, totalCostPerHire float64) ProfileBuilder {
	b.profile.InternalTeam = team
	b.profile.TotalCostPerHire = totalCostPerHire
	return b
}

func (b ProfileBuilder) WithRevenueImpact(lostPerDay float64) ProfileBuilder {
	b.profile.RevenueLostPerDay = lostPerDay
	return b
}

func (b ProfileBuilder) WithProjection(years int) ProfileBuilder {
	b.profile.YearsToProject = years
	return b
}

// Build validates the accumulated fields and returns the finished
// profile. The zero checks here mirror what the intake workflow
// enforces, so a built profile is always safe to feed into the
// calculation engine.
func (b ProfileBuilder) Build() (RecruitmentProfile, error) {
	p := b.profile
	switch p.RecruitmentType {
	case RecruitmentAgency, RecruitmentInternal:
	default:
		return RecruitmentProfile{}, fmt.Errorf("unknown recruitment type %q", p.RecruitmentType)
	}
	if p.HiresPerYear < 1 {
		return RecruitmentProfile{}, fmt.Errorf("hiresPerYear must be at least 1, got %d", p.HiresPerYear)
	}
	if p.TimeToHire < 0 {
		return RecruitmentProfile{}, fmt.Errorf("timeToHire must not be negative, got %v", p.TimeToHire)
	}
	if p.YearsToProject < 1 || p.YearsToProject > 5 {
		return RecruitmentProfile{}, fmt.Errorf("yearsToProject must be between 1 and 5, got %d", p.YearsToProject)
	}
	if p.RecruitmentType == RecruitmentInternal && p.InternalTeam.Size() < 1 {
		return RecruitmentProfile{}, fmt.Errorf("internal profiles need at least one team member")
	}
	return p, nil
}
