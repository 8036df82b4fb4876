package domain

import "time"

type BloodGroup string

const (
	BloodGroupAPos  BloodGroup = "A+"
	BloodGroupANeg  BloodGroup = "A-"
	BloodGroupBPos  BloodGroup = "B+"
	BloodGroupBNeg  BloodGroup = "B-"
	BloodGroupABPos BloodGroup = "AB+"
	BloodGroupABNeg BloodGroup = "AB-"
	BloodGroupOPos  BloodGroup = "O+"
	BloodGroupONeg  BloodGroup = "O-"
)

// ValidBloodGroup reports whether g is one of the eight supported groups.
func ValidBloodGroup(g BloodGroup) bool {
	switch g {
	case BloodGroupAPos, BloodGroupANeg, BloodGroupBPos, BloodGroupBNeg,
		BloodGroupABPos, BloodGroupABNeg, BloodGroupOPos, BloodGroupONeg:
		return true
	}
	return false
}

// Donor is the donor-facing slice of the externally owned account record.
// The engine reads identity and blood group; LastDonationAt is the only
// field it writes, and only a completed donation writes it.
type Donor struct {
	ID             int32      `json:"id"`
	FullName       string     `json:"full_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Age            int32      `json:"age"`
	BloodGroup     BloodGroup `json:"blood_group"`
	City           string     `json:"city"`
	State          string     `json:"state"`
	IsActive       bool       `json:"is_active"`
	LastDonationAt *time.Time `json:"last_donation_at,omitempty"`
	CreatedOn      string     `json:"created_on"`
	UpdatedOn      string     `json:"updated_on"`
}
