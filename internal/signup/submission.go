// internal/signup/submission.go

// Package signup models Doge Day signup submissions and implements the
// request decoding, validation, and notification formatting pipeline for the
// /api/signup endpoint.
package signup

import "strings"

// Submission variants. Exactly one is active per submission, declared by the
// formType tag.
const (
	VariantAttendee = "attendee"
	VariantVIP      = "vip"
	VariantSponsor  = "sponsor"
)

// Interest signals. An attendee submission can declare VIP or sponsor
// interest without changing its required-field set; the signal only affects
// subject selection and mail routing.
const (
	InterestNone    = "none"
	InterestVIP     = "vip"
	InterestSponsor = "sponsor"
)

// SponsorPackages lists the accepted sponsorship tiers.
var SponsorPackages = []string{"bronze", "silver", "platinum", "gold", "moon"}

// HeardOptions lists the accepted "how did you hear" answers.
var HeardOptions = []string{"x", "friend", "newsletter", "community", "other"}

// ProfileOptions lists the attendee profile choices shown on the site.
var ProfileOptions = []string{
	"Dog Owner/Pet Lover",
	"Web3 Project Builder/Investor",
	"Local Attendee (e.g., from the event city/area)",
	"Media Person/Journalist",
	"Content Creator (e.g., Streamer, Photographer, Meme Artist)",
	"Other",
}

// ContentTypeOptions lists the content-creation choices shown on the site.
var ContentTypeOptions = []string{
	"Streaming (Twitch/YouTube Live)",
	"Photography/Videography",
	"Memes/Graphic Design",
	"Writing/Blogging",
	"Podcasting",
	"None, but I'm here to vibe Doge day",
}

// profileOther is the profile choice that requires free-text elaboration.
const profileOther = "Other"

// Socials holds per-platform handles for an attendee.
type Socials struct {
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	Discord   string `json:"discord"`
}

// Empty reports whether no handle is set.
func (s Socials) Empty() bool {
	return strings.TrimSpace(s.Twitter) == "" &&
		strings.TrimSpace(s.Instagram) == "" &&
		strings.TrimSpace(s.Discord) == ""
}

// VIPDetails carries VIP interest details nested under an attendee submission.
type VIPDetails struct {
	Quantity      int    `json:"quantity"`
	Company       string `json:"company"`
	FoodAllergies string `json:"foodAllergies"`
}

// Passport carries the hotel-booking passport record a VIP may provide.
// The wizard requires it; the interest path defers it to a follow-up.
type Passport struct {
	FullName   string `json:"fullName"`
	Number     string `json:"number"`
	Country    string `json:"country"`
	Expiration string `json:"expiration"`
	DOB        string `json:"dob"`
	Notes      string `json:"notes"`
}

// SponsorDetails carries sponsor interest details nested under an attendee
// submission.
type SponsorDetails struct {
	Brand   string `json:"brand"`
	Package string `json:"package"`
}

// Referral names the two content creators an attendee invited.
type Referral struct {
	Creator1 string `json:"creator1"`
	Creator2 string `json:"creator2"`
}

// Submission is the normalized form of a signup request. The three variants
// share one wire shape: the attendee form nests VIP/sponsor interest details
// under vip/sponsor, while the VIP and sponsor wizards post their fields at
// the top level. Both normalize into this struct.
type Submission struct {
	FormType string `json:"formType"`

	// attendee
	Name         string          `json:"name"`
	Social       string          `json:"social"`
	Socials      Socials         `json:"socials"`
	Profiles     []string        `json:"profiles"`
	ProfileOther string          `json:"profileOther"`
	Interest     string          `json:"interest"`
	VIP          *VIPDetails     `json:"vip,omitempty"`
	Sponsor      *SponsorDetails `json:"sponsor,omitempty"`
	ContentTypes []string        `json:"contentTypes"`
	Referral     Referral        `json:"referral"`
	Heard        string          `json:"heard"`
	HeardOther   string          `json:"heardOther"`
	Suggestions  string          `json:"suggestions"`

	// vip (wizard shape, top level)
	Quantity      int       `json:"quantity"`
	Company       string    `json:"company"`
	FoodAllergies string    `json:"foodAllergies"`
	Passport      *Passport `json:"passport,omitempty"`

	// sponsor (wizard shape, top level)
	Brand       string `json:"brand"`
	Package     string `json:"package"`
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Notes       string `json:"notes"`
}

// Attachment is an optional binary image carried alongside an attendee
// multipart submission.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// EffectiveVariant returns the variant that drives subject selection and mail
// routing: the interest signal when it declares VIP or sponsor, otherwise the
// formType tag.
func (s *Submission) EffectiveVariant() string {
	switch s.Interest {
	case InterestVIP:
		return VariantVIP
	case InterestSponsor:
		return VariantSponsor
	}
	return s.FormType
}

// VIPQuantity merges the top-level (wizard) and nested (interest) quantity.
func (s *Submission) VIPQuantity() int {
	if s.Quantity > 0 {
		return s.Quantity
	}
	if s.VIP != nil {
		return s.VIP.Quantity
	}
	return 0
}

// VIPCompany merges the top-level and nested company field.
func (s *Submission) VIPCompany() string {
	if s.Company != "" {
		return s.Company
	}
	if s.VIP != nil {
		return s.VIP.Company
	}
	return ""
}

// VIPAllergies merges the top-level and nested food-allergy notes.
func (s *Submission) VIPAllergies() string {
	if s.FoodAllergies != "" {
		return s.FoodAllergies
	}
	if s.VIP != nil {
		return s.VIP.FoodAllergies
	}
	return ""
}

// SponsorBrand merges the top-level and nested brand field.
func (s *Submission) SponsorBrand() string {
	if s.Brand != "" {
		return s.Brand
	}
	if s.Sponsor != nil {
		return s.Sponsor.Brand
	}
	return ""
}

// SponsorPackage merges the top-level and nested package field.
func (s *Submission) SponsorPackage() string {
	if s.Package != "" {
		return s.Package
	}
	if s.Sponsor != nil {
		return s.Sponsor.Package
	}
	return ""
}
