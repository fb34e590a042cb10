// internal/signup/validate.go
package signup

import (
	"regexp"
	"strings"
)

// emailRx matches the same loose shape the signup form checks client-side.
var emailRx = regexp.MustCompile(`.+@.+\..+`)

// Validate enforces the per-variant required-field rules. The endpoint is the
// single validation authority: it applies the full ruleset the form enforces
// in the browser, so a submission that bypasses the UI is held to the same
// bar. All missing or invalid fields are reported at once, not just the first.
func Validate(sub *Submission) error {
	var fields []string

	switch sub.FormType {
	case VariantAttendee:
		fields = validateAttendee(sub)
	case VariantVIP:
		fields = validateVIP(sub)
	case VariantSponsor:
		fields = validateSponsor(sub)
	default:
		return ErrInvalidVariant
	}

	if len(fields) > 0 {
		return &FieldsError{Variant: sub.FormType, Fields: fields}
	}
	return nil
}

func validateAttendee(sub *Submission) []string {
	var fields []string

	if len(strings.TrimSpace(sub.Name)) < 2 {
		fields = append(fields, "name")
	}
	if strings.TrimSpace(sub.Social) == "" && sub.Socials.Empty() {
		fields = append(fields, "social")
	}
	if len(nonEmpty(sub.Profiles)) == 0 {
		fields = append(fields, "profiles")
	}
	if contains(sub.Profiles, profileOther) && strings.TrimSpace(sub.ProfileOther) == "" {
		fields = append(fields, "profileOther")
	}
	if !contains(HeardOptions, sub.Heard) {
		fields = append(fields, "heard")
	}
	if sub.Heard == "other" && strings.TrimSpace(sub.HeardOther) == "" {
		fields = append(fields, "heardOther")
	}

	return fields
}

func validateVIP(sub *Submission) []string {
	var fields []string

	if len(strings.TrimSpace(sub.Name)) < 2 {
		fields = append(fields, "name")
	}
	if q := sub.VIPQuantity(); q < 1 || q > 10 {
		fields = append(fields, "quantity")
	}

	// Passport is deferred to a follow-up when absent, but a partial record
	// is rejected: once the block is present, the booking fields must all be
	// filled (notes stay optional).
	if p := sub.Passport; p != nil {
		if strings.TrimSpace(p.FullName) == "" {
			fields = append(fields, "passport.fullName")
		}
		if strings.TrimSpace(p.Number) == "" {
			fields = append(fields, "passport.number")
		}
		if strings.TrimSpace(p.Country) == "" {
			fields = append(fields, "passport.country")
		}
		if strings.TrimSpace(p.Expiration) == "" {
			fields = append(fields, "passport.expiration")
		}
		if strings.TrimSpace(p.DOB) == "" {
			fields = append(fields, "passport.dob")
		}
	}

	return fields
}

func validateSponsor(sub *Submission) []string {
	var fields []string

	if len(strings.TrimSpace(sub.SponsorBrand())) < 2 {
		fields = append(fields, "brand")
	}
	if !contains(SponsorPackages, sub.SponsorPackage()) {
		fields = append(fields, "package")
	}
	if strings.TrimSpace(sub.ContactName) == "" {
		fields = append(fields, "contactName")
	}
	if !emailRx.MatchString(sub.Email) {
		fields = append(fields, "email")
	}

	return fields
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func nonEmpty(list []string) []string {
	out := list[:0:0]
	for _, v := range list {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
