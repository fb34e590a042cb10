// internal/signup/format.go
package signup

import (
	"fmt"
	"strings"
)

// Notification subjects, selected by effective variant.
const (
	SubjectDefault = "Doge Day 2025 Signup"
	SubjectVIP     = "Doge Day 2025 VIP Request"
	SubjectSponsor = "Doge Day 2025 Sponsor Interest"
)

// Message is a formatted notification ready for dispatch.
type Message struct {
	Subject string
	Body    string
}

// Format renders a validated submission as a plain-text notification. It is a
// pure transformation: one "Label: value" line per populated field in a fixed
// order, empty fields skipped, list fields comma-joined. Nested structures
// are flattened only through the explicit accessors (socials, VIP details,
// passport, sponsor details, referral).
func Format(sub *Submission) Message {
	var b strings.Builder

	line := func(label, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "%s: %s\n", label, value)
	}
	list := func(label string, values []string) {
		line(label, strings.Join(nonEmpty(values), ", "))
	}

	line("Form Type", sub.FormType)
	line("Name", sub.Name)
	line("Social", sub.Social)
	line("Twitter", sub.Socials.Twitter)
	line("Instagram", sub.Socials.Instagram)
	line("Discord", sub.Socials.Discord)
	list("Profiles", sub.Profiles)
	line("Profile Other", sub.ProfileOther)
	if sub.Interest != "" && sub.Interest != InterestNone {
		line("Interest", sub.Interest)
	}
	if q := sub.VIPQuantity(); q > 0 {
		line("VIP Quantity", fmt.Sprintf("%d", q))
	}
	line("VIP Company", sub.VIPCompany())
	line("Food Allergies", sub.VIPAllergies())
	if p := sub.Passport; p != nil {
		line("Passport Name", p.FullName)
		line("Passport Number", p.Number)
		line("Passport Country", p.Country)
		line("Passport Expiration", p.Expiration)
		line("Passport DOB", p.DOB)
		line("Passport Notes", p.Notes)
	}
	line("Sponsor Brand", sub.SponsorBrand())
	line("Sponsor Package", sub.SponsorPackage())
	line("Sponsor Contact", sub.ContactName)
	line("Sponsor Email", sub.Email)
	line("Sponsor Phone", sub.Phone)
	line("Sponsor Notes", sub.Notes)
	list("Content Types", sub.ContentTypes)
	line("Creator 1", sub.Referral.Creator1)
	line("Creator 2", sub.Referral.Creator2)
	line("Heard", sub.Heard)
	line("Heard Other", sub.HeardOther)
	line("Suggestions", sub.Suggestions)

	return Message{
		Subject: subjectFor(sub),
		Body:    b.String(),
	}
}

func subjectFor(sub *Submission) string {
	switch sub.EffectiveVariant() {
	case VariantVIP:
		return SubjectVIP
	case VariantSponsor:
		return SubjectSponsor
	default:
		return SubjectDefault
	}
}
