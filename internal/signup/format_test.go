// internal/signup/format_test.go
package signup

import (
	"strings"
	"testing"
)

func TestFormat_Subjects(t *testing.T) {
	tests := []struct {
		name string
		sub  *Submission
		want string
	}{
		{"attendee", &Submission{FormType: VariantAttendee}, SubjectDefault},
		{"vip wizard", &Submission{FormType: VariantVIP}, SubjectVIP},
		{"sponsor wizard", &Submission{FormType: VariantSponsor}, SubjectSponsor},
		{"attendee with vip interest", &Submission{FormType: VariantAttendee, Interest: InterestVIP}, SubjectVIP},
		{"attendee with sponsor interest", &Submission{FormType: VariantAttendee, Interest: InterestSponsor}, SubjectSponsor},
		{"attendee with explicit none", &Submission{FormType: VariantAttendee, Interest: InterestNone}, SubjectDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.sub).Subject; got != tt.want {
				t.Errorf("Subject = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat_SponsorBody(t *testing.T) {
	sub := &Submission{
		FormType:    VariantSponsor,
		Brand:       "Acme Treats",
		Package:     "gold",
		ContactName: "Jane Shiba",
		Email:       "jane@acmetreats.example",
		Phone:       "+1 555 0100",
	}

	body := Format(sub).Body
	for _, line := range []string{
		"Form Type: sponsor",
		"Sponsor Brand: Acme Treats",
		"Sponsor Package: gold",
		"Sponsor Contact: Jane Shiba",
		"Sponsor Email: jane@acmetreats.example",
		"Sponsor Phone: +1 555 0100",
	} {
		if !strings.Contains(body, line+"\n") {
			t.Errorf("body missing line %q:\n%s", line, body)
		}
	}
}

func TestFormat_EmptyFieldsSkipped(t *testing.T) {
	sub := &Submission{FormType: VariantAttendee, Name: "Kabosu"}
	body := Format(sub).Body

	if strings.Contains(body, "Sponsor") || strings.Contains(body, "VIP") {
		t.Errorf("body contains lines for unset fields:\n%s", body)
	}
	if strings.Contains(body, "Interest:") {
		t.Errorf("body contains interest line for no-interest submission:\n%s", body)
	}
	want := "Form Type: attendee\nName: Kabosu\n"
	if body != want {
		t.Errorf("body = %q, want %q", body, want)
	}
}

func TestFormat_ListsAndNestedBlocks(t *testing.T) {
	sub := &Submission{
		FormType:     VariantAttendee,
		Name:         "Kabosu",
		Socials:      Socials{Twitter: "@kabosumama", Discord: "kabosu#1234"},
		Profiles:     []string{"Dog Owner/Pet Lover", "Other", ""},
		ProfileOther: "Mascot",
		Interest:     InterestVIP,
		VIP:          &VIPDetails{Quantity: 3, Company: "Doge LLC", FoodAllergies: "peanuts"},
		ContentTypes: []string{"Podcasting", "Writing/Blogging"},
		Referral:     Referral{Creator1: "@creator1", Creator2: "@creator2"},
		Heard:        "community",
		Suggestions:  "more treats",
	}

	body := Format(sub).Body
	for _, line := range []string{
		"Twitter: @kabosumama",
		"Discord: kabosu#1234",
		"Profiles: Dog Owner/Pet Lover, Other",
		"Profile Other: Mascot",
		"Interest: vip",
		"VIP Quantity: 3",
		"VIP Company: Doge LLC",
		"Food Allergies: peanuts",
		"Content Types: Podcasting, Writing/Blogging",
		"Creator 1: @creator1",
		"Creator 2: @creator2",
		"Heard: community",
		"Suggestions: more treats",
	} {
		if !strings.Contains(body, line+"\n") {
			t.Errorf("body missing line %q:\n%s", line, body)
		}
	}
}

func TestFormat_Passport(t *testing.T) {
	sub := &Submission{
		FormType: VariantVIP,
		Name:     "Moon Dog",
		Quantity: 2,
		Passport: &Passport{
			FullName:   "Moon Dog",
			Number:     "X1234567",
			Country:    "JP",
			Expiration: "2030-01-02",
			DOB:        "1990-11-02",
		},
	}

	body := Format(sub).Body
	for _, line := range []string{
		"Passport Name: Moon Dog",
		"Passport Number: X1234567",
		"Passport Country: JP",
		"Passport Expiration: 2030-01-02",
		"Passport DOB: 1990-11-02",
	} {
		if !strings.Contains(body, line+"\n") {
			t.Errorf("body missing line %q:\n%s", line, body)
		}
	}
	if strings.Contains(body, "Passport Notes:") {
		t.Errorf("body contains empty notes line:\n%s", body)
	}
}

func TestFormat_IsPure(t *testing.T) {
	sub := &Submission{FormType: VariantSponsor, Brand: "Acme Treats", Package: "moon"}
	first := Format(sub)
	second := Format(sub)

	if first != second {
		t.Errorf("Format not deterministic:\n%v\n%v", first, second)
	}
}
