package player

import (
	"testing"
	"time"
)

func dob(year, month, day int) *time.Time {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestIsU21Eligible(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		dob  *time.Time
		want bool
	}{
		{"turns 22 exactly today", dob(2002, 6, 1), false},
		{"turns 22 tomorrow", dob(2002, 6, 2), true},
		{"turned 22 yesterday", dob(2002, 5, 31), false},
		{"turns 21 today", dob(2003, 6, 1), true},
		{"well under the cutoff", dob(2007, 1, 15), true},
		{"well over the cutoff", dob(1995, 3, 10), false},
		{"unknown date of birth", nil, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := Player{ExternalID: 1, Name: "Prospect", DateOfBirth: tc.dob}
			if got := p.IsU21Eligible(now); got != tc.want {
				t.Fatalf("IsU21Eligible = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAgeAt_UnknownBirthDate(t *testing.T) {
	t.Parallel()

	p := Player{ExternalID: 1, Name: "Prospect"}
	if _, ok := p.AgeAt(time.Now()); ok {
		t.Fatal("AgeAt must report false without a date of birth")
	}
}
