package gamification

import (
	"testing"
)

func TestQualifiedBadges_NewUser(t *testing.T) {
	// Signup bonus karma, one login day.
	got := QualifiedBadges(50, 1)

	if len(got) != 1 || got[0] != "Eco Newbie" {
		t.Errorf("expected only Eco Newbie for new user, got %v", got)
	}
}

func TestQualifiedBadges_Thresholds(t *testing.T) {
	tests := []struct {
		name   string
		karma  int64
		streak int
		want   []string
	}{
		{"zero state", 0, 0, nil},
		{"streak 3", 0, 3, []string{"Eco Newbie", "Eco Enthusiast"}},
		{"streak 7", 0, 7, []string{"Eco Newbie", "Eco Enthusiast", "Eco Warrior"}},
		{"karma 99 short of sprout", 99, 0, nil},
		{"karma 100", 100, 0, []string{"Green Sprout"}},
		{"karma 105 streak 1", 105, 1, []string{"Eco Newbie", "Green Sprout"}},
		{"karma 2000 streak 30", 2000, 30, []string{
			"Eco Newbie", "Eco Enthusiast", "Eco Warrior", "Eco Champion", "Eco Legend",
			"Green Sprout", "Tree Planter", "Water Saver", "Plastic Buster", "Earth Guardian",
		}},
	}

	for _, tt := range tests {
		got := QualifiedBadges(tt.karma, tt.streak)
		if len(got) != len(tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: badge %d = %q, want %q", tt.name, i, got[i], tt.want[i])
			}
		}
	}
}

func TestQualifiedBadges_TableOrder(t *testing.T) {
	got := QualifiedBadges(5000, 100)

	if len(got) != len(BadgeRules) {
		t.Fatalf("expected all %d badges, got %d", len(BadgeRules), len(got))
	}
	for i, rule := range BadgeRules {
		if got[i] != rule.Name {
			t.Errorf("badge %d = %q, want table order %q", i, got[i], rule.Name)
		}
	}
}

func TestQualifiedBadges_MonotonicInKarma(t *testing.T) {
	// More karma never qualifies for fewer badges.
	prev := 0
	for karma := int64(0); karma <= 2100; karma += 100 {
		n := len(QualifiedBadges(karma, 0))
		if n < prev {
			t.Fatalf("badge count decreased from %d to %d at karma %d", prev, n, karma)
		}
		prev = n
	}
}
