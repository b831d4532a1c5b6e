package gamification

// BadgeRule maps a badge name to its unlock predicate. Rules are
// independent and re-checked on every evaluation; a badge is never
// revoked once unlocked, even if karma later drops below its threshold.
type BadgeRule struct {
	Name      string
	Qualifies func(karma int64, streak int) bool
}

// BadgeRules is the canonical rule table, in award order.
var BadgeRules = []BadgeRule{
	// Streak badges
	{"Eco Newbie", func(_ int64, streak int) bool { return streak >= 1 }},
	{"Eco Enthusiast", func(_ int64, streak int) bool { return streak >= 3 }},
	{"Eco Warrior", func(_ int64, streak int) bool { return streak >= 7 }},
	{"Eco Champion", func(_ int64, streak int) bool { return streak >= 14 }},
	{"Eco Legend", func(_ int64, streak int) bool { return streak >= 30 }},
	// Karma badges
	{"Green Sprout", func(karma int64, _ int) bool { return karma >= 100 }},
	{"Tree Planter", func(karma int64, _ int) bool { return karma >= 250 }},
	{"Water Saver", func(karma int64, _ int) bool { return karma >= 500 }},
	{"Plastic Buster", func(karma int64, _ int) bool { return karma >= 1000 }},
	{"Earth Guardian", func(karma int64, _ int) bool { return karma >= 2000 }},
}

// QualifiedBadges returns the names of every badge whose predicate holds
// for the given state, in table order. The caller diffs the result
// against the user's already-unlocked set.
func QualifiedBadges(karma int64, streak int) []string {
	var names []string
	for _, rule := range BadgeRules {
		if rule.Qualifies(karma, streak) {
			names = append(names, rule.Name)
		}
	}
	return names
}
