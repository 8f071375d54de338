package ingredient

// DefaultSubstitutions lists what can replace a missing ingredient. Notes in
// parentheses are part of the hint shown to the user.
var DefaultSubstitutions = map[string][]string{
	"butter":    {"margarine", "oil"},
	"milk":      {"almond milk", "soy milk", "water (with milk powder)"},
	"egg":       {"flaxseed (1 tbsp ground + 3 tbsp water)", "chia seeds (same)"},
	"sugar":     {"honey", "maple syrup"},
	"paneer":    {"tofu"},
	"yogurt":    {"curd", "buttermilk"},
	"cream":     {"milk + butter"},
	"cheese":    {"vegan cheese", "tofu (crumbled)"},
	"rice":      {"quinoa (different flavor)"},
	"chicken":   {"tofu (veg alternative)", "paneer (vegetarian, different flavor)"},
	"soy sauce": {"tamari", "coconut aminos"},
	"flour":     {"almond flour (texture differs)"},
	"tomato":    {"tinned tomato", "tomato paste + water"},
}

type Substitutions map[string][]string

// NewSubstitutions starts from DefaultSubstitutions; extra replaces the
// alternatives of an ingredient it names.
func NewSubstitutions(extra map[string][]string) Substitutions {
	subs := make(Substitutions, len(DefaultSubstitutions)+len(extra))
	for k, v := range DefaultSubstitutions {
		subs[k] = v
	}
	for k, v := range extra {
		if k = clean(k); k != "" {
			subs[k] = v
		}
	}
	return subs
}

// For returns one entry per missing ingredient; unknown ones map to an
// empty list.
func (s Substitutions) For(missing []string) map[string][]string {
	out := make(map[string][]string, len(missing))
	for _, m := range missing {
		alts := s[m]
		if alts == nil {
			alts = []string{}
		}
		out[m] = alts
	}
	return out
}
