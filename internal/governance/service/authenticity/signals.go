package authenticity

import (
	"math"
	"strings"

	"verity/internal/governance/models"
	"verity/pkg/email"
	vstrings "verity/pkg/platform/strings"
)

// Sub-signal weights. They sum to 1 so the composite stays within [0,100].
const (
	weightIdentity   = 0.30
	weightBehavior   = 0.25
	weightLanguage   = 0.25
	weightReputation = 0.20
)

// velocitySaturation is the prior-response count at which velocity risk reaches 1.
const velocitySaturation = 10.0

// neutralReputationRisk is used for brands that have no reputation row yet. It is
// the midpoint of the scaled reputation range.
const neutralReputationRisk = 0.5

// Language flag names recorded in the rule breakdown.
const (
	FlagLegalThreat        = "legal_threat"
	FlagOffPlatformContact = "off_platform_contact"
	FlagBlameShifting      = "blame_shifting"
)

type languageRule struct {
	flag     string
	keywords []string
}

var languageRules = []languageRule{
	{
		flag: FlagLegalThreat,
		keywords: []string{
			"lawyer", "lawyers", "attorney", "attorneys", "lawsuit", "sue", "legal action",
			"legal team", "court", "defamation", "libel", "slander", "cease and desist",
		},
	},
	{
		flag: FlagOffPlatformContact,
		keywords: []string{
			"call us", "call me", "email us", "email me", "text us", "dm us", "direct message",
			"whatsapp", "telegram", "contact us at", "reach us at", "our number", "phone number",
			"outside this platform", "off this platform",
		},
	},
	{
		flag: FlagBlameShifting,
		keywords: []string{
			"your fault", "not our fault", "not our responsibility", "not responsible",
			"you should have", "you failed to", "you did not follow", "customer error",
			"user error", "misuse", "you misunderstood",
		},
	},
}

var languageFlagCount = float64(len(languageRules))

// Signals are the four 0 (no risk) to 1 (high risk) sub-scores of a response.
type Signals struct {
	Identity   float64
	Behavior   float64
	Language   float64
	Reputation float64
}

// Composite weights the signals, scales to 0-100 and rounds to 2 decimals.
func (s Signals) Composite() float64 {
	raw := weightIdentity*s.Identity +
		weightBehavior*s.Behavior +
		weightLanguage*s.Language +
		weightReputation*s.Reputation
	return round2(raw * 100)
}

// Inputs gathers everything needed to score a response without I/O.
type Inputs struct {
	SenderEmail     string
	VerifiedDomains []string
	Text            string
	History         []models.PriorResponse
	// BrandReputation is nil when the brand has no reputation row.
	BrandReputation *float64
}

// Score computes the signals for in and the breakdown explaining them.
func Score(in Inputs) (Signals, models.RuleBreakdown) {
	domain, _ := email.Domain(in.SenderEmail)
	verified := email.DomainIn(in.SenderEmail, in.VerifiedDomains)

	velocity := Velocity(len(in.History))
	similarity := MaxSimilarity(in.Text, in.History)
	flags := LanguageFlags(in.Text)

	signals := Signals{
		Identity:   IdentityRisk(verified),
		Behavior:   (velocity + similarity) / 2,
		Language:   float64(len(flags)) / languageFlagCount,
		Reputation: ReputationRisk(in.BrandReputation),
	}

	breakdown := models.RuleBreakdown{
		SenderDomain:       domain,
		DomainVerified:     verified,
		HistoryCount:       len(in.History),
		Velocity:           velocity,
		MaxSimilarity:      round4(similarity),
		LanguageFlags:      flags,
		BrandReputation:    in.BrandReputation,
		WeightedIdentity:   round2(weightIdentity * signals.Identity * 100),
		WeightedBehavior:   round2(weightBehavior * signals.Behavior * 100),
		WeightedLanguage:   round2(weightLanguage * signals.Language * 100),
		WeightedReputation: round2(weightReputation * signals.Reputation * 100),
	}
	return signals, breakdown
}

// IdentityRisk is 0 for a sender on a verified domain and 1 otherwise.
func IdentityRisk(verified bool) float64 {
	if verified {
		return 0
	}
	return 1
}

// Velocity is min(historyCount/10, 1).
func Velocity(historyCount int) float64 {
	if historyCount <= 0 {
		return 0
	}
	return math.Min(float64(historyCount)/velocitySaturation, 1)
}

// MaxSimilarity returns the highest word-set Jaccard similarity between text and any
// prior response.
func MaxSimilarity(text string, history []models.PriorResponse) float64 {
	current := vstrings.WordSet(text)
	if len(current) == 0 {
		return 0
	}
	highest := 0.0
	for _, prior := range history {
		if sim := vstrings.Jaccard(current, vstrings.WordSet(prior.Text)); sim > highest {
			highest = sim
			if highest == 1 {
				break
			}
		}
	}
	return highest
}

// LanguageFlags returns the names of the language rules text triggers, in rule order.
func LanguageFlags(text string) []string {
	normalized := normalizeWords(text)
	flags := make([]string, 0, len(languageRules))
	for _, rule := range languageRules {
		for _, kw := range rule.keywords {
			if strings.Contains(normalized, " "+kw+" ") {
				flags = append(flags, rule.flag)
				break
			}
		}
	}
	return flags
}

// ReputationRisk is 1 - reputation, with the reputation scaled onto [0,1] by
// models.MaxReputationScore. Unknown reputation sits at the midpoint.
func ReputationRisk(reputation *float64) float64 {
	if reputation == nil {
		return neutralReputationRisk
	}
	return clampUnit(1 - *reputation/models.MaxReputationScore)
}

// normalizeWords lowercases text and rejoins its words with single spaces, padded so
// that keyword phrases only match on word boundaries.
func normalizeWords(text string) string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r == '\'' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r > 127)
	})
	return " " + strings.Join(words, " ") + " "
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
