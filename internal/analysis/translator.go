package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"RegulatorRadar/internal/domain"
)

// Translation is the plain-English rendering of a regulation.
type Translation struct {
	Summary               string
	ActionItems           []domain.ActionItem
	Deadlines             []domain.ComplianceDeadline
	KeyRequirements       []string
	BusinessImpactSummary string
	Confidence            float64
}

// FallbackConfidence is reported by the fallback translation.
const FallbackConfidence = 0.3

// FallbackTranslation is used when translating an item fails.
func FallbackTranslation() Translation {
	return Translation{
		Summary: "This regulatory update requires review to determine its impact on your organization.",
		ActionItems: []domain.ActionItem{{
			Description:    "Review and assess the regulatory update for applicability",
			Priority:       domain.PriorityHigh,
			EstimatedHours: 4,
			Category:       domain.CategoryLegal,
		}},
		BusinessImpactSummary: "Impact could not be determined automatically.",
		Confidence:            FallbackConfidence,
	}
}

// Translator turns a classified item into a summary, requirements,
// deadlines and ranked action items. It holds no mutable state.
type Translator struct {
	opts Options
	now  func() time.Time
}

// NewTranslator builds a translator; a nil clock means time.Now.
func NewTranslator(opts Options, now func() time.Time) *Translator {
	if now == nil {
		now = time.Now
	}
	return &Translator{opts: opts.normalized(), now: now}
}

// Translate never panics. On an internal failure it returns the fallback
// translation together with a translation error describing the cause.
func (tr *Translator) Translate(item domain.FeedItem, t domain.RegulationType, areas domain.ImpactAreas) (out Translation, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = FallbackTranslation()
			err = domain.TranslationError(r)
		}
	}()

	now := tr.now().UTC()

	out.Summary = tr.summary(item, t)
	out.KeyRequirements = KeyRequirements(item)
	out.Deadlines = DetectDeadlines(item, now)
	out.BusinessImpactSummary = impactSummary(t, areas)
	if tr.opts.EnableActionItemGeneration {
		out.ActionItems = tr.actionItems(item, t, areas, now)
	}
	out.Confidence = Confidence(item, out.Summary, out.ActionItems)
	return out, nil
}

var typeContext = map[domain.RegulationType]string{
	domain.TypeEnforcement:  "The SEC has taken enforcement action against a market participant.",
	domain.TypeFinalRule:    "The SEC has adopted a final rule that creates binding obligations.",
	domain.TypeProposedRule: "The SEC has proposed a new rule that is open for public comment.",
}

var businessContext = map[domain.RegulationType]string{
	domain.TypeEnforcement:  "Firms with similar practices should review their own controls to avoid comparable violations.",
	domain.TypeFinalRule:    "Affected firms need to plan implementation work ahead of the compliance date.",
	domain.TypeProposedRule: "Firms should evaluate the potential impact and consider submitting comments before the rule is finalized.",
}

var subjects = []struct {
	keyword string
	subject string
}{
	{"cryptocurrency", "cryptocurrency"},
	{"crypto", "crypto assets"},
	{"digital asset", "digital assets"},
	{"stablecoin", "stablecoins"},
	{"blockchain", "blockchain technology"},
	{"fintech", "financial technology"},
	{"payment", "payments"},
	{"lending", "lending"},
	{"custody", "asset custody"},
	{"broker-dealer", "broker-dealers"},
	{"investment adviser", "investment advisers"},
	{"fund", "investment funds"},
	{"aml", "anti-money laundering (AML) compliance"},
	{"money laundering", "anti-money laundering compliance"},
	{"kyc", "know-your-customer (KYC) requirements"},
	{"cybersecurity", "cybersecurity"},
	{"disclosure", "disclosure requirements"},
	{"securities", "securities markets"},
	{"trading", "trading activity"},
	{"bank", "banking"},
}

var subjectKeywords = func() keywordSet {
	words := make([]string, len(subjects))
	for i, s := range subjects {
		words[i] = s.keyword
	}
	return newKeywordSet(words...)
}()

// MainSubject names what the title is about, defaulting to financial services.
func MainSubject(title string) string {
	found := subjectKeywords.matches(strings.ToLower(title))
	if len(found) == 0 {
		return "financial services"
	}
	for _, s := range subjects {
		if s.keyword == found[0] {
			return s.subject
		}
	}
	return "financial services"
}

func (tr *Translator) summary(item domain.FeedItem, t domain.RegulationType) string {
	if !tr.opts.EnablePlainEnglishSummary {
		return truncate(normalizeSpace(item.Description), tr.opts.MaxSummaryLength)
	}

	parts := []string{
		typeContext[t],
		fmt.Sprintf("This regulation deals with %s.", MainSubject(item.Title)),
	}
	if desc := PlainEnglish(item.Description); desc != "" {
		parts = append(parts, terminate(desc))
	}
	parts = append(parts, businessContext[t])

	return truncate(strings.Join(parts, " "), tr.opts.MaxSummaryLength)
}

func terminate(s string) string {
	if strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?") {
		return s
	}
	return s + "."
}

type actionTemplate struct {
	description string
	priority    domain.Priority
	hours       int
	category    domain.ActionCategory
}

var typeActions = map[domain.RegulationType][]actionTemplate{
	domain.TypeEnforcement: {
		{"Review internal controls for compliance gaps similar to the violations cited", domain.PriorityHigh, 16, domain.CategoryLegal},
		{"Brief senior management and the board on the enforcement risk", domain.PriorityHigh, 4, domain.CategoryOperational},
		{"Assess exposure to comparable violations across business lines", domain.PriorityMedium, 24, domain.CategoryLegal},
	},
	domain.TypeFinalRule: {
		{"Conduct a gap analysis against the final rule requirements", domain.PriorityHigh, 24, domain.CategoryLegal},
		{"Update policies and procedures to meet the new requirements", domain.PriorityHigh, 40, domain.CategoryOperational},
		{"Schedule staff training on the new requirements", domain.PriorityMedium, 16, domain.CategoryOperational},
	},
	domain.TypeProposedRule: {
		{"Review the proposed rule and prepare a comment letter", domain.PriorityMedium, 16, domain.CategoryLegal},
		{"Assess the potential impact of the proposal on current operations", domain.PriorityMedium, 12, domain.CategoryOperational},
		{"Monitor rulemaking progress and the comment deadline", domain.PriorityLow, 2, domain.CategoryOperational},
	},
}

var areaActions = map[domain.ImpactArea]actionTemplate{
	domain.AreaOperations: {"Update operational procedures and staff workflows", domain.PriorityMedium, 20, domain.CategoryOperational},
	domain.AreaReporting:  {"Review reporting and disclosure processes for required changes", domain.PriorityMedium, 16, domain.CategoryLegal},
	domain.AreaTechnology: {"Assess system and data changes needed for compliance", domain.PriorityHigh, 32, domain.CategoryTechnical},
}

var contentActions = []struct {
	keywords keywordSet
	action   actionTemplate
}{
	{newKeywordSet("aml", "anti-money laundering", "money laundering"),
		actionTemplate{"Review the AML program and transaction monitoring controls", domain.PriorityHigh, 24, domain.CategoryOperational}},
	{newKeywordSet("kyc", "know your customer", "know-your-customer", "customer identification"),
		actionTemplate{"Verify KYC and customer due diligence procedures", domain.PriorityHigh, 16, domain.CategoryOperational}},
	{newKeywordSet("disclosure"),
		actionTemplate{"Review public disclosures for accuracy and completeness", domain.PriorityMedium, 8, domain.CategoryLegal}},
}

// UrgencyMultiplier scales estimated hours by regulation type.
func UrgencyMultiplier(t domain.RegulationType) float64 {
	switch t {
	case domain.TypeEnforcement:
		return 0.8
	case domain.TypeFinalRule:
		return 1.0
	default:
		return 1.2
	}
}

func actionDeadlineDays(t domain.RegulationType) int {
	switch t {
	case domain.TypeEnforcement:
		return 14
	case domain.TypeFinalRule:
		return 30
	default:
		return 0
	}
}

func (tr *Translator) actionItems(item domain.FeedItem, t domain.RegulationType, areas domain.ImpactAreas, now time.Time) []domain.ActionItem {
	templates := append([]actionTemplate(nil), typeActions[t]...)
	for _, area := range areas {
		if a, ok := areaActions[area]; ok {
			templates = append(templates, a)
		}
	}
	content := strings.ToLower(item.Content())
	for _, ca := range contentActions {
		if ca.keywords.any(content) {
			templates = append(templates, ca.action)
		}
	}

	items := make([]domain.ActionItem, 0, len(templates))
	for _, tpl := range templates {
		ai := domain.ActionItem{
			Description:    tpl.description,
			Priority:       tpl.priority,
			EstimatedHours: tpl.hours,
			Category:       tpl.category,
		}
		if tr.opts.IncludeTimeEstimates {
			ai.EstimatedHours = scaleHours(tpl.hours, UrgencyMultiplier(t))
			if days := actionDeadlineDays(t); days > 0 && tpl.priority == domain.PriorityHigh {
				due := now.AddDate(0, 0, days)
				ai.Deadline = &due
			}
		}
		items = append(items, ai)
	}

	return RankActionItems(items, tr.opts.MaxActionItems)
}

func scaleHours(hours int, multiplier float64) int {
	scaled := int(math.Round(float64(hours) * multiplier))
	if scaled < 1 {
		return 1
	}
	return scaled
}

// RankActionItems orders items by descending priority, keeping insertion
// order among equals, and truncates the list to max.
func RankActionItems(items []domain.ActionItem, max int) []domain.ActionItem {
	ranked := append([]domain.ActionItem(nil), items...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Priority.Weight() > ranked[j].Priority.Weight()
	})
	if max >= 0 && len(ranked) > max {
		ranked = ranked[:max]
	}
	return ranked
}

func impactSummary(t domain.RegulationType, areas domain.ImpactAreas) string {
	labels := make([]string, len(areas))
	for i, a := range areas {
		labels[i] = string(a)
	}

	var urgency string
	switch t {
	case domain.TypeEnforcement:
		urgency = "Act promptly to confirm your firm is not exposed to similar findings."
	case domain.TypeFinalRule:
		urgency = "Changes are mandatory once the rule takes effect."
	default:
		urgency = "No changes are required yet, but early planning reduces later effort."
	}
	return fmt.Sprintf("Expected impact on %s. %s", joinList(labels), urgency)
}

func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

// Confidence estimates how much the translation can be trusted, in [0,1].
func Confidence(item domain.FeedItem, summary string, actions []domain.ActionItem) float64 {
	score := 0.5
	description := strings.TrimSpace(item.Description)

	if len(description) > 200 {
		score += 0.1
	}
	if n := len(summary); n > 100 && n < 400 {
		score += 0.1
	}
	if len(actions) >= 3 {
		score += 0.1
	}
	for _, a := range actions {
		if a.Priority == domain.PriorityHigh {
			score += 0.1
			break
		}
	}
	if strings.TrimSpace(item.Title) == "" {
		score -= 0.3
	}
	if len(description) < 50 {
		score -= 0.2
	}
	if strings.Contains(summary, "...") {
		score -= 0.1
	}

	return math.Max(0, math.Min(1, score))
}
