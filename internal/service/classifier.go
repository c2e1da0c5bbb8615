package service

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-assistant/internal/domain"
)

// EmployeeLister exposes the cached employee list.
type EmployeeLister interface {
	ListAll(ctx context.Context) ([]domain.Employee, error)
}

type intentRule struct {
	intent   domain.Intent
	keywords []string
}

// intentRules is evaluated in order; the order is the priority ranking,
// except that employee_lookup is a catch-all and only wins when nothing else matches.
var intentRules = []intentRule{
	{domain.IntentEmployeeLookup, []string{"who is", "find", "employee", "person", "staff", "member", "show me", "tell me about"}},
	{domain.IntentSalaryInquiry, []string{"salary", "ctc", "compensation", "pay", "bonus", "earnings", "income"}},
	{domain.IntentLeavePolicy, []string{"leave", "vacation", "sick", "holiday", "time off", "pto"}},
	{domain.IntentTravelPolicy, []string{"travel", "trip", "flight", "hotel", "per diem", "business travel"}},
	{domain.IntentTeamInquiry, []string{"team", "department", "who works in", "members", "works in"}},
	{domain.IntentLocationInquiry, []string{"location", "where", "based", "office", "city"}},
	{domain.IntentBandInquiry, []string{"band", "level", "grade", "position level"}},
	{domain.IntentGeneralInfo, []string{"info", "details", "about", "profile", "background"}},
	{domain.IntentListAll, []string{"list all", "show all", "all employees", "everyone", "complete list"}},
	{domain.IntentStatistics, []string{"how many", "count", "total", "statistics", "stats"}},
}

// capitalizedRun matches two or more consecutive capitalized words.
var capitalizedRun = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+\b`)

// Classifier detects query intents by keyword membership and pulls employee
// names out of the query text.
type Classifier struct {
	employees EmployeeLister
	logger    *zap.Logger
}

// NewClassifier builds a classifier. employees may be nil, in which case
// only capitalized word runs are reported as names.
func NewClassifier(employees EmployeeLister, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{employees: employees, logger: logger}
}

// Classify never fails. A directory error only disables directory matching.
func (c *Classifier) Classify(ctx context.Context, text string) domain.QueryAnalysis {
	lower := strings.ToLower(text)

	analysis := domain.QueryAnalysis{
		PrimaryIntent:  domain.IntentEmployeeLookup,
		AllIntents:     []domain.Intent{},
		ExtractedNames: c.extractNames(ctx, text, lower),
	}

	primaryFound := false
	for _, rule := range intentRules {
		if !containsAny(lower, rule.keywords) {
			continue
		}
		analysis.AllIntents = append(analysis.AllIntents, rule.intent)
		// Employee lookup is the generic fallback; any specific intent outranks it.
		if !primaryFound && rule.intent != domain.IntentEmployeeLookup {
			analysis.PrimaryIntent = rule.intent
			primaryFound = true
		}
	}
	return analysis
}

func (c *Classifier) extractNames(ctx context.Context, text, lower string) []string {
	candidates := capitalizedRun.FindAllString(text, -1)

	if c.employees != nil {
		employees, err := c.employees.ListAll(ctx)
		if err != nil {
			c.logger.Debug("skipping directory name matching", zap.Error(err))
		}
		for _, emp := range employees {
			if mentionsEmployee(lower, emp.Name) {
				candidates = append(candidates, emp.Name)
			}
		}
	}

	seen := make(map[string]struct{}, len(candidates))
	names := make([]string, 0, len(candidates))
	for _, name := range candidates {
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, name)
	}
	return names
}

// mentionsEmployee reports whether the lower-cased query contains the full
// name or any name part longer than two characters.
func mentionsEmployee(lowerQuery, name string) bool {
	full := strings.ToLower(name)
	if full == "" {
		return false
	}
	if strings.Contains(lowerQuery, full) {
		return true
	}
	for _, part := range strings.Fields(full) {
		if utf8.RuneCountInString(part) > 2 && strings.Contains(lowerQuery, part) {
			return true
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
