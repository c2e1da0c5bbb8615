package service

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-assistant/internal/domain"
	"github.com/spec-kit/employee-assistant/internal/policy"
)

type infoContext int

const (
	contextGeneral infoContext = iota
	contextSalary
	contextLeave
	contextTravel
)

const topLocations = 5

var bandToken = regexp.MustCompile(`(?i)\bL[1-5]\b`)

// formatEmployeeInfo renders the identity header plus the blocks relevant
// to ctx. Entitlement blocks are omitted for bands outside the policy tables.
func formatEmployeeInfo(emp domain.Employee, ctx infoContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n", emp.Name)
	fmt.Fprintf(&b, "Department: %s\n", emp.Department)
	fmt.Fprintf(&b, "Band Level: %s\n", emp.Band)
	fmt.Fprintf(&b, "Location: %s\n", emp.Location)
	fmt.Fprintf(&b, "Joining Date: %s\n", emp.JoiningDate)

	if ctx == contextSalary || ctx == contextGeneral {
		b.WriteString("\n**Compensation Details:**\n")
		fmt.Fprintf(&b, "   • Total CTC: %s\n", rupees(emp.TotalCTC))
		fmt.Fprintf(&b, "   • Base Salary: %s\n", rupees(emp.BaseSalary))
		fmt.Fprintf(&b, "   • Performance Bonus: %s\n", rupees(emp.PerformanceBonus))
		fmt.Fprintf(&b, "   • Retention Bonus: %s\n", rupees(emp.RetentionBonus))
	}

	if ctx == contextLeave || ctx == contextGeneral {
		if leave, ok := policy.LeaveFor(emp.Band); ok {
			b.WriteString("\n**Leave Entitlements:**\n")
			fmt.Fprintf(&b, "   • Total Annual Leave: %s\n", leave.Total.Days())
			fmt.Fprintf(&b, "   • Earned Leave: %s\n", leave.Earned.Days())
			fmt.Fprintf(&b, "   • Sick Leave: %s\n", leave.Sick.Days())
			fmt.Fprintf(&b, "   • Casual Leave: %s\n", leave.Casual.Days())
			fmt.Fprintf(&b, "   • WFO Requirement: %s\n", leave.OfficeAttendance)
		}
	}

	if ctx == contextTravel || ctx == contextGeneral {
		if travel, ok := policy.TravelFor(emp.Band); ok {
			b.WriteString("\n**Travel Entitlements:**\n")
			fmt.Fprintf(&b, "   • Flight Class: %s\n", travel.FlightClass)
			fmt.Fprintf(&b, "   • Hotel Cap: %s/night\n", rupees(travel.HotelCapPerNight))
			fmt.Fprintf(&b, "   • Per Diem (Domestic): %s/day\n", rupees(travel.PerDiemDomestic))
			fmt.Fprintf(&b, "   • Per Diem (International): $%s/day\n", humanize.Comma(travel.PerDiemInternational))
		}
	}
	return b.String()
}

type bucket struct {
	key   string
	count int
}

// countBy tallies employees by key, keeping first-appearance order.
func countBy(employees []domain.Employee, key func(domain.Employee) string) []bucket {
	index := make(map[string]int)
	var buckets []bucket
	for _, emp := range employees {
		k := key(emp)
		if i, ok := index[k]; ok {
			buckets[i].count++
			continue
		}
		index[k] = len(buckets)
		buckets = append(buckets, bucket{key: k, count: 1})
	}
	return buckets
}

func sortedByKey(buckets []bucket) []bucket {
	out := append([]bucket(nil), buckets...)
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out
}

func (a *Assistant) statisticsReport(ctx context.Context) (string, error) {
	employees, err := a.directory.ListAll(ctx)
	if err != nil {
		return "", err
	}
	total := len(employees)

	var b strings.Builder
	fmt.Fprintf(&b, "**Company Statistics** (Total: %d employees)\n\n", total)
	if total == 0 {
		b.WriteString("No employee records are available.")
		return b.String(), nil
	}

	b.WriteString("**Department Breakdown:**\n")
	for _, dept := range sortedByKey(countBy(employees, func(e domain.Employee) string { return e.Department })) {
		fmt.Fprintf(&b, "   • %s: %s (%.1f%%)\n", dept.key, pluralEmployees(dept.count), percent(dept.count, total))
	}

	b.WriteString("\n**Band Distribution:**\n")
	for _, band := range sortedByKey(countBy(employees, func(e domain.Employee) string { return string(e.Band) })) {
		fmt.Fprintf(&b, "   • %s: %s (%.1f%%)\n", band.key, pluralEmployees(band.count), percent(band.count, total))
	}

	locations := countBy(employees, func(e domain.Employee) string { return e.Location })
	fmt.Fprintf(&b, "\n**Locations:** %d different cities\n", len(locations))
	sort.SliceStable(locations, func(i, j int) bool { return locations[i].count > locations[j].count })
	if len(locations) > topLocations {
		locations = locations[:topLocations]
	}
	b.WriteString("   Top locations:\n")
	for _, loc := range locations {
		fmt.Fprintf(&b, "   • %s: %s\n", loc.key, pluralEmployees(loc.count))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (a *Assistant) rosterReport(ctx context.Context) (string, error) {
	employees, err := a.directory.ListAll(ctx)
	if err != nil {
		return "", err
	}

	groups := make(map[string][]domain.Employee)
	for _, emp := range employees {
		groups[emp.Department] = append(groups[emp.Department], emp)
	}
	departments := make([]string, 0, len(groups))
	for dept := range groups {
		departments = append(departments, dept)
	}
	sort.Strings(departments)

	var b strings.Builder
	fmt.Fprintf(&b, "**All Employees (%d total):**\n\n", len(employees))
	for _, dept := range departments {
		members := groups[dept]
		sort.SliceStable(members, func(i, j int) bool { return members[i].Name < members[j].Name })
		fmt.Fprintf(&b, "**%s** (%d members):\n", dept, len(members))
		for _, emp := range members {
			fmt.Fprintf(&b, "   • %s (%s) - %s\n", emp.Name, emp.Band, emp.Location)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}

func (a *Assistant) teamReport(ctx context.Context, text string) (string, error) {
	employees, err := a.directory.ListAll(ctx)
	if err != nil {
		return "", err
	}
	departments, err := a.directory.Departments(ctx)
	if err != nil {
		return "", err
	}

	lower := strings.ToLower(text)
	var matches []string
	for _, dept := range departments {
		if dept.Name != "" && strings.Contains(lower, strings.ToLower(dept.Name)) {
			matches = append(matches, dept.Name)
		}
	}
	if len(matches) > 1 {
		a.logger.Warn("ambiguous department match",
			zap.Strings("departments", matches),
			zap.String("chosen", matches[0]))
	}

	var b strings.Builder
	if len(matches) > 0 {
		dept := matches[0]
		var members []domain.Employee
		for _, emp := range employees {
			if emp.Department == dept {
				members = append(members, emp)
			}
		}
		sort.SliceStable(members, func(i, j int) bool {
			if members[i].Band != members[j].Band {
				return members[i].Band < members[j].Band
			}
			return members[i].Name < members[j].Name
		})

		fmt.Fprintf(&b, "**%s Department** (%d members):\n\n", dept, len(members))
		for _, emp := range members {
			fmt.Fprintf(&b, "**%s** (%s)\n", emp.Name, emp.Band)
			fmt.Fprintf(&b, "   Location: %s\n", emp.Location)
			fmt.Fprintf(&b, "   CTC: %s\n", rupees(emp.TotalCTC))
			fmt.Fprintf(&b, "   Joined: %s\n\n", emp.JoiningDate)
		}
		return strings.TrimSpace(b.String()), nil
	}

	sort.SliceStable(departments, func(i, j int) bool { return departments[i].Name < departments[j].Name })
	b.WriteString("**Departments Overview:**\n\n")
	for _, dept := range departments {
		fmt.Fprintf(&b, "• **%s**: %s\n", dept.Name, pluralEmployees(dept.Headcount))
	}
	b.WriteString("\nAsk about a specific department like 'Show me Engineering team' for detailed information.")
	return b.String(), nil
}

// mentionedBand returns the first L1..L5 token in text.
func mentionedBand(text string) (domain.Band, bool) {
	token := bandToken.FindString(text)
	if token == "" {
		return "", false
	}
	band, err := domain.ParseBand(token)
	if err != nil {
		return "", false
	}
	return band, true
}

func leavePolicyReport(band domain.Band, filtered bool) string {
	var b strings.Builder
	b.WriteString("**Leave Policy Information:**\n\n")

	if filtered {
		if leave, ok := policy.LeaveFor(band); ok {
			fmt.Fprintf(&b, "**Band %s Leave Entitlements:**\n", band)
			fmt.Fprintf(&b, "• Total Annual Leave: %s\n", leave.Total.Days())
			fmt.Fprintf(&b, "• Earned Leave: %s\n", leave.Earned.Days())
			fmt.Fprintf(&b, "• Sick Leave: %s\n", leave.Sick.Days())
			fmt.Fprintf(&b, "• Casual Leave: %s\n", leave.Casual.Days())
			fmt.Fprintf(&b, "• WFO Requirement: %s\n", leave.OfficeAttendance)
		}
		return strings.TrimRight(b.String(), "\n")
	}

	for _, band := range domain.Bands() {
		leave, ok := policy.LeaveFor(band)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "**Band %s:**\n", band)
		fmt.Fprintf(&b, "• Total Leave: %s\n", leave.Total.Days())
		fmt.Fprintf(&b, "• WFO Requirement: %s\n\n", leave.OfficeAttendance)
	}
	return strings.TrimRight(b.String(), "\n")
}

func travelPolicyReport(band domain.Band, filtered bool) string {
	var b strings.Builder
	b.WriteString("**Travel Policy Information:**\n\n")

	if filtered {
		if travel, ok := policy.TravelFor(band); ok {
			fmt.Fprintf(&b, "**Band %s Travel Entitlements:**\n", band)
			fmt.Fprintf(&b, "• Flight Class: %s\n", travel.FlightClass)
			fmt.Fprintf(&b, "• Hotel Cap: %s/night\n", rupees(travel.HotelCapPerNight))
			fmt.Fprintf(&b, "• Per Diem (Domestic): %s/day\n", rupees(travel.PerDiemDomestic))
			fmt.Fprintf(&b, "• Per Diem (International): $%s/day\n", humanize.Comma(travel.PerDiemInternational))
		}
		return strings.TrimRight(b.String(), "\n")
	}

	for _, band := range domain.Bands() {
		travel, ok := policy.TravelFor(band)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "**Band %s:**\n", band)
		fmt.Fprintf(&b, "• Flight: %s\n", travel.FlightClass)
		fmt.Fprintf(&b, "• Hotel Cap: %s/night\n", rupees(travel.HotelCapPerNight))
		fmt.Fprintf(&b, "• Per Diem: %s (domestic)\n\n", rupees(travel.PerDiemDomestic))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *Assistant) helpMessage(ctx context.Context) string {
	var b strings.Builder
	b.WriteString("**Employee Information Assistant**\n\n")
	b.WriteString("I can help you with:\n")
	b.WriteString("• Employee information (salary, team, location, band level)\n")
	b.WriteString("• Leave policies and entitlements by band\n")
	b.WriteString("• Travel policies and allowances\n")
	b.WriteString("• Department information and member lists\n")
	b.WriteString("• Company statistics and breakdowns\n\n")
	b.WriteString("**Try asking:**\n")
	b.WriteString("• 'Show me Martha Bennett's information'\n")
	b.WriteString("• 'What's the leave policy for L3?'\n")
	b.WriteString("• 'List all employees'\n")
	b.WriteString("• 'Travel allowances for different bands'\n")
	b.WriteString("• 'Company statistics'\n")
	b.WriteString("• 'Who works in Sales department?'")

	employees, err := a.directory.ListAll(ctx)
	if err != nil || len(employees) == 0 {
		return b.String()
	}
	const preview = 5
	names := make([]string, 0, preview)
	for i := 0; i < len(employees) && i < preview; i++ {
		names = append(names, employees[i].Name)
	}
	fmt.Fprintf(&b, "\n\n**Available Employees:** %s", strings.Join(names, ", "))
	if rest := len(employees) - len(names); rest > 0 {
		fmt.Fprintf(&b, ", and %d more...", rest)
	}
	return b.String()
}

func rupees(amount int64) string {
	return "₹" + humanize.Comma(amount)
}

func percent(count, total int) float64 {
	return float64(count) / float64(total) * 100
}

func pluralEmployees(count int) string {
	if count == 1 {
		return "1 employee"
	}
	return fmt.Sprintf("%d employees", count)
}
