package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-assistant/internal/domain"
	"github.com/spec-kit/employee-assistant/internal/events"
	"github.com/spec-kit/employee-assistant/internal/observability"
)

const maxErrorDetail = 200

// EmployeeDirectory is the read side of the employee directory used to
// answer queries.
type EmployeeDirectory interface {
	EmployeeLister
	FindByName(ctx context.Context, name string) (domain.Employee, error)
	Departments(ctx context.Context) ([]domain.Department, error)
}

// AssistantDeps carries optional collaborators.
type AssistantDeps struct {
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Dispatcher events.Dispatcher
}

// Answer is a composed response together with the analysis that drove it.
type Answer struct {
	Text     string
	Analysis domain.QueryAnalysis
}

// Assistant turns free-text HR questions into formatted answers.
type Assistant struct {
	directory  EmployeeDirectory
	classifier *Classifier
	logger     *zap.Logger
	metrics    *observability.Metrics
	dispatcher events.Dispatcher
}

// NewAssistant wires the assistant. A nil classifier gets one built over
// directory.
func NewAssistant(directory EmployeeDirectory, classifier *Classifier, deps AssistantDeps) *Assistant {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if classifier == nil {
		classifier = NewClassifier(directory, logger)
	}
	return &Assistant{
		directory:  directory,
		classifier: classifier,
		logger:     logger,
		metrics:    deps.Metrics,
		dispatcher: deps.Dispatcher,
	}
}

// Process answers text. It never fails: internal errors come back as an
// apology message.
func (a *Assistant) Process(ctx context.Context, text string) string {
	return a.Answer(ctx, text).Text
}

// Answer classifies text and composes the response.
func (a *Assistant) Answer(ctx context.Context, text string) (answer Answer) {
	start := time.Now()
	failed := false

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("query processing panicked", zap.Any("panic", r))
			answer.Text = apology("Sorry, I encountered an error", fmt.Errorf("%v", r)) + " Please try rephrasing your question."
			failed = true
		}
		a.finish(ctx, answer.Analysis, failed, time.Since(start))
	}()

	answer.Analysis = a.classifier.Classify(ctx, text)
	body, err := a.respond(ctx, text, answer.Analysis)
	if err != nil {
		a.logger.Warn("query failed",
			zap.String("intent", string(answer.Analysis.PrimaryIntent)),
			zap.Error(err))
		failed = true
		body = apology("Sorry, I encountered an error", err) + " Please try rephrasing your question."
	}
	answer.Text = body
	return answer
}

func (a *Assistant) respond(ctx context.Context, text string, analysis domain.QueryAnalysis) (string, error) {
	switch {
	case analysis.PrimaryIntent == domain.IntentStatistics:
		report, err := a.statisticsReport(ctx)
		if err != nil {
			return apology("Sorry, I couldn't generate statistics", err), nil
		}
		return report, nil
	case analysis.PrimaryIntent == domain.IntentListAll:
		report, err := a.rosterReport(ctx)
		if err != nil {
			return apology("Sorry, I couldn't retrieve the employee list", err), nil
		}
		return report, nil
	case len(analysis.ExtractedNames) > 0:
		return a.employeeReport(ctx, analysis.ExtractedNames, analysis.PrimaryIntent)
	case analysis.PrimaryIntent == domain.IntentTeamInquiry:
		report, err := a.teamReport(ctx, text)
		if err != nil {
			return apology("Sorry, I couldn't retrieve team information", err), nil
		}
		return report, nil
	case analysis.PrimaryIntent == domain.IntentLeavePolicy:
		return leavePolicyReport(mentionedBand(text)), nil
	case analysis.PrimaryIntent == domain.IntentTravelPolicy:
		return travelPolicyReport(mentionedBand(text)), nil
	default:
		return a.helpMessage(ctx), nil
	}
}

// employeeReport renders one block per name. Unknown names get suggestions;
// source failures abort the whole answer.
func (a *Assistant) employeeReport(ctx context.Context, names []string, intent domain.Intent) (string, error) {
	var b strings.Builder
	found := 0

	for _, name := range names {
		emp, err := a.directory.FindByName(ctx, name)
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			if similar := a.similarNames(ctx, name); len(similar) > 0 {
				fmt.Fprintf(&b, "Couldn't find '%s'. Did you mean: %s?\n\n", name, strings.Join(similar, ", "))
			} else {
				fmt.Fprintf(&b, "Sorry, I couldn't find an employee named '%s' in our records.\n\n", name)
			}
			continue
		}
		if err != nil {
			return "", err
		}
		found++

		switch intent {
		case domain.IntentSalaryInquiry:
			b.WriteString(formatEmployeeInfo(emp, contextSalary) + "\n\n")
		case domain.IntentLeavePolicy:
			b.WriteString(formatEmployeeInfo(emp, contextLeave) + "\n\n")
		case domain.IntentTravelPolicy:
			b.WriteString(formatEmployeeInfo(emp, contextTravel) + "\n\n")
		case domain.IntentLocationInquiry:
			fmt.Fprintf(&b, "%s is based in %s\n", emp.Name, emp.Location)
		case domain.IntentBandInquiry:
			fmt.Fprintf(&b, "%s is at Band %s level\n", emp.Name, emp.Band)
		default:
			b.WriteString(formatEmployeeInfo(emp, contextGeneral) + "\n\n")
		}
	}

	if found == 0 {
		b.WriteString("Try using the full name or check the spelling. You can also ask 'list all employees' to see available names.")
	}
	return strings.TrimSpace(b.String()), nil
}

// similarNames returns up to three employees sharing a whole name token
// with name, ignoring case.
func (a *Assistant) similarNames(ctx context.Context, name string) []string {
	employees, err := a.directory.ListAll(ctx)
	if err != nil {
		return nil
	}
	tokens := make(map[string]struct{})
	for _, token := range strings.Fields(strings.ToLower(name)) {
		tokens[token] = struct{}{}
	}

	var similar []string
	for _, emp := range employees {
		for _, token := range strings.Fields(strings.ToLower(emp.Name)) {
			if _, ok := tokens[token]; ok {
				similar = append(similar, emp.Name)
				break
			}
		}
		if len(similar) == 3 {
			break
		}
	}
	return similar
}

func (a *Assistant) finish(ctx context.Context, analysis domain.QueryAnalysis, failed bool, duration time.Duration) {
	a.metrics.RecordIntent(string(analysis.PrimaryIntent))
	a.metrics.ObserveQuery(duration)
	if a.dispatcher == nil {
		return
	}
	event := events.NewEvent(events.EventQueryAnswered, events.QueryAnsweredPayload{
		PrimaryIntent: analysis.PrimaryIntent,
		Intents:       analysis.AllIntents,
		NameCount:     len(analysis.ExtractedNames),
		Failed:        failed,
		Duration:      duration,
	})
	if err := a.dispatcher.Publish(ctx, event); err != nil {
		a.logger.Warn("publish query event", zap.Error(err))
	}
}

// apology renders err after prefix, bounded so source errors cannot flood
// the answer.
func apology(prefix string, err error) string {
	detail := err.Error()
	if utf8.RuneCountInString(detail) > maxErrorDetail {
		detail = string([]rune(detail)[:maxErrorDetail]) + "..."
	}
	return fmt.Sprintf("%s: %s.", prefix, detail)
}
