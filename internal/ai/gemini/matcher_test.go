package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/datatypes"

	"github.com/Big-jpg/swipehire/internal/models"
)

type stubGenerator struct {
	response    string
	err         error
	lastSystem  string
	lastMessage string
}

func (s *stubGenerator) GenerateContent(_ context.Context, system, message string) (string, error) {
	s.lastSystem = system
	s.lastMessage = message
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func intPtr(v int) *int { return &v }

func testProfile() *models.Profile {
	return &models.Profile{
		FullName:            "Ada Lovelace",
		City:                "San Francisco",
		Country:             "USA",
		MinSalary:           intPtr(120000),
		ExperienceYears:     intPtr(6),
		Skills:              datatypes.JSONSlice[string]{"Go", "PostgreSQL"},
		WorkModePreferences: datatypes.JSONSlice[string]{"remote", "hybrid"},
	}
}

func testJob() *models.Job {
	mode := models.WorkModeHybrid
	return &models.Job{
		ID:          7,
		Title:       "Senior Full Stack Engineer",
		CompanyName: "TechCorp Inc.",
		City:        "San Francisco",
		Country:     "USA",
		SalaryMin:   intPtr(150000),
		SalaryMax:   intPtr(200000),
		WorkMode:    &mode,
	}
}

func TestMatcherQualify(t *testing.T) {
	stub := &stubGenerator{response: `{"qualified": true, "reason": " Strong Go background. "}`}
	core, observed := observer.New(zapcore.DebugLevel)
	matcher := NewMatcher(stub, 0, zap.New(core))

	verdict, err := matcher.Qualify(context.Background(), "Six years building Go services.", testProfile(), testJob())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !verdict.Qualified || verdict.Reason != "Strong Go background." {
		t.Fatalf("unexpected verdict: %+v", verdict)
	}
	if verdict.Raw == "" {
		t.Fatalf("expected raw response to be kept")
	}

	if stub.lastSystem != systemPrompt || !strings.Contains(stub.lastSystem, `"qualified"`) {
		t.Fatalf("expected embedded system prompt to be sent")
	}

	for _, want := range []string{
		"- Name: Ada Lovelace",
		"- Location: San Francisco, USA",
		"- Experience: 6 years",
		"- Skills: Go, PostgreSQL",
		"- Salary Range: USD 120000 - 0",
		"- Work Mode Preferences: remote, hybrid",
		"Six years building Go services.",
		"- Title: Senior Full Stack Engineer",
		"- Salary: USD 150000 - 200000",
		"- Work Mode: hybrid",
		"- Employment Type: full-time",
		"- Summary: Not provided",
	} {
		if !strings.Contains(stub.lastMessage, want) {
			t.Fatalf("message is missing %q:\n%s", want, stub.lastMessage)
		}
	}

	if got := len(observed.FilterMessage("gemini qualify request").All()); got != 1 {
		t.Fatalf("expected request to be logged once, got %d", got)
	}
	if got := len(observed.FilterMessage("gemini qualify response").All()); got != 1 {
		t.Fatalf("expected response to be logged once, got %d", got)
	}
}

func TestMatcherQualifyPropagatesGeneratorError(t *testing.T) {
	boom := errors.New("transport down")
	matcher := NewMatcher(&stubGenerator{err: boom}, 0, nil)

	if _, err := matcher.Qualify(context.Background(), "resume", testProfile(), testJob()); !errors.Is(err, boom) {
		t.Fatalf("expected generator error, got %v", err)
	}
}

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantErr   bool
		qualified bool
		reason    string
	}{
		{name: "plain", raw: `{"qualified": false, "reason": "Needs Kubernetes"}`, reason: "Needs Kubernetes"},
		{name: "code block", raw: "```json\n{\"qualified\": true, \"reason\": \"Looks good\"}\n```", qualified: true, reason: "Looks good"},
		{name: "not json", raw: "I think so", wantErr: true},
		{name: "missing reason", raw: `{"qualified": true}`, wantErr: true},
		{name: "null reason", raw: `{"qualified": true, "reason": null}`, wantErr: true},
		{name: "string flag", raw: `{"qualified": "yes", "reason": "x"}`, wantErr: true},
		{name: "numeric reason", raw: `{"qualified": true, "reason": 3}`, wantErr: true},
		{name: "extra field", raw: `{"qualified": true, "reason": "x", "score": 0.9}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, err := parseVerdict(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", verdict)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if verdict.Qualified != tt.qualified || verdict.Reason != tt.reason {
				t.Fatalf("unexpected verdict: %+v", verdict)
			}
		})
	}
}
