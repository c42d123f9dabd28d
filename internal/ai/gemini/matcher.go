package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/Big-jpg/swipehire/internal/ai"
	"github.com/Big-jpg/swipehire/internal/models"
	"github.com/Big-jpg/swipehire/internal/utils"
)

const (
	ProviderName        = "gemini"
	defaultMaxLogLength = 200
)

//go:embed prompt.md
var systemPrompt string

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

// Matcher implements ai.Qualifier on top of a Gemini generator.
type Matcher struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewMatcher(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Matcher {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Matcher{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (m *Matcher) Qualify(ctx context.Context, resumeText string, profile *models.Profile, job *models.Job) (*ai.Verdict, error) {
	if profile == nil {
		return nil, errors.New("profile is required")
	}
	if job == nil {
		return nil, errors.New("job is required")
	}

	message := buildMessage(resumeText, profile, job)

	m.logger.Debug("gemini qualify request",
		zap.Uint("job_id", job.ID),
		zap.Int("message_length", utf8.RuneCountInString(message)),
		zap.String("message_preview", utils.TruncateForLog(message, m.maxLogLen)),
	)

	raw, err := m.generator.GenerateContent(ctx, systemPrompt, message)
	if err != nil {
		return nil, err
	}

	m.logger.Debug("gemini qualify response",
		zap.Uint("job_id", job.ID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, m.maxLogLen)),
	)

	verdict, err := parseVerdict(raw)
	if err != nil {
		return nil, err
	}
	verdict.Raw = raw
	return verdict, nil
}

func buildMessage(resumeText string, p *models.Profile, j *models.Job) string {
	var b strings.Builder

	b.WriteString("Candidate Profile:\n")
	fmt.Fprintf(&b, "- Name: %s\n", orDefault(p.FullName, "Not provided"))
	fmt.Fprintf(&b, "- Location: %s, %s\n", orDefault(p.City, "Unknown"), orDefault(p.Country, "Unknown"))
	fmt.Fprintf(&b, "- Experience: %s years\n", intOr(p.ExperienceYears, "0"))
	fmt.Fprintf(&b, "- Current Role: %s\n", orDefault(p.CurrentRoleTitle, "Not specified"))
	fmt.Fprintf(&b, "- Desired Role: %s\n", orDefault(p.DesiredTitle, "Not specified"))
	fmt.Fprintf(&b, "- Skills: %s\n", orDefault(strings.Join(p.Skills, ", "), "Not specified"))
	fmt.Fprintf(&b, "- Salary Range: %s %s - %s\n", orDefault(p.Currency, "USD"), intOr(p.MinSalary, "0"), intOr(p.MaxSalary, "0"))
	fmt.Fprintf(&b, "- Work Mode Preferences: %s\n", orDefault(strings.Join(p.WorkModePreferences, ", "), "Any"))

	b.WriteString("\nResume:\n")
	b.WriteString(orDefault(resumeText, "No resume text available"))
	b.WriteString("\n")

	workMode := ""
	if j.WorkMode != nil {
		workMode = string(*j.WorkMode)
	}

	b.WriteString("\nJob Details:\n")
	fmt.Fprintf(&b, "- Title: %s\n", j.Title)
	fmt.Fprintf(&b, "- Company: %s\n", j.CompanyName)
	fmt.Fprintf(&b, "- Location: %s, %s\n", orDefault(j.City, "Unknown"), orDefault(j.Country, "Unknown"))
	fmt.Fprintf(&b, "- Salary: %s %s - %s\n", orDefault(j.Currency, "USD"), intOr(j.SalaryMin, "0"), intOr(j.SalaryMax, "0"))
	fmt.Fprintf(&b, "- Work Mode: %s\n", orDefault(workMode, "Not specified"))
	fmt.Fprintf(&b, "- Employment Type: %s\n", orDefault(j.EmploymentType, models.DefaultEmploymentType))
	fmt.Fprintf(&b, "- Summary: %s\n", orDefault(j.Summary, "Not provided"))
	fmt.Fprintf(&b, "- Description: %s\n", orDefault(j.Description, "Not provided"))

	b.WriteString("\nIs this candidate qualified for this job?")
	return b.String()
}

type verdictPayload struct {
	Qualified bool   `mapstructure:"qualified"`
	Reason    string `mapstructure:"reason"`
}

// parseVerdict requires exactly the two verdict fields with their JSON
// types; anything else is treated as a provider failure.
func parseVerdict(raw string) (*ai.Verdict, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	for _, key := range []string{"qualified", "reason"} {
		if v, ok := data[key]; !ok || v == nil {
			return nil, fmt.Errorf("gemini verdict is missing %q", key)
		}
	}

	var payload verdictPayload
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &payload,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, fmt.Errorf("build verdict decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("decode gemini verdict: %w", err)
	}

	return &ai.Verdict{
		Qualified: payload.Qualified,
		Reason:    strings.TrimSpace(payload.Reason),
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func orDefault(s, fallback string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return fallback
}

func intOr(v *int, fallback string) string {
	if v == nil {
		return fallback
	}
	return strconv.Itoa(*v)
}
