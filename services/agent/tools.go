package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/junova144/Eva/models"
	"github.com/junova144/Eva/services/search"
	"github.com/junova144/Eva/tracing"

	"github.com/invopop/jsonschema"
	"github.com/tmc/langchaingo/llms"
)

// ToolID identifies one subject tool. The set is closed: every identifier
// is handled by the switches in this file.
type ToolID int

const (
	ToolSolveProblem ToolID = iota + 1
	ToolExplainConcept
	ToolVerifyResult
	ToolTextComprehension
	ToolTextProduction
	ToolTextValidation
	ToolScientificExplanation
	ToolSuggestedExperiment
	ToolImpactAnalysis
	ToolProjectPlan
	ToolTechConcept
	ToolProjectEvaluation
	ToolGrammarExplanation
	ToolVocabularyLookup
	ToolPracticeExercise
)

var allToolIDs = []ToolID{
	ToolSolveProblem, ToolExplainConcept, ToolVerifyResult,
	ToolTextComprehension, ToolTextProduction, ToolTextValidation,
	ToolScientificExplanation, ToolSuggestedExperiment, ToolImpactAnalysis,
	ToolProjectPlan, ToolTechConcept, ToolProjectEvaluation,
	ToolGrammarExplanation, ToolVocabularyLookup, ToolPracticeExercise,
}

func AllToolIDs() []ToolID {
	return append([]ToolID(nil), allToolIDs...)
}

func (id ToolID) Name() string {
	switch id {
	case ToolSolveProblem:
		return "solve_problem"
	case ToolExplainConcept:
		return "explain_concept"
	case ToolVerifyResult:
		return "verify_result"
	case ToolTextComprehension:
		return "text_comprehension"
	case ToolTextProduction:
		return "text_production"
	case ToolTextValidation:
		return "text_validation"
	case ToolScientificExplanation:
		return "scientific_explanation"
	case ToolSuggestedExperiment:
		return "suggested_experiment"
	case ToolImpactAnalysis:
		return "impact_analysis"
	case ToolProjectPlan:
		return "project_plan"
	case ToolTechConcept:
		return "tech_concept"
	case ToolProjectEvaluation:
		return "project_evaluation"
	case ToolGrammarExplanation:
		return "grammar_explanation"
	case ToolVocabularyLookup:
		return "vocabulary_lookup"
	case ToolPracticeExercise:
		return "practice_exercise"
	}
	return fmt.Sprintf("tool(%d)", int(id))
}

func (id ToolID) String() string {
	return id.Name()
}

// Owner returns the course whose agent exposes the tool.
func (id ToolID) Owner() models.CourseLabel {
	switch id {
	case ToolSolveProblem, ToolExplainConcept, ToolVerifyResult:
		return models.CourseMath
	case ToolTextComprehension, ToolTextProduction, ToolTextValidation:
		return models.CourseCommunication
	case ToolScientificExplanation, ToolSuggestedExperiment, ToolImpactAnalysis:
		return models.CourseScience
	case ToolProjectPlan, ToolTechConcept, ToolProjectEvaluation:
		return models.CourseWork
	case ToolGrammarExplanation, ToolVocabularyLookup, ToolPracticeExercise:
		return models.CourseEnglish
	}
	return ""
}

func ParseToolID(name string) (ToolID, bool) {
	for _, id := range allToolIDs {
		if id.Name() == name {
			return id, true
		}
	}
	return 0, false
}

type TopicInput struct {
	Topic string `json:"topic" jsonschema:"required,description=The topic, concept, problem or text the student asked about"`
}

type VerifyResultInput struct {
	Statement     string `json:"statement" jsonschema:"required,description=The problem statement"`
	StudentAnswer string `json:"student_answer" jsonschema:"required,description=The answer given by the student"`
}

// decodeInput turns the model's JSON arguments into the text the tool works on.
func decodeInput(id ToolID, arguments string) (string, error) {
	switch id {
	case ToolVerifyResult:
		var params VerifyResultInput
		if err := json.Unmarshal([]byte(arguments), &params); err != nil {
			return "", fmt.Errorf("failed to parse %s tool input: %w", id, err)
		}
		if strings.TrimSpace(params.Statement) == "" {
			return "", fmt.Errorf("%s tool input is missing the statement", id)
		}
		return fmt.Sprintf("Statement: %s\nStudent answer: %s", params.Statement, params.StudentAnswer), nil
	case ToolSolveProblem, ToolExplainConcept,
		ToolTextComprehension, ToolTextProduction, ToolTextValidation,
		ToolScientificExplanation, ToolSuggestedExperiment, ToolImpactAnalysis,
		ToolProjectPlan, ToolTechConcept, ToolProjectEvaluation,
		ToolGrammarExplanation, ToolVocabularyLookup, ToolPracticeExercise:
		var params TopicInput
		if err := json.Unmarshal([]byte(arguments), &params); err != nil {
			return "", fmt.Errorf("failed to parse %s tool input: %w", id, err)
		}
		if strings.TrimSpace(params.Topic) == "" {
			return "", fmt.Errorf("%s tool input is missing the topic", id)
		}
		return params.Topic, nil
	}
	return "", fmt.Errorf("no input decoder for tool %d", int(id))
}

func inputSchema(id ToolID) map[string]any {
	switch id {
	case ToolVerifyResult:
		return generateSchema[VerifyResultInput]()
	default:
		return generateSchema[TopicInput]()
	}
}

func generateSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)

	raw, err := json.Marshal(schema)
	if err != nil {
		return map[string]any{"type": "object"}
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]any{"type": "object"}
	}
	delete(out, "$schema")
	delete(out, "$id")
	return out
}

// ToolSpec describes one tool: how the model sees it and how it generates.
// Both prompts may reference {input} and, for search-backed tools, {context}.
type ToolSpec struct {
	ID           ToolID
	Description  string
	SystemPrompt string
	UserTemplate string
	Temperature  float64
	SearchQuery  string
	SearchLimit  int
}

func (s ToolSpec) UsesSearch() bool {
	return s.SearchQuery != ""
}

func (s ToolSpec) LLMTool() llms.Tool {
	return llms.Tool{
		Type: "function",
		Function: &llms.FunctionDefinition{
			Name:        s.ID.Name(),
			Description: s.Description,
			Parameters:  inputSchema(s.ID),
		},
	}
}

// Tool runs a ToolSpec against the model, optionally prefixed with search
// context.
type Tool struct {
	spec     ToolSpec
	llm      llms.Model
	searcher search.Searcher
}

func NewTool(spec ToolSpec, llm llms.Model, searcher search.Searcher) *Tool {
	if searcher == nil {
		searcher = search.NoopSearcher{}
	}
	return &Tool{spec: spec, llm: llm, searcher: searcher}
}

func (t *Tool) ID() ToolID {
	return t.spec.ID
}

func (t *Tool) Call(ctx context.Context, arguments string) (out string, err error) {
	ctx, span := tracing.Start(ctx, "agent.tool", tracing.ToolAttrs(t.spec.ID.Name())...)
	defer func() { tracing.End(span, err) }()

	input, err := decodeInput(t.spec.ID, arguments)
	if err != nil {
		return "", err
	}

	replacements := []string{"{input}", input}
	if t.spec.UsesSearch() {
		query := strings.ReplaceAll(t.spec.SearchQuery, "{input}", input)
		result := t.searcher.Search(ctx, query, t.spec.SearchLimit)
		if !result.OK() {
			log.Printf("[WARN] No external context for tool %s: %v", t.spec.ID, result.Err)
		}
		replacements = append(replacements, "{context}", result.Context())
	}
	replacer := strings.NewReplacer(replacements...)

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, replacer.Replace(t.spec.SystemPrompt)),
		llms.TextParts(llms.ChatMessageTypeHuman, replacer.Replace(t.spec.UserTemplate)),
	}

	log.Printf("[INFO] Executing tool %s", t.spec.ID)
	resp, err := t.llm.GenerateContent(ctx, messages, llms.WithTemperature(t.spec.Temperature))
	if err != nil {
		log.Printf("[ERROR] Tool %s generation failed: %v", t.spec.ID, err)
		return "", fmt.Errorf("tool %s generation failed: %w", t.spec.ID, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("tool %s: %w", t.spec.ID, ErrEmptyResponse)
	}

	return strings.TrimSpace(resp.Choices[0].Content), nil
}
