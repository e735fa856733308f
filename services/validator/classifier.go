package validator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/junova144/Eva/models"
	"github.com/junova144/Eva/tracing"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/tmc/langchaingo/llms"
)

var ErrUnrecognizedCourse = errors.New("classifier output is not a known course")

const (
	classifierTemperature = 0.2
	maxFuzzyDistance      = 3
	minPartialLength      = 4
)

type Classifier interface {
	Classify(ctx context.Context, text string) (models.CourseLabel, error)
}

type LLMClassifier struct {
	llm llms.Model
}

func NewLLMClassifier(llm llms.Model) *LLMClassifier {
	return &LLMClassifier{llm: llm}
}

func (c *LLMClassifier) Classify(ctx context.Context, text string) (course models.CourseLabel, err error) {
	ctx, span := tracing.Start(ctx, "validator.classify")
	defer func() { tracing.End(span, err) }()

	labels := lo.Map(models.AllCourses(), func(c models.CourseLabel, _ int) string {
		return c.String()
	})
	prompt := fmt.Sprintf(CLASSIFIER_PROMPT, strings.Join(labels, ", "), text)

	log.Printf("[INFO] Calling LLM for course classification")
	raw, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt, llms.WithTemperature(classifierTemperature))
	if err != nil {
		log.Printf("[ERROR] Failed to classify question: %v", err)
		return "", fmt.Errorf("failed to classify question: %w", err)
	}

	course, err = CoerceCourse(raw)
	if err != nil {
		log.Printf("[ERROR] Classifier returned unusable label %q: %v", raw, err)
		return "", err
	}

	log.Printf("[INFO] Question classified as %s", course)
	return course, nil
}

// CoerceCourse maps free-form classifier output onto the closed course set.
// It tries an exact normalized match, then unique containment, then the
// closest fuzzy match within maxFuzzyDistance.
func CoerceCourse(raw string) (models.CourseLabel, error) {
	key := models.NormalizeCourse(strings.Trim(raw, " \t\r\n\"'`*"))
	if key == "" {
		return "", fmt.Errorf("%w: empty output", ErrUnrecognizedCourse)
	}

	if course, err := models.ParseCourse(key); err == nil {
		return course, nil
	}

	contained := lo.Filter(models.AllCourses(), func(c models.CourseLabel, _ int) bool {
		label := models.NormalizeCourse(c.String())
		return strings.Contains(key, label) || (len(key) >= minPartialLength && strings.Contains(label, key))
	})
	if len(contained) == 1 {
		return contained[0], nil
	}
	if len(contained) > 1 {
		return "", fmt.Errorf("%w: %q is ambiguous", ErrUnrecognizedCourse, raw)
	}

	return fuzzyCourse(raw, key)
}

func fuzzyCourse(raw, key string) (models.CourseLabel, error) {
	courses := models.AllCourses()
	labelKeys := lo.Map(courses, func(c models.CourseLabel, _ int) string {
		return models.NormalizeCourse(c.String())
	})

	type candidate struct {
		course   models.CourseLabel
		distance int
	}
	var candidates []candidate

	for _, rank := range fuzzy.RankFindNormalizedFold(key, labelKeys) {
		candidates = append(candidates, candidate{courses[rank.OriginalIndex], rank.Distance})
	}
	for i, label := range labelKeys {
		for _, rank := range fuzzy.RankFindNormalizedFold(label, []string{key}) {
			candidates = append(candidates, candidate{courses[i], rank.Distance})
		}
	}

	candidates = lo.Filter(candidates, func(c candidate, _ int) bool {
		return c.distance <= maxFuzzyDistance
	})
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedCourse, raw)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.distance == best.distance && c.course != best.course {
			return "", fmt.Errorf("%w: %q is ambiguous", ErrUnrecognizedCourse, raw)
		}
	}
	return best.course, nil
}
