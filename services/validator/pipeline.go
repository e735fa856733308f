package validator

import (
	"context"
	"fmt"
	"log"

	"github.com/junova144/Eva/models"
	"github.com/junova144/Eva/tracing"
)

type Pipeline struct {
	classifier Classifier
}

func NewPipeline(classifier Classifier) *Pipeline {
	return &Pipeline{classifier: classifier}
}

// Run classifies the question, checks it against the declared course and
// synthesizes the next step. An error means classification failed; a
// mismatch is reported through the returned SynthOutput.
func (p *Pipeline) Run(ctx context.Context, q models.Question) (models.ValidationResult, models.SynthOutput, error) {
	log.Printf("[INFO] Starting validation for declared course %q, grade %q", q.Course, q.Grade)

	if err := q.Validate(); err != nil {
		return models.ValidationResult{}, models.SynthOutput{}, err
	}

	detected, err := p.classifier.Classify(ctx, q.Text)
	if err != nil {
		return models.ValidationResult{}, models.SynthOutput{}, fmt.Errorf("failed to classify question: %w", err)
	}

	result := Check(q.Course, detected)
	_, span := tracing.Start(ctx, "validator.synthesize")
	out := Synthesize(result, q)
	tracing.End(span, nil)

	if result.Valid {
		log.Printf("[INFO] Validation passed for course %s", detected)
	} else {
		log.Printf("[INFO] Validation rejected question: declared %q, detected %s", q.Course, detected)
	}
	return result, out, nil
}
