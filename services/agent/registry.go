package agent

import (
	"errors"
	"fmt"
	"log"

	"github.com/junova144/Eva/models"
	"github.com/junova144/Eva/services/search"

	"github.com/tmc/langchaingo/llms"
)

var ErrNoAgent = errors.New("no agent configured for course")

type options struct {
	maxIterations int
	toolModel     llms.Model
}

type Option func(*options)

// WithMaxIterations bounds the number of model calls per agent run.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxIterations = n
		}
	}
}

// WithToolModel makes tools generate with a different model than the one
// deciding which tool to call.
func WithToolModel(m llms.Model) Option {
	return func(o *options) {
		o.toolModel = m
	}
}

// Registry maps each course to its agent.
type Registry struct {
	agents map[models.CourseLabel]*Agent
}

func NewRegistry(llm llms.Model, searcher search.Searcher, opts ...Option) *Registry {
	o := options{maxIterations: DefaultMaxIterations}
	for _, opt := range opts {
		opt(&o)
	}
	if o.toolModel == nil {
		o.toolModel = llm
	}

	agents := make([]*Agent, 0, len(subjects))
	for _, subject := range subjects {
		agents = append(agents, NewAgent(subject, llm, o.toolModel, searcher, o.maxIterations))
	}
	return NewRegistryFromAgents(agents...)
}

func NewRegistryFromAgents(agents ...*Agent) *Registry {
	r := &Registry{agents: make(map[models.CourseLabel]*Agent, len(agents))}
	for _, a := range agents {
		r.agents[a.course] = a
	}
	log.Printf("[INFO] Agent registry ready with %d agents", len(r.agents))
	return r
}

func NewAgent(subject SubjectSpec, llm, toolModel llms.Model, searcher search.Searcher, maxIterations int) *Agent {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	a := &Agent{
		course:        subject.Course,
		name:          subject.Name,
		systemPrompt:  subject.Prompt + fmt.Sprintf(ANSWER_FORMAT_PROMPT, answerSchema()),
		temperature:   subject.Temperature,
		tools:         make(map[ToolID]*Tool, len(subject.Tools)),
		llm:           llm,
		maxIterations: maxIterations,
	}
	for _, spec := range subject.Tools {
		a.tools[spec.ID] = NewTool(spec, toolModel, searcher)
		a.llmTools = append(a.llmTools, spec.LLMTool())
	}
	return a
}

func (r *Registry) Get(course models.CourseLabel) (*Agent, error) {
	a, ok := r.agents[course]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoAgent, course)
	}
	return a, nil
}

// Courses lists the configured courses in catalog order.
func (r *Registry) Courses() []models.CourseLabel {
	var courses []models.CourseLabel
	for _, c := range models.AllCourses() {
		if _, ok := r.agents[c]; ok {
			courses = append(courses, c)
		}
	}
	return courses
}
