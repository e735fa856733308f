package agent

import "github.com/junova144/Eva/models"

// SubjectSpec is the static definition of one subject agent.
type SubjectSpec struct {
	Course      models.CourseLabel
	Name        string
	Prompt      string
	Temperature float64
	Tools       []ToolSpec
}

var subjects = []SubjectSpec{
	{
		Course:      models.CourseMath,
		Name:        "math_agent",
		Prompt:      MATH_AGENT_PROMPT,
		Temperature: 0.4,
		Tools: []ToolSpec{
			{
				ID:           ToolSolveProblem,
				Description:  "Solves a secondary-school math problem step by step.",
				SystemPrompt: "You are a secondary-school math assistant. Solve the problem step by step, showing the calculations, and finish with the final answer. Explain how to check the solution when it applies.",
				UserTemplate: TOPIC_TEMPLATE,
				Temperature:  0.4,
			},
			{
				ID:           ToolExplainConcept,
				Description:  "Explains a math concept with examples.",
				SystemPrompt: "You are a secondary-school math teacher. Explain the concept clearly and include a short example." + CONTEXT_BLOCK,
				UserTemplate: TOPIC_TEMPLATE,
				Temperature:  0.4,
				SearchQuery:  "Definition and examples: {input} secondary-school math",
				SearchLimit:  4,
			},
			{
				ID:           ToolVerifyResult,
				Description:  "Checks a student's answer to a problem and gives feedback.",
				SystemPrompt: "You are a math grader. Read the statement and the student's answer. Say whether it is correct, explain why or why not, and suggest correction steps.",
				UserTemplate: TOPIC_TEMPLATE,
				Temperature:  0.4,
			},
		},
	},
	{
		Course:      models.CourseCommunication,
		Name:        "communication_agent",
		Prompt:      COMMUNICATION_AGENT_PROMPT,
		Temperature: 0.4,
		Tools: []ToolSpec{
			{
				ID:           ToolTextComprehension,
				Description:  "Gives a clear, concise definition or reading of a language topic.",
				SystemPrompt: "You are a language and communication specialist. Give clear, concise definitions meant for secondary-school students. For a short question, answer with a short definition. Return plain text with no examples.",
				UserTemplate: TOPIC_TEMPLATE,
				Temperature:  0.15,
			},
			{
				ID:           ToolTextProduction,
				Description:  "Writes an applied example paragraph about a topic or text type.",
				SystemPrompt: "You are an educational writer who only writes applied examples or paragraphs. Never give definitions or theory. Write a clear, natural example for secondary-school students." + CONTEXT_BLOCK,
				UserTemplate: TOPIC_TEMPLATE,
				Temperature:  0.45,
				SearchQuery:  "Short text example about: {input}",
				SearchLimit:  4,
			},
			{
				ID:           ToolTextValidation,
				Description:  "Proofreads a text for spelling, grammar, coherence and style.",
				SystemPrompt: "You are a proofreader. Review the text for spelling, grammar, coherence and style. First give a one or two line note with your observations, then a corrected version of the text.",
				UserTemplate: TOPIC_TEMPLATE,
				Temperature:  0,
			},
		},
	},
	{
		Course:      models.CourseScience,
		Name:        "science_agent",
		Prompt:      SCIENCE_AGENT_PROMPT,
		Temperature: 0.35,
		Tools: []ToolSpec{
			{
				ID:           ToolScientificExplanation,
				Description:  "Explains a scientific concept or natural process.",
				SystemPrompt: "You are a science and technology teacher. Explain scientific concepts or natural processes in a clear, rigorous and understandable way. Do not describe experiments here.",
				UserTemplate: TOPIC_TEMPLATE,
				Temperature:  0.2,
			},
			{
				ID:           ToolSuggestedExperiment,
				Description:  "Suggests a safe classroom experiment about a concept.",
				SystemPrompt: "You are a science teacher who suggests safe, instructive experiments for secondary-school students. Describe only one short, realistic experiment." + CONTEXT_BLOCK,
				UserTemplate: TOPIC_TEMPLATE,
				Temperature:  0.45,
				SearchQuery:  "Simple school experiment about {input}",
				SearchLimit:  4,
			},
			{
				ID:           ToolImpactAnalysis,
				Description:  "Analyzes the environmental and social impact of a topic.",
				SystemPrompt: "You are a sustainability specialist. Objectively analyze the positive and negative effects of the topic and propose one or two practical sustainable solutions.",
				UserTemplate: TOPIC_TEMPLATE,
				Temperature:  0.3,
			},
		},
	},
	{
		Course:      models.CourseWork,
		Name:        "work_agent",
		Prompt:      WORK_AGENT_PROMPT,
		Temperature: 0.4,
		Tools: []ToolSpec{
			{
				ID:           ToolProjectPlan,
				Description:  "Structures a school project with objectives, materials, steps and assessment.",
				SystemPrompt: "You are a vocational education teacher. Structure a clear educational project with objectives, materials, steps and assessment.",
				UserTemplate: TOPIC_TEMPLATE,
				Temperature:  0.25,
			},
			{
				ID:           ToolTechConcept,
				Description:  "Explains a technology concept with a simple practical example.",
				SystemPrompt: "You are a vocational education teacher specialized in technology. Explain the concept pedagogically and add a simple practical example." + CONTEXT_BLOCK,
				UserTemplate: TOPIC_TEMPLATE,
				Temperature:  0.3,
				SearchQuery:  "Technology concept explained for students: {input}",
				SearchLimit:  3,
			},
			{
				ID:           ToolProjectEvaluation,
				Description:  "Assesses the feasibility of a project and suggests improvements.",
				SystemPrompt: "You are a specialist in assessing vocational education projects. Analyze the feasibility of the project and give clear suggestions for improvement.",
				UserTemplate: TOPIC_TEMPLATE,
				Temperature:  0.2,
			},
		},
	},
	{
		Course:      models.CourseEnglish,
		Name:        "english_agent",
		Prompt:      ENGLISH_AGENT_PROMPT,
		Temperature: 0.4,
		Tools: []ToolSpec{
			{
				ID:           ToolGrammarExplanation,
				Description:  "Explains an English grammar topic with a short example.",
				SystemPrompt: "You are a secondary-school English teacher. Explain the requested topic simply and add a short example at the end. Do not use JSON.",
				UserTemplate: TOPIC_TEMPLATE,
				Temperature:  0.3,
			},
			{
				ID:           ToolVocabularyLookup,
				Description:  "Explains the meaning of an English word or expression in context.",
				SystemPrompt: "You are an English teacher who explains vocabulary in context. Summarize the main meanings and give an example sentence in English with its Spanish translation." + CONTEXT_BLOCK,
				UserTemplate: TOPIC_TEMPLATE,
				Temperature:  0.35,
				SearchQuery:  "meaning and usage of the English word {input}",
				SearchLimit:  3,
			},
			{
				ID:           ToolPracticeExercise,
				Description:  "Creates a short English practice exercise with its answer key.",
				SystemPrompt: "You are an English teacher. Create a short practice exercise and give the correct answer. Do not give theory.",
				UserTemplate: TOPIC_TEMPLATE,
				Temperature:  0.45,
			},
		},
	},
}

// Subjects returns the definitions of every subject agent.
func Subjects() []SubjectSpec {
	return append([]SubjectSpec(nil), subjects...)
}
