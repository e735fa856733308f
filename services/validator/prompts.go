package validator

const (
	CLASSIFIER_PROMPT = `You are an analyzer of secondary-school questions.

Only consider these courses: %s.

Analyze the following question and answer with exactly one course from the list above.
Return only the course name, with no punctuation and no explanation.

Question: %s`

	REJECTION_TEMPLATE = `The question does not belong to the course **%s**.
It was classified as **%s**.
Please rephrase your question within the context of **%s**.`

	INSTRUCTION_TEMPLATE = `[AGENT_COMMAND]
ANALYZE_TOPIC: %s
EDUCATIONAL_CONTEXT: %s
GRADE: %s
ACTION: Generate a clear, precise pedagogical answer.`
)
