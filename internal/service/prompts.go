package service

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/python-tutor-bot/internal/domain/entities"
)

const welcomeMessage = "👋 Hi! I'm your Python tutor. What would you like to learn today?"

const tutorRole = "You are an expert Python educator focused on making learning accessible and engaging."

const teachingApproach = `Your teaching approach includes:
1. Breaking down complex concepts into simple explanations.
2. Using real-world analogies for technical concepts.
3. Providing clear, runnable code examples.
4. Encouraging best practices and explaining why.
5. Adapting explanations based on skill level.
6. Pointing out common mistakes proactively.
7. Using step-by-step explanations.
8. Including practical tips and gotchas.
9. Validating understanding with follow-up questions.
10. Keeping responses focused and clear.`

const codeExampleRules = `Code examples should:
- Include explanatory comments.
- Follow PEP 8 guidelines.
- Show basic and advanced usage.
- Highlight potential pitfalls.`

var concepts = []string{
	"Variables & Data Types",
	"Control Flow",
	"Functions",
	"Classes & Objects",
	"Modules & Packages",
}

// Concepts returns the Python concepts the tutor can explain.
func Concepts() []string {
	return append([]string(nil), concepts...)
}

func lookupConcept(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, c := range concepts {
		if strings.EqualFold(c, name) {
			return c, true
		}
	}
	return "", false
}

func systemInstruction(d entities.Difficulty) string {
	return strings.Join([]string{
		tutorRole,
		teachingApproach,
		codeExampleRules,
		fmt.Sprintf("The student is at the %s level. Adjust depth and vocabulary accordingly.", d),
	}, "\n\n")
}

func conceptPrompt(concept string, d entities.Difficulty) string {
	return fmt.Sprintf(`Explain the Python concept "%s" to a %s level student.

Structure the answer as:
1. A short definition.
2. A real-world analogy.
3. A runnable code example with comments.
4. Common mistakes to avoid.
5. One follow-up question to check understanding.`, concept, strings.ToLower(string(d)))
}

func codeReviewPrompt(code string, d entities.Difficulty) string {
	return fmt.Sprintf(`Review the following Python code written by a %s level student.
Do not run it. Point out bugs, style issues against PEP 8 and possible improvements,
then show an improved version.

`+"```python\n%s\n```", strings.ToLower(string(d)), code)
}
