package feedback

import (
	"fmt"

	"github.com/codereview/backend/internal/models"
)

// ReviewSystemPrompt frames the reviewer role. The response format is only a
// request — the extractor must cope with whatever comes back.
func ReviewSystemPrompt(language models.Language) string {
	return fmt.Sprintf(`You are an expert %s code reviewer. You evaluate code quality precisely and consistently, and you always follow the requested response format as closely as possible.`, language)
}

// BuildReviewPrompt asks the feedback source to score the six rubric
// categories plus advisory dimensions, and to list concrete recommendations.
func BuildReviewPrompt(code string, language models.Language, context string) string {
	if context == "" {
		context = "No specific context provided"
	}

	return fmt.Sprintf(`Analyze the provided %s code for:
1. Code Structure and Organization
2. Naming Conventions
3. Error Handling
4. Performance Optimization
5. Security Practices
6. Documentation and Comments
7. Best Practices

Provide:
- Detailed feedback with examples
- Specific recommendations
- A numeric score out of 100 for each of these categories, one per line in
  the exact form "Category: score":
  Naming, Modularity, Comments, Formatting, Reusability, Best_practices
- At least 3 recommendations for improvement, each on its own line starting
  with "- "

Code to review:
`+"```%s\n%s\n```"+`

Context: %s`, language, language, code, context)
}
