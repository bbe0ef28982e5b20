package extractor

import "fmt"

// buildPrompt embeds one question block into the fixed extraction template.
func buildPrompt(text string) string {
	return fmt.Sprintf(`You convert one past-exam question into structured data.

Source text:
"""
%s
"""

Output ONLY a valid JSON object matching this exact schema:
{
  "title": "<short title for the question, at most 30 characters>",
  "question": "<the full question text>",
  "choices": [
    {"text": "<choice text without its label>", "is_correct": <true|false>}
  ],
  "explanation": "<explanation of the correct answer>",
  "difficulty": "<easy|medium|hard>"
}

Rules:
- Keep the choices in the order they appear in the source
- Strip choice labels such as "A.", "B)", "1." from the choice text
- Mark exactly one choice with "is_correct": true
- Write the explanation in the same language as the source
- Output ONLY the JSON, no markdown, no code fences, no explanations`, text)
}
