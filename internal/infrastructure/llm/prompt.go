// Package llm holds what the content-synthesis clients share: the slide
// prompt and the classification of transport failures.
package llm

import "strings"

const slidesPromptHeader = `You are an expert presentation designer and educator. Analyze the following textbook content and create presentation slides.

CONTENT TO ANALYZE:
"""
`

const slidesPromptRules = `
"""

CRITICAL RULES:
1. Create as many slides as needed to cover ALL the content. There is no limit on the number of slides.
2. Each slide covers ONE clear concept or topic.
3. Each slide needs a concise, descriptive title.
4. Each slide has 3-5 bullet points.
5. Bullet points must be self-explanatory to someone who has never read the source material.
6. Avoid cryptic abbreviations or shorthand that requires prior knowledge.
7. Use simple, clear language while maintaining accuracy.
8. Define technical terms when they appear.
9. Include speaker notes with additional context or explanation.
10. Structure the slides in a logical learning progression.
11. Do not skip or summarize content away.

RESPONSE FORMAT:
Return ONLY a valid JSON array of slide objects. No markdown, no code blocks, no extra text.
Each slide object must have:
- "title": string
- "bullets": array of strings
- "speakerNotes": string

Example:
[
  {
    "title": "Introduction to Topic",
    "bullets": ["First key point explained clearly", "Second important concept", "Third supporting detail"],
    "speakerNotes": "This slide introduces..."
  }
]`

// BuildSlidesPrompt embeds content in the slide-generation instructions.
func BuildSlidesPrompt(content string) string {
	var b strings.Builder
	b.Grow(len(slidesPromptHeader) + len(content) + len(slidesPromptRules))
	b.WriteString(slidesPromptHeader)
	b.WriteString(content)
	b.WriteString(slidesPromptRules)
	return b.String()
}
