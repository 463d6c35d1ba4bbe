package chat

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"draftboard-engine/internal/domain"
	"draftboard-engine/internal/records"
)

// DefaultMaxContextChars caps the CSV rows sent with a question.
const DefaultMaxContextChars = 10000

const systemPrompt = `You are an expert MLB draft data assistant.
You answer questions using the provided draft data (as CSV rows).
When asked a question, filter and analyze the data as needed and give a clear, concise answer.
When the user asks a follow-up, use the previous context.`

// Prompt is what gets sent to the model.
type Prompt struct {
	System    string
	User      string
	Rows      int
	Truncated bool
}

// BuildPrompt renders picks as CSV, cuts it to maxChars characters and
// appends the question. maxChars <= 0 sends no rows.
func BuildPrompt(question string, picks []domain.Pick, maxChars int) Prompt {
	data, truncated := contextCSV(picks, maxChars)

	var b strings.Builder
	b.WriteString("Here is the filtered draft data (CSV format):\n")
	b.WriteString(data)
	b.WriteString("\n\nUser question: ")
	b.WriteString(strings.TrimSpace(question))
	b.WriteString("\n")

	return Prompt{
		System:    systemPrompt,
		User:      b.String(),
		Rows:      len(picks),
		Truncated: truncated,
	}
}

func contextCSV(picks []domain.Pick, maxChars int) (string, bool) {
	if len(picks) == 0 || maxChars <= 0 {
		return "", len(picks) > 0
	}
	var buf bytes.Buffer
	if err := records.WriteCSV(&buf, picks); err != nil {
		return "", true
	}
	s := strings.TrimRight(buf.String(), "\n")
	if utf8.RuneCountInString(s) <= maxChars {
		return s, false
	}
	return truncateRunes(s, maxChars), true
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
