package llm

import (
	"fmt"
	"strings"
	"time"
)

// Tone is an optional rewording style applied to task names and descriptions.
type Tone string

const (
	ToneNone         Tone = ""
	ToneProfessional Tone = "professional"
	ToneExecutive    Tone = "executive"
	ToneFriendly     Tone = "friendly"
	ToneConcise      Tone = "concise"
)

var toneRules = map[Tone]string{
	ToneProfessional: "Rephrase task_name and description in clear, formal business language. Use action-oriented titles. Avoid slang or casual phrasing.",
	ToneExecutive:    "Rephrase task_name and description in high-level strategic language. Frame tasks as outcomes and decisions. Use concise executive-level phrasing.",
	ToneFriendly:     "Rephrase task_name and description in warm, approachable language. Keep it casual but clear. Use an encouraging and collaborative tone.",
	ToneConcise:      "Rephrase task_name and description using the fewest words possible. Strip filler words, articles, and unnecessary detail. Keep only the essential action and subject.",
}

// ParseTone maps a request value onto a known tone. Anything unrecognised,
// including "none", means no rewording.
func ParseTone(s string) Tone {
	t := Tone(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := toneRules[t]; ok {
		return t
	}
	return ToneNone
}

const promptHeader = `You are a task extraction assistant. Your job is to parse free-form human
language text and extract structured task information.

Today's date is %[1]s.

RULES:
1. Extract EVERY distinct task mentioned in the text.
2. For each task, extract these fields:
   - task_name: A concise action-oriented title (e.g., "Finish quarterly report")
   - description: Additional context if available, otherwise null.
     Do NOT put custom field values (like "FieldName: value" pairs) here,
     use the custom_fields object instead.
   - owner: The person responsible (first name, full name, or role as given)
   - email: Email address if mentioned, otherwise null
   - start_date: In YYYY-MM-DD format. If "today" use %[1]s. If not mentioned, set to null.
   - due_date: In YYYY-MM-DD format. Interpret relative dates like "next week"
     (= next Monday), "by Friday" (= this coming Friday), "end of month", etc.
     relative to %[1]s. If not mentioned, set to null.
   - priority: Infer from language cues. Words like "urgent", "ASAP", "critical"
     = "High" or "Critical". "when you get a chance", "low priority" = "Low".
     Default to "Medium" if no cues.
3. If the text mentions multiple people with multiple tasks, create separate
   task entries for each.
4. If a single person has multiple tasks, create separate entries for each task.
5. Do NOT invent information not present in the text.
6. For ambiguous dates, make your best reasonable interpretation and note the
   assumption in the description field.
`

// BuildSystemPrompt renders the instructions sent ahead of the user's text.
func BuildSystemPrompt(today time.Time, fields []Field, tone Tone) string {
	date := today.Format("2006-01-02")

	var b strings.Builder
	fmt.Fprintf(&b, promptHeader, date)

	rule := 7
	if len(fields) > 0 {
		fmt.Fprintf(&b, "%d. IMPORTANT: Extract these custom fields when their values appear in the text:\n", rule)
		for _, f := range fields {
			fmt.Fprintf(&b, "   - %s (%s)", f.DisplayName, f.Type)
			if len(f.Options) > 0 {
				fmt.Fprintf(&b, ", valid options: %s", strings.Join(f.Options, ", "))
			}
			fmt.Fprintf(&b, ": Extract into custom_fields.%s\n", f.Key)
		}
		b.WriteString("   Look for patterns like \"FieldName: value\", \"FieldName = value\", or\n")
		b.WriteString("   \"FieldName is value\". These MUST go into custom_fields, NOT description.\n")
		b.WriteString("   If none of these custom fields are mentioned, set custom_fields to null.\n")
		b.WriteString("   Only include a custom field in the object if its value is explicitly stated.\n")
		rule++
	}

	if text, ok := toneRules[tone]; ok {
		fmt.Fprintf(&b, "%d. REPHRASING: %s\n", rule, text)
		b.WriteString("   Keep all factual information (names, dates, emails) unchanged and\n")
		b.WriteString("   only rephrase the wording of task_name and description.\n")
	}

	b.WriteString(`
Respond with ONLY valid JSON matching this exact schema:
{
  "tasks": [
    {
      "task_name": "string",
      "description": "string or null",
      "owner": "string or null",
      "email": "string or null",
      "start_date": "YYYY-MM-DD or null",
      "due_date": "YYYY-MM-DD or null",
      "priority": "Low | Medium | High | Critical"`)

	if len(fields) > 0 {
		keys := make([]string, len(fields))
		for i, f := range fields {
			keys[i] = fmt.Sprintf("%q: \"value\"", f.Key)
		}
		fmt.Fprintf(&b, ",\n      \"custom_fields\": {%s} or null", strings.Join(keys, ", "))
	}

	b.WriteString("\n    }\n  ]\n}")
	return b.String()
}
