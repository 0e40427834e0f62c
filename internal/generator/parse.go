package generator

import "strings"

// ParseSubjectBody splits raw model output into (subject, body).
//
// Two shapes are accepted:
//
//	Subject: Something
//
//	body text here
//
// or, when the model drifts from the format, the first non-blank line is
// taken as the subject and everything after it as the body. Deliberately
// lenient: the model is the unreliable boundary, and degraded output beats
// a rejected call. Empty or whitespace-only input yields ("", "").
func ParseSubjectBody(output string) (string, string) {
	text := strings.TrimSpace(output)
	if text == "" {
		return "", ""
	}

	rawLines := strings.Split(text, "\n")
	lines := make([]string, len(rawLines))
	for i, line := range rawLines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}

	var subject string
	var bodyLines []string

	if strings.HasPrefix(strings.ToLower(lines[0]), "subject:") {
		_, after, _ := strings.Cut(lines[0], ":")
		subject = strings.TrimSpace(after)
		bodyLines = lines[1:]
	} else {
		for i, line := range lines {
			if strings.TrimSpace(line) != "" {
				subject = strings.TrimSpace(line)
				bodyLines = lines[i+1:]
				break
			}
		}
	}

	body := strings.TrimLeft(strings.Join(bodyLines, "\n"), "\n")
	return subject, body
}
