package ai

import (
	"regexp"
	"strings"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/usecase/prompt"
)

const ownerName = `[A-Z][a-z'][A-Za-z.'&-]*(?:\s+[A-Z][a-z'][A-Za-z.'&-]*){0,3}`

var (
	bulletPattern = regexp.MustCompile(`^\s*(?:[-*+•]|\d+[.)])\s+`)

	// Owner markers, tried in order against the end of an action item.
	// A bare name is one to four words, each capitalized and continuing in
	// lower case, so acronyms and dates like (EOD) or (Q3) stay in the task.
	ownerLabelPattern  = regexp.MustCompile(`(?i)\s*\(\s*(?:owner|assigned to|assignee)\s*:\s*([^()]+?)\s*\)\s*\.?\s*$`)
	ownerUnsetPattern  = regexp.MustCompile(`(?i)\s*\(\s*(n/a|na|none|unassigned|unknown|tbd|not specified)\s*\)\s*\.?\s*$`)
	ownerParenPattern  = regexp.MustCompile(`\s*\(\s*(` + ownerName + `)\s*\)\s*\.?\s*$`)
	ownerSuffixPattern = regexp.MustCompile(`\s+[—–-]\s+(` + ownerName + `)\s*\.?\s*$`)

	labelPattern = regexp.MustCompile(`(?i)^\s*(?:[-*+•]\s*)?\**\s*(?:overall\s+)?(sentiment|justification|answer|summary)\s*\**\s*:\s*\**\s*`)
)

// unsetOwners are owner values that mean nobody was named
var unsetOwners = map[string]struct{}{
	"n/a":           {},
	"na":            {},
	"none":          {},
	"unassigned":    {},
	"unknown":       {},
	"tbd":           {},
	"not specified": {},
}

// Parser turns raw model text into the typed fields of an insight bundle.
// Each method expects the output shape its prompt template asks for.
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// Summary trims the model text and drops a leading "Summary:" label
func (p *Parser) Summary(raw string) (string, error) {
	text := stripCodeFence(raw)
	if label, rest, ok := splitLabel(text); ok && label == "summary" {
		text = rest
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &entities.ModelOutputEmptyError{Task: entities.TaskSummary}
	}
	return text, nil
}

// Decisions splits a bulleted list into ordered decision strings.
// The sentinel line yields an empty list.
func (p *Parser) Decisions(raw string) ([]string, error) {
	return parseList(entities.TaskDecisions, raw)
}

// ActionItems splits a bulleted list and extracts the owner of each item
func (p *Parser) ActionItems(raw string) ([]entities.ActionItem, error) {
	lines, err := parseList(entities.TaskActionItems, raw)
	if err != nil {
		return nil, err
	}

	items := make([]entities.ActionItem, 0, len(lines))
	for _, line := range lines {
		task, owner := splitOwner(line)
		items = append(items, entities.ActionItem{Task: task, Owner: owner})
	}
	return items, nil
}

// Sentiment reads the label from a "Sentiment: X" line, or from the first
// word of the output, and the justification from a "Justification:" line or
// whatever text remains.
func (p *Parser) Sentiment(raw string) (entities.Sentiment, error) {
	lines := nonEmptyLines(stripCodeFence(raw))
	if len(lines) == 0 {
		return entities.Sentiment{}, &entities.ModelOutputEmptyError{Task: entities.TaskSentiment}
	}

	var labelText, justification string
	labelLine := -1
	rest := make([]string, 0, len(lines))
	for i, line := range lines {
		label, value, ok := splitLabel(line)
		switch {
		case ok && label == "sentiment" && labelLine < 0:
			labelText = value
			labelLine = i
		case ok && label == "justification" && justification == "":
			justification = value
		default:
			rest = append(rest, line)
		}
	}

	if labelLine < 0 {
		if len(rest) == 0 {
			return entities.Sentiment{}, &entities.UnparsableSentimentError{Raw: raw}
		}
		// First word of the first line carries the label; the remainder is justification
		first := rest[0]
		word, tail, _ := strings.Cut(strings.TrimSpace(first), " ")
		labelText = word
		rest[0] = strings.TrimLeft(strings.TrimSpace(tail), ":-–—,. ")
	}

	label, ok := entities.ParseSentimentLabel(firstWord(labelText))
	if !ok {
		return entities.Sentiment{}, &entities.UnparsableSentimentError{Raw: raw}
	}

	if justification == "" {
		justification = strings.Join(nonEmpty(rest), " ")
	}

	return entities.Sentiment{
		Label:         label,
		Justification: strings.TrimSpace(justification),
	}, nil
}

// Answer trims the model text and drops a leading "Answer:" label
func (p *Parser) Answer(raw string) (string, error) {
	text := stripCodeFence(raw)
	if label, rest, ok := splitLabel(text); ok && label == "answer" {
		text = strings.TrimSpace(rest)
	}
	if text == "" {
		return "", &entities.ModelOutputEmptyError{Task: entities.TaskAnswer}
	}
	return text, nil
}

// parseList returns the bullet items of raw in order. Headings (a line ending
// with a colon or starting with '#') are skipped. An indented non-bullet line
// continues the previous item; any other line is prose and makes the output
// malformed.
func parseList(task entities.ExtractionTask, raw string) ([]string, error) {
	body := stripCodeFence(raw)
	if strings.TrimSpace(body) == "" {
		return nil, &entities.ModelOutputEmptyError{Task: task}
	}

	items := make([]string, 0)
	sentinel := false
	for _, rawLine := range strings.Split(body, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}
		if isSentinel(line) {
			sentinel = true
			continue
		}
		if loc := bulletPattern.FindStringIndex(line); loc != nil {
			if item := strings.TrimSpace(line[loc[1]:]); item != "" {
				items = append(items, item)
			}
			continue
		}
		if isHeading(line) {
			continue
		}
		if len(items) > 0 && isIndented(rawLine) {
			items[len(items)-1] += " " + line
			continue
		}
		if len(items) == 0 {
			return nil, &entities.MalformedOutputError{Task: task, Reason: "expected a bulleted list", Raw: raw}
		}
		return nil, &entities.MalformedOutputError{Task: task, Reason: "unexpected text after list item", Raw: raw}
	}

	if len(items) == 0 && !sentinel {
		return nil, &entities.MalformedOutputError{Task: task, Reason: "no list items found", Raw: raw}
	}
	return items, nil
}

func isIndented(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}

// splitOwner separates a trailing owner marker from an action item
func splitOwner(item string) (string, *string) {
	for _, pattern := range []*regexp.Regexp{ownerLabelPattern, ownerUnsetPattern, ownerParenPattern, ownerSuffixPattern} {
		m := pattern.FindStringSubmatchIndex(item)
		if m == nil {
			continue
		}
		task := strings.TrimSpace(item[:m[0]])
		if task == "" {
			continue
		}
		owner := strings.Trim(strings.TrimSpace(item[m[2]:m[3]]), "*_")
		if _, unset := unsetOwners[strings.ToLower(owner)]; unset || owner == "" {
			return task, nil
		}
		return task, &owner
	}
	return strings.TrimSpace(item), nil
}

func isSentinel(line string) bool {
	line = bulletPattern.ReplaceAllString(line, "")
	line = strings.Trim(strings.TrimSpace(line), "*_")
	line = strings.TrimSuffix(line, ".")
	return strings.EqualFold(strings.TrimSpace(line), prompt.SentinelNone)
}

func isHeading(line string) bool {
	return strings.HasPrefix(line, "#") || strings.HasSuffix(strings.TrimRight(line, "*"), ":")
}

// splitLabel reports a leading "Label:" prefix, lower-cased, and the text after it
func splitLabel(line string) (string, string, bool) {
	m := labelPattern.FindStringSubmatchIndex(line)
	if m == nil {
		return "", line, false
	}
	label := strings.ToLower(line[m[2]:m[3]])
	return label, strings.TrimSpace(strings.Trim(line[m[1]:], "*")), true
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], "*_.,:;!\"'")
}

func nonEmptyLines(s string) []string {
	return nonEmpty(strings.Split(s, "\n"))
}

func nonEmpty(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// stripCodeFence removes a markdown code block wrapping the whole output
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```")
	if nl := strings.Index(content, "\n"); nl != -1 {
		content = content[nl+1:]
	} else {
		content = ""
	}
	if idx := strings.LastIndex(content, "```"); idx != -1 {
		content = content[:idx]
	}
	return strings.TrimSpace(content)
}
