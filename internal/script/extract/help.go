package extract

import (
	"regexp"
	"strings"
)

// helpBlockPattern matches a PowerShell block comment (<# ... #>).
var helpBlockPattern = regexp.MustCompile(`(?s)<#(.*?)#>`)

// helpKeywordPattern matches a comment-based help keyword line such as
// ".DESCRIPTION" or ".PARAMETER ServerId".
var helpKeywordPattern = regexp.MustCompile(`^\s*\.([A-Za-z]+)\b\s*(.*)$`)

// HelpSection is one keyword section of a comment-based help block.
type HelpSection struct {
	// Keyword is the upper-cased keyword without the leading dot.
	Keyword string
	// Argument is the first word after the keyword (e.g. the parameter name).
	// Only set for keywords that take an argument.
	Argument string
	// Text is the trimmed section body.
	Text string
}

// keywordsWithArgument lists help keywords whose first word is an argument
// rather than body text.
var keywordsWithArgument = map[string]bool{
	"PARAMETER": true,
}

// FindHelpBlock returns the body of the first <# ... #> block in content.
func FindHelpBlock(content string) (string, bool) {
	m := helpBlockPattern.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ParseHelpSections splits a help block body into keyword sections.
// Text before the first keyword is ignored. A section runs until the next
// keyword line or the end of the block.
func ParseHelpSections(help string) []HelpSection {
	var sections []HelpSection
	var current *HelpSection
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Text = strings.TrimSpace(strings.Join(body, "\n"))
		sections = append(sections, *current)
		current = nil
		body = nil
	}

	for _, line := range strings.Split(help, "\n") {
		line = strings.TrimRight(line, " \t")
		if m := helpKeywordPattern.FindStringSubmatch(line); m != nil {
			flush()
			keyword := strings.ToUpper(m[1])
			rest := m[2]
			current = &HelpSection{Keyword: keyword}
			if keywordsWithArgument[keyword] {
				fields := strings.Fields(rest)
				if len(fields) > 0 {
					current.Argument = fields[0]
					rest = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), fields[0]))
				} else {
					rest = ""
				}
			}
			if rest != "" {
				body = append(body, rest)
			}
			continue
		}
		if current != nil {
			body = append(body, line)
		}
	}
	flush()

	return sections
}

// helpInfo is the subset of comment-based help used for script metadata.
type helpInfo struct {
	description string
	// params maps lower-cased parameter names to their descriptions.
	params map[string]string
}

// parseHelp extracts the description and parameter descriptions from the
// first help block in content. A missing block yields empty values.
func parseHelp(content string) helpInfo {
	info := helpInfo{params: make(map[string]string)}

	block, ok := FindHelpBlock(content)
	if !ok {
		return info
	}

	for _, s := range ParseHelpSections(block) {
		switch s.Keyword {
		case "DESCRIPTION":
			if info.description == "" {
				info.description = s.Text
			}
		case "PARAMETER":
			if s.Argument == "" {
				continue
			}
			key := strings.ToLower(s.Argument)
			if _, exists := info.params[key]; !exists {
				info.params[key] = s.Text
			}
		}
	}

	return info
}
