// Package extract derives script metadata from script source text.
//
// Extraction is best-effort pattern matching over author-written comments:
// anything that does not match yields an empty or default value, never an
// error. The script is never executed or syntax-checked.
package extract

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/tacogips/rmmkit/internal/script/model"
)

// Tag comment lines. Both "# OS: ..." and the "# NINJA_OS: ..." spelling are
// accepted, as are batch comment prefixes (REM, ::).
var (
	osTagPattern   = regexp.MustCompile(`(?im)^[ \t]*(?:#|REM\b|::)[ \t]*(?:NINJA_)?OS[ \t]*:[ \t]*(.*?)[ \t]*$`)
	archTagPattern = regexp.MustCompile(`(?im)^[ \t]*(?:#|REM\b|::)[ \t]*(?:NINJA_)?ARCH[ \t]*:[ \t]*(.*?)[ \t]*$`)
)

// Extract builds script metadata from a file path and its content.
// The path only determines the script name and language.
func Extract(path, content string) model.ScriptMetadata {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	lang, _ := model.LanguageForPath(path)
	meta := model.ScriptMetadata{
		Name:             model.ScriptNameForPath(path),
		Path:             path,
		Language:         lang,
		Parameters:       []model.ParameterSpec{},
		OperatingSystems: ParseTagLine(osTagPattern, content),
		Architectures:    ParseTagLine(archTagPattern, content),
		Text:             content,
	}

	if lang == model.LanguagePowerShell {
		help := parseHelp(content)
		meta.Description = help.description

		code := helpBlockPattern.ReplaceAllString(content, "")
		if params := parseParams(code, help.params); params != nil {
			meta.Parameters = params
		}
	}

	return meta
}

// ExtractFile reads a script file and extracts its metadata.
// Only reading the file can fail; extraction itself never does.
func ExtractFile(path string) (*model.ScriptMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}
	meta := Extract(path, string(data))
	return &meta, nil
}

// ParseTagLine returns the comma-separated values of the first line matching
// pattern, normalized. No match yields an empty, non-nil slice.
func ParseTagLine(pattern *regexp.Regexp, content string) []string {
	m := pattern.FindStringSubmatch(content)
	if m == nil {
		return []string{}
	}
	return model.NormalizeTags(strings.Split(m[1], ","))
}
