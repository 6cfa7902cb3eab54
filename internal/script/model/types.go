package model

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Language is the script language understood by the remote script library.
type Language string

const (
	// LanguagePowerShell is a Windows PowerShell script (.ps1).
	LanguagePowerShell Language = "POWERSHELL"
	// LanguageShell is a POSIX shell script (.sh).
	LanguageShell Language = "SHELL"
	// LanguageBatch is a cmd.exe batch script (.bat, .cmd).
	LanguageBatch Language = "BATCH"
)

// languageByExtension maps lower-cased file extensions to script languages.
var languageByExtension = map[string]Language{
	".ps1": LanguagePowerShell,
	".sh":  LanguageShell,
	".bat": LanguageBatch,
	".cmd": LanguageBatch,
}

// LanguageForPath returns the script language for a file path.
// Returns ("", false) for extensions the script library does not support.
func LanguageForPath(path string) (Language, bool) {
	lang, ok := languageByExtension[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}

// ScriptNameForPath returns the script name derived from a file path:
// the base name without its extension.
func ScriptNameForPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// VarType is the declared type of a script parameter, in the remote
// platform's vocabulary.
type VarType string

const (
	// VarTypeInteger is a whole number parameter.
	VarTypeInteger VarType = "INTEGER"
	// VarTypeText is a free text parameter.
	VarTypeText VarType = "TEXT"
	// VarTypeCheckbox is a boolean parameter.
	VarTypeCheckbox VarType = "CHECKBOX"
	// VarTypeDecimal is a floating point parameter.
	VarTypeDecimal VarType = "DECIMAL"
	// VarTypeDateTime is a date/time parameter.
	VarTypeDateTime VarType = "DATETIME"
)

// VarSourceLiteral is the only variable source the sync tool produces.
const VarSourceLiteral = "LITERAL"

// NormalizeDefault canonicalises a raw default value for the given type so
// that values written differently by hand ("$True", "true", "'true'") compare
// equal. Values that do not parse as the type are returned trimmed and
// unquoted.
func NormalizeDefault(typ VarType, raw string) string {
	v := strings.TrimSpace(raw)
	v = strings.Trim(v, `'"`)

	switch typ {
	case VarTypeInteger:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return strconv.FormatInt(n, 10)
		}
	case VarTypeDecimal:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	case VarTypeCheckbox:
		switch strings.ToLower(strings.TrimPrefix(v, "$")) {
		case "true", "1":
			return "true"
		case "false", "0":
			return "false"
		}
	}
	return v
}

// NormalizeTags upper-cases, trims and de-duplicates a list of OS or
// architecture tags. Empty entries are dropped. The result is sorted.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
