package extract

import (
	"regexp"
	"strings"

	"github.com/tacogips/rmmkit/internal/script/model"
)

// paramKeywordPattern matches the opening of a PowerShell param block.
var paramKeywordPattern = regexp.MustCompile(`(?i)\bparam\s*\(`)

// variablePattern matches a variable name at the start of a declaration.
var variablePattern = regexp.MustCompile(`^\$(\w+)`)

// typeNamePattern matches a bracket group that is a type literal
// (e.g. "int", "System.String", "string[]") rather than an attribute.
var typeNamePattern = regexp.MustCompile(`^[A-Za-z_][\w.]*(\[\])?$`)

// mandatoryPattern matches a Mandatory argument inside a [Parameter()] attribute.
var mandatoryPattern = regexp.MustCompile(`(?i)\bMandatory\b(?:\s*=\s*\$?(\w+))?`)

// typeTable maps lower-cased PowerShell type names to parameter types.
var typeTable = map[string]model.VarType{
	"int":      model.VarTypeInteger,
	"int16":    model.VarTypeInteger,
	"int32":    model.VarTypeInteger,
	"int64":    model.VarTypeInteger,
	"long":     model.VarTypeInteger,
	"uint32":   model.VarTypeInteger,
	"byte":     model.VarTypeInteger,
	"string":   model.VarTypeText,
	"bool":     model.VarTypeCheckbox,
	"boolean":  model.VarTypeCheckbox,
	"switch":   model.VarTypeCheckbox,
	"decimal":  model.VarTypeDecimal,
	"double":   model.VarTypeDecimal,
	"float":    model.VarTypeDecimal,
	"single":   model.VarTypeDecimal,
	"datetime": model.VarTypeDateTime,
}

// MapType maps a PowerShell type annotation to a parameter type.
// Unknown or empty annotations map to TEXT.
func MapType(annotation string) model.VarType {
	t := strings.ToLower(strings.TrimSpace(annotation))
	t = strings.TrimSuffix(t, "[]")
	t = strings.TrimPrefix(t, "system.")
	t = strings.TrimPrefix(t, "management.automation.")
	t = strings.TrimSuffix(t, "parameter")
	if vt, ok := typeTable[t]; ok {
		return vt
	}
	return model.VarTypeText
}

// FindParamBlock returns the body of the first param(...) block in content,
// honouring nested parentheses and quoted strings. An unterminated block
// yields everything after the opening parenthesis.
func FindParamBlock(content string) (string, bool) {
	loc := paramKeywordPattern.FindStringIndex(content)
	if loc == nil {
		return "", false
	}

	start := loc[1]
	depth := 1
	var quote byte
	for i := start; i < len(content); i++ {
		c := content[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '#':
			// Skip line comments so parentheses inside them are not counted.
			if nl := strings.IndexByte(content[i:], '\n'); nl >= 0 {
				i += nl
			} else {
				i = len(content)
			}
		case '\'', '"':
			quote = c
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return content[start:i], true
			}
		}
	}
	return content[start:], true
}

// declaration is one raw parameter declaration from a param block.
type declaration struct {
	attributes []string
	typeName   string
	name       string
	rawDefault *string
}

// splitDeclarations splits a param block body at top-level commas.
func splitDeclarations(body string) []string {
	var parts []string
	var buf strings.Builder
	depth := 0
	var quote byte

	for i := 0; i < len(body); i++ {
		c := body[i]
		if quote != 0 {
			buf.WriteByte(c)
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, buf.String())
				buf.Reset()
				continue
			}
		}
		buf.WriteByte(c)
	}
	parts = append(parts, buf.String())

	return parts
}

// stripComments removes '#' line comments that are not inside quotes.
func stripComments(s string) string {
	var buf strings.Builder
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			buf.WriteByte(c)
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '#':
			nl := strings.IndexByte(s[i:], '\n')
			if nl < 0 {
				return buf.String()
			}
			i += nl - 1
			continue
		}
		buf.WriteByte(c)
	}
	return buf.String()
}

// readBracketGroup reads a balanced [ ... ] group at the start of s and
// returns its inner text and the remainder.
func readBracketGroup(s string) (inner, rest string, ok bool) {
	if !strings.HasPrefix(s, "[") {
		return "", s, false
	}
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[1:i], s[i+1:], true
			}
		}
	}
	return "", s, false
}

// parseDeclaration parses "[attr]... [type] $Name = default".
// Returns false when no variable name can be found.
func parseDeclaration(raw string) (declaration, bool) {
	var d declaration
	s := strings.TrimSpace(raw)

	for strings.HasPrefix(s, "[") {
		inner, rest, ok := readBracketGroup(s)
		if !ok {
			break
		}
		inner = strings.TrimSpace(inner)
		if typeNamePattern.MatchString(inner) {
			d.typeName = inner
		} else {
			d.attributes = append(d.attributes, inner)
		}
		s = strings.TrimSpace(rest)
	}

	m := variablePattern.FindStringSubmatch(s)
	if m == nil {
		return d, false
	}
	d.name = m[1]
	s = strings.TrimSpace(s[len(m[0]):])

	if strings.HasPrefix(s, "=") {
		def := strings.TrimSpace(strings.TrimPrefix(s, "="))
		if def != "" {
			d.rawDefault = &def
		}
	}

	return d, true
}

// isMandatory reports whether any attribute declares the parameter mandatory.
func isMandatory(attributes []string) bool {
	for _, a := range attributes {
		for _, m := range mandatoryPattern.FindAllStringSubmatch(a, -1) {
			switch strings.ToLower(m[1]) {
			case "", "true", "1":
				return true
			}
		}
	}
	return false
}

// parseParams extracts parameter specs from the first param block in
// content. descriptions maps lower-cased names to help text.
func parseParams(content string, descriptions map[string]string) []model.ParameterSpec {
	body, ok := FindParamBlock(content)
	if !ok {
		return nil
	}

	var params []model.ParameterSpec
	for _, raw := range splitDeclarations(stripComments(body)) {
		d, ok := parseDeclaration(raw)
		if !ok {
			continue
		}

		typ := MapType(d.typeName)
		p := model.ParameterSpec{
			Name:        d.name,
			Type:        typ,
			Description: descriptions[strings.ToLower(d.name)],
			Required:    isMandatory(d.attributes),
			Source:      model.VarSourceLiteral,
		}
		if d.rawDefault != nil {
			v := model.NormalizeDefault(typ, *d.rawDefault)
			p.Default = &v
		}
		params = append(params, p)
	}

	return params
}
