package extract

import (
	"regexp"
	"strings"

	"umlcmp/internal/model"
)

var (
	// [visibility] name [: type] [= default]
	attrRe       = regexp.MustCompile(`^[+\-#~]?\s*(\w+)\s*(?::\s*([^=]*?))?\s*(?:=.*)?$`)
	separatorRe  = regexp.MustCompile(`^[-=.]+$`)
	stereotypeRe = regexp.MustCompile(`^\{.*\}$`)
	leadingModRe = regexp.MustCompile(`^\{[^}]+\}\s*`)
	enumValueRe  = regexp.MustCompile(`^(\w+)\s*,?$`)
)

// modifierKeywords are declaration modifiers that the attribute grammar would
// otherwise mistake for attribute names.
var modifierKeywords = map[string]struct{}{
	"static":   {},
	"abstract": {},
	"final":    {},
	"const":    {},
	"readonly": {},
	"virtual":  {},
	"override": {},
}

// matchAttribute parses one line inside a class body.
// ok=false with skip=true means the line is recognized body furniture
// (separator, stereotype, method, annotation) and warrants no notice.
func matchAttribute(line string) (decl model.AttrDecl, ok, skip bool) {
	// Methods carry parentheses and are not attributes.
	if strings.ContainsRune(line, '(') {
		return model.AttrDecl{}, false, true
	}
	if separatorRe.MatchString(line) || stereotypeRe.MatchString(line) || strings.HasPrefix(line, "@") {
		return model.AttrDecl{}, false, true
	}
	line = strings.TrimSpace(leadingModRe.ReplaceAllString(line, ""))
	if line == "" {
		return model.AttrDecl{}, false, true
	}

	m := attrRe.FindStringSubmatch(line)
	if m == nil {
		return model.AttrDecl{}, false, false
	}
	name := m[1]
	if _, mod := modifierKeywords[strings.ToLower(name)]; mod {
		return model.AttrDecl{}, false, true
	}
	return model.AttrDecl{Name: name, Type: strings.TrimSpace(m[2])}, true, false
}

// matchEnumValue parses one line inside an enum body. Enumerated values are
// treated as attribute-like entries of the enum (methodology rule).
func matchEnumValue(line string) (model.AttrDecl, bool) {
	m := enumValueRe.FindStringSubmatch(line)
	if m == nil {
		return model.AttrDecl{}, false
	}
	return model.AttrDecl{Name: m[1]}, true
}
