package dotenv

import (
	"regexp"
	"runtime"
	"strings"
	"unicode"
)

var (
	// numericKeyRegex matches decimal, float and exponent literals ("42", "-1.5", ".5e3").
	numericKeyRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

	// quotedValueRegex holds one pattern per quote character. The quoted span may
	// contain backslash escapes (\\, \" or \' and the literal \n) and line
	// breaks; anything after the closing quote on that line is dropped.
	quotedValueRegex = map[byte]*regexp.Regexp{
		'"':  regexp.MustCompile(`(?m)^"((?:[^"\\]|\\.)*)".*$`),
		'\'': regexp.MustCompile(`(?m)^'((?:[^'\\]|\\.)*)'.*$`),
	}

	// nestedVarRegex matches ${NAME} references.
	nestedVarRegex = regexp.MustCompile(`(?i)\$\{([_a-z\d]+)\}`)
)

// lineBreak replaces literal "\n" sequences in values.
var lineBreak = "\n"

func init() {
	if runtime.GOOS == "windows" {
		lineBreak = "\r\n"
	}
}

// Entry is a key/value pair parsed from a single line, before value resolution.
type Entry struct {
	Key      string
	Value    string
	HasValue bool // false for a bare "KEY" line without "="
}

// LookupFunc returns the current value of a variable, used for ${NAME} substitution.
type LookupFunc func(key string) (string, bool)

// ParseLine splits a raw line into an Entry. The second return value is false
// when the line should be skipped: blank lines, comments, and lines whose key is
// empty, numeric or contains whitespace.
func ParseLine(line string) (Entry, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Entry{}, false
	}

	key, value, hasValue := strings.Cut(line, "=")
	key = strings.TrimSpace(key)
	if !ValidKey(key) {
		return Entry{}, false
	}

	return Entry{
		Key:      key,
		Value:    strings.TrimSpace(value),
		HasValue: hasValue,
	}, true
}

// ValidKey reports whether key may be stored: non-empty, not a number and free of whitespace.
func ValidKey(key string) bool {
	return invalidKeyReason(key) == ""
}

// invalidKeyReason explains why key is rejected, or returns "" for a valid key.
func invalidKeyReason(key string) string {
	switch {
	case key == "":
		return "empty key"
	case numericKeyRegex.MatchString(key):
		return "numeric key"
	case strings.ContainsFunc(key, unicode.IsSpace):
		return "whitespace in key"
	}
	return ""
}

// ResolveValue turns a raw value into the string that gets stored.
//
// Quoted values lose their surrounding quotes and everything after the closing
// quote; escaped quotes and backslashes inside are unescaped. Unquoted values are
// cut at the first unescaped '#'. In both cases the two-character sequence `\n`
// becomes a line break, unless inside quotes it follows an escaped backslash.
// ${NAME} references are then replaced using lookup, with unknown names
// resolving to "". Substitution is a single pass.
func ResolveValue(raw string, lookup LookupFunc) string {
	value := raw

	if re, ok := quotedValueRegex[firstByte(raw)]; ok && re.MatchString(raw) {
		q := string(raw[0])
		value = re.ReplaceAllString(value, "${1}")
		value = unescapeQuoted(q).Replace(value)
	} else {
		if !ok {
			value = stripInlineComment(value)
		}
		value = strings.ReplaceAll(value, `\n`, lineBreak)
	}

	if strings.Contains(value, "$") {
		value = nestedVarRegex.ReplaceAllStringFunc(value, func(m string) string {
			name := nestedVarRegex.FindStringSubmatch(m)[1]
			if lookup == nil {
				return ""
			}
			v, _ := lookup(name)
			return v
		})
	}

	return value
}

// unescapeQuoted handles the escapes of a quoted span in a single pass, so an
// escaped backslash never combines with the character after it.
func unescapeQuoted(q string) *strings.Replacer {
	return strings.NewReplacer(
		`\\`, `\`,
		`\`+q, q,
		`\n`, lineBreak,
	)
}

// stripInlineComment drops everything from the first unescaped '#' and trims
// the remainder. Escaped "\#" sequences are kept as a literal '#', "\\" pairs
// are copied unchanged.
func stripInlineComment(value string) string {
	var b strings.Builder
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c == '\\' && i+1 < len(value) {
			switch value[i+1] {
			case '\\':
				b.WriteString(`\\`)
				i++
				continue
			case '#':
				b.WriteByte('#')
				i++
				continue
			}
		}
		if c == '#' {
			break
		}
		b.WriteByte(c)
	}
	return strings.TrimSpace(b.String())
}

func firstByte(s string) byte {
	if s == "" {
		return 0
	}
	return s[0]
}
