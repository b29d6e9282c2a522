package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]+`)

// RemoveAccents removes accents from a string, converting accented characters to their base forms
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// SplitWords splits a string into words, handling camelCase, PascalCase, snake_case, kebab-case
// and dotted names such as "@odata.type".
func SplitWords(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	s = RemoveAccents(s)

	var words []string
	for _, part := range nonAlnum.Split(s, -1) {
		if part == "" {
			continue
		}
		words = append(words, SplitCamelCase(part)...)
	}
	return words
}

// SplitCamelCase splits a camelCase or PascalCase string into words
func SplitCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var parts []string
	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		isNewWord := false
		if i > 0 && isUppercase(r) {
			if !isUppercase(runes[i-1]) {
				isNewWord = true
			} else if i < len(runes)-1 && isLowercase(runes[i+1]) {
				// "XMLHttp" -> "XML", "Http"
				isNewWord = true
			}
		}

		if isNewWord && current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}

func isUppercase(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func isLowercase(r rune) bool {
	return r >= 'a' && r <= 'z'
}

// ToPascalCase converts a string to PascalCase, normalising the case of every word
func ToPascalCase(s string) string {
	words := SplitWords(s)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	for _, w := range words {
		b.WriteString(strings.ToUpper(w[:1]))
		if len(w) > 1 {
			b.WriteString(strings.ToLower(w[1:]))
		}
	}
	return b.String()
}

// ToCamelCase converts a string to camelCase
func ToCamelCase(s string) string {
	return ToFirstCharacterLowerCase(ToPascalCase(s))
}

// ToSnakeCase converts a string to snake_case
func ToSnakeCase(s string) string {
	words := SplitWords(s)
	if len(words) == 0 {
		return ""
	}
	for i := range words {
		words[i] = strings.ToLower(words[i])
	}
	return strings.Join(words, "_")
}

// ToPascalIdentifier turns an API name into a PascalCase identifier while keeping the
// casing inside each word, so "accountEnabled" becomes "AccountEnabled" and
// "@odata.type" becomes "OdataType".
func ToPascalIdentifier(s string) string {
	var b strings.Builder
	for _, part := range nonAlnum.Split(RemoveAccents(s), -1) {
		b.WriteString(ToFirstCharacterUpperCase(part))
	}
	return b.String()
}

// ToCamelIdentifier is the camelCase counterpart of ToPascalIdentifier
func ToCamelIdentifier(s string) string {
	return ToFirstCharacterLowerCase(ToPascalIdentifier(s))
}

// TrimNamespace drops a dotted namespace prefix from a type or operation name:
// "microsoft.graph.user" -> "user", "microsoft.graph.delta()" -> "delta()".
func TrimNamespace(s string) string {
	head, tail := s, ""
	if i := strings.Index(s, "("); i >= 0 {
		head, tail = s[:i], s[i:]
	}
	if i := strings.LastIndex(head, "."); i >= 0 {
		head = head[i+1:]
	}
	return head + tail
}

// ToFirstCharacterLowerCase lower-cases the first character only
func ToFirstCharacterLowerCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// ToFirstCharacterUpperCase upper-cases the first character only
func ToFirstCharacterUpperCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// ToFirstCharacterUpperCaseAfterCharacter removes every occurrence of sep and upper-cases
// the character that followed it: ("get_user_by_id", '_') -> "getUserById".
func ToFirstCharacterUpperCaseAfterCharacter(s string, sep rune) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	upper := false
	for _, r := range s {
		if r == sep {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// EscapeQuotes escapes double quotes with a backslash
func EscapeQuotes(s string) string {
	return EscapeQuotesInLiteral(s, `\"`, "'")
}

// EscapeQuotesInLiteral replaces double and single quotes with the given escape sequences
func EscapeQuotesInLiteral(s, doubleQuoteEscape, singleQuoteEscape string) string {
	s = strings.ReplaceAll(s, `"`, doubleQuoteEscape)
	return strings.ReplaceAll(s, `'`, singleQuoteEscape)
}

// AddQuotes wraps s in double quotes unless it is empty or already quoted
func AddQuotes(s string) string {
	if s == "" || strings.HasPrefix(s, `"`) {
		return s
	}
	return `"` + s + `"`
}

// IndexSuffix appends position to s when position is greater than zero, giving
// unique variable names for repeated constructions: ("recipient", 0) -> "recipient",
// ("recipient", 2) -> "recipient2".
func IndexSuffix(s string, position int) string {
	if s == "" || position <= 0 {
		return s
	}
	return fmt.Sprintf("%s%d", s, position)
}

var controlEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

// EscapeStringLiteral escapes s for use inside a double-quoted literal in C-family
// languages and Python
func EscapeStringLiteral(s string) string {
	return EscapeQuotes(controlEscaper.Replace(s))
}
