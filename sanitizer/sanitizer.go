// FILE: lixenwraith/flatlog/sanitizer/sanitizer.go
// Package sanitizer provides a fluent and composable interface for sanitizing
// strings based on configurable rules using bitwise filter flags and transforms,
// and for rendering arbitrary values as single-line text.
package sanitizer

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/davecgh/go-spew/spew"
)

// Filter flags for character matching
const (
	FilterNonPrintable uint64 = 1 << iota // Matches runes not classified as printable by strconv.IsPrint
	FilterControl                         // Matches control characters (unicode.IsControl)
	FilterWhitespace                      // Matches whitespace characters (unicode.IsSpace)
	FilterLineBreak                       // Matches '\n' and '\r'
)

// Transform flags for character transformation
const (
	TransformStrip     uint64 = 1 << iota // Removes the character
	TransformHexEncode                    // Encodes the character's UTF-8 bytes as "<XXYY>"
	TransformSpace                        // Replaces the character with a single space
)

// PolicyPreset defines pre-configured sanitization policies
type PolicyPreset string

const (
	PolicyRaw    PolicyPreset = "raw"    // Raw is a no-op (passthrough)
	PolicyTxt    PolicyPreset = "txt"    // Policy for text written to log files
	PolicyInline PolicyPreset = "inline" // Flattens line breaks, keeps other characters
)

// rule represents a single sanitization rule
type rule struct {
	filter    uint64
	transform uint64
}

// policyRules contains pre-configured rules for each policy
var policyRules = map[PolicyPreset][]rule{
	PolicyRaw:    {},
	PolicyTxt:    {{filter: FilterNonPrintable, transform: TransformHexEncode}},
	PolicyInline: {{filter: FilterLineBreak, transform: TransformSpace}},
}

// filterCheckers maps individual filter flags to their check functions
var filterCheckers = []struct {
	flag  uint64
	check func(rune) bool
}{
	{FilterNonPrintable, func(r rune) bool { return !strconv.IsPrint(r) }},
	{FilterControl, unicode.IsControl},
	{FilterWhitespace, unicode.IsSpace},
	{FilterLineBreak, func(r rune) bool { return r == '\n' || r == '\r' }},
}

// Sanitizer provides chainable text sanitization.
// Once configured it is safe for concurrent use.
type Sanitizer struct {
	rules []rule
}

// New creates a new Sanitizer instance
func New() *Sanitizer {
	return &Sanitizer{
		rules: []rule{},
	}
}

// Rule adds a custom rule to the sanitizer (appended, earliest rule applies first)
func (s *Sanitizer) Rule(filter uint64, transform uint64) *Sanitizer {
	s.rules = append(s.rules, rule{filter: filter, transform: transform})
	return s
}

// Policy applies a pre-configured policy to the sanitizer (appended)
func (s *Sanitizer) Policy(preset PolicyPreset) *Sanitizer {
	if rules, ok := policyRules[preset]; ok {
		s.rules = append(s.rules, rules...)
	}
	return s
}

// Sanitize applies all configured rules to the input string.
// Input that matches no rule is returned without copying.
func (s *Sanitizer) Sanitize(data string) string {
	if len(s.rules) == 0 {
		return data
	}

	// Find the first rune that needs a transform
	first := -1
	for i, r := range data {
		if s.match(r) != nil {
			first = i
			break
		}
	}
	if first < 0 {
		return data
	}

	buf := make([]byte, 0, len(data)+16)
	buf = append(buf, data[:first]...)
	for _, r := range data[first:] {
		if rl := s.match(r); rl != nil {
			applyTransform(&buf, r, rl.transform)
			continue
		}
		buf = utf8.AppendRune(buf, r)
	}
	return string(buf)
}

// match returns the first rule whose filter matches r
func (s *Sanitizer) match(r rune) *rule {
	for i := range s.rules {
		if matchesFilter(r, s.rules[i].filter) {
			return &s.rules[i]
		}
	}
	return nil
}

// matchesFilter checks if a rune matches any filter in the mask
func matchesFilter(r rune, filterMask uint64) bool {
	for _, fc := range filterCheckers {
		if (filterMask&fc.flag) != 0 && fc.check(r) {
			return true
		}
	}
	return false
}

// applyTransform applies the specified transform to the buffer
func applyTransform(buf *[]byte, r rune, transformMask uint64) {
	switch {
	case (transformMask & TransformStrip) != 0:
		// Do nothing (strip)

	case (transformMask & TransformHexEncode) != 0:
		var runeBytes [utf8.UTFMax]byte
		n := utf8.EncodeRune(runeBytes[:], r)
		*buf = append(*buf, '<')
		*buf = append(*buf, hex.EncodeToString(runeBytes[:n])...)
		*buf = append(*buf, '>')

	case (transformMask & TransformSpace) != 0:
		*buf = append(*buf, ' ')
	}
}

// dumper renders composite values deterministically, without pointer addresses
var dumper = &spew.ConfigState{
	Indent:                  " ",
	MaxDepth:                10,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Stringify renders a value as text for use as a field value
func Stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return "nil"
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case time.Duration:
		return val.String()
	case error:
		return val.Error()
	case fmt.Stringer:
		return val.String()
	default:
		return dumpComplex(val)
	}
}

// dumpComplex uses spew for structs, maps, slices and pointers.
// The multi-line dump is folded onto one line.
func dumpComplex(v any) string {
	var b bytes.Buffer
	dumper.Fdump(&b, v)

	lines := bytes.Split(bytes.TrimSpace(b.Bytes()), []byte{'\n'})
	for i := range lines {
		lines[i] = bytes.TrimSpace(lines[i])
	}
	return string(bytes.Join(lines, []byte{' '}))
}
