// Credit to https://github.com/santhosh-tekuri/jsonschema
package jsonschema

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Formats is a registry of functions, which know how to validate
// a specific format.
//
// New Formats can be registered by adding to this map. Key is format name,
// value is function that knows how to validate that format. Every validator
// is a pure function and returns true for non-string values, so format never
// interferes with type checking.
var Formats = map[string]func(any) bool{
	"date-time":             IsDateTime,
	"date":                  IsDate,
	"time":                  IsTime,
	"duration":              IsDuration,
	"period":                IsPeriod,
	"hostname":              IsHostname,
	"idn-hostname":          IsIDNHostname,
	"email":                 IsEmail,
	"idn-email":             IsIDNEmail,
	"ip-address":            IsIPV4,
	"ipv4":                  IsIPV4,
	"ipv6":                  IsIPV6,
	"uri":                   IsURI,
	"iri":                   IsIRI,
	"uri-reference":         IsURIReference,
	"uriref":                IsURIReference,
	"iri-reference":         IsIRIReference,
	"uri-template":          IsURITemplate,
	"json-pointer":          IsJSONPointer,
	"relative-json-pointer": IsRelativeJSONPointer,
	"uuid":                  IsUUID,
	"regex":                 IsRegex,
	"unknown":               func(any) bool { return true },
}

// IsDateTime tells whether given string is a valid date-time representation
// as defined by RFC 3339, section 5.6, including calendar validity of the
// date part and the leap-second rule for the time part.
//
// see https://datatracker.ietf.org/doc/html/rfc3339#section-5.6, for details
func IsDateTime(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	if len(s) < 20 { // yyyy-mm-ddThh:mm:ssZ
		return false
	}
	if s[10] != 'T' && s[10] != 't' {
		return false
	}
	return IsDate(s[:10]) && IsTime(s[11:])
}

// IsDate tells whether given string is a valid full-date production
// as defined by RFC 3339, section 5.6: yyyy-mm-dd with real calendar
// validity (month lengths, leap years).
func IsDate(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	// yyyy-mm-dd
	// 0123456789
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, c := range s {
		if i == 4 || i == 7 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}

	year, _ := strconv.Atoi(s[0:4])
	month, _ := strconv.Atoi(s[5:7])
	day, _ := strconv.Atoi(s[8:10])

	if month < 1 || month > 12 || day < 1 {
		return false
	}
	return day <= daysInMonth(year, month)
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	}
	// February
	if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
		return 29
	}
	return 28
}

// IsTime tells whether given string is a valid full-time production
// as defined by RFC 3339, section 5.6.
//
// A leap second (seconds value 60) is accepted only when the corresponding
// UTC instant is 23:59:60, after applying the numeric offset.
func IsTime(v any) bool {
	str, ok := v.(string)
	if !ok {
		return true
	}

	// golang time package does not support leap seconds.
	// so we are parsing it manually here.

	// hh:mm:ss
	// 01234567
	if len(str) < 9 || str[2] != ':' || str[5] != ':' {
		return false
	}
	isInRange := func(str string, min, max int) (int, bool) {
		n, err := strconv.Atoi(str)
		if err != nil {
			return 0, false
		}
		if n < min || n > max {
			return 0, false
		}
		return n, true
	}
	var h, m, s int
	if h, ok = isInRange(str[0:2], 0, 23); !ok {
		return false
	}
	if m, ok = isInRange(str[3:5], 0, 59); !ok {
		return false
	}
	if s, ok = isInRange(str[6:8], 0, 60); !ok {
		return false
	}
	str = str[8:]

	// parse secfrac if present
	if str != "" && str[0] == '.' {
		// dot followed by one or more digits
		str = str[1:]
		var numDigits int
		for str != "" {
			if str[0] < '0' || str[0] > '9' {
				break
			}
			numDigits++
			str = str[1:]
		}
		if numDigits == 0 {
			return false
		}
	}

	if len(str) == 0 {
		return false
	}

	if str[0] == 'z' || str[0] == 'Z' {
		if len(str) != 1 {
			return false
		}
	} else {
		// time-numoffset
		// +hh:mm
		// 012345
		if len(str) != 6 || str[3] != ':' {
			return false
		}

		var sign int
		switch str[0] {
		case '+':
			sign = -1
		case '-':
			sign = +1
		default:
			return false
		}

		var zh, zm int
		if zh, ok = isInRange(str[1:3], 0, 23); !ok {
			return false
		}
		if zm, ok = isInRange(str[4:6], 0, 59); !ok {
			return false
		}

		// apply timezone offset to get the UTC instant
		hm := (h*60 + m) + sign*(zh*60+zm)
		if hm < 0 {
			hm += 24 * 60
		}
		hm %= 24 * 60
		h, m = hm/60, hm%60
	}

	// check leapsecond
	if s == 60 { // leap second
		if h != 23 || m != 59 {
			return false
		}
	}

	return true
}

// IsDuration tells whether given string is a valid duration format
// from the ISO 8601 ABNF as given in Appendix A of RFC 3339: components must
// appear in decreasing order, and weeks are mutually exclusive with every
// other component.
//
// see https://datatracker.ietf.org/doc/html/rfc3339#appendix-A, for details
func IsDuration(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	if len(s) == 0 || s[0] != 'P' {
		return false
	}
	s = s[1:]
	parseUnits := func() (units string, ok bool) {
		for len(s) > 0 && s[0] != 'T' {
			digits := false
			for len(s) != 0 {
				if s[0] < '0' || s[0] > '9' {
					break
				}
				digits = true
				s = s[1:]
			}
			if !digits || len(s) == 0 {
				return units, false
			}
			units += s[:1]
			s = s[1:]
		}
		return units, true
	}
	// inOrder reports whether units is an ordered subsequence of set.
	inOrder := func(units, set string) bool {
		for _, u := range units {
			i := strings.IndexRune(set, u)
			if i < 0 {
				return false
			}
			set = set[i+1:]
		}
		return true
	}
	units, ok := parseUnits()
	if !ok {
		return false
	}
	if units == "W" {
		return len(s) == 0 // P_W
	}
	if len(units) > 0 {
		// ordered subsequence of YMD, no repeats
		if !inOrder(units, "YMD") {
			return false
		}
		if len(s) == 0 {
			return true // "P" dur-date
		}
	}
	if len(s) == 0 || s[0] != 'T' {
		return false
	}
	s = s[1:]
	units, ok = parseUnits()
	return ok && len(s) == 0 && len(units) > 0 && inOrder(units, "HMS")
}

// IsPeriod tells whether given string is a valid period format
// from the ISO 8601 ABNF as given in Appendix A of RFC 3339.
func IsPeriod(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	slash := strings.IndexByte(s, '/')
	if slash == -1 {
		return false
	}
	start, end := s[:slash], s[slash+1:]
	if IsDateTime(start) {
		return IsDateTime(end) || IsDuration(end)
	}
	return IsDuration(start) && IsDateTime(end)
}

// IsIPV4 tells whether given string is a valid representation of an IPv4
// address: four decimal octets 0-255, with no leading zeros beyond the single
// digit case.
func IsIPV4(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	groups := strings.Split(s, ".")
	if len(groups) != 4 {
		return false
	}
	for _, group := range groups {
		if group == "" || len(group) > 3 {
			return false
		}
		for i := 0; i < len(group); i++ {
			if group[i] < '0' || group[i] > '9' {
				return false
			}
		}
		n, err := strconv.Atoi(group)
		if err != nil {
			return false
		}
		if n > 255 {
			return false
		}
		if n != 0 && group[0] == '0' {
			return false // leading zeroes should be rejected, as they are treated as octals
		}
		if n == 0 && len(group) > 1 {
			return false
		}
	}
	return true
}

// IsIPV6 tells whether given string is a valid representation of an IPv6
// address as defined in RFC 4291, section 2.2: full form, compressed form
// with one "::", and a dotted-quad IPv4 tail. Zone identifiers ("%") are
// rejected.
func IsIPV6(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	if strings.ContainsAny(s, "% ") {
		return false
	}
	if !strings.Contains(s, ":") {
		return false
	}

	var compressed bool
	if i := strings.Index(s, "::"); i != -1 {
		if strings.Contains(s[i+2:], "::") {
			return false // at most one "::"
		}
		compressed = true
	}

	head, tail := s, ""
	if compressed {
		parts := strings.SplitN(s, "::", 2)
		head, tail = parts[0], parts[1]
	}

	countGroups := func(part string) (int, bool) {
		if part == "" {
			return 0, true
		}
		groups := strings.Split(part, ":")
		n := 0
		for i, group := range groups {
			if group == "" {
				return 0, false
			}
			// dotted-quad tail counts as two groups and must be last
			if strings.Contains(group, ".") {
				if i != len(groups)-1 || !IsIPV4(group) {
					return 0, false
				}
				n += 2
				continue
			}
			if len(group) > 4 {
				return 0, false
			}
			for j := 0; j < len(group); j++ {
				c := group[j]
				hex := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
				if !hex {
					return 0, false
				}
			}
			n++
		}
		return n, true
	}

	headGroups, ok := countGroups(head)
	if !ok {
		return false
	}
	tailGroups, ok := countGroups(tail)
	if !ok {
		return false
	}

	if compressed {
		// "::" stands for at least one group of zeros
		return headGroups+tailGroups < 8
	}
	return headGroups == 8
}

// IsURI tells whether given string is valid URI, according to RFC 3986.
// A URI must be absolute and ASCII-only; Unicode belongs in IRIs.
func IsURI(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 || s[i] <= 0x20 {
			return false
		}
	}
	u, err := urlParse(s)
	return err == nil && u.IsAbs()
}

// IsIRI tells whether given string is a valid IRI, according to RFC 3987:
// the URI grammar with Unicode permitted outside the control/space range.
func IsIRI(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	for _, r := range s {
		if r <= 0x20 || r == 0x7f {
			return false
		}
	}
	u, err := urlParse(s)
	return err == nil && u.IsAbs()
}

func urlParse(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}

	// if hostname is ipv6, validate it
	hostname := u.Hostname()
	if strings.IndexByte(hostname, ':') != -1 {
		if strings.IndexByte(u.Host, '[') == -1 || strings.IndexByte(u.Host, ']') == -1 {
			return nil, ErrIPv6AddressFormat
		}
		if !IsIPV6(hostname) {
			return nil, ErrInvalidIPv6
		}
	}
	return u, nil
}

// IsURIReference tells whether given string is a valid URI Reference
// (either a URI or a relative-reference), according to RFC 3986.
func IsURIReference(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 || (s[i] <= 0x20 && s[i] != 0) {
			return false
		}
	}
	_, err := urlParse(s)
	return err == nil && !strings.Contains(s, `\`)
}

// IsIRIReference tells whether given string is a valid IRI Reference,
// according to RFC 3987.
func IsIRIReference(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	for _, r := range s {
		if (r <= 0x20 && r != 0) || r == 0x7f {
			return false
		}
	}
	_, err := urlParse(s)
	return err == nil && !strings.Contains(s, `\`)
}

// IsURITemplate tells whether given string is a valid URI Template
// according to RFC 6570: the URI-reference grammar with balanced braces
// holding valid expressions.
func IsURITemplate(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	depth := 0
	start := 0
	for i, ch := range s {
		switch ch {
		case '{':
			depth++
			if depth != 1 {
				return false
			}
			start = i + 1
		case '}':
			depth--
			if depth != 0 {
				return false
			}
			if !isValidTemplateExpression(s[start:i]) {
				return false
			}
		}
	}
	if depth != 0 {
		return false
	}
	// Outside the expressions the string must be a URI reference; strip the
	// expressions and check the remainder.
	var sb strings.Builder
	skip := false
	for _, ch := range s {
		switch {
		case ch == '{':
			skip = true
		case ch == '}':
			skip = false
		case !skip:
			sb.WriteRune(ch)
		}
	}
	return IsURIReference(sb.String())
}

// isValidTemplateExpression checks a single RFC 6570 expression body
// (the text between braces).
func isValidTemplateExpression(expr string) bool {
	if expr == "" {
		return false
	}
	// optional operator
	if strings.ContainsRune("+#./;?&=,!@|", rune(expr[0])) {
		expr = expr[1:]
	}
	if expr == "" {
		return false
	}
	for _, varspec := range strings.Split(expr, ",") {
		name, modifier, hasModifier := strings.Cut(varspec, ":")
		if hasModifier {
			length, err := strconv.Atoi(modifier)
			if err != nil || length <= 0 || length >= 10000 {
				return false
			}
		}
		name = strings.TrimSuffix(name, "*")
		if name == "" {
			return false
		}
		for i := 0; i < len(name); i++ {
			c := name[i]
			valid := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
				(c >= '0' && c <= '9') || c == '_' || c == '.' || c == '%'
			if !valid {
				return false
			}
		}
	}
	return true
}

// IsJSONPointer tells whether given string is a valid JSON Pointer.
//
// Note: It returns false for JSON Pointer URI fragments.
func IsJSONPointer(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	if s != "" && !strings.HasPrefix(s, "/") {
		return false
	}
	for _, item := range strings.Split(s, "/") {
		for i := 0; i < len(item); i++ {
			if item[i] == '~' {
				if i == len(item)-1 {
					return false
				}
				switch item[i+1] {
				case '0', '1':
					// valid
				default:
					return false
				}
			}
		}
	}
	return true
}

// IsRelativeJSONPointer tells whether given string is a valid Relative JSON Pointer.
//
// see https://tools.ietf.org/html/draft-handrews-relative-json-pointer-01#section-3
func IsRelativeJSONPointer(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	if s == "" {
		return false
	}
	switch {
	case s[0] == '0':
		s = s[1:]
	case s[0] >= '1' && s[0] <= '9':
		for s != "" && s[0] >= '0' && s[0] <= '9' {
			s = s[1:]
		}
	default:
		return false
	}
	return s == "#" || IsJSONPointer(s)
}

// IsUUID tells whether given string is a valid uuid format
// as specified in RFC 4122: five dash-separated groups of 8-4-4-4-12 hex
// digits.
func IsUUID(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	parseHex := func(n int) bool {
		for n > 0 {
			if len(s) == 0 {
				return false
			}
			hex := (s[0] >= '0' && s[0] <= '9') || (s[0] >= 'a' && s[0] <= 'f') || (s[0] >= 'A' && s[0] <= 'F')
			if !hex {
				return false
			}
			s = s[1:]
			n--
		}
		return true
	}
	groups := []int{8, 4, 4, 4, 12}
	for i, numDigits := range groups {
		if !parseHex(numDigits) {
			return false
		}
		if i == len(groups)-1 {
			break
		}
		if len(s) == 0 || s[0] != '-' {
			return false
		}
		s = s[1:]
	}
	return len(s) == 0
}

// IsRegex tells whether given string is a valid regex pattern that compiles
// under RE2 with Unicode semantics.
func IsRegex(v any) bool {
	pattern, ok := v.(string)
	if !ok {
		return true
	}

	_, err := regexp.Compile(pattern)
	return err == nil
}
