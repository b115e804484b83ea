package jsonschema

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/net/idna"
)

// hostnameProfile is the IDNA profile for registration-grade hostname
// validation. It punycode-decodes xn-- A-labels and applies the IDNA2008
// label rules to the decoded U-labels.
var hostnameProfile = sync.OnceValue(func() *idna.Profile {
	return idna.New(idna.ValidateForRegistration())
})

// IsHostname tells whether given string is a valid representation
// for an Internet host name, as defined by RFC 1034 section 3.1 and
// RFC 1123 section 2.1: ASCII labels of 1-63 characters, 253 total,
// alphanumerics and interior hyphens. A label with "--" in positions 3-4 is
// accepted only when it is an xn-- A-label whose Punycode-decoded U-label
// passes IDNA2008 validation.
func IsHostname(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	return isValidHostname(s, false)
}

// IsIDNHostname tells whether given string is a valid internationalized
// hostname under IDNA2008, including the RFC 5892 contextual rules the idna
// package does not check itself.
func IsIDNHostname(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	return isValidHostname(s, true)
}

// isValidHostname reports whether this is a valid hostname.
// If idn is true, internationalized hostnames are permitted.
func isValidHostname(s string, idn bool) bool {
	// entire hostname (including the delimiting dots but not a trailing dot)
	// has a maximum of 253 ASCII characters
	s = strings.TrimSuffix(s, ".")
	if s == "" || len(s) > 253 {
		return false
	}

	// Underscores are permitted by the idna package but not by RFC 1123.
	if strings.Contains(s, "_") {
		return false
	}

	if !idn {
		for i := 0; i < len(s); i++ {
			if s[i]&0x80 != 0 {
				return false
			}
		}
		for _, label := range strings.Split(s, ".") {
			if !isValidASCIILabel(label) {
				return false
			}
		}
		// The label checks above already cover RFC 1123; the profile call only
		// decides whether xn-- A-labels decode to valid U-labels. Labels are
		// case-insensitive, the registration profile is not.
		s = strings.ToLower(s)
	} else {
		// Permit all stops (RFC 3490 section 3.1).
		s = strings.ReplaceAll(s, "。", ".")
		s = strings.ReplaceAll(s, "．", ".")
		s = strings.ReplaceAll(s, "｡", ".")

		if !passesContextualRules(s) {
			return false
		}
	}

	if _, err := hostnameProfile().ToASCII(s); err != nil {
		return false
	}

	return true
}

// isValidASCIILabel checks one RFC 1123 label: 1-63 characters, alphanumerics
// and hyphens, no leading or trailing hyphen. "--" in positions 3-4 is
// reserved for A-labels; the IDNA profile decides whether the label is one.
func isValidASCIILabel(label string) bool {
	if labelLen := len(label); labelLen < 1 || labelLen > 63 {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for _, c := range label {
		if valid := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || (c == '-'); !valid {
			return false
		}
	}
	if len(label) >= 4 && label[2] == '-' && label[3] == '-' && !strings.HasPrefix(label, "xn--") {
		return false
	}
	return true
}

// viramas are the combining marks that license a following zero-width joiner
// or non-joiner under RFC 5892 appendix A.1/A.2.
var viramas = map[rune]struct{}{
	'्': {}, // DEVANAGARI
	'্': {}, // BENGALI
	'੍': {}, // GURMUKHI
	'્': {}, // GUJARATI
	'୍': {}, // ORIYA
	'்': {}, // TAMIL
	'్': {}, // TELUGU
	'್': {}, // KANNADA
	'്': {}, // MALAYALAM
	'්': {}, // SINHALA
	'ฺ': {}, // THAI PHINTHU
	'྄': {}, // TIBETAN
	'္': {}, // MYANMAR
	'្': {}, // KHMER COENG
	'꣄': {}, // SAURASHTRA
}

// passesContextualRules applies the RFC 5892 contextual rules and DISALLOWED
// code points that the idna package leaves to the caller:
//   - U+0640 TATWEEL, U+07FA, U+302E/F, U+3031..5, U+303B are disallowed;
//   - MIDDLE DOT only between two 'l's;
//   - GREEK KERAIA must be followed by Greek;
//   - HEBREW GERESH and GERSHAYIM must be preceded by Hebrew;
//   - KATAKANA MIDDLE DOT requires Han/Hiragana/Katakana in its label;
//   - ZWJ/ZWNJ must be preceded by a virama;
//   - Arabic-Indic and Extended Arabic-Indic digits must not co-occur.
func passesContextualRules(s string) bool {
	var arabicIndic, extendedArabicIndic bool

	for _, label := range strings.Split(s, ".") {
		var last, nextMustBe rune
		var nextMustBeGreek bool

		for _, c := range label {
			if nextMustBe != 0 && nextMustBe != c {
				return false
			}
			nextMustBe = 0

			if nextMustBeGreek {
				if !unicode.Is(unicode.Greek, c) {
					return false
				}
			}
			nextMustBeGreek = false

			switch c {
			case 'ـ', 'ߺ', '〮', '〯',
				'〱', '〲', '〳', '〴',
				'〵', '〻':
				// Disallowed rune.
				return false

			case '·':
				if last != 'l' {
					return false
				}
				nextMustBe = 'l'

			case '͵':
				nextMustBeGreek = true

			case '׳', '״':
				if !unicode.Is(unicode.Hebrew, last) {
					return false
				}

			case '‌', '‍':
				if _, ok := viramas[last]; !ok {
					return false
				}

			case '・':
				found := false
				for _, r := range label {
					if unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r) || unicode.Is(unicode.Han, r) {
						found = true
						break
					}
				}
				if !found {
					return false
				}
			}

			if c >= '٠' && c <= '٩' {
				arabicIndic = true
			}
			if c >= '۰' && c <= '۹' {
				extendedArabicIndic = true
			}

			last = c
		}
		if nextMustBe != 0 || nextMustBeGreek {
			return false
		}
	}

	return !(arabicIndic && extendedArabicIndic)
}

// emailAtextSpecials is the RFC 5322 atext punctuation permitted in an
// unquoted local part, beyond letters and digits.
const emailAtextSpecials = "!#$%&'*+-/=?^_`{|}~"

// IsEmail tells whether given string is a valid Internet email address
// as defined by RFC 5322, section 3.4.1: a dot-atom or quoted-string local
// part, and a hostname or bracketed IP-literal domain.
func IsEmail(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	return isValidEmail(s, false)
}

// IsIDNEmail tells whether given string is a valid internationalized email
// address: Unicode is permitted in the local part (minus controls,
// surrogates, and non-characters) and the domain follows idn-hostname.
func IsIDNEmail(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	return isValidEmail(s, true)
}

func isValidEmail(s string, idn bool) bool {
	// entire email address to be no more than 254 characters long
	if len(s) > 254 {
		return false
	}

	// email address is generally recognized as having two parts joined with an at-sign
	at := strings.LastIndexByte(s, '@')
	if at == -1 {
		return false
	}
	local := s[0:at]
	domain := s[at+1:]

	// local part may be up to 64 characters long
	if len(local) > 64 || local == "" {
		return false
	}

	if strings.HasPrefix(local, `"`) && strings.HasSuffix(local, `"`) && len(local) >= 2 {
		if !isValidQuotedLocalPart(local[1:len(local)-1], idn) {
			return false
		}
	} else if !isValidDotAtomLocalPart(local, idn) {
		return false
	}

	// domain if enclosed in brackets, must match an IP address
	if len(domain) >= 2 && domain[0] == '[' && domain[len(domain)-1] == ']' {
		ip := domain[1 : len(domain)-1]
		if strings.HasPrefix(ip, "IPv6:") {
			return IsIPV6(strings.TrimPrefix(ip, "IPv6:"))
		}
		return IsIPV4(ip)
	}

	// domain must match the requirements for a hostname
	return isValidHostname(domain, idn)
}

// isValidDotAtomLocalPart checks an unquoted local part: dot-separated runs
// of atext with no leading, trailing, or doubled dots.
func isValidDotAtomLocalPart(local string, idn bool) bool {
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
		return false
	}
	for _, c := range local {
		if c == '.' {
			continue
		}
		if !isEmailAtext(c, idn) {
			return false
		}
	}
	return true
}

// isValidQuotedLocalPart checks the content of a quoted-string local part,
// honoring backslash quoted-pairs.
func isValidQuotedLocalPart(content string, idn bool) bool {
	escaped := false
	for _, c := range content {
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\':
			escaped = true
		case c == '"':
			return false
		case c < 0x20 || c == 0x7f:
			return false
		case c >= 0x80 && !idn:
			return false
		case idn && !isValidLocalRune(c):
			return false
		}
	}
	return !escaped
}

func isEmailAtext(c rune, idn bool) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c < 0x80:
		return strings.ContainsRune(emailAtextSpecials, c)
	case idn:
		return isValidLocalRune(c)
	}
	return false
}

// isValidLocalRune rejects the Unicode ranges that can never appear in an
// internationalized local part: controls, surrogates, and non-characters.
func isValidLocalRune(c rune) bool {
	if unicode.Is(unicode.C, c) {
		return false
	}
	if c >= 0xd800 && c <= 0xdfff {
		return false
	}
	if c&0xfffe == 0xfffe || (c >= 0xfdd0 && c <= 0xfdef) {
		return false
	}
	return true
}
