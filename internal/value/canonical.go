package value

import (
	"encoding/base64"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"
)

// Canonical renders v as a single line of text. Booleans are lowercase,
// arrays and dictionaries use a compact JSON encoding, and other scalars
// use their natural string form (strings are not quoted at the top level).
func (v Value) Canonical() string {
	switch v.kind {
	case Null:
		return "null"
	case Bool:
		return strconv.FormatBool(v.b)
	case Integer:
		return strconv.FormatInt(v.i, 10)
	case Real:
		return formatReal(v.f, false)
	case String:
		return v.s
	case Date:
		return v.t.UTC().Format(time.RFC3339)
	case Data:
		return base64.StdEncoding.EncodeToString(v.data)
	}
	var sb strings.Builder
	v.writeJSON(&sb)
	return sb.String()
}

// String implements fmt.Stringer.
func (v Value) String() string {
	return v.Canonical()
}

func (v Value) writeJSON(sb *strings.Builder) {
	switch v.kind {
	case Null:
		sb.WriteString("null")
	case Bool:
		sb.WriteString(strconv.FormatBool(v.b))
	case Integer:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case Real:
		sb.WriteString(formatReal(v.f, true))
	case String:
		writeQuoted(sb, v.s)
	case Date:
		writeQuoted(sb, v.t.UTC().Format(time.RFC3339))
	case Data:
		writeQuoted(sb, base64.StdEncoding.EncodeToString(v.data))
	case Array:
		sb.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				sb.WriteString(", ")
			}
			item.writeJSON(sb)
		}
		sb.WriteByte(']')
	case Dict:
		sb.WriteByte('{')
		for i, k := range v.keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeQuoted(sb, k)
			sb.WriteString(": ")
			v.dict[k].writeJSON(sb)
		}
		sb.WriteByte('}')
	}
}

// formatReal keeps a trailing ".0" on integral values so reals stay
// distinguishable from integers in text output.
func formatReal(f float64, inJSON bool) string {
	switch {
	case math.IsNaN(f):
		if inJSON {
			return "NaN"
		}
		return "nan"
	case math.IsInf(f, 1):
		if inJSON {
			return "Infinity"
		}
		return "inf"
	case math.IsInf(f, -1):
		if inJSON {
			return "-Infinity"
		}
		return "-inf"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e16 {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// writeQuoted writes s as an ASCII-only JSON string.
func writeQuoted(sb *strings.Builder, s string) {
	const hex = "0123456789abcdef"
	sb.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"':
			sb.WriteString(`\"`)
		case r == '\\':
			sb.WriteString(`\\`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r == '\b':
			sb.WriteString(`\b`)
		case r == '\f':
			sb.WriteString(`\f`)
		case r < 0x20 || (r > 0x7f && r <= 0xffff):
			sb.WriteString(`\u`)
			sb.WriteByte(hex[r>>12&0xf])
			sb.WriteByte(hex[r>>8&0xf])
			sb.WriteByte(hex[r>>4&0xf])
			sb.WriteByte(hex[r&0xf])
		case r > 0xffff:
			r1, r2 := utf16.EncodeRune(r)
			for _, u := range []rune{r1, r2} {
				sb.WriteString(`\u`)
				sb.WriteByte(hex[u>>12&0xf])
				sb.WriteByte(hex[u>>8&0xf])
				sb.WriteByte(hex[u>>4&0xf])
				sb.WriteByte(hex[u&0xf])
			}
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
}
