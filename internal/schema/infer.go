package schema

import (
	"strconv"
	"strings"
	"time"
)

// ---------------------------------------------------------------------
// Type Inference
// ---------------------------------------------------------------------
//
// Infer scans a column's sample values and returns the narrowest type that
// accommodates every non-null value. Precedence (first rule that holds for
// the whole sample wins): INTEGER > DECIMAL > BOOLEAN > DATE/DATETIME >
// VARCHAR/TEXT. Rather than downgrading mid-scan, the scan accumulates
// predicates over all values, so the chosen kind only ever widens.

// Infer deduces the column type from samples. The second return value is true
// when the sample contained no usable value and the result is a low-confidence
// VARCHAR fallback. Empty strings count as null.
func Infer(samples []string, cfg Config) (InferredType, bool) {
	var (
		sawValue bool
		allInt   = true
		allNum   = true
		allBool  = true
		allDate  = true
		anyTime  bool

		maxDigits int
		maxFrac   int
		maxBytes  int
	)

	for _, raw := range samples {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		sawValue = true

		if allInt && !isInt32(v) {
			allInt = false
		}
		if allNum {
			if digits, frac, ok := decimalShape(v); ok {
				if digits > maxDigits {
					maxDigits = digits
				}
				if frac > maxFrac {
					maxFrac = frac
				}
			} else {
				allNum = false
			}
		}
		if allBool && !isBoolToken(v) {
			allBool = false
		}
		if allDate {
			if _, hasTime, ok := ParseTemporal(v); ok {
				if hasTime {
					anyTime = true
				}
			} else {
				allDate = false
			}
		}
		if n := len(raw); n > maxBytes {
			maxBytes = n // byte length of the raw value, UTF-8 as stored
		}
	}

	if !sawValue {
		// All-null column: safe fallback, flagged for the caller to log.
		return InferredType{Kind: KindVarchar, Length: cfg.MaxVarcharLength}, true
	}

	switch {
	case allInt:
		return InferredType{Kind: KindInteger}, false
	case allNum:
		p, s := maxDigits, maxFrac
		if p > cfg.DecimalPrecision {
			p = cfg.DecimalPrecision
		}
		if s > cfg.DecimalScale {
			s = cfg.DecimalScale
		}
		if p < s {
			p = s
		}
		return InferredType{Kind: KindDecimal, Precision: p, Scale: s}, false
	case allBool:
		return InferredType{Kind: KindBoolean}, false
	case allDate:
		if anyTime {
			return InferredType{Kind: KindDateTime}, false
		}
		return InferredType{Kind: KindDate}, false
	}

	if maxBytes > cfg.MaxVarcharLength {
		return InferredType{Kind: KindText}, false
	}
	return InferredType{Kind: KindVarchar, Length: bucketLength(maxBytes, cfg.VarcharBucket)}, false
}

// bucketLength rounds n up to the next multiple of bucket, with a floor of one
// bucket so tiny columns do not end up as VARCHAR(3).
func bucketLength(n, bucket int) int {
	if bucket <= 0 {
		bucket = 50
	}
	if n <= bucket {
		return bucket
	}
	if rem := n % bucket; rem != 0 {
		return n + bucket - rem
	}
	return n
}

func isInt32(s string) bool {
	_, err := strconv.ParseInt(s, 10, 32)
	return err == nil
}

// decimalShape validates s as a plain decimal number (optional sign, optional
// fractional part, no exponent) and reports total and fractional digit counts.
// Scientific notation is rejected on purpose: a column full of "1.2e5" reads
// better as text than as a lossy DECIMAL.
func decimalShape(s string) (digits, frac int, ok bool) {
	if s == "" {
		return 0, 0, false
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return 0, 0, false
	}
	body := s
	if body[0] == '+' || body[0] == '-' {
		body = body[1:]
	}
	dot := -1
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c >= '0' && c <= '9':
			digits++
			if dot >= 0 {
				frac++
			}
		case c == '.' && dot < 0:
			dot = i
		default:
			return 0, 0, false // exponent or stray character
		}
	}
	if digits == 0 {
		return 0, 0, false
	}
	return digits, frac, true
}

// isBoolToken accepts the recognized boolean spellings, case-insensitive.
// Purely numeric columns never reach this check because INTEGER wins first.
func isBoolToken(s string) bool {
	switch strings.ToLower(s) {
	case "true", "false", "yes", "no", "1", "0":
		return true
	default:
		return false
	}
}

// dateLayouts are the accepted date formats without a time component.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02.01.2006",
	"02/01/2006",
	"01/02/2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"20060102",
}

// dateTimeLayouts are the accepted formats carrying a time component.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"02/01/2006 15:04:05",
	"01/02/2006 15:04:05",
}

// ParseTemporal tries s against the datetime layouts first, then the date
// layouts. hasTime reports whether a time component was present.
func ParseTemporal(s string) (t time.Time, hasTime bool, ok bool) {
	for _, layout := range dateTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed, true, true
		}
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed, false, true
		}
	}
	return time.Time{}, false, false
}
