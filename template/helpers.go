// template/helpers.go

package template

import (
	"fmt"
	"strings"
	"time"
)

// registerBuiltins installs the standard helper and filter library: currency
// and date formatting, pluralization, arithmetic, comparisons, string case,
// array access and a default-value fallback.
func registerBuiltins(e *Engine) {
	e.RegisterHelper("formatCurrency", func(args ...interface{}) interface{} {
		if len(args) == 0 {
			return ""
		}
		f, ok := toFloat(args[0])
		if !ok {
			return ""
		}
		return FormatINR(f)
	})

	e.RegisterHelper("formatDate", func(args ...interface{}) interface{} {
		if len(args) == 0 {
			return ""
		}
		format := "short"
		if len(args) > 1 {
			if s, ok := args[1].(string); ok {
				format = s
			}
		}
		t, ok := toTime(args[0])
		if !ok {
			return ""
		}
		return formatDate(t, format)
	})

	e.RegisterHelper("pluralize", func(args ...interface{}) interface{} {
		if len(args) < 2 {
			return ""
		}
		count, _ := toFloat(args[0])
		singular := FormatValue(args[1])
		plural := singular + "s"
		if len(args) > 2 {
			plural = FormatValue(args[2])
		}
		if count == 1 {
			return singular
		}
		return plural
	})

	e.RegisterHelper("add", arithmetic(func(a, b float64) float64 { return a + b }))
	e.RegisterHelper("subtract", arithmetic(func(a, b float64) float64 { return a - b }))
	e.RegisterHelper("multiply", arithmetic(func(a, b float64) float64 { return a * b }))
	e.RegisterHelper("divide", func(args ...interface{}) interface{} {
		if len(args) < 2 {
			return ""
		}
		a, _ := toFloat(args[0])
		b, _ := toFloat(args[1])
		if b == 0 {
			return ""
		}
		return a / b
	})

	e.RegisterHelper("eq", comparison(func(a, b float64) bool { return a == b }, func(a, b string) bool { return a == b }))
	e.RegisterHelper("gt", comparison(func(a, b float64) bool { return a > b }, func(a, b string) bool { return a > b }))
	e.RegisterHelper("lt", comparison(func(a, b float64) bool { return a < b }, func(a, b string) bool { return a < b }))

	e.RegisterHelper("upper", stringHelper(strings.ToUpper))
	e.RegisterHelper("lower", stringHelper(strings.ToLower))
	e.RegisterHelper("capitalize", stringHelper(capitalize))

	e.RegisterHelper("length", func(args ...interface{}) interface{} {
		if len(args) == 0 {
			return 0
		}
		switch v := args[0].(type) {
		case []interface{}:
			return len(v)
		case string:
			return len(v)
		case map[string]interface{}:
			return len(v)
		default:
			return 0
		}
	})
	e.RegisterHelper("first", func(args ...interface{}) interface{} {
		if len(args) == 0 {
			return nil
		}
		if items := toSlice(args[0]); len(items) > 0 {
			return items[0]
		}
		return nil
	})
	e.RegisterHelper("last", func(args ...interface{}) interface{} {
		if len(args) == 0 {
			return nil
		}
		if items := toSlice(args[0]); len(items) > 0 {
			return items[len(items)-1]
		}
		return nil
	})

	e.RegisterHelper("default", func(args ...interface{}) interface{} {
		if len(args) == 0 {
			return ""
		}
		if Truthy(args[0]) {
			return args[0]
		}
		if len(args) > 1 {
			return args[1]
		}
		return ""
	})

	// The filter forms pipe an already-resolved value through the same library.
	e.RegisterFilter("currency", func(value interface{}, args ...interface{}) interface{} {
		f, ok := toFloat(value)
		if !ok {
			return value
		}
		return FormatINR(f)
	})
	e.RegisterFilter("date", func(value interface{}, args ...interface{}) interface{} {
		t, ok := toTime(value)
		if !ok {
			return value
		}
		format := "short"
		if len(args) > 0 {
			if s, ok := args[0].(string); ok {
				format = s
			}
		}
		return formatDate(t, format)
	})
	e.RegisterFilter("upper", stringFilter(strings.ToUpper))
	e.RegisterFilter("lower", stringFilter(strings.ToLower))
	e.RegisterFilter("capitalize", stringFilter(capitalize))
	e.RegisterFilter("pluralize", func(value interface{}, args ...interface{}) interface{} {
		count, _ := toFloat(value)
		if len(args) == 0 {
			return value
		}
		singular := FormatValue(args[0])
		if count == 1 {
			return fmt.Sprintf("%s %s", FormatValue(value), singular)
		}
		return fmt.Sprintf("%s %ss", FormatValue(value), singular)
	})
	e.RegisterFilter("default", func(value interface{}, args ...interface{}) interface{} {
		if Truthy(value) {
			return value
		}
		if len(args) > 0 {
			return args[0]
		}
		return value
	})
}

func arithmetic(op func(a, b float64) float64) HelperFunc {
	return func(args ...interface{}) interface{} {
		if len(args) < 2 {
			return ""
		}
		a, _ := toFloat(args[0])
		b, _ := toFloat(args[1])
		return op(a, b)
	}
}

func comparison(numeric func(a, b float64) bool, lexical func(a, b string) bool) HelperFunc {
	return func(args ...interface{}) interface{} {
		if len(args) < 2 {
			return false
		}
		af, aok := toFloat(args[0])
		bf, bok := toFloat(args[1])
		if aok && bok {
			return numeric(af, bf)
		}
		return lexical(FormatValue(args[0]), FormatValue(args[1]))
	}
}

func stringHelper(fn func(string) string) HelperFunc {
	return func(args ...interface{}) interface{} {
		if len(args) == 0 {
			return ""
		}
		return fn(FormatValue(args[0]))
	}
}

func stringFilter(fn func(string) string) FilterFunc {
	return func(value interface{}, args ...interface{}) interface{} {
		return fn(FormatValue(value))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FormatINR renders an amount with Indian digit grouping and the rupee sign,
// e.g. 123456.7 -> "₹1,23,456.70".
func FormatINR(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	whole := int64(amount)
	fraction := int64((amount-float64(whole))*100 + 0.5)
	if fraction >= 100 {
		whole++
		fraction -= 100
	}

	digits := fmt.Sprintf("%d", whole)
	var grouped string
	if len(digits) > 3 {
		head := digits[:len(digits)-3]
		tail := digits[len(digits)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		grouped = strings.Join(parts, ",") + "," + tail
	} else {
		grouped = digits
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s₹%s.%02d", sign, grouped, fraction)
}

func formatDate(t time.Time, format string) string {
	switch format {
	case "long":
		return t.Format("Monday, 2 January 2006")
	case "time":
		return t.Format("3:04 PM")
	default: // "short"
		return t.Format("2 Jan 2006")
	}
}

func toTime(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t, true
		}
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t, true
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
