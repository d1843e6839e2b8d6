// template/engine.go

// Package template compiles the small chat-response templates used by the
// response formatter. Templates are plain strings rewritten by a fixed-order
// sequence of regex passes: conditionals, then loops, then variables, then
// helper calls, then filters, then a cleanup pass. The ordering is a contract;
// nested constructs (a loop inside a conditional branch, a helper inside a
// loop body) rely on it.
package template

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	consoleerrors "github.com/talentedge/console-api/errors"
	logger "github.com/talentedge/console-api/logging"
)

// Renderer is a compiled template: a pure function of a data object.
type Renderer func(data map[string]interface{}) string

// HelperFunc implements a {{helperName arg1 arg2}} call.
type HelperFunc func(args ...interface{}) interface{}

// FilterFunc implements one stage of a {{path|filter arg}} chain.
type FilterFunc func(value interface{}, args ...interface{}) interface{}

var (
	reIf       = regexp.MustCompile(`(?s)\{\{#if\s+(.+?)\}\}(.*?)(?:\{\{#else\}\}(.*?))?\{\{/if\}\}`)
	reUnless   = regexp.MustCompile(`(?s)\{\{#unless\s+(.+?)\}\}(.*?)\{\{/unless\}\}`)
	reEach     = regexp.MustCompile(`(?s)\{\{#each\s+([\w.]+)\}\}(.*?)\{\{/each\}\}`)
	reVariable = regexp.MustCompile(`\{\{\s*(@?[\w.]+)\s*\}\}`)
	reHelper   = regexp.MustCompile(`\{\{\s*(\w+)((?:\s+(?:"[^"]*"|'[^']*'|[\w.@-]+))+)\s*\}\}`)
	reFilter   = regexp.MustCompile(`\{\{\s*([\w.]+)((?:\|\w+(?:\s+(?:"[^"]*"|'[^']*'|[\w.@-]+))*)+)\s*\}\}`)
	reLeftover = regexp.MustCompile(`(?s)\{\{.*?\}\}`)
	reBlanks   = regexp.MustCompile(`\n{3,}`)

	reCondition = regexp.MustCompile(`^\s*([\w.@]+)\s*(==|!=|>=|<=|>|<)\s*(.+?)\s*$`)
	reArgSplit  = regexp.MustCompile(`"[^"]*"|'[^']*'|\S+`)
)

// Engine compiles and renders named templates. Compiled renderers are cached
// for the process lifetime; compilation is idempotent.
type Engine struct {
	mu       sync.RWMutex
	sources  map[string]string
	compiled map[string]Renderer
	helpers  map[string]HelperFunc
	filters  map[string]FilterFunc
}

func NewEngine() *Engine {
	e := &Engine{
		sources:  make(map[string]string),
		compiled: make(map[string]Renderer),
		helpers:  make(map[string]HelperFunc),
		filters:  make(map[string]FilterFunc),
	}
	registerBuiltins(e)
	for name, source := range builtinTemplates() {
		e.Register(name, source)
	}
	return e
}

// RegisterHelper makes a helper available to every template.
func (e *Engine) RegisterHelper(name string, fn HelperFunc) {
	e.mu.Lock()
	e.helpers[name] = fn
	e.mu.Unlock()
}

// RegisterFilter makes a filter available to every template.
func (e *Engine) RegisterFilter(name string, fn FilterFunc) {
	e.mu.Lock()
	e.filters[name] = fn
	e.mu.Unlock()
}

// Register stores a template source under name. Any previously compiled
// renderer for the name is discarded.
func (e *Engine) Register(name, source string) {
	e.mu.Lock()
	e.sources[name] = source
	delete(e.compiled, name)
	e.mu.Unlock()
}

// Compile returns the cached renderer for name, compiling on first use.
func (e *Engine) Compile(name string) (Renderer, error) {
	e.mu.RLock()
	if r, ok := e.compiled[name]; ok {
		e.mu.RUnlock()
		return r, nil
	}
	source, ok := e.sources[name]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", consoleerrors.ErrTemplateNotFound, name)
	}

	r := e.compileSource(source)
	e.mu.Lock()
	e.compiled[name] = r
	e.mu.Unlock()
	return r, nil
}

// Render renders the named template against data. It never returns an error:
// a missing template or a panicking renderer yields a fixed fallback string
// naming the template.
func (e *Engine) Render(name string, data map[string]interface{}) string {
	renderer, err := e.Compile(name)
	if err != nil {
		logger.Warn("Template not found, using fallback", zap.String("template", name))
		return renderFallback(name)
	}

	var out string
	func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Template render panicked",
					zap.String("template", name),
					zap.Any("panic", r))
				out = renderFallback(name)
			}
		}()
		out = renderer(data)
	}()
	return out
}

func renderFallback(name string) string {
	return fmt.Sprintf("Sorry, I could not prepare that information right now. (template: %s)", name)
}

// compileSource wraps the pass pipeline in a single renderer function.
func (e *Engine) compileSource(source string) Renderer {
	return func(data map[string]interface{}) string {
		out := source
		out = e.resolveConditionals(out, data)
		out = e.resolveLoops(out, data)
		out = e.resolveVariables(out, data)
		out = e.resolveHelpers(out, data)
		out = e.resolveFilters(out, data)
		return cleanup(out)
	}
}

// Pass 1: conditionals.
func (e *Engine) resolveConditionals(s string, data map[string]interface{}) string {
	s = reIf.ReplaceAllStringFunc(s, func(match string) string {
		parts := reIf.FindStringSubmatch(match)
		if evalCondition(parts[1], data) {
			return parts[2]
		}
		return parts[3]
	})
	s = reUnless.ReplaceAllStringFunc(s, func(match string) string {
		parts := reUnless.FindStringSubmatch(match)
		if evalCondition(parts[1], data) {
			return ""
		}
		return parts[2]
	})
	return s
}

// Pass 2: loops.
func (e *Engine) resolveLoops(s string, data map[string]interface{}) string {
	return reEach.ReplaceAllStringFunc(s, func(match string) string {
		parts := reEach.FindStringSubmatch(match)
		items := toSlice(Lookup(data, parts[1]))
		if items == nil {
			return ""
		}
		body := parts[2]
		var b strings.Builder
		for i, item := range items {
			iteration := body
			iteration = strings.ReplaceAll(iteration, "{{this}}", FormatValue(item))
			iteration = strings.ReplaceAll(iteration, "{{@index}}", strconv.Itoa(i))
			iteration = strings.ReplaceAll(iteration, "{{@first}}", strconv.FormatBool(i == 0))
			iteration = strings.ReplaceAll(iteration, "{{@last}}", strconv.FormatBool(i == len(items)-1))
			if obj, ok := item.(map[string]interface{}); ok {
				iteration = reVariable.ReplaceAllStringFunc(iteration, func(tag string) string {
					path := reVariable.FindStringSubmatch(tag)[1]
					if value, found := lookupFound(obj, path); found {
						return FormatValue(value)
					}
					return tag
				})
			}
			b.WriteString(iteration)
		}
		return b.String()
	})
}

// Pass 3: plain variable interpolation.
func (e *Engine) resolveVariables(s string, data map[string]interface{}) string {
	return reVariable.ReplaceAllStringFunc(s, func(tag string) string {
		path := reVariable.FindStringSubmatch(tag)[1]
		if value, found := lookupFound(data, path); found {
			return FormatValue(value)
		}
		return tag
	})
}

// Pass 4: helper calls.
func (e *Engine) resolveHelpers(s string, data map[string]interface{}) string {
	return reHelper.ReplaceAllStringFunc(s, func(tag string) string {
		parts := reHelper.FindStringSubmatch(tag)
		name := parts[1]
		e.mu.RLock()
		helper, ok := e.helpers[name]
		e.mu.RUnlock()
		if !ok {
			return tag
		}
		args := parseArgs(parts[2], data)
		return FormatValue(helper(args...))
	})
}

// Pass 5: filter chains.
func (e *Engine) resolveFilters(s string, data map[string]interface{}) string {
	return reFilter.ReplaceAllStringFunc(s, func(tag string) string {
		parts := reFilter.FindStringSubmatch(tag)
		value := Lookup(data, parts[1])
		chain := strings.Split(strings.TrimPrefix(parts[2], "|"), "|")
		for _, stage := range chain {
			fields := reArgSplit.FindAllString(stage, -1)
			if len(fields) == 0 {
				continue
			}
			e.mu.RLock()
			filter, ok := e.filters[fields[0]]
			e.mu.RUnlock()
			if !ok {
				continue
			}
			var args []interface{}
			for _, raw := range fields[1:] {
				args = append(args, parseArg(raw, data))
			}
			value = filter(value, args...)
		}
		return FormatValue(value)
	})
}

// cleanup strips unresolved tags and collapses runs of blank lines.
func cleanup(s string) string {
	s = reLeftover.ReplaceAllString(s, "")
	s = reBlanks.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// evalCondition evaluates a comparison between a dotted path and a literal or
// variable, or falls back to plain truthiness of a dotted path.
func evalCondition(cond string, data map[string]interface{}) bool {
	if parts := reCondition.FindStringSubmatch(cond); parts != nil {
		left := Lookup(data, parts[1])
		right := parseArg(parts[3], data)
		return compare(left, parts[2], right)
	}
	return Truthy(Lookup(data, strings.TrimSpace(cond)))
}

func compare(left interface{}, op string, right interface{}) bool {
	lf, lok := toFloat(left)
	rf, rok := toFloat(right)
	if lok && rok {
		switch op {
		case "==":
			return lf == rf
		case "!=":
			return lf != rf
		case ">=":
			return lf >= rf
		case "<=":
			return lf <= rf
		case ">":
			return lf > rf
		case "<":
			return lf < rf
		}
		return false
	}
	ls, rs := FormatValue(left), FormatValue(right)
	switch op {
	case "==":
		return ls == rs
	case "!=":
		return ls != rs
	case ">=":
		return ls >= rs
	case "<=":
		return ls <= rs
	case ">":
		return ls > rs
	case "<":
		return ls < rs
	}
	return false
}

// parseArgs splits a helper argument list, resolving quoted strings, numeric
// and boolean literals, and dotted-path variables.
func parseArgs(raw string, data map[string]interface{}) []interface{} {
	var args []interface{}
	for _, field := range reArgSplit.FindAllString(raw, -1) {
		args = append(args, parseArg(field, data))
	}
	return args
}

func parseArg(raw string, data map[string]interface{}) interface{} {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 2 {
		if (raw[0] == '"' && raw[len(raw)-1] == '"') || (raw[0] == '\'' && raw[len(raw)-1] == '\'') {
			return raw[1 : len(raw)-1]
		}
	}
	if raw == "true" {
		return true
	}
	if raw == "false" {
		return false
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return Lookup(data, raw)
}
