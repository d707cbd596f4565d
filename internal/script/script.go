// Package script evaluates a page's inline scripts in a sandboxed JS runtime so stores that
// ship their state as `window.X = {...}` assignments can be read without a browser.
package script

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dop251/goja"
	"github.com/rs/zerolog/log"
)

// DefaultBudget bounds the total run time of a page's inline scripts
const DefaultBudget = 500 * time.Millisecond

// Globals evaluates doc with DefaultBudget
func Globals(doc *goquery.Document) map[string]interface{} {
	return Evaluate(context.Background(), doc, DefaultBudget)
}

// Evaluate runs every inline script of doc and returns the non-standard globals they left
// behind, exported to Go values (objects become map[string]interface{}). Evaluation stops
// when budget elapses or ctx is cancelled; globals assigned before that are still returned.
func Evaluate(ctx context.Context, doc *goquery.Document, budget time.Duration) map[string]interface{} {
	vm := goja.New()

	timer := time.AfterFunc(budget, func() { vm.Interrupt("script budget exceeded") })
	defer timer.Stop()
	stop := context.AfterFunc(ctx, func() { vm.Interrupt(ctx.Err()) })
	defer stop()

	// Just enough of a browser to let assignment-style scripts run
	vm.Set("window", vm.GlobalObject())
	vm.Set("self", vm.GlobalObject())
	vm.Set("document", map[string]interface{}{})
	noop := func(goja.FunctionCall) goja.Value { return goja.Undefined() }
	vm.Set("console", map[string]interface{}{"log": noop, "error": noop, "warn": noop})

	executed := 0
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if _, external := sel.Attr("src"); external {
			return true
		}
		if typ, ok := sel.Attr("type"); ok && !isJavaScriptType(typ) {
			return true
		}
		src := sel.Text()
		if strings.TrimSpace(src) == "" {
			return true
		}
		_, err := vm.RunString(src)
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			log.Debug().Int("executed", executed).Interface("reason", interrupted.Value()).Msg("Inline scripts interrupted")
			return false
		}
		// Most page scripts fail without a DOM; only their side effects matter
		if err != nil {
			log.Debug().Err(err).Msg("Inline script failed")
			return true
		}
		executed++
		return true
	})
	timer.Stop()
	stop()
	vm.ClearInterrupt()

	out := make(map[string]interface{})
	for _, key := range vm.GlobalObject().Keys() {
		if isStandardGlobal(key) {
			continue
		}
		if v := vm.Get(key); v != nil {
			if exported := v.Export(); exported != nil {
				out[key] = exported
			}
		}
	}

	log.Debug().Int("scripts", executed).Int("globals", len(out)).Msg("Inline scripts evaluated")
	return out
}

// Lookup walks a path of object keys through exported globals
func Lookup(globals map[string]interface{}, path ...string) (interface{}, bool) {
	var cur interface{} = globals
	for _, key := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, cur != nil
}

func isJavaScriptType(typ string) bool {
	switch strings.ToLower(strings.TrimSpace(typ)) {
	case "", "text/javascript", "application/javascript", "module":
		return true
	}
	return false
}

func isStandardGlobal(key string) bool {
	switch key {
	case "window", "self", "document", "console":
		return true
	}
	return false
}
