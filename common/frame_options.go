package common

import (
	"context"
	"time"

	"github.com/dop251/goja"

	"github.com/browsercore/xk6-frame/k6ext"
)

// validLifecycleEvents is the closed set spec.md §6 accepts for
// waitUntil/state arguments, after the networkidle0 legacy alias has been
// normalized away.
var validLifecycleEvents = map[string]bool{ //nolint:gochecknoglobals
	"load":             true,
	"domcontentloaded": true,
	"networkidle":      true,
}

// normalizeLifecycleEvent maps the legacy networkidle0 alias onto
// networkidle and rejects anything outside validLifecycleEvents. An empty
// value passes through unchanged so callers can still apply their own
// default.
func normalizeLifecycleEvent(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if value == "networkidle0" {
		value = "networkidle"
	}
	if !validLifecycleEvents[value] {
		return "", NewInvalidArgumentError("unknown lifecycle event: " + value)
	}
	return value, nil
}

// TimeoutOptions is the shared shape of every operation whose only option
// is a per-call timeout (click, fill, type, ...).
type TimeoutOptions struct {
	Timeout time.Duration `js:"timeout"`
}

// Parse reads opts.timeout, if present.
func (o *TimeoutOptions) Parse(ctx context.Context, opts goja.Value) error {
	if !k6ext.ValueExists(opts) {
		return nil
	}
	rt := k6ext.Runtime(ctx)
	obj := opts.ToObject(rt)
	for _, k := range obj.Keys() {
		if k == "timeout" {
			o.Timeout = time.Duration(obj.Get(k).ToInteger()) * time.Millisecond
		}
	}
	return nil
}

// Parse reads opts's js-tagged fields into o, normalizing and validating
// waitUntil the way BrowserContextOptions.Parse validates its own fields.
func (o *GotoOptions) Parse(ctx context.Context, opts goja.Value) error {
	if !k6ext.ValueExists(opts) {
		return nil
	}
	rt := k6ext.Runtime(ctx)
	obj := opts.ToObject(rt)
	for _, k := range obj.Keys() {
		v := obj.Get(k)
		switch k {
		case "waitUntil":
			o.WaitUntil = v.String()
		case "referer":
			o.Referer = v.String()
		case "timeout":
			o.Timeout = time.Duration(v.ToInteger()) * time.Millisecond
		}
	}
	waitUntil, err := normalizeLifecycleEvent(o.WaitUntil)
	if err != nil {
		return err
	}
	o.WaitUntil = waitUntil
	return nil
}

// Parse reads opts's js-tagged fields into o, normalizing and validating
// waitUntil.
func (o *WaitForNavigationOptions) Parse(ctx context.Context, opts goja.Value) error {
	if !k6ext.ValueExists(opts) {
		return nil
	}
	rt := k6ext.Runtime(ctx)
	obj := opts.ToObject(rt)
	for _, k := range obj.Keys() {
		v := obj.Get(k)
		switch k {
		case "url":
			o.URLMatch = v.Export()
		case "waitUntil":
			o.WaitUntil = v.String()
		case "timeout":
			o.Timeout = time.Duration(v.ToInteger()) * time.Millisecond
		}
	}
	waitUntil, err := normalizeLifecycleEvent(o.WaitUntil)
	if err != nil {
		return err
	}
	o.WaitUntil = waitUntil
	return nil
}

// Parse reads opts's js-tagged fields into o. Per spec.md §6, an option
// named "visibility" or a "waitFor" value other than 'visible' are
// rejected with a hint to use "state" rather than silently dropped.
func (o *WaitForSelectorOptions) Parse(ctx context.Context, opts goja.Value) error {
	if !k6ext.ValueExists(opts) {
		return nil
	}
	rt := k6ext.Runtime(ctx)
	obj := opts.ToObject(rt)
	for _, k := range obj.Keys() {
		v := obj.Get(k)
		switch k {
		case "visibility":
			return NewInvalidArgumentError(`unknown option "visibility": use "state" instead`)
		case "waitFor":
			if s := v.String(); s != "visible" {
				return NewInvalidArgumentError(`unknown option "waitFor": use "state" instead`)
			}
			o.State = "visible"
		case "state":
			o.State = v.String()
		case "timeout":
			o.Timeout = time.Duration(v.ToInteger()) * time.Millisecond
		}
	}
	switch o.State {
	case "", "attached", "detached", "visible", "hidden":
	default:
		return NewInvalidArgumentError("unknown waitForSelector state: " + o.State)
	}
	return nil
}

// Parse reads opts's js-tagged fields into o, validating polling per
// spec.md §6: either the literal 'raf' or a strictly positive millisecond
// interval.
func (o *WaitForFunctionOptions) Parse(ctx context.Context, opts goja.Value) error {
	if !k6ext.ValueExists(opts) {
		return nil
	}
	rt := k6ext.Runtime(ctx)
	obj := opts.ToObject(rt)
	for _, k := range obj.Keys() {
		v := obj.Get(k)
		switch k {
		case "polling":
			if s, ok := v.Export().(string); ok {
				if s != "raf" {
					return NewInvalidArgumentError("polling must be 'raf' or a positive number of milliseconds")
				}
				o.Polling = "raf"
				continue
			}
			ms := v.ToInteger()
			if ms <= 0 {
				return NewInvalidArgumentError("polling must be 'raf' or a positive number of milliseconds")
			}
			o.Polling = time.Duration(ms) * time.Millisecond
		case "timeout":
			o.Timeout = time.Duration(v.ToInteger()) * time.Millisecond
		}
	}
	return nil
}

// Parse reads opts's js-tagged fields into o, normalizing and validating
// waitUntil.
func (o *SetContentOptions) Parse(ctx context.Context, opts goja.Value) error {
	if !k6ext.ValueExists(opts) {
		return nil
	}
	rt := k6ext.Runtime(ctx)
	obj := opts.ToObject(rt)
	for _, k := range obj.Keys() {
		v := obj.Get(k)
		switch k {
		case "waitUntil":
			o.WaitUntil = v.String()
		case "timeout":
			o.Timeout = time.Duration(v.ToInteger()) * time.Millisecond
		}
	}
	waitUntil, err := normalizeLifecycleEvent(o.WaitUntil)
	if err != nil {
		return err
	}
	o.WaitUntil = waitUntil
	return nil
}

// Parse reads opts's js-tagged fields into o. The exactly-one-of-url/path/
// content check lives on AddScriptTag itself, since Go-native callers that
// never go through Parse must get the same guarantee.
func (o *AddScriptTagOptions) Parse(ctx context.Context, opts goja.Value) error {
	if !k6ext.ValueExists(opts) {
		return nil
	}
	rt := k6ext.Runtime(ctx)
	obj := opts.ToObject(rt)
	for _, k := range obj.Keys() {
		v := obj.Get(k)
		switch k {
		case "url":
			o.URL = v.String()
		case "path":
			o.Path = v.String()
		case "content":
			o.Content = v.String()
		case "type":
			o.Type = v.String()
		case "timeout":
			o.Timeout = time.Duration(v.ToInteger()) * time.Millisecond
		}
	}
	return nil
}

// Parse reads opts's js-tagged fields into o, analogous to
// AddScriptTagOptions.Parse.
func (o *AddStyleTagOptions) Parse(ctx context.Context, opts goja.Value) error {
	if !k6ext.ValueExists(opts) {
		return nil
	}
	rt := k6ext.Runtime(ctx)
	obj := opts.ToObject(rt)
	for _, k := range obj.Keys() {
		v := obj.Get(k)
		switch k {
		case "url":
			o.URL = v.String()
		case "path":
			o.Path = v.String()
		case "content":
			o.Content = v.String()
		case "timeout":
			o.Timeout = time.Duration(v.ToInteger()) * time.Millisecond
		}
	}
	return nil
}
