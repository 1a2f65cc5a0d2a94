package funcmcp

import (
	"context"
	"fmt"
)

// ArgTransform reshapes one argument of a derived tool. Zero values
// leave the corresponding facet of the argument unchanged.
type ArgTransform struct {
	// Name renames the argument as seen by callers. The remote server
	// still receives the original name.
	Name string

	// Description replaces the argument description in the schema.
	Description string

	// Default injects a value when the caller omits the argument.
	// Mutually exclusive with DefaultFactory.
	Default any

	// DefaultFactory computes a fresh default per call. Mutually
	// exclusive with Default. Factory-produced defaults never appear
	// in the schema.
	DefaultFactory func() any

	// Hide removes the argument from the derived schema. Hiding an
	// argument the server requires needs a Default or DefaultFactory
	// to stand in for it.
	Hide bool

	// Required overrides whether the argument is required. Demoting a
	// required argument needs a Default or DefaultFactory; promoting
	// with a default is contradictory.
	Required *bool

	// Type replaces the argument's schema type fragment, for example
	// {"type": "string", "format": "date-time"}.
	Type map[string]any
}

// Validate reports whether the transform is internally consistent.
func (a ArgTransform) Validate() error {
	if a.Default != nil && a.DefaultFactory != nil {
		return fmt.Errorf("default and default factory are mutually exclusive")
	}
	if a.Hide && !a.hasDefault() {
		return fmt.Errorf("hidden argument needs a default or default factory")
	}
	if a.Hide && a.Required != nil && *a.Required {
		return fmt.Errorf("hidden argument cannot be required")
	}
	if a.Required != nil && *a.Required && (a.Default != nil || a.DefaultFactory != nil) {
		return fmt.Errorf("required argument cannot carry a default")
	}
	return nil
}

func (a ArgTransform) hasDefault() bool {
	return a.Default != nil || a.DefaultFactory != nil
}

func (a ArgTransform) defaultValue() any {
	if a.DefaultFactory != nil {
		return a.DefaultFactory()
	}
	return a.Default
}

// TransformOptions describes a derived tool: an optional new name and
// description plus per-argument transforms keyed by the base tool's
// argument names.
type TransformOptions struct {
	Name        string
	Description string
	Args        map[string]ArgTransform
}

// Transform derives a new tool from base without mutating it. Unknown
// argument names and inconsistent transforms fail with a *ConfigError.
func Transform(base *Tool, opts TransformOptions) (*Tool, error) {
	name := base.name
	if opts.Name != "" {
		name = canonicalName(opts.Name)
	}
	description := base.description
	if opts.Description != "" {
		description = opts.Description
	}

	for arg, tr := range opts.Args {
		if !base.schema.IsRequired(arg) && !base.schema.IsOptional(arg) {
			return nil, &ConfigError{Reason: fmt.Sprintf("tool %q: unknown argument %q", name, arg)}
		}
		if err := tr.Validate(); err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("tool %q: argument %q: %v", name, arg, err), Err: err}
		}
		if tr.Required != nil && !*tr.Required && base.schema.IsRequired(arg) && !tr.hasDefault() {
			return nil, &ConfigError{Reason: fmt.Sprintf("tool %q: cannot make required argument %q optional without a default", name, arg)}
		}
	}

	raw, externalToInternal := transformSchema(base.schema, opts.Args)
	schema := parseSchema(raw)

	derived := &Tool{
		name:         name,
		remoteName:   base.remoteName,
		description:  description,
		schema:       schema,
		outputSchema: base.outputSchema,
		tags:         base.Tags(),
	}
	derived.exec = func(ctx context.Context, args map[string]any, callOpts callOptions) (any, error) {
		if missing := schema.missingFrom(args); len(missing) > 0 {
			return nil, &ValidationError{Tool: derived.name, Missing: missing}
		}
		internal := make(map[string]any, len(args)+len(opts.Args))
		for external, value := range args {
			target := external
			if mapped, ok := externalToInternal[external]; ok {
				target = mapped
			}
			internal[target] = value
		}
		for arg, tr := range opts.Args {
			external := arg
			if tr.Name != "" {
				external = tr.Name
			}
			if tr.Hide || tr.hasDefault() {
				if _, supplied := args[external]; !supplied && tr.hasDefault() {
					internal[arg] = tr.defaultValue()
				}
			}
		}
		return base.exec(ctx, internal, callOpts)
	}
	return derived, nil
}

// transformSchema builds the derived raw schema and the external to
// internal name mapping. The base schema maps are never modified.
func transformSchema(base ToolSchema, transforms map[string]ArgTransform) (map[string]any, map[string]string) {
	raw := cloneMap(base.raw)
	if raw == nil {
		raw = map[string]any{"type": "object"}
	}
	props := map[string]any{}
	if baseProps, ok := base.raw["properties"].(map[string]any); ok {
		for name, prop := range baseProps {
			props[name] = prop
		}
	}

	required := map[string]struct{}{}
	for _, name := range base.Required() {
		required[name] = struct{}{}
	}

	externalToInternal := map[string]string{}
	for arg, tr := range transforms {
		if tr.Hide {
			delete(props, arg)
			delete(required, arg)
			continue
		}
		prop := cloneMap(asMap(props[arg]))
		if prop == nil {
			prop = map[string]any{}
		}
		if tr.Type != nil {
			for k, v := range tr.Type {
				prop[k] = v
			}
		}
		if tr.Description != "" {
			prop["description"] = tr.Description
		}
		if tr.Default != nil {
			prop["default"] = tr.Default
		}
		external := arg
		if tr.Name != "" {
			external = tr.Name
			delete(props, arg)
			externalToInternal[external] = arg
		}
		props[external] = prop

		wasRequired := false
		if _, ok := required[arg]; ok {
			wasRequired = true
			delete(required, arg)
		}
		nowRequired := wasRequired
		if tr.Required != nil {
			nowRequired = *tr.Required
		} else if tr.hasDefault() {
			nowRequired = false
		}
		if nowRequired {
			required[external] = struct{}{}
		}
	}

	raw["properties"] = props
	reqList := make([]any, 0, len(required))
	for _, name := range sortedKeys(required) {
		reqList = append(reqList, name)
	}
	raw["required"] = reqList
	if _, ok := raw["type"]; !ok {
		raw["type"] = "object"
	}
	return raw, externalToInternal
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}
