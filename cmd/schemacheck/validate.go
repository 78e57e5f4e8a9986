// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"rivaas.dev/schema"
	"rivaas.dev/schema/codec"
	"rivaas.dev/schema/jsonschema"
	"rivaas.dev/schema/problem"
)

const stdinName = "-"

// result is the outcome for one document.
type result struct {
	Document  string              `json:"document"`
	Valid     bool                `json:"valid"`
	Errors    []schema.FieldError `json:"errors,omitempty"`
	Truncated bool                `json:"truncated,omitempty"`

	err error
}

type validateOptions struct {
	format      string
	engine      string
	stdinFormat string
	runAll      bool
	partial     bool
	maxErrors   int
	telemetry   telemetryOptions
}

func newValidateCmd(a *app) *cobra.Command {
	o := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [documents...]",
		Short: "Validate documents against the loaded schema",
		Long: `Validate decodes each document (JSON, YAML or TOML, chosen by extension)
and checks it against the array constraints of the loaded schema.
Use "-" to read a document from stdin.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.validate(cmd, o, args)
		},
	}

	a.addSchemaFlags(cmd)
	cmd.Flags().StringVarP(&o.format, "format", "f", "text", "output format: text, json or problem")
	cmd.Flags().StringVar(&o.engine, "engine", "native", "validation engine: native or jsonschema")
	cmd.Flags().StringVar(&o.stdinFormat, "stdin-format", string(codec.TypeJSON), "format of a document read from stdin")
	cmd.Flags().BoolVar(&o.runAll, "run-all", false, "report every failing constraint of a field")
	cmd.Flags().BoolVar(&o.partial, "partial", false, "check only the array fields a document contains (patch documents)")
	cmd.Flags().IntVar(&o.maxErrors, "max-errors", 0, "maximum errors per document (0 means unlimited)")
	o.telemetry.register(cmd)

	return cmd
}

// checkFunc validates one decoded document.
type checkFunc func(ctx context.Context, doc map[string]any) error

func (a *app) validate(cmd *cobra.Command, o *validateOptions, args []string) (err error) {
	ctx := cmd.Context()

	render, err := renderer(o.format)
	if err != nil {
		return err
	}

	s, err := a.loadSchema(ctx)
	if err != nil {
		return err
	}

	tel, err := setupTelemetry(ctx, &o.telemetry, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		if serr := tel.Shutdown(context.WithoutCancel(ctx)); serr != nil {
			err = errors.Join(err, fmt.Errorf("telemetry shutdown: %w", serr))
		}
	}()

	check, err := a.checker(s, o, tel.options)
	if err != nil {
		return err
	}

	results := make([]result, 0, len(args))
	invalid := 0
	for _, name := range args {
		doc, rerr := readDocument(cmd.InOrStdin(), name, codec.Type(o.stdinFormat))
		if rerr != nil {
			return rerr
		}

		r := result{Document: name, Valid: true}
		if err = check(ctx, doc); err != nil {
			var verr *schema.Error
			if !errors.As(err, &verr) {
				return fmt.Errorf("validate %s: %w", name, err)
			}
			r.Valid = false
			r.Errors = verr.Fields
			r.Truncated = verr.Truncated
			r.err = verr
			invalid++
		}
		a.logger.Debug("document checked", "document", name, "valid", r.Valid, "errors", len(r.Errors))
		results = append(results, r)
	}

	if err = render(cmd.OutOrStdout(), results); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if invalid > 0 {
		return errInvalid
	}

	return nil
}

// checker returns the validation function for the selected engine.
func (a *app) checker(s *schema.Schema, o *validateOptions, extra []schema.Option) (checkFunc, error) {
	switch o.engine {
	case "native":
		opts := []schema.Option{
			schema.WithRunAll(o.runAll),
			schema.WithMaxErrors(o.maxErrors),
			schema.WithLogger(a.logger),
		}
		opts = append(opts, extra...)
		if o.partial {
			return func(ctx context.Context, doc map[string]any) error {
				return s.ValidatePartial(ctx, doc, schema.PresenceOf(doc), opts...)
			}, nil
		}
		return func(ctx context.Context, doc map[string]any) error {
			return s.Validate(ctx, doc, opts...)
		}, nil
	case "jsonschema":
		if o.partial {
			return nil, errors.New("--partial is only supported by the native engine")
		}
		compiled, err := jsonschema.Compile(s)
		if err != nil {
			return nil, err
		}
		return func(_ context.Context, doc map[string]any) error {
			return compiled.Validate(doc)
		}, nil
	default:
		return nil, fmt.Errorf("unknown engine %q: want native or jsonschema", o.engine)
	}
}

// readDocument decodes a document file, or stdin when name is "-".
func readDocument(stdin io.Reader, name string, stdinFormat codec.Type) (map[string]any, error) {
	var (
		data   []byte
		format codec.Type
		err    error
	)
	if name == stdinName {
		format = stdinFormat
		data, err = io.ReadAll(stdin)
	} else {
		if format, err = codec.ForPath(name); err != nil {
			return nil, err
		}
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	doc, err := codec.DecodeMap(format, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return doc, nil
}

// renderFunc writes all results.
type renderFunc func(w io.Writer, results []result) error

func renderer(format string) (renderFunc, error) {
	switch format {
	case "text":
		return renderText, nil
	case "json":
		return renderJSON, nil
	case "problem":
		return renderProblems(problem.NewRFC9457("")), nil
	default:
		return nil, fmt.Errorf("unknown output format %q: want text, json or problem", format)
	}
}

func renderText(w io.Writer, results []result) error {
	for _, r := range results {
		if r.Valid {
			if _, err := fmt.Fprintf(w, "%s: ok\n", r.Document); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s: invalid\n", r.Document); err != nil {
			return err
		}
		for _, fe := range r.Errors {
			if _, err := fmt.Fprintf(w, "  %s: %s\n", fe.Path, fe.Message); err != nil {
				return err
			}
		}
		if r.Truncated {
			if _, err := fmt.Fprintln(w, "  (more errors omitted)"); err != nil {
				return err
			}
		}
	}

	return nil
}

func renderJSON(w io.Writer, results []result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(results)
}

// renderProblems writes one problem details object per invalid document,
// one JSON object per line.
func renderProblems(f problem.Formatter) renderFunc {
	return func(w io.Writer, results []result) error {
		enc := json.NewEncoder(w)
		for _, r := range results {
			if r.Valid {
				continue
			}
			if err := enc.Encode(f.Format(r.Document, r.err).Body); err != nil {
				return err
			}
		}

		return nil
	}
}
