package cli

import (
	"fmt"
	"strings"

	"github.com/aretw0/dfsm/internal/dto"
	"github.com/aretw0/dfsm/internal/presentation/graph"
	"github.com/aretw0/dfsm/internal/presentation/tui"
	"github.com/aretw0/dfsm/internal/validator"
	"github.com/aretw0/dfsm/pkg/codec"
	"github.com/aretw0/dfsm/pkg/domain"
)

// ValidateResult is the JSON output of the validate command.
type ValidateResult struct {
	dto.ValidateResponse
	Lint *validator.Report `json:"lint,omitempty"`
}

// Validate checks a machine file and lints the machine when it is valid.
// Lint findings never fail the command.
func Validate(env *Env, path string) error {
	def, doc, err := LoadMachine(path)
	if err != nil {
		if env.Format == FormatJSON && doc != nil {
			if jerr := env.JSON(ValidateResult{ValidateResponse: dto.ValidateResponse{Error: dto.NewError(err)}}); jerr != nil {
				return jerr
			}
			return &ExitError{Code: 1}
		}
		return err
	}

	summary := doc.Summarize()
	report := validator.Lint(def)
	if env.Format == FormatJSON {
		return env.JSON(ValidateResult{
			ValidateResponse: dto.ValidateResponse{Valid: true, Summary: &summary},
			Lint:             &report,
		})
	}

	env.Printf("%s is valid: %s (%d states, %d symbols, %d transitions)\n",
		path, def.Name(), summary.States, summary.Symbols, summary.Transitions)
	for _, f := range report.Findings {
		env.Printf("  %s [%s] %s", f.Severity, f.Code, f.Message)
		if len(f.States) > 0 {
			env.Printf(": %s", strings.Join(f.States, ", "))
		}
		env.Printf("\n")
	}
	return nil
}

// Run executes a machine file on input and prints the trace.
func Run(env *Env, path string, input []string, outputs bool) error {
	def, _, err := LoadMachine(path)
	if err != nil {
		return err
	}

	engine := env.createEngine()
	input = codec.NormalizeSymbols(input)
	var res *domain.Result[string]
	if outputs {
		res, err = engine.Trace(def, input)
	} else {
		res, err = engine.Run(def, input)
	}
	if err != nil {
		return reportExecution(env, err)
	}

	if env.Format == FormatJSON {
		return env.JSON(dto.NewRunResponse(def.Name(), res))
	}
	env.Printf("Trace:    %s\n", tui.TraceLine(res.Trace))
	if outputs {
		env.Printf("Outputs:  %s\n", formatOutputs(res.Outputs))
	}
	env.Printf("%s\n", tui.Verdict(res.Accepted, res.Terminal))
	return nil
}

// Accepts runs a machine file on input and returns ErrRejected when the
// input is not accepted.
func Accepts(env *Env, path string, input []string) error {
	def, _, err := LoadMachine(path)
	if err != nil {
		return err
	}

	res, err := env.createEngine().Run(def, codec.NormalizeSymbols(input))
	if err != nil {
		return reportExecution(env, err)
	}

	if env.Format == FormatJSON {
		if err := env.JSON(dto.AcceptsResponse{Machine: def.Name(), Accepted: res.Accepted}); err != nil {
			return err
		}
	} else {
		env.Printf("%s\n", tui.Verdict(res.Accepted, res.Terminal))
	}
	if !res.Accepted {
		return ErrRejected
	}
	return nil
}

// Graph prints a Mermaid or DOT rendering of a machine file. A non-empty
// trace highlights the states visited by that input.
func Graph(env *Env, path, format string, trace []string) error {
	def, _, err := LoadMachine(path)
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if len(trace) > 0 {
		res, err := env.createEngine().Run(def, codec.NormalizeSymbols(trace))
		if err != nil {
			return reportExecution(env, err)
		}
		overlay = graph.OverlayFromTrace(res.Trace)
	}

	switch format {
	case "", "mermaid":
		env.Printf("%s", graph.GenerateMermaid(def, overlay))
	case "dot":
		env.Printf("%s", graph.GenerateDOT(def, overlay))
	default:
		return fmt.Errorf("unknown graph format %q (want mermaid or dot)", format)
	}
	return nil
}

// Describe prints a markdown description of a machine file, rendered for the
// terminal when stdout is one.
func Describe(env *Env, path string, render func(string) (string, error)) error {
	def, doc, err := LoadMachine(path)
	if err != nil {
		return err
	}
	if env.Format == FormatJSON {
		return env.JSON(doc)
	}

	md := tui.Describe(def, doc.Description)
	if render != nil {
		if md, err = render(md); err != nil {
			return fmt.Errorf("failed to render description: %w", err)
		}
	}
	env.Printf("%s", md)
	return nil
}

// reportExecution prints the failure position in JSON mode; text mode leaves
// the message to the caller.
func reportExecution(env *Env, err error) error {
	if env.Format != FormatJSON {
		return err
	}
	if jerr := env.JSON(dto.NewError(err)); jerr != nil {
		return jerr
	}
	return &ExitError{Code: 1}
}

func formatOutputs(outputs []any) string {
	parts := make([]string, len(outputs))
	for i, o := range outputs {
		if o == nil {
			parts[i] = "-"
			continue
		}
		parts[i] = fmt.Sprint(o)
	}
	return strings.Join(parts, " ")
}
