package ir

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Validate checks a program for structural well-formedness and returns a
// list of error messages. An empty slice indicates the program is valid.
func Validate(p *Program) []string {
	if p == nil || p.Term == nil {
		return []string{"program has nil term"}
	}

	errors := validateTerm(p.Term, "program")

	if free := FreeVars(p.Term); !free.Empty() {
		names := free.Slice()
		slices.Sort(names)
		errors = append(errors, fmt.Sprintf("program has free variables: %s", strings.Join(names, ", ")))
	}

	return errors
}

// validateTerm recursively checks that every node is complete.
func validateTerm(t Term, context string) []string {
	var errors []string
	switch n := t.(type) {
	case nil:
		errors = append(errors, fmt.Sprintf("%s: nil term", context))
	case *Var:
		if n.Name == "" {
			errors = append(errors, fmt.Sprintf("%s: variable has empty name", context))
		}
	case *Lambda:
		if len(n.Params) == 0 {
			errors = append(errors, fmt.Sprintf("%s: lambda has no parameters", context))
		}
		for _, p := range n.Params {
			if p == "" {
				errors = append(errors, fmt.Sprintf("%s: lambda has empty parameter name", context))
			}
		}
		errors = append(errors, validateTerm(n.Body, context+" > lambda")...)
	case *Apply:
		if len(n.Args) == 0 {
			errors = append(errors, fmt.Sprintf("%s: application has no arguments", context))
		}
		errors = append(errors, validateTerm(n.Fn, context+" > apply")...)
		for i, a := range n.Args {
			errors = append(errors, validateTerm(a, fmt.Sprintf("%s > apply arg %d", context, i))...)
		}
	case *Let:
		if len(n.Bindings) == 0 {
			errors = append(errors, fmt.Sprintf("%s: let has no bindings", context))
		}
		for _, b := range n.Bindings {
			errors = append(errors, validateTerm(b.Value, fmt.Sprintf("%s > let %s", context, b.Name))...)
		}
		errors = append(errors, validateTerm(n.Body, context+" > let body")...)
	case *Ite:
		errors = append(errors, validateTerm(n.Cond, context+" > if")...)
		errors = append(errors, validateTerm(n.Then, context+" > then")...)
		errors = append(errors, validateTerm(n.Else, context+" > else")...)
	case *Integer:
		if n.Value == nil {
			errors = append(errors, fmt.Sprintf("%s: integer literal has nil value", context))
		}
	case *Force:
		errors = append(errors, validateTerm(n.Term, context+" > force")...)
	case *Delay:
		errors = append(errors, validateTerm(n.Term, context+" > delay")...)
	}
	return errors
}
