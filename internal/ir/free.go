package ir

import "github.com/hashicorp/go-set/v2"

// FreeVars returns the variables referenced by t that no enclosing lambda
// or let binds.
func FreeVars(t Term) *set.Set[string] {
	free := set.New[string](0)
	collectFree(t, set.New[string](0), free)
	return free
}

// IsClosed reports whether t has no free variables.
func IsClosed(t Term) bool {
	return FreeVars(t).Empty()
}

func collectFree(t Term, bound, free *set.Set[string]) {
	switch n := t.(type) {
	case *Var:
		if !bound.Contains(n.Name) {
			free.Insert(n.Name)
		}
	case *Lambda:
		collectFree(n.Body, withNames(bound, n.Params...), free)
	case *Apply:
		collectFree(n.Fn, bound, free)
		for _, a := range n.Args {
			collectFree(a, bound, free)
		}
	case *Let:
		scope := bound
		for _, b := range n.Bindings {
			collectFree(b.Value, scope, free)
			scope = withNames(scope, b.Name)
		}
		collectFree(n.Body, scope, free)
	case *Ite:
		collectFree(n.Cond, bound, free)
		collectFree(n.Then, bound, free)
		collectFree(n.Else, bound, free)
	case *Force:
		collectFree(n.Term, bound, free)
	case *Delay:
		collectFree(n.Term, bound, free)
	}
}

// withNames returns a copy of bound extended with names.
func withNames(bound *set.Set[string], names ...string) *set.Set[string] {
	ext := set.New[string](bound.Size() + len(names))
	ext.InsertSet(bound)
	ext.InsertSlice(names)
	return ext
}
