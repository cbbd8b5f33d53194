package types

type SpecifierOp string

const (
	SpecifierOpNone   SpecifierOp = ""
	SpecifierOpArbEq  SpecifierOp = "==="
	SpecifierOpEq     SpecifierOp = "=="
	SpecifierOpNe     SpecifierOp = "!="
	SpecifierOpCompat SpecifierOp = "~="
	SpecifierOpGte    SpecifierOp = ">="
	SpecifierOpLte    SpecifierOp = "<="
	SpecifierOpGt     SpecifierOp = ">"
	SpecifierOpLt     SpecifierOp = "<"
)

type SpecKind string

const (
	SpecKindProject SpecKind = "project"
)

// ConstraintClass buckets a requirement by the strictness of its
// specifier set. Used by inspect summaries.
type ConstraintClass string

const (
	ConstraintClassPinned        ConstraintClass = "pinned"
	ConstraintClassCompatible    ConstraintClass = "compatible"
	ConstraintClassBounded       ConstraintClass = "bounded"
	ConstraintClassUnconstrained ConstraintClass = "unconstrained"
)
