package source

// Declaration is a single `property: value` pair.
type Declaration struct {
	Property string
	Value    string
}

// Rule is one stylesheet rule. Selector may hold comma-separated
// sub-selectors.
type Rule struct {
	Selector     string
	Declarations []Declaration
}

// RuleSet is an ordered list of rules. Rules from several style blocks are
// pooled by appending.
type RuleSet []Rule
