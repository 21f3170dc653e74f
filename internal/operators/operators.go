// Package operators resolves the network codes of MVG departures to the
// companies running them.
package operators

import "strings"

// Operator is a transport company
type Operator struct {
	Abbr string
	Name string
}

var operators = map[string]Operator{
	"swm": {Abbr: "MVG", Name: "Münchner Verkehrsgesellschaft"},
	"ddb": {Abbr: "DB", Name: "DB Regio (S-Bahn München)"},
	"mvv": {Abbr: "MVV", Name: "Münchner Verkehrs- und Tarifverbund"},
	"rvo": {Abbr: "RVO", Name: "Regionalverkehr Oberbayern"},
	"brb": {Abbr: "BRB", Name: "Bayerische Regiobahn"},
}

// GetOperator returns the operator of a network code, or nil if unknown
func GetOperator(network string) *Operator {
	op, ok := operators[strings.ToLower(strings.TrimSpace(network))]
	if !ok {
		return nil
	}
	return &op
}

// GetOperatorAbbr returns the operator abbreviation, or "" if unknown
func GetOperatorAbbr(network string) string {
	if op := GetOperator(network); op != nil {
		return op.Abbr
	}
	return ""
}

// GetOperatorName returns the operator name, or "" if unknown
func GetOperatorName(network string) string {
	if op := GetOperator(network); op != nil {
		return op.Name
	}
	return ""
}
