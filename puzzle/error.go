package puzzle

import (
	"fmt"
)

/*

Errors

An Error describes a problem with a puzzle description or with an
operation on one.  It tells the caller "this thing failed to meet
this condition" and carries supplemental details, so callers can
distinguish malformed input (abort before searching) from the normal
negative outcomes the solver reports as plain values.

*/

// An ErrorScope explains what type of thing the error refers to.
type ErrorScope int

// Constants for the various error scopes.
const (
	UnknownScope ErrorScope = iota
	SpecScope
	TaskScope
	CellScope
	GroupScope
	InternalScope
	MaxScope
)

// The ErrorCondition is the predicate the scoped thing failed to
// satisfy.
type ErrorCondition int

// Constants for the various error conditions.
const (
	UnknownCondition ErrorCondition = iota
	GeneralCondition
	TooLargeCondition
	TooSmallCondition
	OutOfRangeCondition
	WrongCountCondition
	UnknownKindCondition
	SparseRegionsCondition
	NonRectangularCondition
	DuplicateValueCondition
	NoCandidatesCondition
	BadEncodingCondition
	MaxCondition
)

// An ErrorAttribute names the attribute that has the problem.
type ErrorAttribute int

// Constants for the various attribute codes.
const (
	UnknownAttribute ErrorAttribute = iota
	KindAttribute
	SizeAttribute
	GivensAttribute
	RegionAttribute
	CageSumsAttribute
	OrderAttribute
	BorderAttribute
	ValueAttribute
	TaskAttribute
	MaxAttribute
)

// The ErrorData provides details about the thing that failed to meet
// the predicate, such as the offending value and the violated limit.
type ErrorData []interface{}

// An Error is a structured description of a puzzle problem.
type Error struct {
	Scope     ErrorScope
	Condition ErrorCondition
	Attribute ErrorAttribute
	Values    ErrorData
	Message   string // custom message, overrides the generated one
}

// Error produces an error string.  If the Error has a pre-canned
// message it uses that, otherwise it builds an appropriate (English,
// non-localized) message from the parts.
func (e Error) Error() string {
	if len(e.Message) > 0 {
		return e.Message
	}
	values := e.Values
	nextVal := func() interface{} {
		if len(values) == 0 {
			return "<unknown>"
		}
		val := values[0]
		values = values[1:]
		return val
	}
	var es string
	switch e.Scope {
	case SpecScope:
		es = "Invalid puzzle description: "
	case TaskScope:
		es = "Invalid task string: "
	case CellScope:
		es = fmt.Sprintf("Problem in cell %v: ", nextVal())
	case GroupScope:
		es = fmt.Sprintf("Problem in %v: ", nextVal())
	case InternalScope:
		es = "Internal logic error: "
	default:
		es = "Unknown error: "
	}
	switch e.Attribute {
	case KindAttribute:
		es += "Puzzle family"
	case SizeAttribute:
		es += "Puzzle size"
	case GivensAttribute:
		es += "Given values"
	case RegionAttribute:
		es += "Region map"
	case CageSumsAttribute:
		es += "Cage sums"
	case OrderAttribute:
		es += "Ordering clue"
	case BorderAttribute:
		es += "Border clues"
	case ValueAttribute:
		es += "Value"
	case TaskAttribute:
		es += "Task data"
	default:
		es += "Attribute"
	}
	es += " (" + fmt.Sprint(nextVal()) + "): "
	switch e.Condition {
	case GeneralCondition:
		es += fmt.Sprint(nextVal())
	case TooLargeCondition:
		es += "Too large"
	case TooSmallCondition:
		es += "Too small"
	case OutOfRangeCondition:
		es += "Out of range for the puzzle grid"
	case WrongCountCondition:
		es += fmt.Sprintf("Expected %v entries", nextVal())
	case UnknownKindCondition:
		es += "Not a known puzzle family"
	case SparseRegionsCondition:
		es += "Region ids must be dense"
	case NonRectangularCondition:
		es += "Doesn't tile the grid"
	case DuplicateValueCondition:
		es += fmt.Sprintf("Value %v appears more than once", nextVal())
	case NoCandidatesCondition:
		es += "No remaining possible values"
	case BadEncodingCondition:
		es += fmt.Sprintf("Unexpected character %v", nextVal())
	default:
		es += fmt.Sprintf("Supplemental data is %v", values)
	}
	return es
}

// specError builds a SpecScope error for one bad attribute value.
func specError(attr ErrorAttribute, val interface{}, cond ErrorCondition) Error {
	return Error{
		Scope:     SpecScope,
		Condition: cond,
		Attribute: attr,
		Values:    ErrorData{val},
	}
}

// countError builds a SpecScope error for a clue array whose length
// doesn't match the grid dimensions.
func countError(attr ErrorAttribute, got, want int) Error {
	return Error{
		Scope:     SpecScope,
		Condition: WrongCountCondition,
		Attribute: attr,
		Values:    ErrorData{got, want},
	}
}

// TaskError builds a TaskScope error for the scrape package's task
// string decoders.
func TaskError(val interface{}, cond ErrorCondition) Error {
	return Error{
		Scope:     TaskScope,
		Condition: cond,
		Attribute: TaskAttribute,
		Values:    ErrorData{val},
	}
}
