package units

import (
	"errors"

	"github.com/katalvlaran/rpunits/rule"
)

// Sentinel errors. Every error returned by this package wraps exactly one
// of them; Code maps them onto the integer contract used by bindings.
var (
	// ErrUnknownUnit indicates a unit token that matches no registered unit,
	// with or without a metric prefix.
	ErrUnknownUnit = errors.New("units: unrecognized unit")

	// ErrUnparsableValue indicates no numeric literal at the start of a value.
	ErrUnparsableValue = errors.New("units: no numeric value found")

	// ErrIncompatibleUnits indicates source and destination dimensions differ.
	ErrIncompatibleUnits = errors.New("units: incompatible units")

	// ErrNoConversionPath indicates two compatible units with no relation
	// chain between them.
	ErrNoConversionPath = errors.New("units: no conversion path")

	// ErrDuplicateDefinition indicates Define on a registered symbol.
	ErrDuplicateDefinition = errors.New("units: unit already defined")

	// ErrNonLinearExponent indicates a non-linear unit (temperature) used
	// with an exponent other than 1 or inside a compound expression.
	ErrNonLinearExponent = errors.New("units: non-linear unit requires exponent 1")

	// ErrUnitSyntax indicates a malformed unit expression.
	ErrUnitSyntax = errors.New("units: malformed unit expression")

	// ErrMissingType indicates a basis unit defined without a type.
	ErrMissingType = errors.New("units: basis unit requires a type")

	// ErrTypeMismatch indicates a type that disagrees with the basis or
	// relation partner.
	ErrTypeMismatch = errors.New("units: type mismatch")

	// ErrUnitInUse indicates Delete on a unit that is another unit's basis.
	ErrUnitInUse = errors.New("units: unit is a basis of other units")

	// ErrSealed indicates a mutation after Seal.
	ErrSealed = errors.New("units: registry is sealed")

	// ErrInvalidSymbol indicates a symbol that is empty or not purely alphabetic.
	ErrInvalidSymbol = errors.New("units: invalid unit symbol")
)

// Integer result codes returned by the binding facade.
const (
	CodeOK                  = 0
	CodeUnknownUnit         = 1
	CodeUnparsableValue     = 2
	CodeIncompatibleUnits   = 3
	CodeNoConversionPath    = 4
	CodeDuplicateDefinition = 5
	CodeNonLinearExponent   = 6
	CodeUnitSyntax          = 7
	CodeMissingType         = 8
	CodeTypeMismatch        = 9
	CodeUnitInUse           = 10
	CodeSealed              = 11
	CodeInvalidSymbol       = 12
	CodeBadRule             = 13
	CodeOther               = -1
)

var codeTable = []struct {
	err  error
	code int
}{
	{ErrUnknownUnit, CodeUnknownUnit},
	{ErrUnparsableValue, CodeUnparsableValue},
	{ErrIncompatibleUnits, CodeIncompatibleUnits},
	{ErrNoConversionPath, CodeNoConversionPath},
	{ErrDuplicateDefinition, CodeDuplicateDefinition},
	{ErrNonLinearExponent, CodeNonLinearExponent},
	{ErrUnitSyntax, CodeUnitSyntax},
	{ErrMissingType, CodeMissingType},
	{ErrTypeMismatch, CodeTypeMismatch},
	{ErrUnitInUse, CodeUnitInUse},
	{ErrSealed, CodeSealed},
	{ErrInvalidSymbol, CodeInvalidSymbol},
	{rule.ErrZeroScale, CodeBadRule},
	{rule.ErrNilFunc, CodeBadRule},
	{ErrBadDefinition, CodeBadRule},
}

// Code collapses err to its integer result code: 0 for nil, -1 for errors
// outside the package taxonomy.
func Code(err error) int {
	if err == nil {
		return CodeOK
	}
	for _, c := range codeTable {
		if errors.Is(err, c.err) {
			return c.code
		}
	}

	return CodeOther
}
