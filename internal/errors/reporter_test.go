package errors

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"mapshim/internal/ast"
)

func init() {
	color.NoColor = true
}

func TestErrorReporter(t *testing.T) {
	source := `contract Test {
    mapping(uint => uint) x;
    function f() public { g(x); }
}`

	reporter := NewErrorReporter("test.sol", source)

	err := (&ConsistencyError{
		Code:     ErrorEscapingMapReference,
		Message:  "map 'x' escapes without an index",
		Position: ast.Position{Line: 3, Column: 29},
		Length:   1,
	}).CompilerError()
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "error["+ErrorEscapingMapReference+"]")
	assert.Contains(t, formatted, "escapes without an index")
	assert.Contains(t, formatted, "test.sol:3:29")
	assert.Contains(t, formatted, "function f() public { g(x); }")
	assert.Contains(t, formatted, "note:")
}

func TestFieldNotFoundError(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 5}

	err := FieldNotFound("Account", "balace", pos, []string{"balance", "owner"})
	assert.Equal(t, ErrorFieldNotFound, err.Code)
	assert.Contains(t, err.Message, "struct 'Account' has no field 'balace'")
	require.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "did you mean 'balance'")
	require.Len(t, err.Notes, 1)
	assert.Contains(t, err.Notes[0], "available fields: balance, owner")
}

func TestClosestName(t *testing.T) {
	candidates := []string{"balances", "allowances", "owner", "x"}

	assert.Equal(t, "balances", ClosestName("balance", candidates))
	assert.Equal(t, "owner", ClosestName("owne", candidates))
	assert.Equal(t, "", ClosestName("verydifferent", candidates))
	assert.Equal(t, "", ClosestName("y", nil))
}

func TestMarker(t *testing.T) {
	m := marker(6, 8, "^", levelColor(Error))
	assert.Equal(t, 5, strings.Count(m, " "))
	assert.Equal(t, 8, strings.Count(m, "^"))

	assert.Equal(t, "~", marker(0, 0, "~", levelColor(Note)), "spans cover at least one cell")
}

func TestDisplayColumnWideRunes(t *testing.T) {
	// the quoted literal takes eight bytes and six cells
	assert.Equal(t, 7, displayColumn(`"日本" + x`, 9))
	assert.Equal(t, 3, displayColumn("ab", 3))
	assert.Equal(t, 1, displayColumn("abc", 1))
}

func TestResolutionErrorReport(t *testing.T) {
	source := `contract C {
    mapping(address => uint) balances;
}`
	reporter := NewErrorReporter("token.sol", source)

	formatted := reporter.FormatError((&ResolutionError{
		Target:     "C.balance",
		Message:    "no state variable 'balance' in contract 'C'",
		Suggestion: "balances",
		Position:   ast.Position{Line: 1, Column: 10},
	}).CompilerError())

	assert.Contains(t, formatted, "error["+ErrorUnresolvedTarget+"]: cannot resolve target: no state variable 'balance'")
	assert.Contains(t, formatted, "--> token.sol:1:10")
	assert.Contains(t, formatted, "= target: C.balance")
	assert.Contains(t, formatted, "= help: did you mean 'balances'?")
	assert.Contains(t, formatted, "= help: a target names a state variable")
}

func TestPositionlessReport(t *testing.T) {
	reporter := NewErrorReporter("", "")

	formatted := reporter.FormatError((&NameCollisionExhausted{Name: "m_lib_x", Attempts: 2}).CompilerError())
	lines := strings.Split(strings.TrimSpace(formatted), "\n")

	assert.Equal(t, "error["+ErrorNameCollisionExhausted+"]: no free identifier for m_lib_x after 2 attempts", lines[0])
	assert.NotContains(t, formatted, "-->")
	assert.NotContains(t, formatted, ":0:0")
	assert.Contains(t, formatted, "= help: choose a different prefix")

	formatted = NewErrorReporter("mapshim.yaml", "").FormatError(
		NewError(ErrorInvalidConfig, "open mapshim.yaml: no such file", ast.Position{Filename: "mapshim.yaml"}).Build())
	assert.Contains(t, formatted, "--> mapshim.yaml\n")
}

func TestReplacementSpliced(t *testing.T) {
	source := `contract C {
    mapping(uint => Acount) accounts;
}`
	reporter := NewErrorReporter("test.sol", source)

	err := UndefinedType("Acount", ast.Position{Line: 2, Column: 21}, []string{"Account"})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "  2 │     mapping(uint => Acount) accounts;")
	assert.Contains(t, formatted, "= help: did you mean 'Account'?")
	assert.Contains(t, formatted, "  2 │     mapping(uint => Account) accounts;")
	assert.Contains(t, formatted, "    │                     ~~~~~~~\n")

	// a replacement outside the file is printed on its own
	err.Suggestions[0].Position = ast.Position{Line: 9, Column: 1}
	assert.Contains(t, reporter.FormatError(err), "    │ Account\n")
}

func TestErrorLevels(t *testing.T) {
	source := `test`
	reporter := NewErrorReporter("test.sol", source)
	pos := ast.Position{Line: 1, Column: 1}

	errorErr := CompilerError{Level: Error, Message: "test error", Position: pos}
	warningErr := CompilerError{Level: Warning, Message: "test warning", Position: pos}

	assert.Contains(t, reporter.FormatError(errorErr), "error:")
	assert.Contains(t, reporter.FormatError(warningErr), "warning:")
}

func TestAsCompilerError(t *testing.T) {
	inner := &ResolutionError{
		Target:     "C.balance",
		Message:    "no state variable 'balance' in contract 'C'",
		Suggestion: "balances",
	}
	wrapped := xerrors.Errorf("interposing C: %w", inner)

	ce, ok := AsCompilerError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrorUnresolvedTarget, ce.Code)
	require.Len(t, ce.Suggestions, 1)
	assert.Contains(t, ce.Suggestions[0].Message, "balances")

	var re *ResolutionError
	assert.True(t, xerrors.As(wrapped, &re))

	_, ok = AsCompilerError(xerrors.New("plain"))
	assert.False(t, ok)
}

func TestCoreErrorMessages(t *testing.T) {
	unsupported := &UnsupportedTypeError{Type: "fixed128x18", Reason: "fixed-point types have no storage encoding"}
	assert.Equal(t, "unsupported type fixed128x18: fixed-point types have no storage encoding", unsupported.Error())
	assert.Equal(t, ErrorUnsupportedType, unsupported.CompilerError().Code)

	exhausted := &NameCollisionExhausted{Name: "__mapshim_lib_uint256_to_bool", Attempts: 3}
	assert.Contains(t, exhausted.Error(), "after 3 attempts")
	assert.Equal(t, ErrorNameCollisionExhausted, exhausted.CompilerError().Code)

	consistency := &ConsistencyError{Message: "slot rewritten twice"}
	assert.Equal(t, ErrorConsistency, consistency.CompilerError().Code)
}

func TestErrorCategory(t *testing.T) {
	assert.Equal(t, "Parser", GetErrorCategory(ErrorUnexpectedToken))
	assert.Equal(t, "Type System", GetErrorCategory(ErrorUnsupportedType))
	assert.Equal(t, "Interposition", GetErrorCategory(ErrorConsistency))
	assert.Equal(t, "Tooling", GetErrorCategory(ErrorInvalidConfig))
	assert.Equal(t, "Interposed map is referenced without indexing", GetErrorDescription(ErrorEscapingMapReference))
}

func TestCompilerErrorAsError(t *testing.T) {
	err := UndefinedType("Acount", ast.Position{Line: 2, Column: 5}, []string{"Account"})

	assert.Equal(t, "error[E0001]: undefined type 'Acount'", err.Error())

	ce, ok := AsCompilerError(xerrors.Errorf("resolving: %w", err))
	require.True(t, ok)
	assert.Equal(t, ErrorUndefinedType, ce.Code)
}
