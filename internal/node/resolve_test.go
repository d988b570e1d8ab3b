package node

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertResolved compares both results of the node with the given id.
// Values are compared with a relative tolerance since unit conversion goes
// through SI.
func assertResolved(t *testing.T, g *memGraph, id string, wantValue ValueResult, wantUnit UnitResult) {
	t.Helper()
	n := g.node(id)
	require.NotNil(t, n, "node %q", id)

	got := n.ComputedValueResult()
	if wantValue.Valid && got.Valid {
		if wantValue.Value == 0 {
			assert.Zero(t, got.Value)
		} else {
			assert.InEpsilon(t, wantValue.Value, got.Value, 1e-12)
		}
		got.Value = wantValue.Value
	}
	assert.Equal(t, wantValue, got, "value result")
	assert.Equal(t, wantUnit, n.ComputedUnitResult(), "unit result")
}

func TestResolve(t *testing.T) {
	testCases := []struct {
		name      string
		fixtures  []fixture
		wantValue ValueResult
		wantUnit  UnitResult
	}{
		{
			name:      "no inputs uses own value",
			fixtures:  []fixture{{WithID("variable"), WithValue(123.5)}},
			wantValue: ValueResult{Value: 123.5, Valid: true},
		},
		{
			name:     "no inputs and no value",
			fixtures: []fixture{{WithID("variable"), WithUnit("m")}},
			wantUnit: UnitResult{Unit: "m"},
		},
		{
			name: "single input ignores own value",
			fixtures: []fixture{
				{WithID("input"), WithName("a"), WithValue(999.9)},
				{WithID("variable"), WithExpression("a"), WithValue(123.5), WithInputs("input")},
			},
			wantValue: ValueResult{Value: 999.9, Valid: true},
		},
		{
			name: "single input of zero",
			fixtures: []fixture{
				{WithID("input"), WithName("a"), WithValue(0)},
				{WithID("variable"), WithExpression("a"), WithValue(123.5), WithInputs("input")},
			},
			wantValue: ValueResult{Value: 0, Valid: true},
		},
		{
			name: "single input with a unit",
			fixtures: []fixture{
				{WithID("input"), WithName("a"), WithValue(999.9), WithUnit("mm")},
				{WithID("variable"), WithExpression("a"), WithValue(123.5), WithInputs("input")},
			},
			wantValue: ValueResult{Value: 999.9, Valid: true},
			wantUnit:  UnitResult{Unit: "mm"},
		},
		{
			name: "pass through without expression keeps zero",
			fixtures: []fixture{
				{WithID("input"), WithValue(0), WithUnit("mm")},
				{WithID("variable"), WithValue(123.5), WithInputs("input")},
			},
			wantValue: ValueResult{Value: 0, Valid: true},
			wantUnit:  UnitResult{Unit: "mm"},
		},
		{
			name: "two inputs without operation",
			fixtures: []fixture{
				{WithID("inputA"), WithValue(999.9)},
				{WithID("inputB"), WithValue(111.1)},
				{WithID("variable"), WithValue(123.5), WithInputs("inputA", "inputB")},
			},
			wantValue: ValueResult{Error: NoOperation},
		},
		{
			name: "two inputs without operation and a unit",
			fixtures: []fixture{
				{WithID("inputA"), WithValue(999.9)},
				{WithID("inputB"), WithValue(111.1)},
				{WithID("variable"), WithValue(123.5), WithUnit("m"), WithInputs("inputA", "inputB")},
			},
			wantValue: ValueResult{Error: NoOperation},
		},
		{
			name: "three inputs without expression",
			fixtures: []fixture{
				{WithID("inputA"), WithValue(1)},
				{WithID("inputB"), WithValue(2)},
				{WithID("inputC"), WithValue(3)},
				{WithID("variable"), WithOperation(Add), WithInputs("inputA", "inputB", "inputC")},
			},
			wantValue: ValueResult{Error: NoExpression},
		},
		{
			name: "valueless input makes the result valueless",
			fixtures: []fixture{
				{WithID("inputA"), WithName("a"), WithValue(111.1)},
				{WithID("inputB"), WithName("b")},
				{WithID("variable"), WithValue(123.5), WithInputs("inputA", "inputB"), WithExpression("a+b")},
			},
		},
		{
			name: "unused input may be valueless",
			fixtures: []fixture{
				{WithID("inputA"), WithName("a"), WithValue(111.1)},
				{WithID("inputB"), WithName("b")},
				{WithID("variable"), WithValue(123.5), WithInputs("inputA", "inputB"), WithExpression("a")},
			},
			wantValue: ValueResult{Value: 111.1, Valid: true},
		},
		{
			name: "expression multiply",
			fixtures: []fixture{
				{WithID("inputA"), WithName("a"), WithValue(999)},
				{WithID("inputB"), WithName("b"), WithValue(111)},
				{WithID("variable"), WithValue(123.5), WithInputs("inputA", "inputB"), WithExpression("a*b")},
			},
			wantValue: ValueResult{Value: 110889, Valid: true},
		},
		{
			name: "operation multiply with units",
			fixtures: []fixture{
				{WithID("inputA"), WithValue(999), WithUnit("m")},
				{WithID("inputB"), WithValue(111), WithUnit("m")},
				{WithID("variable"), WithOperation(Multiply), WithInputs("inputA", "inputB")},
			},
			wantValue: ValueResult{Value: 110889, Valid: true},
			wantUnit:  UnitResult{Unit: "m^2"},
		},
		{
			name: "operation divide with units",
			fixtures: []fixture{
				{WithID("inputA"), WithValue(20), WithUnit("m")},
				{WithID("inputB"), WithValue(10), WithUnit("s")},
				{WithID("variable"), WithOperation(Divide), WithInputs("inputA", "inputB")},
			},
			wantValue: ValueResult{Value: 2, Valid: true},
			wantUnit:  UnitResult{Unit: "m / s"},
		},
		{
			name: "operation add with matching units",
			fixtures: []fixture{
				{WithID("inputA"), WithValue(20), WithUnit("m")},
				{WithID("inputB"), WithValue(10), WithUnit("m")},
				{WithID("variable"), WithOperation(Add), WithInputs("inputA", "inputB")},
			},
			wantValue: ValueResult{Value: 30, Valid: true},
			wantUnit:  UnitResult{Unit: "m"},
		},
		{
			name: "operation add with different units",
			fixtures: []fixture{
				{WithID("inputA"), WithValue(20), WithUnit("m")},
				{WithID("inputB"), WithValue(10), WithUnit("s")},
				{WithID("variable"), WithOperation(Add), WithInputs("inputA", "inputB")},
			},
			wantValue: ValueResult{Error: IncompatibleUnits},
			wantUnit:  UnitResult{Error: IncompatibleUnits},
		},
		{
			name: "operation subtract with matching units",
			fixtures: []fixture{
				{WithID("inputA"), WithValue(20), WithUnit("m")},
				{WithID("inputB"), WithValue(5), WithUnit("m")},
				{WithID("variable"), WithOperation(Subtract), WithInputs("inputA", "inputB")},
			},
			wantValue: ValueResult{Value: 15, Valid: true},
			wantUnit:  UnitResult{Unit: "m"},
		},
		{
			name: "operation subtract with different units",
			fixtures: []fixture{
				{WithID("inputA"), WithValue(20), WithUnit("m")},
				{WithID("inputB"), WithValue(5), WithUnit("s")},
				{WithID("variable"), WithOperation(Subtract), WithInputs("inputA", "inputB")},
			},
			wantValue: ValueResult{Error: IncompatibleUnits},
			wantUnit:  UnitResult{Error: IncompatibleUnits},
		},
		{
			name: "operation skips stale inputs",
			fixtures: []fixture{
				{WithID("inputA"), WithValue(20), WithUnit("m")},
				{WithID("inputB"), WithValue(5), WithUnit("m")},
				{WithID("variable"), WithOperation(Subtract), WithInputs("inputA", "gone", "inputB")},
			},
			wantValue: ValueResult{Value: 15, Valid: true},
			wantUnit:  UnitResult{Unit: "m"},
		},
		{
			name: "product converted to output unit",
			fixtures: []fixture{
				{WithID("inputA"), WithName("a"), WithValue(2), WithUnit("m")},
				{WithID("inputB"), WithName("b"), WithValue(3), WithUnit("m")},
				{WithID("variable"), WithValue(123.5), WithInputs("inputA", "inputB"), WithExpression("a*b to mm^2")},
			},
			wantValue: ValueResult{Value: 6_000_000, Valid: true},
			wantUnit:  UnitResult{Unit: "mm^2"},
		},
		{
			name: "custom unit added to itself",
			fixtures: []fixture{
				{WithID("inputA"), WithName("a"), WithValue(98), WithUnit("things")},
				{WithID("inputB"), WithName("b"), WithValue(2), WithUnit("things")},
				{WithID("variable"), WithInputs("inputA", "inputB"), WithExpression("a+b")},
			},
			wantValue: ValueResult{Value: 100, Valid: true},
			wantUnit:  UnitResult{Unit: "things"},
		},
		{
			name: "custom unit subtracted from itself",
			fixtures: []fixture{
				{WithID("inputA"), WithName("a"), WithValue(98), WithUnit("things")},
				{WithID("inputB"), WithName("b"), WithValue(2), WithUnit("things")},
				{WithID("variable"), WithInputs("inputA", "inputB"), WithExpression("a-b")},
			},
			wantValue: ValueResult{Value: 96, Valid: true},
			wantUnit:  UnitResult{Unit: "things"},
		},
		{
			name: "custom unit divided by itself",
			fixtures: []fixture{
				{WithID("inputA"), WithName("a"), WithValue(98), WithUnit("things")},
				{WithID("inputB"), WithName("b"), WithValue(2), WithUnit("things")},
				{WithID("variable"), WithInputs("inputA", "inputB"), WithExpression("a/b")},
			},
			wantValue: ValueResult{Value: 49, Valid: true},
			wantUnit:  UnitResult{Message: UnitsCancel},
		},
		{
			name: "compound custom unit times custom unit",
			fixtures: []fixture{
				{WithID("inputA"), WithName("a"), WithValue(50), WithUnit("m/things")},
				{WithID("inputB"), WithName("b"), WithValue(2), WithUnit("things")},
				{WithID("variable"), WithInputs("inputA", "inputB"), WithExpression("a*b")},
			},
			wantValue: ValueResult{Value: 100, Valid: true},
			wantUnit:  UnitResult{Unit: "m"},
		},
		{
			name: "sum keeps the first unit",
			fixtures: []fixture{
				{WithID("inputA"), WithName("a"), WithValue(1), WithUnit("m")},
				{WithID("inputB"), WithName("b"), WithValue(100), WithUnit("cm")},
				{WithID("variable"), WithInputs("inputA", "inputB"), WithExpression("a+b")},
			},
			wantValue: ValueResult{Value: 2, Valid: true},
			wantUnit:  UnitResult{Unit: "m"},
		},
		{
			name: "sum of valueless units",
			fixtures: []fixture{
				{WithID("inputA"), WithName("a"), WithUnit("m")},
				{WithID("inputB"), WithName("b"), WithUnit("cm")},
				{WithID("variable"), WithInputs("inputA", "inputB"), WithExpression("a+b")},
			},
			wantUnit: UnitResult{Unit: "m"},
		},
		{
			name: "difference keeps the first unit",
			fixtures: []fixture{
				{WithID("inputA"), WithName("a"), WithValue(2), WithUnit("m")},
				{WithID("inputB"), WithName("b"), WithValue(100), WithUnit("cm")},
				{WithID("variable"), WithInputs("inputA", "inputB"), WithExpression("a-b")},
			},
			wantValue: ValueResult{Value: 1, Valid: true},
			wantUnit:  UnitResult{Unit: "m"},
		},
		{
			name: "quotient of compatible units cancels",
			fixtures: []fixture{
				{WithID("inputA"), WithName("a"), WithValue(1), WithUnit("m")},
				{WithID("inputB"), WithName("b"), WithValue(100), WithUnit("cm")},
				{WithID("variable"), WithInputs("inputA", "inputB"), WithExpression("a/b")},
			},
			wantValue: ValueResult{Value: 1, Valid: true},
			wantUnit:  UnitResult{Message: UnitsCancel},
		},
		{
			name: "quotient of valueless units cancels",
			fixtures: []fixture{
				{WithID("inputA"), WithName("a"), WithUnit("m")},
				{WithID("inputB"), WithName("b"), WithUnit("cm")},
				{WithID("variable"), WithInputs("inputA", "inputB"), WithExpression("a/b")},
			},
			wantUnit: UnitResult{Message: UnitsCancel},
		},
		{
			name: "quotient of custom units",
			fixtures: []fixture{
				{WithID("inputA"), WithName("a"), WithValue(1), WithUnit("widgets")},
				{WithID("inputB"), WithName("b"), WithValue(100), WithUnit("widgets")},
				{WithID("variable"), WithInputs("inputA", "inputB"), WithExpression("a/b")},
			},
			wantValue: ValueResult{Value: 0.01, Valid: true},
			wantUnit:  UnitResult{Message: UnitsCancel},
		},
		{
			name: "first input valued second valueless",
			fixtures: []fixture{
				{WithID("inputA"), WithName("a"), WithValue(1), WithUnit("m")},
				{WithID("inputB"), WithName("b"), WithUnit("cm")},
				{WithID("variable"), WithInputs("inputA", "inputB"), WithExpression("a+b")},
			},
			wantUnit: UnitResult{Unit: "m"},
		},
		{
			name: "first input valueless second valued",
			fixtures: []fixture{
				{WithID("inputA"), WithName("a"), WithUnit("m")},
				{WithID("inputB"), WithName("b"), WithValue(1), WithUnit("cm")},
				{WithID("variable"), WithInputs("inputA", "inputB"), WithExpression("a+b")},
			},
			wantUnit: UnitResult{Unit: "m"},
		},
		{
			name: "unitless plus unit",
			fixtures: []fixture{
				{WithID("inputA"), WithName("a"), WithValue(1)},
				{WithID("inputB"), WithName("b"), WithValue(1), WithUnit("m")},
				{WithID("variable"), WithInputs("inputA", "inputB"), WithExpression("a+b")},
			},
			wantValue: ValueResult{Error: IncompatibleUnits},
			wantUnit:  UnitResult{Error: IncompatibleUnits},
		},
		{
			name: "unit plus unitless",
			fixtures: []fixture{
				{WithID("inputA"), WithName("a"), WithValue(1), WithUnit("m")},
				{WithID("inputB"), WithName("b"), WithValue(1)},
				{WithID("variable"), WithInputs("inputA", "inputB"), WithExpression("a+b")},
			},
			wantValue: ValueResult{Error: IncompatibleUnits},
			wantUnit:  UnitResult{Error: IncompatibleUnits},
		},
		{
			name: "unitless plus unit with output unit",
			fixtures: []fixture{
				{WithID("inputA"), WithName("a"), WithValue(1)},
				{WithID("inputB"), WithName("b"), WithValue(1), WithUnit("m")},
				{WithID("variable"), WithUnit("m"), WithInputs("inputA", "inputB"), WithExpression("a+b")},
			},
			wantValue: ValueResult{Error: IncompatibleUnits},
			wantUnit:  UnitResult{Unit: "m", Error: IncompatibleUnits},
		},
		{
			name: "unit plus unitless with output unit",
			fixtures: []fixture{
				{WithID("inputA"), WithName("a"), WithValue(1), WithUnit("m")},
				{WithID("inputB"), WithName("b"), WithValue(1)},
				{WithID("variable"), WithUnit("m"), WithInputs("inputA", "inputB"), WithExpression("a+b")},
			},
			wantValue: ValueResult{Error: IncompatibleUnits},
			wantUnit:  UnitResult{Unit: "m", Error: IncompatibleUnits},
		},
		{
			name: "conversion in expression",
			fixtures: []fixture{
				{WithID("input"), WithName("a"), WithValue(999.9), WithUnit("mm")},
				{WithID("variable"), WithValue(123.5), WithInputs("input"), WithExpression("a to cm")},
			},
			wantValue: ValueResult{Value: 99.99, Valid: true},
			wantUnit:  UnitResult{Unit: "cm"},
		},
		{
			name: "conversion of zero",
			fixtures: []fixture{
				{WithID("input"), WithName("a"), WithValue(0), WithUnit("mm")},
				{WithID("variable"), WithValue(123.5), WithInputs("input"), WithExpression("a to cm")},
			},
			wantValue: ValueResult{Value: 0, Valid: true},
			wantUnit:  UnitResult{Unit: "cm"},
		},
		{
			name: "conversion of a valueless unit",
			fixtures: []fixture{
				{WithID("input"), WithName("a"), WithUnit("mm")},
				{WithID("variable"), WithValue(123.5), WithInputs("input"), WithExpression("a to cm")},
			},
			wantUnit: UnitResult{Unit: "cm"},
		},
		{
			name: "own unit converts the input",
			fixtures: []fixture{
				{WithID("input"), WithValue(999.9), WithUnit("mm")},
				{WithID("variable"), WithUnit("cm"), WithInputs("input")},
			},
			wantValue: ValueResult{Value: 99.99, Valid: true},
			wantUnit:  UnitResult{Unit: "cm"},
		},
		{
			name: "incompatible conversion",
			fixtures: []fixture{
				{WithID("input"), WithName("a"), WithValue(999.9), WithUnit("mm")},
				{WithID("variable"), WithValue(123.5), WithInputs("input"), WithExpression("a to seconds")},
			},
			wantValue: ValueResult{Error: IncompatibleUnits},
			wantUnit:  UnitResult{Error: IncompatibleUnits},
		},
		{
			name: "incompatible conversion of a valueless unit",
			fixtures: []fixture{
				{WithID("input"), WithName("a"), WithUnit("mm")},
				{WithID("variable"), WithValue(123.5), WithInputs("input"), WithExpression("a to seconds")},
			},
			wantUnit: UnitResult{Error: IncompatibleUnits},
		},
		{
			name: "compound custom unit conversion",
			fixtures: []fixture{
				{WithID("input"), WithName("a"), WithValue(9), WithUnit("m/things")},
				{WithID("variable"), WithInputs("input"), WithExpression("a to cm/things")},
			},
			wantValue: ValueResult{Value: 900, Valid: true},
			wantUnit:  UnitResult{Unit: "cm / things"},
		},
		{
			name: "incomplete unit string",
			fixtures: []fixture{
				{WithID("inputA"), WithName("a"), WithValue(1), WithUnit("m/")},
				{WithID("inputB"), WithName("b"), WithValue(100), WithUnit("s")},
				{WithID("variable"), WithInputs("inputA", "inputB"), WithExpression("a*b")},
			},
			wantValue: ValueResult{Message: CannotComputeValue},
			wantUnit:  UnitResult{Error: InvalidInputUnits},
		},
		{
			name: "incomplete unit conversion",
			fixtures: []fixture{
				{WithID("input"), WithName("a"), WithValue(9), WithUnit("m/")},
				{WithID("variable"), WithInputs("input"), WithExpression("a to cm")},
			},
			wantValue: ValueResult{Message: CannotComputeValue},
			wantUnit:  UnitResult{Error: InvalidInputUnits},
		},
		{
			name: "letter that is not a unit character",
			fixtures: []fixture{
				{WithID("input"), WithName("a"), WithValue(1), WithUnit("Ā")},
				{WithID("variable"), WithInputs("input"), WithExpression("a")},
			},
			wantValue: ValueResult{Message: CannotComputeValue},
			wantUnit:  UnitResult{Error: InvalidInputUnits},
		},
		{
			name: "symbol that is not a unit character",
			fixtures: []fixture{
				{WithID("input"), WithName("a"), WithValue(1), WithUnit("✔")},
				{WithID("variable"), WithInputs("input"), WithExpression("a")},
			},
			wantValue: ValueResult{Message: CannotComputeValue},
			wantUnit:  UnitResult{Error: InvalidInputUnits},
		},
		{
			name: "unknown symbol",
			fixtures: []fixture{
				{WithID("input"), WithName("a"), WithValue(999.9), WithUnit("mm")},
				{WithID("variable"), WithValue(123.5), WithInputs("input"), WithExpression("b")},
			},
			wantValue: ValueResult{Error: UnknownSymbol("b")},
			wantUnit:  UnitResult{Error: UnknownSymbol("b")},
		},
		{
			name: "chained nodes",
			fixtures: []fixture{
				{WithID("distance"), WithName("d"), WithValue(20), WithUnit("m")},
				{WithID("time"), WithName("t"), WithValue(10), WithUnit("s")},
				{WithID("speed"), WithName("v"), WithInputs("distance", "time"), WithExpression("d / t")},
				{WithID("variable"), WithInputs("speed"), WithExpression("v to km/h")},
			},
			wantValue: ValueResult{Value: 7.2, Valid: true},
			wantUnit:  UnitResult{Unit: "km / h"},
		},
		{
			name: "product unit passed through",
			fixtures: []fixture{
				{WithID("force"), WithName("f"), WithValue(2), WithUnit("N")},
				{WithID("distance"), WithName("d"), WithValue(3), WithUnit("m")},
				{WithID("work"), WithName("w"), WithInputs("force", "distance"), WithExpression("f*d")},
				{WithID("variable"), WithInputs("work"), WithExpression("w")},
			},
			wantValue: ValueResult{Value: 6, Valid: true},
			wantUnit:  UnitResult{Unit: "N m"},
		},
		{
			name: "product unit typed on an input",
			fixtures: []fixture{
				{WithID("input"), WithName("x"), WithValue(5), WithUnit("kg m")},
				{WithID("variable"), WithInputs("input"), WithExpression("x * 2")},
			},
			wantValue: ValueResult{Value: 10, Valid: true},
			wantUnit:  UnitResult{Unit: "kg m"},
		},
		{
			name: "indeterminate result",
			fixtures: []fixture{
				{WithID("inputA"), WithName("a"), WithValue(0)},
				{WithID("inputB"), WithName("b"), WithValue(0)},
				{WithID("variable"), WithInputs("inputA", "inputB"), WithExpression("a / b")},
			},
			wantValue: ValueResult{Message: CannotComputeValue},
			wantUnit:  UnitResult{},
		},
		{
			name: "indeterminate result with cancelling units",
			fixtures: []fixture{
				{WithID("inputA"), WithName("a"), WithValue(0), WithUnit("m")},
				{WithID("inputB"), WithName("b"), WithValue(0), WithUnit("m")},
				{WithID("variable"), WithInputs("inputA", "inputB"), WithExpression("a / b")},
			},
			wantValue: ValueResult{Message: CannotComputeValue},
			wantUnit:  UnitResult{Message: UnitsCancel},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := buildGraph(t, nil, tc.fixtures...)
			assertResolved(t, g, "variable", tc.wantValue, tc.wantUnit)
		})
	}
}

func TestResolve_FollowsEdits(t *testing.T) {
	g := buildGraph(t, nil,
		fixture{WithID("inputA"), WithName("a"), WithValue(1), WithUnit("m")},
		fixture{WithID("inputB"), WithName("b"), WithValue(2), WithUnit("m")},
		fixture{WithID("variable"), WithInputs("inputA", "inputB"), WithExpression("a+b")},
	)
	assertResolved(t, g, "variable", ValueResult{Value: 3, Valid: true}, UnitResult{Unit: "m"})

	g.node("inputB").SetTemporaryValue(10)
	assertResolved(t, g, "variable", ValueResult{Value: 11, Valid: true}, UnitResult{Unit: "m"})

	g.node("variable").SetUnit("cm")
	assertResolved(t, g, "variable", ValueResult{Value: 1100, Valid: true}, UnitResult{Unit: "cm"})

	g.node("inputA").SetUnit("s")
	assertResolved(t, g, "variable", ValueResult{Error: IncompatibleUnits}, UnitResult{Unit: "cm", Error: IncompatibleUnits})

	g.remove("inputA")
	assertResolved(t, g, "variable", ValueResult{Error: UnknownSymbol("a")}, UnitResult{Error: UnknownSymbol("a")})
}

func TestResolve_Cycles(t *testing.T) {
	t.Run("mutual reference", func(t *testing.T) {
		var logs bytes.Buffer
		g := buildGraph(t, &logs,
			fixture{WithID("inputA"), WithName("a"), WithInputs("inputB"), WithExpression("b")},
			fixture{WithID("inputB"), WithName("b"), WithInputs("inputA"), WithExpression("a")},
		)

		assertResolved(t, g, "inputB", ValueResult{Error: CycleDetected}, UnitResult{Error: CycleDetected})
		assert.Equal(t, 4, strings.Count(logs.String(), "level=WARN"), logs.String())
		assert.Contains(t, logs.String(), "node_id=inputA")
		assert.Contains(t, logs.String(), "node_id=inputB")
	})

	t.Run("self reference through an unused input", func(t *testing.T) {
		var logs bytes.Buffer
		g := buildGraph(t, &logs,
			fixture{WithID("variable"), WithName("a"), WithValue(1), WithInputs("variable"), WithExpression("2")},
		)

		assertResolved(t, g, "variable", ValueResult{Error: CycleDetected}, UnitResult{Error: CycleDetected})
		assert.Equal(t, 2, strings.Count(logs.String(), "level=WARN"), logs.String())
	})

	t.Run("downstream of a cycle", func(t *testing.T) {
		var logs bytes.Buffer
		g := buildGraph(t, &logs,
			fixture{WithID("inputA"), WithName("a"), WithInputs("inputB"), WithExpression("b")},
			fixture{WithID("inputB"), WithName("b"), WithInputs("inputA"), WithExpression("a")},
			fixture{WithID("variable"), WithInputs("inputA"), WithExpression("a * 2")},
		)

		v := g.node("variable").ComputedValueResult()
		assert.False(t, v.Valid)
		assert.Equal(t, 2, strings.Count(logs.String(), "level=WARN"), logs.String())
	})

	t.Run("breaking the cycle recovers", func(t *testing.T) {
		g := buildGraph(t, nil,
			fixture{WithID("inputA"), WithName("a"), WithValue(3), WithInputs("inputB"), WithExpression("b")},
			fixture{WithID("inputB"), WithName("b"), WithValue(4), WithInputs("inputA"), WithExpression("a")},
		)
		assertResolved(t, g, "inputA", ValueResult{Error: CycleDetected}, UnitResult{Error: CycleDetected})

		g.node("inputB").SetInputs()
		assertResolved(t, g, "inputA", ValueResult{Value: 4, Valid: true}, UnitResult{})
	})
}

func TestResolve_SyntaxError(t *testing.T) {
	g := buildGraph(t, nil,
		fixture{WithID("input"), WithName("a"), WithValue(1)},
		fixture{WithID("variable"), WithInputs("input"), WithExpression("a +")},
	)
	n := g.node("variable")

	v := n.ComputedValueResult()
	assert.False(t, v.Valid)
	assert.True(t, strings.HasPrefix(v.Error, "unknown error: syntax error"), v.Error)
	assert.Equal(t, v.Error, n.ComputedUnitError())
}

func TestComputedValueWithSignificantDigits(t *testing.T) {
	g := buildGraph(t, nil,
		fixture{WithID("input"), WithName("a"), WithValue(999.9), WithUnit("mm")},
		fixture{WithID("big"), WithValue(1234.56789)},
		fixture{WithID("variable"), WithInputs("input"), WithExpression("a to seconds")},
	)

	assert.Equal(t, "999.9", g.node("input").ComputedValueWithSignificantDigits())
	assert.Equal(t, "1,234.5679", g.node("big").ComputedValueWithSignificantDigits())
	assert.Equal(t, "NaN", g.node("variable").ComputedValueWithSignificantDigits())
}
