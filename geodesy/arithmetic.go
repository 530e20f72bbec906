package geodesy

import (
	"math"

	"gonum.org/v1/gonum/num/dual"
)

// Arithmetic abstracts the scalar operations the conversion formulas need.
// Implementations exist for float64 and for dual numbers, letting the same
// formula body produce either values or values with first derivatives.
type Arithmetic[T any] interface {
	Const(v float64) T
	Add(x, y T) T
	Sub(x, y T) T
	Mul(x, y T) T
	Div(x, y T) T
	Sqrt(x T) T
	Sin(x T) T
	Cos(x T) T
	Atan2(y, x T) T
}

// Float64Ops evaluates the conversion formulas on plain float64 values.
type Float64Ops struct{}

func (Float64Ops) Const(v float64) float64 { return v }

func (Float64Ops) Add(x, y float64) float64 { return x + y }

func (Float64Ops) Sub(x, y float64) float64 { return x - y }

func (Float64Ops) Mul(x, y float64) float64 { return x * y }

func (Float64Ops) Div(x, y float64) float64 { return x / y }

func (Float64Ops) Sqrt(x float64) float64 { return math.Sqrt(x) }

func (Float64Ops) Sin(x float64) float64 { return math.Sin(x) }

func (Float64Ops) Cos(x float64) float64 { return math.Cos(x) }

func (Float64Ops) Atan2(y, x float64) float64 { return math.Atan2(y, x) }

// DualOps evaluates the conversion formulas on dual numbers, carrying first
// derivatives through every operation. Seed the input Emag fields to select
// the derivative direction.
type DualOps struct{}

func (DualOps) Const(v float64) dual.Number { return dual.Number{Real: v} }

func (DualOps) Add(x, y dual.Number) dual.Number { return dual.Add(x, y) }

func (DualOps) Sub(x, y dual.Number) dual.Number { return dual.Sub(x, y) }

func (DualOps) Mul(x, y dual.Number) dual.Number { return dual.Mul(x, y) }

func (DualOps) Div(x, y dual.Number) dual.Number { return dual.Mul(x, dual.Inv(y)) }

func (DualOps) Sqrt(x dual.Number) dual.Number { return dual.Sqrt(x) }

func (DualOps) Sin(x dual.Number) dual.Number { return dual.Sin(x) }

func (DualOps) Cos(x dual.Number) dual.Number { return dual.Cos(x) }

// Atan2 is not provided by the dual package; the derivative follows from
// d atan2(y, x) = (x·dy - y·dx) / (x² + y²).
func (DualOps) Atan2(y, x dual.Number) dual.Number {
	denom := x.Real*x.Real + y.Real*y.Real
	return dual.Number{
		Real: math.Atan2(y.Real, x.Real),
		Emag: (x.Real*y.Emag - y.Real*x.Emag) / denom,
	}
}
