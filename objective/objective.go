// Package objective holds synthetic functions used to exercise the bandit
// engines. The engines never call them; drivers do.
package objective

import (
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Function is an objective with a known maximum over its domain.
type Function interface {
	// F evaluates the function at x, one coordinate per dimension.
	F(x []float64) float64

	// Max returns the maximum of F over Domain.
	Max() float64

	// Domain returns one [min, max] interval per dimension.
	Domain() [][2]float64
}

// Garland is x(1-x)(4 - sqrt|sin 60x|) on [0, 1]. Many local maxima.
type Garland struct{}

func (Garland) F(x []float64) float64 {
	v := x[0]
	return v * (1 - v) * (4 - math.Sqrt(math.Abs(math.Sin(60*v))))
}

// Max is reached at x = π/6, where the sine term vanishes.
func (Garland) Max() float64 { return 4 * math.Pi / 6 * (1 - math.Pi/6) }

func (Garland) Domain() [][2]float64 { return [][2]float64{{0, 1}} }

// DoubleSine oscillates with two different rates around its maximum at
// TMax. Its smoothness around the maximum is controlled by Rho1 and Rho2.
type DoubleSine struct {
	Rho1, Rho2, TMax float64
}

// NewDoubleSine returns DoubleSine with ρ1 = 0.3, ρ2 = 0.8, t_max = 0.5.
func NewDoubleSine() DoubleSine {
	return DoubleSine{Rho1: 0.3, Rho2: 0.8, TMax: 0.5}
}

func (d DoubleSine) F(x []float64) float64 {
	u := 2 * math.Abs(x[0]-d.TMax)
	if u == 0 {
		return 0
	}

	ep1 := -math.Log2(d.Rho1)
	ep2 := -math.Log2(d.Rho2)
	ew := math.Pow(u, ep2) - math.Pow(u, ep1)
	sine := (math.Sin(math.Pi*math.Log2(u)) + 1) / 2

	return sine*ew - math.Pow(u, ep2)
}

func (DoubleSine) Max() float64         { return 0 }
func (DoubleSine) Domain() [][2]float64 { return [][2]float64{{0, 1}} }

// Himmelblau is the negated Himmelblau function on [-5, 5]², scaled to stay
// within [-1, 0]. It has four global maxima.
type Himmelblau struct{}

const himmelblauScale = 890

func (Himmelblau) F(x []float64) float64 {
	a := x[0]*x[0] + x[1] - 11
	b := x[0] + x[1]*x[1] - 7

	return -(a*a + b*b) / himmelblauScale
}

func (Himmelblau) Max() float64         { return 0 }
func (Himmelblau) Domain() [][2]float64 { return [][2]float64{{-5, 5}, {-5, 5}} }

// Constant returns Value everywhere on the unit hypercube of Dims
// dimensions.
type Constant struct {
	Value float64
	Dims  int
}

func (c Constant) F([]float64) float64 { return c.Value }
func (c Constant) Max() float64        { return c.Value }

func (c Constant) Domain() [][2]float64 {
	dims := c.Dims
	if dims <= 0 {
		dims = 1
	}

	domain := make([][2]float64, dims)
	for i := range domain {
		domain[i] = [2]float64{0, 1}
	}

	return domain
}

var registry = map[string]func() Function{
	"garland":    func() Function { return Garland{} },
	"doublesine": func() Function { return NewDoubleSine() },
	"himmelblau": func() Function { return Himmelblau{} },
	"constant":   func() Function { return Constant{Value: 1} },
}

// Lookup returns the function registered under name, case insensitive.
func Lookup(name string) (Function, error) {
	build, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, errors.Errorf("unknown objective %q, available: %s", name, strings.Join(Names(), ", "))
	}

	return build(), nil
}

// Names lists the registered functions in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
