package initwfn

import G "gorgonia.org/gorgonia"

// GlorotUConfig configures Glorot uniform initialization
type GlorotUConfig struct {
	Gain float64
}

// NewGlorotU returns a new Glorot uniform weight initializer
func NewGlorotU(gain float64) (*InitWFn, error) {
	return newInitWFn(GlorotUConfig{Gain: gain})
}

func (g GlorotUConfig) Type() Type { return GlorotU }
func (g GlorotUConfig) Create() G.InitWFn { return G.GlorotU(g.Gain) }

// GlorotNConfig configures Glorot normal initialization
type GlorotNConfig struct {
	Gain float64
}

// NewGlorotN returns a new Glorot normal weight initializer
func NewGlorotN(gain float64) (*InitWFn, error) {
	return newInitWFn(GlorotNConfig{Gain: gain})
}

func (g GlorotNConfig) Type() Type { return GlorotN }
func (g GlorotNConfig) Create() G.InitWFn { return G.GlorotN(g.Gain) }

// HeUConfig configures He uniform initialization
type HeUConfig struct {
	Gain float64
}

// NewHeU returns a new He uniform weight initializer
func NewHeU(gain float64) (*InitWFn, error) {
	return newInitWFn(HeUConfig{Gain: gain})
}

func (h HeUConfig) Type() Type { return HeU }
func (h HeUConfig) Create() G.InitWFn { return G.HeU(h.Gain) }

// HeNConfig configures He normal initialization
type HeNConfig struct {
	Gain float64
}

// NewHeN returns a new He normal weight initializer
func NewHeN(gain float64) (*InitWFn, error) {
	return newInitWFn(HeNConfig{Gain: gain})
}

func (h HeNConfig) Type() Type { return HeN }
func (h HeNConfig) Create() G.InitWFn { return G.HeN(h.Gain) }

// ZeroesConfig configures a weight initializer that sets all weights
// to 0. A linear action-value function started from zero weights
// predicts 0 for every action.
type ZeroesConfig struct{}

// NewZeroes returns a new zeroes weight intializer
func NewZeroes() (*InitWFn, error) {
	return newInitWFn(ZeroesConfig{})
}

func (z ZeroesConfig) Type() Type { return Zeroes }
func (z ZeroesConfig) Create() G.InitWFn { return G.Zeroes() }

// OnesConfig configures a weight initializer that sets all weights
// to 1
type OnesConfig struct{}

// NewOnes returns a new ones weight intializer
func NewOnes() (*InitWFn, error) {
	return newInitWFn(OnesConfig{})
}

func (o OnesConfig) Type() Type { return Ones }
func (o OnesConfig) Create() G.InitWFn { return G.Ones() }

// ConstantConfig configures a weight initializer that sets all weights
// to Value
type ConstantConfig struct {
	Value float64
}

// NewConstant returns a new constant weight intializer
func NewConstant(value float64) (*InitWFn, error) {
	return newInitWFn(ConstantConfig{Value: value})
}

func (c ConstantConfig) Type() Type { return Constant }
func (c ConstantConfig) Create() G.InitWFn { return G.ValuesOf(c.Value) }

// GaussianConfig configures a weight initializer that draws weights
// from a gaussian distribution
type GaussianConfig struct {
	Mean, StdDev float64
}

// NewGaussian returns a new gaussian weight initializer
func NewGaussian(mean, stddev float64) (*InitWFn, error) {
	return newInitWFn(GaussianConfig{Mean: mean, StdDev: stddev})
}

func (g GaussianConfig) Type() Type { return Gaussian }
func (g GaussianConfig) Create() G.InitWFn {
	return G.Gaussian(g.Mean, g.StdDev)
}

// UniformConfig configures a weight initializer that draws weights
// from a uniform distribution
type UniformConfig struct {
	Low, High float64
}

// NewUniform returns a new uniform weight initializer
func NewUniform(low, high float64) (*InitWFn, error) {
	return newInitWFn(UniformConfig{Low: low, High: high})
}

func (u UniformConfig) Type() Type { return Uniform }
func (u UniformConfig) Create() G.InitWFn {
	return G.Uniform(u.Low, u.High)
}
