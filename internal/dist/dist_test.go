package dist

import (
	"errors"
	"math"
	"testing"

	"github.com/nvandessel/jiggle/internal/rng"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Family
		wantErr bool
	}{
		{"uniform", Uniform, false},
		{"Normal", Normal, false},
		{"gaussian", Normal, false},
		{" exponential ", Exponential, false},
		{"exp", Exponential, false},
		{"poisson", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFamily_TextRoundTrip(t *testing.T) {
	for _, f := range Families() {
		text, err := f.MarshalText()
		if err != nil {
			t.Fatalf("%v.MarshalText: %v", f, err)
		}
		var back Family
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if back != f {
			t.Errorf("round trip of %v gave %v", f, back)
		}
	}
	if _, err := Family(0).MarshalText(); err == nil {
		t.Error("expected error marshaling zero Family")
	}
}

func TestFamily_Arity(t *testing.T) {
	tests := []struct {
		f    Family
		want int
	}{
		{Uniform, 2},
		{Normal, 2},
		{Exponential, 1},
		{Family(99), 0},
	}
	for _, tt := range tests {
		if got := tt.f.Arity(); got != tt.want {
			t.Errorf("%v.Arity() = %d, want %d", tt.f, got, tt.want)
		}
		if got := len(tt.f.ParamNames()); got != tt.want {
			t.Errorf("%v has %d param names, want %d", tt.f, got, tt.want)
		}
	}
}

func TestValidateParams(t *testing.T) {
	tests := []struct {
		name    string
		f       Family
		params  []float64
		wantErr bool
	}{
		{"uniform ok", Uniform, []float64{0, 1}, false},
		{"uniform inverted", Uniform, []float64{1, 0}, true},
		{"uniform degenerate", Uniform, []float64{1, 1}, true},
		{"normal ok", Normal, []float64{0, 1}, false},
		{"normal zero sigma", Normal, []float64{0, 0}, true},
		{"normal nan mu", Normal, []float64{math.NaN(), 1}, true},
		{"exponential ok", Exponential, []float64{2}, false},
		{"exponential negative", Exponential, []float64{-1}, true},
		{"wrong arity", Exponential, []float64{1, 2}, true},
		{"unknown family", Family(0), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.f.ValidateParams(tt.params)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateParams(%v) error = %v, wantErr %v", tt.params, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrParams) {
				t.Errorf("error %v does not wrap ErrParams", err)
			}
		})
	}
}

func TestPDF_MatchesReference(t *testing.T) {
	xs := []float64{-3, -1, -0.25, 0, 0.1, 0.5, 0.9, 1, 2, 4.5}

	for _, x := range xs {
		u := distuv.Uniform{Min: -1, Max: 2}
		if got, want := Uniform.PDF(x, []float64{-1, 2}), u.Prob(x); math.Abs(got-want) > 1e-12 {
			t.Errorf("uniform PDF(%v) = %v, want %v", x, got, want)
		}

		n := distuv.Normal{Mu: 0.5, Sigma: 1.5}
		if got, want := Normal.PDF(x, []float64{0.5, 1.5}), n.Prob(x); math.Abs(got-want) > 1e-12 {
			t.Errorf("normal PDF(%v) = %v, want %v", x, got, want)
		}

		e := distuv.Exponential{Rate: 2}
		if got, want := Exponential.PDF(x, []float64{2}), e.Prob(x); math.Abs(got-want) > 1e-12 {
			t.Errorf("exponential PDF(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestPDF_Support(t *testing.T) {
	params := []float64{0, 1}
	for _, x := range []float64{0, 0.25, 0.5, 1} {
		if p := Uniform.PDF(x, params); p != 1 {
			t.Errorf("uniform PDF(%v) = %v, want 1", x, p)
		}
		if !Uniform.InSupport(x, params) {
			t.Errorf("uniform InSupport(%v) = false", x)
		}
	}
	for _, x := range []float64{-0.001, 1.001, -10, 10} {
		if p := Uniform.PDF(x, params); p != 0 {
			t.Errorf("uniform PDF(%v) = %v, want 0", x, p)
		}
		if lp := Uniform.LogPDF(x, params); !math.IsInf(lp, -1) {
			t.Errorf("uniform LogPDF(%v) = %v, want -Inf", x, lp)
		}
	}
	if p := Exponential.PDF(-1, []float64{1}); p != 0 {
		t.Errorf("exponential PDF(-1) = %v, want 0", p)
	}
}

func TestPDF_NonNegative(t *testing.T) {
	src := rng.NewRNG(3)
	cases := []struct {
		f      Family
		params []float64
	}{
		{Uniform, []float64{-2, 3}},
		{Normal, []float64{1, 0.3}},
		{Exponential, []float64{0.7}},
	}
	for _, c := range cases {
		for i := 0; i < 2000; i++ {
			x := (src.Float64() - 0.5) * 20
			if p := c.f.PDF(x, c.params); p < 0 || math.IsNaN(p) {
				t.Fatalf("%v PDF(%v) = %v, want >= 0", c.f, x, p)
			}
		}
	}
}

func TestLogPDF_ConsistentWithPDF(t *testing.T) {
	cases := []struct {
		f      Family
		params []float64
		x      float64
	}{
		{Uniform, []float64{0, 4}, 1},
		{Normal, []float64{0, 1}, 0.3},
		{Normal, []float64{2, 0.5}, 3.1},
		{Exponential, []float64{3}, 0.4},
	}
	for _, c := range cases {
		got := c.f.LogPDF(c.x, c.params)
		want := math.Log(c.f.PDF(c.x, c.params))
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("%v LogPDF(%v) = %v, want %v", c.f, c.x, got, want)
		}
	}
	// Far tail: PDF underflows but LogPDF stays finite.
	if lp := Normal.LogPDF(100, []float64{0, 1}); math.IsInf(lp, 0) {
		t.Errorf("normal LogPDF(100) = %v, want finite", lp)
	}
}

func TestPDF_InvalidParams(t *testing.T) {
	if p := Normal.PDF(0, []float64{0, -1}); p != 0 {
		t.Errorf("normal PDF with sigma<0 = %v, want 0", p)
	}
	if p := Uniform.PDF(0.5, []float64{1, 0}); p != 0 {
		t.Errorf("uniform PDF with b<a = %v, want 0", p)
	}
	if lp := Exponential.LogPDF(1, nil); !math.IsInf(lp, -1) {
		t.Errorf("exponential LogPDF with no params = %v, want -Inf", lp)
	}
}

func TestSample_Transforms(t *testing.T) {
	// Uniform: a + (b-a)u
	if got := Uniform.Sample(rng.NewSequence(0.25), []float64{2, 6}); got != 3 {
		t.Errorf("uniform sample = %v, want 3", got)
	}

	// Exponential: -ln(u)/lambda
	u := math.Exp(-1)
	if got := Exponential.Sample(rng.NewSequence(u), []float64{4}); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("exponential sample = %v, want 0.25", got)
	}

	// Box-Muller with u2 = 0 puts the full radius on the cosine axis.
	u1 := math.Exp(-0.5) // sqrt(-2 ln u1) = 1
	if got := BoxMuller(rng.NewSequence(u1, 0)); math.Abs(got-1) > 1e-12 {
		t.Errorf("BoxMuller = %v, want 1", got)
	}
	if got := Normal.Sample(rng.NewSequence(u1, 0), []float64{10, 2}); math.Abs(got-12) > 1e-12 {
		t.Errorf("normal sample = %v, want 12", got)
	}

	if got := Normal.Sample(rng.NewSequence(0.5), []float64{1}); !math.IsNaN(got) {
		t.Errorf("sample with wrong arity = %v, want NaN", got)
	}
}

func TestSample_Moments(t *testing.T) {
	const n = 200000
	src := rng.NewRNG(11)

	cases := []struct {
		name     string
		f        Family
		params   []float64
		mean     float64
		variance float64
	}{
		{"uniform", Uniform, []float64{-1, 3}, 1, 16.0 / 12},
		{"normal", Normal, []float64{2, 0.5}, 2, 0.25},
		{"exponential", Exponential, []float64{4}, 0.25, 1.0 / 16},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var sum, sumSq float64
			for i := 0; i < n; i++ {
				x := c.f.Sample(src, c.params)
				sum += x
				sumSq += x * x
			}
			mean := sum / n
			variance := sumSq/n - mean*mean
			if math.Abs(mean-c.mean) > 0.02 {
				t.Errorf("mean = %v, want ~%v", mean, c.mean)
			}
			if math.Abs(variance-c.variance)/c.variance > 0.05 {
				t.Errorf("variance = %v, want ~%v", variance, c.variance)
			}
		})
	}
}
