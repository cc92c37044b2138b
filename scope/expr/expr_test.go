package expr

import (
	"errors"
	"math"
	"testing"
	"time"

	"oscope/scope/source"
)

func TestCompileAndEval(t *testing.T) {
	tests := []struct {
		body string
		x, t float64
		want float64
	}{
		{"return x", 0.25, 0, 0.25},
		{"return x * 2 + t", 0.5, 10, 11},
		{"return math.sin(x * math.pi)", 0.5, 0, 1},
		{"local n = string.len('abc') return n", 0, 0, 3},
	}
	for _, tt := range tests {
		p, err := Compile(tt.body)
		if err != nil {
			t.Fatalf("Compile(%q): %v", tt.body, err)
		}
		got, err := p.Eval(tt.x, tt.t)
		p.Close()
		if err != nil {
			t.Fatalf("Eval(%q): %v", tt.body, err)
		}
		if math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("Eval(%q) = %v, want %v", tt.body, got, tt.want)
		}
	}
}

func TestCompileSyntaxError(t *testing.T) {
	if _, err := Compile("return ("); !errors.Is(err, ErrCompile) {
		t.Fatalf("err = %v, want ErrCompile", err)
	}
	// A stray end would close the wrapper early.
	if _, err := Compile("end return 1"); !errors.Is(err, ErrCompile) {
		t.Fatalf("err = %v, want ErrCompile", err)
	}
}

func TestEvalErrors(t *testing.T) {
	for _, body := range []string{
		"error('boom')",
		"return 'text'",
		"return nil",
		"return undefined_fn(x)",
	} {
		p, err := Compile(body)
		if err != nil {
			t.Fatalf("Compile(%q): %v", body, err)
		}
		if _, err := p.Eval(0, 0); !errors.Is(err, source.ErrEvaluation) {
			t.Fatalf("Eval(%q) err = %v, want ErrEvaluation", body, err)
		}
		// The state stays usable after a failure.
		if _, err := p.Eval(0, 0); !errors.Is(err, source.ErrEvaluation) {
			t.Fatalf("second Eval(%q) err = %v", body, err)
		}
		p.Close()
	}
}

func TestSandbox(t *testing.T) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module", "io", "os"} {
		p, err := Compile("if " + name + " == nil then return 0 end return 1")
		if err != nil {
			t.Fatalf("Compile: %v", err)
		}
		v, err := p.Eval(0, 0)
		p.Close()
		if err != nil {
			t.Fatalf("Eval: %v", err)
		}
		if v != 0 {
			t.Fatalf("%s is reachable from expressions", name)
		}
	}
}

func TestClosedProgram(t *testing.T) {
	p, err := Compile("return 1")
	if err != nil {
		t.Fatal(err)
	}
	p.Close()
	p.Close()
	if _, err := p.Eval(0, 0); !errors.Is(err, source.ErrEvaluation) {
		t.Fatalf("err = %v, want ErrEvaluation", err)
	}
}

func TestFuncDrivesFunctionSource(t *testing.T) {
	p, err := Compile("return x")
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	f := source.NewFunction(p.Func(), nil, source.WithScale(1))
	got, err := f.Samples(3)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 0.5, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("samples = %v, want %v", got, want)
		}
	}
}

func TestEvalTimesOut(t *testing.T) {
	p, err := Compile("if t > 0 then while true do end end return x")
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	done := make(chan error, 1)
	go func() {
		_, err := p.Eval(0.5, 1)
		done <- err
	}()
	select {
	case err := <-done:
		if !errors.Is(err, source.ErrEvaluation) || !errors.Is(err, ErrTimeout) {
			t.Fatalf("err = %v, want ErrEvaluation and ErrTimeout", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Eval did not return")
	}

	got, err := p.Eval(0.5, 0)
	if err != nil || got != 0.5 {
		t.Fatalf("Eval after timeout = %v, %v; want 0.5", got, err)
	}
}

func TestLoopingBodySkipsTrace(t *testing.T) {
	p, err := Compile("while true do end return 0")
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	f := source.NewFunction(p.Func(), func() time.Duration { return time.Second })
	if _, err := f.Samples(64); !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}
