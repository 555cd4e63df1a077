package expr

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		expr string
		want float64
		text string
	}{
		{"2+2", 4, "4"},
		{"2+3*4", 14, "14"},
		{"(2+3)*4", 20, "20"},
		{"10/4", 2.5, "2.5"},
		{"-3+1", -2, "-2"},
		{"0.1+0.2", 0.30000000000000004, "0.30000000000000004"},
		{".5*2", 1, "1"},
		{"2+2=", 4, "4"},
		{"((1))", 1, "1"},
		{"7", 7, "7"},
		{"1/3", 1.0 / 3, "0.3333333333333333"},
		{"017+1", 18, "18"},
		{"08*2", 16, "16"},
		{"0.5+00.5", 1, "1"},
		{"100-0", 100, "100"},
		{"2(3)", 6, "6"},
		{"2(3+4)", 14, "14"},
		{"(1+2)(3+4)", 21, "21"},
		{"(1+2)3", 9, "9"},
		{"1.5(2)", 3, "3"},
		{"2--3", 5, "5"},
		{"2++3", 5, "5"},
		{"2+-3", -1, "-1"},
		{"2---3", -1, "-1"},
		{"--4", 4, "4"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			v, err := Evaluate(context.Background(), tt.expr)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			if v.Float64() != tt.want {
				t.Errorf("value: got %v, want %v", v.Float64(), tt.want)
			}
			if v.String() != tt.text {
				t.Errorf("text: got %q, want %q", v.String(), tt.text)
			}
		})
	}
}

func TestEvaluate_DivisionByZero(t *testing.T) {
	tests := []struct {
		expr string
		text string
	}{
		{"10/0", "Infinity"},
		{"-10/0", "-Infinity"},
		{"0/0", "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			v, err := Evaluate(context.Background(), tt.expr)
			if err != nil {
				t.Fatalf("division by zero should follow float semantics, got error: %v", err)
			}
			if v.IsFinite() {
				t.Errorf("%s should not be finite, got %v", tt.expr, v.Float64())
			}
			if v.String() != tt.text {
				t.Errorf("text: got %q, want %q", v.String(), tt.text)
			}
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantErr error
	}{
		{"empty", "", ErrEmpty},
		{"only equals", "=", ErrEmpty},
		{"letters", "hello", ErrInvalidCharacter},
		{"javascript", "Math.PI", ErrInvalidCharacter},
		{"whitespace", "2 + 2", ErrInvalidCharacter},
		{"double equals", "2+2==", ErrInvalidCharacter},
		{"equation", "1=1", ErrInvalidCharacter},
		{"unclosed paren", "(2+3", ErrInvalidExpression},
		{"unopened paren", "2+3)", ErrInvalidExpression},
		{"empty parens", "()", ErrInvalidExpression},
		{"implicit empty parens", "2()", ErrInvalidExpression},
		{"dangling operator", "2+", ErrInvalidExpression},
		{"two dots", "1.2.3", ErrInvalidExpression},
		{"line comment", "2//3", ErrInvalidExpression},
		{"block comment", "2/*3*/", ErrInvalidExpression},
		{"regexp literal", "/2/", ErrInvalidExpression},
		{"too long", strings.Repeat("1+", MaxLength) + "1", ErrTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(context.Background(), tt.expr)
			if err == nil {
				t.Fatalf("Evaluate(%q) should fail", tt.expr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error: got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEvaluate_NormalizedInputsAgree(t *testing.T) {
	a, err := Evaluate(context.Background(), Normalize("2 + 2"))
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	b, err := Evaluate(context.Background(), Normalize("2+2"))
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if a != b {
		t.Errorf("results differ: %v vs %v", a, b)
	}
}

func TestEvaluate_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Evaluate(ctx, "1+1"); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestEvaluate_Concurrent(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		go func() {
			v, err := Evaluate(ctx, "6*7")
			if err == nil && v.Float64() != 42 {
				err = errors.New("wrong result " + v.String())
			}
			errs <- err
		}()
	}
	for i := 0; i < 50; i++ {
		if err := <-errs; err != nil {
			t.Errorf("concurrent Evaluate: %v", err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"12*(3+4)=", "12*(3+4)"},
		{"007", "7"},
		{"0", "0"},
		{"0.05", "0.05"},
		{"000.5", "0.5"},
		{"10+020", "10+20"},
		{"1.005", "1.005"},
		{"(0)", "(0)"},
		{"2(3)", "2*(3)"},
		{"(1)(2)", "(1)*(2)"},
		{"(1).5", "(1)*.5"},
		{"2--3", "2- -3"},
		{"1+-+2", "1+ - +2"},
		{"02(03)", "2*(3)"},
	}

	for _, tt := range tests {
		got, err := Validate(tt.in)
		if err != nil {
			t.Fatalf("Validate(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Validate(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValue_MarshalJSON(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{NewValue(4), "4"},
		{NewValue(2.5), "2.5"},
		{NewValue(-0.125), "-0.125"},
		{NewValue(1e21), "1e+21"},
		{NewValue(math.Inf(1)), `"Infinity"`},
		{NewValue(math.Inf(-1)), `"-Infinity"`},
		{NewValue(math.NaN()), `"NaN"`},
	}

	for _, tt := range tests {
		got, err := tt.v.MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON(%v) failed: %v", tt.v, err)
		}
		if string(got) != tt.want {
			t.Errorf("MarshalJSON(%v): got %s, want %s", tt.v.Float64(), got, tt.want)
		}
	}
}

func TestNewValue_String(t *testing.T) {
	tests := []struct {
		f    float64
		want string
	}{
		{4, "4"},
		{0, "0"},
		{0.1, "0.1"},
		{1e21, "1e+21"},
		{1.5e-7, "1.5e-7"},
		{123456789012, "123456789012"},
		{math.Inf(1), "Infinity"},
	}

	for _, tt := range tests {
		if got := NewValue(tt.f).String(); got != tt.want {
			t.Errorf("NewValue(%v).String(): got %q, want %q", tt.f, got, tt.want)
		}
	}
}
