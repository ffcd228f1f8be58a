package parse

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"testing"

	"github.com/fumin/groebner/parse/scan"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		tree  string
	}{
		{
			input: "x*y^3",
			tree:  "(x*(y^3))",
		},
		{
			input: "-x*y^3",
			tree:  "(0-(x*(y^3)))",
		},
		{
			input: "(x+y)^4",
			tree:  "((x+y)^4)",
		},
		{
			input: "2x",
			tree:  "(2*x)",
		},
		{
			input: "5/3y*(x+y)^2*z+9x",
			tree:  "(((((5/3)*y)*((x+y)^2))*z)+(9*x))",
		},
		{
			input: "x^2*y - 3/4*z + 1",
			tree:  "((((x^2)*y)-((3/4)*z))+1)",
		},
		// Exponents bind to the operand directly before them.
		{
			input: "x^2^3",
			tree:  "((x^2)^3)",
		},
	}

	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			t.Parallel()
			n, err := Parse(scan.NewScanner(bytes.NewBufferString(test.input)))
			if err != nil {
				t.Fatalf("%+v", err)
			}
			if tree(n) != test.tree {
				t.Errorf("%s", tree(n))
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"x^y",
		"x + ^2",
		"*x",
	}
	for i, input := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			t.Parallel()
			if _, err := Parse(scan.NewScanner(bytes.NewBufferString(input))); err == nil {
				t.Errorf("expected error for %q", input)
			}
		})
	}
}

func TestMain(m *testing.M) {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds | log.Llongfile | log.LstdFlags)

	m.Run()
}
