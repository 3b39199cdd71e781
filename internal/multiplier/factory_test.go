package multiplier

import (
	"strings"
	"testing"
)

func TestNewDefaultFactory(t *testing.T) {
	t.Parallel()
	tests := []struct {
		suite Suite
		want  []string
	}{
		{SuiteU32, []string{"big", "bits", "float32", "float64", "limb", "native"}},
		{SuiteFP21, []string{"big", "float64", "native", "pseudo-mersenne"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.suite), func(t *testing.T) {
			t.Parallel()
			f, err := NewDefaultFactory(tt.suite)
			if err != nil {
				t.Fatalf("NewDefaultFactory(%s) error: %v", tt.suite, err)
			}
			if f.Suite() != tt.suite {
				t.Errorf("Suite() = %s, want %s", f.Suite(), tt.suite)
			}
			got := f.List()
			// optional strategies may extend the list
			for _, name := range tt.want {
				if _, err := f.Get(name); err != nil {
					t.Errorf("Get(%q) error: %v (list %v)", name, err, got)
				}
			}
			for i := 1; i < len(got); i++ {
				if got[i-1] >= got[i] {
					t.Errorf("List() not sorted: %v", got)
				}
			}
		})
	}
}

func TestNewDefaultFactory_UnknownSuite(t *testing.T) {
	t.Parallel()
	if _, err := NewDefaultFactory("u64"); err == nil {
		t.Error("expected error for unknown suite")
	}
}

func TestFactory_RegisterDuplicate(t *testing.T) {
	t.Parallel()
	f := NewFactory(SuiteU32)
	m := New("x", func(a, b uint32) uint32 { return a * b })
	if err := f.Register(m); err != nil {
		t.Fatalf("first Register error: %v", err)
	}
	if err := f.Register(m); err == nil {
		t.Error("second Register should fail")
	}
}

func TestFactory_GetUnknown(t *testing.T) {
	t.Parallel()
	f := NewFactory(SuiteU32)
	if _, err := f.Get("missing"); err == nil {
		t.Error("Get of unknown name should fail")
	}
}

func TestFactory_ListIsCopy(t *testing.T) {
	t.Parallel()
	f, err := NewDefaultFactory(SuiteU32)
	if err != nil {
		t.Fatal(err)
	}
	names := f.List()
	names[0] = "mutated"
	if f.List()[0] == "mutated" {
		t.Error("mutating the List result should not affect the factory")
	}
}

func TestParseSuite(t *testing.T) {
	t.Parallel()
	for _, s := range Suites() {
		got, err := ParseSuite(string(s))
		if err != nil || got != s {
			t.Errorf("ParseSuite(%q) = %q, %v", s, got, err)
		}
	}
	_, err := ParseSuite("f32")
	if err == nil {
		t.Fatal("ParseSuite(f32) should fail")
	}
	for _, s := range Suites() {
		if !strings.Contains(err.Error(), string(s)) {
			t.Errorf("error %q should list suite %s", err, s)
		}
	}
}

func TestSuiteList(t *testing.T) {
	t.Parallel()
	if got := SuiteList(); got != "fp21, u32" {
		t.Errorf("SuiteList() = %q, want %q", got, "fp21, u32")
	}
}

func TestSuite_Operand(t *testing.T) {
	t.Parallel()
	if got := SuiteU32.Operand(0xFFFFFFFF); got != 0xFFFFFFFF {
		t.Errorf("u32 operand = %d", got)
	}
	if got := SuiteFP21.Operand(2097143 + 7); got != 7 {
		t.Errorf("fp21 operand = %d, want 7", got)
	}
	if got := SuiteFP21.Operand(0xFFFFFFFF); got != 18431 {
		t.Errorf("fp21 operand = %d, want 18431", got)
	}
}

func TestNames(t *testing.T) {
	t.Parallel()
	names := Names(SuiteFP21)
	if len(names) < 4 || names[0] != "big" {
		t.Errorf("Names(fp21) = %v", names)
	}
	if Names(Suite("u64")) != nil {
		t.Error("Names of an unknown suite should be nil")
	}
}
