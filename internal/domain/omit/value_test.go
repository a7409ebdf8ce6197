package omit

import (
	"testing"

	sonic "github.com/bytedance/sonic"
)

func TestCombine_OmittedIsAbsorbing(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		a, b Value[int]
	}{
		{name: "left omitted", a: Omitted[int](), b: Of(4)},
		{name: "right omitted", a: Of(4), b: Omitted[int]()},
		{name: "both omitted", a: Omitted[int](), b: Omitted[int]()},
		{name: "left omitted with zero", a: Omitted[int](), b: Of(0)},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Combine(tc.a, tc.b); got.Present() {
				t.Fatalf("expected omitted, got=%v", got)
			}
		})
	}
}

func TestCombine_SumsPresentValues(t *testing.T) {
	t.Parallel()

	got, ok := Combine(Of(3), Of(4)).Get()
	if !ok || got != 7 {
		t.Fatalf("expected 7, got=%d present=%t", got, ok)
	}
}

func TestCombineFunc_UsesAdder(t *testing.T) {
	t.Parallel()

	concat := func(a, b string) string { return a + b }
	if got := CombineFunc(Of("a"), Of("b"), concat).Or(""); got != "ab" {
		t.Fatalf("expected ab, got=%q", got)
	}
	if CombineFunc(Of("a"), Omitted[string](), concat).Present() {
		t.Fatalf("expected omitted result")
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	if !Equal(Omitted[int](), Omitted[int]()) {
		t.Fatalf("two omitted values must be equal")
	}
	if Equal(Omitted[int](), Of(0)) {
		t.Fatalf("omitted must not equal present zero")
	}
	if Equal(Of(0), Omitted[int]()) {
		t.Fatalf("present zero must not equal omitted")
	}
	if !Equal(Of(5), Of(5)) {
		t.Fatalf("equal present values must be equal")
	}
	if Equal(Of(5), Of(6)) {
		t.Fatalf("different present values must differ")
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	if Wrap[int](nil).Present() {
		t.Fatalf("nil pointer must wrap to omitted")
	}
	v := 12
	if got := Wrap(&v).Or(-1); got != 12 {
		t.Fatalf("expected 12, got=%d", got)
	}
}

func TestValue_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var payload struct {
		Hits    Value[int] `json:"hits"`
		Doubles Value[int] `json:"doubles"`
		Triples Value[int] `json:"triples"`
	}
	if err := sonic.Unmarshal([]byte(`{"hits":0,"triples":null}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got, ok := payload.Hits.Get(); !ok || got != 0 {
		t.Fatalf("expected present zero hits, got=%d present=%t", got, ok)
	}
	if payload.Doubles.Present() {
		t.Fatalf("absent doubles must be omitted")
	}
	if payload.Triples.Present() {
		t.Fatalf("null triples must be omitted")
	}
}

func TestValue_MarshalJSON(t *testing.T) {
	t.Parallel()

	raw, err := sonic.Marshal(struct {
		A Value[int] `json:"a"`
		B Value[int] `json:"b"`
	}{A: Of(3)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"a":3,"b":null}` {
		t.Fatalf("unexpected json: %s", raw)
	}
}
