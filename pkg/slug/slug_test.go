package slug

import "testing"

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Golden Retriever", "golden-retriever"},
		{"Köpekler", "kopekler"},
		{"Kangal Çoban Köpeği", "kangal-coban-kopegi"},
		{"İstanbul Sokak Kedisi", "istanbul-sokak-kedisi"},
		{"  Fish & Friends!  ", "fish-friends"},
		{"already-a-slug", "already-a-slug"},
		{"UPPER case", "upper-case"},
		{"--weird---input--", "weird-input"},
		{"çğıöşü", "cgiosu"},
		{"", ""},
		{"!!!", ""},
		{"crème brûlée 2", "creme-brulee-2"},
	}

	for _, tc := range cases {
		if got := Make(tc.in); got != tc.want {
			t.Errorf("Make(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMakeCapsLength(t *testing.T) {
	long := ""
	for i := 0; i < 50; i++ {
		long += "abcde "
	}

	got := Make(long)
	if len(got) > 120 {
		t.Fatalf("slug length = %d, want <= 120", len(got))
	}
	if got[len(got)-1] == '-' {
		t.Fatalf("slug %q ends with a dash", got)
	}
}

func TestWithSuffix(t *testing.T) {
	if got := WithSuffix("dogs-kangal", 1); got != "dogs-kangal" {
		t.Errorf("WithSuffix n=1 = %q", got)
	}
	if got := WithSuffix("dogs-kangal", 2); got != "dogs-kangal-2" {
		t.Errorf("WithSuffix n=2 = %q", got)
	}
	if got := WithSuffix("dogs-kangal", 11); got != "dogs-kangal-11" {
		t.Errorf("WithSuffix n=11 = %q", got)
	}
}
