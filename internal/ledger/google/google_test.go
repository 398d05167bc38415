package google

import "testing"

func TestRowFromRange(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"Transactions!A5:E5", 5, true},
		{"Transactions!A2", 2, true},
		{"A17:E17", 17, true},
		{"'My Sheet'!A103:E103", 103, true},
		{"Transactions!A:E", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := rowFromRange(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("rowFromRange(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("rowFromRange(%q) = %d, want %d", tc.in, got, tc.want)
			}
			continue
		}
		if err == nil {
			t.Fatalf("rowFromRange(%q) expected error, got %d", tc.in, got)
		}
	}
}

func TestSafeGet(t *testing.T) {
	arr := []string{"a", "b"}
	if safeGet(arr, 0) != "a" || safeGet(arr, 1) != "b" {
		t.Fatal("in-range access broken")
	}
	if safeGet(arr, 2) != "" || safeGet(arr, -1) != "" {
		t.Fatal("out-of-range access should return empty string")
	}
}
