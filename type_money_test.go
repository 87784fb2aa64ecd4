package wrapped

import "testing"

func TestMoney_Format(t *testing.T) {
	testCases := []struct {
		m                  Money
		str, whole, signed string
	}{
		{EUR(1234.5), "€1,234.50", "€1,234", "+€1,234.50"},
		{EUR(0), "€0.00", "€0", "-"},
		{EUR(3), "€3.00", "€3", "+€3.00"},
		{EUR(-42.25), "-€42.25", "-€42", "-€42.25"},
		{EUR(5860), "€5,860.00", "€5,860", "+€5,860.00"},
		{M(1234.5, "USD"), "$1,234.50", "$1,234", "+$1,234.50"},
	}
	for i, tc := range testCases {
		if got := tc.m.String(); got != tc.str {
			t.Errorf("#%d String() = %q, want %q", i, got, tc.str)
		}
		if got := tc.m.Whole(); got != tc.whole {
			t.Errorf("#%d Whole() = %q, want %q", i, got, tc.whole)
		}
		if got := tc.m.SignedString(); got != tc.signed {
			t.Errorf("#%d SignedString() = %q, want %q", i, got, tc.signed)
		}
	}
}
