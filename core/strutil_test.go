package core

import "testing"

func TestUtoa(t *testing.T) {
	testCases := []struct {
		in   uint32
		want string
	}{
		{0, "0"},
		{1, "1"},
		{9, "9"},
		{10, "10"},
		{500, "500"},
		{6036, "6036"},
		{65535, "65535"},
		{65536, "65536"},
		{4294967295, "4294967295"},
	}

	for _, tc := range testCases {
		if got := utoa(tc.in); got != tc.want {
			t.Errorf("utoa(%d): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
