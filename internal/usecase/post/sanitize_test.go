package post

import "testing"

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text", in: "  missed the bus  ", want: "missed the bus"},
		{name: "apostrophes survive", in: "I can't <em>believe</em> it", want: "I can't believe it"},
		{name: "comparison signs are text", in: "1 < 2 but 3 > 2", want: "1 < 2 but 3 > 2"},
		{name: "encoded script", in: "&lt;script&gt;alert(1)&lt;/script&gt;", want: ""},
		{name: "double encoded tag", in: "&amp;lt;i&amp;gt;hi&amp;lt;/i&amp;gt;", want: "hi"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := sanitizeText(tc.in); got != tc.want {
				t.Fatalf("sanitizeText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
