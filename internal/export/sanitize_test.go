package export

import "testing"

func TestSanitize(t *testing.T) {
	t.Run("Replaces Reserved Characters", func(t *testing.T) {
		cases := []struct {
			name string
			in   string
			want string
		}{
			{"slash", "AC/DC", "AC_DC"},
			{"backslash", `a\b`, "a_b"},
			{"colon", "Mix: 2024", "Mix_ 2024"},
			{"asterisk", "five*stars", "five_stars"},
			{"question mark", "What?", "What_"},
			{"double quote", `say "hi"`, "say _hi_"},
			{"angle brackets", "<tag>", "_tag_"},
			{"pipe", "a|b", "a_b"},
			{"all reserved", `\/:*?"<>|`, "_________"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				if got := Sanitize(tc.in); got != tc.want {
					t.Errorf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
				}
			})
		}
	})

	t.Run("Passes Safe Strings Through", func(t *testing.T) {
		in := "Röyksopp ~ Melody A.M. (Deluxe) [2002]"
		if got := Sanitize(in); got != in {
			t.Errorf("expected %q unchanged, got %q", in, got)
		}
	})

	t.Run("Preserves Unicode", func(t *testing.T) {
		in := "日本のプレイリスト №1"
		if got := Sanitize(in); got != in {
			t.Errorf("expected %q unchanged, got %q", in, got)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		once := Sanitize(`Road to Hell: Vol. 1/3`)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("expected idempotence, first %q then %q", once, twice)
		}
	})

	t.Run("Empty String", func(t *testing.T) {
		if got := Sanitize(""); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}
