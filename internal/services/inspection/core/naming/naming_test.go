package naming

import "testing"

func TestNormalizeIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "whitespace only", input: "   ", want: ""},
		{name: "simple lowercase", input: "lens", want: "lens"},
		{name: "spaces become underscores", input: "Magnifying Glass", want: "magnifying_glass"},
		{name: "hyphens become underscores", input: "uv-lamp", want: "uv_lamp"},
		{name: "consecutive specials collapse", input: "uv -- lamp", want: "uv_lamp"},
		{name: "leading trailing specials trimmed", input: " -lens- ", want: "lens"},
		{name: "digits preserved", input: "Lens 2", want: "lens_2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeIdentifier(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeIdentifier(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHumanize(t *testing.T) {
	if got := Humanize("magnifying_glass"); got != "magnifying glass" {
		t.Fatalf("Humanize = %q, want %q", got, "magnifying glass")
	}
}

func TestContainsFold(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{a: "desk", b: "Antique Desk", want: true},
		{a: "the antique desk drawer", b: "Antique Desk", want: true},
		{a: "lamp", b: "Antique Desk", want: false},
		{a: "", b: "Antique Desk", want: false},
	}
	for _, tt := range tests {
		if got := ContainsFold(tt.a, tt.b); got != tt.want {
			t.Errorf("ContainsFold(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
