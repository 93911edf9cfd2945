package id

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Pidgey", "pidgey"},
		{"spaces and punctuation", "Mr. Mime", "mrmime"},
		{"hyphenated form", "Porygon-Z", "porygonz"},
		{"diacritics", "Flabébé", "flabebe"},
		{"apostrophe", "Farfetch'd", "farfetchd"},
		{"move name", "Hidden Power [Ice]", "hiddenpowerice"},
		{"already normalized", "quickattack", "quickattack"},
		{"digits survive", "Porygon2", "porygon2"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Make(tt.input); got != tt.want {
				t.Errorf("Make(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	if !Equal("Mr. Mime", "mrmime") {
		t.Error("Equal(Mr. Mime, mrmime) = false, want true")
	}
	if Equal("Pidgey", "Pidgeot") {
		t.Error("Equal(Pidgey, Pidgeot) = true, want false")
	}
}
