package domain

import "testing"

func TestDefaultVoiceProfiles(t *testing.T) {
	voices := DefaultVoiceProfiles()

	cases := []struct {
		label    string
		language string
		accent   string
	}{
		{"professional", "en", "com"},
		{"casual", "en", "co.uk"},
		{"academic", "en", "com.au"},
		{"friendly", "en", "ca"},
	}
	for _, tc := range cases {
		got := voices.Resolve(tc.label)
		if got.Label != tc.label || got.Language != tc.language || got.Accent != tc.accent {
			t.Errorf("Resolve(%q) = %+v, want %s/%s/%s", tc.label, got, tc.label, tc.language, tc.accent)
		}
	}
}

func TestResolveFallsBackToDefault(t *testing.T) {
	voices := DefaultVoiceProfiles()

	for _, label := range []string{"", "robotic", "PROFESSIONAL"} {
		if got := voices.Resolve(label); got.Label != "professional" {
			t.Errorf("Resolve(%q) = %q, want default 'professional'", label, got.Label)
		}
	}
}

func TestNewVoiceProfilesFirstIsDefault(t *testing.T) {
	voices := NewVoiceProfiles([]VoiceProfile{
		{Label: "narrator", Language: "en", Accent: "ie"},
		{Label: "host", Language: "en", Accent: "com"},
	})
	if got := voices.Resolve("unknown"); got.Label != "narrator" {
		t.Errorf("Expected first profile as default, got %q", got.Label)
	}
	labels := voices.Labels()
	if len(labels) != 2 {
		t.Fatalf("Expected 2 labels, got %d", len(labels))
	}
}
