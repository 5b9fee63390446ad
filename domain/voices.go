package domain

// VoiceProfile maps a user-facing voice label to a synthesis locale and
// accent (the gTTS lang/tld pair).
type VoiceProfile struct {
	Label    string `yaml:"label" json:"label"`
	Language string `yaml:"language" json:"language"`
	Accent   string `yaml:"accent" json:"accent"`
}

// VoiceProfiles is the immutable voice table. It is constructed once at
// startup and passed by reference into the synthesis service; there is no
// runtime mutation.
type VoiceProfiles struct {
	byLabel      map[string]VoiceProfile
	defaultLabel string
}

// NewVoiceProfiles builds a table from the given profiles. The first
// profile is the default; an unrecognized label resolves to it rather than
// erroring.
func NewVoiceProfiles(profiles []VoiceProfile) VoiceProfiles {
	byLabel := make(map[string]VoiceProfile, len(profiles))
	defaultLabel := ""
	for i, p := range profiles {
		if i == 0 {
			defaultLabel = p.Label
		}
		byLabel[p.Label] = p
	}
	return VoiceProfiles{byLabel: byLabel, defaultLabel: defaultLabel}
}

// DefaultVoiceProfiles returns the built-in table. The accents mirror the
// narration styles offered by the product: US English reads as
// professional, UK as casual, Australian as academic, Canadian as friendly.
func DefaultVoiceProfiles() VoiceProfiles {
	return NewVoiceProfiles([]VoiceProfile{
		{Label: "professional", Language: "en", Accent: "com"},
		{Label: "casual", Language: "en", Accent: "co.uk"},
		{Label: "academic", Language: "en", Accent: "com.au"},
		{Label: "friendly", Language: "en", Accent: "ca"},
	})
}

// Resolve returns the profile for label, or the default profile when the
// label is unknown or empty.
func (v VoiceProfiles) Resolve(label string) VoiceProfile {
	if p, ok := v.byLabel[label]; ok {
		return p
	}
	return v.byLabel[v.defaultLabel]
}

// Labels returns the known labels, default first.
func (v VoiceProfiles) Labels() []string {
	labels := make([]string, 0, len(v.byLabel))
	labels = append(labels, v.defaultLabel)
	for label := range v.byLabel {
		if label != v.defaultLabel {
			labels = append(labels, label)
		}
	}
	return labels
}
