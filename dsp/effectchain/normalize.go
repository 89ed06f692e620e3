package effectchain

import "strings"

// typeAliases maps alternative effect type spellings to registered names.
var typeAliases = map[string]string{
	"freeverb":     "reverb",
	"comp":         "compressor",
	"dynamics":     "compressor",
	"trem":         "tremolo",
	"grinder":      "beatgrinder",
	"beat-grinder": "beatgrinder",
	"beat_grinder": "beatgrinder",
}

// normalizeType lower-cases and trims an effect type and resolves aliases.
func normalizeType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := typeAliases[t]; ok {
		return alias
	}

	return t
}
