package config

// DefaultBlacklist returns application-name substrings that are never
// recorded on a fresh install: password managers, banking and tax apps,
// and private messaging. Matching is case-insensitive containment, so
// entries are kept short.
func DefaultBlacklist() []string {
	return []string{
		// Password managers
		"1password",
		"bitwarden",
		"keepass",
		"lastpass",
		"dashlane",
		"enpass",
		"keychain access",
		"seahorse",

		// Banking & finance
		"banking",
		"turbotax",
		"quicken",

		// Private messaging
		"signal",
	}
}
