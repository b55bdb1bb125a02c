package permissions

// Wildcard grants every capability.
const Wildcard = "*"

// Authorize reports whether the granted capability set allows the required
// operation. Matching is exact string equality, with the single global
// wildcard "*" as the only special case. There is no prefix or hierarchical
// matching: "key:*" only matches a grant that literally contains "key:*".
func Authorize(required string, granted []string) bool {
	for _, p := range granted {
		if p == Wildcard || p == required {
			return true
		}
	}
	return false
}
