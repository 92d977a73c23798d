package dataset

// UnknownGroup is the label returned when no group lists a symbol.
const UnknownGroup = "unknown group"

// Group is a named collection of element symbols. The JSON keys match the
// group source format: "cs" for the label, "elements" for the members.
type Group struct {
	Label   string   `json:"cs"`
	Members []string `json:"elements"`
}

// Contains reports whether the group lists the given symbol. Membership is
// set-semantics; duplicate entries in the source are harmless.
func (g Group) Contains(symbol string) bool {
	for _, member := range g.Members {
		if member == symbol {
			return true
		}
	}
	return false
}

// GroupTable is the ordered sequence of groups from the group source.
type GroupTable []Group

// Resolve returns the label of the first group whose member list contains
// the symbol. Table order decides overlapping memberships. Symbols no group
// lists resolve to UnknownGroup.
func (t GroupTable) Resolve(symbol string) string {
	for _, group := range t {
		if group.Contains(symbol) {
			return group.Label
		}
	}
	return UnknownGroup
}
