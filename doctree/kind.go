package doctree

// mergeTable lists every (existing, incoming) TableKind pair that is
// allowed when the same key path is visited a second time. Anything
// absent from the table is a conflict. This is the six-by-six lattice
// from spec §4.4/§9 expressed as a lookup table rather than nested
// conditionals, translated from the teacher's validate.go ad hoc
// path-string conflict maps (checkTablePathConflicts/checkAOTPathConflicts/
// checkDottedIntermediate/checkLeafConflict).
var mergeTable = map[[2]TableKind]bool{
	// An implicit parent from a table header can be revisited by another
	// header or dotted key implying the same parent, or made explicit.
	{KindParentTable, KindParentTable}: true,
	{KindParentTable, KindTable}:       true,
	{KindParentTable, KindParentKey}:   true,

	// An implicit parent from a dotted key can be revisited the same way,
	// but a `[table]` header can never reopen it (TOML closes the table
	// once the key/value line ends).
	{KindParentKey, KindParentKey}:   true,
	{KindParentKey, KindParentTable}: true,

	// An explicit table can still gain an implicit-parent role from a
	// later, deeper header or dotted key — it was already a table.
	{KindTable, KindParentTable}: true,
	{KindTable, KindParentKey}:   true,
}

// mergeAllowed reports whether incoming may legally follow existing at
// the same key path.
func mergeAllowed(existing, incoming TableKind) bool {
	return mergeTable[[2]TableKind{existing, incoming}]
}
