package domain

// Right names an action a group may be granted.
type Right string

const (
	RightViewAnyToken           Right = "VIEW_ANY_TOKEN"
	RightInvalidateAnyToken     Right = "INVALIDATE_ANY_TOKEN"
	RightRegenerateSignatureKey Right = "REGENERATE_SIGNATURE_KEY"
)

// PermissionTable maps a group id to the rights it grants.
type PermissionTable map[string][]Right

// Merge appends other's rights into t, group by group.
func (t PermissionTable) Merge(other PermissionTable) {
	for group, rights := range other {
		t[group] = append(t[group], rights...)
	}
}
