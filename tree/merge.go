package tree

// Merge binds the entries of src into dst. Both sides must be Objects;
// anything else is a no-op. Source values are deep copied, the merged
// tree never aliases src.
//
// With recursive set, a key held as an Object on both sides merges
// entry by entry instead of being overwritten. With allowNull unset,
// Null and empty-string source values leave dst untouched; set, they
// overwrite like any other value.
func Merge(dst, src *Node, recursive, allowNull bool) {
	if dst == nil || src == nil {
		return
	}
	if dst.Type != ObjectType || src.Type != ObjectType {
		return
	}
	for i, key := range src.Keys {
		sv := src.Values[i]
		if !allowNull && sv.IsEmptyScalar() {
			continue
		}
		if recursive && sv.Type == ObjectType {
			dv := dst.Get(key)
			if dv == nil {
				dv = NewObject()
				dst.SetKey(key, dv)
			}
			if dv.Type == ObjectType {
				Merge(dv, sv, recursive, allowNull)
				continue
			}
		}
		dst.SetKey(key, sv.Clone())
	}
}
