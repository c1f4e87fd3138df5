package mkdoc

import "strings"

// DefaultItemPrefix starts each line of a serialized feature list unless a
// caller chooses its own prefix.
const DefaultItemPrefix = "- "

// A Feature is one named capability a module advertises in its
// documentation.
type Feature struct {
	// Key is the short identifier, unique within one [Registry].
	Key string
	// Content is the human-readable markdown description.
	Content string
	// Ref optionally points to a document anchoring the feature. When set,
	// serialization renders the key as a link to Ref.
	Ref string
}

// A Registry is the ordered collection of features of one module. The zero
// value is an empty registry ready for use. Each module owns its own
// registry; registries are not shared across modules.
type Registry struct {
	feats []Feature
	index map[string]int
}

// Register adds the feature (key, content). Registering a key again
// overwrites the earlier entry in place, keeping its first-seen position.
// Overwriting is defined behavior, not an error.
func (r *Registry) Register(key, content string) {
	r.put(Feature{Key: key, Content: content})
}

// RegisterRef is [Registry.Register] with a reference path the serialized
// key links to.
func (r *Registry) RegisterRef(key, content, ref string) {
	r.put(Feature{Key: key, Content: content, Ref: ref})
}

func (r *Registry) put(f Feature) {
	if i, ok := r.index[f.Key]; ok {
		r.feats[i] = f
		return
	}
	if r.index == nil {
		r.index = make(map[string]int)
	}
	r.index[f.Key] = len(r.feats)
	r.feats = append(r.feats, f)
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.feats)
}

// Features returns the registered features in insertion order.
func (r *Registry) Features() []Feature {
	if r == nil {
		return nil
	}
	return r.feats
}

// Serialize renders one line per feature in insertion order:
//
//	{itemPrefix}[{key}]({pathPrefix}{ref}) : {content}   with a Ref
//	{itemPrefix}{key} : {content}                        without
//
// An empty registry serializes to the empty string; callers must omit the
// whole section then, not render an empty one.
func (r *Registry) Serialize(itemPrefix, pathPrefix string) string {
	if r.Len() == 0 {
		return ""
	}
	var sb strings.Builder
	for i, f := range r.feats {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(itemPrefix)
		if f.Ref != "" {
			sb.WriteByte('[')
			sb.WriteString(f.Key)
			sb.WriteString("](")
			sb.WriteString(pathPrefix)
			sb.WriteString(f.Ref)
			sb.WriteByte(')')
		} else {
			sb.WriteString(f.Key)
		}
		sb.WriteString(" : ")
		sb.WriteString(f.Content)
	}
	return sb.String()
}
