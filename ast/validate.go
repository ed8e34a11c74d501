package ast

// Validate re-checks the document-level invariants that Parse already
// enforces inline while decoding (exactly one DataServices, at most one Key
// per entity type, at most one ReturnType per action, unique names per
// schema). It exists so callers that construct an EdmxDocument by hand
// (such as tests) can re-validate without going through XML.
func Validate(doc *EdmxDocument) error {
	if doc.DataServices == nil || len(doc.DataServices.Schemas) == 0 {
		return Wrap("Edmx", "", &ValidationError{Kind: ErrWrongDataServicesNumber, Msg: "found 0"})
	}
	for _, s := range doc.DataServices.Schemas {
		seen := make(map[Identifier]bool, len(s.Declarations))
		for _, nd := range s.Declarations {
			if seen[nd.Name] {
				return Wrap("Schema", s.Namespace.String(), &ValidationError{Kind: ErrDuplicateName, Msg: string(nd.Name)})
			}
			seen[nd.Name] = true
			if e := nd.Declaration.EntityType; e != nil {
				if err := validateEntityType(e); err != nil {
					return Wrap("Schema", s.Namespace.String(), err)
				}
			}
			if a := nd.Declaration.Action; a != nil {
				if a.ReturnType != nil {
					// ReturnType cardinality was already bounded by the
					// parser's single-field representation; nothing further
					// to check here beyond presence.
					_ = a.ReturnType
				}
			}
		}
	}
	return nil
}

func validateEntityType(e *EntityType) error {
	// Key cardinality is structurally bounded (single *Key field); this
	// hook exists for future invariants (e.g. key properties must name
	// declared properties), left as an open extension point.
	return nil
}
