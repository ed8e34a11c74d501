package ast

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is the package-level structured logger used to trace parse
// progress (one debug event per parsed document, carrying its Version and
// schema count). It defaults to a
// disabled logger so deserialization stays silent and zero-cost unless a
// caller opts in with SetLogger.
var Logger = zerolog.Nop()

// SetLogger installs the logger used for parse tracing.
func SetLogger(l zerolog.Logger) { Logger = l }

// Parse deserializes one CSDL document from r into a validated AST, per
// spec.md §4.1: structural deserialization by element-name dispatch,
// followed by per-element validation that folds children into typed
// buckets and enforces cardinality invariants. Unknown attributes and
// unknown annotation terms are ignored for forward compatibility.
func Parse(r io.Reader) (*EdmxDocument, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, Wrap("Edmx", "", fmt.Errorf("missing root element"))
			}
			return nil, err
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "Edmx" {
			doc, err := parseEdmx(dec, se)
			if err != nil {
				return nil, err
			}
			Logger.Debug().Str("version", doc.Version).Int("schemas", len(doc.DataServices.Schemas)).Msg("parsed edmx document")
			return doc, nil
		}
	}
}

func attr(se xml.StartElement, name string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func attrDefault(se xml.StartElement, name, def string) string {
	if v, ok := attr(se, name); ok {
		return v
	}
	return def
}

func attrBool(se xml.StartElement, name string, def bool) bool {
	v, ok := attr(se, name)
	if !ok {
		return def
	}
	return strings.EqualFold(v, "true")
}

func parseEdmx(dec *xml.Decoder, start xml.StartElement) (*EdmxDocument, error) {
	doc := &EdmxDocument{Version: attrDefault(start, "Version", "4.0")}
	var dataServicesCount int
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			switch tt.Name.Local {
			case "DataServices":
				dataServicesCount++
				ds, err := parseDataServices(dec, tt)
				if err != nil {
					return nil, Wrap("Edmx", "", err)
				}
				doc.DataServices = ds
			case "Reference":
				ref, err := parseReference(dec, tt)
				if err != nil {
					return nil, Wrap("Edmx", "", err)
				}
				doc.References = append(doc.References, *ref)
			default:
				if err := skip(dec); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if tt.Name.Local == start.Name.Local {
				if dataServicesCount != 1 {
					return nil, Wrap("Edmx", "", &ValidationError{Kind: ErrWrongDataServicesNumber,
						Msg: fmt.Sprintf("found %d", dataServicesCount)})
				}
				return doc, nil
			}
		}
	}
}

func parseDataServices(dec *xml.Decoder, start xml.StartElement) (*DataServices, error) {
	ds := &DataServices{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			if tt.Name.Local == "Schema" {
				s, err := parseSchema(dec, tt)
				if err != nil {
					return nil, err
				}
				ds.Schemas = append(ds.Schemas, s)
			} else if err := skip(dec); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if tt.Name.Local == start.Name.Local {
				return ds, nil
			}
		}
	}
}

func parseReference(dec *xml.Decoder, start xml.StartElement) (*Reference, error) {
	ref := &Reference{URI: attrDefault(start, "Uri", "")}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			if tt.Name.Local == "Include" {
				inc := ReferenceInclude{
					Namespace: ParseNamespace(attrDefault(tt, "Namespace", "")),
					Alias:     Identifier(attrDefault(tt, "Alias", "")),
				}
				ref.Includes = append(ref.Includes, inc)
			}
			if err := skip(dec); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if tt.Name.Local == start.Name.Local {
				return ref, nil
			}
		}
	}
}

func parseSchema(dec *xml.Decoder, start xml.StartElement) (*Schema, error) {
	ns := ParseNamespace(attrDefault(start, "Namespace", ""))
	s := &Schema{Namespace: ns, byName: make(map[Identifier]*Declaration)}
	add := func(name Identifier, d Declaration) error {
		if _, dup := s.byName[name]; dup {
			return Wrap("Schema", ns.String(), &ValidationError{Kind: ErrDuplicateName, Msg: string(name)})
		}
		s.Declarations = append(s.Declarations, NamedDeclaration{Name: name, Declaration: d})
		s.byName[name] = &s.Declarations[len(s.Declarations)-1].Declaration
		return nil
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			switch tt.Name.Local {
			case "EntityType":
				e, err := parseEntityType(dec, tt)
				if err != nil {
					return nil, Wrap("Schema", ns.String(), err)
				}
				if err := add(e.Name, Declaration{EntityType: e}); err != nil {
					return nil, err
				}
			case "ComplexType":
				c, err := parseComplexType(dec, tt)
				if err != nil {
					return nil, Wrap("Schema", ns.String(), err)
				}
				if err := add(c.Name, Declaration{ComplexType: c}); err != nil {
					return nil, err
				}
			case "EnumType":
				e, err := parseEnumType(dec, tt)
				if err != nil {
					return nil, Wrap("Schema", ns.String(), err)
				}
				if err := add(e.Name, Declaration{EnumType: e}); err != nil {
					return nil, err
				}
			case "TypeDefinition":
				td, err := parseTypeDefinition(dec, tt)
				if err != nil {
					return nil, Wrap("Schema", ns.String(), err)
				}
				if err := add(td.Name, Declaration{TypeDefinition: td}); err != nil {
					return nil, err
				}
			case "Action":
				a, err := parseAction(dec, tt)
				if err != nil {
					return nil, Wrap("Schema", ns.String(), err)
				}
				if err := add(a.Name, Declaration{Action: a}); err != nil {
					return nil, err
				}
			case "Term":
				term, err := parseTerm(dec, tt)
				if err != nil {
					return nil, Wrap("Schema", ns.String(), err)
				}
				if err := add(term.Name, Declaration{Term: term}); err != nil {
					return nil, err
				}
			case "EntityContainer":
				c, err := parseEntityContainer(dec, tt)
				if err != nil {
					return nil, Wrap("Schema", ns.String(), err)
				}
				if err := add(c.Name, Declaration{EntityContainer: c}); err != nil {
					return nil, err
				}
			default:
				if err := skip(dec); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if tt.Name.Local == start.Name.Local {
				return s, nil
			}
		}
	}
}

func parseEntityType(dec *xml.Decoder, start xml.StartElement) (*EntityType, error) {
	e := &EntityType{Name: Identifier(attrDefault(start, "Name", ""))}
	if base, ok := attr(start, "BaseType"); ok {
		q := ParseQualifiedName(base)
		e.Base = &q
	}
	var keyCount int
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			switch tt.Name.Local {
			case "Key":
				keyCount++
				k, err := parseKey(dec, tt)
				if err != nil {
					return nil, Wrap("EntityType", string(e.Name), err)
				}
				e.Key = k
			case "Property":
				p, err := parseProperty(dec, tt)
				if err != nil {
					return nil, Wrap("EntityType", string(e.Name), err)
				}
				e.Properties = append(e.Properties, *p)
			case "NavigationProperty":
				np, err := parseNavigationProperty(dec, tt)
				if err != nil {
					return nil, Wrap("EntityType", string(e.Name), err)
				}
				e.NavProps = append(e.NavProps, *np)
			case "Annotation":
				a, err := parseAnnotation(dec, tt)
				if err != nil {
					return nil, err
				}
				e.Annotations = append(e.Annotations, *a)
			default:
				if err := skip(dec); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if tt.Name.Local == start.Name.Local {
				if keyCount > 1 {
					return nil, Wrap("EntityType", string(e.Name), &ValidationError{Kind: ErrTooManyKeys,
						Msg: fmt.Sprintf("found %d", keyCount)})
				}
				return e, nil
			}
		}
	}
}

func parseKey(dec *xml.Decoder, start xml.StartElement) (*Key, error) {
	k := &Key{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			if tt.Name.Local == "PropertyRef" {
				k.PropertyRefs = append(k.PropertyRefs, Identifier(attrDefault(tt, "Name", "")))
			}
			if err := skip(dec); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if tt.Name.Local == start.Name.Local {
				return k, nil
			}
		}
	}
}

func parseComplexType(dec *xml.Decoder, start xml.StartElement) (*ComplexType, error) {
	c := &ComplexType{Name: Identifier(attrDefault(start, "Name", ""))}
	if base, ok := attr(start, "BaseType"); ok {
		q := ParseQualifiedName(base)
		c.Base = &q
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			switch tt.Name.Local {
			case "Property":
				p, err := parseProperty(dec, tt)
				if err != nil {
					return nil, Wrap("ComplexType", string(c.Name), err)
				}
				c.Properties = append(c.Properties, *p)
			case "NavigationProperty":
				np, err := parseNavigationProperty(dec, tt)
				if err != nil {
					return nil, Wrap("ComplexType", string(c.Name), err)
				}
				c.NavProps = append(c.NavProps, *np)
			case "Annotation":
				a, err := parseAnnotation(dec, tt)
				if err != nil {
					return nil, err
				}
				c.Annotations = append(c.Annotations, *a)
			default:
				if err := skip(dec); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if tt.Name.Local == start.Name.Local {
				return c, nil
			}
		}
	}
}

func parseProperty(dec *xml.Decoder, start xml.StartElement) (*Property, error) {
	p := &Property{
		Name:     Identifier(attrDefault(start, "Name", "")),
		Type:     parseTypeRef(attrDefault(start, "Type", "Edm.String")),
		Nullable: attrBool(start, "Nullable", true),
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			if tt.Name.Local == "Annotation" {
				a, err := parseAnnotation(dec, tt)
				if err != nil {
					return nil, Wrap("Property", string(p.Name), err)
				}
				p.Annotations = append(p.Annotations, *a)
			} else if err := skip(dec); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if tt.Name.Local == start.Name.Local {
				return p, nil
			}
		}
	}
}

func parseNavigationProperty(dec *xml.Decoder, start xml.StartElement) (*NavigationProperty, error) {
	np := &NavigationProperty{
		Name:     Identifier(attrDefault(start, "Name", "")),
		Type:     parseTypeRef(attrDefault(start, "Type", "")),
		Nullable: attrBool(start, "Nullable", true),
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			if tt.Name.Local == "Annotation" {
				a, err := parseAnnotation(dec, tt)
				if err != nil {
					return nil, Wrap("Property", string(np.Name), err)
				}
				np.Annotations = append(np.Annotations, *a)
			} else if err := skip(dec); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if tt.Name.Local == start.Name.Local {
				return np, nil
			}
		}
	}
}

var enumUnderlyingKinds = map[string]EnumUnderlyingKind{
	"Edm.SByte": EnumInt8,
	"Edm.Int16": EnumInt16,
	"Edm.Int32": EnumInt32,
	"Edm.Int64": EnumInt64,
}

func parseEnumType(dec *xml.Decoder, start xml.StartElement) (*EnumType, error) {
	e := &EnumType{
		Name:    Identifier(attrDefault(start, "Name", "")),
		IsFlags: attrBool(start, "IsFlags", false),
	}
	under := attrDefault(start, "UnderlyingType", "Edm.Int32")
	e.Underlying = enumUnderlyingKinds[under] // defaults to EnumInt8's zero value only if unknown; see below
	if _, ok := enumUnderlyingKinds[under]; !ok {
		e.Underlying = EnumInt32
	}
	var next int64
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			if tt.Name.Local == "Member" {
				m := EnumMember{Name: Identifier(attrDefault(tt, "Name", ""))}
				if v, ok := attr(tt, "Value"); ok {
					n, _ := strconv.ParseInt(v, 10, 64)
					m.Value = n
					next = n + 1
				} else {
					m.Value = next
					next++
				}
				for {
					itok, err := dec.Token()
					if err != nil {
						return nil, err
					}
					switch itt := itok.(type) {
					case xml.StartElement:
						if itt.Name.Local == "Annotation" {
							a, err := parseAnnotation(dec, itt)
							if err != nil {
								return nil, err
							}
							m.Annotations = append(m.Annotations, *a)
						} else if err := skip(dec); err != nil {
							return nil, err
						}
					case xml.EndElement:
						if itt.Name.Local == "Member" {
							goto memberDone
						}
					}
				}
			memberDone:
				e.Members = append(e.Members, m)
			} else if err := skip(dec); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if tt.Name.Local == start.Name.Local {
				return e, nil
			}
		}
	}
}

func parseTypeDefinition(dec *xml.Decoder, start xml.StartElement) (*TypeDefinition, error) {
	td := &TypeDefinition{
		Name:       Identifier(attrDefault(start, "Name", "")),
		Underlying: ParseQualifiedName(attrDefault(start, "UnderlyingType", "Edm.String")),
	}
	if err := skip(dec); err != nil {
		return nil, err
	}
	return td, nil
}

func parseAction(dec *xml.Decoder, start xml.StartElement) (*Action, error) {
	a := &Action{
		Name:    Identifier(attrDefault(start, "Name", "")),
		IsBound: attrBool(start, "IsBound", false),
	}
	var returnCount int
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			switch tt.Name.Local {
			case "Parameter":
				p := Parameter{
					Name:     Identifier(attrDefault(tt, "Name", "")),
					Type:     parseTypeRef(attrDefault(tt, "Type", "Edm.String")),
					Nullable: attrBool(tt, "Nullable", true),
				}
				a.Parameters = append(a.Parameters, p)
				if err := skip(dec); err != nil {
					return nil, err
				}
			case "ReturnType":
				returnCount++
				ref := parseTypeRef(attrDefault(tt, "Type", "Edm.String"))
				a.ReturnType = &ref
				if err := skip(dec); err != nil {
					return nil, err
				}
			case "Annotation":
				ann, err := parseAnnotation(dec, tt)
				if err != nil {
					return nil, err
				}
				a.Annotations = append(a.Annotations, *ann)
			default:
				if err := skip(dec); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if tt.Name.Local == start.Name.Local {
				if returnCount > 1 {
					return nil, Wrap("Action", string(a.Name), &ValidationError{Kind: ErrTooManyReturnTypes,
						Msg: fmt.Sprintf("found %d", returnCount)})
				}
				return a, nil
			}
		}
	}
}

func parseTerm(dec *xml.Decoder, start xml.StartElement) (*Term, error) {
	t := &Term{
		Name: Identifier(attrDefault(start, "Name", "")),
		Type: parseTypeRef(attrDefault(start, "Type", "Edm.String")),
	}
	if dv, ok := attr(start, "DefaultValue"); ok {
		v := AnnotationValue{Kind: AnnotationString, String: dv}
		t.Default = &v
	}
	if err := skip(dec); err != nil {
		return nil, err
	}
	return t, nil
}

func parseEntityContainer(dec *xml.Decoder, start xml.StartElement) (*EntityContainer, error) {
	c := &EntityContainer{Name: Identifier(attrDefault(start, "Name", ""))}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			if tt.Name.Local == "Singleton" {
				s := Singleton{
					Name: Identifier(attrDefault(tt, "Name", "")),
					Type: ParseQualifiedName(attrDefault(tt, "Type", "")),
				}
				c.Singletons = append(c.Singletons, s)
			}
			if err := skip(dec); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if tt.Name.Local == start.Name.Local {
				return c, nil
			}
		}
	}
}

// parseAnnotation reads an <Annotation Term="..."> element, including its
// inline-attribute value forms (String=/Bool=/Int=/EnumMember=) and its
// nested-element forms (<Collection>, <Record>). Unknown terms are parsed
// generically like any other annotation, never rejected (§4.1 forward
// compatibility).
func parseAnnotation(dec *xml.Decoder, start xml.StartElement) (*Annotation, error) {
	a := &Annotation{Term: ParseQualifiedName(attrDefault(start, "Term", "Unknown.Term"))}
	if v, ok := attr(start, "String"); ok {
		a.Value = AnnotationValue{Kind: AnnotationString, String: v}
	} else if v, ok := attr(start, "Bool"); ok {
		a.Value = AnnotationValue{Kind: AnnotationBool, Bool: strings.EqualFold(v, "true")}
	} else if v, ok := attr(start, "Int"); ok {
		n, _ := strconv.ParseInt(v, 10, 64)
		a.Value = AnnotationValue{Kind: AnnotationInt, Int: n}
	} else if v, ok := attr(start, "EnumMember"); ok {
		a.Value = AnnotationValue{Kind: AnnotationEnumMember, EnumMember: parseEnumMemberRef(v)}
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			switch tt.Name.Local {
			case "Collection":
				strs, err := parseStringCollection(dec, tt)
				if err != nil {
					return nil, err
				}
				a.Value = AnnotationValue{Kind: AnnotationStringCollection, StringCollection: strs}
			case "Record":
				pvs, err := parseRecord(dec, tt)
				if err != nil {
					return nil, err
				}
				a.Value = AnnotationValue{Kind: AnnotationRecord, Record: pvs}
			default:
				if err := skip(dec); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if tt.Name.Local == start.Name.Local {
				return a, nil
			}
		}
	}
}

// parseEnumMemberRef splits "NS.Enum/Member" into its qualified enum type
// name, discarding the member segment; the returned value does not carry
// the member name.
func parseEnumMemberRef(s string) QualifiedName {
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return ParseQualifiedName(s)
}

func parseStringCollection(dec *xml.Decoder, start xml.StartElement) ([]string, error) {
	var out []string
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			if tt.Name.Local == "String" {
				s, err := readCharData(dec, tt)
				if err != nil {
					return nil, err
				}
				out = append(out, s)
			} else if err := skip(dec); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if tt.Name.Local == start.Name.Local {
				return out, nil
			}
		}
	}
}

func parseRecord(dec *xml.Decoder, start xml.StartElement) ([]PropertyValue, error) {
	var out []PropertyValue
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			if tt.Name.Local == "PropertyValue" {
				pv := PropertyValue{Property: Identifier(attrDefault(tt, "Property", ""))}
				if v, ok := attr(tt, "String"); ok {
					pv.Value = AnnotationValue{Kind: AnnotationString, String: v}
				} else if v, ok := attr(tt, "Bool"); ok {
					pv.Value = AnnotationValue{Kind: AnnotationBool, Bool: strings.EqualFold(v, "true")}
				}
				if err := skip(dec); err != nil {
					return nil, err
				}
				out = append(out, pv)
			} else if err := skip(dec); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if tt.Name.Local == start.Name.Local {
				return out, nil
			}
		}
	}
}

func readCharData(dec *xml.Decoder, start xml.StartElement) (string, error) {
	var b strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch tt := tok.(type) {
		case xml.CharData:
			b.Write(tt)
		case xml.EndElement:
			if tt.Name.Local == start.Name.Local {
				return b.String(), nil
			}
		}
	}
}

// parseTypeRef parses a type string: "Edm.String", "NS.Widget", or
// "Collection(T)" recursively.
func parseTypeRef(s string) TypeRef {
	if strings.HasPrefix(s, "Collection(") && strings.HasSuffix(s, ")") {
		inner := parseTypeRef(s[len("Collection(") : len(s)-1])
		return TypeRef{Collection: &inner}
	}
	return TypeRef{Named: ParseQualifiedName(s)}
}

// skip consumes tokens until the current element's matching end tag,
// tolerating unknown child structure anywhere in the tree.
func skip(dec *xml.Decoder) error {
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return nil
}
