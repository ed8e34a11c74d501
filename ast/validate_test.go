package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateMissingDataServicesIsError(t *testing.T) {
	doc := &EdmxDocument{}
	err := Validate(doc)
	assert.True(t, IsValidationError(err))
	assert.ErrorIs(t, err, ErrWrongDataServicesNumber)
}

func TestValidateDuplicateDeclarationNameIsError(t *testing.T) {
	doc := &EdmxDocument{
		DataServices: &DataServices{
			Schemas: []*Schema{{
				Namespace: ParseNamespace("A.v1"),
				Declarations: []NamedDeclaration{
					{Name: "Widget", Declaration: Declaration{EntityType: &EntityType{Name: "Widget"}}},
					{Name: "Widget", Declaration: Declaration{ComplexType: &ComplexType{Name: "Widget"}}},
				},
			}},
		},
	}
	err := Validate(doc)
	assert.True(t, IsValidationError(err))
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Contains(t, Chain(err), "Schema(A.v1)")
}

func TestValidateAcceptsWellFormedDocument(t *testing.T) {
	doc := &EdmxDocument{
		DataServices: &DataServices{
			Schemas: []*Schema{{
				Namespace: ParseNamespace("A.v1"),
				Declarations: []NamedDeclaration{
					{Name: "Widget", Declaration: Declaration{EntityType: &EntityType{
						Name: "Widget",
						Key:  &Key{PropertyRefs: []Identifier{"id"}},
					}}},
				},
			}},
		},
	}
	assert.NoError(t, Validate(doc))
}

func TestValidateEmptySchemaListIsError(t *testing.T) {
	doc := &EdmxDocument{DataServices: &DataServices{}}
	err := Validate(doc)
	assert.True(t, IsValidationError(err))
}
