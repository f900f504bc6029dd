// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package turtle_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sigil-dev/rdfexplorer/internal/source"
	_ "github.com/sigil-dev/rdfexplorer/internal/source/turtle"
	rdferr "github.com/sigil-dev/rdfexplorer/pkg/errors"
	"github.com/sigil-dev/rdfexplorer/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ex         = "http://example.org/"
	rdfType    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	subClassOf = "http://www.w3.org/2000/01/rdf-schema#subClassOf"
	label      = "http://www.w3.org/2000/01/rdf-schema#label"
	owlClass   = "http://www.w3.org/2002/07/owl#Class"
)

const doc = `@prefix ex: <http://example.org/> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

ex:AHU a owl:Class ;
    rdfs:subClassOf ex:Equipment ;
    rdfs:label "Air Handling Unit"@en .

ex:AHU rdfs:subClassOf _:restriction .
_:restriction ex:onProperty ex:hasPoint .
`

func TestDecode_Turtle(t *testing.T) {
	stmts, err := source.Decode(context.Background(), strings.NewReader(doc), source.FormatTurtle)
	require.NoError(t, err)
	require.Len(t, stmts, 5)

	assert.Equal(t, types.Statement{
		Subject:   types.Named(ex + "AHU"),
		Predicate: types.Named(rdfType),
		Object:    types.Resource(types.Named(owlClass)),
	}, stmts[0])
	assert.Equal(t, types.Named(subClassOf), stmts[1].Predicate)
	assert.Equal(t, types.Named(label), stmts[2].Predicate)
	assert.Equal(t, types.Literal("Air Handling Unit"), stmts[2].Object)

	blankObj := stmts[3].Object
	assert.False(t, blankObj.IsLiteral())
	assert.True(t, blankObj.ID.IsAnonymous(), "blank nodes are tagged from the term type")
	assert.True(t, stmts[4].Subject.IsAnonymous())
	assert.Equal(t, blankObj.ID.Key(), stmts[4].Subject.Key(), "same label, same node")
}

func TestDecode_TurtleInvalid(t *testing.T) {
	_, err := source.Decode(context.Background(), strings.NewReader("ex:A ex:b"), source.FormatTurtle)
	require.Error(t, err)
	assert.True(t, rdferr.IsInvalidInput(err))
}

func TestDecode_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := source.Decode(ctx, strings.NewReader(doc), source.FormatTurtle)
	assert.ErrorIs(t, err, context.Canceled)
}

const rdfxml = `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#">
  <rdf:Description rdf:about="http://example.org/Chiller">
    <rdfs:subClassOf rdf:resource="http://example.org/Equipment"/>
    <rdfs:label>Chiller</rdfs:label>
  </rdf:Description>
</rdf:RDF>
`

func TestOpen_RDFXMLByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brick.owl")
	require.NoError(t, os.WriteFile(path, []byte(rdfxml), 0o600))

	stmts, err := source.Open(context.Background(), path, source.FormatAuto)
	require.NoError(t, err)
	assert.ElementsMatch(t, []types.Statement{
		{Subject: types.Named(ex + "Chiller"), Predicate: types.Named(subClassOf), Object: types.Resource(types.Named(ex + "Equipment"))},
		{Subject: types.Named(ex + "Chiller"), Predicate: types.Named(label), Object: types.Literal("Chiller")},
	}, stmts)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := source.Open(context.Background(), filepath.Join(t.TempDir(), "nope.ttl"), source.FormatAuto)
	require.Error(t, err)
	assert.True(t, rdferr.HasCode(err, rdferr.CodeSourceOpenFailure))
}

func TestDecode_GeneratedBlankNodesDoNotCollideWithLabels(t *testing.T) {
	const src = `@prefix ex: <http://example.org/> .
ex:A ex:p [ ex:q "anon" ] .
_:b1 ex:q "labelled" .
ex:B ex:p _:b1 .
`
	stmts, err := source.Decode(context.Background(), strings.NewReader(src), source.FormatTurtle)
	require.NoError(t, err)
	require.Len(t, stmts, 4)

	var fromA, fromB types.Identifier
	values := map[string]string{}
	for _, s := range stmts {
		switch {
		case s.Subject == types.Named(ex+"A"):
			fromA = s.Object.ID
		case s.Subject == types.Named(ex+"B"):
			fromB = s.Object.ID
		case s.Subject.IsAnonymous():
			values[s.Subject.Key()] = s.Object.Value()
		}
	}
	require.True(t, fromA.IsAnonymous())
	require.True(t, fromB.IsAnonymous())
	assert.NotEqual(t, fromA.Key(), fromB.Key())
	assert.Equal(t, types.Anonymous("b1"), fromB, "document labels keep their name")
	assert.Equal(t, map[string]string{fromA.Key(): "anon", fromB.Key(): "labelled"}, values)
}

func TestDecode_LabelMarkingSkipsLiteralsAndIRIs(t *testing.T) {
	const src = `@prefix ex: <http://example.org/> .
# _:b1 in a comment
ex:A ex:note "see _:b1" ;
    ex:long """a "quoted" _:b2 run""" ;
    ex:ref <http://example.org/_:b3> ;
    ex:p _:n .
`
	stmts, err := source.Decode(context.Background(), strings.NewReader(src), source.FormatTurtle)
	require.NoError(t, err)
	require.Len(t, stmts, 4)

	assert.Equal(t, types.Literal("see _:b1"), stmts[0].Object)
	assert.Equal(t, types.Literal(`a "quoted" _:b2 run`), stmts[1].Object)
	assert.Equal(t, types.Resource(types.Named(ex+"_:b3")), stmts[2].Object)
	assert.Equal(t, types.Resource(types.Anonymous("n")), stmts[3].Object)
}

func TestDecode_RDFXMLNodeIDDoesNotCollide(t *testing.T) {
	const src = `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:ex="http://example.org/">
  <rdf:Description rdf:about="http://example.org/A">
    <ex:p><rdf:Description><ex:q>anon</ex:q></rdf:Description></ex:p>
  </rdf:Description>
  <rdf:Description rdf:nodeID="b0">
    <ex:q>labelled</ex:q>
  </rdf:Description>
  <rdf:Description rdf:about="http://example.org/B">
    <ex:p rdf:nodeID="b0"/>
  </rdf:Description>
</rdf:RDF>
`
	stmts, err := source.Decode(context.Background(), strings.NewReader(src), source.FormatRDFXML)
	require.NoError(t, err)

	anon := map[string]bool{}
	for _, s := range stmts {
		if s.Subject.IsAnonymous() {
			anon[s.Subject.Key()] = true
		}
		if !s.Object.IsLiteral() && s.Object.ID.IsAnonymous() {
			anon[s.Object.ID.Key()] = true
		}
	}
	assert.Len(t, anon, 2)
	assert.True(t, anon[types.Anonymous("b0").Key()])
}
