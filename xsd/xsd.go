// Package xsd exports IRIs of the XML Schema built-in datatypes as
// serd.Node values, for callers constructing statements by hand rather
// than through serd.NewTypedLiteral.
package xsd

import "github.com/rdfstream/serd"

// Core types.
var (
	String  = serd.NewURI(serd.XSDString)
	Boolean = serd.NewURI(serd.XSDBoolean)
	Decimal = serd.NewURI(serd.XSDDecimal)
	Integer = serd.NewURI(serd.XSDInteger)
	Double  = serd.NewURI(serd.XSDDouble)
)

// RDF 1.1 vocabulary terms that share this package because callers
// reaching for xsd types are usually also building rdf:type / rdf:first
// / rdf:rest / rdf:nil statements by hand.
var (
	Type  = serd.NewURI(serd.RDFType)
	First = serd.NewURI(serd.RDFFirst)
	Rest  = serd.NewURI(serd.RDFRest)
	Nil   = serd.NewURI(serd.RDFNil)
)
