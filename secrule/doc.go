// Package secrule is the typed model of SecRule directives.
//
// Model values are built from the parse trees of package grammar through the NodeDeserializer
// interface, and rendered back to canonical directive text through Serializer. For every tree the
// grammar produces, deserializing the rendering of a value gives back an equal value.
package secrule
