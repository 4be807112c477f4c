package goshape

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind identifies the variant of a Shape.
type Kind int

const (
	_ Kind = iota // zero value is reserved as the invalid kind

	KindPrimitive
	KindLiteral
	KindObject
	KindUnion
	KindEventual
	KindCallable
	KindTuple
	KindNever
	KindUnknown
	KindAbsent
	KindPartial
)
