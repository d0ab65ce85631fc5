package kind

// SymbolKind identifies the category of symbol a client is recording via
// RecordSymbolKind. It exists purely as the input side of
// SymbolKindToNodeKind; the node itself stores a NodeKind, not a
// SymbolKind.
type SymbolKind int32

const (
	SymbolType SymbolKind = iota
	SymbolBuiltinType
	SymbolModule
	SymbolNamespace
	SymbolPackage
	SymbolStruct
	SymbolClass
	SymbolInterface
	SymbolAnnotation
	SymbolGlobalVariable
	SymbolField
	SymbolFunction
	SymbolMethod
	SymbolEnum
	SymbolEnumConstant
	SymbolTypedef
	SymbolTypeParameter
	SymbolMacro
	SymbolUnion
)

// SymbolKindToNodeKind is a total mapping: every SymbolKind has a defined
// NodeKind. The trailing return after the switch is the fallback for any
// value outside the defined set, mirroring the exhaustive-switch-then-
// fallback shape used throughout this package.
func SymbolKindToNodeKind(k SymbolKind) NodeKind {
	switch k {
	case SymbolType:
		return NodeType
	case SymbolBuiltinType:
		return NodeBuiltinType
	case SymbolModule:
		return NodeModule
	case SymbolNamespace:
		return NodeNamespace
	case SymbolPackage:
		return NodePackage
	case SymbolStruct:
		return NodeStruct
	case SymbolClass:
		return NodeClass
	case SymbolInterface:
		return NodeInterface
	case SymbolAnnotation:
		return NodeAnnotation
	case SymbolGlobalVariable:
		return NodeGlobalVariable
	case SymbolField:
		return NodeField
	case SymbolFunction:
		return NodeFunction
	case SymbolMethod:
		return NodeMethod
	case SymbolEnum:
		return NodeEnum
	case SymbolEnumConstant:
		return NodeEnumConstant
	case SymbolTypedef:
		return NodeTypedef
	case SymbolTypeParameter:
		return NodeTypeParameter
	case SymbolMacro:
		return NodeMacro
	case SymbolUnion:
		return NodeUnion
	}
	return NodeUnknown
}
