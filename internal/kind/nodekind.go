// Package kind holds the closed integer enumerations used throughout the
// storage engine and writer façade. Every kind is a fixed on-disk integer
// encoding; none of these values may be renumbered without breaking
// existing database files.
package kind

// NodeKind identifies the category of a node row. Values are bit
// positions, not a dense sequence: NodeKind is stored as a single integer
// today but the encoding leaves room for a future bitmask use.
type NodeKind int32

const (
	NodeUnknown NodeKind = 1 << iota
	NodeType
	NodeBuiltinType
	NodeModule
	NodeNamespace
	NodePackage
	NodeStruct
	NodeClass
	NodeInterface
	NodeAnnotation
	NodeGlobalVariable
	NodeField
	NodeFunction
	NodeMethod
	NodeEnum
	NodeEnumConstant
	NodeTypedef
	NodeTypeParameter
	NodeFile
	NodeMacro
	NodeUnion
)

// IntToNodeKind decodes v into a NodeKind, falling back to NodeUnknown for
// any integer outside the defined set.
func IntToNodeKind(v int32) NodeKind {
	switch NodeKind(v) {
	case NodeType, NodeBuiltinType, NodeModule, NodeNamespace, NodePackage,
		NodeStruct, NodeClass, NodeInterface, NodeAnnotation, NodeGlobalVariable,
		NodeField, NodeFunction, NodeMethod, NodeEnum, NodeEnumConstant,
		NodeTypedef, NodeTypeParameter, NodeFile, NodeMacro, NodeUnion:
		return NodeKind(v)
	}
	return NodeUnknown
}

// NodeKindToInt returns the on-disk integer for k.
func NodeKindToInt(k NodeKind) int32 {
	return int32(k)
}
