package srctrail

import (
	"github.com/jward/srctrail/internal/kind"
	"github.com/jward/srctrail/internal/namehierarchy"
)

// NameHierarchy and NameElement are re-exported from internal/namehierarchy
// so callers never import an internal package directly.
type NameHierarchy = namehierarchy.NameHierarchy
type NameElement = namehierarchy.NameElement

// SerializeToDatabaseString, SerializeToJSON and DeserializeFromJSON are
// re-exported as package-level functions for the same reason.
var SerializeToDatabaseString = namehierarchy.SerializeToDatabaseString
var SerializeToJSON = namehierarchy.SerializeToJSON
var DeserializeFromJSON = namehierarchy.DeserializeFromJSON

// SourceRange is a 1-based, inclusive character range within a recorded
// file, tagged implicitly by which Record* call it is passed to.
type SourceRange struct {
	FileID      int64
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Kind type aliases. Values are fixed on-disk integers; see internal/kind.
type (
	NodeKind             = kind.NodeKind
	EdgeKind             = kind.EdgeKind
	LocationKind         = kind.LocationKind
	DefinitionKind       = kind.DefinitionKind
	SymbolKind           = kind.SymbolKind
	ReferenceKind        = kind.ReferenceKind
	ElementComponentKind = kind.ElementComponentKind
)

// NodeKind members.
const (
	NodeUnknown        = kind.NodeUnknown
	NodeType           = kind.NodeType
	NodeBuiltinType    = kind.NodeBuiltinType
	NodeModule         = kind.NodeModule
	NodeNamespace      = kind.NodeNamespace
	NodePackage        = kind.NodePackage
	NodeStruct         = kind.NodeStruct
	NodeClass          = kind.NodeClass
	NodeInterface      = kind.NodeInterface
	NodeAnnotation     = kind.NodeAnnotation
	NodeGlobalVariable = kind.NodeGlobalVariable
	NodeField          = kind.NodeField
	NodeFunction       = kind.NodeFunction
	NodeMethod         = kind.NodeMethod
	NodeEnum           = kind.NodeEnum
	NodeEnumConstant   = kind.NodeEnumConstant
	NodeTypedef        = kind.NodeTypedef
	NodeTypeParameter  = kind.NodeTypeParameter
	NodeFile           = kind.NodeFile
	NodeMacro          = kind.NodeMacro
	NodeUnion          = kind.NodeUnion
)

// EdgeKind members.
const (
	EdgeUnknown                = kind.EdgeUnknown
	EdgeMember                 = kind.EdgeMember
	EdgeTypeUsage              = kind.EdgeTypeUsage
	EdgeUsage                  = kind.EdgeUsage
	EdgeCall                   = kind.EdgeCall
	EdgeInheritance            = kind.EdgeInheritance
	EdgeOverride               = kind.EdgeOverride
	EdgeTypeArgument           = kind.EdgeTypeArgument
	EdgeTemplateSpecialization = kind.EdgeTemplateSpecialization
	EdgeInclude                = kind.EdgeInclude
	EdgeImport                 = kind.EdgeImport
	EdgeMacroUsage             = kind.EdgeMacroUsage
	EdgeAnnotationUsage        = kind.EdgeAnnotationUsage
)

// LocationKind members.
const (
	LocationToken          = kind.LocationToken
	LocationScope          = kind.LocationScope
	LocationQualifier      = kind.LocationQualifier
	LocationLocalSymbol    = kind.LocationLocalSymbol
	LocationSignature      = kind.LocationSignature
	LocationAtomicRange    = kind.LocationAtomicRange
	LocationIndexerError   = kind.LocationIndexerError
	LocationFulltextSearch = kind.LocationFulltextSearch
	LocationScreenSearch   = kind.LocationScreenSearch
	LocationUnsolved       = kind.LocationUnsolved
)

// DefinitionKind members.
const (
	DefinitionImplicit = kind.DefinitionImplicit
	DefinitionExplicit = kind.DefinitionExplicit
)

// SymbolKind members.
const (
	SymbolType           = kind.SymbolType
	SymbolBuiltinType    = kind.SymbolBuiltinType
	SymbolModule         = kind.SymbolModule
	SymbolNamespace      = kind.SymbolNamespace
	SymbolPackage        = kind.SymbolPackage
	SymbolStruct         = kind.SymbolStruct
	SymbolClass          = kind.SymbolClass
	SymbolInterface      = kind.SymbolInterface
	SymbolAnnotation     = kind.SymbolAnnotation
	SymbolGlobalVariable = kind.SymbolGlobalVariable
	SymbolField          = kind.SymbolField
	SymbolFunction       = kind.SymbolFunction
	SymbolMethod         = kind.SymbolMethod
	SymbolEnum           = kind.SymbolEnum
	SymbolEnumConstant   = kind.SymbolEnumConstant
	SymbolTypedef        = kind.SymbolTypedef
	SymbolTypeParameter  = kind.SymbolTypeParameter
	SymbolMacro          = kind.SymbolMacro
	SymbolUnion          = kind.SymbolUnion
)

// ReferenceKind members.
const (
	ReferenceTypeUsage              = kind.ReferenceTypeUsage
	ReferenceUsage                  = kind.ReferenceUsage
	ReferenceCall                   = kind.ReferenceCall
	ReferenceInheritance            = kind.ReferenceInheritance
	ReferenceOverride               = kind.ReferenceOverride
	ReferenceTypeArgument           = kind.ReferenceTypeArgument
	ReferenceTemplateSpecialization = kind.ReferenceTemplateSpecialization
	ReferenceInclude                = kind.ReferenceInclude
	ReferenceImport                 = kind.ReferenceImport
	ReferenceMacroUsage             = kind.ReferenceMacroUsage
	ReferenceAnnotationUsage        = kind.ReferenceAnnotationUsage
)

// ElementComponentKind members.
const (
	ElementComponentIsAmbiguous = kind.ElementComponentIsAmbiguous
)
