package generate

import (
	"ember/ast"
	"ember/typing"

	"github.com/llir/llvm/ir/types"
)

// structEntry is an entry in the struct table.
type structEntry struct {
	def *ast.StructDef

	// fieldIndices maps field names to their position in the struct.
	fieldIndices map[string]int

	// llType is the named LLVM struct type.
	llType *types.StructType
}

// fieldType returns the type of the field at index i.
func (se *structEntry) fieldType(i int) typing.DataType {
	return se.def.Fields[i].Type
}

// declareStruct registers a struct definition as an opaque named type.  Its
// fields are filled in by defineStruct once every struct name is known.
func (g *Generator) declareStruct(sd *ast.StructDef) {
	if _, ok := g.structs[sd.Name]; ok || sd.Name == "string" {
		g.error(sd.Span(), "multiple structs named `%s`", sd.Name)
	}

	llType := &types.StructType{Opaque: true}
	g.mod.NewTypeDef(sd.Name, llType)

	fieldIndices := make(map[string]int)
	for i, field := range sd.Fields {
		fieldIndices[field.Name] = i
	}

	g.structs[sd.Name] = &structEntry{
		def:          sd,
		fieldIndices: fieldIndices,
		llType:       llType,
	}
}

// defineStruct fills in the body of a declared struct type.
func (g *Generator) defineStruct(sd *ast.StructDef) {
	se := g.structs[sd.Name]

	for _, field := range sd.Fields {
		if g.containsStruct(field.Type, sd.Name, make(map[string]bool)) {
			g.error(field.Span(), "struct `%s` cannot contain itself", sd.Name)
		}

		se.llType.Fields = append(se.llType.Fields, g.convType(field.Type, field.Span()))
	}

	se.llType.Opaque = false
}

// containsStruct returns whether a value of type typ stores a value of the
// struct named name.  visited holds the structs already searched.
func (g *Generator) containsStruct(typ typing.DataType, name string, visited map[string]bool) bool {
	switch v := typ.(type) {
	case *typing.ArrayType:
		return g.containsStruct(v.ElemType, name, visited)
	case *typing.StructType:
		if v.Name == name {
			return true
		} else if visited[v.Name] {
			return false
		}

		visited[v.Name] = true
		if se, ok := g.structs[v.Name]; ok {
			for _, field := range se.def.Fields {
				if g.containsStruct(field.Type, name, visited) {
					return true
				}
			}
		}
	}

	return false
}
