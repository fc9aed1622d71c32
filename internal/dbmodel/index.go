package dbmodel

import (
	"encoding/json"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/oxhq/cppdecl/internal/ast"
)

// FlattenDeclarations walks unit's declaration tree (including nested
// namespace/class bodies) and returns one DeclarationRecord per
// declaration, for persistence by the index CLI subcommand.
func FlattenDeclarations(unit *ast.TranslationUnit) []DeclarationRecord {
	var out []DeclarationRecord
	for _, d := range unit.Declarations {
		flattenInto(&out, unit.Filename, d)
	}
	return out
}

func flattenInto(out *[]DeclarationRecord, file string, d ast.Decl) {
	*out = append(*out, toRecord(file, d))

	switch v := d.(type) {
	case *ast.NamespaceDecl:
		for _, child := range v.Body {
			flattenInto(out, file, child)
		}
	case *ast.ClassDecl:
		for _, child := range v.Body {
			flattenInto(out, file, child)
		}
	}
}

func toRecord(file string, d ast.Decl) DeclarationRecord {
	common := d.Common()
	astJSON, _ := json.Marshal(d)
	return DeclarationRecord{
		File:          file,
		Kind:          string(d.Kind()),
		QualifiedName: qualifiedNameOf(d),
		ScopePath:     strings.Join(common.Scope.Path, "::"),
		Line:          common.Location.Line,
		Column:        common.Location.Column,
		ASTJSON:       datatypes.JSON(astJSON),
	}
}

func qualifiedNameOf(d ast.Decl) string {
	switch v := d.(type) {
	case *ast.ClassDecl:
		return v.Name.String()
	case *ast.EnumDecl:
		return v.Name
	case *ast.FunctionDecl:
		return v.Name.String()
	case *ast.VariableDecl:
		return v.Name
	case *ast.TypedefDecl:
		return v.Name
	case *ast.AliasDecl:
		return v.Name
	case *ast.NamespaceDecl:
		return strings.Join(v.Names, "::")
	default:
		return ""
	}
}

// Persist writes records into db, replacing any existing rows for the same
// file (re-indexing a changed header drops its stale rows first).
func Persist(db *gorm.DB, file string, records []DeclarationRecord) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("file = ?", file).Delete(&DeclarationRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
}
