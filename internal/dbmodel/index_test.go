package dbmodel

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/oxhq/cppdecl/internal/ast"
	"github.com/oxhq/cppdecl/internal/declparse"
	"github.com/oxhq/cppdecl/internal/options"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&DeclarationRecord{}, &IndexRun{}))
	return db
}

func parseUnit(t *testing.T, src string) *ast.TranslationUnit {
	t.Helper()
	unit, diags, err := declparse.Parse(src, "widget.h", options.Default())
	require.NoError(t, err)
	require.Empty(t, diags)
	return unit
}

func TestFlattenDeclarations_TopLevelAndNested(t *testing.T) {
	unit := parseUnit(t, `
namespace ns {
class Widget {
    int value;
};
}
int top_level;
`)

	records := FlattenDeclarations(unit)

	var kinds []string
	for _, r := range records {
		kinds = append(kinds, r.Kind)
	}
	assert.Equal(t, []string{"namespace", "class", "variable", "variable"}, kinds)

	for _, r := range records {
		assert.Equal(t, "widget.h", r.File)
		assert.NotEmpty(t, r.ASTJSON)
	}
}

func TestFlattenDeclarations_QualifiedNamesAndScopePath(t *testing.T) {
	unit := parseUnit(t, `
namespace outer {
class Inner {
    int member;
};
}
`)
	records := FlattenDeclarations(unit)

	require.Len(t, records, 3)
	assert.Equal(t, "outer", records[0].QualifiedName)
	assert.Equal(t, "Inner", records[1].QualifiedName)
	assert.Equal(t, "member", records[2].QualifiedName)
	assert.Equal(t, "outer::Inner", records[2].ScopePath)
}

func TestPersist_ReplacesExistingRowsForSameFile(t *testing.T) {
	db := setupTestDB(t)

	first := []DeclarationRecord{{File: "a.h", Kind: "variable", QualifiedName: "x"}}
	require.NoError(t, Persist(db, "a.h", first))

	var count int64
	require.NoError(t, db.Model(&DeclarationRecord{}).Where("file = ?", "a.h").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	second := []DeclarationRecord{
		{File: "a.h", Kind: "variable", QualifiedName: "y"},
		{File: "a.h", Kind: "variable", QualifiedName: "z"},
	}
	require.NoError(t, Persist(db, "a.h", second))

	require.NoError(t, db.Model(&DeclarationRecord{}).Where("file = ?", "a.h").Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestPersist_EmptyRecordsClearsRows(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Persist(db, "b.h", []DeclarationRecord{{File: "b.h", Kind: "variable", QualifiedName: "x"}}))
	require.NoError(t, Persist(db, "b.h", nil))

	var count int64
	require.NoError(t, db.Model(&DeclarationRecord{}).Where("file = ?", "b.h").Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
