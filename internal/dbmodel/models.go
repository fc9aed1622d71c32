// Package dbmodel defines the gorm models persisted by the index CLI
// subcommand: one row per declaration (nested namespace and class members
// included) found while walking a directory of headers.
package dbmodel

import (
	"time"

	"gorm.io/datatypes"
)

// DeclarationRecord is one indexed declaration, top-level or nested.
type DeclarationRecord struct {
	ID            uint           `gorm:"primaryKey"`
	File          string         `gorm:"type:text;index;not null"`
	Kind          string         `gorm:"type:varchar(32);not null"` // class, function, variable, enum, typedef, ...
	QualifiedName string         `gorm:"type:text;index"`
	ScopePath     string         `gorm:"type:text"`
	Line          int            `gorm:"not null"`
	Column        int            `gorm:"not null"`
	ASTJSON       datatypes.JSON `gorm:"type:jsonb"`
	IndexedAt     time.Time      `gorm:"autoCreateTime"`
}

// TableName pins the table name.
func (DeclarationRecord) TableName() string { return "declarations" }

// IndexRun records one invocation of `cppdecl index`, so repeated runs over
// the same directory can be diffed against each other.
type IndexRun struct {
	ID           uint      `gorm:"primaryKey"`
	RootDir      string    `gorm:"type:text;not null"`
	FileCount    int       `gorm:"not null"`
	DeclCount    int       `gorm:"not null"`
	StartedAt    time.Time `gorm:"not null"`
	FinishedAt   time.Time
}

func (IndexRun) TableName() string { return "index_runs" }
