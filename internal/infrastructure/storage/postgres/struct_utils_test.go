package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"freightdesk/internal/core/entity"
	"freightdesk/internal/core/id"
)

type mockEntity struct {
	entity.BaseEntity
	Correlative string `db:"correlative" json:"correlative"`
	Status      string `db:"status" json:"status"`
	Skipped     string `db:"-" json:"skipped"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockEntity]()

	expected := []string{
		"id", "version", "created_at", "updated_at", "created_by", "correlative", "status",
	}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}
	assert.NotContains(t, cols, "-")
	assert.NotContains(t, cols, "skipped")
}

func TestStructToMap(t *testing.T) {
	now := time.Now().UTC()
	e := mockEntity{
		BaseEntity: entity.BaseEntity{
			ID:        id.New(),
			Version:   3,
			CreatedAt: now,
			UpdatedAt: now,
			CreatedBy: "user-1",
		},
		Correlative: "COT-2026-00007",
		Status:      "pending",
		Skipped:     "not persisted",
	}

	m := StructToMap(e)

	assert.Equal(t, e.ID, m["id"])
	assert.Equal(t, 3, m["version"])
	assert.Equal(t, "user-1", m["created_by"])
	assert.Equal(t, "COT-2026-00007", m["correlative"])
	assert.Equal(t, "pending", m["status"])
	assert.NotContains(t, m, "-")
	assert.NotContains(t, m, "skipped")
}
