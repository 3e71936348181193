package service

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library_backend/internals/databases/dbtest"
	visitLogModel "library_backend/internals/features/audit/visit_logs/model"
)

func TestTruncateKeepsRuneBoundary(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	// "é" = 2 byte, potong di byte ke-3 jatuh di tengah rune kedua
	assert.Equal(t, "é", truncate("éé", 3))
	assert.Equal(t, "", truncate("日本", 2))
}

func TestRecordMultibytePathStaysValidUTF8(t *testing.T) {
	db := dbtest.NewTestDB(t)
	rec := &Recorder{DB: db}

	// 499 byte ASCII + rune 3 byte → batas 500 jatuh di tengah rune
	path := "/" + strings.Repeat("a", 498) + "日本"
	rec.Record(Entry{Path: path, Method: "GET", IP: "203.0.113.7", At: time.Now()})

	var row visitLogModel.VisitLogModel
	require.NoError(t, db.First(&row).Error)
	assert.True(t, utf8.ValidString(row.VisitLogPath))
	assert.Equal(t, "/"+strings.Repeat("a", 498), row.VisitLogPath)
	require.NotNil(t, row.VisitLogIPAddress)
	assert.Equal(t, "203.0.113.7", *row.VisitLogIPAddress)
}
