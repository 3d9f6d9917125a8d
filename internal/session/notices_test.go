package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tts-converter/pkg/models"
)

func TestNotices_KeepsLastThree(t *testing.T) {
	n := NewNotices()
	n.Warning("one")
	n.Success("two")
	n.Error("three")
	n.Success("four")

	got := n.Drain()

	assert.Len(t, got, MaxNotices)
	assert.Equal(t, "two", got[0].Text)
	assert.Equal(t, models.NoticeError, got[1].Level)
	assert.Equal(t, "four", got[2].Text)
}

func TestNotices_DrainEmpties(t *testing.T) {
	n := NewNotices()
	n.Error("boom")

	assert.Len(t, n.Drain(), 1)
	assert.Empty(t, n.Drain())
	assert.NotNil(t, n.Drain())
}
