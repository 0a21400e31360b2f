package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	paginator := NewPaginator()

	t.Run("Defaults", func(t *testing.T) {
		page := paginator.ParsePage("", "")
		assert.Equal(t, 20, page.Limit)
		assert.Equal(t, 0, page.Offset)
	})

	t.Run("Explicit", func(t *testing.T) {
		page := paginator.ParsePage("5", "40")
		assert.Equal(t, 5, page.Limit)
		assert.Equal(t, 40, page.Offset)
	})

	t.Run("ClampsMax", func(t *testing.T) {
		page := paginator.ParsePage("1000", "0")
		assert.Equal(t, 100, page.Limit)
	})

	t.Run("IgnoresGarbage", func(t *testing.T) {
		page := paginator.ParsePage("abc", "-5")
		assert.Equal(t, 20, page.Limit)
		assert.Equal(t, 0, page.Offset)
	})
}

func TestBuildResponse(t *testing.T) {
	paginator := NewPaginator()
	body := paginator.BuildResponse([]string{"a", "b"}, 12, PageRequest{Limit: 2, Offset: 4})

	assert.Equal(t, []string{"a", "b"}, body["results"])
	assert.Equal(t, 12, body["total"])
	assert.Equal(t, 2, body["limit"])
	assert.Equal(t, 4, body["offset"])
}
