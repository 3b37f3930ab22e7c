package pagination

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFromQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query string
		want  Params
	}{
		{"", Params{Page: 1, Size: DefaultSize}},
		{"?page=3&size=20", Params{Page: 3, Size: 20}},
		{"?page=0&size=-5", Params{Page: 1, Size: DefaultSize}},
		{"?page=abc&size=1000", Params{Page: 1, Size: MaxSize}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/items"+tt.query, nil)

			assert.Equal(t, tt.want, FromQuery(c))
		})
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, New(1, 10).Offset())
	assert.Equal(t, 40, New(5, 10).Offset())
}

func TestNewPage_TotalPages(t *testing.T) {
	page := NewPage([]int{1, 2, 3}, New(1, 3), 7)

	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(7), page.TotalItems)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 3, page.PageSize)
}

func TestNewPage_EmptyItemsNotNull(t *testing.T) {
	page := NewPage[string](nil, New(1, 10), 0)

	assert.NotNil(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
}

func TestMap(t *testing.T) {
	page := NewPage([]int{1, 2}, New(2, 2), 4)

	mapped := Map(page, strconv.Itoa)

	assert.Equal(t, []string{"1", "2"}, mapped.Items)
	assert.Equal(t, 2, mapped.CurrentPage)
	assert.Equal(t, 2, mapped.TotalPages)
}
