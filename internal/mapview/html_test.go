package mapview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/matjibmap/model"
)

func TestOverlayHTML(t *testing.T) {
	html, err := OverlayHTML(restaurantA)
	require.NoError(t, err)

	assert.Contains(t, html, "나주혁신점 맛있는 갈비찜")
	assert.Contains(t, html, "종류: 한식")
	assert.Contains(t, html, "4.8")
	assert.Contains(t, html, "(342 리뷰)")
	assert.Contains(t, html, "가격대: $$")
	assert.Contains(t, html, `href="/restaurants/1"`)
}

func TestMarkerHTML_EscapesContent(t *testing.T) {
	r := model.Restaurant{ID: 9, Name: `<script>alert("x")</script>`, Image: "https://example.com/a.png"}

	html, err := MarkerHTML(r, false)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "https://example.com/a.png")
}

func TestScriptURL(t *testing.T) {
	assert.Equal(t, "https://openapi.map.naver.com/openapi/v3/maps.js?ncpKeyId=abc123", ScriptURL("", "abc123"))
	assert.Equal(t, "https://maps.example.com/v3.js?ncpKeyId=k", ScriptURL("https://maps.example.com/v3.js", " k "))
	assert.Empty(t, ScriptURL(DefaultScriptEndpoint, ""))
}
