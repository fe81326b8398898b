package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/storefront/pkg/sanitizer"
)

func TestHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"keeps formatting", "<p><strong>Bold</strong> and <em>it</em></p>", "<p><strong>Bold</strong> and <em>it</em></p>"},
		{"drops script", `<p>hi</p><script>alert(1)</script>`, "<p>hi</p>"},
		{"drops handlers", `<p onclick="x()">hi</p>`, "<p>hi</p>"},
		{"drops javascript urls", `<a href="javascript:alert(1)">x</a>`, "x"},
		{"nofollow", `<a href="/products">all</a>`, `<a href="/products" rel="nofollow">all</a>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizer.HTML(tt.in))
		})
	}
}

func TestText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hello world", sanitizer.Text("<h1>Hello</h1>\n\n  <p>world</p>"))
	assert.Equal(t, "", sanitizer.Text("<script>x</script>"))
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	t.Run("renders emphasis and lists", func(t *testing.T) {
		t.Parallel()

		out := sanitizer.Markdown("A **great** book\n\n- one\n- two")
		assert.Contains(t, out, "<strong>great</strong>")
		assert.Contains(t, out, "<li>one</li>")
	})

	t.Run("raw html is not executed", func(t *testing.T) {
		t.Parallel()

		out := sanitizer.Markdown("hello <script>alert(1)</script>")
		assert.NotContains(t, out, "<script>")
	})

	t.Run("links get nofollow", func(t *testing.T) {
		t.Parallel()

		out := sanitizer.Markdown("[docs](https://example.com)")
		assert.Contains(t, out, `href="https://example.com"`)
		assert.Contains(t, out, "nofollow")
	})
}

func TestExcerpt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Short text", sanitizer.Excerpt("Short *text*", 50))
	assert.Equal(t, "The quick brown…", sanitizer.Excerpt("The quick brown fox jumps", 18))
}
