package readtime

import "testing"

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "empty input",
			html: "",
			want: "",
		},
		{
			name: "plain text passes through",
			html: "just some words",
			want: "just some words",
		},
		{
			name: "tags removed with word boundaries preserved",
			html: "<h1>Title</h1><p>One two three four five.</p>",
			want: "Title One two three four five.",
		},
		{
			name: "attributes excluded",
			html: `<a href="https://example.com" title="hidden">visible</a>`,
			want: "visible",
		},
		{
			name: "entities decoded",
			html: "<p>fish &amp; chips &mdash; nice</p>",
			want: "fish & chips — nice",
		},
		{
			name: "script content skipped",
			html: "<p>before</p><script>var x = 1;</script><p>after</p>",
			want: "before after",
		},
		{
			name: "style content skipped",
			html: "<style>body { color: red }</style><p>text</p>",
			want: "text",
		},
		{
			name: "unclosed tags degrade gracefully",
			html: "<p>one <em>two",
			want: "one two",
		},
		{
			name: "stray angle bracket kept as text",
			html: "<p>a < b</p>",
			want: "a < b",
		},
		{
			name: "nested elements",
			html: "<div><ul><li>first</li><li>second</li></ul></div>",
			want: "first second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractText(tt.html)
			if got != tt.want {
				t.Errorf("ExtractText(%q) = %q, want %q", tt.html, got, tt.want)
			}
		})
	}
}
