package sanitize

import (
	"strings"
	"testing"
)

func TestTextKeepsParagraphContent(t *testing.T) {
	got := Text("<p>Hello <b>world</b></p>")
	if got != "Hello world" {
		t.Errorf("Text=%q, want %q", got, "Hello world")
	}
}

func TestTextDropsScriptAndStyleContent(t *testing.T) {
	got := Text(`<p>before</p><script>alert("x")</script><style>p{color:red}</style><p>after</p>`)
	if strings.Contains(got, "alert") || strings.Contains(got, "color") {
		t.Errorf("script/style content leaked into %q", got)
	}
	if !strings.Contains(got, "before") || !strings.Contains(got, "after") {
		t.Errorf("surrounding text lost: %q", got)
	}
}

func TestTextDropsLinksWholly(t *testing.T) {
	got := Text(`<p>read <a href="https://example.com">the comments</a> now</p>`)
	if strings.Contains(got, "comments") {
		t.Errorf("anchor text should be removed with the element, got %q", got)
	}
	if !strings.Contains(got, "read") || !strings.Contains(got, "now") {
		t.Errorf("non-anchor text lost: %q", got)
	}
}

func TestTextDropsMediaElements(t *testing.T) {
	got := Text(`<img src="x.png" alt="pic"><video>fallback text</video><iframe>framed</iframe><input value="v"><audio>snd</audio>ok`)
	for _, leaked := range []string{"fallback", "framed", "snd", "x.png"} {
		if strings.Contains(got, leaked) {
			t.Errorf("media content %q leaked into %q", leaked, got)
		}
	}
	if !strings.Contains(got, "ok") {
		t.Errorf("plain text lost: %q", got)
	}
}

func TestTextUnescapesEntities(t *testing.T) {
	got := Text("<p>fish &amp; chips</p>")
	if got != "fish & chips" {
		t.Errorf("Text=%q, want %q", got, "fish & chips")
	}
}

func TestTextCollapsesWhitespace(t *testing.T) {
	got := Text("<div>\n  one\n\n  two\t three\n</div>")
	if got != "one two three" {
		t.Errorf("Text=%q, want %q", got, "one two three")
	}
}

func TestTextPlainInput(t *testing.T) {
	got := Text("just plain text")
	if got != "just plain text" {
		t.Errorf("Text=%q, want unchanged plain text", got)
	}
}
