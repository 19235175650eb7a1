package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTMLBodyEscapesMarkup(t *testing.T) {
	got := htmlBody(`Merci <script>alert("x")</script> & à bientôt`)
	assert.Equal(t, "<pre>Merci &lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt; &amp; à bientôt</pre>", got)
}
