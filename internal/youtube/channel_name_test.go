package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const channelPage = `<!DOCTYPE html>
<html>
<head>
  <title>CodeMaster</title>
  <meta property="og:title" content="CodeMaster">
</head>
<body>
  <h1>CodeMaster</h1>
  <article>
    <p>CodeMaster publishes long form programming videos every week. The channel covers Go, distributed systems,
    databases and the everyday craft of building reliable software, with live coding sessions and code reviews.</p>
    <p>New episodes arrive on Mondays and Thursdays, and every video comes with the full source code so viewers
    can follow along, experiment on their own machines and send questions for the next stream.</p>
  </article>
</body>
</html>`

func TestChannelNameResolver_ChannelName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(channelPage))
	}))
	defer srv.Close()

	name, err := NewChannelNameResolver(time.Second).ChannelName(context.Background(), srv.URL+"/@CodeMaster")
	require.NoError(t, err)
	assert.Equal(t, "CodeMaster", name)
}

func TestChannelNameResolver_ChannelName_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewChannelNameResolver(time.Second).ChannelName(context.Background(), srv.URL+"/@missing")
	require.Error(t, err)
}

func TestFallbackChannelName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/@PewDiePie", "@PewDiePie"},
		{"https://www.youtube.com/user/PewDiePie/", "PewDiePie"},
		{"https://www.youtube.com/channel/UC123", "UC123"},
		{"https://www.youtube.com", "https://www.youtube.com"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, FallbackChannelName(tt.url))
		})
	}
}
