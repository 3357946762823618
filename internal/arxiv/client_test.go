package arxiv

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:opensearch="http://a9.com/-/spec/opensearch/1.1/" xmlns:arxiv="http://arxiv.org/schemas/atom">
  <id>http://arxiv.org/api/cHxbiOdZaP56ODnBPIenZhzg5f8</id>
  <title type="html">ArXiv Query: search_query=ti:transformers</title>
  <updated>2025-01-01T00:00:00-05:00</updated>
  <opensearch:totalResults>2</opensearch:totalResults>
  <entry>
    <id>http://arxiv.org/abs/1706.03762v7</id>
    <updated>2023-08-02T00:41:18Z</updated>
    <published>2017-06-12T17:57:34Z</published>
    <title>Attention Is All
      You Need</title>
    <summary>  The dominant sequence transduction models are based on complex recurrent or
convolutional neural networks.
</summary>
    <author><name>Ashish Vaswani</name></author>
    <author><name>Noam Shazeer</name></author>
    <link href="http://arxiv.org/abs/1706.03762v7" rel="alternate" type="text/html"/>
    <arxiv:primary_category term="cs.CL" scheme="http://arxiv.org/schemas/atom"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2010.11929v2</id>
    <published>2020-10-22T17:55:59Z</published>
    <title>An Image is Worth 16x16 Words</title>
    <summary></summary>
    <author><name>Alexey Dosovitskiy</name></author>
  </entry>
</feed>`

const errorFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <id>http://arxiv.org/api/errors</id>
  <title>ArXiv Query: search_query=</title>
  <entry>
    <id>http://arxiv.org/api/errors#incorrect_id_format_for_1234</id>
    <title>Error</title>
    <summary>incorrect id format for 1234</summary>
  </entry>
</feed>`

func TestBuildQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		query    string
		category string
		want     string
	}{
		{"basic", "transformers", "cs.*", `(ti:"transformers" OR abs:"transformers") AND cat:cs.*`},
		{"phrase", "graph neural networks", "cs.*", `(ti:"graph neural networks" OR abs:"graph neural networks") AND cat:cs.*`},
		{"strips quotes", `"diffusion" models`, "cs.*", `(ti:"diffusion models" OR abs:"diffusion models") AND cat:cs.*`},
		{"collapses whitespace", "  large \n language  ", "cs.*", `(ti:"large language" OR abs:"large language") AND cat:cs.*`},
		{"no category", "bert", "", `(ti:"bert" OR abs:"bert")`},
		{"empty", "   ", "cs.*", ""},
		{"only quotes", `""`, "cs.*", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, BuildQuery(tt.query, tt.category))
		})
	}
}

func TestClient_Search(t *testing.T) {
	t.Parallel()

	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"search_query": q.Get("search_query"),
			"start":        q.Get("start"),
			"max_results":  q.Get("max_results"),
			"sortBy":       q.Get("sortBy"),
			"sortOrder":    q.Get("sortOrder"),
		}
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "cs.*", 5*time.Second)
	papers, err := c.Search(context.Background(), "transformers", 3)
	require.NoError(t, err)

	assert.Equal(t, `(ti:"transformers" OR abs:"transformers") AND cat:cs.*`, gotQuery["search_query"])
	assert.Equal(t, "0", gotQuery["start"])
	assert.Equal(t, "3", gotQuery["max_results"])
	assert.Equal(t, "relevance", gotQuery["sortBy"])
	assert.Equal(t, "descending", gotQuery["sortOrder"])

	require.Len(t, papers, 2)

	first := papers[0]
	assert.Equal(t, "Attention Is All You Need", first.Title)
	assert.Equal(t, []string{"Ashish Vaswani", "Noam Shazeer"}, first.Authors)
	assert.Equal(t, "http://arxiv.org/abs/1706.03762v7", first.URL)
	assert.Equal(t, "2017-06-12T17:57:34Z", first.PublishedDate)
	assert.Equal(t, "The dominant sequence transduction models are based on complex recurrent or convolutional neural networks.", first.Abstract)
	assert.Empty(t, first.Summary)

	second := papers[1]
	assert.Equal(t, "http://arxiv.org/abs/2010.11929v2", second.URL)
	assert.Empty(t, second.Abstract)
}

func TestClient_Search_TruncatesToMax(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	papers, err := NewClient(srv.URL, "", time.Second).Search(context.Background(), "x", 1)
	require.NoError(t, err)
	assert.Len(t, papers, 1)
}

func TestClient_Search_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error", http.StatusServiceUnavailable, "unavailable", ErrUpstream},
		{"error entry", http.StatusOK, errorFeed, ErrUpstream},
		{"not a feed", http.StatusOK, "<html>oops</html>", nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, "cs.*", time.Second).Search(context.Background(), "transformers", 3)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "error %v should wrap %v", err, tt.wantErr)
			}
		})
	}
}

func TestClient_Search_EmptyQuery(t *testing.T) {
	t.Parallel()

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "cs.*", time.Second).Search(context.Background(), "  ", 3)
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.False(t, called, "no request should be sent for an empty query")
}

func TestClient_Search_Unreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "cs.*", time.Second).Search(context.Background(), "transformers", 3)
	assert.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	t.Parallel()

	c := NewClient("", "", time.Second)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, DefaultCategory, c.Category())
}
