package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	ytapi "google.golang.org/api/youtube/v3"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// fakeAPI is an in-memory stand-in for the Data API endpoints used here.
type fakeAPI struct {
	t *testing.T

	mu        sync.Mutex
	hits      map[string]int
	queries   map[string][]string
	channels  map[string]*ytapi.Channel
	usernames map[string]string
	handles   map[string]string
	searches  map[string]string
	uploads   []*ytapi.Video

	// failOn makes the named resource respond with failStatus / failBody.
	failOn     string
	failStatus int
	failBody   string
	// failAfter lets that many requests to failOn succeed first.
	failAfter int
}

func newFakeAPI(t *testing.T) *fakeAPI {
	return &fakeAPI{
		t:         t,
		hits:      make(map[string]int),
		queries:   make(map[string][]string),
		channels:  make(map[string]*ytapi.Channel),
		usernames: make(map[string]string),
		handles:   make(map[string]string),
		searches:  make(map[string]string),
	}
}

func (f *fakeAPI) hitCount(resource string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[resource]
}

func (f *fakeAPI) totalHits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, v := range f.hits {
		n += v
	}
	return n
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resource := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	q := r.URL.Query()

	f.mu.Lock()
	f.hits[resource]++
	n := f.hits[resource]
	f.queries[resource] = append(f.queries[resource], r.URL.RawQuery)
	f.mu.Unlock()

	if q.Get("key") != "test-key" {
		f.t.Errorf("%s: key = %q, want test-key", resource, q.Get("key"))
	}

	if resource == f.failOn && n > f.failAfter {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.failStatus)
		fmt.Fprint(w, f.failBody)
		return
	}

	var resp any
	switch resource {
	case "channels":
		resp = f.channelsResponse(q)
	case "search":
		resp = f.searchResponse(q)
	case "playlistItems":
		resp = f.playlistResponse(q)
	case "videos":
		resp = f.videosResponse(q)
	default:
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		f.t.Errorf("encode %s response: %v", resource, err)
	}
}

func (f *fakeAPI) channelsResponse(q map[string][]string) *ytapi.ChannelListResponse {
	get := func(k string) string {
		if v := q[k]; len(v) > 0 {
			return v[0]
		}
		return ""
	}

	resp := &ytapi.ChannelListResponse{}
	var id string
	switch {
	case get("id") != "":
		if ch, ok := f.channels[get("id")]; ok {
			resp.Items = append(resp.Items, ch)
		}
		return resp
	case get("forUsername") != "":
		id = f.usernames[get("forUsername")]
	case get("forHandle") != "":
		id = f.handles[get("forHandle")]
	}
	if id != "" {
		resp.Items = append(resp.Items, &ytapi.Channel{Id: id})
	}
	return resp
}

func (f *fakeAPI) searchResponse(q map[string][]string) *ytapi.SearchListResponse {
	resp := &ytapi.SearchListResponse{}
	if id, ok := f.searches[strings.Join(q["q"], "")]; ok {
		resp.Items = append(resp.Items, &ytapi.SearchResult{
			Id: &ytapi.ResourceId{Kind: "youtube#channel", ChannelId: id},
		})
	}
	return resp
}

func (f *fakeAPI) playlistResponse(q map[string][]string) *ytapi.PlaylistItemListResponse {
	offset := 0
	if v := q["pageToken"]; len(v) > 0 {
		offset, _ = strconv.Atoi(strings.TrimPrefix(v[0], "page-"))
	}
	size := MaxPageSize
	if v := q["maxResults"]; len(v) > 0 {
		size, _ = strconv.Atoi(v[0])
	}
	if size > MaxPageSize {
		f.t.Errorf("playlistItems maxResults = %d, want <= %d", size, MaxPageSize)
	}

	end := min(offset+size, len(f.uploads))
	resp := &ytapi.PlaylistItemListResponse{}
	for _, v := range f.uploads[offset:end] {
		resp.Items = append(resp.Items, &ytapi.PlaylistItem{
			Snippet: &ytapi.PlaylistItemSnippet{
				ResourceId: &ytapi.ResourceId{Kind: "youtube#video", VideoId: v.Id},
			},
		})
	}
	if end < len(f.uploads) {
		resp.NextPageToken = fmt.Sprintf("page-%d", end)
	}
	return resp
}

func (f *fakeAPI) videosResponse(q map[string][]string) *ytapi.VideoListResponse {
	byID := make(map[string]*ytapi.Video, len(f.uploads))
	for _, v := range f.uploads {
		byID[v.Id] = v
	}

	resp := &ytapi.VideoListResponse{}
	for _, id := range strings.Split(strings.Join(q["id"], ","), ",") {
		if v, ok := byID[id]; ok {
			resp.Items = append(resp.Items, v)
		}
	}
	return resp
}

func (f *fakeAPI) addChannel(id, title string) {
	f.channels[id] = &ytapi.Channel{
		Id: id,
		Snippet: &ytapi.ChannelSnippet{
			Title:       title,
			Description: "A test channel",
			PublishedAt: "2015-03-01T10:00:00Z",
			CustomUrl:   "@" + strings.ToLower(title),
			Thumbnails: &ytapi.ThumbnailDetails{
				High: &ytapi.Thumbnail{Url: "https://yt3.example/high.jpg"},
			},
		},
		Statistics: &ytapi.ChannelStatistics{
			SubscriberCount: 1200,
			VideoCount:      uint64(len(f.uploads)),
			ViewCount:       98765,
		},
		ContentDetails: &ytapi.ChannelContentDetails{
			RelatedPlaylists: &ytapi.ChannelContentDetailsRelatedPlaylists{Uploads: "UU" + id[2:]},
		},
	}
}

// addUploads appends n videos with view counts descending from n.
func (f *fakeAPI) addUploads(n int) {
	start := len(f.uploads)
	for i := 0; i < n; i++ {
		f.uploads = append(f.uploads, testVideo(fmt.Sprintf("vid%03d", start+i), "PT4M", uint64(n-i), 0))
	}
}

func testVideo(id, duration string, views, likes uint64) *ytapi.Video {
	return &ytapi.Video{
		Id: id,
		Snippet: &ytapi.VideoSnippet{
			Title:       "Video " + id,
			Description: "Description of " + id,
			PublishedAt: "2024-06-01T12:00:00Z",
			Thumbnails: &ytapi.ThumbnailDetails{
				Default: &ytapi.Thumbnail{Url: "https://i.ytimg.com/vi/" + id + "/default.jpg"},
				High:    &ytapi.Thumbnail{Url: "https://i.ytimg.com/vi/" + id + "/hqdefault.jpg"},
			},
		},
		Statistics: &ytapi.VideoStatistics{
			ViewCount:    views,
			LikeCount:    likes,
			CommentCount: 3,
		},
		ContentDetails: &ytapi.VideoContentDetails{Duration: duration},
		Status:         &ytapi.VideoStatus{PrivacyStatus: "public"},
	}
}

func newTestServer(t *testing.T, f *fakeAPI) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, f *fakeAPI, limit int) *Client {
	t.Helper()

	srv := newTestServer(t, f)

	c, err := NewClient(context.Background(), Config{
		APIKey:         "test-key",
		Endpoint:       srv.URL + "/",
		DailyCallLimit: limit,
		PageDelay:      -1,
		Now:            func() time.Time { return testNow },
	})
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

// requestedParts returns the part values of a raw query, whether sent as
// repeated parameters or comma-joined.
func requestedParts(t *testing.T, rawQuery string) []string {
	t.Helper()
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		t.Fatalf("parse query %q: %v", rawQuery, err)
	}
	var parts []string
	for _, v := range q["part"] {
		parts = append(parts, strings.Split(v, ",")...)
	}
	return parts
}
