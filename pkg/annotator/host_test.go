package annotator

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fakeRuntime(t *testing.T) (*Host, *[]string) {
	t.Helper()
	var paths []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/annotator/run":
			var req Request
			_ = json.NewDecoder(r.Body).Decode(&req)
			_ = json.NewEncoder(w).Encode(runResponse{Image: "YW5ub3RhdGVk", Info: req.Module})
		case "/annotator/unload":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(ts.Close)

	u, err := url.Parse(ts.URL)
	if err != nil {
		t.Fatal(err)
	}
	return (*Host)(u), &paths
}

func TestAnnotate(t *testing.T) {
	host, _ := fakeRuntime(t)

	annotated, err := host.Annotate(&Request{Module: "canny", Image: "aGk=", ProcessorRes: 512})
	if assert.NoError(t, err) {
		assert.Equal(t, "YW5ub3RhdGVk", annotated)
	}
}

func TestAnnotateUnknownModule(t *testing.T) {
	host, paths := fakeRuntime(t)

	_, err := host.Annotate(&Request{Module: "invert", Image: "aGk="})
	assert.ErrorIs(t, err, ErrModuleNotAvailable)
	assert.Empty(t, *paths)
}

func TestUnload(t *testing.T) {
	host, paths := fakeRuntime(t)

	assert.NoError(t, host.Unload("openpose"))
	assert.Equal(t, []string{"/annotator/unload"}, *paths)
}

func TestUnloadSkipsStatelessModules(t *testing.T) {
	host, paths := fakeRuntime(t)

	assert.NoError(t, host.Unload("canny"))
	assert.Empty(t, *paths)
}
