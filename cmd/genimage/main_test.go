package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basel-ax/imagegen/internal/cli"
	"github.com/basel-ax/imagegen/internal/config"
	"github.com/basel-ax/imagegen/internal/domain"
)

type fakeAPI struct {
	hits int32
	last map[string]interface{}
	srv  *httptest.Server
}

func newFakeAPI(t *testing.T, status int, body string) *fakeAPI {
	t.Helper()
	api := &fakeAPI{}
	api.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&api.hits, 1)
		_ = json.NewDecoder(r.Body).Decode(&api.last)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(api.srv.Close)
	return api
}

func testEnv(api *fakeAPI, withKey bool) (cli.Env, *bytes.Buffer, *bytes.Buffer) {
	vars := map[string]string{
		"OPENAI_BASE_URL":    api.srv.URL,
		"IMAGEGEN_LOG_LEVEL": "error",
	}
	if withKey {
		vars["OPENAI_API_KEY"] = "sk-test"
	}
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return cli.Env{
		Stdout:     stdout,
		Stderr:     stderr,
		HTTPClient: api.srv.Client(),
		LoadConfig: func() (*config.Config, error) {
			return config.LoadFrom(func(k string) string { return vars[k] })
		},
	}, stdout, stderr
}

func TestRun_SavesSingleImage(t *testing.T) {
	original := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0xff}
	api := newFakeAPI(t, http.StatusOK, `{"data":[{"b64_json":"`+base64.StdEncoding.EncodeToString(original)+`"}]}`)
	env, stdout, stderr := testEnv(api, true)
	out := filepath.Join(t.TempDir(), "nested", "dir", "cat.png")

	code := run(context.Background(), []string{"-prompt", "a cat", "-filename", out, "-resolution", "2k"}, env)
	require.Equal(t, domain.ExitOK, code, stderr.String())

	assert.Equal(t, "gpt-image-1", api.last["model"])
	assert.Equal(t, "1536x1024", api.last["size"])
	assert.Equal(t, "high", api.last["quality"])
	assert.EqualValues(t, 1, api.last["n"])
	assert.Equal(t, "b64_json", api.last["response_format"])

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, original, got)
	assert.Equal(t, "MEDIA: "+out+"\nImage saved as: "+out+"\n", stdout.String())
	assert.NoFileExists(t, filepath.Join(filepath.Dir(out), "prompts.json"))
}

func TestRun_IgnoresInputsWithWarning(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{"data":[{"b64_json":"eA=="}]}`)
	env, _, stderr := testEnv(api, true)

	code := run(context.Background(), []string{
		"-prompt", "p", "-filename", filepath.Join(t.TempDir(), "x.png"), "-i", "a.png", "-i", "b.png",
	}, env)
	require.Equal(t, domain.ExitOK, code)
	assert.Contains(t, stderr.String(), "WARNING: edit/composition inputs are not supported in this build; ignoring -i")
	assert.NotContains(t, api.last, "image")
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		args     []string
		withKey  bool
		wantCode int
		wantHits int32
	}{
		{"missing prompt", 200, `{}`, []string{"-filename", "x.png"}, true, domain.ExitConfig, 0},
		{"missing filename", 200, `{}`, []string{"-prompt", "p"}, true, domain.ExitConfig, 0},
		{"stray positional argument", 200, `{"data":[{"b64_json":"eA=="}]}`, []string{"-prompt", "p", "-filename", "x.png", "stray", "-resolution", "2K"}, true, domain.ExitConfig, 0},
		{"blank input path", 200, `{}`, []string{"-prompt", "p", "-filename", "x.png", "-i", " "}, true, domain.ExitConfig, 0},
		{"missing credential", 200, `{}`, []string{"-prompt", "p", "-filename", "x.png"}, false, domain.ExitConfig, 0},
		{"upstream error", 500, `oops`, []string{"-prompt", "p", "-filename", "x.png"}, true, domain.ExitUpstream, 1},
		{"first entry empty", 200, `{"data":[{},{"b64_json":"eA=="}]}`, []string{"-prompt", "p", "-filename", "x.png"}, true, domain.ExitEmpty, 1},
		{"no data", 200, `{"data":[]}`, []string{"-prompt", "p", "-filename", "x.png"}, true, domain.ExitEmpty, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(t, tt.status, tt.body)
			env, stdout, _ := testEnv(api, tt.withKey)
			dir := t.TempDir()

			args := make([]string, 0, len(tt.args))
			for _, a := range tt.args {
				if a == "x.png" {
					a = filepath.Join(dir, a)
				}
				args = append(args, a)
			}

			assert.Equal(t, tt.wantCode, run(context.Background(), args, env))
			assert.Equal(t, tt.wantHits, atomic.LoadInt32(&api.hits))
			assert.Empty(t, stdout.String())
			assert.NoFileExists(t, filepath.Join(dir, "x.png"))
		})
	}
}

func TestSizeForResolution(t *testing.T) {
	tests := map[string]string{
		"1K":   "1024x1024",
		"1k":   "1024x1024",
		"2K":   "1536x1024",
		"4k":   "1536x1024",
		"8K":   "1024x1024",
		"":     "1024x1024",
		" 2K ": "1536x1024",
	}
	for in, want := range tests {
		assert.Equal(t, want, sizeForResolution(in), "resolution %q", in)
	}
}

func TestInputList(t *testing.T) {
	var l inputList
	assert.Equal(t, "", l.String())
	require.NoError(t, l.Set(" a.png "))
	require.NoError(t, l.Set("b.png"))
	assert.Equal(t, "a.png,b.png", l.String())
	assert.Error(t, l.Set("   "))
	assert.Len(t, l, 2)
}
