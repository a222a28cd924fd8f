package e2e_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taichi6930/race-schedule-api-sub006/internal/api"
	"github.com/taichi6930/race-schedule-api-sub006/internal/dependencies/random"
	"github.com/taichi6930/race-schedule-api-sub006/internal/factory"
	"github.com/taichi6930/race-schedule-api-sub006/internal/services/auth"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	keyFile    string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "racesched-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/racesched")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		keyFile:    filepath.Join(t.TempDir(), "api_key"),
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--api-key-file", r.keyFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Env = append(os.Environ(), "RACESCHED_API_KEY=")
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithKey(key string, args ...string) (string, error) {
	return r.run(append([]string{"--api-key", key}, args...)...)
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	apiKey   string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	key, err := auth.GenerateKey(random.New())
	require.NoError(t, err)

	app, err := factory.New(factory.Config{
		AuthConfig: auth.Config{APIKeyHash: key.Hash},
	})
	require.NoError(t, err)

	cfg := api.DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	cfg.ShutdownTimeout = 5 * time.Second
	server := api.NewServer(app.Router(), cfg, slog.New(slog.NewJSONHandler(io.Discard, nil)))

	ln, err := server.Listen()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Run(ctx, ln) }()

	serverURL := "http://" + ln.Addr().String()
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		addr:   serverURL,
		apiKey: key.Key,
		shutdown: func() {
			cancel()
			if err := <-done; err != nil {
				t.Logf("server error: %v", err)
			}
			_ = app.Close()
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type placeListResponse struct {
	Count  int `json:"count"`
	Places []struct {
		ID       string `json:"id"`
		DateTime string `json:"dateTime"`
		Location string `json:"location"`
	} `json:"places"`
}

type raceResponse struct {
	ID       string `json:"id"`
	PlaceID  string `json:"placeId"`
	Number   int    `json:"number"`
	DateTime string `json:"dateTime"`
}

type identifierResponse struct {
	RaceType   string `json:"raceType"`
	Shape      string `json:"shape"`
	Date       string `json:"date"`
	VenueCode  int    `json:"venueCode"`
	RaceNumber int    `json:"raceNumber"`
}

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCLI(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	server := startTestServer(t)
	defer server.shutdown()

	cli := newCLIRunner(t, server.addr)

	t.Run("health", func(t *testing.T) {
		out, err := cli.run("health")
		require.NoError(t, err, out)
		assert.Contains(t, out, `"writes": true`)
	})

	t.Run("local id round trip", func(t *testing.T) {
		out, err := cli.run("id", "encode", "--type", "nar", "--date", "2024-12-29", "--venue", "44", "--race", "10")
		require.NoError(t, err, out)

		var encoded struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &encoded))
		assert.Equal(t, "nar202412294410", encoded.ID)

		out, err = cli.run("id", "decode", encoded.ID)
		require.NoError(t, err, out)
		var decoded identifierResponse
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, identifierResponse{RaceType: "nar", Shape: "race", Date: "2024-12-29", VenueCode: 44, RaceNumber: 10}, decoded)
	})

	t.Run("local rejection exits non-zero", func(t *testing.T) {
		out, err := cli.run("id", "decode", "keirin2024020100")
		require.Error(t, err)
		assert.Contains(t, out, "venue code 0 out of range 1-99")
	})

	t.Run("import requires key", func(t *testing.T) {
		places := writeCSV(t, "places.csv", "id,raceType,dateTime,location,grade,heldTimes,heldDayTimes,updateDate\n")
		out, err := cli.run("import", "place", places)
		require.Error(t, err)
		assert.Contains(t, out, "UNAUTHORIZED")
	})

	t.Run("import then query", func(t *testing.T) {
		places := writeCSV(t, "places.csv",
			"id,raceType,dateTime,location,grade,heldTimes,heldDayTimes,updateDate\n"+
				"keirin2024020101,keirin,2024-02-01 11:00:00,Hakodate,GIII,2,1,\n"+
				"boatrace2024020304,boatrace,2024-02-03 10:30:00,Heiwajima,SG,,,\n")
		races := writeCSV(t, "races.csv",
			"id,raceType,name,stage,dateTime,location,grade,number,heldTimes,heldDayTimes,updateDate\n"+
				"keirin202402010112,keirin,Final,final,2024-02-01 16:30:00,Hakodate,GIII,12,2,1,\n")

		out, err := cli.runWithKey(server.apiKey, "import", "place", places)
		require.NoError(t, err, out)
		assert.Contains(t, out, `"imported": 2`)

		out, err = cli.runWithKey(server.apiKey, "import", "race", races)
		require.NoError(t, err, out)

		out, err = cli.run("places", "list", "--from", "2024-02-01", "--to", "2024-02-29")
		require.NoError(t, err, out)
		var list placeListResponse
		require.NoError(t, json.Unmarshal([]byte(out), &list))
		require.Equal(t, 2, list.Count)
		assert.Equal(t, "keirin2024020101", list.Places[0].ID)
		assert.Equal(t, "2024-02-01T11:00:00+09:00", list.Places[0].DateTime)

		out, err = cli.run("places", "list", "--type", "boatrace", "--from", "2024-02-01", "--to", "2024-02-29")
		require.NoError(t, err, out)
		require.NoError(t, json.Unmarshal([]byte(out), &list))
		require.Equal(t, 1, list.Count)
		assert.Equal(t, "Heiwajima", list.Places[0].Location)

		out, err = cli.run("races", "get", "keirin202402010112")
		require.NoError(t, err, out)
		var race raceResponse
		require.NoError(t, json.Unmarshal([]byte(out), &race))
		assert.Equal(t, "keirin2024020101", race.PlaceID)
		assert.Equal(t, 12, race.Number)
		assert.Equal(t, "2024-02-01T16:30:00+09:00", race.DateTime)
	})

	t.Run("bad import leaves storage unchanged", func(t *testing.T) {
		bad := writeCSV(t, "bad.csv",
			"id,raceType,dateTime,location,grade,heldTimes,heldDayTimes,updateDate\n"+
				"autorace2024020105,autorace,2024-02-01 11:00:00,Iizuka,,,,\n"+
				"autorace2024020105,autorace,2024-02-02 11:00:00,Iizuka,,,,\n")

		out, err := cli.runWithKey(server.apiKey, "import", "place", bad)
		require.Error(t, err)
		assert.Contains(t, out, "line 3")

		out, err = cli.run("places", "list", "--type", "autorace", "--from", "2024-02-01", "--to", "2024-02-29")
		require.NoError(t, err, out)
		assert.True(t, strings.Contains(out, `"count": 0`), out)
	})

	t.Run("export", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "races.csv")
		out, err := cli.run("export", "race", "--from", "2024-02-01", "--to", "2024-02-29", "--file", target)
		require.NoError(t, err, out)

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[1], "keirin202402010112,keirin,Final,final,2024-02-01 16:30:00,Hakodate,GIII,12,2,1,"))
	})
}
