// Container healthcheck probe: exits 0 when the duel server answers its
// health endpoint.
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/M1tsumi/arc-duels/internal/constants"
)

func main() {
	addr := os.Getenv(constants.EnvListenAddr)
	if addr == "" {
		addr = ":8080"
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://127.0.0.1" + addr + constants.RouteHealth)
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
	os.Exit(0)
}
