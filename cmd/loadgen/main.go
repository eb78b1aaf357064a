package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kiwiland/railquery/internal/edgelist"
	"github.com/kiwiland/railquery/internal/model"
)

var clientLevels = []int{1, 4, 16, 64}

const runPerLevel = 10 * time.Second

func main() {
	log := logrus.New()

	if len(os.Args) < 3 {
		log.Fatalf("usage: loadgen <edge-file> <server_addr>")
	}
	edgeFile := os.Args[1]
	server := strings.TrimRight(os.Args[2], "/")

	data, err := os.ReadFile(edgeFile)
	if err != nil {
		log.WithError(err).Fatal("read edge file")
	}
	edges, err := edgelist.Parse(string(data))
	if err != nil {
		log.WithError(err).Fatal("parse edge file")
	}
	stations := stationSet(edges)
	if len(stations) == 0 {
		log.Fatal("edge file contains no stations")
	}
	log.WithField("stations", len(stations)).Info("loaded stations")

	httpClient := &http.Client{Timeout: 5 * time.Second}

	// Hard reset so earlier runs don't pollute the cache stats.
	if _, err := httpClient.Get(server + "/debug/clear_cache"); err != nil {
		log.WithError(err).Fatal("clear cache")
	}

	for _, clients := range clientLevels {
		res := runClosedLoop(httpClient, server, stations, clients)
		log.WithFields(logrus.Fields{
			"clients":    res.Clients,
			"throughput": fmt.Sprintf("%.0f req/s", res.Throughput),
			"p50_ms":     fmt.Sprintf("%.2f", res.P50),
			"p95_ms":     fmt.Sprintf("%.2f", res.P95),
			"p99_ms":     fmt.Sprintf("%.2f", res.P99),
			"errors":     res.Errors,
		}).Info("level done")
	}
}

type result struct {
	Clients    int
	Throughput float64
	P50        float64
	P95        float64
	P99        float64
	Errors     int64
	Total      int64
}

// runClosedLoop keeps the given number of clients saturated for the
// run duration: each client issues its next query as soon as the
// previous one returns.
func runClosedLoop(client *http.Client, server string, stations []model.Station, clients int) result {
	var (
		mu        sync.Mutex
		latencies []time.Duration
		errs      int64
		total     int64
	)

	deadline := time.Now().Add(runPerLevel)
	var wg sync.WaitGroup
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rnd := rand.New(rand.NewSource(seed))
			for time.Now().Before(deadline) {
				path := randomQuery(rnd, stations)
				start := time.Now()
				resp, err := client.Get(server + path)
				elapsed := time.Since(start)

				mu.Lock()
				total++
				if err != nil || resp.StatusCode != http.StatusOK {
					errs++
				} else {
					latencies = append(latencies, elapsed)
				}
				mu.Unlock()
				if err == nil {
					resp.Body.Close()
				}
			}
		}(time.Now().UnixNano() + int64(i))
	}
	wg.Wait()

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	return result{
		Clients:    clients,
		Throughput: float64(total) / runPerLevel.Seconds(),
		P50:        percentileMs(latencies, 0.50),
		P95:        percentileMs(latencies, 0.95),
		P99:        percentileMs(latencies, 0.99),
		Errors:     errs,
		Total:      total,
	}
}

// randomQuery picks one of the five query kinds with random arguments
// drawn from the known stations.
func randomQuery(rnd *rand.Rand, stations []model.Station) string {
	pick := func() model.Station { return stations[rnd.Intn(len(stations))] }

	switch rnd.Intn(5) {
	case 0:
		n := 2 + rnd.Intn(3)
		stops := make([]string, n)
		for i := range stops {
			stops[i] = string(pick())
		}
		return "/route/distance?stops=" + url.QueryEscape(strings.Join(stops, ","))
	case 1:
		return fmt.Sprintf("/route/shortest?src=%s&dst=%s", pick(), pick())
	case 2:
		return fmt.Sprintf("/route/count/exact?src=%s&dst=%s&stops=%d", pick(), pick(), 1+rnd.Intn(5))
	case 3:
		return fmt.Sprintf("/route/count/circular?start=%s&stops=%d", pick(), 1+rnd.Intn(4))
	default:
		return fmt.Sprintf("/route/count/under?src=%s&dst=%s&limit=%d", pick(), pick(), 10+rnd.Intn(30))
	}
}

func percentileMs(sorted []time.Duration, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * p)
	return float64(sorted[idx].Microseconds()) / 1000.0
}

func stationSet(edges []model.Edge) []model.Station {
	seen := make(map[model.Station]struct{})
	for _, e := range edges {
		seen[e.From] = struct{}{}
		seen[e.To] = struct{}{}
	}
	out := make([]model.Station, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	return out
}
