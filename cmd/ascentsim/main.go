package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ascentsim/ascent"
)

var (
	confPath   = flag.String("conf", ".", "path to the directory holding the vehicle TOML file")
	vehicle    = flag.String("vehicle", "vehicle", "vehicle file name, without the .toml extension")
	addr       = flag.String("addr", ":8086", "REST/telemetry listen address")
	outputDir  = flag.String("output", "", "directory for the CSV flight log (empty disables)")
	analysisOn = flag.String("analysis", "", "URL of the mission analysis service (empty uses the offline fallback)")
	realtime   = flag.Bool("realtime", false, "pace the tick loop at wall clock speed")
)

// server exposes the live state over REST while the tick loop runs. The
// mission owns the state; handlers only ever see snapshots sent by the loop.
type server struct {
	mu         sync.RWMutex
	state      ascent.SimulationState
	prediction []ascent.PredictionSample
	stats      *ascent.MissionStats
}

func main() {
	flag.Parse()
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stdout))

	cfg, err := ascent.LoadConfig(*confPath, *vehicle)
	if err != nil {
		logger.Log("level", "critical", "subsys", "main", "err", err)
		os.Exit(1)
	}

	conf := ascent.ExportConfig{}
	if *outputDir != "" {
		conf = ascent.ExportConfig{Filename: cfg.Name, OutputDir: *outputDir, Epoch: time.Now(), Timestamp: true}
	}
	mission := ascent.NewMission(cfg, ascent.LogSink{Logger: logger}, conf)
	mission.SetLogger(logger)
	mission.EnableTelemetry()

	srv := &server{state: mission.State}

	router := mux.NewRouter()
	router.HandleFunc("/state", srv.stateHandler).Methods("GET")
	router.HandleFunc("/prediction", srv.predictionHandler).Methods("GET")
	router.HandleFunc("/orbit", srv.orbitHandler).Methods("GET")
	router.HandleFunc("/stats", srv.statsHandler).Methods("GET")
	router.Handle("/metrics", promhttp.Handler())

	go func() {
		logger.Log("level", "info", "subsys", "main", "listening", *addr)
		if err := http.ListenAndServe(*addr, router); err != nil {
			logger.Log("level", "critical", "subsys", "main", "err", err)
			os.Exit(1)
		}
	}()

	// Tick loop. The simulation core is single threaded; the handlers read
	// the snapshot the loop publishes after each tick.
	var ticker *time.Ticker
	if *realtime {
		ticker = time.NewTicker(time.Duration(mission.Step * float64(time.Second)))
		defer ticker.Stop()
	}
	for !mission.State.Phase.Terminal() {
		state := mission.Tick()
		srv.publish(state, mission.Prediction())
		if ticker != nil {
			<-ticker.C
		}
	}
	mission.Close()

	stats := mission.Stats()
	srv.mu.Lock()
	srv.stats = &stats
	srv.mu.Unlock()

	var analyzer ascent.Analyzer = ascent.StaticAnalyzer{}
	if *analysisOn != "" {
		analyzer = ascent.NewHTTPAnalyzer(*analysisOn, logger)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	logger.Log("level", "notice", "subsys", "analysis", "debrief", analyzer.Analyze(ctx, stats))

	// Keep serving telemetry of the finished run until interrupted.
	select {}
}

func (s *server) publish(state ascent.SimulationState, prediction []ascent.PredictionSample) {
	s.mu.Lock()
	s.state = state
	s.prediction = prediction
	s.mu.Unlock()
}

func (s *server) stateHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()
	writeJSON(w, state)
}

func (s *server) predictionHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	prediction := s.prediction
	s.mu.RUnlock()
	writeJSON(w, prediction)
}

func (s *server) orbitHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	orbit := s.state.Orbit
	s.mu.RUnlock()
	writeJSON(w, orbit)
}

func (s *server) statsHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	stats := s.stats
	s.mu.RUnlock()
	if stats == nil {
		http.Error(w, "mission still in progress", http.StatusConflict)
		return
	}
	writeJSON(w, stats)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
